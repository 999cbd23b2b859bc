// Package export renders an idea and its discussion into downloadable files.
package export

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/johnquangdev/idea-hub/internal/domain/entities"
	"github.com/johnquangdev/idea-hub/internal/domain/repositories"
	ucerrors "github.com/johnquangdev/idea-hub/internal/usecase/errors"
)

// Format is the requested output
type Format string

const (
	FormatTXT Format = "txt"
	FormatZIP Format = "zip"
	FormatPDF Format = "pdf"
)

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTXT, FormatZIP, FormatPDF:
		return f, nil
	}
	return "", ucerrors.ErrInvalidExportFormat
}

// Sections selects what goes into the export
type Sections struct {
	Details     bool
	Comments    bool
	Votes       bool
	Decision    bool
	Attachments bool
}

func (s Sections) any() bool {
	return s.Details || s.Comments || s.Votes || s.Decision || s.Attachments
}

// Input represents an export request
type Input struct {
	IdeaID   uuid.UUID
	Sections Sections
	Format   Format
	Locale   entities.Locale
}

// File is a rendered export
type File struct {
	Filename    string
	ContentType string
	Content     []byte
}

const (
	contentTypeText = "text/plain; charset=utf-8"
	contentTypeZip  = "application/zip"

	// PDFFallbackNotice heads a pdf request served as text
	PDFFallbackNotice = "PDF export is not available, this file contains the plain text export."
)

// Service defines the export use case
type Service interface {
	Export(ctx context.Context, input Input) (*File, error)
}

// Downloader reads stored attachments
type Downloader interface {
	Download(ctx context.Context, objectName string) ([]byte, error)
}

// ExportService loads an idea with its discussion and renders it
type ExportService struct {
	ideaRepo     repositories.IdeaRepository
	commentRepo  repositories.CommentRepository
	voteRepo     repositories.VoteRepository
	decisionRepo repositories.DecisionRepository
	files        Downloader
	logger       *zap.Logger
	now          func() time.Time
}

// NewExportService creates a new export service. files may be nil when storage is disabled.
func NewExportService(
	ideaRepo repositories.IdeaRepository,
	commentRepo repositories.CommentRepository,
	voteRepo repositories.VoteRepository,
	decisionRepo repositories.DecisionRepository,
	files Downloader,
	logger *zap.Logger,
) *ExportService {
	return &ExportService{
		ideaRepo:     ideaRepo,
		commentRepo:  commentRepo,
		voteRepo:     voteRepo,
		decisionRepo: decisionRepo,
		files:        files,
		logger:       logger,
		now:          time.Now,
	}
}

// bundle is everything an export may need
type bundle struct {
	idea     *entities.Idea
	comments []*entities.Comment
	votes    []*entities.Vote
	decision *entities.Decision
}

// Export renders the selected sections in the requested format
func (s *ExportService) Export(ctx context.Context, input Input) (*File, error) {
	if _, err := ParseFormat(string(input.Format)); err != nil {
		return nil, err
	}
	if !input.Sections.any() {
		return nil, ucerrors.ErrNothingToExport
	}
	// plain text cannot carry files
	if input.Format != FormatZIP && !input.Sections.Details && !input.Sections.Comments &&
		!input.Sections.Votes && !input.Sections.Decision {
		return nil, ucerrors.ErrNothingToExport
	}

	b, err := s.load(ctx, input)
	if err != nil {
		return nil, err
	}

	base := fmt.Sprintf("idea-%s-%s", b.idea.ID.String()[:8], s.now().UTC().Format("20060102"))
	r := renderer{locale: entities.ParseLocale(string(input.Locale))}

	switch input.Format {
	case FormatZIP:
		content, err := s.zip(ctx, r, b, input.Sections)
		if err != nil {
			return nil, fmt.Errorf("failed to build archive: %w", err)
		}
		return &File{Filename: base + ".zip", ContentType: contentTypeZip, Content: content}, nil
	case FormatPDF:
		text := PDFFallbackNotice + "\n\n" + r.document(b, input.Sections)
		return &File{Filename: base + ".txt", ContentType: contentTypeText, Content: []byte(text)}, nil
	default:
		return &File{Filename: base + ".txt", ContentType: contentTypeText, Content: []byte(r.document(b, input.Sections))}, nil
	}
}

func (s *ExportService) load(ctx context.Context, input Input) (*bundle, error) {
	idea, err := s.ideaRepo.FindByID(ctx, input.IdeaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ucerrors.ErrIdeaNotFound
		}
		return nil, fmt.Errorf("failed to get idea: %w", err)
	}
	b := &bundle{idea: idea}

	if input.Sections.Comments || input.Sections.Attachments {
		if b.comments, err = s.commentRepo.ListByIdea(ctx, idea.ID); err != nil {
			return nil, fmt.Errorf("failed to list comments: %w", err)
		}
	}
	if input.Sections.Votes {
		if b.votes, err = s.voteRepo.ListByIdea(ctx, idea.ID); err != nil {
			return nil, fmt.Errorf("failed to list votes: %w", err)
		}
	}
	if input.Sections.Decision {
		b.decision, err = s.decisionRepo.FindByIdea(ctx, idea.ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to get decision: %w", err)
		}
	}
	return b, nil
}

func (s *ExportService) zip(ctx context.Context, r renderer, b *bundle, sections Sections) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	add := func(name string, content []byte) error {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, Modified: s.now()})
		if err != nil {
			return err
		}
		_, err = w.Write(content)
		return err
	}

	parts := []struct {
		on   bool
		name string
		text func() string
	}{
		{sections.Details, "idea.txt", func() string { return r.details(b.idea) }},
		{sections.Comments, "comments.txt", func() string { return r.comments(b.comments) }},
		{sections.Votes, "votes.txt", func() string { return r.votes(b.votes) }},
		{sections.Decision, "decision.txt", func() string { return r.decision(b.decision) }},
	}
	for _, p := range parts {
		if !p.on {
			continue
		}
		if err := add(p.name, []byte(p.text())); err != nil {
			return nil, err
		}
	}

	if sections.Attachments {
		failures := s.addAttachments(ctx, b, add)
		if len(failures) > 0 {
			if err := add("attachments/errors.txt", []byte(strings.Join(failures, "\n")+"\n")); err != nil {
				return nil, err
			}
		}
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// addAttachments copies every stored comment attachment into the archive and
// returns one line per file that could not be included
func (s *ExportService) addAttachments(ctx context.Context, b *bundle, add func(string, []byte) error) []string {
	var failures []string
	used := make(map[string]int)

	for _, c := range b.comments {
		if !c.HasAttachment() {
			continue
		}
		name := attachmentName(c)
		if c.AttachmentKey == nil {
			failures = append(failures, fmt.Sprintf("%s: not stored by this service", name))
			continue
		}
		if s.files == nil {
			failures = append(failures, fmt.Sprintf("%s: storage is not configured", name))
			continue
		}

		data, err := s.files.Download(ctx, *c.AttachmentKey)
		if err != nil {
			s.logger.Warn("⚠️ Failed to download attachment for export",
				zap.String("idea_id", b.idea.ID.String()),
				zap.String("key", *c.AttachmentKey),
				zap.Error(err),
			)
			failures = append(failures, fmt.Sprintf("%s: %v", name, err))
			continue
		}

		if err := add("attachments/"+uniqueName(used, name), data); err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", name, err))
		}
	}
	return failures
}

func attachmentName(c *entities.Comment) string {
	name := ""
	if c.AttachmentName != nil {
		name = *c.AttachmentName
	}
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "file"
	}
	return name
}

// uniqueName numbers repeated names: plan.pdf, plan-2.pdf, plan-3.pdf
func uniqueName(used map[string]int, name string) string {
	used[name]++
	n := used[name]
	if n == 1 {
		return name
	}
	ext := path.Ext(name)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(name, ext), n, ext)
}

var _ Service = (*ExportService)(nil)
