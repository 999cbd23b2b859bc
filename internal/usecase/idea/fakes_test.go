package idea

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/idea-hub/internal/domain/entities"
	"github.com/johnquangdev/idea-hub/internal/domain/events"
	"github.com/johnquangdev/idea-hub/internal/domain/repositories"
	"github.com/johnquangdev/idea-hub/internal/infrastructure/search"
)

type fakeIdeas struct {
	mu    sync.Mutex
	rows  map[uuid.UUID]entities.Idea
	order []uuid.UUID
	fail  error
}

func newFakeIdeas() *fakeIdeas {
	return &fakeIdeas{rows: map[uuid.UUID]entities.Idea{}}
}

func (f *fakeIdeas) put(idea *entities.Idea) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if idea.ID == uuid.Nil {
		idea.ID = uuid.New()
	}
	if idea.Version == 0 {
		idea.Version = 1
	}
	if _, ok := f.rows[idea.ID]; !ok {
		f.order = append(f.order, idea.ID)
	}
	f.rows[idea.ID] = *idea
}

func (f *fakeIdeas) Create(_ context.Context, idea *entities.Idea) error {
	if f.fail != nil {
		return f.fail
	}
	if idea.CreatedAt.IsZero() {
		idea.CreatedAt = time.Now()
	}
	f.put(idea)
	return nil
}

func (f *fakeIdeas) FindByID(_ context.Context, id uuid.UUID) (*entities.Idea, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

func (f *fakeIdeas) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Idea, error) {
	out := make([]*entities.Idea, 0, len(ids))
	for _, id := range ids {
		if idea, err := f.FindByID(ctx, id); err == nil {
			out = append(out, idea)
		}
	}
	return out, nil
}

func (f *fakeIdeas) Update(_ context.Context, idea *entities.Idea) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.updateLocked(idea)
}

func (f *fakeIdeas) updateLocked(idea *entities.Idea) error {
	if f.fail != nil {
		return f.fail
	}
	stored, ok := f.rows[idea.ID]
	if !ok || stored.Version != idea.Version {
		return repositories.ErrVersionConflict
	}
	idea.Version++
	f.rows[idea.ID] = *idea
	return nil
}

func (f *fakeIdeas) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeIdeas) List(_ context.Context, filters repositories.IdeaFilters) ([]*entities.Idea, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entities.Idea
	for _, id := range f.order {
		row, ok := f.rows[id]
		if !ok {
			continue
		}
		if filters.Status != nil && row.Status != *filters.Status {
			continue
		}
		if filters.Search != "" && !strings.Contains(strings.ToLower(row.Title+" "+row.Description), strings.ToLower(filters.Search)) {
			continue
		}
		r := row
		out = append(out, &r)
	}
	return out, int64(len(out)), nil
}

func (f *fakeIdeas) FindExpiredDiscussions(_ context.Context, now time.Time, limit int) ([]*entities.Idea, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entities.Idea
	for _, id := range f.order {
		row, ok := f.rows[id]
		if !ok || row.Status != entities.IdeaStatusUnderReview || row.DiscussionEndsAt == nil {
			continue
		}
		if !row.DiscussionEndsAt.After(now) {
			r := row
			out = append(out, &r)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type fakeComments struct {
	mu   sync.Mutex
	rows []*entities.Comment
}

func (f *fakeComments) Create(_ context.Context, c *entities.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	f.rows = append(f.rows, c)
	return nil
}

func (f *fakeComments) FindByID(_ context.Context, id uuid.UUID) (*entities.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.rows {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeComments) ListByIdea(_ context.Context, ideaID uuid.UUID) ([]*entities.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entities.Comment
	for _, c := range f.rows {
		if c.IdeaID == ideaID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeComments) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	doomed := map[uuid.UUID]bool{id: true}
	for changed := true; changed; {
		changed = false
		for _, c := range f.rows {
			if c.ParentID != nil && doomed[*c.ParentID] && !doomed[c.ID] {
				doomed[c.ID] = true
				changed = true
			}
		}
	}
	kept := f.rows[:0]
	removed := 0
	for _, c := range f.rows {
		if doomed[c.ID] {
			removed++
			continue
		}
		kept = append(kept, c)
	}
	f.rows = kept
	if removed == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type fakeVotes struct {
	mu   sync.Mutex
	rows map[[2]uuid.UUID]*entities.Vote
}

func newFakeVotes() *fakeVotes {
	return &fakeVotes{rows: map[[2]uuid.UUID]*entities.Vote{}}
}

func (f *fakeVotes) Upsert(_ context.Context, v *entities.Vote) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := [2]uuid.UUID{v.IdeaID, v.UserID}
	if existing, ok := f.rows[key]; ok {
		existing.Value = v.Value
		return nil
	}
	v.ID = uuid.New()
	v.CreatedAt = time.Now()
	f.rows[key] = v
	return nil
}

func (f *fakeVotes) FindByIdeaAndUser(_ context.Context, ideaID, userID uuid.UUID) (*entities.Vote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if v, ok := f.rows[[2]uuid.UUID{ideaID, userID}]; ok {
		return v, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeVotes) ListByIdea(_ context.Context, ideaID uuid.UUID) ([]*entities.Vote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entities.Vote
	for _, v := range f.rows {
		if v.IdeaID == ideaID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeVotes) Delete(_ context.Context, ideaID, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := [2]uuid.UUID{ideaID, userID}
	if _, ok := f.rows[key]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.rows, key)
	return nil
}

type fakeDecisions struct {
	ideas *fakeIdeas
	rows  map[uuid.UUID]*entities.Decision
}

func (f *fakeDecisions) FindByIdea(_ context.Context, ideaID uuid.UUID) (*entities.Decision, error) {
	if d, ok := f.rows[ideaID]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeDecisions) CreateWithIdeaStatus(_ context.Context, d *entities.Decision, idea *entities.Idea) error {
	if _, ok := f.rows[d.IdeaID]; ok {
		return gorm.ErrDuplicatedKey
	}
	f.ideas.mu.Lock()
	defer f.ideas.mu.Unlock()
	if err := f.ideas.updateLocked(idea); err != nil {
		return err
	}
	d.ID = uuid.New()
	f.rows[d.IdeaID] = d
	return nil
}

func (f *fakeDecisions) DeleteWithIdeaStatus(_ context.Context, idea *entities.Idea) error {
	if _, ok := f.rows[idea.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.ideas.mu.Lock()
	defer f.ideas.mu.Unlock()
	if err := f.ideas.updateLocked(idea); err != nil {
		return err
	}
	delete(f.rows, idea.ID)
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) types() []events.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.Type, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

func (p *recordingPublisher) last() events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.events[len(p.events)-1]
}

type fakeStore struct {
	objects map[string][]byte
	removed []string
	fail    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}}
}

func (s *fakeStore) UploadFile(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	if s.fail != nil {
		return s.fail
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return err
	}
	s.objects[key] = buf.Bytes()
	return nil
}

func (s *fakeStore) RemoveFile(_ context.Context, key string) error {
	delete(s.objects, key)
	s.removed = append(s.removed, key)
	return nil
}

func (s *fakeStore) PublicFileURL(key string) string {
	return "http://files.local/bucket/" + key
}

type fakeIndex struct {
	indexed map[uuid.UUID]string
	hits    []uuid.UUID
	fail    error
}

func (x *fakeIndex) Index(_ context.Context, idea *entities.Idea) error {
	if x.indexed == nil {
		x.indexed = map[uuid.UUID]string{}
	}
	x.indexed[idea.ID] = idea.Title
	return nil
}

func (x *fakeIndex) Delete(_ context.Context, id uuid.UUID) error {
	delete(x.indexed, id)
	return nil
}

func (x *fakeIndex) Search(_ context.Context, _ search.Query) ([]uuid.UUID, int64, error) {
	if x.fail != nil {
		return nil, 0, x.fail
	}
	return x.hits, int64(len(x.hits)), nil
}

var errBoom = errors.New("boom")
