package export

import (
	"fmt"
	"strings"

	"github.com/johnquangdev/idea-hub/internal/domain/entities"
)

const timeLayout = "2006-01-02 15:04"

type renderer struct {
	locale entities.Locale
}

// document joins the selected sections of a text export
func (r renderer) document(b *bundle, sections Sections) string {
	var parts []string
	if sections.Details {
		parts = append(parts, r.details(b.idea))
	}
	if sections.Comments {
		parts = append(parts, r.comments(b.comments))
	}
	if sections.Votes {
		parts = append(parts, r.votes(b.votes))
	}
	if sections.Decision {
		parts = append(parts, r.decision(b.decision))
	}
	return strings.Join(parts, "\n"+strings.Repeat("=", 40)+"\n\n")
}

func (r renderer) details(idea *entities.Idea) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Idea: %s\n", idea.Title)
	fmt.Fprintf(&sb, "Status: %s\n", entities.StatusDisplay(idea.Status, r.locale))
	if idea.Category != nil {
		fmt.Fprintf(&sb, "Category: %s\n", *idea.Category)
	}
	if idea.Creator != nil {
		fmt.Fprintf(&sb, "Author: %s\n", idea.Creator.DisplayName())
	}
	fmt.Fprintf(&sb, "Created: %s\n", idea.CreatedAt.UTC().Format(timeLayout))
	fmt.Fprintf(&sb, "Discussion period: %s\n", idea.DiscussionPeriod)
	if idea.ProposedExecutionDate != nil {
		fmt.Fprintf(&sb, "Proposed execution date: %s\n", idea.ProposedExecutionDate.Format("2006-01-02"))
	}
	sb.WriteString("\nDescription:\n")
	sb.WriteString(idea.Description)
	sb.WriteString("\n")
	return sb.String()
}

func (r renderer) comments(comments []*entities.Comment) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Comments (%d)\n\n", len(comments))
	if len(comments) == 0 {
		sb.WriteString("No comments.\n")
		return sb.String()
	}

	var walk func(nodes []*entities.CommentNode, depth int)
	walk = func(nodes []*entities.CommentNode, depth int) {
		indent := strings.Repeat("  ", depth)
		for _, n := range nodes {
			fmt.Fprintf(&sb, "%s[%s] %s: %s\n", indent, n.CreatedAt.UTC().Format(timeLayout), author(n.Author), n.Content)
			if n.HasAttachment() {
				fmt.Fprintf(&sb, "%s  Attachment: %s", indent, attachmentName(n.Comment))
				if n.AttachmentURL != nil && *n.AttachmentURL != "" {
					fmt.Fprintf(&sb, " (%s)", *n.AttachmentURL)
				}
				sb.WriteString("\n")
			}
			walk(n.Replies, depth+1)
		}
	}
	walk(entities.BuildCommentTree(comments), 0)
	return sb.String()
}

func (r renderer) votes(votes []*entities.Vote) string {
	s := entities.SummarizeVotes(votes)
	var sb strings.Builder
	fmt.Fprintf(&sb, "Votes (%d)\n", s.Total)
	fmt.Fprintf(&sb, "%s: %d, %s: %d, %s: %d\n\n",
		entities.VoteDisplay(entities.VoteAgree, r.locale), s.Agree,
		entities.VoteDisplay(entities.VoteDisagree, r.locale), s.Disagree,
		entities.VoteDisplay(entities.VoteNeutral, r.locale), s.Neutral,
	)
	for _, v := range votes {
		fmt.Fprintf(&sb, "- %s: %s\n", author(v.Voter), entities.VoteDisplay(v.Value, r.locale))
	}
	return sb.String()
}

func (r renderer) decision(d *entities.Decision) string {
	if d == nil {
		return "Decision\n\nNo decision has been recorded.\n"
	}
	var sb strings.Builder
	sb.WriteString("Decision\n\n")
	fmt.Fprintf(&sb, "Status: %s\n", entities.StatusDisplay(d.Status, r.locale))
	fmt.Fprintf(&sb, "Recorded: %s\n", d.CreatedAt.UTC().Format(timeLayout))
	if d.Reason != "" {
		fmt.Fprintf(&sb, "Reason: %s\n", d.Reason)
	}
	if d.Timeline != nil {
		fmt.Fprintf(&sb, "Timeline: %s\n", *d.Timeline)
	}
	if d.Budget != nil {
		fmt.Fprintf(&sb, "Budget: %s\n", *d.Budget)
	}
	if assignees := d.Assignees(); len(assignees) > 0 {
		sb.WriteString("Assignees:\n")
		for _, a := range assignees {
			if a.Responsibility != "" {
				fmt.Fprintf(&sb, "- %s (%s)\n", a.Name, a.Responsibility)
			} else {
				fmt.Fprintf(&sb, "- %s\n", a.Name)
			}
		}
	}
	return sb.String()
}

func author(u *entities.User) string {
	if name := u.DisplayName(); name != "" {
		return name
	}
	return "Unknown"
}
