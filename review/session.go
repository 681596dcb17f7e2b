package review

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Session holds the working sections of one review. It is owned by a single Review call
// and dropped once the document is assembled.
type Session struct {
	ID       string
	Sections []Section
}

// NewSession splits draft into a fresh session with every section pending.
func NewSession(draft string) *Session {
	return &Session{
		ID:       uuid.NewString(),
		Sections: Split(draft),
	}
}

// Headers returns the heading line of each working section, in order. Text before the
// first heading is labelled by its first line.
func (s *Session) Headers() []string {
	out := make([]string, len(s.Sections))
	for i, sec := range s.Sections {
		out[i] = sec.Header
		if sec.Header == "" {
			first, _, _ := strings.Cut(sec.Body, "\n")
			out[i] = "(intro) " + first
		}
	}
	return out
}

// Reorder replaces the working sequence with exactly the selected sections, in selection
// order. An empty selection keeps the current order.
func (s *Session) Reorder(selection []int) error {
	if len(selection) == 0 {
		return nil
	}
	seen := make(map[int]bool, len(selection))
	next := make([]Section, 0, len(selection))
	for _, idx := range selection {
		if idx < 0 || idx >= len(s.Sections) {
			return fmt.Errorf("reorder: index %d out of range [0,%d)", idx, len(s.Sections))
		}
		if seen[idx] {
			return fmt.Errorf("reorder: index %d selected twice", idx)
		}
		seen[idx] = true
		next = append(next, s.Sections[idx])
	}
	s.Sections = next
	return nil
}

// Decide records the disposition of section i. Each section is decided once; body is only
// taken for Edited.
func (s *Session) Decide(i int, d Disposition, body string) error {
	if i < 0 || i >= len(s.Sections) {
		return fmt.Errorf("decide: index %d out of range", i)
	}
	sec := &s.Sections[i]
	if sec.Disposition != Pending {
		return fmt.Errorf("decide: section %q already %s", sec.Header, sec.Disposition)
	}
	switch d {
	case Approved, Discarded:
	case Edited:
		sec.Body = body
	default:
		return fmt.Errorf("decide: invalid disposition %s", d)
	}
	sec.Disposition = d
	return nil
}

// Assemble joins the kept sections in working order, each followed by a blank line, and
// trims the result.
func (s *Session) Assemble() string {
	var sb strings.Builder
	for _, sec := range s.Sections {
		if sec.Disposition != Approved && sec.Disposition != Edited {
			continue
		}
		sb.WriteString(sec.Body)
		sb.WriteString("\n\n")
	}
	return strings.TrimSpace(sb.String())
}
