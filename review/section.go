package review

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Disposition is the reviewer's decision for one section.
type Disposition int

const (
	Pending Disposition = iota
	Approved
	Edited
	Discarded
)

func (d Disposition) String() string {
	switch d {
	case Pending:
		return "pending"
	case Approved:
		return "approved"
	case Edited:
		return "edited"
	case Discarded:
		return "discarded"
	default:
		return "unknown"
	}
}

// boilerplateMarker names sections that are approved without asking.
const boilerplateMarker = "license"

// Section is one heading-delimited slice of a draft. Body holds the full section text,
// heading line included; Index is the position in the draft as generated.
type Section struct {
	Header      string
	Body        string
	Index       int
	Disposition Disposition
}

// IsBoilerplate reports whether the heading text starts with the license marker.
func (s Section) IsBoilerplate() bool {
	title := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(s.Header), "#"))
	return strings.HasPrefix(strings.ToLower(title), boilerplateMarker)
}

// Split cuts a Markdown draft at every heading that sits directly under the document root.
// Headings inside code fences, lists or block quotes do not split. Text before the first
// heading becomes its own section with an empty header; blank sections are dropped.
func Split(draft string) []Section {
	src := []byte(draft)
	root := goldmark.New().Parser().Parse(text.NewReader(src))

	var starts []int
	leadingHeading := false
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*gmast.Heading)
		if !ok || h.Lines().Len() == 0 {
			continue
		}
		seg := h.Lines().At(0)
		lineStart := bytes.LastIndexByte(src[:seg.Start], '\n') + 1
		if lineStart > 0 {
			starts = append(starts, lineStart)
		} else {
			leadingHeading = true
		}
	}

	bounds := append([]int{0}, starts...)
	bounds = append(bounds, len(src))

	var sections []Section
	for i := 0; i+1 < len(bounds); i++ {
		chunk := strings.TrimSpace(string(src[bounds[i]:bounds[i+1]]))
		if chunk == "" {
			continue
		}
		// Text before the first heading has no header.
		var header string
		if i > 0 || leadingHeading {
			header, _, _ = strings.Cut(chunk, "\n")
		}
		sections = append(sections, Section{
			Header: strings.TrimSpace(header),
			Body:   chunk,
			Index:  len(sections),
		})
	}
	return sections
}
