package domain

import (
	"html"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode"
)

// DefaultExcerptLength is the rune budget applied when the caller does not
// choose one.
const DefaultExcerptLength = 150

var (
	htmlTagRe   = regexp.MustCompile(`<[^>]*>`)
	lineBreakRe = regexp.MustCompile(`(?i)</p>|<br\s*/?>`)
)

// Post is a normalized post ready for rendering or archiving. Content is
// plain text; when Truncated is set it holds an excerpt without a trailing
// ellipsis, which renderers add themselves.
type Post struct {
	ID        string
	CreatedAt time.Time
	URL       string
	Hashtags  []string // lowercase, deduplicated, sorted
	Media     []MediaAttachment
	Content   string
	Truncated bool
}

// NewPost normalizes a status into a Post. HTML is stripped before any
// length accounting so markup never eats into the budget. With full set the
// whole text is kept; otherwise Content is cut to at most budget runes,
// preferring the last whitespace boundary and falling back to a hard cut
// when a single token exceeds the budget. A budget of zero or less means
// DefaultExcerptLength.
func NewPost(st Status, full bool, budget int) Post {
	text := stripHTML(st.Content)
	p := Post{
		ID:        st.ID,
		CreatedAt: st.CreatedAt,
		URL:       st.URL,
		Hashtags:  normalizeTags(st.Tags),
		Media:     append([]MediaAttachment(nil), st.Media...),
		Content:   text,
	}
	if full {
		return p
	}
	if budget <= 0 {
		budget = DefaultExcerptLength
	}
	p.Content, p.Truncated = excerpt(text, budget)
	return p
}

// stripHTML converts the HTML content Mastodon serves into plain text.
// Paragraph and line break tags become newlines, every other tag is
// dropped, entities are decoded. Good enough for terminal display; not a
// security boundary.
func stripHTML(s string) string {
	s = lineBreakRe.ReplaceAllString(s, "\n")
	s = htmlTagRe.ReplaceAllString(s, "")
	return strings.TrimSpace(html.UnescapeString(s))
}

// excerpt cuts text down to at most budget runes. The cut lands on the last
// whitespace boundary at or before the budget; a leading token longer than
// the whole budget is cut mid-token instead of returning nothing.
func excerpt(text string, budget int) (string, bool) {
	runes := []rune(text)
	if len(runes) <= budget {
		return text, false
	}
	cut := budget
	if !unicode.IsSpace(runes[cut]) {
		i := cut
		for i > 0 && !unicode.IsSpace(runes[i-1]) {
			i--
		}
		if i > 0 {
			cut = i
		}
	}
	out := strings.TrimRightFunc(string(runes[:cut]), unicode.IsSpace)
	if out == "" {
		out = string(runes[:budget])
	}
	return out, true
}

func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		t := strings.ToLower(strings.TrimSpace(tag))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
