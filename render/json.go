package render

import (
	"encoding/json"
	"io"
	"time"

	"github.com/CrestNiraj12/tootspan/domain"
)

type jsonResult struct {
	Meta  jsonMeta   `json:"meta"`
	Posts []jsonPost `json:"posts"`
}

type jsonMeta struct {
	Acct    string `json:"acct"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Count   int    `json:"count"`
	Pages   int    `json:"pages,omitempty"`
	Scanned int    `json:"scanned,omitempty"`
}

type jsonPost struct {
	ID        string      `json:"id"`
	CreatedAt string      `json:"created_at"`
	URL       string      `json:"url,omitempty"`
	Hashtags  []string    `json:"hashtags,omitempty"`
	Media     []jsonMedia `json:"media,omitempty"`
	Content   string      `json:"content"`
	Truncated bool        `json:"truncated"`
}

type jsonMedia struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// JSONFormatter renders posts as machine-readable JSON.
type JSONFormatter struct{}

// NewJSON creates a JSON formatter.
func NewJSON() *JSONFormatter {
	return &JSONFormatter{}
}

// Format writes the result set as indented JSON to w.
func (f *JSONFormatter) Format(w io.Writer, input Input) error {
	out := jsonResult{
		Meta: jsonMeta{
			Acct:    input.Acct,
			Start:   input.Range.Start.Format("2006-01-02"),
			End:     input.Range.End.Format("2006-01-02"),
			Count:   len(input.Posts),
			Pages:   input.Pages,
			Scanned: input.Scanned,
		},
		Posts: toJSONPosts(input.Posts),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func toJSONPosts(posts []domain.Post) []jsonPost {
	// Allocate even when empty so the output carries "posts": [] and not null.
	result := make([]jsonPost, 0, len(posts))
	for _, p := range posts {
		jp := jsonPost{
			ID:        p.ID,
			CreatedAt: p.CreatedAt.Format(time.RFC3339),
			URL:       p.URL,
			Hashtags:  p.Hashtags,
			Content:   p.Content,
			Truncated: p.Truncated,
		}
		for _, m := range p.Media {
			jp.Media = append(jp.Media, jsonMedia{Type: m.Type, URL: m.URL})
		}
		result = append(result, jp)
	}
	return result
}
