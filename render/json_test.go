package render

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/CrestNiraj12/tootspan/domain"
)

func TestJSONFormat_Full(t *testing.T) {
	input := Input{
		Acct:  "pat",
		Range: mustRange(t, "01.07.2023", "31.07.2023"),
		Posts: []domain.Post{
			{
				ID:        "1",
				CreatedAt: time.Date(2023, 7, 20, 9, 15, 0, 0, time.UTC),
				URL:       "https://mastodon.example/@me/1",
				Hashtags:  []string{"golang"},
				Media:     []domain.MediaAttachment{{Type: "image", URL: "https://files.example/a.png"}},
				Content:   "morning thoughts",
				Truncated: true,
			},
			{
				ID:        "2",
				CreatedAt: time.Date(2023, 7, 5, 18, 0, 0, 0, time.UTC),
				Content:   "second post",
			},
		},
		Pages:   2,
		Scanned: 57,
	}

	var buf bytes.Buffer
	f := NewJSON()
	if err := f.Format(&buf, input); err != nil {
		t.Fatalf("format: %v", err)
	}

	var result jsonResult
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("unmarshal: %v\noutput: %s", err, buf.String())
	}

	if result.Meta.Acct != "pat" {
		t.Errorf("acct = %q, want pat", result.Meta.Acct)
	}
	if result.Meta.Start != "2023-07-01" {
		t.Errorf("start = %q, want 2023-07-01", result.Meta.Start)
	}
	if result.Meta.End != "2023-07-31" {
		t.Errorf("end = %q, want 2023-07-31", result.Meta.End)
	}
	if result.Meta.Count != 2 {
		t.Errorf("count = %d, want 2", result.Meta.Count)
	}
	if result.Meta.Pages != 2 {
		t.Errorf("pages = %d, want 2", result.Meta.Pages)
	}
	if result.Meta.Scanned != 57 {
		t.Errorf("scanned = %d, want 57", result.Meta.Scanned)
	}
	if len(result.Posts) != 2 {
		t.Fatalf("posts count = %d, want 2", len(result.Posts))
	}
	if result.Posts[0].ID != "1" {
		t.Errorf("id = %q, want 1", result.Posts[0].ID)
	}
	if result.Posts[0].CreatedAt != "2023-07-20T09:15:00Z" {
		t.Errorf("created_at = %q, want 2023-07-20T09:15:00Z", result.Posts[0].CreatedAt)
	}
	if !result.Posts[0].Truncated {
		t.Error("first post should be truncated")
	}
	if len(result.Posts[0].Media) != 1 || result.Posts[0].Media[0].URL != "https://files.example/a.png" {
		t.Errorf("media = %v, want one attachment", result.Posts[0].Media)
	}
	if result.Posts[1].Content != "second post" {
		t.Errorf("content = %q, want second post", result.Posts[1].Content)
	}
}

func TestJSONFormat_EmptyPostsRenderAsArray(t *testing.T) {
	input := Input{
		Acct:    "pat",
		Range:   mustRange(t, "01.07.2023", "31.07.2023"),
		Pages:   1,
		Scanned: 12,
	}

	var buf bytes.Buffer
	f := NewJSON()
	if err := f.Format(&buf, input); err != nil {
		t.Fatalf("format: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	posts, ok := m["posts"].([]any)
	if !ok {
		t.Fatalf("posts = %v, want an array", m["posts"])
	}
	if len(posts) != 0 {
		t.Errorf("posts = %v, want empty", posts)
	}
}

func TestJSONFormat_Omitempty(t *testing.T) {
	input := Input{
		Acct:  "pat",
		Range: mustRange(t, "01.07.2023", "31.07.2023"),
		Posts: []domain.Post{
			{
				ID:        "1",
				CreatedAt: time.Date(2023, 7, 20, 0, 0, 0, 0, time.UTC),
				Content:   "bare post",
			},
		},
		Pages:   1,
		Scanned: 1,
	}

	var buf bytes.Buffer
	f := NewJSON()
	if err := f.Format(&buf, input); err != nil {
		t.Fatalf("format: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	posts := m["posts"].([]any)
	item := posts[0].(map[string]any)
	if _, ok := item["url"]; ok {
		t.Error("url should be omitted when empty")
	}
	if _, ok := item["hashtags"]; ok {
		t.Error("hashtags should be omitted when nil")
	}
	if _, ok := item["media"]; ok {
		t.Error("media should be omitted when nil")
	}
	if _, ok := item["truncated"]; !ok {
		t.Error("truncated should always be present")
	}
}
