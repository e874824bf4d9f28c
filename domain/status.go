package domain

import "time"

// StatusKind tells an account's own posts apart from boosts of other
// people's posts. The kind is decided once, when the server response is
// mapped, so later stages never re-inspect raw payloads.
type StatusKind int

const (
	// StatusOriginal is a post authored by the account itself.
	StatusOriginal StatusKind = iota
	// StatusReblog is a boost of somebody else's post.
	StatusReblog
)

// MediaAttachment is one piece of media attached to a post.
type MediaAttachment struct {
	Type string // image, video, gifv, audio, unknown
	URL  string
}

// Status is a single post as the server returned it, before any range
// filtering. Content still carries the server's HTML.
type Status struct {
	ID        string
	Kind      StatusKind
	CreatedAt time.Time // normalized to UTC
	URL       string
	Content   string // HTML as served
	Tags      []string
	Media     []MediaAttachment
}

// StatusPage is one page of an account's statuses together with the cursor
// for requesting the next, older page.
type StatusPage struct {
	Statuses   []Status
	NextCursor string // ID of the oldest status on the page
}

// Empty reports whether the page carries no statuses, which marks the end
// of the account's history.
func (p StatusPage) Empty() bool {
	return len(p.Statuses) == 0
}
