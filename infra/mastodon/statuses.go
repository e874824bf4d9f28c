package mastodon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/CrestNiraj12/tootspan/domain"
)

const (
	// defaultPageLimit is also the most statuses Mastodon serves per page.
	defaultPageLimit = 40
	maxPageLimit     = 40
)

// statusService implements app.StatusSource using the Mastodon API.
type statusService struct {
	client *Client
	limit  int
}

// NewStatusService creates a StatusSource over an account's own posts.
// limit is the page size; values outside 1..40 fall back to 40.
func NewStatusService(client *Client, limit int) *statusService {
	if limit < 1 || limit > maxPageLimit {
		limit = defaultPageLimit
	}
	return &statusService{client: client, limit: limit}
}

// mastodonStatus is the subset of Mastodon's Status entity we care about.
type mastodonStatus struct {
	ID               string                    `json:"id"`
	Content          string                    `json:"content"` // HTML
	CreatedAt        string                    `json:"created_at"`
	URL              string                    `json:"url"`
	Reblog           json.RawMessage           `json:"reblog"` // null unless the status is a boost
	Tags             []mastodonTag             `json:"tags"`
	MediaAttachments []mastodonMediaAttachment `json:"media_attachments"`
}

type mastodonTag struct {
	Name string `json:"name"`
}

type mastodonMediaAttachment struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// Page fetches one page of the account's statuses, newest first. maxID
// pins the page to statuses older than that status ID; empty maxID means
// the newest page. The returned cursor is the ID of the oldest status on
// the page. A malformed status fails the whole page.
func (s *statusService) Page(ctx context.Context, accountID, maxID string) (domain.StatusPage, error) {
	query := url.Values{}
	query.Set("exclude_reblogs", "true")
	query.Set("limit", strconv.Itoa(s.limit))
	if maxID != "" {
		query.Set("max_id", maxID)
	}
	path := fmt.Sprintf("/api/v1/accounts/%s/statuses?%s", url.PathEscape(accountID), query.Encode())

	data, err := s.client.Get(ctx, path)
	if err != nil {
		return domain.StatusPage{}, fmt.Errorf("fetching statuses: %w", err)
	}

	var statuses []mastodonStatus
	if err := json.Unmarshal(data, &statuses); err != nil {
		return domain.StatusPage{}, fmt.Errorf("parsing statuses: %w", err)
	}

	page := domain.StatusPage{Statuses: make([]domain.Status, 0, len(statuses))}
	for _, st := range statuses {
		mapped, err := mapStatus(st)
		if err != nil {
			return domain.StatusPage{}, err
		}
		page.Statuses = append(page.Statuses, mapped)
	}
	if len(statuses) > 0 {
		page.NextCursor = statuses[len(statuses)-1].ID
	}
	return page, nil
}

func mapStatus(st mastodonStatus) (domain.Status, error) {
	// Pagination keys off status IDs, a post without one would wedge the walk.
	if st.ID == "" {
		return domain.Status{}, fmt.Errorf("%w: response carries a post without an id", domain.ErrMalformedPost)
	}
	createdAt, err := time.Parse(time.RFC3339, st.CreatedAt)
	if err != nil {
		return domain.Status{}, fmt.Errorf("%w: post %s has unreadable created_at %q", domain.ErrMalformedPost, st.ID, st.CreatedAt)
	}

	kind := domain.StatusOriginal
	if isReblog(st.Reblog) {
		kind = domain.StatusReblog
	}

	var tags []string
	for _, tag := range st.Tags {
		tags = append(tags, sanitizeForTerminal(tag.Name))
	}
	var media []domain.MediaAttachment
	for _, m := range st.MediaAttachments {
		media = append(media, domain.MediaAttachment{
			Type: sanitizeForTerminal(m.Type),
			URL:  sanitizeForTerminal(m.URL),
		})
	}

	return domain.Status{
		ID:        st.ID,
		Kind:      kind,
		CreatedAt: createdAt.UTC(),
		URL:       sanitizeForTerminal(st.URL),
		Content:   sanitizeForTerminal(st.Content),
		Tags:      tags,
		Media:     media,
	}, nil
}

// isReblog reports whether the raw reblog field carries an object.
func isReblog(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}
