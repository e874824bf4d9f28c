package app

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/CrestNiraj12/tootspan/domain"
)

type fakeAccount struct {
	id  string
	err error
}

func (f *fakeAccount) CurrentAccountID(ctx context.Context) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.id, nil
}

func (f *fakeAccount) CurrentProfile(ctx context.Context) (Profile, error) {
	if f.err != nil {
		return Profile{}, f.err
	}
	return Profile{ID: f.id, Acct: "tester"}, nil
}

// fakeSource serves pages keyed by the requested cursor and records every
// request it sees.
type fakeSource struct {
	pages      map[string]domain.StatusPage
	failOn     string
	err        error
	requests   []string
	accountIDs []string
}

func (f *fakeSource) Page(ctx context.Context, accountID, maxID string) (domain.StatusPage, error) {
	f.accountIDs = append(f.accountIDs, accountID)
	f.requests = append(f.requests, maxID)
	if f.err != nil && maxID == f.failOn {
		return domain.StatusPage{}, f.err
	}
	return f.pages[maxID], nil
}

func status(id string, created time.Time) domain.Status {
	return domain.Status{
		ID:        id,
		Kind:      domain.StatusOriginal,
		CreatedAt: created,
		URL:       "https://mastodon.example/@tester/" + id,
		Content:   "<p>post " + id + "</p>",
	}
}

func pageOf(statuses ...domain.Status) domain.StatusPage {
	p := domain.StatusPage{Statuses: statuses}
	if len(statuses) > 0 {
		p.NextCursor = statuses[len(statuses)-1].ID
	}
	return p
}

func mustRange(t *testing.T, start, end string) domain.DateRange {
	t.Helper()
	r, err := domain.ParseDateRange(start, end)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func postIDs(posts []domain.Post) []string {
	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	return ids
}

func TestCollectorStopsAtFirstPostOlderThanRange(t *testing.T) {
	source := &fakeSource{pages: map[string]domain.StatusPage{
		"": pageOf(
			status("3", day(2023, 8, 1)),
			status("2", day(2023, 7, 15)),
			status("1", day(2023, 6, 30)),
		),
		// Older history that a correct walk never requests.
		"1": pageOf(status("0", day(2023, 6, 1))),
	}}
	c := NewCollector(&fakeAccount{id: "42"}, source)

	posts, err := c.Collect(context.Background(), mustRange(t, "01.07.2023", "31.07.2023"))
	if err != nil {
		t.Fatalf("Collect returned %v", err)
	}
	if want := []string{"2"}; !reflect.DeepEqual(postIDs(posts), want) {
		t.Errorf("post IDs = %v, want %v", postIDs(posts), want)
	}
	if len(source.requests) != 1 {
		t.Errorf("made %d requests, want 1: a post older than the range ends the walk", len(source.requests))
	}
}

func TestCollectorThreadsCursorAcrossPages(t *testing.T) {
	source := &fakeSource{pages: map[string]domain.StatusPage{
		"":  pageOf(status("3", day(2023, 7, 20)), status("2", day(2023, 7, 15))),
		"2": pageOf(status("1", day(2023, 7, 10))),
	}}
	c := NewCollector(&fakeAccount{id: "42"}, source)

	posts, err := c.Collect(context.Background(), mustRange(t, "01.07.2023", "31.07.2023"))
	if err != nil {
		t.Fatalf("Collect returned %v", err)
	}
	if want := []string{"3", "2", "1"}; !reflect.DeepEqual(postIDs(posts), want) {
		t.Errorf("post IDs = %v, want %v", postIDs(posts), want)
	}
	if want := []string{"", "2", "1"}; !reflect.DeepEqual(source.requests, want) {
		t.Errorf("cursors = %v, want %v", source.requests, want)
	}
	for _, id := range source.accountIDs {
		if id != "42" {
			t.Errorf("request used account %q, want 42", id)
		}
	}
}

func TestCollectorSkipsBoosts(t *testing.T) {
	boost := status("2", day(2023, 7, 15))
	boost.Kind = domain.StatusReblog
	source := &fakeSource{pages: map[string]domain.StatusPage{
		"": pageOf(status("3", day(2023, 7, 20)), boost, status("1", day(2023, 7, 10))),
	}}
	c := NewCollector(&fakeAccount{id: "42"}, source)

	posts, err := c.Collect(context.Background(), mustRange(t, "01.07.2023", "31.07.2023"))
	if err != nil {
		t.Fatalf("Collect returned %v", err)
	}
	if want := []string{"3", "1"}; !reflect.DeepEqual(postIDs(posts), want) {
		t.Errorf("post IDs = %v, want %v", postIDs(posts), want)
	}
}

func TestCollectorSkipsPostsNewerThanRange(t *testing.T) {
	source := &fakeSource{pages: map[string]domain.StatusPage{
		"": pageOf(
			status("3", day(2023, 8, 5)),
			status("2", day(2023, 7, 20)),
			status("1", day(2023, 7, 10)),
		),
	}}
	c := NewCollector(&fakeAccount{id: "42"}, source)

	posts, err := c.Collect(context.Background(), mustRange(t, "01.07.2023", "31.07.2023"))
	if err != nil {
		t.Fatalf("Collect returned %v", err)
	}
	if want := []string{"2", "1"}; !reflect.DeepEqual(postIDs(posts), want) {
		t.Errorf("post IDs = %v, want %v", postIDs(posts), want)
	}
}

func TestCollectorIncludesRangeEndpoints(t *testing.T) {
	source := &fakeSource{pages: map[string]domain.StatusPage{
		"": pageOf(
			status("3", time.Date(2023, 7, 31, 23, 59, 59, 0, time.UTC)),
			status("2", time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)),
			status("1", day(2023, 6, 30)),
		),
	}}
	c := NewCollector(&fakeAccount{id: "42"}, source)

	posts, err := c.Collect(context.Background(), mustRange(t, "01.07.2023", "31.07.2023"))
	if err != nil {
		t.Fatalf("Collect returned %v", err)
	}
	if want := []string{"3", "2"}; !reflect.DeepEqual(postIDs(posts), want) {
		t.Errorf("post IDs = %v, want %v", postIDs(posts), want)
	}
}

func TestCollectorEmptyHistory(t *testing.T) {
	source := &fakeSource{pages: map[string]domain.StatusPage{}}
	c := NewCollector(&fakeAccount{id: "42"}, source)

	posts, err := c.Collect(context.Background(), mustRange(t, "01.07.2023", "31.07.2023"))
	if err != nil {
		t.Fatalf("Collect returned %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("got %d posts from an empty history", len(posts))
	}
	if len(source.requests) != 1 {
		t.Errorf("made %d requests, want 1", len(source.requests))
	}
}

func TestCollectorAccountErrorIsFatal(t *testing.T) {
	source := &fakeSource{pages: map[string]domain.StatusPage{}}
	c := NewCollector(&fakeAccount{err: domain.ErrUnauthorized}, source)

	_, err := c.Collect(context.Background(), mustRange(t, "01.07.2023", "31.07.2023"))
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("error = %v, want %v", err, domain.ErrUnauthorized)
	}
	if len(source.requests) != 0 {
		t.Errorf("made %d requests after failing to resolve the account", len(source.requests))
	}
}

func TestCollectorPageErrorAbortsRun(t *testing.T) {
	source := &fakeSource{
		pages: map[string]domain.StatusPage{
			"": pageOf(status("3", day(2023, 7, 20)), status("2", day(2023, 7, 15))),
		},
		failOn: "2",
		err:    domain.ErrMalformedPost,
	}
	c := NewCollector(&fakeAccount{id: "42"}, source)

	posts, err := c.Collect(context.Background(), mustRange(t, "01.07.2023", "31.07.2023"))
	if !errors.Is(err, domain.ErrMalformedPost) {
		t.Fatalf("error = %v, want %v", err, domain.ErrMalformedPost)
	}
	if !strings.Contains(err.Error(), "page 2") {
		t.Errorf("error %q does not name the failing page", err)
	}
	if posts != nil {
		t.Errorf("got %d posts alongside an error, runs are all or nothing", len(posts))
	}
}

func TestCollectorStopsWhenContextCancelled(t *testing.T) {
	source := &fakeSource{pages: map[string]domain.StatusPage{
		"": pageOf(status("3", day(2023, 7, 20))),
	}}
	c := NewCollector(&fakeAccount{id: "42"}, source)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Collect(ctx, mustRange(t, "01.07.2023", "31.07.2023"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want %v", err, context.Canceled)
	}
	if len(source.requests) != 0 {
		t.Errorf("made %d requests on a cancelled context", len(source.requests))
	}
}

func TestCollectorReportsProgress(t *testing.T) {
	boost := status("3", day(2023, 7, 18))
	boost.Kind = domain.StatusReblog
	source := &fakeSource{pages: map[string]domain.StatusPage{
		"":  pageOf(status("4", day(2023, 7, 20)), boost),
		"3": pageOf(status("2", day(2023, 7, 10)), status("1", day(2023, 6, 30))),
	}}
	var got [][3]int
	c := NewCollector(&fakeAccount{id: "42"}, source,
		WithProgress(func(pages, seen, matched int) {
			got = append(got, [3]int{pages, seen, matched})
		}))

	if _, err := c.Collect(context.Background(), mustRange(t, "01.07.2023", "31.07.2023")); err != nil {
		t.Fatalf("Collect returned %v", err)
	}
	want := [][3]int{{1, 2, 1}, {2, 4, 2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("progress = %v, want %v", got, want)
	}
}

func TestCollectorContentModes(t *testing.T) {
	long := "<p>" + strings.Repeat("verylongword ", 30) + "</p>"
	page := func() map[string]domain.StatusPage {
		st := status("1", day(2023, 7, 15))
		st.Content = long
		return map[string]domain.StatusPage{"": pageOf(st)}
	}

	t.Run("excerpts by default", func(t *testing.T) {
		c := NewCollector(&fakeAccount{id: "42"}, &fakeSource{pages: page()}, WithExcerptLength(20))
		posts, err := c.Collect(context.Background(), mustRange(t, "01.07.2023", "31.07.2023"))
		if err != nil {
			t.Fatalf("Collect returned %v", err)
		}
		if !posts[0].Truncated {
			t.Error("expected a truncated excerpt")
		}
		if n := len([]rune(posts[0].Content)); n > 20 {
			t.Errorf("excerpt is %d runes, budget is 20", n)
		}
	})

	t.Run("full content on request", func(t *testing.T) {
		c := NewCollector(&fakeAccount{id: "42"}, &fakeSource{pages: page()}, WithFullContent(true))
		posts, err := c.Collect(context.Background(), mustRange(t, "01.07.2023", "31.07.2023"))
		if err != nil {
			t.Fatalf("Collect returned %v", err)
		}
		if posts[0].Truncated {
			t.Error("full mode must never truncate")
		}
		if !strings.Contains(posts[0].Content, strings.Repeat("verylongword ", 29)) {
			t.Error("full mode dropped content")
		}
	})
}

func TestCollectorIsIdempotent(t *testing.T) {
	source := &fakeSource{pages: map[string]domain.StatusPage{
		"":  pageOf(status("3", day(2023, 7, 20)), status("2", day(2023, 7, 15))),
		"2": pageOf(status("1", day(2023, 7, 10))),
	}}
	c := NewCollector(&fakeAccount{id: "42"}, source)
	rng := mustRange(t, "01.07.2023", "31.07.2023")

	first, err := c.Collect(context.Background(), rng)
	if err != nil {
		t.Fatalf("first Collect returned %v", err)
	}
	second, err := c.Collect(context.Background(), rng)
	if err != nil {
		t.Fatalf("second Collect returned %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated runs differ: %v vs %v", postIDs(first), postIDs(second))
	}
}
