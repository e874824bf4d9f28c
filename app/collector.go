package app

import (
	"context"
	"fmt"

	"github.com/CrestNiraj12/tootspan/domain"
)

// Progress is called after each fetched page with running totals: pages
// fetched, statuses seen, and posts matched into the range so far.
type Progress func(pages, seen, matched int)

// Collector walks an account's own statuses backwards through time and
// keeps the ones created inside a date range.
type Collector struct {
	account  AccountService
	source   StatusSource
	full     bool
	budget   int
	progress Progress
}

// CollectorOption configures a Collector.
type CollectorOption func(*Collector)

// WithFullContent keeps whole post texts instead of excerpts.
func WithFullContent(full bool) CollectorOption {
	return func(c *Collector) { c.full = full }
}

// WithExcerptLength sets the excerpt budget in runes.
func WithExcerptLength(n int) CollectorOption {
	return func(c *Collector) { c.budget = n }
}

// WithProgress registers a callback invoked after every fetched page.
func WithProgress(fn Progress) CollectorOption {
	return func(c *Collector) { c.progress = fn }
}

// NewCollector builds a Collector over the given account and status source.
func NewCollector(account AccountService, source StatusSource, opts ...CollectorOption) *Collector {
	c := &Collector{
		account: account,
		source:  source,
		budget:  domain.DefaultExcerptLength,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect pages through the account's history newest first and returns the
// posts created inside rng, newest first. Boosts are skipped. Because the
// feed is reverse chronological, the walk ends at the first status older
// than the range; it also ends at the end of the account's history or when
// ctx is done. Any error aborts the whole run, there are no partial
// results. A Collector carries no run state, so Collect may be called any
// number of times.
func (c *Collector) Collect(ctx context.Context, rng domain.DateRange) ([]domain.Post, error) {
	log := LoggerFromContext(ctx)

	accountID, err := c.account.CurrentAccountID(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving account: %w", err)
	}

	var (
		posts  []domain.Post
		cursor string
		pages  int
		seen   int
		done   bool
	)
	for !done {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, err := c.source.Page(ctx, accountID, cursor)
		if err != nil {
			return nil, fmt.Errorf("fetching page %d: %w", pages+1, err)
		}
		if page.Empty() {
			break
		}
		pages++
		for _, st := range page.Statuses {
			seen++
			if st.Kind == domain.StatusReblog {
				continue
			}
			if st.CreatedAt.After(rng.End) {
				continue
			}
			if st.CreatedAt.Before(rng.Start) {
				done = true
				break
			}
			posts = append(posts, domain.NewPost(st, c.full, c.budget))
		}
		log.Debug("fetched page",
			"page", pages,
			"statuses", len(page.Statuses),
			"matched", len(posts),
		)
		if c.progress != nil {
			c.progress(pages, seen, len(posts))
		}
		cursor = page.NextCursor
	}
	return posts, nil
}
