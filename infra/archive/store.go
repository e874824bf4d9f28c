// Package archive persists collected posts in a local SQLite database.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/CrestNiraj12/tootspan/domain"
)

// Store is a SQLite-backed archive of collected posts.
type Store struct {
	db *sql.DB
}

// Stats summarizes the archive contents.
type Stats struct {
	Posts  int
	Oldest time.Time
	Newest time.Time
}

// Open opens or creates the archive database at path and brings its schema
// up to date.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("path is required")
	}

	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	ctx := context.Background()
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SavePosts writes posts into the archive inside one transaction. A post
// already present is updated in place, so re-running a fetch never
// duplicates rows. Returns the number of posts written.
func (s *Store) SavePosts(ctx context.Context, posts []domain.Post) (int, error) {
	if s == nil || s.db == nil {
		return 0, errors.New("store is not initialized")
	}
	if len(posts) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}

	savedAt := formatTime(time.Now())
	for _, p := range posts {
		if strings.TrimSpace(p.ID) == "" {
			_ = tx.Rollback()
			return 0, errors.New("post id is required")
		}

		hashtags := p.Hashtags
		if hashtags == nil {
			hashtags = []string{}
		}
		tagsJSON, err := json.Marshal(hashtags)
		if err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("encode hashtags: %w", err)
		}

		var urlVal sql.NullString
		if strings.TrimSpace(p.URL) != "" {
			urlVal = sql.NullString{String: p.URL, Valid: true}
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO posts (id, created_at, url, content, truncated, hashtags, saved_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				created_at = excluded.created_at,
				url = excluded.url,
				content = excluded.content,
				truncated = excluded.truncated,
				hashtags = excluded.hashtags,
				saved_at = excluded.saved_at
		`,
			p.ID,
			formatTime(p.CreatedAt),
			urlVal,
			p.Content,
			p.Truncated,
			string(tagsJSON),
			savedAt,
		); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("insert post: %w", err)
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM media WHERE post_id = ?", p.ID); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("clear media: %w", err)
		}
		for i, m := range p.Media {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO media (post_id, position, type, url) VALUES (?, ?, ?, ?)",
				p.ID, i, m.Type, m.URL,
			); err != nil {
				_ = tx.Rollback()
				return 0, fmt.Errorf("insert media: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit save: %w", err)
	}
	return len(posts), nil
}

// ListRange returns archived posts created inside rng, newest first.
func (s *Store) ListRange(ctx context.Context, rng domain.DateRange) ([]domain.Post, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("store is not initialized")
	}

	// Timestamp strings only sort reliably at second precision, so the SQL
	// window is one second wider on each side and exact bounds are
	// re-checked per row.
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, url, content, truncated, hashtags
		FROM posts
		WHERE created_at >= ? AND created_at < ?
		ORDER BY created_at DESC, id DESC
	`, formatTime(rng.Start.Add(-time.Second)), formatTime(rng.End.Add(time.Second)))
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var posts []domain.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		if !rng.Contains(post.CreatedAt) {
			continue
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}

	if err := s.attachMedia(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Stats reports how many posts the archive holds and the creation times of
// the oldest and newest ones.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	if s == nil || s.db == nil {
		return Stats{}, errors.New("store is not initialized")
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(MIN(created_at), ''), COALESCE(MAX(created_at), '')
		FROM posts
	`)

	var (
		st             Stats
		oldest, newest string
	)
	if err := row.Scan(&st.Posts, &oldest, &newest); err != nil {
		return Stats{}, fmt.Errorf("read stats: %w", err)
	}

	var err error
	if st.Oldest, err = parseTime(oldest); err != nil {
		return Stats{}, fmt.Errorf("parse oldest: %w", err)
	}
	if st.Newest, err = parseTime(newest); err != nil {
		return Stats{}, fmt.Errorf("parse newest: %w", err)
	}
	return st, nil
}

// Prune deletes posts created more than retainDays ago together with their
// media. Returns the number of posts removed.
func (s *Store) Prune(ctx context.Context, retainDays int) (int64, error) {
	if s == nil || s.db == nil {
		return 0, errors.New("store is not initialized")
	}
	if retainDays <= 0 {
		return 0, nil
	}

	cutoff := formatTime(time.Now().AddDate(0, 0, -retainDays))

	// media rows cascade with their post
	res, err := s.db.ExecContext(ctx, "DELETE FROM posts WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune posts: %w", err)
	}

	n, _ := res.RowsAffected()
	return n, nil
}

// SaveAccount records which account the archived posts belong to.
func (s *Store) SaveAccount(ctx context.Context, acct string) error {
	if s == nil || s.db == nil {
		return errors.New("store is not initialized")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES ('acct', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, acct)
	if err != nil {
		return fmt.Errorf("save account: %w", err)
	}
	return nil
}

// Account returns the account recorded by SaveAccount, or "" when nothing
// has been saved yet.
func (s *Store) Account(ctx context.Context) (string, error) {
	if s == nil || s.db == nil {
		return "", errors.New("store is not initialized")
	}
	var acct string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM metadata WHERE key = 'acct'").Scan(&acct)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read account: %w", err)
	}
	return acct, nil
}

func (s *Store) attachMedia(ctx context.Context, posts []domain.Post) error {
	if len(posts) == 0 {
		return nil
	}

	placeholders := make([]string, len(posts))
	args := make([]any, len(posts))
	index := make(map[string]int, len(posts))
	for i, p := range posts {
		placeholders[i] = "?"
		args[i] = p.ID
		index[p.ID] = i
	}

	query := fmt.Sprintf(
		"SELECT post_id, type, url FROM media WHERE post_id IN (%s) ORDER BY post_id, position",
		strings.Join(placeholders, ","),
	)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("query media: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var postID, mediaType, mediaURL string
		if err := rows.Scan(&postID, &mediaType, &mediaURL); err != nil {
			return fmt.Errorf("scan media: %w", err)
		}
		i, ok := index[postID]
		if !ok {
			continue
		}
		posts[i].Media = append(posts[i].Media, domain.MediaAttachment{Type: mediaType, URL: mediaURL})
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate media: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(scanner rowScanner) (domain.Post, error) {
	var (
		post      domain.Post
		urlVal    sql.NullString
		createdAt string
		tagsJSON  string
	)

	if err := scanner.Scan(
		&post.ID,
		&createdAt,
		&urlVal,
		&post.Content,
		&post.Truncated,
		&tagsJSON,
	); err != nil {
		return domain.Post{}, fmt.Errorf("scan post: %w", err)
	}

	if urlVal.Valid {
		post.URL = urlVal.String
	}

	var err error
	post.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return domain.Post{}, fmt.Errorf("parse created_at: %w", err)
	}

	var tags []string
	if tagsJSON != "" {
		if err := json.Unmarshal([]byte(tagsJSON), &tags); err != nil {
			return domain.Post{}, fmt.Errorf("decode hashtags: %w", err)
		}
	}
	if len(tags) > 0 {
		post.Hashtags = tags
	}

	return post, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return time.Time{}.UTC().Format(time.RFC3339Nano)
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if ts, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return ts, nil
	}
	return time.Parse(time.RFC3339, value)
}
