// Package sqlite provides a SQLite-backed story ledger storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/Jdubedition/dapp-owaat/internal/platform/storage/sqlitemigrate"
	"github.com/Jdubedition/dapp-owaat/internal/services/story/domain"
	"github.com/Jdubedition/dapp-owaat/internal/services/story/storage"
	"github.com/Jdubedition/dapp-owaat/internal/services/story/storage/sqlite/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Store persists story ledger state in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite ledger store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// InitializeLedger records the administrator and seeds story 0 in one transaction.
func (s *Store) InitializeLedger(ctx context.Context, adminID, seedWord string) (storage.Story, error) {
	if err := ctx.Err(); err != nil {
		return storage.Story{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Story{}, fmt.Errorf("storage is not configured")
	}
	adminID = strings.TrimSpace(adminID)
	if adminID == "" {
		return storage.Story{}, fmt.Errorf("admin id is required")
	}
	if seedWord == "" {
		return storage.Story{}, fmt.Errorf("seed word is required")
	}

	now := time.Now().UTC()
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return storage.Story{}, fmt.Errorf("begin initialize: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO ledger_meta (id, admin_id, initialized_at) VALUES (1, ?, ?)`,
		adminID,
		toMillis(now),
	); err != nil {
		if isUniqueViolation(err) {
			return storage.Story{}, storage.ErrAlreadyExists
		}
		return storage.Story{}, fmt.Errorf("record ledger meta: %w", err)
	}
	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO treasury (id, balance) VALUES (1, 0)`,
	); err != nil {
		return storage.Story{}, fmt.Errorf("seed treasury: %w", err)
	}

	story := storage.Story{
		Index:     0,
		Title:     seedWord,
		WordCount: 1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := insertStory(ctx, tx, story, seedWord, adminID); err != nil {
		return storage.Story{}, err
	}

	if err := tx.Commit(); err != nil {
		return storage.Story{}, fmt.Errorf("commit initialize: %w", err)
	}
	return story, nil
}

// LedgerMeta returns the one-time initialization record.
func (s *Store) LedgerMeta(ctx context.Context) (storage.LedgerMeta, error) {
	if err := ctx.Err(); err != nil {
		return storage.LedgerMeta{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.LedgerMeta{}, fmt.Errorf("storage is not configured")
	}

	row := s.sqlDB.QueryRowContext(ctx, `SELECT admin_id, initialized_at FROM ledger_meta WHERE id = 1`)
	var meta storage.LedgerMeta
	var initializedAt int64
	if err := row.Scan(&meta.AdminID, &initializedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.LedgerMeta{}, storage.ErrNotFound
		}
		return storage.LedgerMeta{}, fmt.Errorf("get ledger meta: %w", err)
	}
	meta.InitializedAt = fromMillis(initializedAt)
	return meta, nil
}

// CreateStory appends a new story, its first attributed word, and the
// treasury credit in one transaction.
func (s *Store) CreateStory(ctx context.Context, word, contributorID string, payment int64) (storage.Story, error) {
	if err := ctx.Err(); err != nil {
		return storage.Story{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Story{}, fmt.Errorf("storage is not configured")
	}
	if word == "" {
		return storage.Story{}, fmt.Errorf("word is required")
	}
	contributorID = strings.TrimSpace(contributorID)
	if contributorID == "" {
		return storage.Story{}, fmt.Errorf("contributor id is required")
	}
	if payment < 0 {
		return storage.Story{}, fmt.Errorf("payment must not be negative")
	}

	now := time.Now().UTC()
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return storage.Story{}, fmt.Errorf("begin create story: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var nextIndex int64
	row := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(story_index) + 1, 0) FROM stories`)
	if err := row.Scan(&nextIndex); err != nil {
		return storage.Story{}, fmt.Errorf("next story index: %w", err)
	}

	story := storage.Story{
		Index:     nextIndex,
		Title:     word,
		WordCount: 1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := insertStory(ctx, tx, story, word, contributorID); err != nil {
		return storage.Story{}, err
	}
	if err := creditTreasury(ctx, tx, payment); err != nil {
		return storage.Story{}, err
	}

	if err := tx.Commit(); err != nil {
		return storage.Story{}, fmt.Errorf("commit create story: %w", err)
	}
	return story, nil
}

// AppendWord appends one attributed word to a story's title or body and
// credits the treasury in the same transaction.
func (s *Store) AppendWord(ctx context.Context, storyIndex int64, target storage.WordTarget, word, contributorID string, payment int64) (storage.Story, error) {
	if err := ctx.Err(); err != nil {
		return storage.Story{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Story{}, fmt.Errorf("storage is not configured")
	}
	if target != storage.TargetTitle && target != storage.TargetBody {
		return storage.Story{}, fmt.Errorf("target %q is not supported", target)
	}
	if word == "" {
		return storage.Story{}, fmt.Errorf("word is required")
	}
	contributorID = strings.TrimSpace(contributorID)
	if contributorID == "" {
		return storage.Story{}, fmt.Errorf("contributor id is required")
	}
	if payment < 0 {
		return storage.Story{}, fmt.Errorf("payment must not be negative")
	}

	now := time.Now().UTC()
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return storage.Story{}, fmt.Errorf("begin append word: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var story storage.Story
	var createdAt int64
	row := tx.QueryRowContext(
		ctx,
		`SELECT story_index, title, body, word_count, created_at FROM stories WHERE story_index = ?`,
		storyIndex,
	)
	if err := row.Scan(&story.Index, &story.Title, &story.Body, &story.WordCount, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Story{}, storage.ErrNotFound
		}
		return storage.Story{}, fmt.Errorf("get story %d: %w", storyIndex, err)
	}
	story.CreatedAt = fromMillis(createdAt)

	seq := story.WordCount
	switch target {
	case storage.TargetTitle:
		story.Title = domain.AppendWord(story.Title, word)
	case storage.TargetBody:
		story.Body = domain.AppendWord(story.Body, word)
	}
	story.WordCount++
	story.UpdatedAt = now

	if _, err := tx.ExecContext(
		ctx,
		`UPDATE stories SET title = ?, body = ?, word_count = ?, updated_at = ? WHERE story_index = ?`,
		story.Title,
		story.Body,
		story.WordCount,
		toMillis(now),
		story.Index,
	); err != nil {
		return storage.Story{}, fmt.Errorf("update story %d: %w", storyIndex, err)
	}
	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO story_words (story_index, seq, word, contributor_id, target, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		story.Index,
		seq,
		word,
		contributorID,
		string(target),
		toMillis(now),
	); err != nil {
		return storage.Story{}, fmt.Errorf("record word contribution: %w", err)
	}
	if err := creditTreasury(ctx, tx, payment); err != nil {
		return storage.Story{}, err
	}

	if err := tx.Commit(); err != nil {
		return storage.Story{}, fmt.Errorf("commit append word: %w", err)
	}
	return story, nil
}

// GetStory returns one story and its full attribution history in
// contribution order.
func (s *Store) GetStory(ctx context.Context, storyIndex int64) (storage.Story, []storage.WordContribution, error) {
	if err := ctx.Err(); err != nil {
		return storage.Story{}, nil, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Story{}, nil, fmt.Errorf("storage is not configured")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT story_index, title, body, word_count, created_at, updated_at
		   FROM stories
		  WHERE story_index = ?`,
		storyIndex,
	)
	var story storage.Story
	var createdAt int64
	var updatedAt int64
	if err := row.Scan(&story.Index, &story.Title, &story.Body, &story.WordCount, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Story{}, nil, storage.ErrNotFound
		}
		return storage.Story{}, nil, fmt.Errorf("get story %d: %w", storyIndex, err)
	}
	story.CreatedAt = fromMillis(createdAt)
	story.UpdatedAt = fromMillis(updatedAt)

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT story_index, seq, word, contributor_id, target, created_at
		   FROM story_words
		  WHERE story_index = ?
		  ORDER BY seq ASC`,
		storyIndex,
	)
	if err != nil {
		return storage.Story{}, nil, fmt.Errorf("list word contributions: %w", err)
	}
	defer rows.Close()

	words := make([]storage.WordContribution, 0, story.WordCount)
	for rows.Next() {
		var contribution storage.WordContribution
		var target string
		var contributedAt int64
		if err := rows.Scan(
			&contribution.StoryIndex,
			&contribution.Seq,
			&contribution.Word,
			&contribution.ContributorID,
			&target,
			&contributedAt,
		); err != nil {
			return storage.Story{}, nil, fmt.Errorf("list word contributions: %w", err)
		}
		contribution.Target = storage.WordTarget(target)
		contribution.CreatedAt = fromMillis(contributedAt)
		words = append(words, contribution)
	}
	if err := rows.Err(); err != nil {
		return storage.Story{}, nil, fmt.Errorf("list word contributions: %w", err)
	}
	return story, words, nil
}

// ListStoryTitles returns every story's index and current title in index order.
func (s *Store) ListStoryTitles(ctx context.Context) ([]storage.StoryTitle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT story_index, title FROM stories ORDER BY story_index ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list story titles: %w", err)
	}
	defer rows.Close()

	var titles []storage.StoryTitle
	for rows.Next() {
		var title storage.StoryTitle
		if err := rows.Scan(&title.Index, &title.Title); err != nil {
			return nil, fmt.Errorf("list story titles: %w", err)
		}
		titles = append(titles, title)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list story titles: %w", err)
	}
	return titles, nil
}

// CountStories returns the number of stories in the ledger.
func (s *Store) CountStories(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}

	var count int64
	row := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM stories`)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count stories: %w", err)
	}
	return count, nil
}

// DepositTreasury credits the treasury balance without touching any story.
func (s *Store) DepositTreasury(ctx context.Context, amount int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if amount < 0 {
		return fmt.Errorf("amount must not be negative")
	}

	result, err := s.sqlDB.ExecContext(ctx, `UPDATE treasury SET balance = balance + ? WHERE id = 1`, amount)
	if err != nil {
		return fmt.Errorf("deposit treasury: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deposit treasury: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// TreasuryBalance returns the current treasury balance.
func (s *Store) TreasuryBalance(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}

	var balance int64
	row := s.sqlDB.QueryRowContext(ctx, `SELECT balance FROM treasury WHERE id = 1`)
	if err := row.Scan(&balance); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, storage.ErrNotFound
		}
		return 0, fmt.Errorf("get treasury balance: %w", err)
	}
	return balance, nil
}

// WithdrawTreasury drains the balance to zero and records the withdrawal in
// one transaction. The drained amount is returned.
func (s *Store) WithdrawTreasury(ctx context.Context, adminID string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	adminID = strings.TrimSpace(adminID)
	if adminID == "" {
		return 0, fmt.Errorf("admin id is required")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin withdraw: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var balance int64
	row := tx.QueryRowContext(ctx, `SELECT balance FROM treasury WHERE id = 1`)
	if err := row.Scan(&balance); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, storage.ErrNotFound
		}
		return 0, fmt.Errorf("get treasury balance: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `UPDATE treasury SET balance = 0 WHERE id = 1`); err != nil {
		return 0, fmt.Errorf("drain treasury: %w", err)
	}
	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO treasury_withdrawals (admin_id, amount, created_at) VALUES (?, ?, ?)`,
		adminID,
		balance,
		toMillis(time.Now().UTC()),
	); err != nil {
		return 0, fmt.Errorf("record withdrawal: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit withdraw: %w", err)
	}
	return balance, nil
}

func insertStory(ctx context.Context, tx *sql.Tx, story storage.Story, word, contributorID string) error {
	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO stories (story_index, title, body, word_count, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		story.Index,
		story.Title,
		story.Body,
		story.WordCount,
		toMillis(story.CreatedAt),
		toMillis(story.UpdatedAt),
	); err != nil {
		return fmt.Errorf("insert story %d: %w", story.Index, err)
	}
	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO story_words (story_index, seq, word, contributor_id, target, created_at)
		 VALUES (?, 0, ?, ?, ?, ?)`,
		story.Index,
		word,
		contributorID,
		string(storage.TargetTitle),
		toMillis(story.CreatedAt),
	); err != nil {
		return fmt.Errorf("record word contribution: %w", err)
	}
	return nil
}

func creditTreasury(ctx context.Context, tx *sql.Tx, amount int64) error {
	result, err := tx.ExecContext(ctx, `UPDATE treasury SET balance = balance + ? WHERE id = 1`, amount)
	if err != nil {
		return fmt.Errorf("credit treasury: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("credit treasury: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint failed") ||
		strings.Contains(message, "constraint failed: ledger_meta.id")
}

var _ storage.LedgerStore = (*Store)(nil)
