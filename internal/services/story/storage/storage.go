// Package storage defines persistence contracts for story ledger state.
package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound indicates a requested ledger record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a uniqueness-constrained record already exists.
	ErrAlreadyExists = errors.New("record already exists")
)

// WordTarget identifies which story field a word was contributed to.
type WordTarget string

const (
	// TargetTitle marks a word appended to the story title.
	TargetTitle WordTarget = "TITLE"
	// TargetBody marks a word appended to the story body.
	TargetBody WordTarget = "BODY"
)

// Story stores one story record. Index assignment is permanent and the
// title/body/word sequences only ever grow.
type Story struct {
	Index     int64
	Title     string
	Body      string
	WordCount int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WordContribution stores one attributed word in contribution order.
// Seq is the zero-based position across title and body contributions.
type WordContribution struct {
	StoryIndex    int64
	Seq           int
	Word          string
	ContributorID string
	Target        WordTarget
	CreatedAt     time.Time
}

// StoryTitle stores one entry of the story title enumeration.
type StoryTitle struct {
	Index int64
	Title string
}

// LedgerMeta stores the one-time initialization record for the ledger.
type LedgerMeta struct {
	AdminID       string
	InitializedAt time.Time
}

// Withdrawal stores one administrative treasury drain for auditing.
type Withdrawal struct {
	ID        int64
	AdminID   string
	Amount    int64
	CreatedAt time.Time
}

// StoryStore persists stories and their word attribution history. Mutating
// calls apply atomically: the text update, the attribution append, and the
// treasury credit commit together or not at all.
type StoryStore interface {
	CreateStory(ctx context.Context, word, contributorID string, payment int64) (Story, error)
	AppendWord(ctx context.Context, storyIndex int64, target WordTarget, word, contributorID string, payment int64) (Story, error)
	GetStory(ctx context.Context, storyIndex int64) (Story, []WordContribution, error)
	ListStoryTitles(ctx context.Context) ([]StoryTitle, error)
	CountStories(ctx context.Context) (int64, error)
}

// TreasuryStore persists the accumulated native-value balance.
type TreasuryStore interface {
	DepositTreasury(ctx context.Context, amount int64) error
	TreasuryBalance(ctx context.Context) (int64, error)
	// WithdrawTreasury atomically drains the balance to zero, records the
	// withdrawal, and returns the drained amount.
	WithdrawTreasury(ctx context.Context, adminID string) (int64, error)
}

// LedgerStore is the full persistence contract for the story ledger.
type LedgerStore interface {
	StoryStore
	TreasuryStore
	// InitializeLedger records the administrator and seeds the ledger with
	// the single-word story at index 0. It returns ErrAlreadyExists when the
	// ledger has been initialized before.
	InitializeLedger(ctx context.Context, adminID, seedWord string) (Story, error)
	// LedgerMeta returns the initialization record, or ErrNotFound when the
	// ledger is uninitialized.
	LedgerMeta(ctx context.Context) (LedgerMeta, error)
}
