package app

import (
	"context"
	"path/filepath"
	"testing"

	apperrors "github.com/Jdubedition/dapp-owaat/internal/platform/errors"
	"github.com/Jdubedition/dapp-owaat/internal/services/story/domain"
	storysqlite "github.com/Jdubedition/dapp-owaat/internal/services/story/storage/sqlite"
)

const (
	adminID = "admin-1"

	createFee = domain.Coins(100_000) // 0.1
	bodyFee   = domain.Coins(10_000)  // 0.01
	titleFee  = domain.Coins(20_000)  // 0.02
)

func newTestLedger(t *testing.T) (*Ledger, *Treasury) {
	t.Helper()
	store, err := storysqlite.Open(filepath.Join(t.TempDir(), "story.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	ledger := NewLedger(store)
	if err := ledger.Initialize(context.Background(), adminID); err != nil {
		t.Fatalf("initialize ledger: %v", err)
	}
	return ledger, NewTreasury(store)
}

func TestInitializeRunsExactlyOnce(t *testing.T) {
	t.Parallel()

	ledger, _ := newTestLedger(t)
	err := ledger.Initialize(context.Background(), "someone-else")
	if got := apperrors.GetCode(err); got != apperrors.CodeLedgerAlreadyInitialized {
		t.Fatalf("code = %q, want already initialized", got)
	}
}

func TestOperationsRequireInitialization(t *testing.T) {
	t.Parallel()

	store, err := storysqlite.Open(filepath.Join(t.TempDir(), "story.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	ledger := NewLedger(store)

	_, err = ledger.CreateStory(context.Background(), "alice", "Test", createFee)
	if got := apperrors.GetCode(err); got != apperrors.CodeLedgerNotInitialized {
		t.Fatalf("code = %q, want not initialized", got)
	}
}

func TestCreateStory(t *testing.T) {
	t.Parallel()

	ledger, treasury := newTestLedger(t)
	ctx := context.Background()

	index, err := ledger.CreateStory(ctx, "alice", "Test", createFee)
	if err != nil {
		t.Fatalf("create story: %v", err)
	}
	if index != 1 {
		t.Fatalf("index = %d, want 1", index)
	}

	count, err := ledger.NumStories(ctx)
	if err != nil {
		t.Fatalf("num stories: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}

	titles, err := ledger.StoryTitles(ctx)
	if err != nil {
		t.Fatalf("story titles: %v", err)
	}
	if len(titles) != 2 || titles[0].Title != "The" || titles[1].Title != "Test" {
		t.Fatalf("titles = %+v", titles)
	}

	story, err := ledger.GetStory(ctx, index)
	if err != nil {
		t.Fatalf("get story: %v", err)
	}
	if story.Title != "Test" || story.Body != "" || story.WordCount != 1 {
		t.Fatalf("story = %+v", story)
	}
	if len(story.Words) != 1 || story.Words[0] != "Test" || story.Contributors[0] != "alice" {
		t.Fatalf("attribution = %+v", story)
	}

	balance, err := treasury.Balance(ctx, adminID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != createFee {
		t.Fatalf("balance = %s, want %s", balance, createFee)
	}
}

func TestCreateStoryLongWordPricing(t *testing.T) {
	t.Parallel()

	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	// "Perspicacious" is 13 characters: 0.1 base plus 4 * 0.1 extra.
	_, err := ledger.CreateStory(ctx, "alice", "Perspicacious", createFee)
	if got := apperrors.GetCode(err); got != apperrors.CodePaymentInsufficient {
		t.Fatalf("code = %q, want payment insufficient", got)
	}

	index, err := ledger.CreateStory(ctx, "alice", "Perspicacious", domain.Coins(500_000))
	if err != nil {
		t.Fatalf("create story with exact fee: %v", err)
	}
	if index != 1 {
		t.Fatalf("index = %d, want 1", index)
	}
}

func TestCreateStoryValidatesBeforePayment(t *testing.T) {
	t.Parallel()

	ledger, _ := newTestLedger(t)

	// Word-shape errors trigger even with zero payment attached.
	_, err := ledger.CreateStory(context.Background(), "alice", "", 0)
	if got := apperrors.GetCode(err); got != apperrors.CodeWordTooShort {
		t.Fatalf("code = %q, want word too short", got)
	}
	_, err = ledger.CreateStory(context.Background(), "alice", "two words", 0)
	if got := apperrors.GetCode(err); got != apperrors.CodeWordContainsSpace {
		t.Fatalf("code = %q, want word contains space", got)
	}
}

func TestCreateStoryKeepsFullOverpayment(t *testing.T) {
	t.Parallel()

	ledger, treasury := newTestLedger(t)
	ctx := context.Background()

	if _, err := ledger.CreateStory(ctx, "alice", "Test", domain.Coins(domain.MicroPerCoin)); err != nil {
		t.Fatalf("create story: %v", err)
	}
	balance, err := treasury.Balance(ctx, adminID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != domain.Coins(domain.MicroPerCoin) {
		t.Fatalf("balance = %s, want full 1 coin retained", balance)
	}
}

func TestAddWordToBody(t *testing.T) {
	t.Parallel()

	ledger, treasury := newTestLedger(t)
	ctx := context.Background()

	if err := ledger.AddWordToBody(ctx, "alice", 0, "test", bodyFee); err != nil {
		t.Fatalf("add first body word: %v", err)
	}
	if err := ledger.AddWordToBody(ctx, "bob", 0, "this", bodyFee); err != nil {
		t.Fatalf("add second body word: %v", err)
	}

	story, err := ledger.GetStory(ctx, 0)
	if err != nil {
		t.Fatalf("get story: %v", err)
	}
	if story.Body != "test this" {
		t.Fatalf("body = %q, want %q", story.Body, "test this")
	}
	if story.Title != "The" {
		t.Fatalf("title = %q, want unchanged", story.Title)
	}
	if story.WordCount != 3 || len(story.Words) != 3 {
		t.Fatalf("word count = %d, words = %d", story.WordCount, len(story.Words))
	}
	if story.Contributors[1] != "alice" || story.Contributors[2] != "bob" {
		t.Fatalf("contributors = %+v", story.Contributors)
	}

	balance, err := treasury.Balance(ctx, adminID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 2*bodyFee {
		t.Fatalf("balance = %s, want 0.02", balance)
	}
}

func TestAddWordToTitle(t *testing.T) {
	t.Parallel()

	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	if err := ledger.AddWordToTitle(ctx, "alice", 0, "test", titleFee); err != nil {
		t.Fatalf("add title word: %v", err)
	}
	story, err := ledger.GetStory(ctx, 0)
	if err != nil {
		t.Fatalf("get story: %v", err)
	}
	if story.Title != "The test" {
		t.Fatalf("title = %q, want %q", story.Title, "The test")
	}
	if story.Body != "" {
		t.Fatalf("body = %q, want unchanged", story.Body)
	}
}

func TestAddWordMissingStory(t *testing.T) {
	t.Parallel()

	ledger, _ := newTestLedger(t)

	err := ledger.AddWordToBody(context.Background(), "alice", 42, "word", bodyFee)
	if got := apperrors.GetCode(err); got != apperrors.CodeStoryNotFound {
		t.Fatalf("code = %q, want story not found", got)
	}
	if err.Error() != "story 42 does not exist" {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestAddWordInsufficientPayment(t *testing.T) {
	t.Parallel()

	ledger, treasury := newTestLedger(t)
	ctx := context.Background()

	err := ledger.AddWordToTitle(ctx, "alice", 0, "word", bodyFee)
	if got := apperrors.GetCode(err); got != apperrors.CodePaymentInsufficient {
		t.Fatalf("code = %q, want payment insufficient", got)
	}

	// A rejected call retains no fee.
	balance, err := treasury.Balance(ctx, adminID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 0 {
		t.Fatalf("balance = %s, want 0", balance)
	}
}

func TestGetStoryMissingIndex(t *testing.T) {
	t.Parallel()

	ledger, _ := newTestLedger(t)

	_, err := ledger.GetStory(context.Background(), 3)
	if got := apperrors.GetCode(err); got != apperrors.CodeStoryNotFound {
		t.Fatalf("code = %q, want story not found", got)
	}
}

func TestDepositIsOpenToAnyCaller(t *testing.T) {
	t.Parallel()

	ledger, treasury := newTestLedger(t)
	ctx := context.Background()

	if err := ledger.Deposit(ctx, domain.Coins(300_000)); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	balance, err := treasury.Balance(ctx, adminID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != domain.Coins(300_000) {
		t.Fatalf("balance = %s, want 0.3", balance)
	}
}
