package domain

import (
	"context"
	"path/filepath"
	"testing"

	apperrors "github.com/Jdubedition/dapp-owaat/internal/platform/errors"
	"github.com/Jdubedition/dapp-owaat/internal/services/story/app"
	storysqlite "github.com/Jdubedition/dapp-owaat/internal/services/story/storage/sqlite"
)

const testAdminID = "admin-1"

func newTestLedger(t *testing.T) (*app.Ledger, *app.Treasury) {
	t.Helper()
	store, err := storysqlite.Open(filepath.Join(t.TempDir(), "story.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	ledger := app.NewLedger(store)
	if err := ledger.Initialize(context.Background(), testAdminID); err != nil {
		t.Fatalf("initialize ledger: %v", err)
	}
	return ledger, app.NewTreasury(store)
}

func TestStoryCreateHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ledger, _ := newTestLedger(t)
		handler := StoryCreateHandler(ledger)

		_, result, err := handler(context.Background(), nil, StoryCreateInput{
			Word:          "Test",
			Payment:       "0.1",
			ContributorID: "alice",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Index != 1 {
			t.Errorf("expected index 1, got %d", result.Index)
		}
	})

	t.Run("invalid payment string", func(t *testing.T) {
		ledger, _ := newTestLedger(t)
		handler := StoryCreateHandler(ledger)

		_, _, err := handler(context.Background(), nil, StoryCreateInput{
			Word:          "Test",
			Payment:       "lots",
			ContributorID: "alice",
		})
		if got := apperrors.GetCode(err); got != apperrors.CodePaymentInvalid {
			t.Fatalf("code = %q, want payment invalid", got)
		}
	})

	t.Run("insufficient payment", func(t *testing.T) {
		ledger, _ := newTestLedger(t)
		handler := StoryCreateHandler(ledger)

		_, _, err := handler(context.Background(), nil, StoryCreateInput{
			Word:          "Test",
			Payment:       "0.01",
			ContributorID: "alice",
		})
		if got := apperrors.GetCode(err); got != apperrors.CodePaymentInsufficient {
			t.Fatalf("code = %q, want payment insufficient", got)
		}
	})
}

func TestStoryAddWordHandlers(t *testing.T) {
	t.Run("body word", func(t *testing.T) {
		ledger, _ := newTestLedger(t)
		handler := StoryAddWordHandler(ledger)

		_, result, err := handler(context.Background(), nil, StoryAddWordInput{
			StoryIndex:    0,
			Word:          "test",
			Payment:       "0.01",
			ContributorID: "bob",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Body != "test" || result.Title != "The" {
			t.Errorf("story = %+v", result)
		}
		if result.WordCount != 2 || result.Contributors[1] != "bob" {
			t.Errorf("attribution = %+v", result)
		}
	})

	t.Run("title word", func(t *testing.T) {
		ledger, _ := newTestLedger(t)
		handler := StoryTitleAddWordHandler(ledger)

		_, result, err := handler(context.Background(), nil, StoryAddWordInput{
			StoryIndex:    0,
			Word:          "test",
			Payment:       "0.02",
			ContributorID: "bob",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Title != "The test" || result.Body != "" {
			t.Errorf("story = %+v", result)
		}
	})

	t.Run("missing story", func(t *testing.T) {
		ledger, _ := newTestLedger(t)
		handler := StoryAddWordHandler(ledger)

		_, _, err := handler(context.Background(), nil, StoryAddWordInput{
			StoryIndex:    42,
			Word:          "test",
			Payment:       "0.01",
			ContributorID: "bob",
		})
		if got := apperrors.GetCode(err); got != apperrors.CodeStoryNotFound {
			t.Fatalf("code = %q, want story not found", got)
		}
	})

	t.Run("word with spaces", func(t *testing.T) {
		ledger, _ := newTestLedger(t)
		handler := StoryAddWordHandler(ledger)

		_, _, err := handler(context.Background(), nil, StoryAddWordInput{
			StoryIndex:    0,
			Word:          "two words",
			Payment:       "1",
			ContributorID: "bob",
		})
		if got := apperrors.GetCode(err); got != apperrors.CodeWordContainsSpace {
			t.Fatalf("code = %q, want word contains space", got)
		}
	})
}

func TestStoryGetAndListHandlers(t *testing.T) {
	ledger, _ := newTestLedger(t)
	create := StoryCreateHandler(ledger)
	if _, _, err := create(context.Background(), nil, StoryCreateInput{Word: "Test", Payment: "0.1", ContributorID: "alice"}); err != nil {
		t.Fatalf("create story: %v", err)
	}

	_, story, err := StoryGetHandler(ledger)(context.Background(), nil, StoryGetInput{StoryIndex: 1})
	if err != nil {
		t.Fatalf("get story: %v", err)
	}
	if story.Title != "Test" || story.Contributors[0] != "alice" {
		t.Errorf("story = %+v", story)
	}

	_, list, err := StoryListHandler(ledger)(context.Background(), nil, StoryListInput{})
	if err != nil {
		t.Fatalf("list stories: %v", err)
	}
	if list.Count != 2 || len(list.Stories) != 2 {
		t.Fatalf("list = %+v", list)
	}
	if list.Stories[0].Title != "The" || list.Stories[1].Title != "Test" {
		t.Errorf("titles = %+v", list.Stories)
	}
}

func TestTreasuryHandlers(t *testing.T) {
	t.Run("deposit then withdraw", func(t *testing.T) {
		ledger, treasury := newTestLedger(t)

		_, deposited, err := TreasuryDepositHandler(ledger)(context.Background(), nil, TreasuryDepositInput{Payment: "0.5"})
		if err != nil {
			t.Fatalf("deposit: %v", err)
		}
		if deposited.Deposited != "0.5" {
			t.Errorf("deposited = %q, want 0.5", deposited.Deposited)
		}

		_, balance, err := TreasuryBalanceHandler(treasury)(context.Background(), nil, TreasuryBalanceInput{AdminID: testAdminID})
		if err != nil {
			t.Fatalf("balance: %v", err)
		}
		if balance.Balance != "0.5" {
			t.Errorf("balance = %q, want 0.5", balance.Balance)
		}

		_, withdrawn, err := TreasuryWithdrawHandler(treasury)(context.Background(), nil, TreasuryWithdrawInput{AdminID: testAdminID})
		if err != nil {
			t.Fatalf("withdraw: %v", err)
		}
		if withdrawn.Amount != "0.5" {
			t.Errorf("withdrawn = %q, want 0.5", withdrawn.Amount)
		}
	})

	t.Run("non-administrator", func(t *testing.T) {
		_, treasury := newTestLedger(t)

		_, _, err := TreasuryBalanceHandler(treasury)(context.Background(), nil, TreasuryBalanceInput{AdminID: "mallory"})
		if got := apperrors.GetCode(err); got != apperrors.CodeTreasuryUnauthorized {
			t.Fatalf("code = %q, want unauthorized", got)
		}
	})
}
