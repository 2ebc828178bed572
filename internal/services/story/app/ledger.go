// Package app implements the story ledger and treasury application services.
package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/Jdubedition/dapp-owaat/internal/platform/errors"
	"github.com/Jdubedition/dapp-owaat/internal/services/story/domain"
	"github.com/Jdubedition/dapp-owaat/internal/services/story/storage"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// SeedWord is the title of the story the ledger is seeded with at initialization.
const SeedWord = "The"

// StoryView is the read model returned for a single story. Words and
// Contributors are parallel sequences in contribution order.
type StoryView struct {
	Index        int64
	Title        string
	Body         string
	WordCount    int
	Words        []string
	Contributors []string
}

// Ledger owns the story collection and its paid word-append operations.
// It is constructed bare over a store and must be initialized exactly once
// before any other operation.
type Ledger struct {
	store  storage.LedgerStore
	tracer trace.Tracer
}

// NewLedger creates a story ledger over the given store.
func NewLedger(store storage.LedgerStore) *Ledger {
	return &Ledger{
		store:  store,
		tracer: otel.Tracer("story/app"),
	}
}

// Initialize records the administrator identity and seeds the ledger with
// the single-word story at index 0. Re-invocation is rejected.
func (l *Ledger) Initialize(ctx context.Context, adminID string) error {
	ctx, span := l.tracer.Start(ctx, "ledger.initialize")
	defer span.End()

	adminID = strings.TrimSpace(adminID)
	if adminID == "" {
		return apperrors.New(apperrors.CodeContributorRequired, "contributor identity is required")
	}
	if _, err := l.store.InitializeLedger(ctx, adminID, SeedWord); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return apperrors.New(apperrors.CodeLedgerAlreadyInitialized, "ledger is already initialized")
		}
		return fmt.Errorf("initialize ledger: %w", err)
	}
	return nil
}

// Initialized reports whether the one-time setup has run.
func (l *Ledger) Initialized(ctx context.Context) (bool, error) {
	_, err := l.store.LedgerMeta(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("get ledger meta: %w", err)
	}
	return true, nil
}

// CreateStory validates and prices the first word, appends a new story, and
// credits the full payment to the treasury. The new story's permanent index
// is returned. Word validation runs before the payment check.
func (l *Ledger) CreateStory(ctx context.Context, callerID, word string, payment domain.Coins) (int64, error) {
	ctx, span := l.tracer.Start(ctx, "ledger.create_story")
	defer span.End()

	if err := l.requireInitialized(ctx); err != nil {
		return 0, err
	}
	callerID, err := requireCaller(callerID)
	if err != nil {
		return 0, err
	}
	if err := domain.ValidateWord(word); err != nil {
		return 0, err
	}
	if err := domain.CreateStoryFees.CheckPayment(word, payment); err != nil {
		return 0, err
	}

	story, err := l.store.CreateStory(ctx, word, callerID, int64(payment))
	if err != nil {
		return 0, fmt.Errorf("create story: %w", err)
	}
	span.SetAttributes(attribute.Int64("story.index", story.Index))
	return story.Index, nil
}

// AddWordToBody validates, prices, and appends one word to a story's body.
func (l *Ledger) AddWordToBody(ctx context.Context, callerID string, storyIndex int64, word string, payment domain.Coins) error {
	ctx, span := l.tracer.Start(ctx, "ledger.add_word_to_body",
		trace.WithAttributes(attribute.Int64("story.index", storyIndex)))
	defer span.End()

	return l.appendWord(ctx, callerID, storyIndex, storage.TargetBody, word, payment, domain.BodyWordFees)
}

// AddWordToTitle validates, prices, and appends one word to a story's title.
func (l *Ledger) AddWordToTitle(ctx context.Context, callerID string, storyIndex int64, word string, payment domain.Coins) error {
	ctx, span := l.tracer.Start(ctx, "ledger.add_word_to_title",
		trace.WithAttributes(attribute.Int64("story.index", storyIndex)))
	defer span.End()

	return l.appendWord(ctx, callerID, storyIndex, storage.TargetTitle, word, payment, domain.TitleWordFees)
}

func (l *Ledger) appendWord(ctx context.Context, callerID string, storyIndex int64, target storage.WordTarget, word string, payment domain.Coins, fees domain.FeeSchedule) error {
	if err := l.requireInitialized(ctx); err != nil {
		return err
	}
	callerID, err := requireCaller(callerID)
	if err != nil {
		return err
	}
	if err := domain.ValidateWord(word); err != nil {
		return err
	}
	if err := fees.CheckPayment(word, payment); err != nil {
		return err
	}

	if _, err := l.store.AppendWord(ctx, storyIndex, target, word, callerID, int64(payment)); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return storyNotFound(storyIndex)
		}
		return fmt.Errorf("append word: %w", err)
	}
	return nil
}

// GetStory returns one story with its full word attribution history.
func (l *Ledger) GetStory(ctx context.Context, storyIndex int64) (StoryView, error) {
	ctx, span := l.tracer.Start(ctx, "ledger.get_story",
		trace.WithAttributes(attribute.Int64("story.index", storyIndex)))
	defer span.End()

	if err := l.requireInitialized(ctx); err != nil {
		return StoryView{}, err
	}
	story, contributions, err := l.store.GetStory(ctx, storyIndex)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return StoryView{}, storyNotFound(storyIndex)
		}
		return StoryView{}, fmt.Errorf("get story: %w", err)
	}

	view := StoryView{
		Index:        story.Index,
		Title:        story.Title,
		Body:         story.Body,
		WordCount:    story.WordCount,
		Words:        make([]string, 0, len(contributions)),
		Contributors: make([]string, 0, len(contributions)),
	}
	for _, contribution := range contributions {
		view.Words = append(view.Words, contribution.Word)
		view.Contributors = append(view.Contributors, contribution.ContributorID)
	}
	return view, nil
}

// NumStories returns the number of stories, seed included.
func (l *Ledger) NumStories(ctx context.Context) (int64, error) {
	if err := l.requireInitialized(ctx); err != nil {
		return 0, err
	}
	count, err := l.store.CountStories(ctx)
	if err != nil {
		return 0, fmt.Errorf("count stories: %w", err)
	}
	return count, nil
}

// StoryTitles returns every story's index and current title in index order.
func (l *Ledger) StoryTitles(ctx context.Context) ([]storage.StoryTitle, error) {
	if err := l.requireInitialized(ctx); err != nil {
		return nil, err
	}
	titles, err := l.store.ListStoryTitles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list story titles: %w", err)
	}
	return titles, nil
}

// Deposit credits the treasury without touching any story. The funding path
// is deliberately open to any caller.
func (l *Ledger) Deposit(ctx context.Context, payment domain.Coins) error {
	ctx, span := l.tracer.Start(ctx, "ledger.deposit")
	defer span.End()

	if err := l.requireInitialized(ctx); err != nil {
		return err
	}
	if payment < 0 {
		return apperrors.New(apperrors.CodePaymentInvalid, "payment amount is not a valid decimal")
	}
	if err := l.store.DepositTreasury(ctx, int64(payment)); err != nil {
		return fmt.Errorf("deposit: %w", err)
	}
	return nil
}

func (l *Ledger) requireInitialized(ctx context.Context) error {
	initialized, err := l.Initialized(ctx)
	if err != nil {
		return err
	}
	if !initialized {
		return apperrors.New(apperrors.CodeLedgerNotInitialized, "ledger is not initialized")
	}
	return nil
}

func requireCaller(callerID string) (string, error) {
	callerID = strings.TrimSpace(callerID)
	if callerID == "" {
		return "", apperrors.New(apperrors.CodeContributorRequired, "contributor identity is required")
	}
	return callerID, nil
}

func storyNotFound(storyIndex int64) error {
	return apperrors.WithMetadata(
		apperrors.CodeStoryNotFound,
		fmt.Sprintf("story %d does not exist", storyIndex),
		map[string]string{"Index": strconv.FormatInt(storyIndex, 10)},
	)
}
