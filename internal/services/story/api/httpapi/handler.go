// Package httpapi exposes the story ledger over a JSON HTTP API.
package httpapi

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	apperrors "github.com/Jdubedition/dapp-owaat/internal/platform/errors"
	"github.com/Jdubedition/dapp-owaat/internal/platform/errors/i18n"
	"github.com/Jdubedition/dapp-owaat/internal/services/story/app"
	"github.com/Jdubedition/dapp-owaat/internal/services/story/auth"
	"github.com/Jdubedition/dapp-owaat/internal/services/story/domain"
)

// Handler serves the story ledger HTTP API.
type Handler struct {
	ledger   *app.Ledger
	treasury *app.Treasury
	grants   auth.Config
	mux      *http.ServeMux
}

// NewHandler wires the story ledger routes onto a request mux.
func NewHandler(ledger *app.Ledger, treasury *app.Treasury, grants auth.Config) *Handler {
	h := &Handler{
		ledger:   ledger,
		treasury: treasury,
		grants:   grants,
		mux:      http.NewServeMux(),
	}
	h.mux.HandleFunc("POST /v1/stories", h.createStory)
	h.mux.HandleFunc("POST /v1/stories/{index}/body/words", h.addWordToBody)
	h.mux.HandleFunc("POST /v1/stories/{index}/title/words", h.addWordToTitle)
	h.mux.HandleFunc("GET /v1/stories/{index}", h.getStory)
	h.mux.HandleFunc("GET /v1/stories", h.listStories)
	h.mux.HandleFunc("POST /v1/treasury/deposits", h.deposit)
	h.mux.HandleFunc("GET /v1/treasury/balance", h.treasuryBalance)
	h.mux.HandleFunc("POST /v1/treasury/withdrawals", h.treasuryWithdraw)
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

type wordRequest struct {
	Word    string `json:"word"`
	Payment string `json:"payment"`
}

type depositRequest struct {
	Payment string `json:"payment"`
}

type createStoryResponse struct {
	Index int64 `json:"index"`
}

type storyResponse struct {
	Index        int64    `json:"index"`
	Title        string   `json:"title"`
	Body         string   `json:"body"`
	WordCount    int      `json:"word_count"`
	Words        []string `json:"words"`
	Contributors []string `json:"contributors"`
}

type storyTitleEntry struct {
	Index int64  `json:"index"`
	Title string `json:"title"`
}

type storyListResponse struct {
	Count  int64             `json:"count"`
	Titles []storyTitleEntry `json:"titles"`
}

type balanceResponse struct {
	Balance string `json:"balance"`
}

type withdrawResponse struct {
	Amount string `json:"amount"`
}

func (h *Handler) createStory(w http.ResponseWriter, r *http.Request) {
	caller, err := h.requireCaller(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req wordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	payment, err := domain.ParseCoins(req.Payment)
	if err != nil {
		writeError(w, r, err)
		return
	}
	index, err := h.ledger.CreateStory(r.Context(), caller, req.Word, payment)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, createStoryResponse{Index: index})
}

func (h *Handler) addWordToBody(w http.ResponseWriter, r *http.Request) {
	h.addWord(w, r, h.ledger.AddWordToBody)
}

func (h *Handler) addWordToTitle(w http.ResponseWriter, r *http.Request) {
	h.addWord(w, r, h.ledger.AddWordToTitle)
}

func (h *Handler) addWord(w http.ResponseWriter, r *http.Request, appendWord func(ctx context.Context, callerID string, storyIndex int64, word string, payment domain.Coins) error) {
	caller, err := h.requireCaller(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	index, err := storyIndexFromPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req wordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	payment, err := domain.ParseCoins(req.Payment)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := appendWord(r.Context(), caller, index, req.Word, payment); err != nil {
		writeError(w, r, err)
		return
	}
	story, err := h.ledger.GetStory(r.Context(), index)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, storyToResponse(story))
}

func (h *Handler) getStory(w http.ResponseWriter, r *http.Request) {
	index, err := storyIndexFromPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	story, err := h.ledger.GetStory(r.Context(), index)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, storyToResponse(story))
}

func (h *Handler) listStories(w http.ResponseWriter, r *http.Request) {
	count, err := h.ledger.NumStories(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	titles, err := h.ledger.StoryTitles(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp := storyListResponse{
		Count:  count,
		Titles: make([]storyTitleEntry, 0, len(titles)),
	}
	for _, title := range titles {
		resp.Titles = append(resp.Titles, storyTitleEntry{Index: title.Index, Title: title.Title})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) deposit(w http.ResponseWriter, r *http.Request) {
	var req depositRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	payment, err := domain.ParseCoins(req.Payment)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.ledger.Deposit(r.Context(), payment); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) treasuryBalance(w http.ResponseWriter, r *http.Request) {
	caller, err := h.requireCaller(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	balance, err := h.treasury.Balance(r.Context(), caller)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, balanceResponse{Balance: balance.String()})
}

func (h *Handler) treasuryWithdraw(w http.ResponseWriter, r *http.Request) {
	caller, err := h.requireCaller(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	amount, err := h.treasury.Withdraw(r.Context(), caller)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, withdrawResponse{Amount: amount.String()})
}

// requireCaller resolves the caller identity from the bearer contributor grant.
func (h *Handler) requireCaller(r *http.Request) (string, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return "", apperrors.New(apperrors.CodeContributorRequired, "contributor identity is required")
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return "", apperrors.New(apperrors.CodeGrantInvalid, "authorization header must use the Bearer scheme")
	}
	grant, err := auth.VerifyGrant(token, h.grants)
	if err != nil {
		return "", err
	}
	return grant.ContributorID, nil
}

func storyIndexFromPath(r *http.Request) (int64, error) {
	raw := r.PathValue("index")
	index, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || index < 0 {
		return 0, apperrors.WithMetadata(
			apperrors.CodeStoryNotFound,
			"story "+raw+" does not exist",
			map[string]string{"Index": raw},
		)
	}
	return index, nil
}

func decodeJSON(r *http.Request, target any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return apperrors.Wrap(apperrors.CodeRequestInvalid, "request body is not valid JSON", err)
	}
	return nil
}

func storyToResponse(story app.StoryView) storyResponse {
	return storyResponse{
		Index:        story.Index,
		Title:        story.Title,
		Body:         story.Body,
		WordCount:    story.WordCount,
		Words:        story.Words,
		Contributors: story.Contributors,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	locale := i18n.MatchLocale(r.Header.Get("Accept-Language"))
	status, payload := apperrors.HandleHTTP(err, locale)
	if status >= http.StatusInternalServerError {
		log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
	}
	writeJSON(w, status, payload)
}
