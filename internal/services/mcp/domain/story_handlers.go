// Package domain defines MCP tool schemas and handlers for the story ledger.
package domain

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Jdubedition/dapp-owaat/internal/services/story/app"
	storydomain "github.com/Jdubedition/dapp-owaat/internal/services/story/domain"
)

// StoryCreateHandler creates a new story from its first word.
func StoryCreateHandler(ledger *app.Ledger) mcp.ToolHandlerFor[StoryCreateInput, StoryCreateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input StoryCreateInput) (*mcp.CallToolResult, StoryCreateResult, error) {
		payment, err := storydomain.ParseCoins(input.Payment)
		if err != nil {
			return nil, StoryCreateResult{}, err
		}
		index, err := ledger.CreateStory(ctx, input.ContributorID, input.Word, payment)
		if err != nil {
			return nil, StoryCreateResult{}, err
		}
		return nil, StoryCreateResult{Index: index}, nil
	}
}

// StoryAddWordHandler appends one word to a story's body.
func StoryAddWordHandler(ledger *app.Ledger) mcp.ToolHandlerFor[StoryAddWordInput, StoryResult] {
	return appendWordHandler(ledger, ledger.AddWordToBody)
}

// StoryTitleAddWordHandler appends one word to a story's title.
func StoryTitleAddWordHandler(ledger *app.Ledger) mcp.ToolHandlerFor[StoryAddWordInput, StoryResult] {
	return appendWordHandler(ledger, ledger.AddWordToTitle)
}

func appendWordHandler(ledger *app.Ledger, appendWord func(ctx context.Context, callerID string, storyIndex int64, word string, payment storydomain.Coins) error) mcp.ToolHandlerFor[StoryAddWordInput, StoryResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input StoryAddWordInput) (*mcp.CallToolResult, StoryResult, error) {
		payment, err := storydomain.ParseCoins(input.Payment)
		if err != nil {
			return nil, StoryResult{}, err
		}
		if err := appendWord(ctx, input.ContributorID, input.StoryIndex, input.Word, payment); err != nil {
			return nil, StoryResult{}, err
		}
		story, err := ledger.GetStory(ctx, input.StoryIndex)
		if err != nil {
			return nil, StoryResult{}, err
		}
		return nil, storyToResult(story), nil
	}
}

// StoryGetHandler reads a story with its full word attribution.
func StoryGetHandler(ledger *app.Ledger) mcp.ToolHandlerFor[StoryGetInput, StoryResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input StoryGetInput) (*mcp.CallToolResult, StoryResult, error) {
		story, err := ledger.GetStory(ctx, input.StoryIndex)
		if err != nil {
			return nil, StoryResult{}, err
		}
		return nil, storyToResult(story), nil
	}
}

// StoryListHandler lists every story index and title.
func StoryListHandler(ledger *app.Ledger) mcp.ToolHandlerFor[StoryListInput, StoryListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ StoryListInput) (*mcp.CallToolResult, StoryListResult, error) {
		count, err := ledger.NumStories(ctx)
		if err != nil {
			return nil, StoryListResult{}, err
		}
		titles, err := ledger.StoryTitles(ctx)
		if err != nil {
			return nil, StoryListResult{}, err
		}
		result := StoryListResult{
			Count:   count,
			Stories: make([]StoryListEntry, 0, len(titles)),
		}
		for _, title := range titles {
			result.Stories = append(result.Stories, StoryListEntry{Index: title.Index, Title: title.Title})
		}
		return nil, result, nil
	}
}

func storyToResult(story app.StoryView) StoryResult {
	return StoryResult{
		Index:        story.Index,
		Title:        story.Title,
		Body:         story.Body,
		WordCount:    story.WordCount,
		Words:        story.Words,
		Contributors: story.Contributors,
	}
}
