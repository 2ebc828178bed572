package domain

import "github.com/modelcontextprotocol/go-sdk/mcp"

// StoryCreateInput represents the MCP tool input for story creation.
type StoryCreateInput struct {
	Word          string `json:"word" jsonschema:"first word of the new story, becomes its title"`
	Payment       string `json:"payment" jsonschema:"attached payment as a decimal coin amount"`
	ContributorID string `json:"contributor_id" jsonschema:"contributor identifier credited for the word"`
}

// StoryCreateResult represents the MCP tool output for story creation.
type StoryCreateResult struct {
	Index int64 `json:"index" jsonschema:"permanent index of the new story"`
}

// StoryAddWordInput represents the MCP tool input for appending one word.
type StoryAddWordInput struct {
	StoryIndex    int64  `json:"story_index" jsonschema:"index of the story to extend"`
	Word          string `json:"word" jsonschema:"single word to append"`
	Payment       string `json:"payment" jsonschema:"attached payment as a decimal coin amount"`
	ContributorID string `json:"contributor_id" jsonschema:"contributor identifier credited for the word"`
}

// StoryGetInput represents the MCP tool input for reading one story.
type StoryGetInput struct {
	StoryIndex int64 `json:"story_index" jsonschema:"index of the story to read"`
}

// StoryResult represents a story snapshot with its word attribution history.
// Words and Contributors are parallel sequences in contribution order.
type StoryResult struct {
	Index        int64    `json:"index" jsonschema:"permanent story index"`
	Title        string   `json:"title" jsonschema:"current title text"`
	Body         string   `json:"body" jsonschema:"current body text"`
	WordCount    int      `json:"word_count" jsonschema:"total contributed words across title and body"`
	Words        []string `json:"words" jsonschema:"contributed words in contribution order"`
	Contributors []string `json:"contributors" jsonschema:"contributor ids parallel to words"`
}

// StoryListInput represents the MCP tool input for listing stories.
type StoryListInput struct{}

// StoryListEntry represents one story in a listing.
type StoryListEntry struct {
	Index int64  `json:"index" jsonschema:"permanent story index"`
	Title string `json:"title" jsonschema:"current title text"`
}

// StoryListResult represents the MCP tool output for listing stories.
type StoryListResult struct {
	Count   int64            `json:"count" jsonschema:"number of stories in the ledger"`
	Stories []StoryListEntry `json:"stories" jsonschema:"story titles in index order"`
}

// StoryCreateTool defines the MCP tool schema for story creation.
func StoryCreateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "story_create",
		Description: "Creates a new story from its first word",
	}
}

// StoryAddWordTool defines the MCP tool schema for appending a body word.
func StoryAddWordTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "story_add_word",
		Description: "Appends one word to a story's body",
	}
}

// StoryTitleAddWordTool defines the MCP tool schema for appending a title word.
func StoryTitleAddWordTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "story_title_add_word",
		Description: "Appends one word to a story's title",
	}
}

// StoryGetTool defines the MCP tool schema for reading one story.
func StoryGetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "story_get",
		Description: "Reads a story with its full word attribution",
	}
}

// StoryListTool defines the MCP tool schema for listing stories.
func StoryListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "story_list",
		Description: "Lists every story index and title",
	}
}
