// ABOUTME: MCP tool definitions and registration for the MindSpace server
// ABOUTME: JSON schemas for the mood, stress quiz and journal tools
package mcp

import (
	"github.com/harper/mindspace/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

var dateProperty = map[string]interface{}{
	"type":        "string",
	"description": "Date as YYYY-MM-DD, 'today' or 'yesterday' (default: today)",
}

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, store *storage.Storage) *Handlers {
	handlers := &Handlers{storage: store}

	// 1. log_mood - Log the mood for a day
	server.AddTool(mcp.Tool{
		Name:        "log_mood",
		Description: "Log the user's mood for a day. One mood per day; logging again replaces it. Returns whether a new entry was created and the current streak.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"mood": map[string]interface{}{
					"type":        "string",
					"description": "Mood emoji or name: " + moodNames(),
				},
				"note": map[string]interface{}{
					"type":        "string",
					"description": "Optional short note",
				},
				"date": dateProperty,
			},
			Required: []string{"mood"},
		},
	}, handlers.LogMood)

	// 2. get_mood - Get the mood for a day
	server.AddTool(mcp.Tool{
		Name:        "get_mood",
		Description: "Get the mood logged for a day. Returns null if nothing was logged.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"date": dateProperty,
			},
		},
	}, handlers.GetMood)

	// 3. delete_mood - Delete the mood for a day
	server.AddTool(mcp.Tool{
		Name:        "delete_mood",
		Description: "Delete the mood logged for a day. Deleting a day with no mood is not an error.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"date": dateProperty,
			},
			Required: []string{"date"},
		},
	}, handlers.DeleteMood)

	// 4. mood_streak - Current and longest streak
	server.AddTool(mcp.Tool{
		Name:        "mood_streak",
		Description: "Get the number of consecutive days ending today with a logged mood, and the longest streak ever.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.MoodStreak)

	// 5. weekly_trend - Last seven days of moods
	server.AddTool(mcp.Tool{
		Name:        "weekly_trend",
		Description: "Get the mood for each of the last seven days, oldest first, ending today. Days without a mood have a null mood.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.WeeklyTrend)

	// 6. record_stress_quiz - Score and store a stress quiz
	server.AddTool(mcp.Tool{
		Name:        "record_stress_quiz",
		Description: "Record the ten answers (1-5 each) of a stress quiz. Returns the score and level (Low up to 25, Moderate up to 40, High above). Retaking on the same day replaces the result.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"answers": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "integer", "minimum": 1, "maximum": 5},
					"minItems":    10,
					"maxItems":    10,
					"description": "Answers to questions 1-10 in order",
				},
				"date": dateProperty,
			},
			Required: []string{"answers"},
		},
	}, handlers.RecordStressQuiz)

	// 7. get_stress_quiz - Get a stress quiz result
	server.AddTool(mcp.Tool{
		Name:        "get_stress_quiz",
		Description: "Get the stress quiz result for a day, or the most recent result if no date is given.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"date": map[string]interface{}{
					"type":        "string",
					"description": "Date as YYYY-MM-DD, 'today' or 'yesterday' (default: most recent)",
				},
			},
		},
	}, handlers.GetStressQuiz)

	// 8. save_journal - Save a journal entry
	server.AddTool(mcp.Tool{
		Name:        "save_journal",
		Description: "Save the journal entry for a day. Drafts stay editable; a final save cannot later be overwritten by a draft. Empty content removes the entry.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"content": map[string]interface{}{
					"type":        "string",
					"description": "Full text of the entry",
				},
				"draft": map[string]interface{}{
					"type":        "boolean",
					"description": "Save as a draft (default: false)",
					"default":     false,
				},
				"date": dateProperty,
			},
			Required: []string{"content"},
		},
	}, handlers.SaveJournal)

	// 9. get_journal - Get a journal entry
	server.AddTool(mcp.Tool{
		Name:        "get_journal",
		Description: "Get the journal entry for a day. Returns null if there is none.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"date": dateProperty,
			},
		},
	}, handlers.GetJournal)

	// 10. delete_journal - Delete a journal entry
	server.AddTool(mcp.Tool{
		Name:        "delete_journal",
		Description: "Delete the journal entry for a day.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"date": dateProperty,
			},
			Required: []string{"date"},
		},
	}, handlers.DeleteJournal)

	return handlers
}
