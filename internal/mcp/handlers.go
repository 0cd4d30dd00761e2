// ABOUTME: MCP tool handler implementations for the MindSpace server
// ABOUTME: Each handler calls one store operation and returns JSON text
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/harper/mindspace/internal/models"
	"github.com/harper/mindspace/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	storage *storage.Storage
}

func moodNames() string {
	names := make([]string, len(models.Moods))
	for i, m := range models.Moods {
		names[i] = fmt.Sprintf("%s (%s)", m.Name(), m)
	}
	return strings.Join(names, ", ")
}

// resolveDate turns "", "today", "yesterday" or YYYY-MM-DD into a date key
func (h *Handlers) resolveDate(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return h.storage.Today(), nil
	case "yesterday":
		return models.DaysBefore(h.storage.Now(), 1), nil
	}
	if err := models.ValidateDate(s); err != nil {
		return "", err
	}
	return s, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	responseJSON, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// LogMood handles the log_mood tool
func (h *Handlers) LogMood(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	moodArg, err := request.RequireString("mood")
	if err != nil {
		return mcp.NewToolResultError("mood argument is required and must be a string"), nil
	}
	mood, err := models.ParseMood(moodArg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%v (valid moods: %s)", err, moodNames())), nil
	}
	date, err := h.resolveDate(request.GetString("date", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	created, err := h.storage.Moods.Log(ctx, date, mood, request.GetString("note", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to log mood: %v", err)), nil
	}
	streak, err := h.storage.Streak(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to compute streak: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"date":      date,
		"mood":      mood,
		"mood_name": mood.Name(),
		"created":   created,
		"streak":    streak,
	})
}

// GetMood handles the get_mood tool
func (h *Handlers) GetMood(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := h.resolveDate(request.GetString("date", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	r, err := h.storage.Moods.Get(ctx, date)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get mood: %v", err)), nil
	}
	return jsonResult(r)
}

// DeleteMood handles the delete_mood tool
func (h *Handlers) DeleteMood(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dateArg, err := request.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError("date argument is required and must be a string"), nil
	}
	date, err := h.resolveDate(dateArg)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := h.storage.Moods.Delete(ctx, date); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to delete mood: %v", err)), nil
	}
	return jsonResult(map[string]interface{}{"date": date, "deleted": true})
}

// MoodStreak handles the mood_streak tool
func (h *Handlers) MoodStreak(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := h.storage.Stats(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to compute streak: %v", err)), nil
	}
	return jsonResult(map[string]interface{}{
		"today":          stats.Today,
		"streak":         stats.Streak,
		"longest_streak": stats.LongestStreak,
		"total_days":     stats.TotalDays,
	})
}

// WeeklyTrend handles the weekly_trend tool
func (h *Handlers) WeeklyTrend(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	week, err := h.storage.WeeklyTrend(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to compute weekly trend: %v", err)), nil
	}
	return jsonResult(map[string]interface{}{
		"today": h.storage.Today(),
		"week":  week,
	})
}

// answersArg reads the answers array; JSON numbers arrive as float64
func answersArg(request mcp.CallToolRequest) (map[int]int, error) {
	raw, ok := request.GetArguments()["answers"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("answers argument is required and must be an array of integers")
	}

	answers := make(map[int]int, len(raw))
	for i, v := range raw {
		f, ok := v.(float64)
		if !ok || f != math.Trunc(f) {
			return nil, fmt.Errorf("answer %d must be an integer, got %v", i+1, v)
		}
		answers[i+1] = int(f)
	}
	return answers, nil
}

// RecordStressQuiz handles the record_stress_quiz tool
func (h *Handlers) RecordStressQuiz(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	answers, err := answersArg(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	date, err := h.resolveDate(request.GetString("date", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	r, err := h.storage.StressQuizzes.Record(ctx, date, answers, h.storage.Now())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to record stress quiz: %v", err)), nil
	}
	return jsonResult(r)
}

// GetStressQuiz handles the get_stress_quiz tool
func (h *Handlers) GetStressQuiz(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dateArg := request.GetString("date", "")

	var (
		r   *models.StressQuizRecord
		err error
	)
	if dateArg == "" {
		r, err = h.storage.StressQuizzes.Latest(ctx)
	} else {
		date, derr := h.resolveDate(dateArg)
		if derr != nil {
			return mcp.NewToolResultError(derr.Error()), nil
		}
		r, err = h.storage.StressQuizzes.Get(ctx, date)
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get stress quiz: %v", err)), nil
	}
	return jsonResult(r)
}

// SaveJournal handles the save_journal tool
func (h *Handlers) SaveJournal(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := request.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError("content argument is required and must be a string"), nil
	}
	date, err := h.resolveDate(request.GetString("date", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	save := h.storage.Journals.SaveFinal
	if request.GetBool("draft", false) {
		save = h.storage.Journals.SaveDraft
	}
	r, err := save(ctx, date, content)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to save journal: %v", err)), nil
	}
	if r == nil {
		return jsonResult(map[string]interface{}{"date": date, "deleted": true})
	}
	return jsonResult(r)
}

// GetJournal handles the get_journal tool
func (h *Handlers) GetJournal(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := h.resolveDate(request.GetString("date", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	r, err := h.storage.Journals.Get(ctx, date)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get journal: %v", err)), nil
	}
	return jsonResult(r)
}

// DeleteJournal handles the delete_journal tool
func (h *Handlers) DeleteJournal(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dateArg, err := request.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError("date argument is required and must be a string"), nil
	}
	date, err := h.resolveDate(dateArg)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := h.storage.Journals.Delete(ctx, date); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to delete journal: %v", err)), nil
	}
	return jsonResult(map[string]interface{}{"date": date, "deleted": true})
}
