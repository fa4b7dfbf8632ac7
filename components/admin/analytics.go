package admin

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
)

const (
	// conversationFetchLimit bounds the recent conversations listing.
	conversationFetchLimit = 20
	// conversationPreviewRunes truncates message content for listing rows.
	conversationPreviewRunes = 100
)

// Analytics computes chat analytics: language distribution, message time
// series, AI match quality, and the scenario match distribution. Title
// resolution goes through the scenario catalog so dangling soft references
// degrade to a placeholder instead of failing.
type Analytics struct {
	store     Store
	scenarios *ScenarioCatalog
	telemetry Telemetry
}

// NewAnalytics wires the engine against a store and the scenario catalog.
func NewAnalytics(store Store, scenarios *ScenarioCatalog, telemetry Telemetry) *Analytics {
	return &Analytics{
		store:     store,
		scenarios: scenarios,
		telemetry: normalizeTelemetry(telemetry),
	}
}

// LanguageDistribution groups sessions by language. Output order is the
// insertion order of first occurrence; no predefined language ordering is
// assumed.
func (a *Analytics) LanguageDistribution(ctx context.Context) ([]LanguageCount, error) {
	rows, err := a.store.Query(ctx, Query{Collection: CollectionSessions})
	if err != nil {
		return nil, fmt.Errorf("analytics: language distribution: %w", err)
	}
	index := map[Language]int{}
	distribution := []LanguageCount{}
	for _, row := range rows {
		var session ChatSession
		if err := decodeRecord(row, &session); err != nil {
			return nil, err
		}
		if pos, ok := index[session.Language]; ok {
			distribution[pos].Count++
			continue
		}
		index[session.Language] = len(distribution)
		distribution = append(distribution, LanguageCount{Language: session.Language, Count: 1})
	}
	return distribution, nil
}

// MessagesOverTime buckets messages by UTC calendar date. Each timestamp is
// converted to UTC before its date is taken, so bucketing never depends on
// the host timezone. The series is ascending by date and covers only dates
// with at least one message.
func (a *Analytics) MessagesOverTime(ctx context.Context) ([]TimeBucket, error) {
	rows, err := a.store.Query(ctx, Query{
		Collection: CollectionMessages,
		OrderBy:    "created_at",
	})
	if err != nil {
		return nil, fmt.Errorf("analytics: messages over time: %w", err)
	}
	counts := map[string]int{}
	for _, row := range rows {
		var message ChatMessage
		if err := decodeRecord(row, &message); err != nil {
			return nil, err
		}
		counts[message.CreatedAt.UTC().Format("2006-01-02")]++
	}
	series := make([]TimeBucket, 0, len(counts))
	for date, count := range counts {
		series = append(series, TimeBucket{Date: date, Count: count})
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Date < series[j].Date
	})
	return series, nil
}

// MatchRate reports AI match quality. The rate is matched user messages over
// all user messages, as a percentage rounded to one decimal. With no user
// messages the rate is undefined: Defined is false and the presenter reports
// insufficient data, never zero percent. Classification bands are inclusive
// on their lower bound: >=70 excellent, >=50 good, below that needs
// improvement.
func (a *Analytics) MatchRate(ctx context.Context) (MatchRateReport, error) {
	total, err := a.store.Count(ctx, CollectionMessages)
	if err != nil {
		return MatchRateReport{}, fmt.Errorf("analytics: match rate: %w", err)
	}
	userCount, err := a.store.Count(ctx, CollectionMessages, Eq("role", string(RoleUser)))
	if err != nil {
		return MatchRateReport{}, fmt.Errorf("analytics: match rate: %w", err)
	}
	assistantCount, err := a.store.Count(ctx, CollectionMessages, Eq("role", string(RoleAssistant)))
	if err != nil {
		return MatchRateReport{}, fmt.Errorf("analytics: match rate: %w", err)
	}
	matchedCount, err := a.store.Count(ctx, CollectionMessages,
		Eq("role", string(RoleUser)), NotNull("matched_scenario_id"))
	if err != nil {
		return MatchRateReport{}, fmt.Errorf("analytics: match rate: %w", err)
	}

	report := MatchRateReport{
		TotalMessages:     total,
		UserMessages:      userCount,
		AssistantMessages: assistantCount,
		MatchedMessages:   matchedCount,
	}
	if userCount == 0 {
		return report, nil
	}
	report.Defined = true
	report.Rate = math.Round(float64(matchedCount)/float64(userCount)*1000) / 10
	report.Label = classifyMatchRate(report.Rate)
	return report, nil
}

func classifyMatchRate(rate float64) string {
	switch {
	case rate >= 70:
		return MatchRateExcellent
	case rate >= 50:
		return MatchRateGood
	default:
		return MatchRatePoor
	}
}

// ScenarioMatchDistribution groups matched messages by scenario id, counts
// occurrences, and resolves titles. Rows sort by count descending with ties
// broken by scenario id ascending for determinism. A scenario deleted since
// the match resolves to the "Unknown" placeholder; that path never errors.
func (a *Analytics) ScenarioMatchDistribution(ctx context.Context) ([]ScenarioMatch, error) {
	rows, err := a.store.Query(ctx, Query{
		Collection: CollectionMessages,
		Filters:    []Filter{NotNull("matched_scenario_id")},
	})
	if err != nil {
		return nil, fmt.Errorf("analytics: scenario matches: %w", err)
	}
	counts := map[string]int{}
	for _, row := range rows {
		var message ChatMessage
		if err := decodeRecord(row, &message); err != nil {
			return nil, err
		}
		if message.MatchedScenarioID == nil || *message.MatchedScenarioID == "" {
			continue
		}
		counts[*message.MatchedScenarioID]++
	}

	matches := make([]ScenarioMatch, 0, len(counts))
	for id, count := range counts {
		matches = append(matches, ScenarioMatch{ScenarioID: id, Count: count})
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Count != matches[j].Count {
			return matches[i].Count > matches[j].Count
		}
		return matches[i].ScenarioID < matches[j].ScenarioID
	})

	for i := range matches {
		title, err := a.scenarios.Title(ctx, matches[i].ScenarioID)
		if errors.Is(err, ErrNotFound) {
			matches[i].Title = "Unknown"
			continue
		}
		if err != nil {
			return nil, err
		}
		matches[i].Title = title
	}
	return matches, nil
}

// RecentConversations lists the twenty most recent messages, newest first,
// with UTC display timestamps and content previews.
func (a *Analytics) RecentConversations(ctx context.Context) ([]ConversationEntry, error) {
	rows, err := a.store.Query(ctx, Query{
		Collection: CollectionMessages,
		OrderBy:    "created_at",
		Descending: true,
		Limit:      conversationFetchLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("analytics: recent conversations: %w", err)
	}
	entries := make([]ConversationEntry, 0, len(rows))
	for _, row := range rows {
		var message ChatMessage
		if err := decodeRecord(row, &message); err != nil {
			return nil, err
		}
		entries = append(entries, ConversationEntry{
			Role:      message.Role,
			Timestamp: message.CreatedAt.UTC().Format(displayTimestamp),
			Preview:   previewContent(message.Content),
		})
	}
	return entries, nil
}

// View bundles the four analytics results into a single view-model. The view
// is one aggregation: if any part fails the whole view fails, and the caller
// reports the section error without touching sibling sections.
func (a *Analytics) View(ctx context.Context) (AnalyticsView, error) {
	distribution, err := a.LanguageDistribution(ctx)
	if err != nil {
		return AnalyticsView{}, err
	}
	series, err := a.MessagesOverTime(ctx)
	if err != nil {
		return AnalyticsView{}, err
	}
	rate, err := a.MatchRate(ctx)
	if err != nil {
		return AnalyticsView{}, err
	}
	matches, err := a.ScenarioMatchDistribution(ctx)
	if err != nil {
		return AnalyticsView{}, err
	}
	view := AnalyticsView{
		LanguageDistribution:      distribution,
		MessageTimeSeries:         series,
		ScenarioMatchDistribution: matches,
	}
	if rate.Defined {
		value := rate.Rate
		view.MatchRate = &value
		view.MatchRateLabel = rate.Label
	}
	return view, nil
}

func previewContent(content string) string {
	runes := []rune(content)
	if len(runes) <= conversationPreviewRunes {
		return content
	}
	return string(runes[:conversationPreviewRunes]) + "..."
}
