package admin

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

const (
	// recentActivityWindow bounds the recent-sessions view.
	recentActivityWindow = 7 * 24 * time.Hour
	// recentActivityFetchLimit is how many sessions the window query pulls.
	recentActivityFetchLimit = 10
	// recentActivityDisplayLimit is how many of those the view-model exposes.
	recentActivityDisplayLimit = 5
)

// Metrics computes overview counts, recent-activity windows, and critical
// scenario listings. Every call is a pure function of current store contents;
// nothing is cached across calls.
type Metrics struct {
	store     Store
	scenarios *ScenarioCatalog
	telemetry Telemetry
	now       func() time.Time
}

// NewMetrics wires the aggregator against a store and the scenario catalog.
func NewMetrics(store Store, scenarios *ScenarioCatalog, telemetry Telemetry) *Metrics {
	return &Metrics{
		store:     store,
		scenarios: scenarios,
		telemetry: normalizeTelemetry(telemetry),
		now:       time.Now,
	}
}

// Overview returns exact counts for all four collections. Counts go through
// the store's count operation so cost stays independent of row volume, and
// the four calls run concurrently since none depends on another. If any call
// fails the whole overview fails; no partial counts are reported.
func (m *Metrics) Overview(ctx context.Context) (OverviewMetrics, error) {
	var (
		wg       sync.WaitGroup
		overview OverviewMetrics
		errs     [4]error
	)
	targets := []struct {
		collection string
		dest       *int
		err        *error
	}{
		{CollectionScenarios, &overview.ScenarioCount, &errs[0]},
		{CollectionSessions, &overview.SessionCount, &errs[1]},
		{CollectionMessages, &overview.MessageCount, &errs[2]},
		{CollectionResources, &overview.ResourceCount, &errs[3]},
	}
	for _, target := range targets {
		wg.Add(1)
		go func() {
			defer wg.Done()
			count, err := m.store.Count(ctx, target.collection)
			if err != nil {
				*target.err = fmt.Errorf("metrics: count %s: %w", target.collection, err)
				return
			}
			*target.dest = count
		}()
	}
	wg.Wait()
	if err := errors.Join(errs[0], errs[1], errs[2], errs[3]); err != nil {
		return OverviewMetrics{}, err
	}
	m.telemetry.Record(ctx, "metrics.overview", map[string]any{
		"sessions": overview.SessionCount,
		"messages": overview.MessageCount,
	})
	return overview, nil
}

// RecentActivity reports sessions started within the last seven days: the
// exact in-window total plus the five most recent summaries, newest first.
// A zero total is a distinct state the presenter renders explicitly.
func (m *Metrics) RecentActivity(ctx context.Context) (RecentActivity, error) {
	since := m.now().UTC().Add(-recentActivityWindow)
	sinceFilter := GTE("created_at", since.Format(time.RFC3339))

	total, err := m.store.Count(ctx, CollectionSessions, sinceFilter)
	if err != nil {
		return RecentActivity{}, fmt.Errorf("metrics: recent activity count: %w", err)
	}
	rows, err := m.store.Query(ctx, Query{
		Collection: CollectionSessions,
		Filters:    []Filter{sinceFilter},
		OrderBy:    "created_at",
		Descending: true,
		Limit:      recentActivityFetchLimit,
	})
	if err != nil {
		return RecentActivity{}, fmt.Errorf("metrics: recent activity: %w", err)
	}

	summaries := make([]SessionSummary, 0, recentActivityDisplayLimit)
	for _, row := range rows {
		if len(summaries) == recentActivityDisplayLimit {
			break
		}
		var session ChatSession
		if err := decodeRecord(row, &session); err != nil {
			return RecentActivity{}, err
		}
		started := session.CreatedAt.UTC()
		summaries = append(summaries, SessionSummary{
			ID:        session.ID,
			Language:  session.Language,
			Label:     session.Language.Label(),
			StartedAt: started,
			Display:   fmt.Sprintf("%s - Session in %s", started.Format(displayTimestamp), session.Language.Label()),
		})
	}
	return RecentActivity{Total: total, Sessions: summaries}, nil
}

// CriticalScenarios lists scenarios at critical severity. An empty result is
// a normal state, not an error.
func (m *Metrics) CriticalScenarios(ctx context.Context) ([]Scenario, error) {
	return m.scenarios.ListCritical(ctx)
}
