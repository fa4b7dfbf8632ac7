package admin

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestOverviewCountsEveryCollection(t *testing.T) {
	store := newFakeStore()
	for i := 0; i < 3; i++ {
		store.seed(CollectionScenarios, Record{"title": fmt.Sprintf("s%d", i), "severity": "low"})
	}
	store.seed(CollectionSessions, Record{"language": "en"})
	store.seed(CollectionSessions, Record{"language": "es"})
	store.seed(CollectionMessages, Record{"role": "user", "content": "hi"})
	store.seed(CollectionResources, Record{"name": "hotline", "is_emergency": true})

	metrics := NewMetrics(store, NewScenarioCatalog(store, nil), nil)
	overview, err := metrics.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview returned error: %v", err)
	}
	if overview.ScenarioCount != 3 || overview.SessionCount != 2 ||
		overview.MessageCount != 1 || overview.ResourceCount != 1 {
		t.Fatalf("unexpected overview: %+v", overview)
	}
}

func TestOverviewFailsWhenAnyCountFails(t *testing.T) {
	store := newFakeStore()
	store.failWith(CollectionMessages, ErrConnectivity)

	metrics := NewMetrics(store, NewScenarioCatalog(store, nil), nil)
	_, err := metrics.Overview(context.Background())
	if !errors.Is(err, ErrConnectivity) {
		t.Fatalf("expected connectivity error, got %v", err)
	}
}

func TestRecentActivityWindowAndLimits(t *testing.T) {
	store := newFakeStore()
	now := store.now

	// 8 sessions inside the 7-day window, one outside it.
	for i := 0; i < 8; i++ {
		store.seed(CollectionSessions, Record{
			"language":   "en",
			"created_at": now.Add(-time.Duration(i) * time.Hour).Format(time.RFC3339),
		})
	}
	store.seed(CollectionSessions, Record{
		"language":   "es",
		"created_at": now.Add(-8 * 24 * time.Hour).Format(time.RFC3339),
	})

	metrics := NewMetrics(store, NewScenarioCatalog(store, nil), nil)
	metrics.now = func() time.Time { return now }

	activity, err := metrics.RecentActivity(context.Background())
	if err != nil {
		t.Fatalf("RecentActivity returned error: %v", err)
	}
	if activity.Total != 8 {
		t.Fatalf("expected 8 in-window sessions, got %d", activity.Total)
	}
	if len(activity.Sessions) != 5 {
		t.Fatalf("expected 5 displayed summaries, got %d", len(activity.Sessions))
	}
	for i := 1; i < len(activity.Sessions); i++ {
		if activity.Sessions[i].StartedAt.After(activity.Sessions[i-1].StartedAt) {
			t.Fatalf("summaries not newest-first at index %d", i)
		}
	}
}

func TestRecentActivityDisplayFormat(t *testing.T) {
	store := newFakeStore()
	now := store.now
	store.seed(CollectionSessions, Record{
		"language":   "es",
		"created_at": time.Date(2026, 6, 14, 9, 30, 0, 0, time.UTC).Format(time.RFC3339),
	})

	metrics := NewMetrics(store, NewScenarioCatalog(store, nil), nil)
	metrics.now = func() time.Time { return now }

	activity, err := metrics.RecentActivity(context.Background())
	if err != nil {
		t.Fatalf("RecentActivity returned error: %v", err)
	}
	if len(activity.Sessions) != 1 {
		t.Fatalf("expected one summary, got %d", len(activity.Sessions))
	}
	got := activity.Sessions[0].Display
	want := "2026-06-14 09:30 - Session in Spanish"
	if got != want {
		t.Fatalf("display %q, want %q", got, want)
	}
}

func TestRecentActivityEmptyWindow(t *testing.T) {
	store := newFakeStore()
	metrics := NewMetrics(store, NewScenarioCatalog(store, nil), nil)
	metrics.now = func() time.Time { return store.now }

	activity, err := metrics.RecentActivity(context.Background())
	if err != nil {
		t.Fatalf("RecentActivity returned error: %v", err)
	}
	if !activity.Empty() {
		t.Fatalf("expected empty activity, got %+v", activity)
	}
}

func TestCriticalScenariosEmptyIsNotError(t *testing.T) {
	store := newFakeStore()
	metrics := NewMetrics(store, NewScenarioCatalog(store, nil), nil)

	scenarios, err := metrics.CriticalScenarios(context.Background())
	if err != nil {
		t.Fatalf("CriticalScenarios returned error: %v", err)
	}
	if len(scenarios) != 0 {
		t.Fatalf("expected no scenarios, got %d", len(scenarios))
	}
}
