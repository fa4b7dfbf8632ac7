package admin

import (
	"context"
	"strings"
	"testing"
)

func TestOverviewProviderShape(t *testing.T) {
	store := newFakeStore()
	store.seed(CollectionSessions, Record{"language": "en"})
	metrics := NewMetrics(store, NewScenarioCatalog(store, nil), nil)

	data, err := NewOverviewProvider(metrics).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if data["sessions"] != 1 || data["scenarios"] != 0 {
		t.Fatalf("unexpected data: %+v", data)
	}
}

func TestEmptyStateMessages(t *testing.T) {
	store := newFakeStore()
	scenarios := NewScenarioCatalog(store, nil)
	analytics := NewAnalytics(store, scenarios, nil)

	cases := []struct {
		name     string
		provider SectionProvider
		message  string
	}{
		{"critical scenarios", NewCriticalScenariosProvider(NewMetrics(store, scenarios, nil)), msgNoCriticalScenarios},
		{"scenario matches", NewScenarioMatchesProvider(analytics), msgNoScenarioMatches},
		{"conversations", NewConversationsProvider(analytics), msgNoRecentMessages},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := tc.provider.Fetch(context.Background())
			if err != nil {
				t.Fatalf("Fetch returned error: %v", err)
			}
			if data["empty"] != true {
				t.Fatalf("expected empty flag: %+v", data)
			}
			if data["message"] != tc.message {
				t.Fatalf("message %q, want %q", data["message"], tc.message)
			}
		})
	}
}

func TestRecentActivityProviderEmptyMessage(t *testing.T) {
	store := newFakeStore()
	metrics := NewMetrics(store, NewScenarioCatalog(store, nil), nil)

	data, err := NewRecentActivityProvider(metrics).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if data["empty"] != true || data["message"] != msgNoRecentActivity {
		t.Fatalf("unexpected empty state: %+v", data)
	}
	if data["total"] != 0 {
		t.Fatalf("empty state should still report a zero total: %+v", data)
	}
}

func TestMatchRateProviderInsufficientData(t *testing.T) {
	store := newFakeStore()
	analytics := NewAnalytics(store, NewScenarioCatalog(store, nil), nil)

	data, err := NewMatchRateProvider(analytics).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if data["defined"] != false || data["message"] != msgInsufficientData {
		t.Fatalf("unexpected data: %+v", data)
	}
	if _, ok := data["rate"]; ok {
		t.Fatalf("undefined rate must not expose a numeric value")
	}
}

func TestMatchRateProviderDefined(t *testing.T) {
	store := newFakeStore()
	seedMessage(store, "user", "q", "2026-06-01T10:00:00Z", strptr("scn-1"))
	seedMessage(store, "user", "q", "2026-06-01T11:00:00Z", nil)
	analytics := NewAnalytics(store, NewScenarioCatalog(store, nil), nil)

	data, err := NewMatchRateProvider(analytics).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if data["defined"] != true || data["rate"] != 50.0 {
		t.Fatalf("unexpected data: %+v", data)
	}
	if data["label"] != MatchRateGood {
		t.Fatalf("label %q", data["label"])
	}
}

func TestLanguageChartProviderRendersChart(t *testing.T) {
	store := newFakeStore()
	seedSession(store, "en")
	seedSession(store, "es")
	analytics := NewAnalytics(store, NewScenarioCatalog(store, nil), nil)
	renderer := NewChartRenderer(WithChartCache(nil))

	data, err := NewLanguageChartProvider(analytics, renderer).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	html, _ := data["chart_html"].(string)
	if !strings.Contains(html, "echarts") {
		t.Fatalf("expected rendered chart markup, got %q", truncateForLog(html))
	}
	if data["chart_type"] != "pie" {
		t.Fatalf("chart_type %v", data["chart_type"])
	}
	rows, ok := data["distribution"].([]map[string]any)
	if !ok || len(rows) != 2 {
		t.Fatalf("unexpected distribution rows: %+v", data["distribution"])
	}
}

func TestScenarioMatchChartProviderAugmentsRows(t *testing.T) {
	store := newFakeStore()
	store.seed(CollectionScenarios, Record{"id": "scn-1", "title": "Checkpoint", "severity": "critical"})
	seedMessage(store, "user", "q", "2026-06-01T10:00:00Z", strptr("scn-1"))
	analytics := NewAnalytics(store, NewScenarioCatalog(store, nil), nil)
	renderer := NewChartRenderer(WithChartCache(nil))

	data, err := NewScenarioMatchChartProvider(analytics, renderer).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if _, ok := data["matches"]; !ok {
		t.Fatalf("tabular rows must survive chart augmentation: %+v", data)
	}
	if data["chart_type"] != "bar" {
		t.Fatalf("chart_type %v", data["chart_type"])
	}
}

func truncateForLog(s string) string {
	if len(s) > 120 {
		return s[:120] + "..."
	}
	return s
}
