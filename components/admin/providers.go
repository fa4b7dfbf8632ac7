package admin

import "context"

// SectionData is an opaque, presentation-ready payload for one dashboard
// section. It carries no store-access capability.
type SectionData map[string]any

// SectionProvider fetches the data for a single dashboard section. Providers
// are stateless; every Fetch reads the store as of call time.
type SectionProvider interface {
	Fetch(ctx context.Context) (SectionData, error)
}

// SectionProviderFunc adapts a function to the SectionProvider interface.
type SectionProviderFunc func(ctx context.Context) (SectionData, error)

// Fetch implements SectionProvider.
func (f SectionProviderFunc) Fetch(ctx context.Context) (SectionData, error) {
	return f(ctx)
}

// Empty-state messages mirrored from the operator dashboard copy.
const (
	msgNoRecentActivity    = "No recent activity"
	msgNoCriticalScenarios = "No critical scenarios configured"
	msgInsufficientData    = "No AI interaction data available yet"
	msgNoScenarioMatches   = "No scenario matches yet"
	msgNoRecentMessages    = "No recent messages"
)

// NewOverviewProvider exposes the four exact collection counts.
func NewOverviewProvider(metrics *Metrics) SectionProvider {
	return SectionProviderFunc(func(ctx context.Context) (SectionData, error) {
		overview, err := metrics.Overview(ctx)
		if err != nil {
			return nil, err
		}
		return SectionData{
			"scenarios": overview.ScenarioCount,
			"sessions":  overview.SessionCount,
			"messages":  overview.MessageCount,
			"resources": overview.ResourceCount,
		}, nil
	})
}

// NewRecentActivityProvider exposes the seven-day session window. The empty
// window renders an explicit message, never a silent empty list.
func NewRecentActivityProvider(metrics *Metrics) SectionProvider {
	return SectionProviderFunc(func(ctx context.Context) (SectionData, error) {
		activity, err := metrics.RecentActivity(ctx)
		if err != nil {
			return nil, err
		}
		if activity.Empty() {
			return SectionData{"total": 0, "empty": true, "message": msgNoRecentActivity}, nil
		}
		sessions := make([]map[string]any, 0, len(activity.Sessions))
		for _, session := range activity.Sessions {
			sessions = append(sessions, map[string]any{
				"id":       session.ID,
				"language": session.Label,
				"display":  session.Display,
			})
		}
		return SectionData{"total": activity.Total, "sessions": sessions}, nil
	})
}

// NewCriticalScenariosProvider lists critical scenarios; an empty catalog is
// a distinctly labeled state.
func NewCriticalScenariosProvider(metrics *Metrics) SectionProvider {
	return SectionProviderFunc(func(ctx context.Context) (SectionData, error) {
		scenarios, err := metrics.CriticalScenarios(ctx)
		if err != nil {
			return nil, err
		}
		if len(scenarios) == 0 {
			return SectionData{"empty": true, "message": msgNoCriticalScenarios}, nil
		}
		rows := make([]map[string]any, 0, len(scenarios))
		for _, s := range scenarios {
			rows = append(rows, map[string]any{
				"id":       s.ID,
				"title":    s.Title,
				"category": s.Category.Label(),
			})
		}
		return SectionData{"scenarios": rows}, nil
	})
}

// NewMatchRateProvider exposes AI match quality. An undefined rate reports
// insufficient data; it never degrades to zero percent.
func NewMatchRateProvider(analytics *Analytics) SectionProvider {
	return SectionProviderFunc(func(ctx context.Context) (SectionData, error) {
		report, err := analytics.MatchRate(ctx)
		if err != nil {
			return nil, err
		}
		data := SectionData{
			"total_messages":     report.TotalMessages,
			"user_messages":      report.UserMessages,
			"assistant_messages": report.AssistantMessages,
		}
		if !report.Defined {
			data["defined"] = false
			data["message"] = msgInsufficientData
			return data, nil
		}
		data["defined"] = true
		data["rate"] = report.Rate
		data["label"] = report.Label
		return data, nil
	})
}

// NewScenarioMatchesProvider exposes the scenario match distribution with
// titles resolved, substituting "Unknown" for deleted scenarios.
func NewScenarioMatchesProvider(analytics *Analytics) SectionProvider {
	return SectionProviderFunc(func(ctx context.Context) (SectionData, error) {
		matches, err := analytics.ScenarioMatchDistribution(ctx)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			return SectionData{"empty": true, "message": msgNoScenarioMatches}, nil
		}
		rows := make([]map[string]any, 0, len(matches))
		for _, match := range matches {
			rows = append(rows, map[string]any{
				"scenario_id": match.ScenarioID,
				"title":       match.Title,
				"count":       match.Count,
			})
		}
		return SectionData{"matches": rows}, nil
	})
}

// NewConversationsProvider exposes the recent message listing.
func NewConversationsProvider(analytics *Analytics) SectionProvider {
	return SectionProviderFunc(func(ctx context.Context) (SectionData, error) {
		entries, err := analytics.RecentConversations(ctx)
		if err != nil {
			return nil, err
		}
		if len(entries) == 0 {
			return SectionData{"empty": true, "message": msgNoRecentMessages}, nil
		}
		rows := make([]map[string]any, 0, len(entries))
		for _, entry := range entries {
			rows = append(rows, map[string]any{
				"role":      string(entry.Role),
				"timestamp": entry.Timestamp,
				"preview":   entry.Preview,
			})
		}
		return SectionData{"messages": rows}, nil
	})
}
