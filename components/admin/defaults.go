package admin

// Section codes for the built-in dashboard sections.
const (
	SectionOverview             = "admin.section.overview"
	SectionRecentActivity       = "admin.section.recent_activity"
	SectionCriticalScenarios    = "admin.section.critical_scenarios"
	SectionLanguageDistribution = "admin.section.language_distribution"
	SectionMessageTimeline      = "admin.section.message_timeline"
	SectionMatchRate            = "admin.section.match_rate"
	SectionScenarioMatches      = "admin.section.scenario_matches"
	SectionConversations        = "admin.section.conversations"
)

// DefaultSectionDefinitions returns the built-in sections in display order.
func DefaultSectionDefinitions() []SectionDefinition {
	return []SectionDefinition{
		{Code: SectionOverview, Name: "Overview", Description: "Collection totals"},
		{Code: SectionRecentActivity, Name: "Recent Activity", Description: "Sessions started in the last 7 days"},
		{Code: SectionCriticalScenarios, Name: "Critical Scenarios", Description: "Scenarios at critical severity"},
		{Code: SectionLanguageDistribution, Name: "Sessions by Language", Description: "Session language distribution"},
		{Code: SectionMessageTimeline, Name: "Messages Over Time", Description: "Messages per UTC day"},
		{Code: SectionMatchRate, Name: "AI Match Rate", Description: "Matched user messages over all user messages"},
		{Code: SectionScenarioMatches, Name: "Scenario Matches", Description: "Matched messages grouped by scenario"},
		{Code: SectionConversations, Name: "Recent Conversations", Description: "Latest chat messages"},
	}
}

// DefaultRegistry wires the built-in sections against the given engines. A
// nil renderer falls back to a default one with the shared cache.
func DefaultRegistry(metrics *Metrics, analytics *Analytics, renderer *ChartRenderer) (*Registry, error) {
	if renderer == nil {
		renderer = NewChartRenderer()
	}
	providers := map[string]SectionProvider{
		SectionOverview:             NewOverviewProvider(metrics),
		SectionRecentActivity:       NewRecentActivityProvider(metrics),
		SectionCriticalScenarios:    NewCriticalScenariosProvider(metrics),
		SectionLanguageDistribution: NewLanguageChartProvider(analytics, renderer),
		SectionMessageTimeline:      NewMessageTimelineProvider(analytics, renderer),
		SectionMatchRate:            NewMatchRateProvider(analytics),
		SectionScenarioMatches:      NewScenarioMatchChartProvider(analytics, renderer),
		SectionConversations:        NewConversationsProvider(analytics),
	}
	registry := NewRegistry()
	for _, def := range DefaultSectionDefinitions() {
		if err := registry.RegisterSection(def, providers[def.Code]); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
