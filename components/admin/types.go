package admin

import (
	"strings"
	"time"

	"github.com/ettle/strcase"
)

// Collection names as they exist in the remote store.
const (
	CollectionScenarios = "crisis_scenarios"
	CollectionSessions  = "chat_sessions"
	CollectionMessages  = "chat_messages"
	CollectionResources = "resources"
)

// Category classifies scenarios and resources. The set is closed: any other
// value fails validation before a store call is issued.
type Category string

const (
	CategoryICEDetention       Category = "ice_detention"
	CategoryDeportation        Category = "deportation"
	CategoryVisaIssues         Category = "visa_issues"
	CategoryGovernmentShutdown Category = "government_shutdown"
	CategoryWorkAuthorization  Category = "work_authorization"
	CategoryAsylum             Category = "asylum"
)

// Categories lists every valid category in display order.
func Categories() []Category {
	return []Category{
		CategoryICEDetention,
		CategoryDeportation,
		CategoryVisaIssues,
		CategoryGovernmentShutdown,
		CategoryWorkAuthorization,
		CategoryAsylum,
	}
}

// Valid reports whether the category belongs to the closed set.
func (c Category) Valid() bool {
	switch c {
	case CategoryICEDetention, CategoryDeportation, CategoryVisaIssues,
		CategoryGovernmentShutdown, CategoryWorkAuthorization, CategoryAsylum:
		return true
	}
	return false
}

// Label returns the human form of the category code ("ice_detention" becomes
// "Ice Detention").
func (c Category) Label() string {
	return strcase.ToCase(string(c), strcase.TitleCase, ' ')
}

// Severity orders scenarios by urgency. Ordering always goes through Rank;
// the string form is a storage label, never a sort key.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

var severityRank = map[Severity]int{
	SeverityCritical: 3,
	SeverityHigh:     2,
	SeverityMedium:   1,
	SeverityLow:      0,
}

// Severities lists the valid severities from least to most urgent.
func Severities() []Severity {
	return []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}
}

// Rank returns the ordering weight for the severity. Unknown severities rank
// below low so malformed rows sink to the bottom of sorted listings.
func (s Severity) Rank() int {
	if rank, ok := severityRank[s]; ok {
		return rank
	}
	return -1
}

// Valid reports whether the severity belongs to the closed set.
func (s Severity) Valid() bool {
	_, ok := severityRank[s]
	return ok
}

// Label returns the display form of the severity.
func (s Severity) Label() string {
	return strings.ToUpper(string(s))
}

// Language is a supported chat language code.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageSpanish Language = "es"
	LanguageChinese Language = "zh"
	LanguageArabic  Language = "ar"
	LanguageFrench  Language = "fr"
)

// Languages lists every supported language code.
func Languages() []Language {
	return []Language{LanguageEnglish, LanguageSpanish, LanguageChinese, LanguageArabic, LanguageFrench}
}

// Valid reports whether the language belongs to the closed set.
func (l Language) Valid() bool {
	switch l {
	case LanguageEnglish, LanguageSpanish, LanguageChinese, LanguageArabic, LanguageFrench:
		return true
	}
	return false
}

// Label returns the display form of the code ("en" becomes "EN").
func (l Language) Label() string {
	return strings.ToUpper(string(l))
}

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Scenario is a crisis scenario catalog entry. Created and deleted only
// through the ScenarioCatalog; id and created_at are server-assigned.
type Scenario struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	Severity    Severity  `json:"severity"`
	CreatedAt   time.Time `json:"created_at"`
}

// Resource is a support resource catalog entry. URL and PhoneNumber are
// optional and stored as absent, never as empty strings.
type Resource struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	URL         *string    `json:"url,omitempty"`
	PhoneNumber *string    `json:"phone_number,omitempty"`
	IsEmergency bool       `json:"is_emergency"`
	Categories  []Category `json:"categories"`
	Languages   []Language `json:"languages_supported"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ChatSession is a read-only record produced by the chat system.
type ChatSession struct {
	ID        string    `json:"id"`
	Language  Language  `json:"language"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatMessage is a read-only record produced by the chat system.
// MatchedScenarioID is a soft reference: the scenario it names may have been
// deleted, and lookups degrade to a placeholder instead of failing.
type ChatMessage struct {
	ID                string    `json:"id"`
	SessionID         string    `json:"session_id"`
	Role              Role      `json:"role"`
	Content           string    `json:"content"`
	MatchedScenarioID *string   `json:"matched_scenario_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// displayTimestamp is the human form used for session and message times.
const displayTimestamp = "2006-01-02 15:04"

// OverviewMetrics carries the four exact collection counts.
type OverviewMetrics struct {
	ScenarioCount int `json:"scenario_count"`
	SessionCount  int `json:"session_count"`
	MessageCount  int `json:"message_count"`
	ResourceCount int `json:"resource_count"`
}

// SessionSummary is a presentation-ready recent session entry.
type SessionSummary struct {
	ID        string    `json:"id"`
	Language  Language  `json:"language"`
	Label     string    `json:"label"`
	StartedAt time.Time `json:"started_at"`
	Display   string    `json:"display"`
}

// RecentActivity reports sessions within the activity window. Total counts
// every session in the window; Sessions holds at most the five most recent.
// An empty window is a distinct state the presenter must render explicitly.
type RecentActivity struct {
	Total    int              `json:"total"`
	Sessions []SessionSummary `json:"sessions"`
}

// Empty reports whether the window saw no sessions at all.
func (a RecentActivity) Empty() bool {
	return a.Total == 0
}

// LanguageCount is one entry of the language distribution, ordered by first
// occurrence so callers need no map-iteration caveats.
type LanguageCount struct {
	Language Language `json:"language"`
	Count    int      `json:"count"`
}

// TimeBucket is one UTC-calendar-date bucket of the message time series.
type TimeBucket struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Match rate classification labels. Lower band bounds are inclusive.
const (
	MatchRateExcellent = "excellent"
	MatchRateGood      = "good, improvable"
	MatchRatePoor      = "needs improvement"
)

// MatchRateReport carries AI match quality figures. When Defined is false
// (no user messages yet) Rate and Label are meaningless and presenters must
// report insufficient data rather than zero percent.
type MatchRateReport struct {
	TotalMessages     int     `json:"total_messages"`
	UserMessages      int     `json:"user_messages"`
	AssistantMessages int     `json:"assistant_messages"`
	MatchedMessages   int     `json:"matched_messages"`
	Defined           bool    `json:"defined"`
	Rate              float64 `json:"rate"`
	Label             string  `json:"label"`
}

// ScenarioMatch is one row of the scenario match distribution. Title resolves
// to "Unknown" when the scenario has since been deleted.
type ScenarioMatch struct {
	ScenarioID string `json:"scenario_id"`
	Title      string `json:"title"`
	Count      int    `json:"count"`
}

// ConversationEntry is a recent-message listing row.
type ConversationEntry struct {
	Role      Role   `json:"role"`
	Timestamp string `json:"timestamp"`
	Preview   string `json:"preview"`
}

// AnalyticsView bundles every chat analytics result for a single render.
// MatchRate is nil while undefined.
type AnalyticsView struct {
	LanguageDistribution      []LanguageCount `json:"language_distribution"`
	MessageTimeSeries         []TimeBucket    `json:"message_time_series"`
	MatchRate                 *float64        `json:"match_rate,omitempty"`
	MatchRateLabel            string          `json:"match_rate_label,omitempty"`
	ScenarioMatchDistribution []ScenarioMatch `json:"scenario_match_distribution"`
}
