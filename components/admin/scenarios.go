package admin

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// CreateScenarioInput captures the fields an operator supplies when adding a
// scenario. ID and CreatedAt are assigned by the store.
type CreateScenarioInput struct {
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Category    Category `json:"category" yaml:"category"`
	Severity    Severity `json:"severity" yaml:"severity"`
}

// Validate enforces the closed enums and non-empty text fields before any
// store call is issued.
func (in CreateScenarioInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return invalidField("title", "must not be empty")
	}
	if strings.TrimSpace(in.Description) == "" {
		return invalidField("description", "must not be empty")
	}
	if !in.Category.Valid() {
		return invalidField("category", fmt.Sprintf("%q is not a known category", in.Category))
	}
	if !in.Severity.Valid() {
		return invalidField("severity", fmt.Sprintf("%q is not a known severity", in.Severity))
	}
	return nil
}

// ScenarioCatalog validates and mutates the crisis scenario catalog.
type ScenarioCatalog struct {
	store     Store
	telemetry Telemetry
}

// NewScenarioCatalog wires the catalog against a store.
func NewScenarioCatalog(store Store, telemetry Telemetry) *ScenarioCatalog {
	return &ScenarioCatalog{store: store, telemetry: normalizeTelemetry(telemetry)}
}

// List returns every scenario sorted by severity rank descending. The sort is
// stable so equal severities keep their insertion order, and the rank table
// governs ordering, never the alphabetical form of the label.
func (c *ScenarioCatalog) List(ctx context.Context) ([]Scenario, error) {
	rows, err := c.store.Query(ctx, Query{Collection: CollectionScenarios})
	if err != nil {
		return nil, fmt.Errorf("scenarios: list: %w", err)
	}
	scenarios, err := decodeScenarios(rows)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(scenarios, func(i, j int) bool {
		return scenarios[i].Severity.Rank() > scenarios[j].Severity.Rank()
	})
	return scenarios, nil
}

// ListCritical returns scenarios filtered to critical severity at the store.
func (c *ScenarioCatalog) ListCritical(ctx context.Context) ([]Scenario, error) {
	rows, err := c.store.Query(ctx, Query{
		Collection: CollectionScenarios,
		Filters:    []Filter{Eq("severity", string(SeverityCritical))},
	})
	if err != nil {
		return nil, fmt.Errorf("scenarios: list critical: %w", err)
	}
	return decodeScenarios(rows)
}

// Create validates the input locally, inserts the scenario, and returns the
// created record with its server-assigned id and timestamp.
func (c *ScenarioCatalog) Create(ctx context.Context, in CreateScenarioInput) (Scenario, error) {
	if err := in.Validate(); err != nil {
		return Scenario{}, err
	}
	row, err := c.store.Insert(ctx, CollectionScenarios, Record{
		"title":       in.Title,
		"description": in.Description,
		"category":    string(in.Category),
		"severity":    string(in.Severity),
	})
	if err != nil {
		return Scenario{}, fmt.Errorf("scenarios: create: %w", err)
	}
	var created Scenario
	if err := decodeRecord(row, &created); err != nil {
		return Scenario{}, err
	}
	c.telemetry.Record(ctx, "catalog.scenario.create", map[string]any{
		"id":       created.ID,
		"severity": string(created.Severity),
	})
	return created, nil
}

// Delete removes a scenario by id. Messages referencing it through
// matched_scenario_id are untouched; those references dangle and later
// lookups resolve them to a placeholder.
func (c *ScenarioCatalog) Delete(ctx context.Context, id string) error {
	if err := c.store.Delete(ctx, CollectionScenarios, id); err != nil {
		return fmt.Errorf("scenarios: delete %s: %w", id, err)
	}
	c.telemetry.Record(ctx, "catalog.scenario.delete", map[string]any{"id": id})
	return nil
}

// Title resolves a scenario's title by id. A deleted scenario reports
// ErrNotFound; connectivity failures propagate as-is.
func (c *ScenarioCatalog) Title(ctx context.Context, id string) (string, error) {
	rows, err := c.store.Query(ctx, Query{
		Collection: CollectionScenarios,
		Filters:    []Filter{Eq("id", id)},
		Limit:      1,
	})
	if err != nil {
		return "", fmt.Errorf("scenarios: title %s: %w", id, err)
	}
	if len(rows) == 0 {
		return "", fmt.Errorf("scenarios: title %s: %w", id, ErrNotFound)
	}
	var s Scenario
	if err := decodeRecord(rows[0], &s); err != nil {
		return "", err
	}
	return s.Title, nil
}

func decodeScenarios(rows []Record) ([]Scenario, error) {
	scenarios := make([]Scenario, 0, len(rows))
	for _, row := range rows {
		var s Scenario
		if err := decodeRecord(row, &s); err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}
