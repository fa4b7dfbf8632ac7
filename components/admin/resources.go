package admin

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// CreateResourceInput captures operator-supplied resource fields. URL and
// PhoneNumber are optional; empty strings are stored as absent.
type CreateResourceInput struct {
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description" yaml:"description"`
	URL         string     `json:"url,omitempty" yaml:"url,omitempty"`
	PhoneNumber string     `json:"phone_number,omitempty" yaml:"phone_number,omitempty"`
	IsEmergency bool       `json:"is_emergency" yaml:"is_emergency"`
	Categories  []Category `json:"categories" yaml:"categories"`
	Languages   []Language `json:"languages" yaml:"languages"`
}

// Validate enforces non-empty text fields and non-empty closed-set
// categories/languages before any store call is issued.
func (in CreateResourceInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return invalidField("name", "must not be empty")
	}
	if strings.TrimSpace(in.Description) == "" {
		return invalidField("description", "must not be empty")
	}
	if len(in.Categories) == 0 {
		return invalidField("categories", "at least one category is required")
	}
	for _, cat := range in.Categories {
		if !cat.Valid() {
			return invalidField("categories", fmt.Sprintf("%q is not a known category", cat))
		}
	}
	if len(in.Languages) == 0 {
		return invalidField("languages", "at least one language is required")
	}
	for _, lang := range in.Languages {
		if !lang.Valid() {
			return invalidField("languages", fmt.Sprintf("%q is not a known language", lang))
		}
	}
	return nil
}

// ResourceCatalog validates and mutates the support resource catalog.
type ResourceCatalog struct {
	store     Store
	telemetry Telemetry
}

// NewResourceCatalog wires the catalog against a store.
func NewResourceCatalog(store Store, telemetry Telemetry) *ResourceCatalog {
	return &ResourceCatalog{store: store, telemetry: normalizeTelemetry(telemetry)}
}

// List returns every resource with emergency resources first. The sort is
// stable, so within each group insertion order is preserved.
func (c *ResourceCatalog) List(ctx context.Context) ([]Resource, error) {
	rows, err := c.store.Query(ctx, Query{Collection: CollectionResources})
	if err != nil {
		return nil, fmt.Errorf("resources: list: %w", err)
	}
	resources := make([]Resource, 0, len(rows))
	for _, row := range rows {
		var r Resource
		if err := decodeRecord(row, &r); err != nil {
			return nil, err
		}
		resources = append(resources, r)
	}
	sort.SliceStable(resources, func(i, j int) bool {
		return resources[i].IsEmergency && !resources[j].IsEmergency
	})
	return resources, nil
}

// Create validates the input locally, inserts the resource, and returns the
// created record. Optional url/phone fields are omitted from the row when
// empty so the store holds an absent value, not an empty string.
func (c *ResourceCatalog) Create(ctx context.Context, in CreateResourceInput) (Resource, error) {
	if err := in.Validate(); err != nil {
		return Resource{}, err
	}
	row := Record{
		"name":                in.Name,
		"description":         in.Description,
		"is_emergency":        in.IsEmergency,
		"categories":          categoryStrings(in.Categories),
		"languages_supported": languageStrings(in.Languages),
	}
	if in.URL != "" {
		row["url"] = in.URL
	}
	if in.PhoneNumber != "" {
		row["phone_number"] = in.PhoneNumber
	}
	created, err := c.store.Insert(ctx, CollectionResources, row)
	if err != nil {
		return Resource{}, fmt.Errorf("resources: create: %w", err)
	}
	var resource Resource
	if err := decodeRecord(created, &resource); err != nil {
		return Resource{}, err
	}
	c.telemetry.Record(ctx, "catalog.resource.create", map[string]any{
		"id":        resource.ID,
		"emergency": resource.IsEmergency,
	})
	return resource, nil
}

// Delete removes a resource by id.
func (c *ResourceCatalog) Delete(ctx context.Context, id string) error {
	if err := c.store.Delete(ctx, CollectionResources, id); err != nil {
		return fmt.Errorf("resources: delete %s: %w", id, err)
	}
	c.telemetry.Record(ctx, "catalog.resource.delete", map[string]any{"id": id})
	return nil
}

func categoryStrings(categories []Category) []string {
	out := make([]string, len(categories))
	for i, cat := range categories {
		out[i] = string(cat)
	}
	return out
}

func languageStrings(languages []Language) []string {
	out := make([]string, len(languages))
	for i, lang := range languages {
		out[i] = string(lang)
	}
	return out
}
