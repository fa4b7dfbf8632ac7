package admin

import (
	"context"
	"testing"
)

func staticProvider(data SectionData) SectionProvider {
	return SectionProviderFunc(func(context.Context) (SectionData, error) {
		return data, nil
	})
}

func TestRegistryPreservesRegistrationOrder(t *testing.T) {
	registry := NewRegistry()
	codes := []string{"c", "a", "b"}
	for _, code := range codes {
		if err := registry.RegisterSection(SectionDefinition{Code: code, Name: code}, staticProvider(nil)); err != nil {
			t.Fatalf("register %s: %v", code, err)
		}
	}
	defs := registry.Definitions()
	for i, code := range codes {
		if defs[i].Code != code {
			t.Fatalf("position %d: got %q want %q", i, defs[i].Code, code)
		}
	}
}

func TestRegistryReplaceKeepsPosition(t *testing.T) {
	registry := NewRegistry()
	registry.RegisterSection(SectionDefinition{Code: "first", Name: "First"}, staticProvider(nil))
	registry.RegisterSection(SectionDefinition{Code: "second", Name: "Second"}, staticProvider(nil))

	replacement := staticProvider(SectionData{"replaced": true})
	if err := registry.RegisterSection(SectionDefinition{Code: "first", Name: "First v2"}, replacement); err != nil {
		t.Fatalf("replace: %v", err)
	}

	defs := registry.Definitions()
	if len(defs) != 2 || defs[0].Code != "first" || defs[0].Name != "First v2" {
		t.Fatalf("unexpected definitions: %+v", defs)
	}
	provider, ok := registry.Provider("first")
	if !ok {
		t.Fatalf("provider missing after replace")
	}
	data, _ := provider.Fetch(context.Background())
	if data["replaced"] != true {
		t.Fatalf("old provider still registered")
	}
}

func TestRegistryRejectsInvalidRegistrations(t *testing.T) {
	registry := NewRegistry()
	if err := registry.RegisterSection(SectionDefinition{}, staticProvider(nil)); err == nil {
		t.Fatalf("expected error for empty code")
	}
	if err := registry.RegisterSection(SectionDefinition{Code: "x"}, nil); err == nil {
		t.Fatalf("expected error for nil provider")
	}
}

func TestDefaultRegistryCoversAllSections(t *testing.T) {
	store := newFakeStore()
	scenarios := NewScenarioCatalog(store, nil)
	metrics := NewMetrics(store, scenarios, nil)
	analytics := NewAnalytics(store, scenarios, nil)

	registry, err := DefaultRegistry(metrics, analytics, nil)
	if err != nil {
		t.Fatalf("DefaultRegistry returned error: %v", err)
	}
	for _, def := range DefaultSectionDefinitions() {
		if _, ok := registry.Provider(def.Code); !ok {
			t.Fatalf("section %s has no provider", def.Code)
		}
	}
}
