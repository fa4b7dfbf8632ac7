package commands

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	admin "github.com/refugehq/crisis-admin/components/admin"
)

type stubService struct {
	scenarios []admin.CreateScenarioInput
	resources []admin.CreateResourceInput
	deleted   []string
	err       error
}

func (s *stubService) CreateScenario(_ context.Context, in admin.CreateScenarioInput) (admin.Scenario, error) {
	if s.err != nil {
		return admin.Scenario{}, s.err
	}
	s.scenarios = append(s.scenarios, in)
	return admin.Scenario{ID: "scn-1", Title: in.Title, Severity: in.Severity}, nil
}

func (s *stubService) CreateResource(_ context.Context, in admin.CreateResourceInput) (admin.Resource, error) {
	if s.err != nil {
		return admin.Resource{}, s.err
	}
	s.resources = append(s.resources, in)
	return admin.Resource{ID: "res-1", Name: in.Name}, nil
}

func (s *stubService) DeleteScenario(_ context.Context, id string) error {
	if s.err != nil {
		return s.err
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubService) DeleteResource(_ context.Context, id string) error {
	if s.err != nil {
		return s.err
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func TestCreateScenarioCommand(t *testing.T) {
	service := &stubService{}
	cmd := NewCreateScenarioCommand(service, nil)

	in := admin.CreateScenarioInput{
		Title:       "t",
		Description: "d",
		Category:    admin.CategoryAsylum,
		Severity:    admin.SeverityHigh,
	}
	if err := cmd.Execute(context.Background(), in); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if len(service.scenarios) != 1 || service.scenarios[0].Title != "t" {
		t.Fatalf("service not invoked: %+v", service.scenarios)
	}
}

func TestCreateScenarioCommandRequiresService(t *testing.T) {
	cmd := NewCreateScenarioCommand(nil, nil)
	if err := cmd.Execute(context.Background(), admin.CreateScenarioInput{}); err == nil {
		t.Fatalf("expected error without a service")
	}
}

func TestDeleteScenarioCommandRequiresID(t *testing.T) {
	service := &stubService{}
	cmd := NewDeleteScenarioCommand(service, nil)
	if err := cmd.Execute(context.Background(), DeleteScenarioInput{}); err == nil {
		t.Fatalf("expected error for missing id")
	}
	if err := cmd.Execute(context.Background(), DeleteScenarioInput{ID: "scn-1"}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if len(service.deleted) != 1 || service.deleted[0] != "scn-1" {
		t.Fatalf("delete not invoked: %+v", service.deleted)
	}
}

func TestDeleteResourceCommandPropagatesError(t *testing.T) {
	boom := errors.New("down")
	cmd := NewDeleteResourceCommand(&stubService{err: boom}, nil)
	if err := cmd.Execute(context.Background(), DeleteResourceInput{ID: "res-1"}); !errors.Is(err, boom) {
		t.Fatalf("expected service error, got %v", err)
	}
}

func TestSeedCatalogCommandFromManifest(t *testing.T) {
	service := &stubService{}
	cmd := NewSeedCatalogCommand(service, nil)

	manifest := &admin.CatalogManifest{
		Version: admin.ManifestVersion,
		Scenarios: []admin.CreateScenarioInput{
			{Title: "a", Description: "d", Category: admin.CategoryAsylum, Severity: admin.SeverityLow},
			{Title: "b", Description: "d", Category: admin.CategoryDeportation, Severity: admin.SeverityCritical},
		},
		Resources: []admin.CreateResourceInput{
			{Name: "hotline", Description: "d", Categories: []admin.Category{admin.CategoryAsylum}, Languages: []admin.Language{admin.LanguageEnglish}},
		},
	}
	if err := cmd.Execute(context.Background(), SeedCatalogInput{Manifest: manifest}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if len(service.scenarios) != 2 || len(service.resources) != 1 {
		t.Fatalf("seed incomplete: %d scenarios, %d resources", len(service.scenarios), len(service.resources))
	}
}

func TestSeedCatalogCommandFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	doc := `
version: "1"
scenarios:
  - title: t
    description: d
    category: asylum
    severity: low
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	service := &stubService{}
	cmd := NewSeedCatalogCommand(service, nil)
	if err := cmd.Execute(context.Background(), SeedCatalogInput{ManifestPath: path}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if len(service.scenarios) != 1 {
		t.Fatalf("seed incomplete: %+v", service.scenarios)
	}
}

func TestSeedCatalogCommandRequiresInput(t *testing.T) {
	cmd := NewSeedCatalogCommand(&stubService{}, nil)
	if err := cmd.Execute(context.Background(), SeedCatalogInput{}); err == nil {
		t.Fatalf("expected error without manifest or path")
	}
}

func TestSeedCatalogCommandStopsOnFirstFailure(t *testing.T) {
	boom := errors.New("store down")
	cmd := NewSeedCatalogCommand(&stubService{err: boom}, nil)
	manifest := &admin.CatalogManifest{
		Version: admin.ManifestVersion,
		Scenarios: []admin.CreateScenarioInput{
			{Title: "a", Description: "d", Category: admin.CategoryAsylum, Severity: admin.SeverityLow},
		},
	}
	if err := cmd.Execute(context.Background(), SeedCatalogInput{Manifest: manifest}); !errors.Is(err, boom) {
		t.Fatalf("expected seed failure, got %v", err)
	}
}
