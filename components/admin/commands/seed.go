package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	admin "github.com/refugehq/crisis-admin/components/admin"
)

// SeedCatalogInput points the seed pipeline at a manifest. Manifest wins over
// ManifestPath when both are set.
type SeedCatalogInput struct {
	ManifestPath string
	Manifest     *admin.CatalogManifest
}

type catalogSeeder interface {
	scenarioCreator
	resourceCreator
}

// SeedCatalogCommand loads a catalog manifest and creates every entry through
// the service so validation, refresh hooks, and activity all apply.
type SeedCatalogCommand struct {
	service   catalogSeeder
	telemetry Telemetry
}

// NewSeedCatalogCommand wires dependencies.
func NewSeedCatalogCommand(service catalogSeeder, telemetry Telemetry) *SeedCatalogCommand {
	return &SeedCatalogCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SeedCatalogInput] = (*SeedCatalogCommand)(nil)

// Execute runs the seed pipeline.
func (c *SeedCatalogCommand) Execute(ctx context.Context, msg SeedCatalogInput) error {
	if c.service == nil {
		return errors.New("seed command requires service")
	}
	manifest := msg.Manifest
	if manifest == nil {
		if msg.ManifestPath == "" {
			return errors.New("seed command requires a manifest or a manifest path")
		}
		doc, err := admin.ReadManifest(msg.ManifestPath)
		if err != nil {
			return err
		}
		manifest = doc
	}
	for _, scenario := range manifest.Scenarios {
		if _, err := c.service.CreateScenario(ctx, scenario); err != nil {
			return err
		}
	}
	for _, resource := range manifest.Resources {
		if _, err := c.service.CreateResource(ctx, resource); err != nil {
			return err
		}
	}
	c.telemetry.Record(ctx, "admin.catalog.seed", map[string]any{
		"scenarios": len(manifest.Scenarios),
		"resources": len(manifest.Resources),
	})
	return nil
}
