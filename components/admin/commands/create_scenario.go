package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	admin "github.com/refugehq/crisis-admin/components/admin"
)

type scenarioCreator interface {
	CreateScenario(ctx context.Context, in admin.CreateScenarioInput) (admin.Scenario, error)
}

// CreateScenarioCommand wraps Service.CreateScenario so transports and CLIs
// can invoke catalog mutations without linking directly against the service.
type CreateScenarioCommand struct {
	service   scenarioCreator
	telemetry Telemetry
}

// NewCreateScenarioCommand creates a command instance.
func NewCreateScenarioCommand(service scenarioCreator, telemetry Telemetry) *CreateScenarioCommand {
	return &CreateScenarioCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[admin.CreateScenarioInput] = (*CreateScenarioCommand)(nil)

// Execute delegates to the admin service.
func (c *CreateScenarioCommand) Execute(ctx context.Context, msg admin.CreateScenarioInput) error {
	if c.service == nil {
		return errors.New("create scenario command requires service")
	}
	created, err := c.service.CreateScenario(ctx, msg)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "admin.command.scenario.create", map[string]any{
		"id":       created.ID,
		"severity": string(created.Severity),
	})
	return nil
}
