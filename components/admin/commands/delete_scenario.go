package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// DeleteScenarioInput identifies the scenario to remove.
type DeleteScenarioInput struct {
	ID string
}

type scenarioDeleter interface {
	DeleteScenario(ctx context.Context, id string) error
}

// DeleteScenarioCommand wraps Service.DeleteScenario.
type DeleteScenarioCommand struct {
	service   scenarioDeleter
	telemetry Telemetry
}

// NewDeleteScenarioCommand creates a command instance.
func NewDeleteScenarioCommand(service scenarioDeleter, telemetry Telemetry) *DeleteScenarioCommand {
	return &DeleteScenarioCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[DeleteScenarioInput] = (*DeleteScenarioCommand)(nil)

// Execute delegates to the admin service.
func (c *DeleteScenarioCommand) Execute(ctx context.Context, msg DeleteScenarioInput) error {
	if c.service == nil {
		return errors.New("delete scenario command requires service")
	}
	if msg.ID == "" {
		return errors.New("delete scenario command requires an id")
	}
	if err := c.service.DeleteScenario(ctx, msg.ID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "admin.command.scenario.delete", map[string]any{"id": msg.ID})
	return nil
}
