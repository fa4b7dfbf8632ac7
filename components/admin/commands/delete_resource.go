package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// DeleteResourceInput identifies the resource to remove.
type DeleteResourceInput struct {
	ID string
}

type resourceDeleter interface {
	DeleteResource(ctx context.Context, id string) error
}

// DeleteResourceCommand wraps Service.DeleteResource.
type DeleteResourceCommand struct {
	service   resourceDeleter
	telemetry Telemetry
}

// NewDeleteResourceCommand creates a command instance.
func NewDeleteResourceCommand(service resourceDeleter, telemetry Telemetry) *DeleteResourceCommand {
	return &DeleteResourceCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[DeleteResourceInput] = (*DeleteResourceCommand)(nil)

// Execute delegates to the admin service.
func (c *DeleteResourceCommand) Execute(ctx context.Context, msg DeleteResourceInput) error {
	if c.service == nil {
		return errors.New("delete resource command requires service")
	}
	if msg.ID == "" {
		return errors.New("delete resource command requires an id")
	}
	if err := c.service.DeleteResource(ctx, msg.ID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "admin.command.resource.delete", map[string]any{"id": msg.ID})
	return nil
}
