package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	admin "github.com/refugehq/crisis-admin/components/admin"
)

type resourceCreator interface {
	CreateResource(ctx context.Context, in admin.CreateResourceInput) (admin.Resource, error)
}

// CreateResourceCommand wraps Service.CreateResource.
type CreateResourceCommand struct {
	service   resourceCreator
	telemetry Telemetry
}

// NewCreateResourceCommand creates a command instance.
func NewCreateResourceCommand(service resourceCreator, telemetry Telemetry) *CreateResourceCommand {
	return &CreateResourceCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[admin.CreateResourceInput] = (*CreateResourceCommand)(nil)

// Execute delegates to the admin service.
func (c *CreateResourceCommand) Execute(ctx context.Context, msg admin.CreateResourceInput) error {
	if c.service == nil {
		return errors.New("create resource command requires service")
	}
	created, err := c.service.CreateResource(ctx, msg)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "admin.command.resource.create", map[string]any{
		"id":        created.ID,
		"emergency": created.IsEmergency,
	})
	return nil
}
