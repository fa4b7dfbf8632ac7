package admin

import (
	"context"
	"errors"
	"io"
)

const defaultDashboardTemplate = "dashboard.html"

// DashboardResolver is the slice of Service the controller needs.
type DashboardResolver interface {
	Dashboard(ctx context.Context) (Dashboard, error)
}

// ControllerOptions wires the controller's collaborators.
type ControllerOptions struct {
	Service  DashboardResolver
	Renderer Renderer
	Template string
}

// Controller turns the dashboard view-model into HTTP-ready HTML or JSON
// payloads.
type Controller struct {
	opts ControllerOptions
}

// NewController builds a controller with the default template name.
func NewController(opts ControllerOptions) *Controller {
	if opts.Template == "" {
		opts.Template = defaultDashboardTemplate
	}
	return &Controller{opts: opts}
}

// Render resolves the dashboard view-model for JSON responses.
func (c *Controller) Render(ctx context.Context) (Dashboard, error) {
	if c.opts.Service == nil {
		return Dashboard{}, errors.New("admin: controller has no service")
	}
	return c.opts.Service.Dashboard(ctx)
}

// RenderTemplate resolves the dashboard and renders it as HTML to out.
func (c *Controller) RenderTemplate(ctx context.Context, out io.Writer) error {
	if c.opts.Renderer == nil {
		return errors.New("admin: controller has no renderer")
	}
	dashboard, err := c.Render(ctx)
	if err != nil {
		return err
	}
	_, err = c.opts.Renderer.Render(c.opts.Template, c.payload(dashboard), out)
	return err
}

func (c *Controller) payload(dashboard Dashboard) map[string]any {
	sections := make([]map[string]any, 0, len(dashboard.Sections))
	for _, section := range dashboard.Sections {
		sections = append(sections, map[string]any{
			"code":  section.Code,
			"name":  section.Name,
			"data":  map[string]any(section.Data),
			"error": section.Err,
		})
	}
	return map[string]any{
		"title":        "Crisis Support Admin",
		"generated_at": dashboard.GeneratedAt.Format(displayTimestamp),
		"sections":     sections,
	}
}
