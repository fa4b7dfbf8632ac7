// Package admin is the embedding facade: it re-exports the core service and
// helps host applications mount the dashboard behind their own navigation.
package admin

import (
	"context"
	"errors"

	core "github.com/refugehq/crisis-admin/components/admin"
	activitypkg "github.com/refugehq/crisis-admin/pkg/activity"
)

// Service exposes the underlying components/admin.Service type.
type Service = core.Service

// Options re-export for convenience.
type Options = core.Options

// NewService proxies to the core constructor.
func NewService(store core.Store, opts Options) (*Service, error) {
	return core.NewService(store, opts)
}

// MenuBuilder ensures admin entries exist within a host navigation menu.
type MenuBuilder interface {
	EnsureMenuItem(ctx context.Context, menuCode string, item MenuItem) error
}

// MenuItem captures dashboard link metadata.
type MenuItem struct {
	Label    string
	Route    string
	Icon     string
	Position int
}

// Config wires the admin service and feature flags into a host application.
type Config struct {
	EnableDashboard bool
	MenuCode        string
	MenuBuilder     MenuBuilder
	Service         *Service
	DefaultMenuItem MenuItem
	ActivityHooks   activitypkg.Hooks
	ActivityConfig  activitypkg.Config
}

// Admin exposes helpers for applications embedding the dashboard.
type Admin struct {
	cfg Config
}

// New creates an Admin helper that can seed navigation entries.
func New(cfg Config) (*Admin, error) {
	if cfg.EnableDashboard && cfg.Service == nil {
		return nil, errors.New("admin: service is required when dashboard is enabled")
	}
	if cfg.MenuCode == "" {
		cfg.MenuCode = "admin.main"
	}
	if cfg.DefaultMenuItem.Label == "" {
		cfg.DefaultMenuItem.Label = "Crisis Admin"
	}
	if cfg.DefaultMenuItem.Route == "" {
		cfg.DefaultMenuItem.Route = "admin.dashboard"
	}
	if cfg.DefaultMenuItem.Icon == "" {
		cfg.DefaultMenuItem.Icon = "life-buoy"
	}
	return &Admin{cfg: cfg}, nil
}

// Dashboard exposes the configured service when enabled.
func (a *Admin) Dashboard() *Service {
	if !a.cfg.EnableDashboard {
		return nil
	}
	return a.cfg.Service
}

// Bootstrap seeds menu entries when dashboard support is enabled.
func (a *Admin) Bootstrap(ctx context.Context) error {
	if !a.cfg.EnableDashboard || a.cfg.MenuBuilder == nil {
		return nil
	}
	return a.cfg.MenuBuilder.EnsureMenuItem(ctx, a.cfg.MenuCode, a.cfg.DefaultMenuItem)
}
