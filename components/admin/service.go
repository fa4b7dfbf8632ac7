package admin

import (
	"context"
	"errors"
	"time"

	"github.com/refugehq/crisis-admin/pkg/activity"
)

var (
	errMissingStore    = errors.New("admin: store not configured")
	errMissingRegistry = errors.New("admin: section registry not configured")
)

// Options configures the admin Service. Collaborators left nil are built from
// the store with defaults, so most callers only supply the store.
type Options struct {
	Scenarios      *ScenarioCatalog
	Resources      *ResourceCatalog
	Metrics        *Metrics
	Analytics      *Analytics
	Registry       *Registry
	ChartRenderer  *ChartRenderer
	RefreshHook    RefreshHook
	Telemetry      Telemetry
	ActivityHooks  activity.Hooks
	ActivityConfig activity.Config
}

// Service orchestrates the admin dashboard and catalog mutations on top of a
// Store implementation.
type Service struct {
	store    Store
	opts     Options
	activity *activity.Emitter
}

// NewService builds a Service with safe defaults. The error path is limited
// to a nil store or a default registry that fails to assemble.
func NewService(store Store, opts Options) (*Service, error) {
	if store == nil {
		return nil, errMissingStore
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	if opts.Scenarios == nil {
		opts.Scenarios = NewScenarioCatalog(store, opts.Telemetry)
	}
	if opts.Resources == nil {
		opts.Resources = NewResourceCatalog(store, opts.Telemetry)
	}
	if opts.Metrics == nil {
		opts.Metrics = NewMetrics(store, opts.Scenarios, opts.Telemetry)
	}
	if opts.Analytics == nil {
		opts.Analytics = NewAnalytics(store, opts.Scenarios, opts.Telemetry)
	}
	if opts.Registry == nil {
		registry, err := DefaultRegistry(opts.Metrics, opts.Analytics, opts.ChartRenderer)
		if err != nil {
			return nil, err
		}
		opts.Registry = registry
	}
	if opts.RefreshHook == nil {
		opts.RefreshHook = noopRefreshHook{}
	}
	return &Service{
		store:    store,
		opts:     opts,
		activity: activity.NewEmitter(opts.ActivityHooks, opts.ActivityConfig),
	}, nil
}

// SectionResult is one rendered dashboard section. Err carries a section's
// failure without affecting its siblings.
type SectionResult struct {
	Code string      `json:"code"`
	Name string      `json:"name"`
	Data SectionData `json:"data,omitempty"`
	Err  string      `json:"error,omitempty"`
}

// Dashboard is the full rendered dashboard view-model.
type Dashboard struct {
	GeneratedAt time.Time       `json:"generated_at"`
	Sections    []SectionResult `json:"sections"`
}

// Dashboard renders every registered section in registration order. A section
// provider failure is recorded on that section's result; the rest render
// normally. The method itself fails only on a missing registry.
func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	if s.opts.Registry == nil {
		return Dashboard{}, errMissingRegistry
	}
	defs := s.opts.Registry.Definitions()
	out := Dashboard{
		GeneratedAt: time.Now().UTC(),
		Sections:    make([]SectionResult, 0, len(defs)),
	}
	for _, def := range defs {
		result := SectionResult{Code: def.Code, Name: def.Name}
		provider, ok := s.opts.Registry.Provider(def.Code)
		if !ok {
			result.Err = "no provider registered"
			out.Sections = append(out.Sections, result)
			continue
		}
		data, err := provider.Fetch(ctx)
		if err != nil {
			result.Err = err.Error()
			s.opts.Telemetry.Record(ctx, "admin.section.error", map[string]any{
				"section": def.Code,
				"error":   err.Error(),
			})
		} else {
			result.Data = data
		}
		out.Sections = append(out.Sections, result)
	}
	return out, nil
}

// ListScenarios returns the catalog sorted by severity rank.
func (s *Service) ListScenarios(ctx context.Context) ([]Scenario, error) {
	return s.opts.Scenarios.List(ctx)
}

// ListResources returns the catalog with emergency resources first.
func (s *Service) ListResources(ctx context.Context) ([]Resource, error) {
	return s.opts.Resources.List(ctx)
}

// Overview exposes the collection counts.
func (s *Service) Overview(ctx context.Context) (OverviewMetrics, error) {
	return s.opts.Metrics.Overview(ctx)
}

// AnalyticsView exposes the bundled analytics aggregation.
func (s *Service) AnalyticsView(ctx context.Context) (AnalyticsView, error) {
	return s.opts.Analytics.View(ctx)
}

// CreateScenario validates and stores a scenario, then notifies listeners.
func (s *Service) CreateScenario(ctx context.Context, in CreateScenarioInput) (Scenario, error) {
	created, err := s.opts.Scenarios.Create(ctx, in)
	if err != nil {
		return Scenario{}, err
	}
	if err := s.notifyCatalog(ctx, CatalogEvent{
		Collection: CollectionScenarios,
		ObjectID:   created.ID,
		Action:     "create",
	}); err != nil {
		return Scenario{}, err
	}
	s.emitActivity(ctx, "admin.scenario.create", "scenario", created.ID, map[string]any{
		"title":    created.Title,
		"severity": string(created.Severity),
	})
	return created, nil
}

// DeleteScenario removes a scenario, then notifies listeners. Matched message
// references are left to dangle per the soft-reference policy.
func (s *Service) DeleteScenario(ctx context.Context, id string) error {
	if err := s.opts.Scenarios.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.notifyCatalog(ctx, CatalogEvent{
		Collection: CollectionScenarios,
		ObjectID:   id,
		Action:     "delete",
	}); err != nil {
		return err
	}
	s.emitActivity(ctx, "admin.scenario.delete", "scenario", id, nil)
	return nil
}

// CreateResource validates and stores a resource, then notifies listeners.
func (s *Service) CreateResource(ctx context.Context, in CreateResourceInput) (Resource, error) {
	created, err := s.opts.Resources.Create(ctx, in)
	if err != nil {
		return Resource{}, err
	}
	if err := s.notifyCatalog(ctx, CatalogEvent{
		Collection: CollectionResources,
		ObjectID:   created.ID,
		Action:     "create",
	}); err != nil {
		return Resource{}, err
	}
	s.emitActivity(ctx, "admin.resource.create", "resource", created.ID, map[string]any{
		"name":      created.Name,
		"emergency": created.IsEmergency,
	})
	return created, nil
}

// DeleteResource removes a resource, then notifies listeners.
func (s *Service) DeleteResource(ctx context.Context, id string) error {
	if err := s.opts.Resources.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.notifyCatalog(ctx, CatalogEvent{
		Collection: CollectionResources,
		ObjectID:   id,
		Action:     "delete",
	}); err != nil {
		return err
	}
	s.emitActivity(ctx, "admin.resource.delete", "resource", id, nil)
	return nil
}

// NotifyCatalogUpdated exposes refresh hook invocation for commands and
// transports that mutate the catalog outside the Service.
func (s *Service) NotifyCatalogUpdated(ctx context.Context, event CatalogEvent) error {
	return s.notifyCatalog(ctx, event)
}

func (s *Service) notifyCatalog(ctx context.Context, event CatalogEvent) error {
	if err := s.opts.RefreshHook.CatalogUpdated(ctx, event); err != nil {
		return err
	}
	s.opts.Telemetry.Record(ctx, "admin.catalog.event", map[string]any{
		"collection": event.Collection,
		"object_id":  event.ObjectID,
		"action":     event.Action,
	})
	return nil
}

func (s *Service) emitActivity(ctx context.Context, verb, objectType, objectID string, metadata map[string]any) {
	if !s.activity.Enabled() {
		return
	}
	meta := activityContextFrom(ctx)
	_ = s.activity.Emit(ctx, activity.Event{
		Verb:       verb,
		ActorID:    meta.ActorID,
		UserID:     meta.UserID,
		TenantID:   meta.TenantID,
		ObjectType: objectType,
		ObjectID:   objectID,
		Metadata:   metadata,
	})
}

type noopRefreshHook struct{}

func (noopRefreshHook) CatalogUpdated(context.Context, CatalogEvent) error {
	return nil
}
