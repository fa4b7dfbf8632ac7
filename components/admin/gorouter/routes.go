package gorouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	router "github.com/goliatone/go-router"

	admin "github.com/refugehq/crisis-admin/components/admin"
	"github.com/refugehq/crisis-admin/components/admin/httpapi"
)

// ActorResolver extracts the acting operator from a router.Context so catalog
// mutations carry actor metadata into the activity stream.
type ActorResolver func(router.Context) admin.ActivityContext

// Config wires go-router with the admin controller, API, and broadcast hook.
type Config[T any] struct {
	Router        router.Router[T]
	Controller    *admin.Controller
	API           httpapi.Executor
	Validator     *admin.PayloadValidator
	Broadcast     *admin.BroadcastHook
	ActorResolver ActorResolver
	BasePath      string
	Routes        RouteConfig
}

// RouteConfig customizes the relative paths used for admin endpoints.
type RouteConfig struct {
	HTML       string
	Dashboard  string
	Overview   string
	Analytics  string
	Scenarios  string
	ScenarioID string
	Resources  string
	ResourceID string
	WebSocket  string
}

// Register mounts admin routes (HTML, JSON, REST, WebSocket) on a go-router
// router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	routes := defaultRouteConfig(cfg.Routes)
	base := cfg.BasePath
	if base == "" {
		base = "/admin"
	}
	resolver := cfg.ActorResolver
	if resolver == nil {
		resolver = defaultActorResolver
	}
	validator := cfg.Validator
	if validator == nil {
		validator = admin.NewPayloadValidator()
	}

	group := cfg.Router.Group(base)

	group.Get(routes.HTML, router.WrapHandler(func(ctx router.Context) error {
		var buf bytes.Buffer
		if err := cfg.Controller.RenderTemplate(ctx.Context(), &buf); err != nil {
			return respondError(ctx, err)
		}
		ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
		return ctx.Send(buf.Bytes())
	}))

	group.Get(routes.Dashboard, router.WrapHandler(func(ctx router.Context) error {
		dashboard, err := cfg.Controller.Render(ctx.Context())
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, dashboard)
	}))

	if cfg.API != nil {
		registerAPI(group, cfg.API, validator, resolver, routes)
	}

	if cfg.Broadcast != nil {
		registerWebSocket(group, cfg.Broadcast, routes.WebSocket)
	}

	return nil
}

func registerAPI[T any](r router.Router[T], api httpapi.Executor, validator *admin.PayloadValidator, resolver ActorResolver, routes RouteConfig) {
	r.Get(routes.Overview, router.WrapHandler(func(ctx router.Context) error {
		overview, err := api.Overview(ctx.Context())
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, overview)
	}))

	r.Get(routes.Analytics, router.WrapHandler(func(ctx router.Context) error {
		view, err := api.AnalyticsView(ctx.Context())
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, view)
	}))

	r.Get(routes.Scenarios, router.WrapHandler(func(ctx router.Context) error {
		scenarios, err := api.ListScenarios(ctx.Context())
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, scenarios)
	}))

	r.Post(routes.Scenarios, router.WrapHandler(func(ctx router.Context) error {
		var input admin.CreateScenarioInput
		if err := decodePayload(ctx.Body(), validator, admin.CollectionScenarios, &input); err != nil {
			return respondError(ctx, err)
		}
		created, err := api.CreateScenario(actorContext(ctx, resolver), input)
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusCreated, created)
	}))

	r.Delete(routes.ScenarioID, router.WrapHandler(func(ctx router.Context) error {
		id := ctx.Param("id")
		if id == "" {
			return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "scenario id is required"})
		}
		if err := api.DeleteScenario(actorContext(ctx, resolver), id); err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "deleted"})
	}))

	r.Get(routes.Resources, router.WrapHandler(func(ctx router.Context) error {
		resources, err := api.ListResources(ctx.Context())
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, resources)
	}))

	r.Post(routes.Resources, router.WrapHandler(func(ctx router.Context) error {
		var input admin.CreateResourceInput
		if err := decodePayload(ctx.Body(), validator, admin.CollectionResources, &input); err != nil {
			return respondError(ctx, err)
		}
		created, err := api.CreateResource(actorContext(ctx, resolver), input)
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusCreated, created)
	}))

	r.Delete(routes.ResourceID, router.WrapHandler(func(ctx router.Context) error {
		id := ctx.Param("id")
		if id == "" {
			return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "resource id is required"})
		}
		if err := api.DeleteResource(actorContext(ctx, resolver), id); err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "deleted"})
	}))
}

func registerWebSocket[T any](r router.Router[T], hook *admin.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		events, cancel := hook.Subscribe()
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

// decodePayload schema-validates the raw body before decoding into the typed
// input, so malformed requests fail with field-level messages.
func decodePayload(body []byte, validator *admin.PayloadValidator, collection string, target any) error {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return errors.Join(admin.ErrValidation, errors.New("invalid JSON payload"))
	}
	if validator != nil {
		if err := validator.Validate(collection, raw); err != nil {
			return err
		}
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return errors.Join(admin.ErrValidation, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return errors.Join(admin.ErrValidation, err)
	}
	return nil
}

func actorContext(ctx router.Context, resolver ActorResolver) context.Context {
	return admin.ContextWithActivity(ctx.Context(), resolver(ctx))
}

func defaultActorResolver(ctx router.Context) admin.ActivityContext {
	var meta admin.ActivityContext
	if v, ok := ctx.Locals("actor_id").(string); ok {
		meta.ActorID = v
	}
	if v, ok := ctx.Locals("user_id").(string); ok {
		meta.UserID = v
	}
	if v, ok := ctx.Locals("tenant_id").(string); ok {
		meta.TenantID = v
	}
	return meta
}

func respondError(ctx router.Context, err error) error {
	return ctx.JSON(statusForError(err), map[string]string{"error": err.Error()})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, admin.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, admin.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, admin.ErrConnectivity):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.HTML == "" {
		routes.HTML = "/dashboard"
	}
	if routes.Dashboard == "" {
		routes.Dashboard = "/dashboard/_data"
	}
	if routes.Overview == "" {
		routes.Overview = "/api/overview"
	}
	if routes.Analytics == "" {
		routes.Analytics = "/api/analytics"
	}
	if routes.Scenarios == "" {
		routes.Scenarios = "/api/scenarios"
	}
	if routes.ScenarioID == "" {
		routes.ScenarioID = "/api/scenarios/:id"
	}
	if routes.Resources == "" {
		routes.Resources = "/api/resources"
	}
	if routes.ResourceID == "" {
		routes.ResourceID = "/api/resources/:id"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/events"
	}
	return routes
}
