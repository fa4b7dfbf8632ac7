package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	admin "github.com/refugehq/crisis-admin/components/admin"
)

// Executor is the slice of the admin service the HTTP API needs. The concrete
// *admin.Service satisfies it.
type Executor interface {
	Dashboard(ctx context.Context) (admin.Dashboard, error)
	ListScenarios(ctx context.Context) ([]admin.Scenario, error)
	ListResources(ctx context.Context) ([]admin.Resource, error)
	Overview(ctx context.Context) (admin.OverviewMetrics, error)
	AnalyticsView(ctx context.Context) (admin.AnalyticsView, error)
	CreateScenario(ctx context.Context, in admin.CreateScenarioInput) (admin.Scenario, error)
	DeleteScenario(ctx context.Context, id string) error
	CreateResource(ctx context.Context, in admin.CreateResourceInput) (admin.Resource, error)
	DeleteResource(ctx context.Context, id string) error
}

// Handlers exposes the admin API over net/http. Raw create payloads are
// schema-validated before they are decoded into typed inputs.
type Handlers struct {
	Service   Executor
	Validator *admin.PayloadValidator
}

// NewHandlers builds handlers with a default payload validator.
func NewHandlers(service Executor) *Handlers {
	return &Handlers{
		Service:   service,
		Validator: admin.NewPayloadValidator(),
	}
}

// HandleDashboard serves the full dashboard view-model as JSON.
func (h *Handlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.Service.Dashboard(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dashboard)
}

// HandleListScenarios serves the severity-ordered scenario catalog.
func (h *Handlers) HandleListScenarios(w http.ResponseWriter, r *http.Request) {
	scenarios, err := h.Service.ListScenarios(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, scenarios)
}

// HandleListResources serves the emergency-first resource catalog.
func (h *Handlers) HandleListResources(w http.ResponseWriter, r *http.Request) {
	resources, err := h.Service.ListResources(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resources)
}

// HandleOverview serves the collection counts.
func (h *Handlers) HandleOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.Service.Overview(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, overview)
}

// HandleAnalytics serves the bundled analytics aggregation.
func (h *Handlers) HandleAnalytics(w http.ResponseWriter, r *http.Request) {
	view, err := h.Service.AnalyticsView(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// HandleCreateScenario validates and creates a scenario, returning the stored
// record with its server-assigned id.
func (h *Handlers) HandleCreateScenario(w http.ResponseWriter, r *http.Request) {
	var input admin.CreateScenarioInput
	if !h.decodePayload(w, r, admin.CollectionScenarios, &input) {
		return
	}
	created, err := h.Service.CreateScenario(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// HandleDeleteScenario removes a scenario by id.
func (h *Handlers) HandleDeleteScenario(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.Service.DeleteScenario(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleCreateResource validates and creates a resource.
func (h *Handlers) HandleCreateResource(w http.ResponseWriter, r *http.Request) {
	var input admin.CreateResourceInput
	if !h.decodePayload(w, r, admin.CollectionResources, &input) {
		return
	}
	created, err := h.Service.CreateResource(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// HandleDeleteResource removes a resource by id.
func (h *Handlers) HandleDeleteResource(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.Service.DeleteResource(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodePayload reads the body once, schema-validates the raw map, then
// re-decodes into the typed input. Returns false after writing the error.
func (h *Handlers) decodePayload(w http.ResponseWriter, r *http.Request, collection string, target any) bool {
	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody("invalid JSON payload"))
		return false
	}
	if h.Validator != nil {
		if err := h.Validator.Validate(collection, raw); err != nil {
			respondJSON(w, http.StatusBadRequest, errorBody(err.Error()))
			return false
		}
	}
	data, err := json.Marshal(raw)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody("invalid JSON payload"))
		return false
	}
	if err := json.Unmarshal(data, target); err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody("invalid JSON payload"))
		return false
	}
	return true
}

func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, admin.ErrValidation):
		respondJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	case errors.Is(err, admin.ErrNotFound):
		respondJSON(w, http.StatusNotFound, errorBody(err.Error()))
	case errors.Is(err, admin.ErrConfiguration):
		respondJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
	case errors.Is(err, admin.ErrConnectivity):
		respondJSON(w, http.StatusBadGateway, errorBody(err.Error()))
	default:
		respondJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
	}
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func errorBody(message string) map[string]string {
	return map[string]string{"error": message}
}
