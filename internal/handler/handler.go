// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/voxxy-presents/presents-api/internal/manualsales"
	"github.com/voxxy-presents/presents-api/internal/model"
	"github.com/voxxy-presents/presents-api/internal/service"
	"github.com/voxxy-presents/presents-api/internal/store"
)

// Handler holds all HTTP handlers for the event management API.
type Handler struct {
	registrations *service.RegistrationService
	events        *service.EventService
	organizations *service.OrganizationService
	manualSales   *manualsales.Counter
}

// New constructs a Handler.
func New(
	registrations *service.RegistrationService,
	events *service.EventService,
	organizations *service.OrganizationService,
	manualSales *manualsales.Counter,
) *Handler {
	return &Handler{
		registrations: registrations,
		events:        events,
		organizations: organizations,
		manualSales:   manualSales,
	}
}

// Routes mounts every endpoint on the given router.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/health", HealthCheck)

	r.Route("/registrations", func(r chi.Router) {
		r.Post("/", h.CreateRegistration)
		r.Get("/event/{eventId}", h.ListRegistrations)
		r.Get("/event/{eventId}/export", h.ExportRegistrations)
		r.Patch("/{id}/email-sent", h.MarkEmailSent)
	})

	r.Route("/events", func(r chi.Router) {
		r.Post("/", h.CreateEvent)
		r.Get("/", h.ListEvents)
		r.Get("/{id}", h.GetEvent)
		r.Put("/{id}", h.UpdateEvent)
		r.Delete("/{id}", h.DeleteEvent)
		r.Get("/{id}/availability", h.EventAvailability)
		r.Get("/{id}/action", h.EventAction)
		r.Put("/{id}/manual-sales", h.SetManualSales)
	})

	r.Route("/organizations", func(r chi.Router) {
		r.Post("/", h.CreateOrganization)
		r.Get("/", h.ListOrganizations)
		r.Get("/{slug}", h.GetOrganizationBySlug)
		r.Put("/{id}", h.UpdateOrganization)
	})
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Message: msg})
}

func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// ─── Registrations ────────────────────────────────────────────────────────────

// createRegistrationPayload is the POST /registrations body: the intake
// fields plus the optional follow-up survey answer.
type createRegistrationPayload struct {
	model.CreateRegistrationRequest
	Survey *service.SurveyAnswer `json:"survey,omitempty"`
}

// CreateRegistration handles POST /registrations
func (h *Handler) CreateRegistration(w http.ResponseWriter, r *http.Request) {
	var payload createRegistrationPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := h.registrations.Register(r.Context(), payload.CreateRegistrationRequest, payload.Survey)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "event not found")
		case errors.Is(err, service.ErrNotAccepting):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	// The contract returns the created registration itself; clients derive
	// their confirmation copy from the kind.
	writeJSON(w, http.StatusCreated, result.Registration)
}

// ListRegistrations handles GET /registrations/event/{eventId}
func (h *Handler) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")

	view, err := h.registrations.ListByEvent(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "event not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to list registrations")
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// ExportRegistrations handles GET /registrations/event/{eventId}/export
// It streams the CSV export with the contract filename.
func (h *Handler) ExportRegistrations(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")

	export, err := h.registrations.ExportCSV(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "event not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to export registrations")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(export.Content))
}

// MarkEmailSent handles PATCH /registrations/{id}/email-sent
func (h *Handler) MarkEmailSent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.registrations.MarkEmailSent(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "registration not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update registration")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"emailSent": true})
}

// ─── Events ───────────────────────────────────────────────────────────────────

// CreateEvent handles POST /events
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req model.CreateEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	event, err := h.events.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "organization not found")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, event)
}

// ListEvents handles GET /events with an optional ?organization= filter.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.List(r.Context(), r.URL.Query().Get("organization"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list events")
		return
	}

	if events == nil {
		events = []model.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

// GetEvent handles GET /events/{id}
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.events.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "event not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get event")
		return
	}

	writeJSON(w, http.StatusOK, event)
}

// UpdateEvent handles PUT /events/{id}
func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	event, err := h.events.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "event not found")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, event)
}

// DeleteEvent handles DELETE /events/{id}
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.events.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "event not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete event")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// EventAvailability handles GET /events/{id}/availability
// An explicit ?manual_sales= value overrides the stored counter.
func (h *Handler) EventAvailability(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	manual := h.manualSales.Get(id)
	if v := r.URL.Query().Get("manual_sales"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "manual_sales must be a non-negative integer")
			return
		}
		manual = n
	}

	availability, err := h.registrations.Availability(r.Context(), id, manual)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "event not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to compute availability")
		return
	}

	writeJSON(w, http.StatusOK, availability)
}

// EventAction handles GET /events/{id}/action
// Returns the decision-table result for the event.
func (h *Handler) EventAction(w http.ResponseWriter, r *http.Request) {
	action, err := h.events.Action(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "event not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to evaluate action")
		return
	}

	writeJSON(w, http.StatusOK, map[string]model.Action{"action": action})
}

// SetManualSales handles PUT /events/{id}/manual-sales
func (h *Handler) SetManualSales(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Count int `json:"count"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Count < 0 {
		writeError(w, http.StatusBadRequest, "count must be a non-negative integer")
		return
	}

	if err := h.manualSales.Set(id, req.Count); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save manual sales")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"count": req.Count})
}

// ─── Organizations ────────────────────────────────────────────────────────────

// CreateOrganization handles POST /organizations
func (h *Handler) CreateOrganization(w http.ResponseWriter, r *http.Request) {
	var req model.CreateOrganizationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	org, err := h.organizations.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, store.ErrSlugTaken) {
			writeError(w, http.StatusConflict, "slug already taken")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, org)
}

// ListOrganizations handles GET /organizations
func (h *Handler) ListOrganizations(w http.ResponseWriter, r *http.Request) {
	orgs, err := h.organizations.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list organizations")
		return
	}

	if orgs == nil {
		orgs = []model.Organization{}
	}
	writeJSON(w, http.StatusOK, orgs)
}

// GetOrganizationBySlug handles GET /organizations/{slug}
// Public landing pages resolve their organization here.
func (h *Handler) GetOrganizationBySlug(w http.ResponseWriter, r *http.Request) {
	org, err := h.organizations.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "organization not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get organization")
		return
	}

	writeJSON(w, http.StatusOK, org)
}

// UpdateOrganization handles PUT /organizations/{id}
func (h *Handler) UpdateOrganization(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateOrganizationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	org, err := h.organizations.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "organization not found")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, org)
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
