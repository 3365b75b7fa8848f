package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/voxxy-presents/presents-api/internal/model"
	"github.com/voxxy-presents/presents-api/internal/store"
)

// EventService owns the admin dashboard's event operations.
type EventService struct {
	store    store.Store
	validate *validator.Validate
}

// NewEventService constructs an EventService.
func NewEventService(st store.Store) *EventService {
	return &EventService{store: st, validate: validator.New()}
}

// Create validates the request and persists a new event.
func (s *EventService) Create(ctx context.Context, req model.CreateEventRequest) (*model.Event, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid event: %w", err)
	}
	if req.Capacity != nil && *req.Capacity > 100_000 {
		return nil, fmt.Errorf("capacity cannot exceed 100,000")
	}

	if _, err := s.store.GetOrganization(ctx, req.OrganizationID); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = model.StatusDraft
	}

	now := time.Now().UTC()
	event := &model.Event{
		ID:                   uuid.New().String(),
		OrganizationID:       req.OrganizationID,
		Title:                req.Title,
		Description:          req.Description,
		FullDescription:      req.FullDescription,
		Date:                 req.Date,
		EndDate:              req.EndDate,
		Time:                 req.Time,
		Duration:             req.Duration,
		Location:             req.Location,
		Address:              req.Address,
		Price:                req.Price,
		Capacity:             req.Capacity,
		RegistrationRequired: req.RegistrationRequired,
		EventbriteURL:        req.EventbriteURL,
		PresaleEnabled:       req.PresaleEnabled,
		Series:               req.Series,
		ImageURL:             req.ImageURL,
		Status:               status,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := s.store.CreateEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

// Get returns a single event by ID.
func (s *EventService) Get(ctx context.Context, id string) (*model.Event, error) {
	if id == "" {
		return nil, fmt.Errorf("event id is required")
	}
	return s.store.GetEvent(ctx, id)
}

// List returns all events, optionally filtered to one organization.
func (s *EventService) List(ctx context.Context, organizationID string) ([]model.Event, error) {
	if organizationID != "" {
		return s.store.ListEventsByOrganization(ctx, organizationID)
	}
	return s.store.ListEvents(ctx)
}

// Update applies a partial update to an existing event.
func (s *EventService) Update(ctx context.Context, id string, req model.UpdateEventRequest) (*model.Event, error) {
	event, err := s.store.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, fmt.Errorf("event title cannot be empty")
		}
		event.Title = title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.FullDescription != nil {
		event.FullDescription = *req.FullDescription
	}
	if req.Date != nil {
		event.Date = *req.Date
	}
	if req.EndDate != nil {
		event.EndDate = req.EndDate
	}
	if req.Time != nil {
		event.Time = *req.Time
	}
	if req.Duration != nil {
		event.Duration = *req.Duration
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.Address != nil {
		event.Address = *req.Address
	}
	if req.Price != nil {
		event.Price = *req.Price
	}
	if req.Capacity != nil {
		if *req.Capacity < 0 {
			return nil, fmt.Errorf("capacity cannot be negative")
		}
		event.Capacity = req.Capacity
	}
	if req.RegistrationRequired != nil {
		event.RegistrationRequired = *req.RegistrationRequired
	}
	if req.EventbriteURL != nil {
		event.EventbriteURL = *req.EventbriteURL
	}
	if req.PresaleEnabled != nil {
		event.PresaleEnabled = *req.PresaleEnabled
	}
	if req.Status != nil {
		event.Status = *req.Status
	}
	event.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

// Delete removes an event.
func (s *EventService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteEvent(ctx, id)
}

// Action evaluates the registration decision table for an event, telling the
// landing page which intake form (if any) to render.
func (s *EventService) Action(ctx context.Context, id string) (model.Action, error) {
	event, err := s.store.GetEvent(ctx, id)
	if err != nil {
		return model.ActionNone, err
	}
	return model.NextAction(*event), nil
}
