// Package service implements business logic, validation, and orchestration
// between HTTP handlers and the storage layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/voxxy-presents/presents-api/internal/model"
	"github.com/voxxy-presents/presents-api/internal/store"
)

// ErrNotAccepting is returned when an event does not currently offer the
// requested registration kind.
var ErrNotAccepting = errors.New("event is not accepting this registration type")

// RegistrationService owns the registration ledger operations.
type RegistrationService struct {
	store    store.Store
	validate *validator.Validate
}

// NewRegistrationService constructs a RegistrationService.
func NewRegistrationService(st store.Store) *RegistrationService {
	return &RegistrationService{store: st, validate: validator.New()}
}

// RegistrationResult pairs a created registration with the confirmation line
// the intake form shows for its kind.
type RegistrationResult struct {
	Registration *model.Registration `json:"registration"`
	Confirmation string              `json:"confirmation"`
}

// SurveyAnswer is the optional "how did you hear about this event" follow-up.
// Entirely skippable; it only ever annotates the registration notes.
type SurveyAnswer struct {
	Source       string `json:"source,omitempty"`
	OtherDetails string `json:"otherDetails,omitempty"`
}

// Register validates an intake submission and appends it to the ledger.
//
// Field rules per kind: name is always required; presale requests and
// waitlist joins must carry an email. The event's decision table determines
// whether the kind is accepted at all. All validation happens before any
// store write.
func (s *RegistrationService) Register(ctx context.Context, req model.CreateRegistrationRequest, survey *SurveyAnswer) (*RegistrationResult, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Phone = strings.TrimSpace(req.Phone)

	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid registration: %w", err)
	}
	if !req.RegistrationType.Valid() {
		return nil, fmt.Errorf("unknown registration type %q", req.RegistrationType)
	}
	switch req.RegistrationType {
	case model.RegPresaleRequest, model.RegWaitlist:
		if req.Email == "" {
			return nil, fmt.Errorf("email is required for %s registrations", req.RegistrationType.Label())
		}
	}

	event, err := s.store.GetEvent(ctx, req.EventID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !model.NextAction(*event).AllowsType(req.RegistrationType) {
		return nil, ErrNotAccepting
	}

	notes := strings.TrimSpace(req.Notes)
	if survey != nil && survey.Source != "" {
		line := "How did you hear: " + survey.Source
		if survey.OtherDetails != "" {
			line += " (" + survey.OtherDetails + ")"
		}
		if notes != "" {
			notes += "\n"
		}
		notes += line
	}

	reg := &model.Registration{
		ID:                    uuid.New().String(),
		EventID:               req.EventID,
		Name:                  req.Name,
		Email:                 req.Email,
		Phone:                 req.Phone,
		RegistrationType:      req.RegistrationType,
		Notes:                 notes,
		SubscribeToUpdates:    req.SubscribeToUpdates,
		SubscribeToNewsletter: req.SubscribeToNewsletter,
		Source:                "website",
		CreatedAt:             time.Now().UTC(),
	}
	if err := s.store.CreateRegistration(ctx, reg); err != nil {
		return nil, fmt.Errorf("create registration: %w", err)
	}

	return &RegistrationResult{
		Registration: reg,
		Confirmation: confirmationFor(req.RegistrationType),
	}, nil
}

func confirmationFor(t model.RegistrationType) string {
	switch t {
	case model.RegWaitlist:
		return "Added to Waitlist!"
	case model.RegPresaleRequest:
		return "Presale Request Received!"
	default:
		return "Interest Submitted!"
	}
}

// EventRegistrations is the listing view: the fetched list plus derived
// per-type counts.
type EventRegistrations struct {
	Registrations []model.Registration      `json:"registrations"`
	Summary       model.RegistrationSummary `json:"summary"`
}

// ListByEvent returns all registrations for one event with summary counts.
func (s *RegistrationService) ListByEvent(ctx context.Context, eventID string) (*EventRegistrations, error) {
	if _, err := s.store.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}
	regs, err := s.store.ListRegistrationsByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	if regs == nil {
		regs = []model.Registration{}
	}
	return &EventRegistrations{
		Registrations: regs,
		Summary:       model.Summarize(regs),
	}, nil
}

// Availability computes the display-only remaining-capacity view for an
// event, offset by the admin's manual sales counter. Pure with respect to
// the store: it reads and never writes.
func (s *RegistrationService) Availability(ctx context.Context, eventID string, manualSales int) (*model.Availability, error) {
	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	registered, err := s.store.CountRegistrationsByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("count registrations: %w", err)
	}
	av := model.ComputeAvailability(event.Capacity, registered, manualSales)
	return &av, nil
}

// MarkEmailSent flags a registration's confirmation email as delivered.
func (s *RegistrationService) MarkEmailSent(ctx context.Context, registrationID string) error {
	return s.store.MarkEmailSent(ctx, registrationID)
}
