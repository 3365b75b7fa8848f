// Package store defines the persistence interface the service layer runs
// against, with interchangeable Postgres, Mongo, and in-memory backends.
package store

import (
	"context"
	"errors"

	"github.com/voxxy-presents/presents-api/internal/model"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrSlugTaken is returned when an organization slug is already in use.
var ErrSlugTaken = errors.New("slug already taken")

// OrganizationStore handles persistence for organizations.
type OrganizationStore interface {
	CreateOrganization(ctx context.Context, org *model.Organization) error
	GetOrganization(ctx context.Context, id string) (*model.Organization, error)
	GetOrganizationBySlug(ctx context.Context, slug string) (*model.Organization, error)
	UpdateOrganization(ctx context.Context, org *model.Organization) error
	ListOrganizations(ctx context.Context) ([]model.Organization, error)
}

// EventStore handles persistence for events.
type EventStore interface {
	CreateEvent(ctx context.Context, e *model.Event) error
	GetEvent(ctx context.Context, id string) (*model.Event, error)
	ListEvents(ctx context.Context) ([]model.Event, error)
	ListEventsByOrganization(ctx context.Context, orgID string) ([]model.Event, error)
	UpdateEvent(ctx context.Context, e *model.Event) error
	DeleteEvent(ctx context.Context, id string) error
}

// RegistrationStore handles persistence for the registration ledger.
type RegistrationStore interface {
	// CreateRegistration persists reg. For waitlist registrations the
	// backend assigns reg.WaitlistPosition atomically: positions for one
	// event form a contiguous sequence starting at 1 even under
	// concurrent joins.
	CreateRegistration(ctx context.Context, reg *model.Registration) error
	ListRegistrationsByEvent(ctx context.Context, eventID string) ([]model.Registration, error)
	CountRegistrationsByEvent(ctx context.Context, eventID string) (int, error)
	MarkEmailSent(ctx context.Context, registrationID string) error
}

// Store is the full persistence surface.
type Store interface {
	OrganizationStore
	EventStore
	RegistrationStore
	Close()
}
