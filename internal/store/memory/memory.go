// Package memory implements store.Store with in-process maps. It backs the
// development/sandbox data source and the service-level tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/voxxy-presents/presents-api/internal/model"
	"github.com/voxxy-presents/presents-api/internal/store"
)

// Store is a mutex-guarded map store. Safe for concurrent use.
type Store struct {
	mu            sync.Mutex
	organizations map[string]model.Organization
	events        map[string]model.Event
	registrations map[string]model.Registration
	// regOrder preserves insertion order so listings match fetch order.
	regOrder []string
	// waitlistSeq is the per-event waitlist counter. Holding mu across
	// read-increment-write is what keeps positions contiguous.
	waitlistSeq map[string]int
}

var _ store.Store = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		organizations: make(map[string]model.Organization),
		events:        make(map[string]model.Event),
		registrations: make(map[string]model.Registration),
		waitlistSeq:   make(map[string]int),
	}
}

// ─── Organizations ────────────────────────────────────────────────────────────

func (s *Store) CreateOrganization(ctx context.Context, org *model.Organization) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.organizations {
		if existing.Slug == org.Slug {
			return store.ErrSlugTaken
		}
	}
	s.organizations[org.ID] = *org
	return nil
}

func (s *Store) GetOrganization(ctx context.Context, id string) (*model.Organization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	org, ok := s.organizations[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &org, nil
}

func (s *Store) GetOrganizationBySlug(ctx context.Context, slug string) (*model.Organization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, org := range s.organizations {
		if org.Slug == slug {
			org := org
			return &org, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) UpdateOrganization(ctx context.Context, org *model.Organization) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.organizations[org.ID]; !ok {
		return store.ErrNotFound
	}
	s.organizations[org.ID] = *org
	return nil
}

func (s *Store) ListOrganizations(ctx context.Context) ([]model.Organization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orgs := make([]model.Organization, 0, len(s.organizations))
	for _, org := range s.organizations {
		orgs = append(orgs, org)
	}
	sort.Slice(orgs, func(i, j int) bool { return orgs[i].Name < orgs[j].Name })
	return orgs, nil
}

// ─── Events ───────────────────────────────────────────────────────────────────

func (s *Store) CreateEvent(ctx context.Context, e *model.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events[e.ID] = *e
	return nil
}

func (s *Store) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.events[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &e, nil
}

func (s *Store) ListEvents(ctx context.Context) ([]model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := make([]model.Event, 0, len(s.events))
	for _, e := range s.events {
		events = append(events, e)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Date.After(events[j].Date) })
	return events, nil
}

func (s *Store) ListEventsByOrganization(ctx context.Context, orgID string) ([]model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var events []model.Event
	for _, e := range s.events {
		if e.OrganizationID == orgID {
			events = append(events, e)
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Date.After(events[j].Date) })
	return events, nil
}

func (s *Store) UpdateEvent(ctx context.Context, e *model.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[e.ID]; !ok {
		return store.ErrNotFound
	}
	s.events[e.ID] = *e
	return nil
}

func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.events, id)
	return nil
}

// ─── Registrations ────────────────────────────────────────────────────────────

func (s *Store) CreateRegistration(ctx context.Context, reg *model.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if reg.RegistrationType == model.RegWaitlist {
		s.waitlistSeq[reg.EventID]++
		reg.WaitlistPosition = s.waitlistSeq[reg.EventID]
	}
	s.registrations[reg.ID] = *reg
	s.regOrder = append(s.regOrder, reg.ID)
	return nil
}

func (s *Store) ListRegistrationsByEvent(ctx context.Context, eventID string) ([]model.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var regs []model.Registration
	for _, id := range s.regOrder {
		if reg := s.registrations[id]; reg.EventID == eventID {
			regs = append(regs, reg)
		}
	}
	return regs, nil
}

func (s *Store) CountRegistrationsByEvent(ctx context.Context, eventID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, reg := range s.registrations {
		if reg.EventID == eventID {
			n++
		}
	}
	return n, nil
}

func (s *Store) MarkEmailSent(ctx context.Context, registrationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reg, ok := s.registrations[registrationID]
	if !ok {
		return store.ErrNotFound
	}
	reg.EmailSent = true
	s.registrations[registrationID] = reg
	return nil
}

// Close implements store.Store. A memory store has nothing to release.
func (s *Store) Close() {}
