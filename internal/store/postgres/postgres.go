// Package postgres implements store.Store on PostgreSQL using pgx directly
// (no ORM). It is the data source for the staging and production tiers.
package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/voxxy-presents/presents-api/internal/model"
	"github.com/voxxy-presents/presents-api/internal/store"
)

//go:embed schema.sql
var schema string

// Store implements store.Store on a pgx connection pool.
type Store struct {
	db *pgxpool.Pool
}

var _ store.Store = (*Store)(nil)

// New wraps an existing pool and ensures the schema exists.
func New(ctx context.Context, db *pgxpool.Pool) (*Store, error) {
	if _, err := db.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying pool.
func (s *Store) Close() {
	s.db.Close()
}

// ─── Organizations ────────────────────────────────────────────────────────────

func (s *Store) CreateOrganization(ctx context.Context, org *model.Organization) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO organizations
		   (id, name, slug, description, background, logo_url, banner_url,
		    about_story, contact_email, social_links, settings, owner_id,
		    created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		org.ID, org.Name, org.Slug, org.Description, org.Background,
		org.LogoURL, org.BannerURL, org.AboutStory, org.ContactEmail,
		org.SocialLinks, org.Settings, org.OwnerID, org.CreatedAt, org.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return store.ErrSlugTaken
		}
		return fmt.Errorf("insert organization: %w", err)
	}
	return nil
}

const orgColumns = `id, name, slug, description, background, logo_url, banner_url,
	about_story, contact_email, social_links, settings, owner_id, created_at, updated_at`

func scanOrganization(row pgx.Row) (*model.Organization, error) {
	var org model.Organization
	err := row.Scan(&org.ID, &org.Name, &org.Slug, &org.Description,
		&org.Background, &org.LogoURL, &org.BannerURL, &org.AboutStory,
		&org.ContactEmail, &org.SocialLinks, &org.Settings, &org.OwnerID,
		&org.CreatedAt, &org.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("scan organization: %w", err)
	}
	return &org, nil
}

func (s *Store) GetOrganization(ctx context.Context, id string) (*model.Organization, error) {
	return scanOrganization(s.db.QueryRow(ctx,
		`SELECT `+orgColumns+` FROM organizations WHERE id = $1`, id))
}

func (s *Store) GetOrganizationBySlug(ctx context.Context, slug string) (*model.Organization, error) {
	return scanOrganization(s.db.QueryRow(ctx,
		`SELECT `+orgColumns+` FROM organizations WHERE slug = $1`, slug))
}

func (s *Store) UpdateOrganization(ctx context.Context, org *model.Organization) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE organizations
		 SET name = $2, description = $3, background = $4, logo_url = $5,
		     banner_url = $6, about_story = $7, contact_email = $8,
		     social_links = $9, settings = $10, updated_at = $11
		 WHERE id = $1`,
		org.ID, org.Name, org.Description, org.Background, org.LogoURL,
		org.BannerURL, org.AboutStory, org.ContactEmail, org.SocialLinks,
		org.Settings, org.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update organization: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) ListOrganizations(ctx context.Context) ([]model.Organization, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+orgColumns+` FROM organizations ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	defer rows.Close()

	var orgs []model.Organization
	for rows.Next() {
		org, err := scanOrganization(rows)
		if err != nil {
			return nil, err
		}
		orgs = append(orgs, *org)
	}
	return orgs, rows.Err()
}

// ─── Events ───────────────────────────────────────────────────────────────────

const eventColumns = `id, organization_id, title, description, full_description,
	date, end_date, time_of_day, duration, location, address, price, capacity,
	registration_required, eventbrite_url, presale_enabled, series, image_url,
	status, created_at, updated_at`

func (s *Store) CreateEvent(ctx context.Context, e *model.Event) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO events
		   (id, organization_id, title, description, full_description, date,
		    end_date, time_of_day, duration, location, address, price, capacity,
		    registration_required, eventbrite_url, presale_enabled, series,
		    image_url, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		         $15, $16, $17, $18, $19, $20, $21)`,
		e.ID, e.OrganizationID, e.Title, e.Description, e.FullDescription,
		e.Date, e.EndDate, e.Time, e.Duration, e.Location, e.Address, e.Price,
		e.Capacity, e.RegistrationRequired, e.EventbriteURL, e.PresaleEnabled,
		e.Series, e.ImageURL, e.Status, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func scanEvent(row pgx.Row) (*model.Event, error) {
	var e model.Event
	err := row.Scan(&e.ID, &e.OrganizationID, &e.Title, &e.Description,
		&e.FullDescription, &e.Date, &e.EndDate, &e.Time, &e.Duration,
		&e.Location, &e.Address, &e.Price, &e.Capacity, &e.RegistrationRequired,
		&e.EventbriteURL, &e.PresaleEnabled, &e.Series, &e.ImageURL, &e.Status,
		&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("scan event: %w", err)
	}
	return &e, nil
}

func (s *Store) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	return scanEvent(s.db.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = $1`, id))
}

func (s *Store) listEvents(ctx context.Context, query string, args ...any) ([]model.Event, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

func (s *Store) ListEvents(ctx context.Context) ([]model.Event, error) {
	return s.listEvents(ctx,
		`SELECT `+eventColumns+` FROM events ORDER BY date DESC`)
}

func (s *Store) ListEventsByOrganization(ctx context.Context, orgID string) ([]model.Event, error) {
	return s.listEvents(ctx,
		`SELECT `+eventColumns+` FROM events WHERE organization_id = $1 ORDER BY date DESC`,
		orgID)
}

func (s *Store) UpdateEvent(ctx context.Context, e *model.Event) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE events
		 SET title = $2, description = $3, full_description = $4, date = $5,
		     end_date = $6, time_of_day = $7, duration = $8, location = $9,
		     address = $10, price = $11, capacity = $12,
		     registration_required = $13, eventbrite_url = $14,
		     presale_enabled = $15, series = $16, image_url = $17, status = $18,
		     updated_at = $19
		 WHERE id = $1`,
		e.ID, e.Title, e.Description, e.FullDescription, e.Date, e.EndDate,
		e.Time, e.Duration, e.Location, e.Address, e.Price, e.Capacity,
		e.RegistrationRequired, e.EventbriteURL, e.PresaleEnabled, e.Series,
		e.ImageURL, e.Status, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ─── Registrations ────────────────────────────────────────────────────────────

// CreateRegistration inserts the registration. Waitlist joins run inside a
// transaction that locks the event row first (SELECT ... FOR UPDATE), so
// concurrent joins for the same event are serialised and the count-then-write
// position assignment cannot hand out duplicates.
func (s *Store) CreateRegistration(ctx context.Context, reg *model.Registration) error {
	if reg.RegistrationType != model.RegWaitlist {
		return s.insertRegistration(ctx, s.db, reg)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	// Lock the event row. Other waitlist joins for this event block here
	// until we commit.
	var exists bool
	err = tx.QueryRow(ctx,
		`SELECT true FROM events WHERE id = $1 FOR UPDATE`,
		reg.EventID,
	).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return store.ErrNotFound
		}
		return fmt.Errorf("lock event row: %w", err)
	}

	var count int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM registrations
		 WHERE event_id = $1 AND registration_type = $2`,
		reg.EventID, model.RegWaitlist,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("count waitlist: %w", err)
	}
	reg.WaitlistPosition = count + 1

	if err = s.insertRegistration(ctx, tx, reg); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// execer is satisfied by both *pgxpool.Pool and pgx.Tx.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func (s *Store) insertRegistration(ctx context.Context, db execer, reg *model.Registration) error {
	var position *int
	if reg.RegistrationType == model.RegWaitlist {
		position = &reg.WaitlistPosition
	}
	_, err := db.Exec(ctx,
		`INSERT INTO registrations
		   (id, event_id, name, email, phone, registration_type, notes,
		    subscribe_to_updates, subscribe_to_newsletter, waitlist_position,
		    source, email_sent, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		reg.ID, reg.EventID, reg.Name, reg.Email, reg.Phone,
		reg.RegistrationType, reg.Notes, reg.SubscribeToUpdates,
		reg.SubscribeToNewsletter, position, reg.Source, reg.EmailSent,
		reg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert registration: %w", err)
	}
	return nil
}

func (s *Store) ListRegistrationsByEvent(ctx context.Context, eventID string) ([]model.Registration, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, event_id, name, email, phone, registration_type, notes,
		        subscribe_to_updates, subscribe_to_newsletter,
		        COALESCE(waitlist_position, 0), source, email_sent, created_at
		 FROM registrations
		 WHERE event_id = $1
		 ORDER BY created_at ASC`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	var regs []model.Registration
	for rows.Next() {
		var reg model.Registration
		if err := rows.Scan(&reg.ID, &reg.EventID, &reg.Name, &reg.Email,
			&reg.Phone, &reg.RegistrationType, &reg.Notes,
			&reg.SubscribeToUpdates, &reg.SubscribeToNewsletter,
			&reg.WaitlistPosition, &reg.Source, &reg.EmailSent,
			&reg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

func (s *Store) CountRegistrationsByEvent(ctx context.Context, eventID string) (int, error) {
	var n int
	err := s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM registrations WHERE event_id = $1`,
		eventID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return n, nil
}

func (s *Store) MarkEmailSent(ctx context.Context, registrationID string) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE registrations SET email_sent = true WHERE id = $1`,
		registrationID,
	)
	if err != nil {
		return fmt.Errorf("mark email sent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
