// Package mongo implements store.Store on a MongoDB database. It mirrors the
// document-store deployment mode: one collection per entity plus a counters
// collection that hands out waitlist positions atomically.
package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/voxxy-presents/presents-api/internal/model"
	"github.com/voxxy-presents/presents-api/internal/store"
)

// Store implements store.Store on a mongo client it owns.
type Store struct {
	client        *mongo.Client
	organizations *mongo.Collection
	events        *mongo.Collection
	registrations *mongo.Collection
	counters      *mongo.Collection
}

var _ store.Store = (*Store)(nil)

// New connects to MongoDB, verifies the connection, and prepares the
// collections and indexes the service relies on.
func New(ctx context.Context, uri, dbName string) (*Store, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	db := client.Database(dbName)
	s := &Store{
		client:        client,
		organizations: db.Collection("organizations"),
		events:        db.Collection("events"),
		registrations: db.Collection("registrations"),
		counters:      db.Collection("counters"),
	}

	if _, err := s.organizations.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("create slug index: %w", err)
	}
	if _, err := s.registrations.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "eventId", Value: 1}, {Key: "createdAt", Value: 1}},
	}); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("create registration index: %w", err)
	}

	return s, nil
}

// Close disconnects the client.
func (s *Store) Close() {
	_ = s.client.Disconnect(context.Background())
}

// ─── Organizations ────────────────────────────────────────────────────────────

func (s *Store) CreateOrganization(ctx context.Context, org *model.Organization) error {
	if _, err := s.organizations.InsertOne(ctx, org); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return store.ErrSlugTaken
		}
		return fmt.Errorf("insert organization: %w", err)
	}
	return nil
}

func (s *Store) GetOrganization(ctx context.Context, id string) (*model.Organization, error) {
	var org model.Organization
	if err := s.organizations.FindOne(ctx, bson.M{"_id": id}).Decode(&org); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("find organization: %w", err)
	}
	return &org, nil
}

func (s *Store) GetOrganizationBySlug(ctx context.Context, slug string) (*model.Organization, error) {
	var org model.Organization
	if err := s.organizations.FindOne(ctx, bson.M{"slug": slug}).Decode(&org); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("find organization by slug: %w", err)
	}
	return &org, nil
}

func (s *Store) UpdateOrganization(ctx context.Context, org *model.Organization) error {
	res, err := s.organizations.ReplaceOne(ctx, bson.M{"_id": org.ID}, org)
	if err != nil {
		return fmt.Errorf("replace organization: %w", err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) ListOrganizations(ctx context.Context) ([]model.Organization, error) {
	cursor, err := s.organizations.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	var orgs []model.Organization
	if err := cursor.All(ctx, &orgs); err != nil {
		return nil, fmt.Errorf("decode organizations: %w", err)
	}
	return orgs, nil
}

// ─── Events ───────────────────────────────────────────────────────────────────

func (s *Store) CreateEvent(ctx context.Context, e *model.Event) error {
	if _, err := s.events.InsertOne(ctx, e); err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (s *Store) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	var e model.Event
	if err := s.events.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return &e, nil
}

func (s *Store) listEvents(ctx context.Context, filter bson.M) ([]model.Event, error) {
	cursor, err := s.events.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	var events []model.Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	return events, nil
}

func (s *Store) ListEvents(ctx context.Context) ([]model.Event, error) {
	return s.listEvents(ctx, bson.M{})
}

func (s *Store) ListEventsByOrganization(ctx context.Context, orgID string) ([]model.Event, error) {
	return s.listEvents(ctx, bson.M{"organizationId": orgID})
}

func (s *Store) UpdateEvent(ctx context.Context, e *model.Event) error {
	res, err := s.events.ReplaceOne(ctx, bson.M{"_id": e.ID}, e)
	if err != nil {
		return fmt.Errorf("replace event: %w", err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	res, err := s.events.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ─── Registrations ────────────────────────────────────────────────────────────

// nextWaitlistPosition increments the per-event counter document and returns
// the new value. The $inc runs server-side, so concurrent joins each get a
// distinct, contiguous position.
func (s *Store) nextWaitlistPosition(ctx context.Context, eventID string) (int, error) {
	var counter struct {
		Seq int `bson:"seq"`
	}
	err := s.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": "waitlist:" + eventID},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("increment waitlist counter: %w", err)
	}
	return counter.Seq, nil
}

func (s *Store) CreateRegistration(ctx context.Context, reg *model.Registration) error {
	if reg.RegistrationType == model.RegWaitlist {
		position, err := s.nextWaitlistPosition(ctx, reg.EventID)
		if err != nil {
			return err
		}
		reg.WaitlistPosition = position
	}
	if _, err := s.registrations.InsertOne(ctx, reg); err != nil {
		return fmt.Errorf("insert registration: %w", err)
	}
	return nil
}

func (s *Store) ListRegistrationsByEvent(ctx context.Context, eventID string) ([]model.Registration, error) {
	cursor, err := s.registrations.Find(ctx, bson.M{"eventId": eventID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	var regs []model.Registration
	if err := cursor.All(ctx, &regs); err != nil {
		return nil, fmt.Errorf("decode registrations: %w", err)
	}
	return regs, nil
}

func (s *Store) CountRegistrationsByEvent(ctx context.Context, eventID string) (int, error) {
	n, err := s.registrations.CountDocuments(ctx, bson.M{"eventId": eventID})
	if err != nil {
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return int(n), nil
}

func (s *Store) MarkEmailSent(ctx context.Context, registrationID string) error {
	res, err := s.registrations.UpdateOne(ctx,
		bson.M{"_id": registrationID},
		bson.M{"$set": bson.M{"emailSent": true}})
	if err != nil {
		return fmt.Errorf("mark email sent: %w", err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
