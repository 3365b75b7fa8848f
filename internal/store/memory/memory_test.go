package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxxy-presents/presents-api/internal/model"
	"github.com/voxxy-presents/presents-api/internal/store"
)

func TestOrganizationSlugUnique(t *testing.T) {
	s := New()
	ctx := context.Background()

	first := &model.Organization{ID: "o1", Name: "First", Slug: "hearts"}
	require.NoError(t, s.CreateOrganization(ctx, first))

	dup := &model.Organization{ID: "o2", Name: "Second", Slug: "hearts"}
	assert.ErrorIs(t, s.CreateOrganization(ctx, dup), store.ErrSlugTaken)

	got, err := s.GetOrganizationBySlug(ctx, "hearts")
	require.NoError(t, err)
	assert.Equal(t, "o1", got.ID)
}

func TestRegistrationListingPreservesOrder(t *testing.T) {
	s := New()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		reg := &model.Registration{
			ID:               fmt.Sprintf("r%d", i),
			EventID:          "e1",
			Name:             fmt.Sprintf("Guest %d", i),
			RegistrationType: model.RegRSVPYes,
			CreatedAt:        time.Now().UTC(),
		}
		require.NoError(t, s.CreateRegistration(ctx, reg))
	}

	regs, err := s.ListRegistrationsByEvent(ctx, "e1")
	require.NoError(t, err)
	require.Len(t, regs, 5)
	for i, reg := range regs {
		assert.Equal(t, fmt.Sprintf("r%d", i), reg.ID)
	}
}

// Concurrent waitlist joins must still produce a contiguous 1..N sequence.
func TestWaitlistPositionsConcurrent(t *testing.T) {
	s := New()
	ctx := context.Background()
	const n = 50

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reg := &model.Registration{
				ID:               uuid.New().String(),
				EventID:          "e1",
				Name:             "Guest",
				Email:            "guest@example.com",
				RegistrationType: model.RegWaitlist,
				CreatedAt:        time.Now().UTC(),
			}
			_ = s.CreateRegistration(ctx, reg)
		}()
	}
	wg.Wait()

	regs, err := s.ListRegistrationsByEvent(ctx, "e1")
	require.NoError(t, err)
	require.Len(t, regs, n)

	positions := make([]int, 0, n)
	for _, reg := range regs {
		positions = append(positions, reg.WaitlistPosition)
	}
	sort.Ints(positions)
	for i, p := range positions {
		assert.Equal(t, i+1, p)
	}
}

func TestWaitlistCountersIndependentPerEvent(t *testing.T) {
	s := New()
	ctx := context.Background()

	for _, eventID := range []string{"e1", "e2"} {
		reg := &model.Registration{
			ID:               uuid.New().String(),
			EventID:          eventID,
			Name:             "Guest",
			RegistrationType: model.RegWaitlist,
			CreatedAt:        time.Now().UTC(),
		}
		require.NoError(t, s.CreateRegistration(ctx, reg))
		assert.Equal(t, 1, reg.WaitlistPosition)
	}
}

func TestMarkEmailSent(t *testing.T) {
	s := New()
	ctx := context.Background()

	reg := &model.Registration{
		ID: "r1", EventID: "e1", Name: "Ana",
		RegistrationType: model.RegRSVPYes,
	}
	require.NoError(t, s.CreateRegistration(ctx, reg))

	require.NoError(t, s.MarkEmailSent(ctx, "r1"))
	regs, err := s.ListRegistrationsByEvent(ctx, "e1")
	require.NoError(t, err)
	assert.True(t, regs[0].EmailSent)

	assert.ErrorIs(t, s.MarkEmailSent(ctx, "missing"), store.ErrNotFound)
}

func TestEventCRUD(t *testing.T) {
	s := New()
	ctx := context.Background()

	e := &model.Event{ID: "e1", OrganizationID: "o1", Title: "Night One", Date: time.Now()}
	require.NoError(t, s.CreateEvent(ctx, e))

	got, err := s.GetEvent(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "Night One", got.Title)

	got.Title = "Night One (Renamed)"
	require.NoError(t, s.UpdateEvent(ctx, got))

	events, err := s.ListEventsByOrganization(ctx, "o1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Night One (Renamed)", events[0].Title)

	require.NoError(t, s.DeleteEvent(ctx, "e1"))
	_, err = s.GetEvent(ctx, "e1")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, s.DeleteEvent(ctx, "e1"), store.ErrNotFound)
}
