package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxxy-presents/presents-api/internal/model"
	"github.com/voxxy-presents/presents-api/internal/store/memory"
)

// splitCSVLine undoes the export quoting: fields are comma-separated, each
// wrapped in double quotes, internal quotes doubled.
func splitCSVLine(t *testing.T, line string) []string {
	t.Helper()
	var fields []string
	var b strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"' && !inQuotes:
			inQuotes = true
		case c == '"' && inQuotes:
			if i+1 < len(line) && line[i+1] == '"' {
				b.WriteByte('"')
				i++
			} else {
				inQuotes = false
			}
		case c == ',' && !inQuotes:
			fields = append(fields, b.String())
			b.Reset()
		default:
			b.WriteByte(c)
		}
	}
	fields = append(fields, b.String())
	return fields
}

func TestExportCSV(t *testing.T) {
	st := memory.New()
	svc := NewRegistrationService(st)
	event := seedEvent(t, st, model.Event{
		Title:  "Speed Dating Night",
		Status: model.StatusPublished,
	})

	registered := time.Date(2025, 6, 14, 19, 0, 0, 0, time.UTC)
	regs := []model.Registration{
		{
			ID: uuid.New().String(), EventID: event.ID,
			Name: "Ana", Email: "ana@x.com", Phone: "555-0100",
			RegistrationType: model.RegRSVPYes,
			Notes:            `says "can't wait", allergic to cats`,
			CreatedAt:        registered,
		},
		{
			ID: uuid.New().String(), EventID: event.ID,
			Name: "Bo", Email: "bo@x.com",
			RegistrationType: model.RegPresaleRequest,
			CreatedAt:        registered,
		},
		{
			ID: uuid.New().String(), EventID: event.ID,
			Name:             "Cam",
			Email:            "cam@x.com",
			RegistrationType: model.RegWaitlist,
			CreatedAt:        registered,
		},
	}
	for i := range regs {
		require.NoError(t, st.CreateRegistration(context.Background(), &regs[i]))
	}

	export, err := svc.ExportCSV(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, "Speed Dating Night-registrations.csv", export.Filename)

	lines := strings.Split(export.Content, "\n")
	require.Len(t, lines, len(regs)+1, "header plus one row per registration")

	assert.Equal(t, `"Name","Email","Phone","Type","Notes","Registered At"`, lines[0])

	// Every field is quote-wrapped.
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, `"`), "line %q not quoted", line)
		assert.True(t, strings.HasSuffix(line, `"`), "line %q not quoted", line)
		assert.Len(t, splitCSVLine(t, line), 6)
	}

	// Round-trip: re-splitting recovers the original values, quotes intact.
	row := splitCSVLine(t, lines[1])
	assert.Equal(t, []string{
		"Ana", "ana@x.com", "555-0100", "RSVP Yes",
		`says "can't wait", allergic to cats`, "2025-06-14",
	}, row)

	row = splitCSVLine(t, lines[2])
	assert.Equal(t, []string{"Bo", "bo@x.com", "", "Presale Request", "", "2025-06-14"}, row)

	row = splitCSVLine(t, lines[3])
	assert.Equal(t, "Waitlist", row[3])
}

func TestExportCSVEmptyEvent(t *testing.T) {
	st := memory.New()
	svc := NewRegistrationService(st)
	event := seedEvent(t, st, model.Event{Title: "Quiet Evening", Status: model.StatusPublished})

	export, err := svc.ExportCSV(context.Background(), event.ID)
	require.NoError(t, err)

	lines := strings.Split(export.Content, "\n")
	require.Len(t, lines, 1, "header only")
	assert.Equal(t, "Quiet Evening-registrations.csv", export.Filename)
}
