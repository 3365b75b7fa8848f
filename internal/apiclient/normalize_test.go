package apiclient

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxxy-presents/presents-api/internal/model"
)

func TestNormalizeRegistrationsBareArray(t *testing.T) {
	raw := json.RawMessage(`[
		{"id":"a","eventId":"e1","name":"Ana","registrationType":"rsvp_yes"},
		{"id":"b","eventId":"e1","name":"Bo","registrationType":"waitlist","waitlistPosition":1}
	]`)

	regs, err := NormalizeRegistrations(raw)
	require.NoError(t, err)
	require.Len(t, regs, 2)
	assert.Equal(t, "Ana", regs[0].Name)
	assert.Equal(t, 1, regs[1].WaitlistPosition)
}

func TestNormalizeRegistrationsDataEnvelope(t *testing.T) {
	raw := json.RawMessage(`{"data":[{"id":"a","name":"Ana","registrationType":"rsvp_maybe"}]}`)

	regs, err := NormalizeRegistrations(raw)
	require.NoError(t, err)
	require.Len(t, regs, 1)
	assert.Equal(t, model.RegRSVPMaybe, regs[0].RegistrationType)
}

func TestNormalizeRegistrationsNamedArray(t *testing.T) {
	raw := json.RawMessage(`{"registrations":[{"id":"a","name":"Ana"},{"id":"b","name":"Bo"}]}`)

	regs, err := NormalizeRegistrations(raw)
	require.NoError(t, err)
	require.Len(t, regs, 2)
}

func TestNormalizeRegistrationsKeyedMap(t *testing.T) {
	raw := json.RawMessage(`{"registrations":{
		"a":{"name":"Ana","registrationType":"rsvp_yes","createdAt":"2025-06-01T10:00:00Z"},
		"b":{"name":"Bo","registrationType":"rsvp_maybe","createdAt":"2025-06-02T10:00:00Z"}
	}}`)

	regs, err := NormalizeRegistrations(raw)
	require.NoError(t, err)
	require.Len(t, regs, 2)

	// IDs are recovered from the map keys, order from createdAt.
	assert.Equal(t, "a", regs[0].ID)
	assert.Equal(t, "Ana", regs[0].Name)
	assert.Equal(t, "b", regs[1].ID)

	summary := model.Summarize(regs)
	assert.Equal(t, 2, summary.Total)
}

func TestNormalizeRegistrationsEmptyArray(t *testing.T) {
	regs, err := NormalizeRegistrations(json.RawMessage(`[]`))
	require.NoError(t, err)
	assert.NotNil(t, regs)
	assert.Empty(t, regs)
}

func TestNormalizeRegistrationsMalformed(t *testing.T) {
	for _, raw := range []string{
		`{"somethingElse": true}`,
		`{"registrations": 42}`,
		`"just a string"`,
	} {
		_, err := NormalizeRegistrations(json.RawMessage(raw))
		assert.Error(t, err, raw)
	}
}
