package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	regs := []Registration{
		{RegistrationType: RegRSVPYes},
		{RegistrationType: RegRSVPYes},
		{RegistrationType: RegRSVPMaybe},
		{RegistrationType: RegPresaleRequest},
		{RegistrationType: RegWaitlist},
		{RegistrationType: RegWaitlist},
		{RegistrationType: RegWaitlist},
	}

	s := Summarize(regs)
	assert.Equal(t, 2, s.RSVPYes)
	assert.Equal(t, 1, s.RSVPMaybe)
	assert.Equal(t, 1, s.PresaleRequests)
	assert.Equal(t, 3, s.Waitlist)
	assert.Equal(t, 7, s.Total)

	assert.Equal(t, RegistrationSummary{}, Summarize(nil))
}

func TestRegistrationTypeLabel(t *testing.T) {
	assert.Equal(t, "RSVP Yes", RegRSVPYes.Label())
	assert.Equal(t, "RSVP Maybe", RegRSVPMaybe.Label())
	assert.Equal(t, "Presale Request", RegPresaleRequest.Label())
	assert.Equal(t, "Waitlist", RegWaitlist.Label())
	assert.Equal(t, "mystery", RegistrationType("mystery").Label())
}

func TestRegistrationTypeValid(t *testing.T) {
	for _, typ := range []RegistrationType{RegRSVPYes, RegRSVPMaybe, RegPresaleRequest, RegWaitlist} {
		assert.True(t, typ.Valid(), typ)
	}
	assert.False(t, RegistrationType("confirmed").Valid())
	assert.False(t, RegistrationType("").Valid())
}
