package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextAction(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		want  Action
	}{
		{
			name:  "sold out offers waitlist",
			event: Event{Status: StatusSoldOut},
			want:  ActionJoinWaitlist,
		},
		{
			name:  "sold out wins over eventbrite link",
			event: Event{Status: StatusSoldOut, EventbriteURL: "https://eventbrite.com/e/1"},
			want:  ActionJoinWaitlist,
		},
		{
			name:  "eventbrite link wins over presale",
			event: Event{Status: StatusPresale, EventbriteURL: "https://eventbrite.com/e/1"},
			want:  ActionExternalTicket,
		},
		{
			name:  "presale status",
			event: Event{Status: StatusPresale},
			want:  ActionPresaleRequest,
		},
		{
			name:  "presale flag on published event",
			event: Event{Status: StatusPublished, PresaleEnabled: true},
			want:  ActionPresaleRequest,
		},
		{
			name:  "registration required offers rsvp",
			event: Event{Status: StatusPublished, RegistrationRequired: true},
			want:  ActionRSVP,
		},
		{
			name:  "free event offers rsvp",
			event: Event{Status: StatusPublished, Price: Price{Type: PriceFree}},
			want:  ActionRSVP,
		},
		{
			name:  "paid event with nothing else offers nothing",
			event: Event{Status: StatusPublished, Price: Price{Type: PricePaid}},
			want:  ActionNone,
		},
		{
			name:  "draft paid event offers nothing",
			event: Event{Status: StatusDraft, Price: Price{Type: PricePaid}},
			want:  ActionNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextAction(tt.event))
		})
	}
}

// Every combination of the decision inputs must resolve to exactly one
// action, and always the same one.
func TestNextActionExhaustive(t *testing.T) {
	statuses := []EventStatus{StatusDraft, StatusPresale, StatusPublished,
		StatusSoldOut, StatusCancelled, StatusCompleted}
	urls := []string{"", "https://eventbrite.com/e/1"}
	bools := []bool{false, true}
	prices := []PriceType{PriceFree, PricePaid, PriceGroupDeal}

	known := map[Action]bool{
		ActionJoinWaitlist:   true,
		ActionExternalTicket: true,
		ActionPresaleRequest: true,
		ActionRSVP:           true,
		ActionNone:           true,
	}

	for _, status := range statuses {
		for _, url := range urls {
			for _, presale := range bools {
				for _, required := range bools {
					for _, price := range prices {
						e := Event{
							Status:               status,
							EventbriteURL:        url,
							PresaleEnabled:       presale,
							RegistrationRequired: required,
							Price:                Price{Type: price},
						}
						got := NextAction(e)
						assert.True(t, known[got], "unknown action %q for %+v", got, e)
						assert.Equal(t, got, NextAction(e), "non-deterministic for %+v", e)
					}
				}
			}
		}
	}
}

func TestActionAllowsType(t *testing.T) {
	assert.True(t, ActionJoinWaitlist.AllowsType(RegWaitlist))
	assert.False(t, ActionJoinWaitlist.AllowsType(RegRSVPYes))

	assert.True(t, ActionPresaleRequest.AllowsType(RegPresaleRequest))
	assert.False(t, ActionPresaleRequest.AllowsType(RegWaitlist))

	assert.True(t, ActionRSVP.AllowsType(RegRSVPYes))
	assert.True(t, ActionRSVP.AllowsType(RegRSVPMaybe))
	assert.False(t, ActionRSVP.AllowsType(RegPresaleRequest))

	assert.False(t, ActionExternalTicket.AllowsType(RegRSVPYes))
	assert.False(t, ActionNone.AllowsType(RegWaitlist))
}
