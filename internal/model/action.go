package model

// Action is what the registration section offers a visitor for one event.
type Action string

const (
	ActionJoinWaitlist   Action = "join_waitlist"
	ActionExternalTicket Action = "external_ticket"
	ActionPresaleRequest Action = "presale_request"
	ActionRSVP           Action = "rsvp"
	ActionNone           Action = "none"
)

// NextAction decides which registration action an event offers a visitor.
// Rules are evaluated in order, first match wins:
//
//  1. sold out           → join the waitlist
//  2. eventbrite link    → send the visitor to the external ticket page
//  3. presale            → collect a presale request
//  4. RSVP required/free → plain RSVP (yes / maybe)
//  5. otherwise          → nothing is offered
func NextAction(e Event) Action {
	switch {
	case e.Status == StatusSoldOut:
		return ActionJoinWaitlist
	case e.EventbriteURL != "":
		return ActionExternalTicket
	case e.Status == StatusPresale || e.PresaleEnabled:
		return ActionPresaleRequest
	case e.RegistrationRequired || e.Price.Type == PriceFree:
		return ActionRSVP
	default:
		return ActionNone
	}
}

// AllowsType reports whether a registration of the given type is what the
// event currently offers. RSVP events accept both yes and maybe.
func (a Action) AllowsType(t RegistrationType) bool {
	switch a {
	case ActionJoinWaitlist:
		return t == RegWaitlist
	case ActionPresaleRequest:
		return t == RegPresaleRequest
	case ActionRSVP:
		return t == RegRSVPYes || t == RegRSVPMaybe
	default:
		return false
	}
}
