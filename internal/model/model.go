// Package model defines the core domain types for the event management system:
// organizations, their events, and attendee registrations.
package model

import "time"

// EventStatus is the lifecycle state of an event.
type EventStatus string

const (
	StatusDraft     EventStatus = "draft"
	StatusPresale   EventStatus = "presale"
	StatusPublished EventStatus = "published"
	StatusSoldOut   EventStatus = "sold_out"
	StatusCancelled EventStatus = "cancelled"
	StatusCompleted EventStatus = "completed"
)

// PriceType classifies how an event is priced.
type PriceType string

const (
	PriceFree      PriceType = "free"
	PricePaid      PriceType = "paid"
	PriceGroupDeal PriceType = "group_deal"
)

// RegistrationType is the kind of attendee intent a registration records.
// It is immutable after creation.
type RegistrationType string

const (
	RegRSVPYes        RegistrationType = "rsvp_yes"
	RegRSVPMaybe      RegistrationType = "rsvp_maybe"
	RegPresaleRequest RegistrationType = "presale_request"
	RegWaitlist       RegistrationType = "waitlist"
)

// Valid reports whether t is one of the known registration types.
func (t RegistrationType) Valid() bool {
	switch t {
	case RegRSVPYes, RegRSVPMaybe, RegPresaleRequest, RegWaitlist:
		return true
	}
	return false
}

// Label returns the human-readable form used in admin views and CSV exports.
func (t RegistrationType) Label() string {
	switch t {
	case RegRSVPYes:
		return "RSVP Yes"
	case RegRSVPMaybe:
		return "RSVP Maybe"
	case RegPresaleRequest:
		return "Presale Request"
	case RegWaitlist:
		return "Waitlist"
	default:
		return string(t)
	}
}

// SocialLinks holds an organization's outbound links. All optional.
type SocialLinks struct {
	Instagram  string `json:"instagram,omitempty" bson:"instagram,omitempty"`
	Website    string `json:"website,omitempty" bson:"website,omitempty"`
	Eventbrite string `json:"eventbrite,omitempty" bson:"eventbrite,omitempty"`
	Venmo      string `json:"venmo,omitempty" bson:"venmo,omitempty"`
	Other      string `json:"other,omitempty" bson:"other,omitempty"`
}

// Theme holds the landing-page colors an organization configured.
type Theme struct {
	PrimaryColor    string `json:"primaryColor,omitempty" bson:"primaryColor,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty" bson:"backgroundColor,omitempty"`
}

// OrgSettings holds per-organization defaults applied to new events.
type OrgSettings struct {
	DefaultLocation string `json:"defaultLocation,omitempty" bson:"defaultLocation,omitempty"`
	DefaultAddress  string `json:"defaultAddress,omitempty" bson:"defaultAddress,omitempty"`
	Theme           Theme  `json:"theme" bson:"theme"`
}

// Organization is a club or presenter that owns events and a public page.
type Organization struct {
	ID           string      `json:"id" bson:"_id"`
	Name         string      `json:"name" bson:"name"`
	Slug         string      `json:"slug" bson:"slug"`
	Description  string      `json:"description,omitempty" bson:"description,omitempty"`
	Background   string      `json:"background,omitempty" bson:"background,omitempty"`
	LogoURL      string      `json:"logoUrl,omitempty" bson:"logoUrl,omitempty"`
	BannerURL    string      `json:"bannerUrl,omitempty" bson:"bannerUrl,omitempty"`
	AboutStory   string      `json:"aboutStory,omitempty" bson:"aboutStory,omitempty"`
	ContactEmail string      `json:"contactEmail,omitempty" bson:"contactEmail,omitempty"`
	SocialLinks  SocialLinks `json:"socialLinks" bson:"socialLinks"`
	Settings     OrgSettings `json:"settings" bson:"settings"`
	OwnerID      string      `json:"ownerId,omitempty" bson:"ownerId,omitempty"`
	CreatedAt    time.Time   `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt" bson:"updatedAt"`
}

// Price describes how attendance is charged.
type Price struct {
	Type         PriceType `json:"type" bson:"type"`
	Amount       float64   `json:"amount,omitempty" bson:"amount,omitempty"`
	Description  string    `json:"description,omitempty" bson:"description,omitempty"`
	AdvancePrice float64   `json:"advancePrice,omitempty" bson:"advancePrice,omitempty"`
}

// Series groups an event into a named recurring series.
type Series struct {
	Name        string `json:"name" bson:"name"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}

// Event is a bookable happening owned by one organization.
//
// Capacity is a pointer: nil means unlimited, which changes how remaining
// seats are reported (see Availability).
type Event struct {
	ID                   string      `json:"id" bson:"_id"`
	OrganizationID       string      `json:"organizationId" bson:"organizationId"`
	Title                string      `json:"title" bson:"title"`
	Description          string      `json:"description,omitempty" bson:"description,omitempty"`
	FullDescription      string      `json:"fullDescription,omitempty" bson:"fullDescription,omitempty"`
	Date                 time.Time   `json:"date" bson:"date"`
	EndDate              *time.Time  `json:"endDate,omitempty" bson:"endDate,omitempty"`
	Time                 string      `json:"time,omitempty" bson:"time,omitempty"`
	Duration             string      `json:"duration,omitempty" bson:"duration,omitempty"`
	Location             string      `json:"location,omitempty" bson:"location,omitempty"`
	Address              string      `json:"address,omitempty" bson:"address,omitempty"`
	Price                Price       `json:"price" bson:"price"`
	Capacity             *int        `json:"capacity,omitempty" bson:"capacity,omitempty"`
	RegistrationRequired bool        `json:"registrationRequired" bson:"registrationRequired"`
	EventbriteURL        string      `json:"eventbriteUrl,omitempty" bson:"eventbriteUrl,omitempty"`
	PresaleEnabled       bool        `json:"presaleEnabled,omitempty" bson:"presaleEnabled,omitempty"`
	Series               *Series     `json:"series,omitempty" bson:"series,omitempty"`
	ImageURL             string      `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	Status               EventStatus `json:"status" bson:"status"`
	CreatedAt            time.Time   `json:"createdAt" bson:"createdAt"`
	UpdatedAt            time.Time   `json:"updatedAt" bson:"updatedAt"`
}

// Registration records one attendee action against one event. Registrations
// are append-only: no edit or cancel flow exists.
type Registration struct {
	ID                    string           `json:"id" bson:"_id"`
	EventID               string           `json:"eventId" bson:"eventId"`
	Name                  string           `json:"name" bson:"name"`
	Email                 string           `json:"email,omitempty" bson:"email,omitempty"`
	Phone                 string           `json:"phone,omitempty" bson:"phone,omitempty"`
	RegistrationType      RegistrationType `json:"registrationType" bson:"registrationType"`
	Notes                 string           `json:"notes,omitempty" bson:"notes,omitempty"`
	SubscribeToUpdates    bool             `json:"subscribeToUpdates,omitempty" bson:"subscribeToUpdates,omitempty"`
	SubscribeToNewsletter bool             `json:"subscribeToNewsletter,omitempty" bson:"subscribeToNewsletter,omitempty"`
	// WaitlistPosition is 1-based and assigned only for waitlist registrations.
	WaitlistPosition int       `json:"waitlistPosition,omitempty" bson:"waitlistPosition,omitempty"`
	Source           string    `json:"source,omitempty" bson:"source,omitempty"`
	EmailSent        bool      `json:"emailSent" bson:"emailSent"`
	CreatedAt        time.Time `json:"createdAt" bson:"createdAt"`
}

// CreateRegistrationRequest is the payload for POST /registrations.
// Email is conditionally required: presale requests and waitlist joins must
// carry one, which the service layer enforces on top of these tags.
type CreateRegistrationRequest struct {
	EventID               string           `json:"eventId" validate:"required"`
	Name                  string           `json:"name" validate:"required"`
	Email                 string           `json:"email,omitempty" validate:"omitempty,email"`
	Phone                 string           `json:"phone,omitempty"`
	RegistrationType      RegistrationType `json:"registrationType" validate:"required"`
	Notes                 string           `json:"notes,omitempty"`
	SubscribeToUpdates    bool             `json:"subscribeToUpdates,omitempty"`
	SubscribeToNewsletter bool             `json:"subscribeToNewsletter,omitempty"`
}

// CreateEventRequest is the payload for creating a new event.
type CreateEventRequest struct {
	OrganizationID       string      `json:"organizationId" validate:"required"`
	Title                string      `json:"title" validate:"required"`
	Description          string      `json:"description,omitempty"`
	FullDescription      string      `json:"fullDescription,omitempty"`
	Date                 time.Time   `json:"date" validate:"required"`
	EndDate              *time.Time  `json:"endDate,omitempty"`
	Time                 string      `json:"time,omitempty"`
	Duration             string      `json:"duration,omitempty"`
	Location             string      `json:"location,omitempty"`
	Address              string      `json:"address,omitempty"`
	Price                Price       `json:"price"`
	Capacity             *int        `json:"capacity,omitempty" validate:"omitempty,gte=0"`
	RegistrationRequired bool        `json:"registrationRequired"`
	EventbriteURL        string      `json:"eventbriteUrl,omitempty" validate:"omitempty,url"`
	PresaleEnabled       bool        `json:"presaleEnabled,omitempty"`
	Series               *Series     `json:"series,omitempty"`
	ImageURL             string      `json:"imageUrl,omitempty"`
	Status               EventStatus `json:"status,omitempty"`
}

// UpdateEventRequest carries partial event updates. Nil fields are left
// untouched.
type UpdateEventRequest struct {
	Title                *string      `json:"title,omitempty"`
	Description          *string      `json:"description,omitempty"`
	FullDescription      *string      `json:"fullDescription,omitempty"`
	Date                 *time.Time   `json:"date,omitempty"`
	EndDate              *time.Time   `json:"endDate,omitempty"`
	Time                 *string      `json:"time,omitempty"`
	Duration             *string      `json:"duration,omitempty"`
	Location             *string      `json:"location,omitempty"`
	Address              *string      `json:"address,omitempty"`
	Price                *Price       `json:"price,omitempty"`
	Capacity             *int         `json:"capacity,omitempty"`
	RegistrationRequired *bool        `json:"registrationRequired,omitempty"`
	EventbriteURL        *string      `json:"eventbriteUrl,omitempty"`
	PresaleEnabled       *bool        `json:"presaleEnabled,omitempty"`
	Status               *EventStatus `json:"status,omitempty"`
}

// CreateOrganizationRequest is the payload for creating an organization.
type CreateOrganizationRequest struct {
	Name         string      `json:"name" validate:"required"`
	Slug         string      `json:"slug" validate:"required"`
	Description  string      `json:"description,omitempty"`
	ContactEmail string      `json:"contactEmail,omitempty" validate:"omitempty,email"`
	SocialLinks  SocialLinks `json:"socialLinks"`
	Settings     OrgSettings `json:"settings"`
	OwnerID      string      `json:"ownerId,omitempty"`
}

// UpdateOrganizationRequest carries partial organization updates.
type UpdateOrganizationRequest struct {
	Name         *string      `json:"name,omitempty"`
	Description  *string      `json:"description,omitempty"`
	Background   *string      `json:"background,omitempty"`
	LogoURL      *string      `json:"logoUrl,omitempty"`
	BannerURL    *string      `json:"bannerUrl,omitempty"`
	AboutStory   *string      `json:"aboutStory,omitempty"`
	ContactEmail *string      `json:"contactEmail,omitempty"`
	SocialLinks  *SocialLinks `json:"socialLinks,omitempty"`
	Settings     *OrgSettings `json:"settings,omitempty"`
}

// RegistrationSummary aggregates the per-type counts shown on the admin
// registration panel.
type RegistrationSummary struct {
	RSVPYes         int `json:"rsvpYes"`
	RSVPMaybe       int `json:"rsvpMaybe"`
	PresaleRequests int `json:"presaleRequests"`
	Waitlist        int `json:"waitlist"`
	Total           int `json:"total"`
}

// Summarize computes per-type counts over a registration list.
func Summarize(regs []Registration) RegistrationSummary {
	var s RegistrationSummary
	for _, r := range regs {
		switch r.RegistrationType {
		case RegRSVPYes:
			s.RSVPYes++
		case RegRSVPMaybe:
			s.RSVPMaybe++
		case RegPresaleRequest:
			s.PresaleRequests++
		case RegWaitlist:
			s.Waitlist++
		}
		s.Total++
	}
	return s
}

// ErrorResponse is the standard JSON error envelope.
type ErrorResponse struct {
	Message string `json:"message"`
}
