package domain

import (
	"errors"
	"strings"

	sharedDomain "github.com/felixgeelhaar/turnout/internal/shared/domain"
)

var (
	ErrEmptyName           = errors.New("attendee name must not be empty")
	ErrAttendeeInactive    = errors.New("attendee is not active")
	ErrAttendeeIDExhausted = errors.New("could not allocate a unique attendee ID")
)

// AttendeeIDLength is the length of the public numeric attendee ID.
const AttendeeIDLength = 5

// Attendee is a registered participant identified publicly by a short
// numeric ID typed into the scan screen.
type Attendee struct {
	sharedDomain.BaseAggregateRoot
	attendeeID string
	firstName  string
	lastName   string
	email      string
	phone      string
	active     bool
}

// NewAttendee registers an attendee with a freshly generated public ID.
func NewAttendee(firstName, lastName, email, phone string) (*Attendee, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return nil, ErrEmptyName
	}

	a := &Attendee{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		attendeeID:        sharedDomain.RandomCode(AttendeeIDLength, sharedDomain.DigitAlphabet),
		firstName:         firstName,
		lastName:          lastName,
		email:             email,
		phone:             phone,
		active:            true,
	}
	a.AddDomainEvent(NewAttendeeRegistered(a))
	return a, nil
}

// RehydrateAttendee recreates an attendee from persisted state.
func RehydrateAttendee(base sharedDomain.BaseEntity, attendeeID, firstName, lastName, email, phone string, active bool) *Attendee {
	return &Attendee{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(base),
		attendeeID:        attendeeID,
		firstName:         firstName,
		lastName:          lastName,
		email:             email,
		phone:             phone,
		active:            active,
	}
}

func (a *Attendee) AttendeeID() string { return a.attendeeID }
func (a *Attendee) FirstName() string  { return a.firstName }
func (a *Attendee) LastName() string   { return a.lastName }
func (a *Attendee) Email() string      { return a.email }
func (a *Attendee) Phone() string      { return a.phone }
func (a *Attendee) IsActive() bool     { return a.active }

// FullName returns the attendee's display name.
func (a *Attendee) FullName() string {
	return a.firstName + " " + a.lastName
}

// RegenerateID replaces the public ID after a storage-level collision.
func (a *Attendee) RegenerateID() string {
	a.attendeeID = sharedDomain.RandomCode(AttendeeIDLength, sharedDomain.DigitAlphabet)
	a.Touch()
	return a.attendeeID
}

// Deactivate removes the attendee from the scannable set.
func (a *Attendee) Deactivate() {
	a.active = false
	a.Touch()
}

// Activate returns the attendee to the scannable set.
func (a *Attendee) Activate() {
	a.active = true
	a.Touch()
}
