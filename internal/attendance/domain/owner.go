package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrInvalidOwner means the owner reference does not point at anything.
var ErrInvalidOwner = errors.New("checkpoint owner must reference an event or a session")

// OwnerKind says whether a checkpoint hangs off an event or off one of
// its sessions.
type OwnerKind string

const (
	OwnerEvent   OwnerKind = "event"
	OwnerSession OwnerKind = "session"
)

// Owner is the single entity a checkpoint belongs to. Event-owned
// checkpoints cover every day of the event; session-owned checkpoints
// cover one session.
type Owner struct {
	kind OwnerKind
	id   uuid.UUID
}

// EventOwner builds an owner pointing at an event.
func EventOwner(eventID uuid.UUID) Owner {
	return Owner{kind: OwnerEvent, id: eventID}
}

// SessionOwner builds an owner pointing at a session.
func SessionOwner(sessionID uuid.UUID) Owner {
	return Owner{kind: OwnerSession, id: sessionID}
}

// RehydrateOwner recreates an owner from its persisted kind and target.
func RehydrateOwner(kind OwnerKind, id uuid.UUID) (Owner, error) {
	switch kind {
	case OwnerEvent, OwnerSession:
		return Owner{kind: kind, id: id}, nil
	default:
		return Owner{}, fmt.Errorf("%w: kind %q", ErrInvalidOwner, kind)
	}
}

func (o Owner) Kind() OwnerKind     { return o.kind }
func (o Owner) TargetID() uuid.UUID { return o.id }

// IsEvent reports whether the owner is an event.
func (o Owner) IsEvent() bool { return o.kind == OwnerEvent }

// IsSession reports whether the owner is a session.
func (o Owner) IsSession() bool { return o.kind == OwnerSession }

// Validate rejects zero owners.
func (o Owner) Validate() error {
	if (o.kind != OwnerEvent && o.kind != OwnerSession) || o.id == uuid.Nil {
		return ErrInvalidOwner
	}
	return nil
}

func (o Owner) String() string {
	return fmt.Sprintf("%s:%s", o.kind, o.id)
}
