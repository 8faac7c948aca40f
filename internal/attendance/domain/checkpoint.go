package domain

import (
	"errors"
	"fmt"

	eventsDomain "github.com/felixgeelhaar/turnout/internal/events/domain"
	sharedDomain "github.com/felixgeelhaar/turnout/internal/shared/domain"
	"github.com/google/uuid"
)

var (
	ErrEmptyCheckpointName  = errors.New("checkpoint name must not be empty")
	ErrInvalidOrder         = errors.New("checkpoint order must be positive")
	ErrSpecificDateRequired = errors.New("specific-day checkpoints require a date")
	ErrCheckpointInactive   = errors.New("checkpoint is not active")
)

// CheckpointCodeLength is the length of generated checkpoint scan codes.
const CheckpointCodeLength = 16

// CheckpointType names the kind of attendance requirement.
type CheckpointType string

const (
	CheckpointEntrance CheckpointType = "entrance"
	CheckpointHourly   CheckpointType = "hourly"
	CheckpointBreak    CheckpointType = "break"
	CheckpointLunch    CheckpointType = "lunch"
	CheckpointActivity CheckpointType = "activity"
	CheckpointExit     CheckpointType = "exit"
	CheckpointCustom   CheckpointType = "custom"
)

// AppliesTo restricts which calendar days of a multi-day event a
// checkpoint is in effect on.
type AppliesTo string

const (
	AppliesAllDays     AppliesTo = "all_days"
	AppliesSpecificDay AppliesTo = "specific_day"
	AppliesWeekdays    AppliesTo = "weekdays"
	AppliesWeekends    AppliesTo = "weekends"
)

// Checkpoint is a named, time-windowed attendance requirement owned by
// exactly one event or session.
type Checkpoint struct {
	sharedDomain.BaseAggregateRoot
	owner          Owner
	checkpointType CheckpointType
	name           string
	description    string
	requiredTime   sharedDomain.TimeOfDay
	graceMinutes   int
	appliesTo      AppliesTo
	specificDate   sharedDomain.Date // set only for AppliesSpecificDay
	required       bool
	order          int
	code           string
	active         bool
}

// NewCheckpoint creates a checkpoint with a generated scan code.
func NewCheckpoint(
	owner Owner,
	checkpointType CheckpointType,
	name, description string,
	requiredTime sharedDomain.TimeOfDay,
	graceMinutes int,
	appliesTo AppliesTo,
	specificDate sharedDomain.Date,
	required bool,
	order int,
) (*Checkpoint, error) {
	if err := owner.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, ErrEmptyCheckpointName
	}
	if order < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOrder, order)
	}
	if graceMinutes < 0 {
		graceMinutes = 0
	}
	if appliesTo == AppliesSpecificDay && specificDate.IsZero() {
		return nil, ErrSpecificDateRequired
	}
	if appliesTo == "" {
		appliesTo = AppliesAllDays
	}

	c := &Checkpoint{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		owner:             owner,
		checkpointType:    checkpointType,
		name:              name,
		description:       description,
		requiredTime:      requiredTime,
		graceMinutes:      graceMinutes,
		appliesTo:         appliesTo,
		specificDate:      specificDate,
		required:          required,
		order:             order,
		code:              sharedDomain.RandomCode(CheckpointCodeLength, sharedDomain.CodeAlphabet),
		active:            true,
	}
	c.AddDomainEvent(NewCheckpointCreated(c))
	return c, nil
}

// RehydrateCheckpoint recreates a checkpoint from persisted state.
func RehydrateCheckpoint(
	base sharedDomain.BaseEntity,
	owner Owner,
	checkpointType CheckpointType,
	name, description string,
	requiredTime sharedDomain.TimeOfDay,
	graceMinutes int,
	appliesTo AppliesTo,
	specificDate sharedDomain.Date,
	required bool,
	order int,
	code string,
	active bool,
) *Checkpoint {
	return &Checkpoint{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(base),
		owner:             owner,
		checkpointType:    checkpointType,
		name:              name,
		description:       description,
		requiredTime:      requiredTime,
		graceMinutes:      graceMinutes,
		appliesTo:         appliesTo,
		specificDate:      specificDate,
		required:          required,
		order:             order,
		code:              code,
		active:            active,
	}
}

func (c *Checkpoint) Owner() Owner                         { return c.owner }
func (c *Checkpoint) Type() CheckpointType                 { return c.checkpointType }
func (c *Checkpoint) Name() string                         { return c.name }
func (c *Checkpoint) Description() string                  { return c.description }
func (c *Checkpoint) RequiredTime() sharedDomain.TimeOfDay { return c.requiredTime }
func (c *Checkpoint) GraceMinutes() int                    { return c.graceMinutes }
func (c *Checkpoint) AppliesTo() AppliesTo                 { return c.appliesTo }
func (c *Checkpoint) SpecificDate() sharedDomain.Date      { return c.specificDate }
func (c *Checkpoint) IsRequired() bool                     { return c.required }
func (c *Checkpoint) Order() int                           { return c.order }
func (c *Checkpoint) Code() string                         { return c.code }
func (c *Checkpoint) IsActive() bool                       { return c.active }

// Window returns the checkpoint's attendance window.
func (c *Checkpoint) Window() Window {
	return NewWindow(c.requiredTime, c.graceMinutes)
}

// AppliesOn reports whether the checkpoint is in effect on the given date.
func (c *Checkpoint) AppliesOn(date sharedDomain.Date) bool {
	switch c.appliesTo {
	case AppliesSpecificDay:
		return c.specificDate.Equals(date)
	case AppliesWeekdays:
		return !date.IsWeekend()
	case AppliesWeekends:
		return date.IsWeekend()
	default:
		return true
	}
}

// BelongsTo reports whether the checkpoint is valid for the given event
// and resolved occurrence: event-owned checkpoints cover every occurrence
// of their event, session-owned checkpoints cover their session only.
func (c *Checkpoint) BelongsTo(eventID uuid.UUID, occ eventsDomain.OccurrenceRef) bool {
	if c.owner.IsEvent() {
		return c.owner.TargetID() == eventID
	}
	return occ.IsSession() && c.owner.TargetID() == occ.TargetID()
}

// Deactivate removes the checkpoint from the scannable set.
func (c *Checkpoint) Deactivate() {
	c.active = false
	c.Touch()
}
