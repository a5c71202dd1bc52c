// Package building holds the Building aggregate: a campus building and the
// rooms registered in it.
package building

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"registrar/pkg/domain"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/eventstore"
)

// AggregateType is the stream type name for Building.
const AggregateType = "building"

const (
	TypeCreated   = "building_created"
	TypeRoomAdded = "building_room_added"
)

// Created records the registration of a campus building.
type Created struct {
	eventstore.BaseEvent
	BuildingID domain.BuildingID `json:"building_id"`
	Number     int               `json:"number"`
}

func (Created) EventType() string { return TypeCreated }

// RoomAdded records a room registered in the building.
type RoomAdded struct {
	eventstore.BaseEvent
	BuildingID domain.BuildingID `json:"building_id"`
	RoomID     domain.RoomID     `json:"room_id"`
}

func (RoomAdded) EventType() string { return TypeRoomAdded }

// RegisterEvents binds this package's event shapes into the closed registry.
func RegisterEvents(r *eventstore.Registry) {
	r.MustRegister(TypeCreated, func() eventstore.Event { return &Created{} })
	r.MustRegister(TypeRoomAdded, func() eventstore.Event { return &RoomAdded{} })
}

// Building is the aggregate root for a campus building. A building is only
// a valid office location once it has at least one room; HasRooms exposes
// that check to callers placing academics.
type Building struct {
	eventstore.AggregateRoot

	number domain.BuildingNumber
	rooms  []domain.RoomID
}

// New registers a building and raises Created.
func New(id domain.BuildingID, number domain.BuildingNumber, now time.Time) (*Building, error) {
	if id.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "building_id is required")
	}
	if number.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "building_number is required")
	}

	b := &Building{
		AggregateRoot: eventstore.NewAggregateRoot(uuid.UUID(id), now),
		number:        number,
	}
	b.Raise(&Created{
		BaseEvent:  eventstore.NewBaseEventAt(now),
		BuildingID: id,
		Number:     number.Value(),
	})
	return b, nil
}

// BuildingID is the typed aggregate identity.
func (b *Building) BuildingID() domain.BuildingID {
	return domain.BuildingID(b.ID())
}

// AddRoom registers a room in the building; duplicates fail.
func (b *Building) AddRoom(roomID domain.RoomID) error {
	if roomID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "room_id is required")
	}
	for _, existing := range b.rooms {
		if existing == roomID {
			return dErrors.New(dErrors.CodeInvariantViolation, "room is already registered in this building")
		}
	}
	b.rooms = append(b.rooms, roomID)
	b.Raise(&RoomAdded{BaseEvent: eventstore.NewBaseEvent(), BuildingID: b.BuildingID(), RoomID: roomID})
	return nil
}

func (b *Building) Number() domain.BuildingNumber { return b.number }

// HasRooms reports whether the building holds at least one room.
func (b *Building) HasRooms() bool { return len(b.rooms) > 0 }

func (b *Building) Rooms() []domain.RoomID {
	rooms := make([]domain.RoomID, len(b.rooms))
	copy(rooms, b.rooms)
	return rooms
}

// Rehydrate replays a decoded event stream into a Building.
func Rehydrate(events []eventstore.Event) (*Building, error) {
	if len(events) == 0 {
		return nil, dErrors.New(dErrors.CodeInternal, "building history is empty")
	}
	created, ok := events[0].(*Created)
	if !ok {
		return nil, dErrors.New(dErrors.CodeInternal, "building history must start with "+TypeCreated)
	}

	number, err := domain.NewBuildingNumber(created.Number)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "corrupt building number in history")
	}

	b := &Building{
		AggregateRoot: eventstore.NewAggregateRoot(uuid.UUID(created.BuildingID), created.OccurredAt()),
		number:        number,
	}
	for _, event := range events[1:] {
		added, ok := event.(*RoomAdded)
		if !ok {
			return nil, dErrors.New(dErrors.CodeInternal, fmt.Sprintf("unexpected event %q in building history", event.EventType()))
		}
		b.rooms = append(b.rooms, added.RoomID)
		b.Touch(added.OccurredAt())
	}
	b.SetVersion(int64(len(events)))
	return b, nil
}
