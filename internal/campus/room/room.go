// Package room holds the Room aggregate: a numbered room in a campus
// building.
package room

import (
	"time"

	"github.com/google/uuid"

	"registrar/pkg/domain"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/eventstore"
)

// AggregateType is the stream type name for Room.
const AggregateType = "room"

const TypeCreated = "room_created"

// Created records the registration of a room within its building.
type Created struct {
	eventstore.BaseEvent
	RoomID     domain.RoomID     `json:"room_id"`
	Number     int               `json:"number"`
	BuildingID domain.BuildingID `json:"building_id"`
}

func (Created) EventType() string { return TypeCreated }

// RegisterEvents binds this package's event shapes into the closed registry.
func RegisterEvents(r *eventstore.Registry) {
	r.MustRegister(TypeCreated, func() eventstore.Event { return &Created{} })
}

// Room is the aggregate root for a single room. A room belongs to exactly
// one building, fixed at creation; the Building aggregate tracks membership
// on its side.
type Room struct {
	eventstore.AggregateRoot

	number     domain.RoomNumber
	buildingID domain.BuildingID
}

// New registers a room in a building and raises Created.
func New(id domain.RoomID, number domain.RoomNumber, buildingID domain.BuildingID, now time.Time) (*Room, error) {
	if id.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "room_id is required")
	}
	if number.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "room_number is required")
	}
	if buildingID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "building_id is required")
	}

	r := &Room{
		AggregateRoot: eventstore.NewAggregateRoot(uuid.UUID(id), now),
		number:        number,
		buildingID:    buildingID,
	}
	r.Raise(&Created{
		BaseEvent:  eventstore.NewBaseEventAt(now),
		RoomID:     id,
		Number:     number.Value(),
		BuildingID: buildingID,
	})
	return r, nil
}

// RoomID is the typed aggregate identity.
func (r *Room) RoomID() domain.RoomID {
	return domain.RoomID(r.ID())
}

func (r *Room) Number() domain.RoomNumber     { return r.number }
func (r *Room) BuildingID() domain.BuildingID { return r.buildingID }

// Rehydrate replays a decoded event stream into a Room.
func Rehydrate(events []eventstore.Event) (*Room, error) {
	if len(events) == 0 {
		return nil, dErrors.New(dErrors.CodeInternal, "room history is empty")
	}
	created, ok := events[0].(*Created)
	if !ok {
		return nil, dErrors.New(dErrors.CodeInternal, "room history must start with "+TypeCreated)
	}
	if len(events) > 1 {
		return nil, dErrors.New(dErrors.CodeInternal, "room history has trailing events")
	}

	number, err := domain.NewRoomNumber(created.Number)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "corrupt room number in history")
	}

	r := &Room{
		AggregateRoot: eventstore.NewAggregateRoot(uuid.UUID(created.RoomID), created.OccurredAt()),
		number:        number,
		buildingID:    created.BuildingID,
	}
	r.SetVersion(int64(len(events)))
	return r, nil
}
