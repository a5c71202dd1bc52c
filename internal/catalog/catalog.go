// Package catalog assembles the closed event-type registry covering every
// aggregate in the system. Stores decode only through this registry; an
// event type not registered here does not exist as far as replay is
// concerned.
package catalog

import (
	"registrar/internal/academics/chair"
	"registrar/internal/academics/committee"
	"registrar/internal/academics/degree"
	"registrar/internal/academics/subject"
	"registrar/internal/academics/university"
	"registrar/internal/campus/building"
	"registrar/internal/campus/extension"
	"registrar/internal/campus/room"
	"registrar/internal/department"
	"registrar/internal/staff/academic"
	"registrar/pkg/platform/eventstore"
)

// NewRegistry builds the registry with every known event type bound.
func NewRegistry() *eventstore.Registry {
	r := eventstore.NewRegistry()
	academic.RegisterEvents(r)
	department.RegisterEvents(r)
	building.RegisterEvents(r)
	room.RegisterEvents(r)
	extension.RegisterEvents(r)
	chair.RegisterEvents(r)
	committee.RegisterEvents(r)
	subject.RegisterEvents(r)
	degree.RegisterEvents(r)
	university.RegisterEvents(r)
	return r
}
