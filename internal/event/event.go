package event

import (
	errors "github.com/shivam99392677/anwesha26-sub000/internal"
	eventDatamodel "github.com/shivam99392677/anwesha26-sub000/internal/core/datamodel/event"
)

type RepositoryAPI interface {
	Create(e *eventDatamodel.Event) error
	GetByID(id int64) (*eventDatamodel.Event, error)
	GetBySlug(slug string) (*eventDatamodel.Event, error)
	ListPublished(limit, offset int) ([]*eventDatamodel.Event, error)
	ListAll(limit, offset int) ([]*eventDatamodel.Event, error)
	Update(e *eventDatamodel.Event) error
	Delete(id int64) error

	CreateRegistration(reg *eventDatamodel.Registration) error
	GetRegistration(eventID, userID int64) (*eventDatamodel.Registration, error)
	ListRegistrationsByEvent(eventID int64) ([]*eventDatamodel.Registration, error)
	ListRegistrationsByUser(userID int64) ([]*eventDatamodel.Registration, error)
}

var (
	ErrEventNotFound     = errors.ErrEventNotFound
	ErrAlreadyRegistered = errors.NewConflictError("Already registered for this event", errors.ErrCodeAlreadyExists)
	ErrSlugTaken         = errors.NewConflictError("Event slug is already in use", errors.ErrCodeAlreadyExists)
)
