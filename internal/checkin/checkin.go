package checkin

import (
	errors "github.com/shivam99392677/anwesha26-sub000/internal"
	checkinDatamodel "github.com/shivam99392677/anwesha26-sub000/internal/core/datamodel/checkin"
	eventDatamodel "github.com/shivam99392677/anwesha26-sub000/internal/core/datamodel/event"
	userDatamodel "github.com/shivam99392677/anwesha26-sub000/internal/core/datamodel/user"
)

type RepositoryAPI interface {
	GetUserByAnweshaID(anweshaID string) (*userDatamodel.User, error)
	GetCheckIn(eventID, userID int64) (*checkinDatamodel.CheckIn, error)
	CreateCheckIn(c *checkinDatamodel.CheckIn) error
	ListByEvent(eventID int64) ([]*checkinDatamodel.CheckIn, error)
}

// EventFinderAPI is the slice of the event repository the scanner needs.
type EventFinderAPI interface {
	GetByID(id int64) (*eventDatamodel.Event, error)
}

var (
	ErrCredentialInvalid = errors.ErrCredentialInvalid
	ErrAlreadyCheckedIn  = errors.ErrAlreadyCheckedIn
	ErrEventNotFound     = errors.ErrEventNotFound
)
