package postgres

import (
	"gorm.io/gorm"

	eventDatamodel "github.com/shivam99392677/anwesha26-sub000/internal/core/datamodel/event"
	eventpkg "github.com/shivam99392677/anwesha26-sub000/internal/event"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) eventpkg.RepositoryAPI {
	return &EventRepository{
		db: db,
	}
}

func (r *EventRepository) Create(e *eventDatamodel.Event) error {
	return r.db.Create(e).Error
}

func (r *EventRepository) GetByID(id int64) (*eventDatamodel.Event, error) {
	var e eventDatamodel.Event
	if err := r.db.First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EventRepository) GetBySlug(slug string) (*eventDatamodel.Event, error) {
	var e eventDatamodel.Event
	if err := r.db.Where("slug = ?", slug).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EventRepository) ListPublished(limit, offset int) ([]*eventDatamodel.Event, error) {
	var events []*eventDatamodel.Event
	err := r.db.Where("is_published = ?", true).
		Order("starts_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&events).Error
	return events, err
}

func (r *EventRepository) ListAll(limit, offset int) ([]*eventDatamodel.Event, error) {
	var events []*eventDatamodel.Event
	err := r.db.Order("starts_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&events).Error
	return events, err
}

func (r *EventRepository) Update(e *eventDatamodel.Event) error {
	return r.db.Save(e).Error
}

func (r *EventRepository) Delete(id int64) error {
	return r.db.Delete(&eventDatamodel.Event{}, id).Error
}

func (r *EventRepository) CreateRegistration(reg *eventDatamodel.Registration) error {
	return r.db.Create(reg).Error
}

func (r *EventRepository) GetRegistration(eventID, userID int64) (*eventDatamodel.Registration, error) {
	var reg eventDatamodel.Registration
	if err := r.db.Where("event_id = ? AND user_id = ?", eventID, userID).First(&reg).Error; err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *EventRepository) ListRegistrationsByEvent(eventID int64) ([]*eventDatamodel.Registration, error) {
	var regs []*eventDatamodel.Registration
	err := r.db.Where("event_id = ?", eventID).Order("registered_at ASC").Find(&regs).Error
	return regs, err
}

func (r *EventRepository) ListRegistrationsByUser(userID int64) ([]*eventDatamodel.Registration, error) {
	var regs []*eventDatamodel.Registration
	err := r.db.Where("user_id = ?", userID).Order("registered_at ASC").Find(&regs).Error
	return regs, err
}
