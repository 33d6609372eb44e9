package event

import (
	"fmt"
	"log/slog"

	eventDatamodel "github.com/shivam99392677/anwesha26-sub000/internal/core/datamodel/event"
)

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) CreateEvent(dto *CreateEventDTO) (*eventDatamodel.Event, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetBySlug(dto.Slug); err == nil {
		return nil, ErrSlugTaken
	}

	e := &eventDatamodel.Event{
		Name:        dto.Name,
		Slug:        dto.Slug,
		Description: dto.Description,
		Category:    dto.Category,
		Venue:       dto.Venue,
		StartsAt:    dto.StartsAt,
		EndsAt:      dto.EndsAt,
		FeePaise:    dto.FeePaise,
		IsPublished: dto.IsPublished,
	}
	if err := s.repo.Create(e); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.logger.Info("event created", "event_id", e.ID, "slug", e.Slug, "fee_paise", e.FeePaise)
	return e, nil
}

func (s *Service) UpdateEvent(id int64, dto *UpdateEventDTO) (*eventDatamodel.Event, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	e, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrEventNotFound
	}

	if dto.Name != nil {
		e.Name = *dto.Name
	}
	if dto.Description != nil {
		e.Description = *dto.Description
	}
	if dto.Category != nil {
		e.Category = *dto.Category
	}
	if dto.Venue != nil {
		e.Venue = *dto.Venue
	}
	if dto.StartsAt != nil {
		e.StartsAt = *dto.StartsAt
	}
	if dto.EndsAt != nil {
		e.EndsAt = *dto.EndsAt
	}
	if dto.FeePaise != nil {
		e.FeePaise = *dto.FeePaise
	}
	if dto.IsPublished != nil {
		e.IsPublished = *dto.IsPublished
	}

	if err := s.repo.Update(e); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}

	s.logger.Info("event updated", "event_id", e.ID, "slug", e.Slug)
	return e, nil
}

func (s *Service) DeleteEvent(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return ErrEventNotFound
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}

	s.logger.Info("event deleted", "event_id", id)
	return nil
}

// ListEvents returns the public catalogue: published events only.
func (s *Service) ListEvents(limit, offset int) ([]*eventDatamodel.Event, error) {
	return s.repo.ListPublished(limit, offset)
}

// ListAllEvents includes drafts, for the admin surface.
func (s *Service) ListAllEvents(limit, offset int) ([]*eventDatamodel.Event, error) {
	return s.repo.ListAll(limit, offset)
}

func (s *Service) GetEventBySlug(slug string) (*eventDatamodel.Event, error) {
	e, err := s.repo.GetBySlug(slug)
	if err != nil {
		return nil, ErrEventNotFound
	}
	return e, nil
}

// RegisterForEvent records a registration, unique per user and event. Fee
// collection happens through the payment module against the event id; the
// registration row itself is created up front either way.
func (s *Service) RegisterForEvent(eventID, userID int64) (*eventDatamodel.Registration, error) {
	e, err := s.repo.GetByID(eventID)
	if err != nil {
		return nil, ErrEventNotFound
	}
	if !e.IsPublished {
		return nil, ErrEventNotFound
	}

	if _, err := s.repo.GetRegistration(eventID, userID); err == nil {
		return nil, ErrAlreadyRegistered
	}

	reg := &eventDatamodel.Registration{
		EventID: eventID,
		UserID:  userID,
	}
	if err := s.repo.CreateRegistration(reg); err != nil {
		return nil, fmt.Errorf("create registration: %w", err)
	}

	s.logger.Info("event registration created",
		"event_id", eventID,
		"user_id", userID,
		"registration_id", reg.ID)
	return reg, nil
}

func (s *Service) ListUserRegistrations(userID int64) ([]*eventDatamodel.Registration, error) {
	return s.repo.ListRegistrationsByUser(userID)
}
