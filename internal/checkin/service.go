package checkin

import (
	"log/slog"

	checkinDatamodel "github.com/shivam99392677/anwesha26-sub000/internal/core/datamodel/checkin"
	"github.com/shivam99392677/anwesha26-sub000/internal/credential"
)

type Service struct {
	repo   RepositoryAPI
	events EventFinderAPI
	codec  *credential.Codec
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, events EventFinderAPI, codec *credential.Codec, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		events: events,
		codec:  codec,
		logger: logger,
	}
}

// Scan verifies a presented QR token and records the check-in. A forged
// token, a tampered token and a token for an unknown participant all come
// back as the same credential error so the scanner cannot be used to probe
// which Anwesha IDs exist.
func (s *Service) Scan(operatorID int64, dto *ScanDTO) (*ScanResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	cred, ok := s.codec.Decode(dto.Token)
	if !ok {
		s.logger.Warn("Scan: credential failed verification", "event_id", dto.EventID, "operator_id", operatorID)
		return nil, ErrCredentialInvalid
	}

	u, err := s.repo.GetUserByAnweshaID(cred.AnweshaID)
	if err != nil {
		s.logger.Warn("Scan: credential for unknown participant", "anwesha_id", cred.AnweshaID, "event_id", dto.EventID)
		return nil, ErrCredentialInvalid
	}

	if _, err := s.events.GetByID(dto.EventID); err != nil {
		return nil, ErrEventNotFound
	}

	if _, err := s.repo.GetCheckIn(dto.EventID, u.ID); err == nil {
		return nil, ErrAlreadyCheckedIn
	}

	record := &checkinDatamodel.CheckIn{
		EventID:    dto.EventID,
		UserID:     u.ID,
		AnweshaID:  u.AnweshaID,
		OperatorID: operatorID,
	}
	if err := s.repo.CreateCheckIn(record); err != nil {
		return nil, err
	}

	s.logger.Info("Scan: participant checked in",
		"check_in_id", record.ID,
		"anwesha_id", u.AnweshaID,
		"event_id", dto.EventID,
		"operator_id", operatorID)

	return &ScanResult{
		CheckInID: record.ID,
		AnweshaID: cred.AnweshaID,
		FirstName: cred.FirstName,
		LastName:  cred.LastName,
		College:   cred.College,
		EventID:   dto.EventID,
	}, nil
}

func (s *Service) ListEventCheckIns(eventID int64) ([]*checkinDatamodel.CheckIn, error) {
	if _, err := s.events.GetByID(eventID); err != nil {
		return nil, ErrEventNotFound
	}
	return s.repo.ListByEvent(eventID)
}
