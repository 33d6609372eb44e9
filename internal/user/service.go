package user

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"

	errors "github.com/shivam99392677/anwesha26-sub000/internal"
	userDatamodel "github.com/shivam99392677/anwesha26-sub000/internal/core/datamodel/user"
	"github.com/shivam99392677/anwesha26-sub000/internal/core/events"
	"github.com/shivam99392677/anwesha26-sub000/internal/credential"
)

// PasswordHasher is the slice of the auth service registration needs.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

type Service struct {
	repo     RepositoryAPI
	hasher   PasswordHasher
	codec    *credential.Codec
	eventBus *events.EventBus
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, hasher PasswordHasher, codec *credential.Codec, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		hasher:   hasher,
		codec:    codec,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Register creates the account (step one). The anwesha id is assigned by
// the repository from the row id; the account starts unverified with a
// single-use verification token that goes out by email.
func (s *Service) Register(ctx context.Context, dto *RegisterDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByEmail(dto.Email); err == nil {
		return nil, errors.ErrEmailTaken
	}

	hash, err := s.hasher.HashPassword(dto.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	token, err := newVerifyToken()
	if err != nil {
		return nil, fmt.Errorf("generate verification token: %w", err)
	}

	dm := &userDatamodel.User{
		Email:        dto.Email,
		PasswordHash: hash,
		FirstName:    dto.FirstName,
		LastName:     dto.LastName,
		Role:         userDatamodel.RoleParticipant,
		VerifyToken:  &token,
	}
	if err := s.repo.Create(dm); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user registered",
		"user_id", dm.ID,
		"anwesha_id", dm.AnweshaID,
		"email", dm.Email)

	if s.eventBus != nil {
		s.eventBus.Publish(ctx, events.NewUserRegisteredEvent(dm.ID, dm.AnweshaID, dm.Email, token))
	}

	return FromDataModel(dm), nil
}

// VerifyEmail consumes a verification token and activates the account.
func (s *Service) VerifyEmail(token string) error {
	if token == "" {
		return errors.ErrInvalidToken
	}

	dm, err := s.repo.GetByVerifyToken(token)
	if err != nil {
		return errors.ErrInvalidToken
	}

	if err := s.repo.MarkVerified(dm.ID); err != nil {
		return fmt.Errorf("mark verified: %w", err)
	}

	s.logger.Info("user verified", "user_id", dm.ID, "anwesha_id", dm.AnweshaID)
	return nil
}

// CompleteProfile is step two of registration.
func (s *Service) CompleteProfile(userID int64, dto *CompleteProfileDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByID(userID); err != nil {
		return nil, errors.ErrUserNotFound
	}

	if err := s.repo.UpdateProfile(userID, dto.Contact, dto.College, dto.DOB, dto.Gender); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	dm, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("reload user: %w", err)
	}

	s.logger.Info("profile completed", "user_id", userID, "anwesha_id", dm.AnweshaID)
	return FromDataModel(dm), nil
}

func (s *Service) GetByID(userID int64) (*User, error) {
	dm, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, errors.ErrUserNotFound
	}
	return FromDataModel(dm), nil
}

// IssueCredential encodes the QR credential token from the stored profile.
// The token is derived, never persisted; re-issuing after a profile edit
// yields a token over the new field values.
func (s *Service) IssueCredential(userID int64) (string, error) {
	dm, err := s.repo.GetByID(userID)
	if err != nil {
		return "", errors.ErrUserNotFound
	}

	if !dm.IsVerified {
		return "", errors.ErrUserNotVerified
	}
	if !dm.ProfileDone {
		return "", errors.NewValidationError("profile must be completed before a credential can be issued", errors.ErrCodeValidationFailed)
	}

	token := s.codec.Encode(credential.Credential{
		AnweshaID: dm.AnweshaID,
		FirstName: dm.FirstName,
		LastName:  dm.LastName,
		Email:     dm.Email,
		Contact:   dm.Contact,
		College:   dm.College,
		DOB:       dm.DOB,
		Gender:    dm.Gender,
	})

	s.logger.Info("credential issued", "user_id", userID, "anwesha_id", dm.AnweshaID)
	return token, nil
}

func newVerifyToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
