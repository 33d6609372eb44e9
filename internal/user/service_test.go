package user_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	internal "github.com/shivam99392677/anwesha26-sub000/internal"
	userDatamodel "github.com/shivam99392677/anwesha26-sub000/internal/core/datamodel/user"
	"github.com/shivam99392677/anwesha26-sub000/internal/core/events"
	"github.com/shivam99392677/anwesha26-sub000/internal/credential"
	userPkg "github.com/shivam99392677/anwesha26-sub000/internal/user"
)

func TestUserService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Service Suite")
}

type mockUserRepository struct {
	users       map[int64]*userDatamodel.User
	nextID      int64
	createError error
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users:  make(map[int64]*userDatamodel.User),
		nextID: 1,
	}
}

func (m *mockUserRepository) Create(u *userDatamodel.User) error {
	if m.createError != nil {
		return m.createError
	}
	u.ID = m.nextID
	m.nextID++
	u.AnweshaID = fmt.Sprintf("ANW-%06d", u.ID)
	u.CreatedAt = time.Now()
	u.UpdatedAt = time.Now()
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepository) GetByID(userID int64) (*userDatamodel.User, error) {
	u, ok := m.users[userID]
	if !ok {
		return nil, errors.New("user not found")
	}
	return u, nil
}

func (m *mockUserRepository) GetByEmail(email string) (*userDatamodel.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errors.New("user not found")
}

func (m *mockUserRepository) GetByVerifyToken(token string) (*userDatamodel.User, error) {
	for _, u := range m.users {
		if u.VerifyToken != nil && *u.VerifyToken == token {
			return u, nil
		}
	}
	return nil, errors.New("user not found")
}

func (m *mockUserRepository) UpdateProfile(userID int64, contact, college, dob, gender string) error {
	u, ok := m.users[userID]
	if !ok {
		return errors.New("user not found")
	}
	u.Contact = contact
	u.College = college
	u.DOB = dob
	u.Gender = gender
	u.ProfileDone = true
	return nil
}

func (m *mockUserRepository) MarkVerified(userID int64) error {
	u, ok := m.users[userID]
	if !ok {
		return errors.New("user not found")
	}
	now := time.Now()
	u.IsVerified = true
	u.VerifiedAt = &now
	u.VerifyToken = nil
	return nil
}

type mockHasher struct{}

func (mockHasher) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

var _ = Describe("User Service", func() {
	var (
		repo    *mockUserRepository
		codec   *credential.Codec
		service *userPkg.Service
		ctx     context.Context
	)

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		repo = newMockUserRepository()
		codec = credential.NewCodec("unit-test-qr-secret")
		bus := events.NewEventBus(logger)
		service = userPkg.NewService(repo, mockHasher{}, codec, bus, logger)
		ctx = context.Background()
	})

	register := func() *userPkg.User {
		u, err := service.Register(ctx, &userPkg.RegisterDTO{
			Email:     "asha@example.com",
			Password:  "long-enough-pass",
			FirstName: "Asha",
			LastName:  "Rao",
		})
		Expect(err).ToNot(HaveOccurred())
		return u
	}

	Describe("Register", func() {
		It("should create an unverified participant with a sequence-assigned anwesha id", func() {
			u := register()

			Expect(u.AnweshaID).To(Equal("ANW-000001"))
			Expect(u.Role).To(Equal(userDatamodel.RoleParticipant))
			Expect(u.IsVerified).To(BeFalse())
			Expect(u.ProfileDone).To(BeFalse())

			stored := repo.users[u.ID]
			Expect(stored.PasswordHash).To(Equal("hashed:long-enough-pass"))
			Expect(stored.VerifyToken).ToNot(BeNil())
		})

		It("should reject a duplicate email", func() {
			register()

			_, err := service.Register(ctx, &userPkg.RegisterDTO{
				Email:     "asha@example.com",
				Password:  "another-password",
				FirstName: "Other",
			})

			Expect(err).To(MatchError(internal.ErrEmailTaken))
		})

		It("should reject a short password", func() {
			_, err := service.Register(ctx, &userPkg.RegisterDTO{
				Email:     "b@example.com",
				Password:  "short",
				FirstName: "B",
			})

			Expect(err).To(HaveOccurred())
		})

		It("should reject names containing the credential delimiter", func() {
			_, err := service.Register(ctx, &userPkg.RegisterDTO{
				Email:     "b@example.com",
				Password:  "long-enough-pass",
				FirstName: "Asha|Rao",
			})

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("VerifyEmail", func() {
		It("should activate the account for a valid token", func() {
			u := register()
			token := *repo.users[u.ID].VerifyToken

			Expect(service.VerifyEmail(token)).To(Succeed())

			stored := repo.users[u.ID]
			Expect(stored.IsVerified).To(BeTrue())
			Expect(stored.VerifyToken).To(BeNil())
		})

		It("should reject an unknown token", func() {
			register()

			err := service.VerifyEmail("deadbeef")

			Expect(err).To(MatchError(internal.ErrInvalidToken))
		})

		It("should reject an empty token", func() {
			err := service.VerifyEmail("")

			Expect(err).To(MatchError(internal.ErrInvalidToken))
		})
	})

	Describe("CompleteProfile", func() {
		var userID int64

		BeforeEach(func() {
			userID = register().ID
		})

		It("should store the profile and mark it done", func() {
			u, err := service.CompleteProfile(userID, &userPkg.CompleteProfileDTO{
				Contact: "9999999999",
				College: "IIT X",
				DOB:     "2000-01-01",
				Gender:  "female",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(u.ProfileDone).To(BeTrue())
			Expect(u.College).To(Equal("IIT X"))
		})

		It("should reject a malformed date of birth", func() {
			_, err := service.CompleteProfile(userID, &userPkg.CompleteProfileDTO{
				Contact: "9999999999",
				College: "IIT X",
				DOB:     "01-01-2000",
				Gender:  "female",
			})

			Expect(err).To(HaveOccurred())
		})

		It("should reject profile fields containing the credential delimiter", func() {
			_, err := service.CompleteProfile(userID, &userPkg.CompleteProfileDTO{
				Contact: "9999999999",
				College: "IIT|X",
				DOB:     "2000-01-01",
				Gender:  "female",
			})

			Expect(err).To(HaveOccurred())
		})

		It("should reject an unknown user", func() {
			_, err := service.CompleteProfile(999, &userPkg.CompleteProfileDTO{
				Contact: "9999999999",
				College: "IIT X",
				DOB:     "2000-01-01",
				Gender:  "female",
			})

			Expect(err).To(MatchError(internal.ErrUserNotFound))
		})
	})

	Describe("IssueCredential", func() {
		var userID int64

		BeforeEach(func() {
			u := register()
			userID = u.ID
		})

		completeAndVerify := func() {
			Expect(service.VerifyEmail(*repo.users[userID].VerifyToken)).To(Succeed())
			_, err := service.CompleteProfile(userID, &userPkg.CompleteProfileDTO{
				Contact: "9999999999",
				College: "IIT X",
				DOB:     "2000-01-01",
				Gender:  "female",
			})
			Expect(err).ToNot(HaveOccurred())
		}

		It("should refuse while the account is unverified", func() {
			_, err := service.IssueCredential(userID)

			Expect(err).To(MatchError(internal.ErrUserNotVerified))
		})

		It("should refuse while the profile is incomplete", func() {
			Expect(service.VerifyEmail(*repo.users[userID].VerifyToken)).To(Succeed())

			_, err := service.IssueCredential(userID)

			Expect(err).To(HaveOccurred())
		})

		It("should issue a token that decodes back to the stored profile", func() {
			completeAndVerify()

			token, err := service.IssueCredential(userID)
			Expect(err).ToNot(HaveOccurred())

			decoded, ok := codec.Decode(token)
			Expect(ok).To(BeTrue())
			Expect(decoded.AnweshaID).To(Equal("ANW-000001"))
			Expect(decoded.FirstName).To(Equal("Asha"))
			Expect(decoded.Email).To(Equal("asha@example.com"))
			Expect(decoded.College).To(Equal("IIT X"))
			Expect(decoded.DOB).To(Equal("2000-01-01"))
			Expect(decoded.Gender).To(Equal("female"))
		})

		It("should reflect profile edits in a re-issued token", func() {
			completeAndVerify()

			first, err := service.IssueCredential(userID)
			Expect(err).ToNot(HaveOccurred())

			_, err = service.CompleteProfile(userID, &userPkg.CompleteProfileDTO{
				Contact: "8888888888",
				College: "NIT Y",
				DOB:     "2000-01-01",
				Gender:  "female",
			})
			Expect(err).ToNot(HaveOccurred())

			second, err := service.IssueCredential(userID)
			Expect(err).ToNot(HaveOccurred())
			Expect(second).ToNot(Equal(first))

			decoded, ok := codec.Decode(second)
			Expect(ok).To(BeTrue())
			Expect(decoded.College).To(Equal("NIT Y"))
		})
	})
})
