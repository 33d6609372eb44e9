package checkin_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	checkinPkg "github.com/shivam99392677/anwesha26-sub000/internal/checkin"
	checkinDatamodel "github.com/shivam99392677/anwesha26-sub000/internal/core/datamodel/checkin"
	eventDatamodel "github.com/shivam99392677/anwesha26-sub000/internal/core/datamodel/event"
	userDatamodel "github.com/shivam99392677/anwesha26-sub000/internal/core/datamodel/user"
	"github.com/shivam99392677/anwesha26-sub000/internal/credential"
)

func TestCheckInService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "CheckIn Service Suite")
}

type mockCheckInRepository struct {
	users       map[string]*userDatamodel.User
	checkIns    map[[2]int64]*checkinDatamodel.CheckIn
	nextID      int64
	createError error
}

func newMockCheckInRepository() *mockCheckInRepository {
	return &mockCheckInRepository{
		users:    make(map[string]*userDatamodel.User),
		checkIns: make(map[[2]int64]*checkinDatamodel.CheckIn),
		nextID:   1,
	}
}

func (m *mockCheckInRepository) GetUserByAnweshaID(anweshaID string) (*userDatamodel.User, error) {
	u, ok := m.users[anweshaID]
	if !ok {
		return nil, errors.New("user not found")
	}
	return u, nil
}

func (m *mockCheckInRepository) GetCheckIn(eventID, userID int64) (*checkinDatamodel.CheckIn, error) {
	c, ok := m.checkIns[[2]int64{eventID, userID}]
	if !ok {
		return nil, errors.New("check-in not found")
	}
	return c, nil
}

func (m *mockCheckInRepository) CreateCheckIn(c *checkinDatamodel.CheckIn) error {
	if m.createError != nil {
		return m.createError
	}
	c.ID = m.nextID
	m.nextID++
	m.checkIns[[2]int64{c.EventID, c.UserID}] = c
	return nil
}

func (m *mockCheckInRepository) ListByEvent(eventID int64) ([]*checkinDatamodel.CheckIn, error) {
	var out []*checkinDatamodel.CheckIn
	for _, c := range m.checkIns {
		if c.EventID == eventID {
			out = append(out, c)
		}
	}
	return out, nil
}

type mockEventFinder struct {
	events map[int64]*eventDatamodel.Event
}

func (m *mockEventFinder) GetByID(id int64) (*eventDatamodel.Event, error) {
	e, ok := m.events[id]
	if !ok {
		return nil, errors.New("event not found")
	}
	return e, nil
}

var _ = Describe("CheckIn Service", func() {
	var (
		repo    *mockCheckInRepository
		finder  *mockEventFinder
		codec   *credential.Codec
		service *checkinPkg.Service
	)

	const operatorID = int64(42)

	participant := credential.Credential{
		AnweshaID: "ANW-000123",
		FirstName: "Asha",
		LastName:  "Rao",
		Email:     "asha@example.com",
		Contact:   "9876543210",
		College:   "IIT Patna",
		DOB:       "2004-03-14",
		Gender:    "female",
	}

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		repo = newMockCheckInRepository()
		repo.users[participant.AnweshaID] = &userDatamodel.User{
			ID:        123,
			AnweshaID: participant.AnweshaID,
			FirstName: participant.FirstName,
			LastName:  participant.LastName,
			Email:     participant.Email,
		}
		finder = &mockEventFinder{events: map[int64]*eventDatamodel.Event{
			1: {ID: 1, Name: "Robowars", Slug: "robowars", IsPublished: true},
		}}
		codec = credential.NewCodec("unit-test-qr-secret")
		service = checkinPkg.NewService(repo, finder, codec, logger)
	})

	Describe("Scan", func() {
		It("should check in a participant with a valid token", func() {
			token := codec.Encode(participant)

			result, err := service.Scan(operatorID, &checkinPkg.ScanDTO{EventID: 1, Token: token})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.AnweshaID).To(Equal("ANW-000123"))
			Expect(result.FirstName).To(Equal("Asha"))
			Expect(result.College).To(Equal("IIT Patna"))

			stored := repo.checkIns[[2]int64{1, 123}]
			Expect(stored).ToNot(BeNil())
			Expect(stored.OperatorID).To(Equal(operatorID))
			Expect(stored.AnweshaID).To(Equal("ANW-000123"))
		})

		It("should reject a tampered token", func() {
			token := codec.Encode(participant)
			tampered := "A" + token[1:]

			_, err := service.Scan(operatorID, &checkinPkg.ScanDTO{EventID: 1, Token: tampered})

			Expect(err).To(MatchError(checkinPkg.ErrCredentialInvalid))
			Expect(repo.checkIns).To(BeEmpty())
		})

		It("should reject a token signed with a different secret", func() {
			otherCodec := credential.NewCodec("some-other-secret")
			token := otherCodec.Encode(participant)

			_, err := service.Scan(operatorID, &checkinPkg.ScanDTO{EventID: 1, Token: token})

			Expect(err).To(MatchError(checkinPkg.ErrCredentialInvalid))
		})

		It("should reject a valid token for an unknown participant", func() {
			ghost := participant
			ghost.AnweshaID = "ANW-999999"
			token := codec.Encode(ghost)

			_, err := service.Scan(operatorID, &checkinPkg.ScanDTO{EventID: 1, Token: token})

			Expect(err).To(MatchError(checkinPkg.ErrCredentialInvalid))
		})

		It("should reject a second scan for the same event", func() {
			token := codec.Encode(participant)

			_, err := service.Scan(operatorID, &checkinPkg.ScanDTO{EventID: 1, Token: token})
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Scan(operatorID, &checkinPkg.ScanDTO{EventID: 1, Token: token})
			Expect(err).To(MatchError(checkinPkg.ErrAlreadyCheckedIn))
		})

		It("should allow the same participant at a different event", func() {
			finder.events[2] = &eventDatamodel.Event{ID: 2, Name: "Nocturnals", Slug: "nocturnals", IsPublished: true}
			token := codec.Encode(participant)

			_, err := service.Scan(operatorID, &checkinPkg.ScanDTO{EventID: 1, Token: token})
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Scan(operatorID, &checkinPkg.ScanDTO{EventID: 2, Token: token})
			Expect(err).ToNot(HaveOccurred())
		})

		It("should refuse an unknown event", func() {
			token := codec.Encode(participant)

			_, err := service.Scan(operatorID, &checkinPkg.ScanDTO{EventID: 999, Token: token})

			Expect(err).To(MatchError(checkinPkg.ErrEventNotFound))
		})

		It("should reject an empty token", func() {
			_, err := service.Scan(operatorID, &checkinPkg.ScanDTO{EventID: 1, Token: ""})

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("ListEventCheckIns", func() {
		It("should list check-ins for an event", func() {
			token := codec.Encode(participant)
			_, err := service.Scan(operatorID, &checkinPkg.ScanDTO{EventID: 1, Token: token})
			Expect(err).ToNot(HaveOccurred())

			checkIns, err := service.ListEventCheckIns(1)

			Expect(err).ToNot(HaveOccurred())
			Expect(checkIns).To(HaveLen(1))
		})

		It("should refuse an unknown event", func() {
			_, err := service.ListEventCheckIns(999)

			Expect(err).To(MatchError(checkinPkg.ErrEventNotFound))
		})
	})
})
