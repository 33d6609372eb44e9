package event_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	eventDatamodel "github.com/shivam99392677/anwesha26-sub000/internal/core/datamodel/event"
	eventPkg "github.com/shivam99392677/anwesha26-sub000/internal/event"
)

func TestEventService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Event Service Suite")
}

type mockEventRepository struct {
	events        map[int64]*eventDatamodel.Event
	registrations map[[2]int64]*eventDatamodel.Registration
	nextID        int64
	createError   error
}

func newMockEventRepository() *mockEventRepository {
	return &mockEventRepository{
		events:        make(map[int64]*eventDatamodel.Event),
		registrations: make(map[[2]int64]*eventDatamodel.Registration),
		nextID:        1,
	}
}

func (m *mockEventRepository) Create(e *eventDatamodel.Event) error {
	if m.createError != nil {
		return m.createError
	}
	e.ID = m.nextID
	m.nextID++
	m.events[e.ID] = e
	return nil
}

func (m *mockEventRepository) GetByID(id int64) (*eventDatamodel.Event, error) {
	e, ok := m.events[id]
	if !ok {
		return nil, errors.New("event not found")
	}
	return e, nil
}

func (m *mockEventRepository) GetBySlug(slug string) (*eventDatamodel.Event, error) {
	for _, e := range m.events {
		if e.Slug == slug {
			return e, nil
		}
	}
	return nil, errors.New("event not found")
}

func (m *mockEventRepository) ListPublished(limit, offset int) ([]*eventDatamodel.Event, error) {
	var out []*eventDatamodel.Event
	for _, e := range m.events {
		if e.IsPublished {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockEventRepository) ListAll(limit, offset int) ([]*eventDatamodel.Event, error) {
	var out []*eventDatamodel.Event
	for _, e := range m.events {
		out = append(out, e)
	}
	return out, nil
}

func (m *mockEventRepository) Update(e *eventDatamodel.Event) error {
	m.events[e.ID] = e
	return nil
}

func (m *mockEventRepository) Delete(id int64) error {
	delete(m.events, id)
	return nil
}

func (m *mockEventRepository) CreateRegistration(reg *eventDatamodel.Registration) error {
	reg.ID = m.nextID
	m.nextID++
	reg.RegisteredAt = time.Now()
	m.registrations[[2]int64{reg.EventID, reg.UserID}] = reg
	return nil
}

func (m *mockEventRepository) GetRegistration(eventID, userID int64) (*eventDatamodel.Registration, error) {
	reg, ok := m.registrations[[2]int64{eventID, userID}]
	if !ok {
		return nil, errors.New("registration not found")
	}
	return reg, nil
}

func (m *mockEventRepository) ListRegistrationsByEvent(eventID int64) ([]*eventDatamodel.Registration, error) {
	var out []*eventDatamodel.Registration
	for _, reg := range m.registrations {
		if reg.EventID == eventID {
			out = append(out, reg)
		}
	}
	return out, nil
}

func (m *mockEventRepository) ListRegistrationsByUser(userID int64) ([]*eventDatamodel.Registration, error) {
	var out []*eventDatamodel.Registration
	for _, reg := range m.registrations {
		if reg.UserID == userID {
			out = append(out, reg)
		}
	}
	return out, nil
}

var _ = Describe("Event Service", func() {
	var (
		repo    *mockEventRepository
		service *eventPkg.Service
	)

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		repo = newMockEventRepository()
		service = eventPkg.NewService(repo, logger)
	})

	createEvent := func(slug string, published bool, feePaise int64) *eventDatamodel.Event {
		e, err := service.CreateEvent(&eventPkg.CreateEventDTO{
			Name:        "Robowars",
			Slug:        slug,
			Category:    "tech",
			Venue:       "Main Arena",
			StartsAt:    time.Now().Add(24 * time.Hour),
			EndsAt:      time.Now().Add(26 * time.Hour),
			FeePaise:    feePaise,
			IsPublished: published,
		})
		Expect(err).ToNot(HaveOccurred())
		return e
	}

	Describe("CreateEvent", func() {
		It("should create and return the event", func() {
			e := createEvent("robowars", true, 10000)

			Expect(e.ID).To(BeNumerically(">", 0))
			Expect(e.Slug).To(Equal("robowars"))
			Expect(e.FeePaise).To(Equal(int64(10000)))
		})

		It("should reject a duplicate slug", func() {
			createEvent("robowars", true, 0)

			_, err := service.CreateEvent(&eventPkg.CreateEventDTO{
				Name: "Robowars II",
				Slug: "robowars",
			})

			Expect(err).To(MatchError(eventPkg.ErrSlugTaken))
		})

		It("should reject a negative fee", func() {
			_, err := service.CreateEvent(&eventPkg.CreateEventDTO{
				Name:     "Robowars",
				Slug:     "robowars",
				FeePaise: -100,
			})

			Expect(err).To(HaveOccurred())
		})

		It("should reject an end time before the start time", func() {
			now := time.Now()
			_, err := service.CreateEvent(&eventPkg.CreateEventDTO{
				Name:     "Robowars",
				Slug:     "robowars",
				StartsAt: now,
				EndsAt:   now.Add(-time.Hour),
			})

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("UpdateEvent", func() {
		It("should apply only the provided fields", func() {
			e := createEvent("robowars", false, 0)

			newVenue := "Open Grounds"
			published := true
			updated, err := service.UpdateEvent(e.ID, &eventPkg.UpdateEventDTO{
				Venue:       &newVenue,
				IsPublished: &published,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(updated.Venue).To(Equal("Open Grounds"))
			Expect(updated.IsPublished).To(BeTrue())
			Expect(updated.Name).To(Equal("Robowars"))
		})

		It("should return not found for an unknown event", func() {
			_, err := service.UpdateEvent(999, &eventPkg.UpdateEventDTO{})

			Expect(err).To(MatchError(eventPkg.ErrEventNotFound))
		})
	})

	Describe("ListEvents", func() {
		It("should only return published events", func() {
			createEvent("published-one", true, 0)
			createEvent("draft-one", false, 0)

			events, err := service.ListEvents(20, 0)

			Expect(err).ToNot(HaveOccurred())
			Expect(events).To(HaveLen(1))
			Expect(events[0].Slug).To(Equal("published-one"))
		})
	})

	Describe("RegisterForEvent", func() {
		It("should register a user once", func() {
			e := createEvent("robowars", true, 0)

			reg, err := service.RegisterForEvent(e.ID, 7)

			Expect(err).ToNot(HaveOccurred())
			Expect(reg.EventID).To(Equal(e.ID))
			Expect(reg.UserID).To(Equal(int64(7)))
		})

		It("should reject a second registration for the same event", func() {
			e := createEvent("robowars", true, 0)

			_, err := service.RegisterForEvent(e.ID, 7)
			Expect(err).ToNot(HaveOccurred())

			_, err = service.RegisterForEvent(e.ID, 7)
			Expect(err).To(MatchError(eventPkg.ErrAlreadyRegistered))
		})

		It("should refuse registration for an unpublished event", func() {
			e := createEvent("draft", false, 0)

			_, err := service.RegisterForEvent(e.ID, 7)

			Expect(err).To(MatchError(eventPkg.ErrEventNotFound))
		})

		It("should refuse registration for an unknown event", func() {
			_, err := service.RegisterForEvent(999, 7)

			Expect(err).To(MatchError(eventPkg.ErrEventNotFound))
		})
	})
})
