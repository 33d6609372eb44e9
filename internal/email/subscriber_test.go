package email_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/shivam99392677/anwesha26-sub000/internal/core/events"
	"github.com/shivam99392677/anwesha26-sub000/internal/email"
	"github.com/shivam99392677/anwesha26-sub000/internal/user"
)

func TestEmailSubscriber(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Email Subscriber Suite")
}

type sentMail struct {
	to      []string
	subject string
	body    string
}

type mockMailer struct {
	sent      []sentMail
	sendError error
}

func (m *mockMailer) Send(to []string, subject, body string) error {
	if m.sendError != nil {
		return m.sendError
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

type mockUserFinder struct {
	users map[int64]*user.User
}

func (m *mockUserFinder) GetByID(userID int64) (*user.User, error) {
	u, ok := m.users[userID]
	if !ok {
		return nil, errors.New("user not found")
	}
	return u, nil
}

var _ = Describe("Email Subscriber", func() {
	var (
		mailer     *mockMailer
		finder     *mockUserFinder
		bus        *events.EventBus
		subscriber *email.Subscriber
	)

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		mailer = &mockMailer{}
		finder = &mockUserFinder{users: map[int64]*user.User{
			7: {ID: 7, AnweshaID: "ANW-000007", Email: "asha@example.com", FirstName: "Asha"},
		}}
		bus = events.NewEventBus(logger)
		subscriber = email.NewSubscriber(mailer, finder, "https://anwesha.live", logger)
		subscriber.Register(bus)
	})

	Describe("user.registered", func() {
		It("should send a verification mail containing the link", func() {
			event := events.NewUserRegisteredEvent(7, "ANW-000007", "asha@example.com", "tok123")

			err := bus.PublishSync(context.Background(), event)

			Expect(err).ToNot(HaveOccurred())
			Expect(mailer.sent).To(HaveLen(1))
			Expect(mailer.sent[0].to).To(ConsistOf("asha@example.com"))
			Expect(mailer.sent[0].subject).To(Equal("Verify your Anwesha account"))
			Expect(mailer.sent[0].body).To(ContainSubstring("https://anwesha.live/api/v1/users/verify?token=tok123"))
			Expect(mailer.sent[0].body).To(ContainSubstring("ANW-000007"))
		})

		It("should not fail the publisher when delivery fails", func() {
			mailer.sendError = errors.New("smtp down")
			event := events.NewUserRegisteredEvent(7, "ANW-000007", "asha@example.com", "tok123")

			err := bus.PublishSync(context.Background(), event)

			Expect(err).ToNot(HaveOccurred())
		})
	})

	Describe("payment.completed", func() {
		It("should send a confirmation with the formatted amount", func() {
			event := events.NewPaymentCompletedEvent("55", "ANWTXN-ABC", "tpsl", 7, 50000)

			err := bus.PublishSync(context.Background(), event)

			Expect(err).ToNot(HaveOccurred())
			Expect(mailer.sent).To(HaveLen(1))
			Expect(mailer.sent[0].to).To(ConsistOf("asha@example.com"))
			Expect(mailer.sent[0].body).To(ContainSubstring("INR 500.00"))
			Expect(mailer.sent[0].body).To(ContainSubstring("ANWTXN-ABC"))
		})

		It("should skip silently when the user cannot be resolved", func() {
			event := events.NewPaymentCompletedEvent("55", "ANWTXN-ABC", "tpsl", 999, 50000)

			err := bus.PublishSync(context.Background(), event)

			Expect(err).ToNot(HaveOccurred())
			Expect(mailer.sent).To(BeEmpty())
		})
	})
})
