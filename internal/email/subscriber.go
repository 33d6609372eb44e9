package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shivam99392677/anwesha26-sub000/internal/core/events"
	"github.com/shivam99392677/anwesha26-sub000/internal/user"
)

// UserFinderAPI is the slice of the user service the subscriber needs to
// resolve a user ID from an event payload into an address.
type UserFinderAPI interface {
	GetByID(userID int64) (*user.User, error)
}

// Subscriber turns domain events into outbound mail. Delivery failures are
// logged and swallowed: a broken SMTP relay must never fail a registration
// or a payment.
type Subscriber struct {
	mailer  MailerAPI
	users   UserFinderAPI
	baseURL string
	logger  *slog.Logger
}

func NewSubscriber(mailer MailerAPI, users UserFinderAPI, baseURL string, logger *slog.Logger) *Subscriber {
	return &Subscriber{
		mailer:  mailer,
		users:   users,
		baseURL: baseURL,
		logger:  logger,
	}
}

// Register wires the subscriber into the event bus.
func (s *Subscriber) Register(bus *events.EventBus) {
	bus.Subscribe(events.UserRegisteredEventType, s.handleUserRegistered)
	bus.Subscribe(events.PaymentCompletedEventType, s.handlePaymentCompleted)
}

func (s *Subscriber) handleUserRegistered(ctx context.Context, e events.Event) error {
	data, ok := e.Payload().(map[string]interface{})
	if !ok {
		return fmt.Errorf("unexpected payload for %s", e.EventType())
	}

	email, _ := data["email"].(string)
	anweshaID, _ := data["anwesha_id"].(string)
	token, _ := data["verification_token"].(string)
	if email == "" || token == "" {
		return fmt.Errorf("user registered event missing email or token")
	}

	link := fmt.Sprintf("%s/api/v1/users/verify?token=%s", s.baseURL, token)
	body := fmt.Sprintf(
		"Welcome to Anwesha!\n\n"+
			"Your Anwesha ID is %s.\n\n"+
			"Please verify your email address by opening the link below:\n\n%s\n\n"+
			"If you did not sign up, ignore this mail.\n",
		anweshaID, link)

	if err := s.mailer.Send([]string{email}, "Verify your Anwesha account", body); err != nil {
		s.logger.Error("handleUserRegistered: send failed", "error", err, "email", email)
		return nil
	}

	s.logger.Info("handleUserRegistered: verification mail sent", "anwesha_id", anweshaID)
	return nil
}

func (s *Subscriber) handlePaymentCompleted(ctx context.Context, e events.Event) error {
	data, ok := e.Payload().(map[string]interface{})
	if !ok {
		return fmt.Errorf("unexpected payload for %s", e.EventType())
	}

	userID, _ := data["user_id"].(int64)
	merchantTxnID, _ := data["merchant_txn_id"].(string)
	amountPaise, _ := data["amount_paise"].(int64)

	u, err := s.users.GetByID(userID)
	if err != nil {
		s.logger.Error("handlePaymentCompleted: user lookup failed", "error", err, "user_id", userID)
		return nil
	}

	body := fmt.Sprintf(
		"Hi %s,\n\n"+
			"We received your payment of INR %d.%02d.\n"+
			"Transaction reference: %s\n\n"+
			"See you at the fest!\n",
		u.FirstName, amountPaise/100, amountPaise%100, merchantTxnID)

	if err := s.mailer.Send([]string{u.Email}, "Payment received", body); err != nil {
		s.logger.Error("handlePaymentCompleted: send failed", "error", err, "user_id", userID)
		return nil
	}

	s.logger.Info("handlePaymentCompleted: confirmation mail sent",
		"user_id", userID,
		"merchant_txn_id", merchantTxnID)
	return nil
}
