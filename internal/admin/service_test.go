package admin_test

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	adminPkg "github.com/shivam99392677/anwesha26-sub000/internal/admin"
	paymentDatamodel "github.com/shivam99392677/anwesha26-sub000/internal/core/datamodel/payment"
	userDatamodel "github.com/shivam99392677/anwesha26-sub000/internal/core/datamodel/user"
)

func TestAdminService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Admin Service Suite")
}

type mockAdminRepository struct {
	users          []*userDatamodel.User
	payments       []*paymentDatamodel.Payment
	listUsersError error
}

func (m *mockAdminRepository) ListUsers() ([]*userDatamodel.User, error) {
	if m.listUsersError != nil {
		return nil, m.listUsersError
	}
	return m.users, nil
}

func (m *mockAdminRepository) ListPayments(status string) ([]*paymentDatamodel.Payment, error) {
	if status == "" {
		return m.payments, nil
	}
	var out []*paymentDatamodel.Payment
	for _, p := range m.payments {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockAdminRepository) ListVerifiedEmails() ([]string, error) {
	var out []string
	for _, u := range m.users {
		if u.IsVerified {
			out = append(out, u.Email)
		}
	}
	return out, nil
}

type sentMail struct {
	to      []string
	subject string
	body    string
}

type mockMailer struct {
	sent      []sentMail
	sendError error
	block     chan struct{}
	started   chan struct{}
}

func (m *mockMailer) Send(to []string, subject, body string) error {
	if m.started != nil {
		close(m.started)
		m.started = nil
	}
	if m.block != nil {
		<-m.block
	}
	if m.sendError != nil {
		return m.sendError
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

var _ = Describe("Admin Service", func() {
	var (
		repo    *mockAdminRepository
		mailer  *mockMailer
		service *adminPkg.Service
	)

	now := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		repo = &mockAdminRepository{
			users: []*userDatamodel.User{
				{
					ID: 1, AnweshaID: "ANW-000001", FirstName: "Asha", LastName: "Rao",
					Email: "asha@example.com", Contact: "9876543210", College: "IIT Patna",
					Role: "participant", IsVerified: true, CreatedAt: now,
				},
				{
					ID: 2, AnweshaID: "ANW-000002", FirstName: "Ravi", LastName: "Kumar",
					Email: "ravi@example.com", Role: "participant", IsVerified: false, CreatedAt: now,
				},
			},
		}
		gatewayTxn := "GW123"
		repo.payments = []*paymentDatamodel.Payment{
			{
				ID: 1, UserID: 1, MerchantTxnID: "ANWTXN-AAA", Gateway: "tpsl",
				AmountPaise: 50000, Status: paymentDatamodel.StatusSuccess,
				GatewayTxnID: &gatewayTxn, CreatedAt: now,
			},
			{
				ID: 2, UserID: 2, MerchantTxnID: "ANWTXN-BBB", Gateway: "razorpay",
				AmountPaise: 79900, Status: paymentDatamodel.StatusFailed, CreatedAt: now,
			},
		}
		mailer = &mockMailer{}
		service = adminPkg.NewService(repo, mailer, logger)
	})

	Describe("ExportUsersCSV", func() {
		It("should write a header and one row per user", func() {
			var buf bytes.Buffer

			Expect(service.ExportUsersCSV(&buf)).To(Succeed())

			rows, err := csv.NewReader(&buf).ReadAll()
			Expect(err).ToNot(HaveOccurred())
			Expect(rows).To(HaveLen(3))
			Expect(rows[0][0]).To(Equal("anwesha_id"))
			Expect(rows[1][0]).To(Equal("ANW-000001"))
			Expect(rows[1][7]).To(Equal("true"))
			Expect(rows[2][7]).To(Equal("false"))
		})

		It("should propagate repository errors", func() {
			repo.listUsersError = errors.New("db down")

			Expect(service.ExportUsersCSV(&bytes.Buffer{})).To(HaveOccurred())
		})
	})

	Describe("ExportPaymentsCSV", func() {
		It("should include gateway and bank references", func() {
			var buf bytes.Buffer

			Expect(service.ExportPaymentsCSV(&buf, "")).To(Succeed())

			rows, err := csv.NewReader(&buf).ReadAll()
			Expect(err).ToNot(HaveOccurred())
			Expect(rows).To(HaveLen(3))
			Expect(rows[1][0]).To(Equal("ANWTXN-AAA"))
			Expect(rows[1][5]).To(Equal("GW123"))
			Expect(rows[2][5]).To(Equal(""))
		})

		It("should filter by status", func() {
			var buf bytes.Buffer

			Expect(service.ExportPaymentsCSV(&buf, paymentDatamodel.StatusSuccess)).To(Succeed())

			rows, err := csv.NewReader(&buf).ReadAll()
			Expect(err).ToNot(HaveOccurred())
			Expect(rows).To(HaveLen(2))
			Expect(rows[1][4]).To(Equal("success"))
		})
	})

	Describe("ExportUsersPDF", func() {
		It("should produce a PDF document", func() {
			var buf bytes.Buffer

			Expect(service.ExportUsersPDF(&buf)).To(Succeed())
			Expect(buf.Bytes()[:5]).To(Equal([]byte("%PDF-")))
		})
	})

	Describe("Broadcast", func() {
		It("should only mail verified accounts", func() {
			result, err := service.Broadcast(&adminPkg.BroadcastDTO{
				Subject: "Schedule update",
				Body:    "Robowars moved to 6pm.",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Recipients).To(Equal(1))
			Expect(result.Failed).To(Equal(0))
			Expect(mailer.sent).To(HaveLen(1))
			Expect(mailer.sent[0].to).To(ConsistOf("asha@example.com"))
		})

		It("should count failed batches without aborting", func() {
			mailer.sendError = errors.New("smtp down")

			result, err := service.Broadcast(&adminPkg.BroadcastDTO{
				Subject: "Schedule update",
				Body:    "Robowars moved to 6pm.",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Failed).To(Equal(1))
		})

		It("should reject an empty subject", func() {
			_, err := service.Broadcast(&adminPkg.BroadcastDTO{Body: "hello"})

			Expect(err).To(HaveOccurred())
		})

		It("should refuse a concurrent broadcast", func() {
			mailer.block = make(chan struct{})
			mailer.started = make(chan struct{})
			started := mailer.started
			firstDone := make(chan struct{})

			go func() {
				defer GinkgoRecover()
				defer close(firstDone)
				_, err := service.Broadcast(&adminPkg.BroadcastDTO{
					Subject: "First",
					Body:    "first",
				})
				Expect(err).ToNot(HaveOccurred())
			}()

			Eventually(started).Should(BeClosed())

			_, err := service.Broadcast(&adminPkg.BroadcastDTO{
				Subject: "Second",
				Body:    "second",
			})
			Expect(err).To(HaveOccurred())

			close(mailer.block)
			Eventually(firstDone).Should(BeClosed())
		})
	})
})
