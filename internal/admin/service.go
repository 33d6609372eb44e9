package admin

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync/atomic"

	"github.com/phpdave11/gofpdf"

	errors "github.com/shivam99392677/anwesha26-sub000/internal"
	"github.com/shivam99392677/anwesha26-sub000/internal/email"
)

// broadcastBatchSize bounds recipients per SMTP submission; most relays
// reject messages with very large recipient lists.
const broadcastBatchSize = 50

type Service struct {
	repo         RepositoryAPI
	mailer       email.MailerAPI
	logger       *slog.Logger
	broadcasting atomic.Bool
}

func NewService(repo RepositoryAPI, mailer email.MailerAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		mailer: mailer,
		logger: logger,
	}
}

// ExportUsersCSV streams the full participant roster as CSV.
func (s *Service) ExportUsersCSV(w io.Writer) error {
	users, err := s.repo.ListUsers()
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"anwesha_id", "first_name", "last_name", "email", "contact",
		"college", "role", "verified", "registered_at",
	}); err != nil {
		return err
	}

	for _, u := range users {
		row := []string{
			u.AnweshaID,
			u.FirstName,
			u.LastName,
			u.Email,
			u.Contact,
			u.College,
			u.Role,
			strconv.FormatBool(u.IsVerified),
			u.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportPaymentsCSV streams payments as CSV, optionally filtered by status.
func (s *Service) ExportPaymentsCSV(w io.Writer, status string) error {
	payments, err := s.repo.ListPayments(status)
	if err != nil {
		return fmt.Errorf("list payments: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"merchant_txn_id", "gateway", "user_id", "amount_paise",
		"status", "gateway_txn_id", "bank_txn_id", "created_at",
	}); err != nil {
		return err
	}

	for _, p := range payments {
		gatewayTxn := ""
		if p.GatewayTxnID != nil {
			gatewayTxn = *p.GatewayTxnID
		}
		bankTxn := ""
		if p.BankTxnID != nil {
			bankTxn = *p.BankTxnID
		}
		row := []string{
			p.MerchantTxnID,
			p.Gateway,
			strconv.FormatInt(p.UserID, 10),
			strconv.FormatInt(p.AmountPaise, 10),
			p.Status,
			gatewayTxn,
			bankTxn,
			p.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportUsersPDF renders the participant roster as a printable table.
func (s *Service) ExportUsersPDF(w io.Writer) error {
	users, err := s.repo.ListUsers()
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Anwesha Participants", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, "Anwesha Participants")
	pdf.Ln(12)

	headers := []string{"Anwesha ID", "Name", "Email", "Contact", "College", "Verified"}
	widths := []float64{30, 50, 65, 30, 75, 20}

	pdf.SetFont("Helvetica", "B", 9)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, u := range users {
		verified := "no"
		if u.IsVerified {
			verified = "yes"
		}
		cols := []string{
			u.AnweshaID,
			u.FirstName + " " + u.LastName,
			u.Email,
			u.Contact,
			u.College,
			verified,
		}
		for i, c := range cols {
			pdf.CellFormat(widths[i], 6, c, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

// Broadcast sends one message to every verified account. Only one
// broadcast may run at a time; concurrent requests get a conflict.
func (s *Service) Broadcast(dto *BroadcastDTO) (*BroadcastResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if !s.broadcasting.CompareAndSwap(false, true) {
		return nil, errors.NewConflictError("a broadcast is already in progress", errors.ErrCodeBroadcastInProgress)
	}
	defer s.broadcasting.Store(false)

	recipients, err := s.repo.ListVerifiedEmails()
	if err != nil {
		return nil, fmt.Errorf("list recipients: %w", err)
	}

	result := &BroadcastResult{Recipients: len(recipients)}
	for start := 0; start < len(recipients); start += broadcastBatchSize {
		end := start + broadcastBatchSize
		if end > len(recipients) {
			end = len(recipients)
		}
		batch := recipients[start:end]
		result.Batches++

		if err := s.mailer.Send(batch, dto.Subject, dto.Body); err != nil {
			s.logger.Error("Broadcast: batch failed", "error", err, "batch_size", len(batch))
			result.Failed += len(batch)
		}
	}

	s.logger.Info("Broadcast: finished",
		"recipients", result.Recipients,
		"batches", result.Batches,
		"failed", result.Failed)
	return result, nil
}
