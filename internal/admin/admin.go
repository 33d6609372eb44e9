package admin

import (
	paymentDatamodel "github.com/shivam99392677/anwesha26-sub000/internal/core/datamodel/payment"
	userDatamodel "github.com/shivam99392677/anwesha26-sub000/internal/core/datamodel/user"
)

type RepositoryAPI interface {
	ListUsers() ([]*userDatamodel.User, error)
	ListPayments(status string) ([]*paymentDatamodel.Payment, error)
	ListVerifiedEmails() ([]string, error)
}
