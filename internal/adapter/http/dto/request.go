package dto

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/aheinzel/account-intercompany-booking-button/internal/domain"
	"github.com/aheinzel/account-intercompany-booking-button/internal/usecase"
)

var validate = validator.New()

var errExactlyOneBookingMode = errors.New("exactly one of scenario_id and template must be provided")

// AllocationShareRequest represents one target company share in an allocate
// request.
type AllocationShareRequest struct {
	CompanyID string          `json:"company_id" validate:"required"`
	Percent   decimal.Decimal `json:"percent" validate:"required"`

	SrcExpenseAccountID   string `json:"src_expense_account_id,omitempty"`
	SrcIntercoARAccountID string `json:"src_interco_ar_account_id,omitempty"`
	SrcJournalID          string `json:"src_journal_id,omitempty"`

	DstExpenseAccountID   string `json:"dst_expense_account_id,omitempty"`
	DstIntercoAPAccountID string `json:"dst_interco_ap_account_id,omitempty"`
	DstJournalID          string `json:"dst_journal_id,omitempty"`
}

// AttachmentRequest represents an optional document to record against every
// generated entry.
type AttachmentRequest struct {
	Filename string `json:"filename" validate:"required"`
	Data     []byte `json:"data" validate:"required"`
}

// AllocateRequest represents a request to split a bank line across companies.
type AllocateRequest struct {
	Shares            []AllocationShareRequest `json:"shares" validate:"required,min=1,dive"`
	RefText           string                   `json:"ref_text,omitempty"`
	ClearingAccountID string                   `json:"clearing_account_id,omitempty"`
	Attachment        *AttachmentRequest       `json:"attachment,omitempty"`
}

// Validate checks structural validity of the request.
func (r *AllocateRequest) Validate() error {
	return validate.Struct(r)
}

// ToUseCaseInput converts to use case input.
func (r *AllocateRequest) ToUseCaseInput(bankLineID, requestID string) usecase.AllocateInput {
	shares := make([]domain.AllocationShare, len(r.Shares))
	for i, s := range r.Shares {
		shares[i] = domain.AllocationShare{
			CompanyID:             s.CompanyID,
			Percent:               s.Percent,
			SrcExpenseAccountID:   s.SrcExpenseAccountID,
			SrcIntercoARAccountID: s.SrcIntercoARAccountID,
			SrcJournalID:          s.SrcJournalID,
			DstExpenseAccountID:   s.DstExpenseAccountID,
			DstIntercoAPAccountID: s.DstIntercoAPAccountID,
			DstJournalID:          s.DstJournalID,
		}
	}

	return usecase.AllocateInput{
		BankLineID:        bankLineID,
		Shares:            shares,
		RefText:           r.RefText,
		ClearingAccountID: r.ClearingAccountID,
		Attachment:        attachmentInput(r.Attachment),
		RequestID:         requestID,
	}
}

// BookRequest represents a request to book a bank line through a scenario or
// a quick template. Exactly one of scenario_id and template must be set.
type BookRequest struct {
	ScenarioID string             `json:"scenario_id,omitempty"`
	Template   string             `json:"template,omitempty"`
	Reference  string             `json:"reference,omitempty"`
	Attachment *AttachmentRequest `json:"attachment,omitempty"`
}

// Validate checks structural validity of the request.
func (r *BookRequest) Validate() error {
	if (r.ScenarioID == "") == (r.Template == "") {
		return errExactlyOneBookingMode
	}
	return validate.Struct(r)
}

// ToUseCaseInput converts to use case input.
func (r *BookRequest) ToUseCaseInput(bankLineID, requestID string) usecase.BookInput {
	return usecase.BookInput{
		BankLineID: bankLineID,
		ScenarioID: r.ScenarioID,
		Template:   r.Template,
		Reference:  r.Reference,
		Attachment: attachmentInput(r.Attachment),
		RequestID:  requestID,
	}
}

// CreateScenarioRequest represents a request to create a posting scenario.
type CreateScenarioRequest struct {
	Name            string `json:"name" validate:"required"`
	Active          bool   `json:"active"`
	SourceCompanyID string `json:"source_company_id" validate:"required"`
	DestCompanyID   string `json:"dest_company_id" validate:"required"`

	SourceJournalID string `json:"source_journal_id" validate:"required"`
	DestJournalID   string `json:"dest_journal_id" validate:"required"`

	SourceDebitAccountID  string `json:"source_debit_account_id" validate:"required"`
	SourceCreditAccountID string `json:"source_credit_account_id" validate:"required"`
	DestDebitAccountID    string `json:"dest_debit_account_id" validate:"required"`
	DestCreditAccountID   string `json:"dest_credit_account_id" validate:"required"`
}

// Validate checks structural validity of the request.
func (r *CreateScenarioRequest) Validate() error {
	return validate.Struct(r)
}

// ToUseCaseInput converts to use case input.
func (r *CreateScenarioRequest) ToUseCaseInput() usecase.CreateScenarioInput {
	return usecase.CreateScenarioInput{
		Name:                  r.Name,
		Active:                r.Active,
		SourceCompanyID:       r.SourceCompanyID,
		DestCompanyID:         r.DestCompanyID,
		SourceJournalID:       r.SourceJournalID,
		DestJournalID:         r.DestJournalID,
		SourceDebitAccountID:  r.SourceDebitAccountID,
		SourceCreditAccountID: r.SourceCreditAccountID,
		DestDebitAccountID:    r.DestDebitAccountID,
		DestCreditAccountID:   r.DestCreditAccountID,
	}
}

func attachmentInput(a *AttachmentRequest) *usecase.AttachmentInput {
	if a == nil {
		return nil
	}
	return &usecase.AttachmentInput{Filename: a.Filename, Data: a.Data}
}
