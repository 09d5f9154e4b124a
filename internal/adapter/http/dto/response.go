package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/aheinzel/account-intercompany-booking-button/internal/domain"
	"github.com/aheinzel/account-intercompany-booking-button/internal/usecase"
)

// EntryLineResponse represents one entry line in API responses.
type EntryLineResponse struct {
	ID         string          `json:"id"`
	AccountID  string          `json:"account_id"`
	Debit      decimal.Decimal `json:"debit"`
	Credit     decimal.Decimal `json:"credit"`
	PartnerID  string          `json:"partner_id,omitempty"`
	Label      string          `json:"label,omitempty"`
	Reconciled bool            `json:"reconciled"`
}

// EntryResponse represents a journal entry in API responses.
type EntryResponse struct {
	ID        string              `json:"id"`
	CompanyID string              `json:"company_id"`
	JournalID string              `json:"journal_id"`
	Date      time.Time           `json:"date"`
	Ref       string              `json:"ref"`
	State     string              `json:"state"`
	Lines     []EntryLineResponse `json:"lines"`
	CreatedAt time.Time           `json:"created_at"`
}

// EntryFromDomain converts a domain journal entry to a response.
func EntryFromDomain(e *domain.JournalEntry) *EntryResponse {
	lines := make([]EntryLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = EntryLineResponse{
			ID:         l.ID,
			AccountID:  l.AccountID,
			Debit:      l.Debit,
			Credit:     l.Credit,
			PartnerID:  l.PartnerID,
			Label:      l.Label,
			Reconciled: l.Reconciled,
		}
	}

	return &EntryResponse{
		ID:        e.ID,
		CompanyID: e.CompanyID,
		JournalID: e.JournalID,
		Date:      e.Date,
		Ref:       e.Ref,
		State:     string(e.State),
		Lines:     lines,
		CreatedAt: e.CreatedAt,
	}
}

// EntriesFromDomain converts domain journal entries to responses.
func EntriesFromDomain(entries []*domain.JournalEntry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// OffsetResponse reports the reconciliation outcome of a booking action.
type OffsetResponse struct {
	Strategy      string `json:"strategy"`
	OffsetEntryID string `json:"offset_entry_id,omitempty"`
	Reconciled    bool   `json:"reconciled"`
	Proposed      bool   `json:"proposed"`
	SkipReason    string `json:"skip_reason,omitempty"`
}

// BookingResponse represents the outcome of an allocate or book action.
type BookingResponse struct {
	Entries  []*EntryResponse `json:"entries"`
	Offset   OffsetResponse   `json:"offset"`
	Warnings []string         `json:"warnings,omitempty"`
}

// BookingFromResult converts a use case booking result to a response.
func BookingFromResult(r *usecase.BookingResult) *BookingResponse {
	return &BookingResponse{
		Entries: EntriesFromDomain(r.Entries),
		Offset: OffsetResponse{
			Strategy:      r.Offset.Strategy,
			OffsetEntryID: r.Offset.OffsetEntryID,
			Reconciled:    r.Offset.Reconciled,
			Proposed:      r.Offset.Proposed,
			SkipReason:    r.Offset.SkipReason,
		},
		Warnings: r.AttachmentWarnings,
	}
}

// BankLineResponse represents a bank statement line in API responses.
type BankLineResponse struct {
	ID                string          `json:"id"`
	CompanyID         string          `json:"company_id"`
	JournalID         string          `json:"journal_id"`
	MoveID            string          `json:"move_id,omitempty"`
	Amount            decimal.Decimal `json:"amount"`
	Currency          string          `json:"currency"`
	Name              string          `json:"name,omitempty"`
	PaymentRef        string          `json:"payment_ref,omitempty"`
	Date              time.Time       `json:"date"`
	Reconciled        bool            `json:"reconciled"`
	GeneratedEntryIDs []string        `json:"generated_entry_ids"`
}

// BankLineFromDomain converts a domain bank line to a response.
func BankLineFromDomain(l *domain.BankLine) *BankLineResponse {
	return &BankLineResponse{
		ID:                l.ID,
		CompanyID:         l.CompanyID,
		JournalID:         l.JournalID,
		MoveID:            l.MoveID,
		Amount:            l.Amount,
		Currency:          l.Currency,
		Name:              l.Name,
		PaymentRef:        l.PaymentRef,
		Date:              l.Date,
		Reconciled:        l.Reconciled,
		GeneratedEntryIDs: l.GeneratedEntryIDs,
	}
}

// OpenResponse represents the booking form state when a bank line is opened.
type OpenResponse struct {
	Line            *BankLineResponse `json:"line"`
	DefaultScenario *ScenarioResponse `json:"default_scenario,omitempty"`
	ClearedScenario bool              `json:"cleared_scenario"`
	Warning         string            `json:"warning,omitempty"`
}

// OpenFromResult converts a use case open result to a response.
func OpenFromResult(r *usecase.OpenResult) *OpenResponse {
	resp := &OpenResponse{
		Line:            BankLineFromDomain(r.Line),
		ClearedScenario: r.ClearedScenario,
		Warning:         r.Warning,
	}
	if r.DefaultScenario != nil {
		resp.DefaultScenario = ScenarioFromDomain(r.DefaultScenario)
	}
	return resp
}

// ScenarioResponse represents a posting scenario in API responses.
type ScenarioResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`

	SourceCompanyID string `json:"source_company_id"`
	DestCompanyID   string `json:"dest_company_id"`

	SourceJournalID string `json:"source_journal_id"`
	DestJournalID   string `json:"dest_journal_id"`

	SourceDebitAccountID  string `json:"source_debit_account_id"`
	SourceCreditAccountID string `json:"source_credit_account_id"`
	DestDebitAccountID    string `json:"dest_debit_account_id"`
	DestCreditAccountID   string `json:"dest_credit_account_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ScenarioFromDomain converts a domain scenario to a response.
func ScenarioFromDomain(s *domain.Scenario) *ScenarioResponse {
	return &ScenarioResponse{
		ID:                    s.ID,
		Name:                  s.Name,
		Active:                s.Active,
		SourceCompanyID:       s.SourceCompanyID,
		DestCompanyID:         s.DestCompanyID,
		SourceJournalID:       s.SourceJournalID,
		DestJournalID:         s.DestJournalID,
		SourceDebitAccountID:  s.SourceDebitAccountID,
		SourceCreditAccountID: s.SourceCreditAccountID,
		DestDebitAccountID:    s.DestDebitAccountID,
		DestCreditAccountID:   s.DestCreditAccountID,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
	}
}

// ScenariosFromDomain converts domain scenarios to responses.
func ScenariosFromDomain(scenarios []*domain.Scenario) []*ScenarioResponse {
	result := make([]*ScenarioResponse, len(scenarios))
	for i, s := range scenarios {
		result[i] = ScenarioFromDomain(s)
	}
	return result
}

// AuditLogResponse represents an audit log record in API responses.
type AuditLogResponse struct {
	ID           string         `json:"id"`
	Action       string         `json:"action"`
	ResourceType string         `json:"resource_type"`
	ResourceID   string         `json:"resource_id"`
	RequestID    string         `json:"request_id,omitempty"`
	Detail       map[string]any `json:"detail,omitempty"`
	Status       string         `json:"status"`
	ErrorMessage string         `json:"error_message,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// AuditLogFromDomain converts a domain audit log to a response.
func AuditLogFromDomain(l *domain.AuditLog) *AuditLogResponse {
	return &AuditLogResponse{
		ID:           l.ID,
		Action:       l.Action,
		ResourceType: l.ResourceType,
		ResourceID:   l.ResourceID,
		RequestID:    l.RequestID,
		Detail:       l.Detail,
		Status:       l.Status,
		ErrorMessage: l.ErrorMessage,
		CreatedAt:    l.CreatedAt,
	}
}

// AuditLogsFromDomain converts domain audit logs to responses.
func AuditLogsFromDomain(logs []*domain.AuditLog) []*AuditLogResponse {
	result := make([]*AuditLogResponse, len(logs))
	for i, l := range logs {
		result[i] = AuditLogFromDomain(l)
	}
	return result
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
