package domain

import "time"

// Scenario is a saved configuration for a recurring intercompany posting
// pattern: one source company and one destination company, each with a
// journal and a debit/credit account pair. Scenarios are referenced by
// booking requests, never mutated by them.
//
// At most one scenario may be active per source company. Several active
// scenarios may coexist across different source companies.
type Scenario struct {
	ID     string
	Name   string
	Active bool

	SourceCompanyID string
	DestCompanyID   string

	SourceJournalID string
	DestJournalID   string

	SourceDebitAccountID  string
	SourceCreditAccountID string
	DestDebitAccountID    string
	DestCreditAccountID   string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks structural completeness of a scenario.
func (s *Scenario) Validate() error {
	if s.SourceCompanyID == s.DestCompanyID {
		return ErrSameCompany
	}

	required := []string{
		s.SourceCompanyID, s.DestCompanyID,
		s.SourceJournalID, s.DestJournalID,
		s.SourceDebitAccountID, s.SourceCreditAccountID,
		s.DestDebitAccountID, s.DestCreditAccountID,
	}
	for _, ref := range required {
		if ref == "" {
			return ErrScenarioIncomplete
		}
	}

	return nil
}

// CheckSource rejects a scenario selected for a bank line belonging to a
// different company. Re-validated server side at confirm time; client-side
// filtering is not trusted.
func (s *Scenario) CheckSource(companyID string) error {
	if s.SourceCompanyID != companyID {
		return ErrScenarioCompanyMismatch
	}
	if !s.Active {
		return ErrScenarioInactive
	}
	return nil
}
