package domain

import (
	"errors"
	"fmt"
)

var (
	// Validation errors
	ErrZeroAmount      = errors.New("zero-amount bank line cannot be posted")
	ErrPercentSum      = errors.New("allocation percentages must sum to 100")
	ErrNoShares        = errors.New("at least one allocation share is required")
	ErrInvalidPercent  = errors.New("share percentage must be between 0 and 100")
	ErrSameCompany     = errors.New("target company cannot be the same as the bank line company")
	ErrMissingPartner  = errors.New("company has no linked partner")
	ErrUnbalancedEntry = errors.New("journal entry debits and credits do not balance")
	ErrInvalidLine     = errors.New("entry line must carry exactly one of debit or credit")

	// Lookup errors
	ErrBankLineNotFound = errors.New("bank statement line not found")
	ErrScenarioNotFound = errors.New("scenario not found")
	ErrCompanyNotFound  = errors.New("company not found")
	ErrAccountNotFound  = errors.New("account not found")
	ErrJournalNotFound  = errors.New("journal not found")
	ErrEntryNotFound    = errors.New("journal entry not found")

	// Configuration errors
	ErrScenarioCompanyMismatch = errors.New("scenario source company does not match the bank line company")
	ErrScenarioConflict        = errors.New("another scenario is already active for this source company")
	ErrScenarioInactive        = errors.New("scenario is not active")
	ErrScenarioIncomplete      = errors.New("scenario is missing a required account or journal reference")
	ErrDeprecatedAccount       = errors.New("account is deprecated")
	ErrForeignJournal          = errors.New("journal does not belong to the target company")
	ErrQuickBookingDisabled    = errors.New("quick booking is disabled")
	ErrUnknownTemplate         = errors.New("unknown booking template")

	// Ledger errors
	ErrClosedPeriod      = errors.New("fiscal period is closed")
	ErrEntryNotPosted    = errors.New("journal entry is not posted")
	ErrAlreadyReconciled = errors.New("bank statement line is already reconciled")
)

// Role identifies one account or journal slot the resolver must fill.
type Role string

const (
	RoleSourceExpense      Role = "source expense account"
	RoleSourceIntercoAR    Role = "source intercompany receivable account"
	RoleSourceJournal      Role = "source journal"
	RoleDestExpense        Role = "destination expense account"
	RoleDestIntercoAP      Role = "destination intercompany payable account"
	RoleDestJournal        Role = "destination journal"
	RoleClearingAccount    Role = "clearing/suspense account"
	RoleOutstandingAccount Role = "outstanding payments account"
)

// ConfigError signals that neither explicit configuration nor fallback
// discovery resolved a required account or journal. It names the exact role
// and company so an administrator can fix the mapping.
type ConfigError struct {
	Role    Role
	Company string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("no %s configured or discoverable for company %q", e.Role, e.Company)
}

// NewConfigError creates a ConfigError for a role/company pair.
func NewConfigError(role Role, company string) *ConfigError {
	return &ConfigError{Role: role, Company: company}
}

// PreconditionError signals a failed reconciliation precondition. Fatal for
// the propose-counterpart strategy, informational for mirror-and-reconcile.
type PreconditionError struct {
	Precondition string
}

func (e *PreconditionError) Error() string {
	return "reconciliation precondition failed: " + e.Precondition
}

// StaleReferenceError signals that a previously selected record no longer
// exists. Surfaced as a cleared-selection warning, not a hard failure.
type StaleReferenceError struct {
	Kind string
	ID   string
}

func (e *StaleReferenceError) Error() string {
	return fmt.Sprintf("selected %s no longer exists and was cleared", e.Kind)
}
