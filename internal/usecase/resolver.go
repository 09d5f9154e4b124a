package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/aheinzel/account-intercompany-booking-button/internal/domain"
)

// Template is a fixed quick-booking configuration resolved by account and
// journal codes at request time.
type Template struct {
	Name             string
	DestCompany      string // company name, matched case-insensitively
	SrcJournalCode   string
	DstJournalCode   string
	SrcExpenseCode   string
	SrcIntercoARCode string
	DstExpenseCode   string
	DstIntercoAPCode string
}

// ResolverSettings is the typed configuration of the fallback search
// strategy. Candidate code lists are tried first, then case-insensitive
// name substrings, in order.
type ResolverSettings struct {
	SrcIntercoARCodes []string
	DstIntercoAPCodes []string
	ExpenseCodes      []string

	ARNameHints      []string
	APNameHints      []string
	ExpenseNameHints []string

	Templates map[string]Template
}

// DefaultResolverSettings returns the fallback candidates used when no
// explicit configuration exists. The name hints include the German chart
// labels the originating books use.
func DefaultResolverSettings() ResolverSettings {
	return ResolverSettings{
		SrcIntercoARCodes: []string{"1460", "2228"},
		DstIntercoAPCodes: []string{"3328", "1660"},
		ARNameHints:       []string{"intercompany receivable", "interco", "Forderungen"},
		APNameHints:       []string{"intercompany payable", "interco", "Verbindlichkeiten"},
		ExpenseNameHints:  []string{"expense", "Aufwand"},
		Templates:         map[string]Template{},
	}
}

// PostingSide is one company's resolved posting target: the journal plus the
// expense account and the intercompany (AR or AP) account.
type PostingSide struct {
	Company        *domain.Company
	Journal        *domain.Journal
	ExpenseAccount *domain.Account
	IntercoAccount *domain.Account
}

// PostingTargets is the fully resolved pair of posting sides for one
// allocation share.
type PostingTargets struct {
	Source PostingSide
	Dest   PostingSide
}

// ScenarioTargets is the resolved form of a Scenario: explicit debit/credit
// accounts per side instead of role-based expense/interco pairs.
type ScenarioTargets struct {
	SourceCompany *domain.Company
	DestCompany   *domain.Company
	SourceJournal *domain.Journal
	DestJournal   *domain.Journal
	SourceDebit   *domain.Account
	SourceCredit  *domain.Account
	DestDebit     *domain.Account
	DestCredit    *domain.Account
}

// Resolver resolves journals and accounts for posting targets: explicit
// request overrides first, then configured candidate codes, then name
// substring discovery. It never proceeds with a missing account; failures
// name the exact role and company.
type Resolver struct {
	companies CompanyRepository
	dir       DirectoryRepository
	settings  ResolverSettings
}

// NewResolver creates a new Resolver.
func NewResolver(companies CompanyRepository, dir DirectoryRepository, settings ResolverSettings) *Resolver {
	return &Resolver{
		companies: companies,
		dir:       dir,
		settings:  settings,
	}
}

// ResolveShare resolves both posting sides for one allocation share of the
// given bank line.
func (r *Resolver) ResolveShare(ctx context.Context, line *domain.BankLine, share domain.AllocationShare) (*PostingTargets, error) {
	if share.CompanyID == line.CompanyID {
		return nil, domain.ErrSameCompany
	}

	srcCompany, err := r.companies.GetByID(ctx, line.CompanyID)
	if err != nil {
		return nil, err
	}

	dstCompany, err := r.companies.GetByID(ctx, share.CompanyID)
	if err != nil {
		return nil, err
	}

	if srcCompany.PartnerID == "" || dstCompany.PartnerID == "" {
		return nil, domain.ErrMissingPartner
	}

	srcJournal, err := r.resolveJournal(ctx, srcCompany, share.SrcJournalID, domain.RoleSourceJournal)
	if err != nil {
		return nil, err
	}

	dstJournal, err := r.resolveJournal(ctx, dstCompany, share.DstJournalID, domain.RoleDestJournal)
	if err != nil {
		return nil, err
	}

	srcExpense, err := r.resolveAccount(ctx, srcCompany, share.SrcExpenseAccountID, r.settings.ExpenseCodes, r.settings.ExpenseNameHints, domain.RoleSourceExpense)
	if err != nil {
		return nil, err
	}

	srcInterco, err := r.resolveAccount(ctx, srcCompany, share.SrcIntercoARAccountID, r.settings.SrcIntercoARCodes, r.settings.ARNameHints, domain.RoleSourceIntercoAR)
	if err != nil {
		return nil, err
	}

	dstExpense, err := r.resolveAccount(ctx, dstCompany, share.DstExpenseAccountID, r.settings.ExpenseCodes, r.settings.ExpenseNameHints, domain.RoleDestExpense)
	if err != nil {
		return nil, err
	}

	dstInterco, err := r.resolveAccount(ctx, dstCompany, share.DstIntercoAPAccountID, r.settings.DstIntercoAPCodes, r.settings.APNameHints, domain.RoleDestIntercoAP)
	if err != nil {
		return nil, err
	}

	return &PostingTargets{
		Source: PostingSide{Company: srcCompany, Journal: srcJournal, ExpenseAccount: srcExpense, IntercoAccount: srcInterco},
		Dest:   PostingSide{Company: dstCompany, Journal: dstJournal, ExpenseAccount: dstExpense, IntercoAccount: dstInterco},
	}, nil
}

// ResolveScenario resolves a configured scenario against the bank line. The
// scenario's declared source company must equal the line's company; this is
// an error, never an auto-correction.
func (r *Resolver) ResolveScenario(ctx context.Context, line *domain.BankLine, scenario *domain.Scenario) (*ScenarioTargets, error) {
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	if err := scenario.CheckSource(line.CompanyID); err != nil {
		return nil, err
	}

	srcCompany, err := r.companies.GetByID(ctx, scenario.SourceCompanyID)
	if err != nil {
		return nil, err
	}

	dstCompany, err := r.companies.GetByID(ctx, scenario.DestCompanyID)
	if err != nil {
		return nil, err
	}

	srcJournal, err := r.lookupJournal(ctx, srcCompany, scenario.SourceJournalID, domain.RoleSourceJournal)
	if err != nil {
		return nil, err
	}

	dstJournal, err := r.lookupJournal(ctx, dstCompany, scenario.DestJournalID, domain.RoleDestJournal)
	if err != nil {
		return nil, err
	}

	targets := &ScenarioTargets{
		SourceCompany: srcCompany,
		DestCompany:   dstCompany,
		SourceJournal: srcJournal,
		DestJournal:   dstJournal,
	}

	accounts := []struct {
		id   string
		dst  **domain.Account
		co   *domain.Company
		role domain.Role
	}{
		{scenario.SourceDebitAccountID, &targets.SourceDebit, srcCompany, domain.RoleSourceIntercoAR},
		{scenario.SourceCreditAccountID, &targets.SourceCredit, srcCompany, domain.RoleSourceExpense},
		{scenario.DestDebitAccountID, &targets.DestDebit, dstCompany, domain.RoleDestExpense},
		{scenario.DestCreditAccountID, &targets.DestCredit, dstCompany, domain.RoleDestIntercoAP},
	}
	for _, a := range accounts {
		acc, err := r.lookupAccount(ctx, a.co, a.id, a.role)
		if err != nil {
			return nil, err
		}
		*a.dst = acc
	}

	return targets, nil
}

// ResolveTemplate resolves a fixed quick-booking template into posting
// targets for the bank line's company.
func (r *Resolver) ResolveTemplate(ctx context.Context, line *domain.BankLine, name string) (*PostingTargets, error) {
	tmpl, ok := r.settings.Templates[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownTemplate, name)
	}

	srcCompany, err := r.companies.GetByID(ctx, line.CompanyID)
	if err != nil {
		return nil, err
	}

	dstCompany, err := r.companies.FindByName(ctx, tmpl.DestCompany)
	if err != nil {
		return nil, err
	}

	if srcCompany.ID == dstCompany.ID {
		return nil, domain.ErrSameCompany
	}
	if srcCompany.PartnerID == "" || dstCompany.PartnerID == "" {
		return nil, domain.ErrMissingPartner
	}

	srcJournal, err := r.journalByCode(ctx, srcCompany, tmpl.SrcJournalCode, domain.RoleSourceJournal)
	if err != nil {
		return nil, err
	}

	dstJournal, err := r.journalByCode(ctx, dstCompany, tmpl.DstJournalCode, domain.RoleDestJournal)
	if err != nil {
		return nil, err
	}

	srcExpense, err := r.accountByCode(ctx, srcCompany, tmpl.SrcExpenseCode, domain.RoleSourceExpense)
	if err != nil {
		return nil, err
	}

	srcInterco, err := r.accountByCode(ctx, srcCompany, tmpl.SrcIntercoARCode, domain.RoleSourceIntercoAR)
	if err != nil {
		return nil, err
	}

	dstExpense, err := r.accountByCode(ctx, dstCompany, tmpl.DstExpenseCode, domain.RoleDestExpense)
	if err != nil {
		return nil, err
	}

	dstInterco, err := r.accountByCode(ctx, dstCompany, tmpl.DstIntercoAPCode, domain.RoleDestIntercoAP)
	if err != nil {
		return nil, err
	}

	return &PostingTargets{
		Source: PostingSide{Company: srcCompany, Journal: srcJournal, ExpenseAccount: srcExpense, IntercoAccount: srcInterco},
		Dest:   PostingSide{Company: dstCompany, Journal: dstJournal, ExpenseAccount: dstExpense, IntercoAccount: dstInterco},
	}, nil
}

func (r *Resolver) resolveAccount(ctx context.Context, company *domain.Company, overrideID string, codes, nameHints []string, role domain.Role) (*domain.Account, error) {
	if overrideID != "" {
		return r.lookupAccount(ctx, company, overrideID, role)
	}

	for _, code := range codes {
		acc, err := r.dir.FindAccountByCode(ctx, company.ID, code)
		if errors.Is(err, domain.ErrAccountNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if acc.Usable() == nil {
			return acc, nil
		}
	}

	for _, hint := range nameHints {
		acc, err := r.dir.FindAccountByNameSubstring(ctx, company.ID, hint)
		if errors.Is(err, domain.ErrAccountNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if acc.Usable() == nil {
			return acc, nil
		}
	}

	return nil, domain.NewConfigError(role, company.Name)
}

func (r *Resolver) lookupAccount(ctx context.Context, company *domain.Company, id string, role domain.Role) (*domain.Account, error) {
	acc, err := r.dir.GetAccount(ctx, id)
	if errors.Is(err, domain.ErrAccountNotFound) {
		return nil, domain.NewConfigError(role, company.Name)
	}
	if err != nil {
		return nil, err
	}
	if acc.CompanyID != company.ID {
		return nil, fmt.Errorf("%s for company %q: %w", role, company.Name, domain.ErrAccountNotFound)
	}
	if err := acc.Usable(); err != nil {
		return nil, fmt.Errorf("%s for company %q: %w", role, company.Name, err)
	}
	return acc, nil
}

func (r *Resolver) accountByCode(ctx context.Context, company *domain.Company, code string, role domain.Role) (*domain.Account, error) {
	acc, err := r.dir.FindAccountByCode(ctx, company.ID, code)
	if errors.Is(err, domain.ErrAccountNotFound) {
		return nil, domain.NewConfigError(role, company.Name)
	}
	if err != nil {
		return nil, err
	}
	if err := acc.Usable(); err != nil {
		return nil, fmt.Errorf("%s for company %q: %w", role, company.Name, err)
	}
	return acc, nil
}

func (r *Resolver) resolveJournal(ctx context.Context, company *domain.Company, overrideID string, role domain.Role) (*domain.Journal, error) {
	if overrideID != "" {
		return r.lookupJournal(ctx, company, overrideID, role)
	}

	journal, err := r.dir.FindJournalByType(ctx, company.ID, domain.JournalTypeGeneral)
	if errors.Is(err, domain.ErrJournalNotFound) {
		return nil, domain.NewConfigError(role, company.Name)
	}
	if err != nil {
		return nil, err
	}
	return journal, nil
}

func (r *Resolver) lookupJournal(ctx context.Context, company *domain.Company, id string, role domain.Role) (*domain.Journal, error) {
	journal, err := r.dir.GetJournal(ctx, id)
	if errors.Is(err, domain.ErrJournalNotFound) {
		return nil, domain.NewConfigError(role, company.Name)
	}
	if err != nil {
		return nil, err
	}
	if err := journal.BelongsTo(company.ID); err != nil {
		return nil, fmt.Errorf("%s for company %q: %w", role, company.Name, err)
	}
	return journal, nil
}

func (r *Resolver) journalByCode(ctx context.Context, company *domain.Company, code string, role domain.Role) (*domain.Journal, error) {
	journal, err := r.dir.FindJournalByCode(ctx, company.ID, code)
	if errors.Is(err, domain.ErrJournalNotFound) {
		return nil, domain.NewConfigError(role, company.Name)
	}
	if err != nil {
		return nil, err
	}
	return journal, nil
}
