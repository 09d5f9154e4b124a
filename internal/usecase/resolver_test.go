package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aheinzel/account-intercompany-booking-button/internal/domain"
	"github.com/aheinzel/account-intercompany-booking-button/internal/usecase"
	"github.com/aheinzel/account-intercompany-booking-button/internal/usecase/mocks"
)

type resolverFixture struct {
	companies *mocks.MockCompanyRepository
	dir       *mocks.MockDirectoryRepository
}

func newResolverFixture() *resolverFixture {
	f := &resolverFixture{
		companies: mocks.NewMockCompanyRepository(),
		dir:       mocks.NewMockDirectoryRepository(),
	}
	f.companies.Add(&domain.Company{ID: "co-src", Name: "Source Co", PartnerID: "partner-src"})
	f.companies.Add(&domain.Company{ID: "co-dst", Name: "Dest Co", PartnerID: "partner-dst"})
	f.dir.AddJournal(&domain.Journal{ID: "jrn-src", CompanyID: "co-src", Code: "MISC", Type: domain.JournalTypeGeneral})
	f.dir.AddJournal(&domain.Journal{ID: "jrn-dst", CompanyID: "co-dst", Code: "MISC", Type: domain.JournalTypeGeneral})
	return f
}

func (f *resolverFixture) resolver(settings usecase.ResolverSettings) *usecase.Resolver {
	return usecase.NewResolver(f.companies, f.dir, settings)
}

func srcLine() *domain.BankLine {
	return &domain.BankLine{ID: "line-1", CompanyID: "co-src", Amount: dec("-10.00")}
}

func TestResolver_ResolveShare_ExplicitOverrides(t *testing.T) {
	f := newResolverFixture()
	f.dir.AddAccount(&domain.Account{ID: "acc-1", CompanyID: "co-src", Code: "9001", Name: "Project costs"})
	f.dir.AddAccount(&domain.Account{ID: "acc-2", CompanyID: "co-src", Code: "9002", Name: "Due from group"})
	f.dir.AddAccount(&domain.Account{ID: "acc-3", CompanyID: "co-dst", Code: "9003", Name: "Project costs"})
	f.dir.AddAccount(&domain.Account{ID: "acc-4", CompanyID: "co-dst", Code: "9004", Name: "Due to group"})

	r := f.resolver(usecase.ResolverSettings{})
	targets, err := r.ResolveShare(context.Background(), srcLine(), domain.AllocationShare{
		CompanyID:             "co-dst",
		Percent:               dec("100"),
		SrcExpenseAccountID:   "acc-1",
		SrcIntercoARAccountID: "acc-2",
		DstExpenseAccountID:   "acc-3",
		DstIntercoAPAccountID: "acc-4",
	})
	require.NoError(t, err)

	assert.Equal(t, "acc-1", targets.Source.ExpenseAccount.ID)
	assert.Equal(t, "acc-2", targets.Source.IntercoAccount.ID)
	assert.Equal(t, "acc-3", targets.Dest.ExpenseAccount.ID)
	assert.Equal(t, "acc-4", targets.Dest.IntercoAccount.ID)
	// No journal override falls back to each company's general journal.
	assert.Equal(t, "jrn-src", targets.Source.Journal.ID)
	assert.Equal(t, "jrn-dst", targets.Dest.Journal.ID)
}

func TestResolver_ResolveShare_CodeBeforeNameHint(t *testing.T) {
	f := newResolverFixture()
	// Both a coded account and a name-matching account exist; the code wins.
	f.dir.AddAccount(&domain.Account{ID: "acc-coded", CompanyID: "co-src", Code: "1460", Name: "Group settlement"})
	f.dir.AddAccount(&domain.Account{ID: "acc-named", CompanyID: "co-src", Code: "1499", Name: "Intercompany receivable"})
	f.dir.AddAccount(&domain.Account{ID: "acc-exp-src", CompanyID: "co-src", Code: "5000", Name: "Shared expenses"})
	f.dir.AddAccount(&domain.Account{ID: "acc-exp-dst", CompanyID: "co-dst", Code: "5000", Name: "Shared expenses"})
	f.dir.AddAccount(&domain.Account{ID: "acc-ap", CompanyID: "co-dst", Code: "3328", Name: "Group payable"})

	r := f.resolver(usecase.DefaultResolverSettings())
	targets, err := r.ResolveShare(context.Background(), srcLine(), domain.AllocationShare{CompanyID: "co-dst", Percent: dec("100")})
	require.NoError(t, err)

	assert.Equal(t, "acc-coded", targets.Source.IntercoAccount.ID)
	assert.Equal(t, "acc-ap", targets.Dest.IntercoAccount.ID)
}

func TestResolver_ResolveShare_DeprecatedAccountSkipped(t *testing.T) {
	f := newResolverFixture()
	f.dir.AddAccount(&domain.Account{ID: "acc-old", CompanyID: "co-src", Code: "1460", Name: "Old receivable", Deprecated: true})
	f.dir.AddAccount(&domain.Account{ID: "acc-new", CompanyID: "co-src", Code: "2228", Name: "New receivable"})
	f.dir.AddAccount(&domain.Account{ID: "acc-exp-src", CompanyID: "co-src", Code: "5000", Name: "Shared expenses"})
	f.dir.AddAccount(&domain.Account{ID: "acc-exp-dst", CompanyID: "co-dst", Code: "5000", Name: "Shared expenses"})
	f.dir.AddAccount(&domain.Account{ID: "acc-ap", CompanyID: "co-dst", Code: "3328", Name: "Group payable"})

	r := f.resolver(usecase.DefaultResolverSettings())
	targets, err := r.ResolveShare(context.Background(), srcLine(), domain.AllocationShare{CompanyID: "co-dst", Percent: dec("100")})
	require.NoError(t, err)

	assert.Equal(t, "acc-new", targets.Source.IntercoAccount.ID, "deprecated candidate must be skipped, not used")
}

func TestResolver_ResolveShare_ConfigErrorNamesRoleAndCompany(t *testing.T) {
	f := newResolverFixture()
	// Source side resolves; the destination payable is missing entirely.
	f.dir.AddAccount(&domain.Account{ID: "acc-exp-src", CompanyID: "co-src", Code: "5000", Name: "Shared expenses"})
	f.dir.AddAccount(&domain.Account{ID: "acc-ar", CompanyID: "co-src", Code: "1460", Name: "Group receivable"})
	f.dir.AddAccount(&domain.Account{ID: "acc-exp-dst", CompanyID: "co-dst", Code: "5000", Name: "Shared expenses"})

	r := f.resolver(usecase.DefaultResolverSettings())
	_, err := r.ResolveShare(context.Background(), srcLine(), domain.AllocationShare{CompanyID: "co-dst", Percent: dec("100")})

	var cfgErr *domain.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, domain.RoleDestIntercoAP, cfgErr.Role)
	assert.Equal(t, "Dest Co", cfgErr.Company)
}

func TestResolver_ResolveShare_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(f *resolverFixture)
		share     domain.AllocationShare
		errorType error
	}{
		{
			name:      "same company",
			share:     domain.AllocationShare{CompanyID: "co-src", Percent: dec("100")},
			errorType: domain.ErrSameCompany,
		},
		{
			name:      "unknown destination company",
			share:     domain.AllocationShare{CompanyID: "co-ghost", Percent: dec("100")},
			errorType: domain.ErrCompanyNotFound,
		},
		{
			name: "destination without partner",
			setup: func(f *resolverFixture) {
				f.companies.Add(&domain.Company{ID: "co-nopartner", Name: "No Partner Co"})
			},
			share:     domain.AllocationShare{CompanyID: "co-nopartner", Percent: dec("100")},
			errorType: domain.ErrMissingPartner,
		},
		{
			name: "override account belongs to another company",
			setup: func(f *resolverFixture) {
				f.dir.AddAccount(&domain.Account{ID: "acc-foreign", CompanyID: "co-dst", Code: "9001", Name: "Project costs"})
			},
			share:     domain.AllocationShare{CompanyID: "co-dst", Percent: dec("100"), SrcExpenseAccountID: "acc-foreign"},
			errorType: domain.ErrAccountNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newResolverFixture()
			if tt.setup != nil {
				tt.setup(f)
			}
			r := f.resolver(usecase.DefaultResolverSettings())

			_, err := r.ResolveShare(context.Background(), srcLine(), tt.share)
			assert.ErrorIs(t, err, tt.errorType)
		})
	}
}

func TestResolver_ResolveShare_ForeignJournalOverride(t *testing.T) {
	f := newResolverFixture()
	f.dir.AddAccount(&domain.Account{ID: "acc-exp-src", CompanyID: "co-src", Code: "5000", Name: "Shared expenses"})
	f.dir.AddAccount(&domain.Account{ID: "acc-ar", CompanyID: "co-src", Code: "1460", Name: "Group receivable"})

	r := f.resolver(usecase.DefaultResolverSettings())
	_, err := r.ResolveShare(context.Background(), srcLine(), domain.AllocationShare{
		CompanyID:    "co-dst",
		Percent:      dec("100"),
		SrcJournalID: "jrn-dst",
	})
	assert.ErrorIs(t, err, domain.ErrForeignJournal)
}

func TestResolver_ResolveScenario_DeprecatedAccountRejected(t *testing.T) {
	f := newResolverFixture()
	f.dir.AddAccount(&domain.Account{ID: "acc-1", CompanyID: "co-src", Code: "9001", Name: "Costs"})
	f.dir.AddAccount(&domain.Account{ID: "acc-2", CompanyID: "co-src", Code: "9002", Name: "Receivable", Deprecated: true})
	f.dir.AddAccount(&domain.Account{ID: "acc-3", CompanyID: "co-dst", Code: "9003", Name: "Costs"})
	f.dir.AddAccount(&domain.Account{ID: "acc-4", CompanyID: "co-dst", Code: "9004", Name: "Payable"})

	scenario := &domain.Scenario{
		ID: "scn-1", Active: true,
		SourceCompanyID: "co-src", DestCompanyID: "co-dst",
		SourceJournalID: "jrn-src", DestJournalID: "jrn-dst",
		SourceDebitAccountID: "acc-1", SourceCreditAccountID: "acc-2",
		DestDebitAccountID: "acc-3", DestCreditAccountID: "acc-4",
	}

	r := f.resolver(usecase.DefaultResolverSettings())
	_, err := r.ResolveScenario(context.Background(), srcLine(), scenario)
	// A scenario pointing at a deprecated account is a configuration error,
	// never silently replaced by fallback discovery.
	assert.ErrorIs(t, err, domain.ErrDeprecatedAccount)
}

func TestResolver_ResolveTemplate(t *testing.T) {
	settings := usecase.DefaultResolverSettings()
	settings.Templates["food"] = usecase.Template{
		Name: "food", DestCompany: "Dest Co",
		SrcJournalCode: "MISC", DstJournalCode: "MISC",
		SrcExpenseCode: "5400", SrcIntercoARCode: "1460",
		DstExpenseCode: "5400", DstIntercoAPCode: "3328",
	}

	f := newResolverFixture()
	f.dir.AddAccount(&domain.Account{ID: "acc-exp-src", CompanyID: "co-src", Code: "5400", Name: "Groceries"})
	f.dir.AddAccount(&domain.Account{ID: "acc-ar", CompanyID: "co-src", Code: "1460", Name: "Group receivable"})
	f.dir.AddAccount(&domain.Account{ID: "acc-exp-dst", CompanyID: "co-dst", Code: "5400", Name: "Groceries"})
	f.dir.AddAccount(&domain.Account{ID: "acc-ap", CompanyID: "co-dst", Code: "3328", Name: "Group payable"})

	r := f.resolver(settings)

	targets, err := r.ResolveTemplate(context.Background(), srcLine(), "food")
	require.NoError(t, err)
	assert.Equal(t, "co-dst", targets.Dest.Company.ID)
	assert.Equal(t, "acc-exp-src", targets.Source.ExpenseAccount.ID)
	assert.Equal(t, "acc-ap", targets.Dest.IntercoAccount.ID)

	_, err = r.ResolveTemplate(context.Background(), srcLine(), "travel")
	assert.ErrorIs(t, err, domain.ErrUnknownTemplate)
}
