package mocks

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/aheinzel/account-intercompany-booking-button/internal/domain"
	"github.com/aheinzel/account-intercompany-booking-button/internal/usecase"
)

// MockTransaction is a mock implementation of usecase.Transaction.
type MockTransaction struct {
	Committed  bool
	RolledBack bool

	CommitFunc func(ctx context.Context) error
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	if t.CommitFunc != nil {
		if err := t.CommitFunc(ctx); err != nil {
			return err
		}
	}
	t.Committed = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// MockTransactionManager is a mock implementation of usecase.TransactionManager.
type MockTransactionManager struct {
	mu           sync.Mutex
	Transactions []*MockTransaction

	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	tx := &MockTransaction{}
	m.Transactions = append(m.Transactions, tx)
	return tx, nil
}

// MockBankLineRepository is a mock implementation of usecase.BankLineRepository.
type MockBankLineRepository struct {
	mu    sync.RWMutex
	lines map[string]*domain.BankLine

	GetByIDFunc                func(ctx context.Context, id string) (*domain.BankLine, error)
	AppendGeneratedEntriesFunc func(ctx context.Context, tx usecase.Transaction, bankLineID string, entryIDs []string) error
	MarkReconciledFunc         func(ctx context.Context, bankLineID string) error
}

func NewMockBankLineRepository() *MockBankLineRepository {
	return &MockBankLineRepository{lines: make(map[string]*domain.BankLine)}
}

func (m *MockBankLineRepository) Add(line *domain.BankLine) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines[line.ID] = line
}

func (m *MockBankLineRepository) GetByID(ctx context.Context, id string) (*domain.BankLine, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if line, ok := m.lines[id]; ok {
		return line, nil
	}
	return nil, domain.ErrBankLineNotFound
}

func (m *MockBankLineRepository) Exists(ctx context.Context, id string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.lines[id]
	return ok, nil
}

func (m *MockBankLineRepository) AppendGeneratedEntries(ctx context.Context, tx usecase.Transaction, bankLineID string, entryIDs []string) error {
	if m.AppendGeneratedEntriesFunc != nil {
		return m.AppendGeneratedEntriesFunc(ctx, tx, bankLineID, entryIDs)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	line, ok := m.lines[bankLineID]
	if !ok {
		return domain.ErrBankLineNotFound
	}
	line.GeneratedEntryIDs = append(line.GeneratedEntryIDs, entryIDs...)
	return nil
}

func (m *MockBankLineRepository) MarkReconciled(ctx context.Context, bankLineID string) error {
	if m.MarkReconciledFunc != nil {
		return m.MarkReconciledFunc(ctx, bankLineID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	line, ok := m.lines[bankLineID]
	if !ok {
		return domain.ErrBankLineNotFound
	}
	line.Reconciled = true
	return nil
}

// MockCompanyRepository is a mock implementation of usecase.CompanyRepository.
type MockCompanyRepository struct {
	mu        sync.RWMutex
	companies map[string]*domain.Company
}

func NewMockCompanyRepository() *MockCompanyRepository {
	return &MockCompanyRepository{companies: make(map[string]*domain.Company)}
}

func (m *MockCompanyRepository) Add(company *domain.Company) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.companies[company.ID] = company
}

func (m *MockCompanyRepository) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.companies[id]; ok {
		return c, nil
	}
	return nil, domain.ErrCompanyNotFound
}

func (m *MockCompanyRepository) FindByName(ctx context.Context, name string) (*domain.Company, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.companies {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	for _, c := range m.companies {
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(name)) {
			return c, nil
		}
	}
	return nil, domain.ErrCompanyNotFound
}

// MockDirectoryRepository is a mock implementation of usecase.DirectoryRepository.
type MockDirectoryRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
	journals map[string]*domain.Journal

	FindAccountByCodeFunc func(ctx context.Context, companyID, code string) (*domain.Account, error)
	GetJournalFunc        func(ctx context.Context, id string) (*domain.Journal, error)
}

func NewMockDirectoryRepository() *MockDirectoryRepository {
	return &MockDirectoryRepository{
		accounts: make(map[string]*domain.Account),
		journals: make(map[string]*domain.Journal),
	}
}

func (m *MockDirectoryRepository) AddAccount(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
}

func (m *MockDirectoryRepository) AddJournal(journal *domain.Journal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.journals[journal.ID] = journal
}

func (m *MockDirectoryRepository) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.accounts[id]; ok {
		return a, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockDirectoryRepository) FindAccountByCode(ctx context.Context, companyID, code string) (*domain.Account, error) {
	if m.FindAccountByCodeFunc != nil {
		return m.FindAccountByCodeFunc(ctx, companyID, code)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.accounts {
		if a.CompanyID == companyID && a.Code == code {
			return a, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockDirectoryRepository) FindAccountByNameSubstring(ctx context.Context, companyID, text string) (*domain.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	needle := strings.ToLower(text)
	for _, a := range m.accounts {
		if a.CompanyID == companyID && strings.Contains(strings.ToLower(a.Name), needle) {
			return a, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockDirectoryRepository) GetJournal(ctx context.Context, id string) (*domain.Journal, error) {
	if m.GetJournalFunc != nil {
		return m.GetJournalFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if j, ok := m.journals[id]; ok {
		return j, nil
	}
	return nil, domain.ErrJournalNotFound
}

func (m *MockDirectoryRepository) FindJournalByCode(ctx context.Context, companyID, code string) (*domain.Journal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, j := range m.journals {
		if j.CompanyID == companyID && j.Code == code {
			return j, nil
		}
	}
	return nil, domain.ErrJournalNotFound
}

func (m *MockDirectoryRepository) FindJournalByType(ctx context.Context, companyID string, journalType domain.JournalType) (*domain.Journal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, j := range m.journals {
		if j.CompanyID == companyID && j.Type == journalType {
			return j, nil
		}
	}
	return nil, domain.ErrJournalNotFound
}

// MockLedgerStore is a mock implementation of usecase.LedgerStore. Entries
// created under a transaction become visible only once that transaction is
// committed, mirroring the rollback semantics of the real store.
type MockLedgerStore struct {
	mu      sync.RWMutex
	entries map[string]*domain.JournalEntry
	entryTx map[string]usecase.Transaction

	CreateEntryFunc func(ctx context.Context, tx usecase.Transaction, entry *domain.JournalEntry) error
	PostFunc        func(ctx context.Context, tx usecase.Transaction, entryID string) error
}

func NewMockLedgerStore() *MockLedgerStore {
	return &MockLedgerStore{
		entries: make(map[string]*domain.JournalEntry),
		entryTx: make(map[string]usecase.Transaction),
	}
}

func (m *MockLedgerStore) Add(entry *domain.JournalEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.ID] = entry
}

func (m *MockLedgerStore) CreateEntry(ctx context.Context, tx usecase.Transaction, entry *domain.JournalEntry) error {
	if m.CreateEntryFunc != nil {
		return m.CreateEntryFunc(ctx, tx, entry)
	}
	if err := entry.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.ID] = entry
	m.entryTx[entry.ID] = tx
	return nil
}

func (m *MockLedgerStore) Post(ctx context.Context, tx usecase.Transaction, entryID string) error {
	if m.PostFunc != nil {
		return m.PostFunc(ctx, tx, entryID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[entryID]
	if !ok {
		return domain.ErrEntryNotFound
	}
	entry.State = domain.EntryStatePosted
	return nil
}

func (m *MockLedgerStore) GetEntry(ctx context.Context, id string) (*domain.JournalEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.entries[id]; ok {
		return e, nil
	}
	return nil, domain.ErrEntryNotFound
}

func (m *MockLedgerStore) GetEntries(ctx context.Context, ids []string) ([]*domain.JournalEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entries := make([]*domain.JournalEntry, 0, len(ids))
	for _, id := range ids {
		if e, ok := m.entries[id]; ok {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// VisibleEntries returns entries whose creating transaction was committed
// (or that were seeded outside any transaction).
func (m *MockLedgerStore) VisibleEntries() []*domain.JournalEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var visible []*domain.JournalEntry
	for id, e := range m.entries {
		tx, created := m.entryTx[id]
		if !created {
			visible = append(visible, e)
			continue
		}
		if mtx, ok := tx.(*MockTransaction); ok && mtx.Committed {
			visible = append(visible, e)
		}
	}
	return visible
}

// MockScenarioRepository is a mock implementation of usecase.ScenarioRepository.
type MockScenarioRepository struct {
	mu        sync.RWMutex
	scenarios map[string]*domain.Scenario

	GetByIDFunc func(ctx context.Context, id string) (*domain.Scenario, error)
}

func NewMockScenarioRepository() *MockScenarioRepository {
	return &MockScenarioRepository{scenarios: make(map[string]*domain.Scenario)}
}

func (m *MockScenarioRepository) Add(scenario *domain.Scenario) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scenarios[scenario.ID] = scenario
}

func (m *MockScenarioRepository) Create(ctx context.Context, scenario *domain.Scenario) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scenarios[scenario.ID] = scenario
	return nil
}

func (m *MockScenarioRepository) GetByID(ctx context.Context, id string) (*domain.Scenario, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.scenarios[id]; ok {
		return s, nil
	}
	return nil, domain.ErrScenarioNotFound
}

func (m *MockScenarioRepository) List(ctx context.Context, sourceCompanyID string, activeOnly bool) ([]*domain.Scenario, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Scenario
	for _, s := range m.scenarios {
		if sourceCompanyID != "" && s.SourceCompanyID != sourceCompanyID {
			continue
		}
		if activeOnly && !s.Active {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (m *MockScenarioRepository) FindActiveBySourceCompany(ctx context.Context, sourceCompanyID string) (*domain.Scenario, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.scenarios {
		if s.Active && s.SourceCompanyID == sourceCompanyID {
			return s, nil
		}
	}
	return nil, domain.ErrScenarioNotFound
}

func (m *MockScenarioRepository) SetActive(ctx context.Context, id string, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.scenarios[id]
	if !ok {
		return domain.ErrScenarioNotFound
	}
	s.Active = active
	return nil
}

// MockAttachmentStore is a mock implementation of usecase.AttachmentStore.
type MockAttachmentStore struct {
	mu          sync.Mutex
	Attachments []*domain.Attachment

	CreateFunc func(ctx context.Context, attachment *domain.Attachment) error
}

func NewMockAttachmentStore() *MockAttachmentStore {
	return &MockAttachmentStore{}
}

func (m *MockAttachmentStore) Create(ctx context.Context, attachment *domain.Attachment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, attachment)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Attachments = append(m.Attachments, attachment)
	return nil
}

// MockReconciliationService is a mock implementation of usecase.ReconciliationService.
type MockReconciliationService struct {
	mu             sync.Mutex
	ReconcileCalls []string
	ProposeCalls   []string

	ReconcileFunc          func(ctx context.Context, bankLineID, entryLineID string) error
	ProposeCounterpartFunc func(ctx context.Context, bankLineID, entryLineID string, keepExisting bool) error
}

func NewMockReconciliationService() *MockReconciliationService {
	return &MockReconciliationService{}
}

func (m *MockReconciliationService) Reconcile(ctx context.Context, bankLineID, entryLineID string) error {
	if m.ReconcileFunc != nil {
		return m.ReconcileFunc(ctx, bankLineID, entryLineID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReconcileCalls = append(m.ReconcileCalls, bankLineID+":"+entryLineID)
	return nil
}

func (m *MockReconciliationService) ProposeCounterpart(ctx context.Context, bankLineID, entryLineID string, keepExisting bool) error {
	if m.ProposeCounterpartFunc != nil {
		return m.ProposeCounterpartFunc(ctx, bankLineID, entryLineID, keepExisting)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ProposeCalls = append(m.ProposeCalls, bankLineID+":"+entryLineID)
	return nil
}

// MockAuditRepository is a mock implementation of usecase.AuditRepository.
type MockAuditRepository struct {
	mu   sync.Mutex
	Logs []*domain.AuditLog
}

func NewMockAuditRepository() *MockAuditRepository {
	return &MockAuditRepository{}
}

func (m *MockAuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, log)
	return nil
}

func (m *MockAuditRepository) CreateTx(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error {
	return m.Create(ctx, log)
}

func (m *MockAuditRepository) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.AuditLog(nil), m.Logs...), nil
}

// MockIDGenerator is a deterministic implementation of usecase.IDGenerator.
type MockIDGenerator struct {
	mu sync.Mutex
	n  int
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (g *MockIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("id-%04d", g.n)
}
