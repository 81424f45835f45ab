package service

import (
	"context"
	"fmt"
	"sync"

	"textscan/internal/domain"
	"textscan/internal/domain/models"
	"textscan/internal/domain/repositories"
)

// fakeAccounts is an in-memory AccountRepository with the same atomicity
// guarantee as the real store: Reserve is a guarded decrement under a lock.
type fakeAccounts struct {
	mu         sync.Mutex
	accounts   map[int64]*models.Account
	reserveErr error
	balanceErr error
}

func newFakeAccounts(accounts ...*models.Account) *fakeAccounts {
	m := make(map[int64]*models.Account, len(accounts))
	for _, a := range accounts {
		m[a.ID] = a
	}
	return &fakeAccounts{accounts: m}
}

func (f *fakeAccounts) get(id int64) (*models.Account, error) {
	a, ok := f.accounts[id]
	if !ok {
		return nil, fmt.Errorf("account %d: %w", id, domain.ErrNotFound)
	}
	return a, nil
}

func (f *fakeAccounts) GetByID(_ context.Context, id int64) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, err := f.get(id)
	if err != nil {
		return nil, err
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAccounts) GetBalance(_ context.Context, id int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.balanceErr != nil {
		return 0, f.balanceErr
	}
	a, err := f.get(id)
	if err != nil {
		return 0, err
	}
	return a.Credits, nil
}

func (f *fakeAccounts) Reserve(_ context.Context, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.reserveErr != nil {
		return false, f.reserveErr
	}
	a, err := f.get(id)
	if err != nil {
		return false, err
	}
	if a.Credits <= 0 {
		return false, nil
	}
	a.Credits--
	return true, nil
}

func (f *fakeAccounts) Release(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, err := f.get(id)
	if err != nil {
		return err
	}
	a.Credits++
	return nil
}

func (f *fakeAccounts) AddCredits(_ context.Context, id int64, amount int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, err := f.get(id)
	if err != nil {
		return err
	}
	a.Credits += amount
	return nil
}

func (f *fakeAccounts) ResetCredits(_ context.Context, amount int, exempt models.Role) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var touched int64
	for _, a := range f.accounts {
		if a.Role != exempt {
			a.Credits = amount
			touched++
		}
	}
	return touched, nil
}

// fakeDocuments is an in-memory DocumentRepository.
type fakeDocuments struct {
	mu        sync.Mutex
	docs      []models.Document
	nextID    int64
	createErr error
	listErr   error
}

func (f *fakeDocuments) Create(_ context.Context, doc *models.Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	doc.ID = f.nextID
	f.docs = append(f.docs, *doc)
	return nil
}

func (f *fakeDocuments) GetByID(_ context.Context, id, accountID int64) (*models.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.docs {
		if d.ID == id && d.AccountID == accountID {
			copied := d
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("document %d: %w", id, domain.ErrNotFound)
}

func (f *fakeDocuments) ListProcessed(_ context.Context, accountID int64) ([]models.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Document
	for _, d := range f.docs {
		if d.AccountID == accountID && d.Status == models.StatusProcessed {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDocuments) UpdateStatus(_ context.Context, id int64, status models.ProcessingStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.docs {
		if f.docs[i].ID == id {
			f.docs[i].Status = status
			return nil
		}
	}
	return fmt.Errorf("document %d: %w", id, domain.ErrNotFound)
}

func (f *fakeDocuments) byID(id int64) *models.Document {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.docs {
		if f.docs[i].ID == id {
			copied := f.docs[i]
			return &copied
		}
	}
	return nil
}

func (f *fakeDocuments) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.docs)
}

// memStore is an in-memory ContentStore.
type memStore struct {
	mu       sync.Mutex
	contents map[string][]byte
	removed  []string
	saveErr  error
	next     int
}

func newMemStore() *memStore {
	return &memStore{contents: make(map[string][]byte)}
}

func (m *memStore) Save(_ context.Context, _ string, raw []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return "", m.saveErr
	}
	m.next++
	locator := fmt.Sprintf("loc-%d", m.next)
	m.contents[locator] = raw
	return locator, nil
}

func (m *memStore) Read(_ context.Context, locator string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.contents[locator]
	if !ok {
		return nil, fmt.Errorf("content %s: %w", locator, domain.ErrNotFound)
	}
	return raw, nil
}

func (m *memStore) Remove(_ context.Context, locator string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.contents, locator)
	m.removed = append(m.removed, locator)
	return nil
}

func (m *memStore) put(locator string, raw []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contents[locator] = raw
}

// fakeRequests is an in-memory CreditRequestRepository.
type fakeRequests struct {
	mu     sync.Mutex
	reqs   map[int64]*models.CreditRequest
	nextID int64
}

func newFakeRequests() *fakeRequests {
	return &fakeRequests{reqs: make(map[int64]*models.CreditRequest)}
}

func (f *fakeRequests) Create(_ context.Context, req *models.CreditRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	req.ID = f.nextID
	copied := *req
	f.reqs[req.ID] = &copied
	return nil
}

func (f *fakeRequests) GetByID(_ context.Context, id int64) (*models.CreditRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.reqs[id]
	if !ok {
		return nil, fmt.Errorf("credit request %d: %w", id, domain.ErrNotFound)
	}
	copied := *req
	return &copied, nil
}

func (f *fakeRequests) ListPending(_ context.Context) ([]models.CreditRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.CreditRequest
	for _, req := range f.reqs {
		if req.Status == models.RequestPending {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (f *fakeRequests) UpdateDecision(_ context.Context, id int64, status models.RequestStatus, processedBy int64, adminResponse *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.reqs[id]
	if !ok {
		return fmt.Errorf("credit request %d: %w", id, domain.ErrNotFound)
	}
	if req.Status != models.RequestPending {
		return &domain.ConflictError{Message: "already processed"}
	}
	req.Status = status
	req.ProcessedBy = &processedBy
	req.AdminResponse = adminResponse
	return nil
}

// fakeTxManager runs the function directly, without a database.
type fakeTxManager struct {
	err error
}

func (f *fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	if f.err != nil {
		return f.err
	}
	return fn(ctx)
}
