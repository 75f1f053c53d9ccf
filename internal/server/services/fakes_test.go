package services

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/infixtech/ixtportal/internal/common"
	"github.com/infixtech/ixtportal/internal/cryptox"
	"github.com/infixtech/ixtportal/internal/dbx"
	"github.com/infixtech/ixtportal/internal/logging"
	"github.com/infixtech/ixtportal/internal/server/config"
	"github.com/infixtech/ixtportal/internal/server/models"
	"github.com/infixtech/ixtportal/internal/server/repositories/accounts"
	"github.com/infixtech/ixtportal/internal/server/repositories/activitylogs"
	"github.com/infixtech/ixtportal/internal/server/repositories/refreshtokens"
)

// --- accounts ---

type memAccounts struct {
	mu     sync.Mutex
	byID   map[string]*models.Account
	nextID int

	takeAllIDs bool  // CustomIDExists always answers true
	existsErr  error // CustomIDExists fails
	getErr     error // GetByID/GetByEmail fail with a non-NotFound error
	createErr  error
	updateErr  error

	existsCalls int
}

func newMemAccounts() *memAccounts {
	return &memAccounts{byID: map[string]*models.Account{}}
}

func (m *memAccounts) Create(_ context.Context, a *models.Account) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return nil, m.createErr
	}
	for _, existing := range m.byID {
		if existing.Email == a.Email {
			return nil, common.ErrEmailTaken
		}
	}
	m.nextID++
	a.ID = fmt.Sprintf("acc-%d", m.nextID)
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	cp := *a
	m.byID[a.ID] = &cp
	return a, nil
}

func (m *memAccounts) GetByID(_ context.Context, id string) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	a, ok := m.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memAccounts) GetByEmail(_ context.Context, email string) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, a := range m.byID {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (m *memAccounts) CustomIDExists(_ context.Context, customID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.existsCalls++
	if m.existsErr != nil {
		return false, m.existsErr
	}
	if m.takeAllIDs {
		return true, nil
	}
	for _, a := range m.byID {
		if a.CustomID == customID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memAccounts) update(id string, fn func(a *models.Account)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	a, ok := m.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	fn(a)
	return nil
}

func (m *memAccounts) UpdateRole(_ context.Context, id string, role models.Role, customID string) error {
	return m.update(id, func(a *models.Account) { a.Role, a.CustomID = role, customID })
}

func (m *memAccounts) UpdatePassword(_ context.Context, id string, salt, hash []byte) error {
	return m.update(id, func(a *models.Account) { a.Salt, a.PasswordHash, a.IsFirstLogin = salt, hash, false })
}

func (m *memAccounts) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	return m.update(id, func(a *models.Account) { a.LastLoginAt = &at })
}

func (m *memAccounts) SetProfilePhoto(_ context.Context, id string, key string) error {
	return m.update(id, func(a *models.Account) { a.ProfilePhotoKey = key })
}

func (m *memAccounts) SetActive(_ context.Context, id string, active bool) error {
	return m.update(id, func(a *models.Account) { a.IsActive = active })
}

func (m *memAccounts) UpdateIdentity(_ context.Context, id, customID string, joinedAt time.Time) error {
	return m.update(id, func(a *models.Account) { a.CustomID, a.CreatedAt = customID, joinedAt })
}

func (m *memAccounts) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memAccounts) ListByRole(_ context.Context, role models.Role) ([]*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Account
	for _, a := range m.byID {
		if role == "" || a.Role == role {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- refresh tokens ---

type memRefreshTokens struct {
	mu        sync.Mutex
	tokens    map[string]*models.RefreshToken
	createErr error
}

func newMemRefreshTokens() *memRefreshTokens {
	return &memRefreshTokens{tokens: map[string]*models.RefreshToken{}}
}

func (m *memRefreshTokens) Create(_ context.Context, accountID, token string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.tokens[token] = &models.RefreshToken{AccountID: accountID, Token: token, Expires: expiresAt}
	return nil
}

func (m *memRefreshTokens) Find(_ context.Context, token string) (*models.RefreshToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rt, ok := m.tokens[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *rt
	return &cp, nil
}

func (m *memRefreshTokens) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, token)
	return nil
}

func (m *memRefreshTokens) DeleteByAccount(_ context.Context, accountID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, rt := range m.tokens {
		if rt.AccountID == accountID {
			delete(m.tokens, k)
		}
	}
	return nil
}

func (m *memRefreshTokens) countFor(accountID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, rt := range m.tokens {
		if rt.AccountID == accountID {
			n++
		}
	}
	return n
}

// --- activity logs ---

type memActivityLogs struct {
	mu        sync.Mutex
	entries   []*models.ActivityLog
	createErr error
}

func (m *memActivityLogs) Create(_ context.Context, e *models.ActivityLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	e.ID = fmt.Sprintf("log-%d", len(m.entries)+1)
	m.entries = append(m.entries, e)
	return nil
}

func (m *memActivityLogs) ListByResource(_ context.Context, resourceType, resourceID string) ([]*models.ActivityLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.ActivityLog
	for i := len(m.entries) - 1; i >= 0; i-- {
		e := m.entries[i]
		if e.ResourceType == resourceType && e.ResourceID == resourceID {
			out = append(out, e)
		}
	}
	return out, nil
}

// --- manager ---

type fakeRepoManager struct {
	accounts *memAccounts
	tokens   *memRefreshTokens
	logs     *memActivityLogs
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error    { return nil }
func (m *fakeRepoManager) Accounts(dbx.DBTX) accounts.Repository           { return m.accounts }
func (m *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository { return m.tokens }
func (m *fakeRepoManager) ActivityLogs(dbx.DBTX) activitylogs.Repository   { return m.logs }

// --- allocator ---

type stubAllocator struct {
	mu    sync.Mutex
	ids   []string
	err   error
	calls []models.Role
}

func (a *stubAllocator) Allocate(_ context.Context, role models.Role) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = append(a.calls, role)
	if a.err != nil {
		return "", a.err
	}
	if len(a.ids) == 0 {
		return role.Prefix() + "-1234", nil
	}
	id := a.ids[0]
	a.ids = a.ids[1:]
	return id, nil
}

// --- fixture ---

type fixture struct {
	db       *sql.DB
	mock     sqlmock.Sqlmock
	repos    *fakeRepoManager
	alloc    *stubAllocator
	cfg      *config.Config
	accounts *AccountService
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
		S3Region:                     "us-east-1",
		S3RootUser:                   "minioadmin",
		S3RootPassword:               "minioadmin",
		S3BaseEndpoint:               "http://127.0.0.1:9000",
		S3Bucket:                     "profiles",
		PhotoURLValidityDuration:     15 * time.Minute,
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	f := &fixture{
		db:   db,
		mock: mock,
		repos: &fakeRepoManager{
			accounts: newMemAccounts(),
			tokens:   newMemRefreshTokens(),
			logs:     &memActivityLogs{},
		},
		alloc: &stubAllocator{},
		cfg:   testConfig(),
	}
	f.accounts = NewAccountService(db, f.repos, f.alloc, f.cfg, logging.Nop())
	return f
}

// seed stores an account directly, bypassing the service.
func (f *fixture) seed(t *testing.T, role models.Role, email, password string) *models.Account {
	t.Helper()
	salt, hash := cryptox.HashPassword(password)
	a, err := f.repos.accounts.Create(context.Background(), &models.Account{
		Email:        email,
		Role:         role,
		CustomID:     fmt.Sprintf("%s-%d", role.Prefix(), 1000+len(f.repos.accounts.byID)),
		Name:         "Seeded",
		Salt:         salt,
		PasswordHash: hash,
		IsActive:     true,
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return a
}

func (f *fixture) stored(t *testing.T, id string) *models.Account {
	t.Helper()
	a, err := f.repos.accounts.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("stored %s: %v", id, err)
	}
	return a
}
