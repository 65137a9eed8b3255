package service_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vibast-solutions/ms-go-skillbase/app/entity"
	"github.com/vibast-solutions/ms-go-skillbase/app/notification"
	"github.com/vibast-solutions/ms-go-skillbase/config"

	"golang.org/x/crypto/bcrypt"
)

const testFrontendURL = "https://skillbase.test"

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:      "test-secret",
			SignInTTL:   time.Hour,
			VerifiedTTL: 8 * time.Hour,
		},
		Tokens: config.TokenConfig{
			VerificationTTL: time.Hour,
			ResetTTL:        time.Hour,
			MaxEmailsSent:   5,
		},
		Password: config.PasswordConfig{
			Policy: config.PasswordPolicy{
				MinLength:        8,
				MaxLength:        20,
				RequireUppercase: true,
				RequireLowercase: true,
				RequireNumber:    true,
				RequireSpecial:   true,
			},
			BcryptCost: bcrypt.MinCost,
		},
		Lockout: config.LockoutConfig{
			MaxFailures: 5,
			Duration:    time.Hour,
		},
		App: config.AppConfig{FrontendURL: testFrontendURL},
	}
}

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// fakeAccountStore keeps copies so that unsaved mutations are not visible to later reads.
type fakeAccountStore struct {
	mu        sync.Mutex
	accounts  map[string]entity.Account
	profiles  map[string]entity.Profile
	updates   int
	createErr error
	updateErr error
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{
		accounts: map[string]entity.Account{},
		profiles: map[string]entity.Profile{},
	}
}

func (s *fakeAccountStore) FindByID(_ context.Context, id string) (*entity.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[id]
	if !ok {
		return nil, nil
	}
	return &account, nil
}

func (s *fakeAccountStore) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, account := range s.accounts {
		if account.Email == email {
			found := account
			return &found, nil
		}
	}
	return nil, nil
}

func (s *fakeAccountStore) FindByProfile(_ context.Context, kind entity.ProfileKind, profileID string) (*entity.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, account := range s.accounts {
		if account.Role == kind.Role() && account.ProfileID() == profileID {
			found := account
			return &found, nil
		}
	}
	return nil, nil
}

func (s *fakeAccountStore) CreateWithProfile(_ context.Context, account *entity.Account, profile *entity.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	s.accounts[account.ID] = *account
	s.profiles[profile.ID] = *profile
	return nil
}

func (s *fakeAccountStore) Update(_ context.Context, account *entity.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updates++
	s.accounts[account.ID] = *account
	return nil
}

func (s *fakeAccountStore) DeleteWithProfile(_ context.Context, account *entity.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.accounts, account.ID)
	delete(s.profiles, account.ProfileID())
	return nil
}

func (s *fakeAccountStore) FindProfile(_ context.Context, kind entity.ProfileKind, id string) (*entity.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[id]
	if !ok || profile.Kind != kind {
		return nil, nil
	}
	return &profile, nil
}

func (s *fakeAccountStore) stored(id string) entity.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accounts[id]
}

// profileView adapts the store to the profile lookup used by the account service.
type profileView struct {
	store *fakeAccountStore
}

func (p profileView) FindByID(ctx context.Context, kind entity.ProfileKind, id string) (*entity.Profile, error) {
	return p.store.FindProfile(ctx, kind, id)
}

type sentEmail struct {
	kind string
	to   notification.Recipient
	link string
}

type fakeNotifier struct {
	sent []sentEmail
	err  error
}

var errSMTPDown = errors.New("smtp down")

func (n *fakeNotifier) SendVerificationEmail(_ context.Context, to notification.Recipient, link string) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, sentEmail{kind: "verify", to: to, link: link})
	return nil
}

func (n *fakeNotifier) SendPasswordResetEmail(_ context.Context, to notification.Recipient, link string) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, sentEmail{kind: "reset", to: to, link: link})
	return nil
}

func (n *fakeNotifier) last() sentEmail {
	return n.sent[len(n.sent)-1]
}
