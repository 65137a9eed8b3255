package service

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"fmt"
	"time"

	"github.com/vibast-solutions/ms-go-skillbase/app/dto"
	"github.com/vibast-solutions/ms-go-skillbase/app/entity"
	"github.com/vibast-solutions/ms-go-skillbase/app/notification"
	"github.com/vibast-solutions/ms-go-skillbase/app/repository"
	"github.com/vibast-solutions/ms-go-skillbase/app/types"
	"github.com/vibast-solutions/ms-go-skillbase/config"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type accountRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Account, error)
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)
	CreateWithProfile(ctx context.Context, account *entity.Account, profile *entity.Profile) error
	Update(ctx context.Context, account *entity.Account) error
}

type profileFinder interface {
	FindByID(ctx context.Context, kind entity.ProfileKind, id string) (*entity.Profile, error)
}

type accountNotifier interface {
	SendVerificationEmail(ctx context.Context, to notification.Recipient, link string) error
	SendPasswordResetEmail(ctx context.Context, to notification.Recipient, link string) error
}

type sessionSigner interface {
	Sign(claims Claims, ttl time.Duration) (string, time.Time, error)
}

type AccountSecurityService interface {
	Signup(ctx context.Context, req *types.SignupRequest) (*dto.SignupResult, error)
	SignIn(ctx context.Context, req *types.SignInRequest) (*dto.SessionResult, error)
	IssueVerificationEmail(ctx context.Context, email string) error
	VerifyEmail(ctx context.Context, req *types.VerifyEmailRequest) (*dto.SessionResult, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req *types.ResetPasswordRequest) (*dto.SessionResult, error)
	CreateAdmin(ctx context.Context, email, name, password string) (*dto.SignupResult, error)
}

type AccountSecurityServiceOption func(*accountSecurityService)

type accountSecurityService struct {
	accounts accountRepository
	profiles profileFinder
	notifier accountNotifier
	tokens   sessionSigner
	cfg      *config.Config
	clock    Clock
}

func NewAccountSecurityService(
	accounts accountRepository,
	profiles profileFinder,
	notifier accountNotifier,
	tokens sessionSigner,
	cfg *config.Config,
	opts ...AccountSecurityServiceOption,
) AccountSecurityService {
	svc := &accountSecurityService{
		accounts: accounts,
		profiles: profiles,
		notifier: notifier,
		tokens:   tokens,
		cfg:      cfg,
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func WithClock(clock Clock) AccountSecurityServiceOption {
	return func(s *accountSecurityService) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func (s *accountSecurityService) Signup(ctx context.Context, req *types.SignupRequest) (*dto.SignupResult, error) {
	result, err := s.createAccount(ctx, req.Email, req.Name, req.Password, entity.Role(req.Role), false)
	if err != nil {
		return nil, err
	}

	if err = s.issueVerification(ctx, result.Account, result.Profile.Name); err != nil {
		logrus.WithError(err).WithField("account_id", result.Account.ID).Warn("Verification email not sent after signup")
		return result, nil
	}

	result.VerificationEmailSent = true
	return result, nil
}

// CreateAdmin registers an already verified admin account without sending email.
func (s *accountSecurityService) CreateAdmin(ctx context.Context, email, name, password string) (*dto.SignupResult, error) {
	if err := s.cfg.Password.Policy.Validate(password); err != nil {
		return nil, err
	}
	return s.createAccount(ctx, email, name, password, entity.RoleAdmin, true)
}

func (s *accountSecurityService) createAccount(ctx context.Context, email, name, password string, role entity.Role, verified bool) (*dto.SignupResult, error) {
	email = NormalizeEmail(email)

	kind, err := entity.ProfileKindForRole(role)
	if err != nil {
		return nil, err
	}

	existing, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailRegistered
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost())
	if err != nil {
		return nil, err
	}

	now := s.clock()
	profile := &entity.Profile{
		ID:        uuid.New().String(),
		Kind:      kind,
		Name:      name,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	account := &entity.Account{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         role,
		IsVerified:   verified,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	account.SetProfileReference(kind, profile.ID)

	if err = s.accounts.CreateWithProfile(ctx, account, profile); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrEmailRegistered
		}
		return nil, err
	}

	return &dto.SignupResult{Account: account, Profile: profile}, nil
}

func (s *accountSecurityService) IssueVerificationEmail(ctx context.Context, email string) error {
	account, err := s.accounts.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return err
	}
	if account == nil {
		return ErrUnknownEmail
	}
	if account.IsVerified {
		return ErrAlreadyVerified
	}

	return s.issueVerification(ctx, account, s.recipientName(ctx, account))
}

func (s *accountSecurityService) issueVerification(ctx context.Context, account *entity.Account, name string) error {
	if account.VerificationEmailsSent >= s.cfg.Tokens.MaxEmailsSent {
		return ErrTooManyEmails
	}

	token, err := NewOpaqueToken()
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/verify-email/%s/%s", s.cfg.App.FrontendURL, token, account.ID)
	recipient := notification.Recipient{Email: account.Email, Name: name}
	if err = s.notifier.SendVerificationEmail(ctx, recipient, link); err != nil {
		return fmt.Errorf("%w: %v", ErrEmailDelivery, err)
	}

	account.VerificationToken = sql.NullString{String: token, Valid: true}
	account.VerificationTokenExpiresAt = sql.NullTime{Time: s.clock().Add(s.cfg.Tokens.VerificationTTL), Valid: true}
	account.VerificationEmailsSent++

	return s.accounts.Update(ctx, account)
}

func (s *accountSecurityService) VerifyEmail(ctx context.Context, req *types.VerifyEmailRequest) (*dto.SessionResult, error) {
	account, err := s.accounts.FindByID(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	if isExpired(account.VerificationTokenExpiresAt, s.clock()) {
		return nil, ErrTokenExpired
	}
	if !tokenMatches(account.VerificationToken, req.Token) || account.VerificationEmailsSent == 0 {
		return nil, ErrInvalidToken
	}

	account.IsVerified = true
	account.ClearVerificationRequest()
	if err = s.accounts.Update(ctx, account); err != nil {
		return nil, err
	}

	return s.session(ctx, account, s.cfg.JWT.VerifiedTTL)
}

// SignIn checks the password before the lock so that wrong passwords keep extending
// the lockout while it is active.
func (s *accountSecurityService) SignIn(ctx context.Context, req *types.SignInRequest) (*dto.SessionResult, error) {
	account, err := s.accounts.FindByEmail(ctx, NormalizeEmail(req.Email))
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrInvalidCredentials
	}

	now := s.clock()
	if err = bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		account.SignInFailureCount++
		if account.SignInFailureCount < s.cfg.Lockout.MaxFailures {
			if err = s.accounts.Update(ctx, account); err != nil {
				return nil, err
			}
			return nil, ErrInvalidCredentials
		}

		account.SignInLockedUntil = sql.NullTime{Time: now.Add(s.cfg.Lockout.Duration), Valid: true}
		if err = s.accounts.Update(ctx, account); err != nil {
			return nil, err
		}
		logrus.WithField("account_id", account.ID).Warn("Sign-in locked after repeated failures")
		return nil, ErrSignInLocked
	}

	if account.IsSignInLocked(now) {
		return nil, ErrSignInLocked
	}

	if account.SignInFailureCount > 0 || account.SignInLockedUntil.Valid {
		account.ClearSignInFailures()
		if err = s.accounts.Update(ctx, account); err != nil {
			return nil, err
		}
	}

	return s.session(ctx, account, s.cfg.JWT.SignInTTL)
}

func (s *accountSecurityService) ForgotPassword(ctx context.Context, email string) error {
	account, err := s.accounts.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return err
	}
	if account == nil {
		return ErrUnknownEmail
	}
	if account.ResetEmailsSent >= s.cfg.Tokens.MaxEmailsSent {
		return ErrTooManyEmails
	}

	token, err := NewOpaqueToken()
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/reset-password/%s/%s", s.cfg.App.FrontendURL, token, account.ID)
	recipient := notification.Recipient{Email: account.Email, Name: s.recipientName(ctx, account)}
	if err = s.notifier.SendPasswordResetEmail(ctx, recipient, link); err != nil {
		return fmt.Errorf("%w: %v", ErrEmailDelivery, err)
	}

	account.ResetToken = sql.NullString{String: token, Valid: true}
	account.ResetTokenExpiresAt = sql.NullTime{Time: s.clock().Add(s.cfg.Tokens.ResetTTL), Valid: true}
	account.ResetEmailsSent++

	return s.accounts.Update(ctx, account)
}

func (s *accountSecurityService) ResetPassword(ctx context.Context, req *types.ResetPasswordRequest) (*dto.SessionResult, error) {
	account, err := s.accounts.FindByID(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	if isExpired(account.ResetTokenExpiresAt, s.clock()) {
		return nil, ErrTokenExpired
	}
	if !tokenMatches(account.ResetToken, req.Token) || account.ResetEmailsSent == 0 {
		return nil, ErrInvalidToken
	}
	if req.NewPassword != req.ConfirmPassword {
		return nil, ErrPasswordConfirmation
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.NewPassword)) == nil {
		return nil, ErrPasswordReused
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.bcryptCost())
	if err != nil {
		return nil, err
	}

	account.PasswordHash = string(hashedPassword)
	account.ClearResetRequest()
	if err = s.accounts.Update(ctx, account); err != nil {
		return nil, err
	}

	return s.session(ctx, account, s.cfg.JWT.VerifiedTTL)
}

func (s *accountSecurityService) session(ctx context.Context, account *entity.Account, ttl time.Duration) (*dto.SessionResult, error) {
	token, expiresAt, err := s.tokens.Sign(NewClaims(account), ttl)
	if err != nil {
		return nil, err
	}

	return &dto.SessionResult{
		Token:     token,
		ExpiresAt: expiresAt,
		Account:   account,
		Profile:   s.profile(ctx, account),
	}, nil
}

func (s *accountSecurityService) profile(ctx context.Context, account *entity.Account) *entity.Profile {
	kind, err := entity.ProfileKindForRole(account.Role)
	if err != nil {
		return nil
	}
	profile, err := s.profiles.FindByID(ctx, kind, account.ProfileID())
	if err != nil {
		logrus.WithError(err).WithField("account_id", account.ID).Error("Failed to load profile")
		return nil
	}
	return profile
}

func (s *accountSecurityService) recipientName(ctx context.Context, account *entity.Account) string {
	if profile := s.profile(ctx, account); profile != nil {
		return profile.Name
	}
	return ""
}

func (s *accountSecurityService) bcryptCost() int {
	if s.cfg.Password.BcryptCost < bcrypt.MinCost {
		return bcrypt.DefaultCost
	}
	return s.cfg.Password.BcryptCost
}

// isExpired treats a missing expiry as not expired; the token check rejects it afterwards.
func isExpired(expiresAt sql.NullTime, now time.Time) bool {
	return expiresAt.Valid && expiresAt.Time.Before(now)
}

func tokenMatches(stored sql.NullString, candidate string) bool {
	if !stored.Valid || candidate == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored.String), []byte(candidate)) == 1
}
