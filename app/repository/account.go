package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/vibast-solutions/ms-go-skillbase/app/entity"
)

const accountColumns = `id, email, password_hash, role, learner_id, instructor_id, admin_id, is_verified,
		       sign_in_failure_count, sign_in_locked_until,
		       verification_token, verification_token_expires_at, verification_emails_sent,
		       reset_token, reset_token_expires_at, reset_emails_sent, created_at, updated_at`

type AccountRepository struct {
	db DBTX
}

func NewAccountRepository(db DBTX) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, account *entity.Account) error {
	query := `
		INSERT INTO accounts (id, email, password_hash, role, learner_id, instructor_id, admin_id, is_verified,
			sign_in_failure_count, verification_emails_sent, reset_emails_sent, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		account.ID,
		account.Email,
		account.PasswordHash,
		string(account.Role),
		account.LearnerID,
		account.InstructorID,
		account.AdminID,
		account.IsVerified,
		account.SignInFailureCount,
		account.VerificationEmailsSent,
		account.ResetEmailsSent,
		account.CreatedAt,
		account.UpdatedAt,
	)
	return err
}

// CreateWithProfile inserts the profile and the account referencing it in one transaction.
func (r *AccountRepository) CreateWithProfile(ctx context.Context, account *entity.Account, profile *entity.Profile) error {
	return inTx(ctx, r.db, func(tx DBTX) error {
		if err := NewProfileRepository(tx).Create(ctx, profile); err != nil {
			return err
		}
		return NewAccountRepository(tx).Create(ctx, account)
	})
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*entity.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts WHERE id = ?
	`
	return r.findOne(ctx, query, id)
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts WHERE email = ?
	`
	return r.findOne(ctx, query, email)
}

// FindByProfile returns the account owning the given profile.
func (r *AccountRepository) FindByProfile(ctx context.Context, kind entity.ProfileKind, profileID string) (*entity.Account, error) {
	column, err := profileReferenceColumn(kind)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ` + accountColumns + `
		FROM accounts WHERE ` + column + ` = ?
	`
	return r.findOne(ctx, query, profileID)
}

func (r *AccountRepository) Update(ctx context.Context, account *entity.Account) error {
	query := `
		UPDATE accounts SET
			email = ?,
			password_hash = ?,
			is_verified = ?,
			sign_in_failure_count = ?,
			sign_in_locked_until = ?,
			verification_token = ?,
			verification_token_expires_at = ?,
			verification_emails_sent = ?,
			reset_token = ?,
			reset_token_expires_at = ?,
			reset_emails_sent = ?,
			updated_at = ?
		WHERE id = ?
	`
	account.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query,
		account.Email,
		account.PasswordHash,
		account.IsVerified,
		account.SignInFailureCount,
		account.SignInLockedUntil,
		account.VerificationToken,
		account.VerificationTokenExpiresAt,
		account.VerificationEmailsSent,
		account.ResetToken,
		account.ResetTokenExpiresAt,
		account.ResetEmailsSent,
		account.UpdatedAt,
		account.ID,
	)
	return err
}

// DeleteWithProfile removes the account and the profile it references in one transaction.
func (r *AccountRepository) DeleteWithProfile(ctx context.Context, account *entity.Account) error {
	kind, err := entity.ProfileKindForRole(account.Role)
	if err != nil {
		return err
	}

	return inTx(ctx, r.db, func(tx DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, account.ID); err != nil {
			return err
		}
		_, err := NewProfileRepository(tx).Delete(ctx, kind, account.ProfileID())
		return err
	})
}

func (r *AccountRepository) findOne(ctx context.Context, query string, args ...interface{}) (*entity.Account, error) {
	row := r.db.QueryRowContext(ctx, query, args...)
	account, err := scanAccount(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return account, nil
}

func scanAccount(scan rowScanner) (*entity.Account, error) {
	account := &entity.Account{}
	var role string
	if err := scan(
		&account.ID,
		&account.Email,
		&account.PasswordHash,
		&role,
		&account.LearnerID,
		&account.InstructorID,
		&account.AdminID,
		&account.IsVerified,
		&account.SignInFailureCount,
		&account.SignInLockedUntil,
		&account.VerificationToken,
		&account.VerificationTokenExpiresAt,
		&account.VerificationEmailsSent,
		&account.ResetToken,
		&account.ResetTokenExpiresAt,
		&account.ResetEmailsSent,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return nil, err
	}
	account.Role = entity.Role(role)
	return account, nil
}

func profileReferenceColumn(kind entity.ProfileKind) (string, error) {
	switch kind {
	case entity.ProfileKindLearner:
		return "learner_id", nil
	case entity.ProfileKindInstructor:
		return "instructor_id", nil
	case entity.ProfileKindAdmin:
		return "admin_id", nil
	}
	return "", entity.ErrUnknownRole
}
