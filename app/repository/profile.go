package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/vibast-solutions/ms-go-skillbase/app/entity"
)

// ProfileRepository stores learners, instructors and admins, one table per kind.
type ProfileRepository struct {
	db DBTX
}

func NewProfileRepository(db DBTX) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func profileTable(kind entity.ProfileKind) (string, error) {
	switch kind {
	case entity.ProfileKindLearner:
		return "learners", nil
	case entity.ProfileKindInstructor:
		return "instructors", nil
	case entity.ProfileKindAdmin:
		return "admins", nil
	}
	return "", entity.ErrUnknownRole
}

func (r *ProfileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	table, err := profileTable(profile.Kind)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO ` + table + ` (id, name, email, image, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		profile.ID,
		profile.Name,
		profile.Email,
		profile.Image,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	return err
}

func (r *ProfileRepository) FindByID(ctx context.Context, kind entity.ProfileKind, id string) (*entity.Profile, error) {
	table, err := profileTable(kind)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, email, image, created_at, updated_at
		FROM ` + table + ` WHERE id = ?
	`
	row := r.db.QueryRowContext(ctx, query, id)
	profile, err := scanProfile(kind, row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return profile, nil
}

func (r *ProfileRepository) FindAll(ctx context.Context, kind entity.ProfileKind) ([]*entity.Profile, error) {
	table, err := profileTable(kind)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, email, image, created_at, updated_at
		FROM ` + table + ` ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := make([]*entity.Profile, 0)
	for rows.Next() {
		profile, err := scanProfile(kind, rows.Scan)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}

func (r *ProfileRepository) Update(ctx context.Context, profile *entity.Profile) error {
	table, err := profileTable(profile.Kind)
	if err != nil {
		return err
	}

	query := `
		UPDATE ` + table + ` SET
			name = ?,
			image = ?,
			updated_at = ?
		WHERE id = ?
	`
	profile.UpdatedAt = time.Now()
	_, err = r.db.ExecContext(ctx, query, profile.Name, profile.Image, profile.UpdatedAt, profile.ID)
	return err
}

// Delete removes a profile and returns the number of affected rows.
func (r *ProfileRepository) Delete(ctx context.Context, kind entity.ProfileKind, id string) (int64, error) {
	table, err := profileTable(kind)
	if err != nil {
		return 0, err
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func scanProfile(kind entity.ProfileKind, scan rowScanner) (*entity.Profile, error) {
	profile := &entity.Profile{Kind: kind}
	if err := scan(
		&profile.ID,
		&profile.Name,
		&profile.Email,
		&profile.Image,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return profile, nil
}
