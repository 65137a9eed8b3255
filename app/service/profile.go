package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/vibast-solutions/ms-go-skillbase/app/dto"
	"github.com/vibast-solutions/ms-go-skillbase/app/entity"
	"github.com/vibast-solutions/ms-go-skillbase/app/types"

	"github.com/sirupsen/logrus"
)

type profileRepository interface {
	FindByID(ctx context.Context, kind entity.ProfileKind, id string) (*entity.Profile, error)
	FindAll(ctx context.Context, kind entity.ProfileKind) ([]*entity.Profile, error)
	Update(ctx context.Context, profile *entity.Profile) error
}

type profileOwnerRepository interface {
	FindByProfile(ctx context.Context, kind entity.ProfileKind, profileID string) (*entity.Account, error)
	DeleteWithProfile(ctx context.Context, account *entity.Account) error
}

type mediaUploader interface {
	Upload(ctx context.Context, upload *dto.Upload, allowed ...string) (string, string, error)
}

type ProfileService interface {
	List(ctx context.Context, kind entity.ProfileKind) (*dto.ProfileList, error)
	Update(ctx context.Context, actor *Claims, kind entity.ProfileKind, id string, req *types.UpdateProfileRequest) (*entity.Profile, error)
	Delete(ctx context.Context, actor *Claims, kind entity.ProfileKind, id string) error
}

type profileService struct {
	profiles profileRepository
	accounts profileOwnerRepository
	media    mediaUploader
	clock    Clock
}

func NewProfileService(profiles profileRepository, accounts profileOwnerRepository, media mediaUploader, clock Clock) ProfileService {
	if clock == nil {
		clock = time.Now
	}
	return &profileService{profiles: profiles, accounts: accounts, media: media, clock: clock}
}

func (s *profileService) List(ctx context.Context, kind entity.ProfileKind) (*dto.ProfileList, error) {
	profiles, err := s.profiles.FindAll(ctx, kind)
	if err != nil {
		return nil, err
	}
	return &dto.ProfileList{Profiles: profiles, Total: len(profiles)}, nil
}

func (s *profileService) Update(ctx context.Context, actor *Claims, kind entity.ProfileKind, id string, req *types.UpdateProfileRequest) (*entity.Profile, error) {
	if !canManageProfile(actor, kind, id) {
		return nil, ErrPermissionDenied
	}

	profile, err := s.profiles.FindByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	if req.Name != nil {
		profile.Name = *req.Name
	}
	if req.Image != nil {
		url, _, err := s.media.Upload(ctx, req.Image, FolderImages)
		if err != nil {
			return nil, err
		}
		profile.Image = sql.NullString{String: url, Valid: true}
	}

	profile.UpdatedAt = s.clock()
	if err = s.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Delete removes the profile together with the account that owns it.
func (s *profileService) Delete(ctx context.Context, actor *Claims, kind entity.ProfileKind, id string) error {
	if !canManageProfile(actor, kind, id) {
		return ErrPermissionDenied
	}

	account, err := s.accounts.FindByProfile(ctx, kind, id)
	if err != nil {
		return err
	}
	if account == nil {
		return ErrProfileNotFound
	}

	if err = s.accounts.DeleteWithProfile(ctx, account); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"account_id": account.ID,
		"profile_id": id,
		"kind":       kind.String(),
	}).Info("Profile deleted")
	return nil
}

func canManageProfile(actor *Claims, kind entity.ProfileKind, id string) bool {
	if actor == nil {
		return false
	}
	if actor.Role == entity.RoleAdmin {
		return true
	}
	return actor.Role == kind.Role() && actor.ProfileID == id
}
