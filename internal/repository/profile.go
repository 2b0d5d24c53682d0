package repository

import (
	"context"
	"errors"

	"devhub/internal/cache"
	"devhub/internal/models"

	"gorm.io/gorm"
)

// ProfileRepository defines persistence operations for profile documents.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*models.Profile, error)
	GetAll(ctx context.Context) ([]models.Profile, error)
	Save(ctx context.Context, profile *models.Profile) error
	DeleteByUserID(ctx context.Context, userID uint) error
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository returns a new ProfileRepository implementation.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	key := cache.ProfileKey(userID)

	err := cache.Aside(ctx, key, &profile, cache.ProfileTTL, func() error {
		if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Profile not found")
			}
			return models.NewInternalError(err)
		}
		r.populateOwner(ctx, &profile)
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) GetAll(ctx context.Context) ([]models.Profile, error) {
	var profiles []models.Profile

	err := cache.Aside(ctx, cache.ProfileListKey(), &profiles, cache.ProfileListTTL, func() error {
		if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&profiles).Error; err != nil {
			return models.NewInternalError(err)
		}
		r.populateOwners(ctx, profiles)
		return nil
	})

	if err != nil {
		return nil, err
	}
	return profiles, nil
}

// Save writes the whole profile document. It inserts when the primary key is
// unset and replaces the row otherwise; concurrent saves of the same profile
// are last-write-wins.
func (r *profileRepository) Save(ctx context.Context, profile *models.Profile) error {
	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("profile already exists for user")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateProfile(ctx, profile.UserID)
	return nil
}

func (r *profileRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Profile{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProfile(ctx, userID)
	return nil
}

// populateOwner fills the profile's owner display fields from the users table.
// Missing owners are left nil rather than failing the read.
func (r *profileRepository) populateOwner(ctx context.Context, profile *models.Profile) {
	var user models.User
	if err := r.db.WithContext(ctx).Select("id", "name", "avatar").
		First(&user, profile.UserID).Error; err != nil {
		return
	}
	profile.Owner = &models.ProfileOwner{Name: user.Name, Avatar: user.Avatar}
}

func (r *profileRepository) populateOwners(ctx context.Context, profiles []models.Profile) {
	if len(profiles) == 0 {
		return
	}

	ids := make([]uint, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.UserID)
	}

	var users []models.User
	if err := r.db.WithContext(ctx).Select("id", "name", "avatar").
		Where("id IN ?", ids).Find(&users).Error; err != nil {
		return
	}

	byID := make(map[uint]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	for i := range profiles {
		if u, ok := byID[profiles[i].UserID]; ok {
			profiles[i].Owner = &models.ProfileOwner{Name: u.Name, Avatar: u.Avatar}
		}
	}
}
