package service

import (
	"context"
	"strings"

	"devhub/internal/models"
	"devhub/internal/repository"

	"github.com/google/uuid"
)

// ProfileService implements profile document operations: upsert, reads,
// history mutation, and account deletion.
type ProfileService struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
}

// UpsertProfileInput carries the writable profile fields. Status and Skills
// are required; the rest replace their stored counterparts when provided.
type UpsertProfileInput struct {
	UserID    uint
	Status    string
	Skills    string
	Website   string
	Youtube   string
	Twitter   string
	Instagram string
	Linkedin  string
	Facebook  string
}

// ExperienceInput carries a new work-history entry.
type ExperienceInput struct {
	Title    string
	Company  string
	Location string
	From     string
	To       string
}

// EducationInput carries a new education-history entry.
type EducationInput struct {
	School       string
	Degree       string
	FieldOfStudy string
	From         string
	To           string
	Description  string
}

// NewProfileService returns a ProfileService over the given stores.
func NewProfileService(profileRepo repository.ProfileRepository, userRepo repository.UserRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo, userRepo: userRepo}
}

// GetByUserID returns the profile owned by userID.
func (s *ProfileService) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.profileRepo.GetByUserID(ctx, userID)
}

// GetAll returns every profile, newest first.
func (s *ProfileService) GetAll(ctx context.Context) ([]models.Profile, error) {
	return s.profileRepo.GetAll(ctx)
}

// Upsert creates the caller's profile or replaces its scalar and link fields
// in place. Experience and education histories are never touched here; the
// operation is keyed by the owning user, not the profile identifier.
func (s *ProfileService) Upsert(ctx context.Context, in UpsertProfileInput) (*models.Profile, error) {
	var msgs []string
	if strings.TrimSpace(in.Status) == "" {
		msgs = append(msgs, "Status is required")
	}
	if strings.TrimSpace(in.Skills) == "" {
		msgs = append(msgs, "Skills is required")
	}
	if len(msgs) > 0 {
		return nil, models.NewValidationErrors(msgs...)
	}

	social := models.SocialLinks{
		Website:   in.Website,
		Youtube:   in.Youtube,
		Twitter:   in.Twitter,
		Instagram: in.Instagram,
		Linkedin:  in.Linkedin,
		Facebook:  in.Facebook,
	}

	profile, err := s.profileRepo.GetByUserID(ctx, in.UserID)
	if err != nil {
		if !isNotFound(err) {
			return nil, err
		}
		profile = &models.Profile{UserID: in.UserID}
	}

	profile.Status = in.Status
	profile.Skills = models.ParseSkills(in.Skills)
	profile.Social = social

	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// AddExperience validates and inserts a new entry at the head of the
// experience history (most recently added first).
func (s *ProfileService) AddExperience(ctx context.Context, userID uint, in ExperienceInput) (*models.Profile, error) {
	var msgs []string
	if strings.TrimSpace(in.Title) == "" {
		msgs = append(msgs, "Title is required")
	}
	if strings.TrimSpace(in.Company) == "" {
		msgs = append(msgs, "Company is required")
	}
	if strings.TrimSpace(in.From) == "" {
		msgs = append(msgs, "From date is required")
	}
	if len(msgs) > 0 {
		return nil, models.NewValidationErrors(msgs...)
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	entry := models.Experience{
		ID:       uuid.NewString(),
		Title:    in.Title,
		Company:  in.Company,
		Location: in.Location,
		From:     in.From,
		To:       in.To,
	}
	profile.Experience = append([]models.Experience{entry}, profile.Experience...)

	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// RemoveExperience filters out the entry with the given id. An unknown id
// leaves the history unchanged and is not an error.
func (s *ProfileService) RemoveExperience(ctx context.Context, userID uint, entryID string) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := profile.Experience[:0:0]
	for _, e := range profile.Experience {
		if e.ID != entryID {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(profile.Experience) {
		return profile, nil
	}
	profile.Experience = kept

	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// AddEducation validates and inserts a new entry at the head of the
// education history.
func (s *ProfileService) AddEducation(ctx context.Context, userID uint, in EducationInput) (*models.Profile, error) {
	var msgs []string
	if strings.TrimSpace(in.School) == "" {
		msgs = append(msgs, "School is required")
	}
	if strings.TrimSpace(in.Degree) == "" {
		msgs = append(msgs, "Degree is required")
	}
	if strings.TrimSpace(in.FieldOfStudy) == "" {
		msgs = append(msgs, "Field of study is required")
	}
	if strings.TrimSpace(in.From) == "" {
		msgs = append(msgs, "From date is required")
	}
	if len(msgs) > 0 {
		return nil, models.NewValidationErrors(msgs...)
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	entry := models.Education{
		ID:           uuid.NewString(),
		School:       in.School,
		Degree:       in.Degree,
		FieldOfStudy: in.FieldOfStudy,
		From:         in.From,
		To:           in.To,
		Description:  in.Description,
	}
	profile.Education = append([]models.Education{entry}, profile.Education...)

	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// RemoveEducation filters out the entry with the given id. An unknown id
// leaves the history unchanged and is not an error.
func (s *ProfileService) RemoveEducation(ctx context.Context, userID uint, entryID string) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := profile.Education[:0:0]
	for _, e := range profile.Education {
		if e.ID != entryID {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(profile.Education) {
		return profile, nil
	}
	profile.Education = kept

	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// DeleteAccount removes the caller's profile and then the user record.
// The profile is deleted first so a crash mid-sequence can only leave a
// profile-less user, never an orphaned profile.
func (s *ProfileService) DeleteAccount(ctx context.Context, userID uint) error {
	if err := s.profileRepo.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, userID)
}

func isNotFound(err error) bool {
	appErr, ok := err.(*models.AppError)
	return ok && appErr.Code == models.CodeNotFound
}
