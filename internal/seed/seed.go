// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"context"
	"fmt"
	"strings"

	"devhub/internal/gravatar"
	"devhub/internal/models"
	"devhub/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DemoPassword is the plaintext password shared by all seeded accounts.
const DemoPassword = "devhub123"

// Options controls how much demo data is generated.
type Options struct {
	Users int
	Seed  int64 // non-zero makes generation deterministic
}

// Seeder builds demo users and profiles and persists them through the
// application's own repositories.
type Seeder struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	opts     Options
}

// New creates a Seeder bound to the provided Gorm DB.
func New(db *gorm.DB, opts Options) *Seeder {
	if opts.Seed != 0 {
		gofakeit.Seed(opts.Seed)
	}
	if opts.Users <= 0 {
		opts.Users = 10
	}
	return &Seeder{
		users:    repository.NewUserRepository(db),
		profiles: repository.NewProfileRepository(db),
		opts:     opts,
	}
}

// Run generates and persists the demo users with profiles.
func (s *Seeder) Run(ctx context.Context) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	for i := 0; i < s.opts.Users; i++ {
		user := s.BuildUser(string(hashed))
		if err := s.users.Create(ctx, user); err != nil {
			return fmt.Errorf("seeding user %d: %w", i, err)
		}

		profile := s.BuildProfile(user.ID)
		if err := s.profiles.Save(ctx, profile); err != nil {
			return fmt.Errorf("seeding profile for user %d: %w", user.ID, err)
		}
	}
	return nil
}

// BuildUser constructs an unsaved demo user with the given password hash.
func (s *Seeder) BuildUser(passwordHash string) *models.User {
	email := strings.ToLower(gofakeit.Email())
	return &models.User{
		Name:     gofakeit.Name(),
		Email:    email,
		Password: passwordHash,
		Avatar:   gravatar.URL(email),
	}
}

// BuildProfile constructs an unsaved demo profile for the given owner.
func (s *Seeder) BuildProfile(userID uint) *models.Profile {
	skillPool := []string{
		"Go", "JavaScript", "TypeScript", "Python", "PostgreSQL",
		"Redis", "Docker", "Kubernetes", "React", "GraphQL",
	}
	n := gofakeit.Number(2, 5)
	skills := make([]string, 0, n)
	for len(skills) < n {
		candidate := skillPool[gofakeit.Number(0, len(skillPool)-1)]
		if !contains(skills, candidate) {
			skills = append(skills, candidate)
		}
	}

	return &models.Profile{
		UserID: userID,
		Status: gofakeit.JobTitle(),
		Skills: skills,
		Social: models.SocialLinks{
			Website: gofakeit.URL(),
			Twitter: "https://twitter.com/" + gofakeit.Username(),
		},
		Experience: []models.Experience{
			{
				ID:       uuid.NewString(),
				Title:    gofakeit.JobTitle(),
				Company:  gofakeit.Company(),
				Location: gofakeit.City(),
				From:     gofakeit.Date().Format("2006-01-02"),
			},
		},
		Education: []models.Education{
			{
				ID:           uuid.NewString(),
				School:       gofakeit.Company() + " University",
				Degree:       "BSc",
				FieldOfStudy: "Computer Science",
				From:         gofakeit.Date().Format("2006-01-02"),
			},
		},
	}
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
