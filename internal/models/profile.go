package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Experience is a single work-history entry inside a profile. Entries are
// ordered most-recent-first; the ID is assigned when the entry is inserted.
type Experience struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location,omitempty"`
	From     string `json:"from"`
	To       string `json:"to,omitempty"`
}

// Education is a single education-history entry inside a profile. Same
// ordering and identifier semantics as Experience.
type Education struct {
	ID           string `json:"id"`
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to,omitempty"`
	Description  string `json:"description,omitempty"`
}

// SocialLinks holds the optional social profile URLs.
type SocialLinks struct {
	Website   string `json:"website,omitempty"`
	Youtube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
}

// Profile is the developer profile document owned by exactly one user.
// The list fields are stored as JSON documents on the row so that a profile
// write is a single-row operation (last write wins on concurrent upserts),
// and list ordering is exactly what the application stored.
type Profile struct {
	ID         uint         `gorm:"primaryKey" json:"id"`
	UserID     uint         `gorm:"uniqueIndex;not null" json:"user_id"`
	Status     string       `gorm:"not null" json:"status"`
	Skills     []string     `gorm:"serializer:json" json:"skills"`
	Social     SocialLinks  `gorm:"serializer:json" json:"social"`
	Experience []Experience `gorm:"serializer:json" json:"experience"`
	Education  []Education  `gorm:"serializer:json" json:"education"`
	// Owner display fields are populated on reads from the owning user row,
	// mirroring a document-store "populate" of name and avatar.
	Owner     *ProfileOwner  `gorm:"-" json:"user,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// ProfileOwner is the subset of the owning user exposed on profile reads.
type ProfileOwner struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// ParseSkills normalizes a comma-delimited skills string into an ordered
// slice with surrounding whitespace trimmed. Empty segments are dropped.
func ParseSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}
