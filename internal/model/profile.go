package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	ID          uuid.UUID `json:"id" db:"id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	Bio         *string   `json:"bio" db:"bio"`
	Company     *string   `json:"company" db:"company"`
	Position    *string   `json:"position" db:"position"`
	Skills      []string  `json:"skills" db:"skills"`
	Interests   []string  `json:"interests" db:"interests"`
	LinkedInURL *string   `json:"linkedin_url" db:"linkedin_url"`
	TwitterURL  *string   `json:"twitter_url" db:"twitter_url"`
	WebsiteURL  *string   `json:"website_url" db:"website_url"`
	IsPublic    bool      `json:"is_public" db:"is_public"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	// join users
	FullName  *string `json:"full_name,omitempty" db:"-"`
	AvatarURL *string `json:"avatar_url,omitempty" db:"-"`
}

// Matches reports whether term (already lower-cased) appears in any searchable field.
func (p *Profile) Matches(term string) bool {
	if term == "" {
		return true
	}
	for _, field := range []*string{p.FullName, p.Company, p.Position, p.Bio} {
		if field != nil && strings.Contains(strings.ToLower(*field), term) {
			return true
		}
	}
	for _, list := range [][]string{p.Skills, p.Interests} {
		for _, v := range list {
			if strings.Contains(strings.ToLower(v), term) {
				return true
			}
		}
	}
	return false
}

type UpdateProfileParams struct {
	Bio         *string   `json:"bio"`
	Company     *string   `json:"company"`
	Position    *string   `json:"position"`
	Skills      *[]string `json:"skills"`
	Interests   *[]string `json:"interests"`
	LinkedInURL *string   `json:"linkedin_url"`
	TwitterURL  *string   `json:"twitter_url"`
	WebsiteURL  *string   `json:"website_url"`
	IsPublic    *bool     `json:"is_public"`
}
