package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// Profile is the developer profile attached to a user. At most one profile
// exists per user id; the invariant is enforced by read-then-write logic in
// the service layer, not by a database constraint.
//
// Experience, education and social links live in JSONB columns and are
// mutated in application code (read row, rewrite slice, write back), which
// preserves the nested-document semantics of the data model.
type Profile struct {
	ID             int64          `db:"id" json:"id"`
	UserID         int64          `db:"user_id" json:"user"`
	Company        *string        `db:"company" json:"company"`
	Website        *string        `db:"website" json:"website"`
	Location       *string        `db:"location" json:"location"`
	Status         string         `db:"status" json:"status"`
	Skills         pq.StringArray `db:"skills" json:"skills"`
	Bio            *string        `db:"bio" json:"bio"`
	GithubUsername *string        `db:"github_username" json:"github_username"`
	Social         SocialLinks    `db:"social" json:"social"`
	Experience     ExperienceList `db:"experience" json:"experience"`
	Education      EducationList  `db:"education" json:"education"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updated_at"`

	// Joined field (not in profiles table)
	Owner *UserSummary `json:"owner,omitempty"`
}

// SocialLinks maps platform names to URLs. All fields are optional.
type SocialLinks struct {
	Youtube   *string `json:"youtube,omitempty"`
	Twitter   *string `json:"twitter,omitempty"`
	Facebook  *string `json:"facebook,omitempty"`
	Instagram *string `json:"instagram,omitempty"`
	Linkedin  *string `json:"linkedin,omitempty"`
}

// Experience is one entry in the profile's work history. Dates are kept as
// opaque display strings, exactly as submitted.
type Experience struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Company     string  `json:"company"`
	Location    *string `json:"location,omitempty"`
	From        string  `json:"from"`
	To          *string `json:"to,omitempty"`
	Current     bool    `json:"current"`
	Description *string `json:"description,omitempty"`
}

// Education is one entry in the profile's education history.
type Education struct {
	ID           string  `json:"id"`
	School       string  `json:"school"`
	Degree       string  `json:"degree"`
	FieldOfStudy *string `json:"fieldofstudy,omitempty"`
	From         string  `json:"from"`
	To           *string `json:"to,omitempty"`
	Current      bool    `json:"current"`
	Description  *string `json:"description,omitempty"`
}

// ExperienceList and EducationList are JSONB-backed ordered sequences,
// newest entry first.
type ExperienceList []Experience

type EducationList []Education

// UpsertProfileRequest carries partial profile fields. Nil pointers mean the
// field was not submitted and must not overwrite the stored value.
type UpsertProfileRequest struct {
	Company        *string `json:"company"`
	Website        *string `json:"website"`
	Location       *string `json:"location"`
	Status         *string `json:"status"`
	Skills         *string `json:"skills"` // comma-separated
	Bio            *string `json:"bio"`
	GithubUsername *string `json:"githubusername"`
	Youtube        *string `json:"youtube"`
	Twitter        *string `json:"twitter"`
	Facebook       *string `json:"facebook"`
	Instagram      *string `json:"instagram"`
	Linkedin       *string `json:"linkedin"`
}

// AddExperienceRequest is the request body for adding an experience entry.
type AddExperienceRequest struct {
	Title       string  `json:"title"`
	Company     string  `json:"company"`
	Location    *string `json:"location"`
	From        string  `json:"from"`
	To          *string `json:"to"`
	Current     bool    `json:"current"`
	Description *string `json:"description"`
}

// AddEducationRequest is the request body for adding an education entry.
type AddEducationRequest struct {
	School       string  `json:"school"`
	Degree       string  `json:"degree"`
	FieldOfStudy *string `json:"fieldofstudy"`
	From         string  `json:"from"`
	To           *string `json:"to"`
	Current      bool    `json:"current"`
	Description  *string `json:"description"`
}

// Profile errors
var (
	ErrProfileNotFound = errors.New("profile not found")

	ErrStatusRequired  = errors.New("status is required")
	ErrSkillsRequired  = errors.New("skills are required")
	ErrTitleRequired   = errors.New("title is required")
	ErrCompanyRequired = errors.New("company is required")
	ErrSchoolRequired  = errors.New("school is required")
	ErrDegreeRequired  = errors.New("degree is required")
	ErrFromRequired    = errors.New("from date is required")
)

// Value / Scan implement JSONB persistence for the nested collections.

func (s SocialLinks) Value() (driver.Value, error) { return json.Marshal(s) }

func (s *SocialLinks) Scan(src interface{}) error { return scanJSONB(s, src) }

func (l ExperienceList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal(ExperienceList{})
	}
	return json.Marshal(l)
}

func (l *ExperienceList) Scan(src interface{}) error { return scanJSONB(l, src) }

func (l EducationList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal(EducationList{})
	}
	return json.Marshal(l)
}

func (l *EducationList) Scan(src interface{}) error { return scanJSONB(l, src) }

func scanJSONB(dst interface{}, src interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", src)
	}
}
