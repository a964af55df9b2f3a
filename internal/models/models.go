package models

import "time"

// Role is the closed set of account roles. Anything else coming in over the
// wire collapses to RolePlayer via ParseRole.
type Role string

const (
	RolePlayer Role = "player"
	RoleScout  Role = "scout"
)

// ParseRole maps a free-form role string to a Role, defaulting to player.
func ParseRole(s string) Role {
	if s == string(RoleScout) {
		return RoleScout
	}
	return RolePlayer
}

// User represents a registered account. PasswordHash never leaves the server:
// the json tag excludes it from every representation.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Sport        string    `json:"sport,omitempty"`
	Location     string    `json:"location,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	Age          *int      `json:"age,omitempty"`
	VideoURL     string    `json:"videoUrl,omitempty"`
	ProfilePic   string    `json:"profilePic"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ProfileUpdate carries a partial profile update. Nil fields are left
// untouched; identity, email and the password hash are not updatable here.
type ProfileUpdate struct {
	Bio      *string
	Sport    *string
	Location *string
	VideoURL *string
	Phone    *string
	Age      *int
}

// Applicant is one entry in an opportunity's applicant list. The profile
// fields are only populated for the owning scout's view.
type Applicant struct {
	UserID    string    `json:"userId"`
	AppliedAt time.Time `json:"appliedAt"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email,omitempty"`
	Sport     string    `json:"sport,omitempty"`
	Phone     string    `json:"phone,omitempty"`
}

// Opportunity is a trial posting by a scout.
type Opportunity struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Sport       string      `json:"sport"`
	Location    string      `json:"location"`
	Description string      `json:"description"`
	Date        string      `json:"date"`
	ScoutID     string      `json:"scoutId"`
	ScoutName   string      `json:"scoutName"`
	Applicants  []Applicant `json:"applicants"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// Message is a directed text message between two users. Immutable once sent.
type Message struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender"`
	ReceiverID string    `json:"receiver"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"timestamp"`
}
