package domain

import "time"

// User represents a bot user profile keyed by chat id
type User struct {
	ChatID      int64     `db:"chat_id"`
	DisplayName string    `db:"display_name"`
	Username    string    `db:"username"`
	RealName    *string   `db:"real_name"`
	Phone       *string   `db:"phone"`
	LanguageID  *int64    `db:"language_id"`
	IsAdmin     bool      `db:"is_admin"`
	IsManager   bool      `db:"is_manager"`
	ReferrerID  *int64    `db:"referrer_id"`
	JoinedAt    time.Time `db:"joined_at"`
}

// HasLanguage reports whether the user picked a language
func (u *User) HasLanguage() bool {
	return u.LanguageID != nil
}

// HasRealName reports whether the user entered a full name
func (u *User) HasRealName() bool {
	return u.RealName != nil && *u.RealName != ""
}

// HasPhone reports whether the user shared a phone number
func (u *User) HasPhone() bool {
	return u.Phone != nil && *u.Phone != ""
}

// Role is a privilege required by a command
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
)

// HasRole reports whether the user holds the role. Admins hold every role.
func (u *User) HasRole(role Role) bool {
	if u == nil {
		return false
	}
	switch role {
	case RoleAdmin:
		return u.IsAdmin
	case RoleManager:
		return u.IsManager || u.IsAdmin
	}
	return false
}

// Step is the onboarding step a user is expected to answer
type Step string

const (
	StepLanguage Step = "awaiting_language"
	StepFullName Step = "awaiting_full_name"
	StepPhone    Step = "awaiting_phone"
	StepComplete Step = "complete"
)

// DeriveStep returns the first unfilled onboarding step.
// Precedence is fixed: language, then full name, then phone.
func DeriveStep(u *User) Step {
	switch {
	case u == nil || !u.HasLanguage():
		return StepLanguage
	case !u.HasRealName():
		return StepFullName
	case !u.HasPhone():
		return StepPhone
	}
	return StepComplete
}

// Mode tells how a dialogue ends after a valid answer
type Mode string

const (
	// ModeOnboarding saves the answer and continues with the next unfilled step
	ModeOnboarding Mode = "onboarding"
	// ModeUpdate saves the answer and returns to the main menu
	ModeUpdate Mode = "update"
)

// Conversation holds the active dialogue of a user
type Conversation struct {
	Step      Step
	Mode      Mode
	UpdatedAt time.Time
}

// Active reports whether the conversation expects input
func (c Conversation) Active() bool {
	return c.Step != "" && c.Step != StepComplete
}

// Contact is a phone number shared by a user
type Contact struct {
	UserID      int64
	PhoneNumber string
}
