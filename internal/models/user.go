package models

// User roles
const (
	RoleCreator    = "creator"
	RoleSubscriber = "subscriber"
	RoleAdmin      = "admin"
)

// User represents a platform account. Role is assigned at registration
// and never changes afterwards; the wallet address may be (re)bound.
type User struct {
	BaseModel

	Username     string `json:"username" gorm:"not null;size:50;uniqueIndex"`
	Email        string `json:"email" gorm:"not null;size:255;uniqueIndex"`
	Password     string `json:"-" gorm:"not null;size:100"` // bcrypt hash, never serialized
	Role         string `json:"role" gorm:"not null;size:20;index"`
	Bio          string `json:"bio" gorm:"type:text"`
	ProfileImage string `json:"profile_image" gorm:"size:500"`

	// Linked Ethereum wallet, empty until the user connects one
	WalletAddress string `json:"wallet_address" gorm:"size:42;index"`

	// Creator-configured payment notification webhook
	WebhookURL    string `json:"-" gorm:"size:500"`
	WebhookSecret string `json:"-" gorm:"size:255"`
}

// Summary is the public shape embedded in content, subscription and
// transaction responses.
type UserSummary struct {
	ID           uint   `json:"id"`
	Username     string `json:"username"`
	ProfileImage string `json:"profile_image"`
	Bio          string `json:"bio,omitempty"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:           u.ID,
		Username:     u.Username,
		ProfileImage: u.ProfileImage,
	}
}

// SummaryWithBio includes the bio, used on detail endpoints.
func (u *User) SummaryWithBio() UserSummary {
	s := u.Summary()
	s.Bio = u.Bio
	return s
}

func (u *User) IsCreator() bool {
	return u.Role == RoleCreator
}

// ValidRole reports whether role is one of the assignable roles.
func ValidRole(role string) bool {
	switch role {
	case RoleCreator, RoleSubscriber, RoleAdmin:
		return true
	}
	return false
}
