package user

import (
	"time"
)

// User represents a user entity in the system.
type User struct {
	ID           string `gorm:"primaryKey;type:text"`
	Name         string `gorm:"not null;type:text"`
	Email        string `gorm:"uniqueIndex;not null;type:text"`
	PasswordHash string `gorm:"column:password;not null;type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for the User entity.
func (User) TableName() string {
	return "users"
}

// Summary is the public view of a user returned to clients.
type Summary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Summary returns the public view of the user.
func (u *User) Summary() Summary {
	return Summary{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}

// Claims is the decoded claim set of a session token.
type Claims struct {
	UserID   string    `json:"user_id"`
	Expires  time.Time `json:"expires"`
	IssuedAt time.Time `json:"issued_at"`
}

// Session is a freshly issued session token together with its expiry.
type Session struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
