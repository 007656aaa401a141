package entity

import "time"

// User is the account record. Password holds a bcrypt hash, never plaintext.
// Email is stored lowercased; email and username are unique.
type User struct {
	ID        string
	Name      string
	Username  string
	Email     string
	Phone     string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserSummary is the owner projection joined onto templates (no password, no phone).
type UserSummary struct {
	ID       string
	Name     string
	Username string
	Email    string
}

// Summary returns the projection of u used when joining owners onto templates.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Username: u.Username, Email: u.Email}
}
