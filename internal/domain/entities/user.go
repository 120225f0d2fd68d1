package entities

import "time"

// User is the session account shape consumed by the core. The credential
// provider behind it is opaque; ownership of reviews and favorites is
// tracked by id reference only.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Admin       bool      `json:"is_admin"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// Ref returns the creator back-reference stamped onto listings.
func (u *User) Ref() *CreatedBy {
	if u == nil {
		return nil
	}
	return &CreatedBy{ID: u.ID, Email: u.Email, Admin: u.Admin}
}
