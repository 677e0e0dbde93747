package models

import "time"

// Role is the closed set of roles a user can hold. Authorization decisions
// switch on these constants rather than comparing free-form strings.
type Role string

const (
	RoleEditor   Role = "editor"
	RoleAuthor   Role = "author"
	RoleReviewer Role = "reviewer"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleEditor, RoleAuthor, RoleReviewer:
		return true
	}
	return false
}

type User struct {
	UserID    string     `gorm:"primaryKey;column:user_id" json:"user_id"`
	UserFname string     `gorm:"column:user_fname" json:"user_fname"`
	UserLname string     `gorm:"column:user_lname" json:"user_lname"`
	Email     string     `gorm:"column:email;unique" json:"email"`
	Password  string     `gorm:"column:password" json:"-"`
	Role      Role       `gorm:"column:role" json:"role"`
	CreateAt  *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt  *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt  *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// Actor is the authenticated identity attached to a request. It is resolved
// by the auth middleware from JWT claims and never persisted.
type Actor struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

// IsEditor reports whether the actor may record decisions and trigger resends.
func (a Actor) IsEditor() bool {
	return a.Role == RoleEditor
}
