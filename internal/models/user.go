package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRole string
type UserStatus string

const (
	RoleUser          UserRole = "user"
	RoleOperator      UserRole = "operator"
	RoleTerminalAdmin UserRole = "terminal admin"
	RoleSuperAdmin    UserRole = "super admin"

	UserStatusActive    UserStatus = "active"
	UserStatusInactive  UserStatus = "inactive"
	UserStatusSuspended UserStatus = "suspended"
)

var roleIDs = map[UserRole]int{
	RoleUser:          1,
	RoleOperator:      2,
	RoleTerminalAdmin: 3,
	RoleSuperAdmin:    4,
}

// NormalizeRole lowercases and trims a role name.
func NormalizeRole(role string) UserRole {
	return UserRole(strings.ToLower(strings.TrimSpace(role)))
}

func (r UserRole) IsValid() bool {
	_, ok := roleIDs[r]
	return ok
}

// RoleIDFor maps a role name to its numeric id. Unknown names map to the user role.
func RoleIDFor(role string) int {
	if id, ok := roleIDs[NormalizeRole(role)]; ok {
		return id
	}
	return roleIDs[RoleUser]
}

// RoleNameFor is the reverse of RoleIDFor. Unknown ids map to "user".
func RoleNameFor(id int) UserRole {
	for role, rid := range roleIDs {
		if rid == id {
			return role
		}
	}
	return RoleUser
}

func (s UserStatus) IsValid() bool {
	switch s {
	case UserStatusActive, UserStatusInactive, UserStatusSuspended:
		return true
	}
	return false
}

type User struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FirebaseID   string             `json:"firebase_id,omitempty" bson:"firebase_id,omitempty"`
	FirstName    string             `json:"f_name" bson:"f_name"`
	LastName     string             `json:"l_name" bson:"l_name"`
	Email        string             `json:"email" bson:"email"`
	Phone        string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Password     string             `json:"-" bson:"password"`
	ProfileImage string             `json:"profile_image" bson:"profile_image"`
	Role         UserRole           `json:"role" bson:"role"`
	RoleID       int                `json:"roleid" bson:"roleid"`
	Status       UserStatus         `json:"status" bson:"status"`
	LastLoginAt  *time.Time         `json:"last_login_at,omitempty" bson:"last_login_at,omitempty"`
	IsDeleted    bool               `json:"is_deleted" bson:"is_deleted"`
	DeletedAt    *time.Time         `json:"deleted_at,omitempty" bson:"deleted_at,omitempty"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}

// ApplyRole normalizes Role and derives RoleID from it. Call before every save.
func (u *User) ApplyRole() {
	role := NormalizeRole(string(u.Role))
	if !role.IsValid() {
		role = RoleUser
	}
	u.Role = role
	u.RoleID = roleIDs[role]
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}
