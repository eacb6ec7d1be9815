package domain

import "time"

type UserRole string

const (
	UserRoleCustomer UserRole = "CUSTOMER"
	UserRoleAdmin    UserRole = "ADMIN"
)

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PhoneNumber  string    `json:"phone_number"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	BirthDate    *Date     `json:"birth_date,omitempty"`
	Role         UserRole  `json:"role"`
	CreatedOn    time.Time `json:"created_on"`
	UpdatedOn    time.Time `json:"updated_on"`
}

// IsAdmin reports whether the user may review claims and browse all users.
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}
