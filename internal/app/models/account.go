package models

// Account is one login table row. Passwords are stored as plain text.
type Account struct {
	UserID   string   `json:"userId" example:"ada@sjsu.edu"`
	Password string   `json:"-"`
	Role     RoleType `json:"role" example:"student"`
}
