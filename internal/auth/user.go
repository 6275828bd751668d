package auth

import (
	"github.com/google/uuid"
)

// User is a dashboard account. Password holds the bcrypt hash.
type User struct {
	ID       uuid.UUID
	Name     string
	Email    string
	Password string
}

// Credentials are the fields submitted by the login form.
type Credentials struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=6"`
}
