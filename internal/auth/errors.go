package auth

import "errors"

var (
	ErrCredentialsRequired = errors.New("Credentials are required")
	ErrInvalidCredentials  = errors.New("Invalid credentials")
	ErrAdminOnly           = errors.New("Email login is for admin accounts only")
)
