package auth

import (
	"crypto/subtle"
)

// CheckPassword compares a stored plain-text password with the given one in
// constant time. The login table keeps passwords unhashed.
func CheckPassword(storedPassword, password string) bool {
	return subtle.ConstantTimeCompare([]byte(storedPassword), []byte(password)) == 1
}
