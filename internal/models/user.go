package models

// User is an operator account allowed to arm and disarm the heater loop.
// The bcrypt hash never leaves the process.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}
