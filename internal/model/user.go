package model

import "time"

// User represents an application user record as stored in the `users`
// table.  Each field corresponds to a column in the database.  The json
// tags are omitted here because these structs are used internally by the
// repository layer; handlers define separate response types with
// appropriate JSON tags so the password hash can never leak into a
// response body.
//
// Fields:
//
//	ID               – primary key identifier of the user.
//	Username         – unique login name.
//	PasswordHash     – bcrypt hashed password.
//	Email            – unique email address.
//	IsAdmin          – whether the account holds administrator rights.
//	IsBlocked        – whether the account has been blocked by an admin.
//	RegistrationDate – timestamp of account creation.
type User struct {
	ID               uint64    // users.id
	Username         string    // users.username
	PasswordHash     string    // users.password_hash
	Email            string    // users.email
	IsAdmin          bool      // users.is_admin
	IsBlocked        bool      // users.is_blocked
	RegistrationDate time.Time // users.registration_date
}
