package models

import "strings"

// Role distinguishes renters from listing owners.
type Role string

const (
	// RoleClient is a customer who browses and reserves vehicles.
	RoleClient Role = "client"
	// RoleOwner is an agency account managing listings.
	RoleOwner Role = "owner"
)

// Matches compares roles case-insensitively: the backend reports roles in
// either casing ("client" or "CLIENT") depending on the endpoint.
func (r Role) Matches(other Role) bool {
	return strings.EqualFold(string(r), string(other))
}

// User is the authenticated identity returned by the rental API on
// sign-in/sign-up and kept in the session store.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// SignInRequest is the credentials payload for POST /auth/signin.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUpRequest is the registration payload for POST /auth/signup.
// Address and CIN are client-only fields, Agency is owner-only; the unused
// side is left empty.
type SignUpRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Role     Role   `json:"role"`
	Address  string `json:"address,omitempty"`
	CIN      string `json:"cin,omitempty"`
	Agency   string `json:"agence,omitempty"`
}
