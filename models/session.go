package models

// Role is the operator's role on the platform.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Identity is the operator identity issued alongside the session token.
type Identity struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// Session is the operator's authenticated session: token and identity are
// always set together or not at all.
type Session struct {
	Token string   `json:"token"`
	User  Identity `json:"user"`
}
