package users

import "time"

// RoleType represents a user role on the platform
type RoleType string

const (
	RoleAdmin  RoleType = "admin"
	RoleUser   RoleType = "user"
	RoleViewer RoleType = "viewer"
)

// User is the platform account record as returned by the API.
type User struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name,omitempty"`
	IsActive    bool       `json:"is_active"`
	IsVerified  bool       `json:"is_verified"`
	Role        RoleType   `json:"role,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the register request body.
type Registration struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
}

// Update carries a partial account update. Nil fields are left untouched;
// setting Password changes the login password.
type Update struct {
	Email    *string `json:"email,omitempty"`
	FullName *string `json:"full_name,omitempty"`
	Password *string `json:"password,omitempty"`
}

// AuthenticatedUser is returned from login and registration: the user record
// together with a freshly minted token pair.
type AuthenticatedUser struct {
	User
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type,omitempty"`
}
