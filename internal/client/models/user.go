// Package models defines client-side data models shared by the API client,
// the storage layer and the session service.
package models

// User is the identity cached after a successful login and persisted under
// the user_data key.
type User struct {
	UserName string `json:"userName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// IsZero reports whether u carries no identity at all.
func (u User) IsZero() bool {
	return u == User{}
}

// LoginResponse is the body returned by POST /auth/login.
type LoginResponse struct {
	UserName    string `json:"userName"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	AccessToken string `json:"access_token"`
}

// User extracts the cached identity from the response.
func (r LoginResponse) User() User {
	return User{UserName: r.UserName, Email: r.Email, Role: r.Role}
}

// OwnershipType describes how a property owner holds the property.
type OwnershipType string

const (
	OwnershipOwned  OwnershipType = "OWNED"
	OwnershipLeased OwnershipType = "LEASED"
)

// RegisterRequest is the body of POST /auth/property-owner/register.
type RegisterRequest struct {
	Email         string        `json:"email"`
	Password      string        `json:"password"`
	Name          string        `json:"name"`
	PhoneNumber   string        `json:"phoneNumber"`
	OwnershipType OwnershipType `json:"ownershipType"`
}
