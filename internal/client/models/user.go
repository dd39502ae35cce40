package models

// User is the account behind the current bearer token.
type User struct {
	ID        string `json:"id"`
	ClerkID   string `json:"clerk_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// AuthStatus is returned by the unauthenticated status probe.
type AuthStatus struct {
	Authenticated bool `json:"authenticated"`
	User          *struct {
		ID      string `json:"id"`
		Email   string `json:"email"`
		ClerkID string `json:"clerk_id"`
	} `json:"user"`
}
