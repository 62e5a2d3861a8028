package domain

import (
	"context"
	"net/url"
)

// HTTPClient is the transport collaborator. Calls resolve to the common
// envelope or fail with an *APIError; no other error type crosses this
// boundary.
type HTTPClient interface {
	Get(ctx context.Context, path string, query url.Values) (*Envelope, error)
	Post(ctx context.Context, path string, body interface{}) (*Envelope, error)
	Patch(ctx context.Context, path string, body interface{}) (*Envelope, error)

	// SetAuthToken installs the bearer token attached to subsequent calls.
	// An empty token removes it.
	SetAuthToken(token string)
}

// SessionStore persists the session across process restarts
type SessionStore interface {
	Save(ctx context.Context, session *Session) error
	// Load returns ErrNoSession when nothing is persisted.
	Load(ctx context.Context) (*Session, error)
	Clear(ctx context.Context) error
}

// AuthService owns the authenticated-session lifecycle
type AuthService interface {
	Register(ctx context.Context, payload *RegisterPayload) (*RegisterResult, error)
	Login(ctx context.Context, creds Credentials) (*LoginResult, error)
	VerifyOTP(ctx context.Context, challenge OtpChallenge) (*Session, error)
	ResendOTP(ctx context.Context, phoneNumber string) (*ResendResult, error)
	Logout(ctx context.Context)
	// IsAuthenticated rehydrates from the persisted store when the in-memory
	// session is empty. Pure read, never fails.
	IsAuthenticated() *Session
	Profile(ctx context.Context) (*User, error)
	SetRememberMe(remember bool)
	RememberMe() bool
}

// DealService exposes the deal lifecycle operations
type DealService interface {
	Create(ctx context.Context, deal *Deal) (*Deal, error)
	Get(ctx context.Context, id string) (*Deal, error)
	List(ctx context.Context, query url.Values) ([]Deal, error)
	ActiveWithLatestTransaction(ctx context.Context) ([]Deal, error)
	ConfirmInteracFunding(ctx context.Context, id string) error
	ProcessSendCash(ctx context.Context, id string) error
}

// UserService exposes profile and directory operations
type UserService interface {
	Get(ctx context.Context, id string) (*User, error)
	List(ctx context.Context, query url.Values) ([]User, error)
	Count(ctx context.Context, query url.Values) (int, error)
	UpdateProfile(ctx context.Context, id string, payload *UserUpdate) error
	VerifyEmail(ctx context.Context, token string) error
	Currencies(ctx context.Context, query url.Values) ([]Currency, error)
}

// UserUpdate is a partial profile update; zero-valued fields are omitted from
// the request body.
type UserUpdate struct {
	FirstName   string   `json:"firstName,omitempty"`
	LastName    string   `json:"lastName,omitempty"`
	Username    string   `json:"username,omitempty"`
	PhoneNumber string   `json:"phoneNumber,omitempty"`
	Address     *Address `json:"address,omitempty"`
}
