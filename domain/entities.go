package domain

import "encoding/json"

// Address holds the location fields collected at registration
type Address struct {
	Country string `json:"country"`
}

// User represents the profile snapshot returned by the Oja API
type User struct {
	ID            string  `json:"_id,omitempty"`
	FirstName     string  `json:"firstName"`
	LastName      string  `json:"lastName"`
	Username      string  `json:"username"`
	Email         string  `json:"email"`
	PhoneNumber   string  `json:"phoneNumber"`
	EmailVerified bool    `json:"isEmailVerified,omitempty"`
	Address       Address `json:"address"`
}

// Session represents the authenticated actor. AuthToken is an opaque bearer
// string; it is present exactly when Live is true, and User is populated only
// for a live session.
type Session struct {
	AuthToken  string `json:"authToken,omitempty"`
	User       *User  `json:"user,omitempty"`
	RememberMe bool   `json:"rememberMe"`
	Live       bool   `json:"session"`
}

// IsLive reports whether the session currently carries a usable token.
func (s *Session) IsLive() bool {
	return s != nil && s.Live && s.AuthToken != ""
}

// Credentials are the login form values
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterPayload is the registration form, already validated by the caller
type RegisterPayload struct {
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Username    string  `json:"username"`
	Email       string  `json:"email"`
	PhoneNumber string  `json:"phoneNumber"`
	Password    string  `json:"password"`
	Address     Address `json:"address"`
}

// RegisterResult carries what the OTP verification step needs from a
// completed registration call
type RegisterResult struct {
	PhoneNumber string
	PinID       string
}

// OtpChallenge is an in-flight one-time-code verification
type OtpChallenge struct {
	Code      string `json:"code"`
	PinID     string `json:"pinId"`
	ExpiresIn string `json:"expiresIn,omitempty"`
}

// Session token lifetime classes selected by the remember-me flag
const (
	ExpiryRemembered = "60d"
	ExpiryDefault    = "7d"
)

// ExpiryClass returns the session lifetime class for the remember-me choice.
func ExpiryClass(rememberMe bool) string {
	if rememberMe {
		return ExpiryRemembered
	}
	return ExpiryDefault
}

// ResendResult is the outcome of a successful OTP resend
type ResendResult struct {
	PinID string `json:"pin_id"`
	To    string `json:"to"`
}

// LoginResult is either a completed session (direct login) or a challenge
// handoff requiring a second verification step. Exactly one side is set.
type LoginResult struct {
	Session   *Session
	Challenge *PendingRegistration
}

// RequiresChallenge reports whether the server demanded OTP verification.
func (r *LoginResult) RequiresChallenge() bool {
	return r != nil && r.Challenge != nil
}

// Bank identifies the institution holding one side of a deal
type Bank struct {
	Name          string `json:"name"`
	Code          string `json:"code"`
	SwiftCode     string `json:"swiftCode,omitempty"`
	RoutingNumber string `json:"routingNumber,omitempty"`
}

// AccountDetails is one leg of a deal: a bank account plus the amount moving
// through it. Amounts are minor units (cents) on the wire.
type AccountDetails struct {
	Bank          Bank    `json:"bank"`
	Amount        float64 `json:"amount"`
	AccountName   string  `json:"accountName"`
	AccountNumber string  `json:"accountNumber"`
}

// Deal pairs a debit account (source funds) with a credit account
// (destination funds) plus the exchange economics
type Deal struct {
	ID             string         `json:"_id,omitempty"`
	Debit          AccountDetails `json:"debit"`
	Credit         AccountDetails `json:"credit"`
	Type           string         `json:"type"`
	Rate           float64        `json:"rate"`
	TransactionFee float64        `json:"transactionFee"`
	SettlementFee  float64        `json:"settlementFee"`
	Status         string         `json:"status,omitempty"`
	Progress       int            `json:"progress,omitempty"`
	Transactions   []Transaction  `json:"transactions,omitempty"`
}

// Transaction is a settlement step recorded against a deal
type Transaction struct {
	ID     string  `json:"_id,omitempty"`
	Amount float64 `json:"amount"`
	Status string  `json:"status"`
}

// Currency is a tradeable currency descriptor
type Currency struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol,omitempty"`
}

// Envelope is the response shape of every Oja API call. Message and Data are
// kept raw because their types vary per endpoint (message is a plain string
// on most calls but an object on resend-otp).
type Envelope struct {
	Success bool            `json:"success,omitempty"`
	Message json.RawMessage `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`

	// verify-otp replies with the granted session at the top level rather
	// than under data.
	User      *User  `json:"user,omitempty"`
	AuthToken string `json:"authToken,omitempty"`
}

// MessageString returns Message when it is a plain JSON string, else "".
func (e *Envelope) MessageString() string {
	var s string
	if len(e.Message) > 0 && json.Unmarshal(e.Message, &s) == nil {
		return s
	}
	return ""
}

// DecodeMessage unmarshals the raw message field into v.
func (e *Envelope) DecodeMessage(v interface{}) error {
	if len(e.Message) == 0 {
		return ErrEmptyPayload
	}
	return json.Unmarshal(e.Message, v)
}

// DecodeData unmarshals the raw data field into v.
func (e *Envelope) DecodeData(v interface{}) error {
	if len(e.Data) == 0 {
		return ErrEmptyPayload
	}
	return json.Unmarshal(e.Data, v)
}
