package domain

import (
	"encoding/base64"
	"encoding/json"
)

// PendingRegistration is the transient handoff between the registration step
// and OTP verification. It travels as an opaque base64 URL segment and must
// stay a JSON object with exactly these two fields so any decoder
// interoperates.
type PendingRegistration struct {
	PhoneNumber string `json:"phoneNumber"`
	PinID       string `json:"pinId"`
}

// Encode serializes the handoff as base64(JSON), suitable for a URL path
// segment.
func (p PendingRegistration) Encode() string {
	raw, _ := json.Marshal(p)
	return base64.StdEncoding.EncodeToString(raw)
}

// DecodePendingRegistration reverses Encode. A token that does not decode, or
// decodes without a phone number, yields ErrInvalidToken; callers treat that
// as a signal to return to the registration entry point rather than as a
// user-facing error.
func DecodePendingRegistration(token string) (*PendingRegistration, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	var p PendingRegistration
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, ErrInvalidToken
	}
	if p.PhoneNumber == "" {
		return nil, ErrInvalidToken
	}
	return &p, nil
}
