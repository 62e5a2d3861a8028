package domain

import (
	"encoding/json"
	"testing"
)

func TestSession_IsLive(t *testing.T) {
	tests := []struct {
		name    string
		session *Session
		want    bool
	}{
		{
			name:    "nil session",
			session: nil,
			want:    false,
		},
		{
			name:    "zero session",
			session: &Session{},
			want:    false,
		},
		{
			name:    "token without live flag",
			session: &Session{AuthToken: "tok"},
			want:    false,
		},
		{
			name:    "live flag without token",
			session: &Session{Live: true},
			want:    false,
		},
		{
			name:    "token and live flag",
			session: &Session{AuthToken: "tok", Live: true},
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.session.IsLive(); got != tt.want {
				t.Errorf("IsLive() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExpiryClass(t *testing.T) {
	if got := ExpiryClass(true); got != "60d" {
		t.Errorf("remembered expiry = %q, want 60d", got)
	}
	if got := ExpiryClass(false); got != "7d" {
		t.Errorf("default expiry = %q, want 7d", got)
	}
}

func TestLoginResult_RequiresChallenge(t *testing.T) {
	var nilResult *LoginResult
	if nilResult.RequiresChallenge() {
		t.Error("nil result should not require challenge")
	}

	direct := &LoginResult{Session: &Session{AuthToken: "tok", Live: true}}
	if direct.RequiresChallenge() {
		t.Error("direct login should not require challenge")
	}

	handoff := &LoginResult{Challenge: &PendingRegistration{PhoneNumber: "+2348012345678"}}
	if !handoff.RequiresChallenge() {
		t.Error("challenge handoff should require challenge")
	}
}

func TestEnvelope_MessageString(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{name: "plain string message", payload: `{"message":"Account created"}`, want: "Account created"},
		{name: "object message", payload: `{"message":{"pin_id":"p1","to":"+234"}}`, want: ""},
		{name: "no message", payload: `{"success":true}`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var env Envelope
			if err := json.Unmarshal([]byte(tt.payload), &env); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got := env.MessageString(); got != tt.want {
				t.Errorf("MessageString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEnvelope_DecodeMessage(t *testing.T) {
	var env Envelope
	if err := json.Unmarshal([]byte(`{"message":{"pin_id":"p1","to":"+2348012345678"}}`), &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	var res ResendResult
	if err := env.DecodeMessage(&res); err != nil {
		t.Fatalf("DecodeMessage: %v", err)
	}
	if res.PinID != "p1" || res.To != "+2348012345678" {
		t.Errorf("unexpected resend result: %+v", res)
	}

	empty := &Envelope{}
	if err := empty.DecodeMessage(&res); err != ErrEmptyPayload {
		t.Errorf("expected ErrEmptyPayload, got %v", err)
	}
}

func TestEnvelope_DecodeData(t *testing.T) {
	var env Envelope
	if err := json.Unmarshal([]byte(`{"data":{"user":{"firstName":"Ada","phoneNumber":"+2348012345678"}}}`), &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	var data struct {
		User User `json:"user"`
	}
	if err := env.DecodeData(&data); err != nil {
		t.Fatalf("DecodeData: %v", err)
	}
	if data.User.FirstName != "Ada" {
		t.Errorf("expected firstName Ada, got %q", data.User.FirstName)
	}
}
