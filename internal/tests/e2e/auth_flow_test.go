package e2e

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AllStackDev1/oja-client/domain"
	"github.com/AllStackDev1/oja-client/internal/services"
)

// TestRegistrationFlow drives register, OTP resend and verification end to
// end through the real transport against the fake API.
func TestRegistrationFlow(t *testing.T) {
	server := NewTestServer(t)
	sdk := newSDK(t, server.BaseURL)
	ctx := context.Background()

	payload := &domain.RegisterPayload{
		FirstName:   "Ada",
		LastName:    "Obi",
		Username:    "ada.obi",
		Email:       "ada@example.com",
		PhoneNumber: "+2348012345678",
		Password:    "Str0ng#Pass",
		Address:     domain.Address{Country: "Nigeria"},
	}

	result, err := sdk.Auth.Register(ctx, payload)
	require.NoError(t, err)
	assert.Equal(t, payload.PhoneNumber, result.PhoneNumber)
	assert.NotEmpty(t, result.PinID)
	assert.Equal(t, services.InitialCooldownSeconds, sdk.Auth.Cooldown().Remaining())

	// The handoff token survives an encode/decode round trip.
	token := domain.PendingRegistration{PhoneNumber: result.PhoneNumber, PinID: result.PinID}.Encode()
	pending, err := sdk.Auth.DecodePendingRegistration(token)
	require.NoError(t, err)
	assert.Equal(t, result.PinID, pending.PinID)

	// A wrong code is rejected and leaves no session behind.
	_, err = sdk.Auth.VerifyOTP(ctx, domain.OtpChallenge{Code: "000000", PinID: result.PinID})
	require.Error(t, err)
	assert.False(t, sdk.Auth.IsAuthenticated().IsLive())

	// Resend issues a fresh pin and restarts the cooldown at the wider window.
	resent, err := sdk.Auth.ResendOTP(ctx, pending.PhoneNumber)
	require.NoError(t, err)
	assert.NotEmpty(t, resent.PinID)
	assert.Equal(t, payload.PhoneNumber, resent.To)
	assert.Equal(t, services.ResendCooldownSeconds, sdk.Auth.Cooldown().Remaining())
	assert.Equal(t, "A new OTP has been sent to "+resent.To, sdk.Auth.SuccessMessage())

	session, err := sdk.Auth.VerifyOTP(ctx, domain.OtpChallenge{
		Code:  server.CurrentOTP(resent.PinID),
		PinID: resent.PinID,
	})
	require.NoError(t, err)
	assert.True(t, session.IsLive())
	require.NotNil(t, session.User)
	assert.Equal(t, "Ada", session.User.FirstName)
	assert.False(t, session.RememberMe)

	// The granted token works for authenticated endpoints.
	profile, err := sdk.Auth.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, payload.Email, profile.Email)
}

func TestRegistrationRejectsInvalidPayloadLocally(t *testing.T) {
	server := NewTestServer(t)
	sdk := newSDK(t, server.BaseURL)

	_, err := sdk.Auth.Register(context.Background(), &domain.RegisterPayload{
		FirstName: "A",
		Email:     "not-an-email",
	})
	require.Error(t, err)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	msg, ok := verr.FieldError("firstName")
	require.True(t, ok)
	assert.Equal(t, "First name requires a minimum of 2 characters", msg)
	msg, ok = verr.FieldError("email")
	require.True(t, ok)
	assert.Equal(t, "Provide a valid email address*", msg)
	// Nothing reached the network, so no notification fired.
	_, fired := sdk.Sink.Last()
	assert.False(t, fired)
}

func TestLoginDirectAndChallenge(t *testing.T) {
	server := NewTestServer(t)
	server.SeedUser("Bola", "Ade", "bola@example.com", "+2347011112222", "Str0ng#Pass")
	ctx := context.Background()

	t.Run("wrong password surfaces the server message", func(t *testing.T) {
		sdk := newSDK(t, server.BaseURL)
		_, err := sdk.Auth.Login(ctx, domain.Credentials{Email: "bola@example.com", Password: "Wrong#Pass1"})
		require.Error(t, err)

		var apiErr *domain.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, "Invalid email or password", apiErr.Message)
	})

	t.Run("recognized device logs straight in", func(t *testing.T) {
		sdk := newSDK(t, server.BaseURL)
		sdk.Auth.SetRememberMe(true)

		result, err := sdk.Auth.Login(ctx, domain.Credentials{Email: "bola@example.com", Password: "Str0ng#Pass"})
		require.NoError(t, err)
		assert.False(t, result.RequiresChallenge())
		require.NotNil(t, result.Session)
		assert.True(t, result.Session.RememberMe)
		assert.Equal(t, "Bola", result.Session.User.FirstName)

		last, ok := sdk.Sink.Last()
		require.True(t, ok)
		assert.Equal(t, domain.NotifySuccess, last.Status)
		assert.Equal(t, "Welcome back Bola", last.Title)
	})

	t.Run("unrecognized device is handed an otp challenge", func(t *testing.T) {
		server.RequireLoginOTP = true
		t.Cleanup(func() { server.RequireLoginOTP = false })

		sdk := newSDK(t, server.BaseURL)
		result, err := sdk.Auth.Login(ctx, domain.Credentials{Email: "bola@example.com", Password: "Str0ng#Pass"})
		require.NoError(t, err)
		require.True(t, result.RequiresChallenge())
		assert.Equal(t, "+2347011112222", result.Challenge.PhoneNumber)
		assert.False(t, sdk.Auth.IsAuthenticated().IsLive())

		// Completing the challenge grants the session.
		session, err := sdk.Auth.VerifyOTP(ctx, domain.OtpChallenge{
			Code:  server.CurrentOTP(result.Challenge.PinID),
			PinID: result.Challenge.PinID,
		})
		require.NoError(t, err)
		assert.True(t, session.IsLive())
	})
}

// TestSessionSurvivesRestart proves the persisted session rehydrates in a
// fresh stack built over the same database file, with the bearer token
// reinstalled on the transport.
func TestSessionSurvivesRestart(t *testing.T) {
	server := NewTestServer(t)
	server.SeedUser("Chi", "Eze", "chi@example.com", "+2348033334444", "Str0ng#Pass")
	ctx := context.Background()

	first := newSDK(t, server.BaseURL)
	first.Auth.SetRememberMe(true)
	_, err := first.Auth.Login(ctx, domain.Credentials{Email: "chi@example.com", Password: "Str0ng#Pass"})
	require.NoError(t, err)

	second := newSDKAt(t, server.BaseURL, first.DBPath)
	session := second.Auth.IsAuthenticated()
	require.True(t, session.IsLive())
	assert.True(t, session.RememberMe)
	assert.True(t, second.Auth.RememberMe())
	assert.Equal(t, "Chi", session.User.FirstName)

	// The rehydrated token authenticates real calls.
	profile, err := second.Auth.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "chi@example.com", profile.Email)
}

func TestLogoutClearsEverything(t *testing.T) {
	server := NewTestServer(t)
	server.SeedUser("Dayo", "Ojo", "dayo@example.com", "+2348055556666", "Str0ng#Pass")
	ctx := context.Background()

	sdk := newSDK(t, server.BaseURL)
	_, err := sdk.Auth.Login(ctx, domain.Credentials{Email: "dayo@example.com", Password: "Str0ng#Pass"})
	require.NoError(t, err)
	require.True(t, sdk.Auth.IsAuthenticated().IsLive())

	sdk.Auth.Logout(ctx)
	assert.False(t, sdk.Auth.IsAuthenticated().IsLive())

	// The token is gone from the transport, so protected calls now fail.
	_, err = sdk.Auth.Profile(ctx)
	require.Error(t, err)
	var apiErr *domain.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Missing authorization token", apiErr.Message)

	// A fresh stack over the same db finds nothing to rehydrate.
	again := newSDKAt(t, server.BaseURL, sdk.DBPath)
	assert.False(t, again.Auth.IsAuthenticated().IsLive())
}
