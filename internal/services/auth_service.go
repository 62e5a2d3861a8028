package services

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/AllStackDev1/oja-client/domain"
	"github.com/AllStackDev1/oja-client/internal/validation"
)

// AuthServiceImpl implements domain.AuthService. It is the only writer of
// the session; every mutation happens in response to a completed verify,
// login or logout call.
type AuthServiceImpl struct {
	api      domain.HTTPClient
	sessions domain.SessionStore
	notify   domain.NotificationSink
	logger   *zap.Logger
	cooldown *Countdown

	mu             sync.RWMutex
	session        *domain.Session
	rememberMe     bool
	errorMessage   string
	successMessage string
}

// NewAuthService creates the credential/session manager. A nil sink or
// logger is replaced with a no-op.
func NewAuthService(api domain.HTTPClient, sessions domain.SessionStore, notify domain.NotificationSink, logger *zap.Logger) *AuthServiceImpl {
	if notify == nil {
		notify = domain.NopSink{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthServiceImpl{
		api:      api,
		sessions: sessions,
		notify:   notify,
		logger:   logger,
		cooldown: NewCountdown(),
	}
}

// Cooldown returns the resend cooldown owned by the current OTP challenge.
func (s *AuthServiceImpl) Cooldown() *Countdown {
	return s.cooldown
}

// Register implements domain.AuthService. The payload is expected to have
// passed the registration rule set already; Register enforces it anyway so
// an invalid payload never reaches the network.
func (s *AuthServiceImpl) Register(ctx context.Context, payload *domain.RegisterPayload) (*domain.RegisterResult, error) {
	if res := validation.RegistrationRules.Validate(payload); !res.IsValid {
		return nil, res.Err()
	}

	env, err := s.api.Post(ctx, "/auth/register", payload)
	if err != nil {
		s.notify.Notify(domain.NewErrorNotification(err))
		return nil, err
	}

	var data struct {
		PhoneNumber string       `json:"phoneNumber"`
		User        *domain.User `json:"user"`
		OtpResponse struct {
			PinID string `json:"pinId"`
		} `json:"otpResponse"`
		PinID string `json:"pinId"`
	}
	if err := env.DecodeData(&data); err != nil {
		s.logger.Warn("register response missing data", zap.Error(err))
	}

	phone := data.PhoneNumber
	if phone == "" && data.User != nil {
		phone = data.User.PhoneNumber
	}
	pinID := data.OtpResponse.PinID
	if pinID == "" {
		pinID = data.PinID
	}

	s.cooldown.Reset(InitialCooldownSeconds)
	s.notify.Notify(domain.NewSuccessNotification(env.MessageString(), "An OTP has been sent to %s", phone))

	return &domain.RegisterResult{PhoneNumber: phone, PinID: pinID}, nil
}

// DecodePendingRegistration decodes the opaque URL token produced by the
// registration step. Failure is a routing signal, not a user-facing error.
func (s *AuthServiceImpl) DecodePendingRegistration(token string) (*domain.PendingRegistration, error) {
	return domain.DecodePendingRegistration(token)
}

// VerifyOTP implements domain.AuthService. A failed verification never
// mutates a pre-existing session.
func (s *AuthServiceImpl) VerifyOTP(ctx context.Context, challenge domain.OtpChallenge) (*domain.Session, error) {
	if challenge.ExpiresIn == "" {
		challenge.ExpiresIn = domain.ExpiryClass(s.RememberMe())
	}

	if res := validation.OtpVerifyRules.Validate(challenge); !res.IsValid {
		return nil, res.Err()
	}

	env, err := s.api.Post(ctx, "/auth/verify-otp", challenge)
	if err != nil {
		s.notify.Notify(domain.NewErrorNotification(err))
		return nil, err
	}
	if !env.Success || env.AuthToken == "" {
		apiErr := domain.NewAPIError(env.MessageString())
		s.notify.Notify(domain.NewErrorNotification(apiErr))
		return nil, apiErr
	}

	session := &domain.Session{
		AuthToken:  env.AuthToken,
		User:       env.User,
		RememberMe: s.RememberMe(),
		Live:       true,
	}
	s.storeSession(ctx, session)
	s.notify.Notify(domain.NewSuccessNotification("Access granted (200)", "%s", env.MessageString()))

	return session, nil
}

// ResendOTP implements domain.AuthService. On success the cooldown restarts
// at the resend window; on failure it is left untouched.
func (s *AuthServiceImpl) ResendOTP(ctx context.Context, phoneNumber string) (*domain.ResendResult, error) {
	env, err := s.api.Post(ctx, "/auth/resend-otp", map[string]string{"phoneNumber": phoneNumber})
	if err != nil {
		s.SetSuccessMessage("")
		s.SetErrorMessage(err.Error())
		return nil, err
	}

	var result domain.ResendResult
	if err := env.DecodeMessage(&result); err != nil {
		apiErr := domain.NewAPIError("malformed resend response")
		s.SetErrorMessage(apiErr.Message)
		return nil, apiErr
	}

	s.cooldown.Reset(ResendCooldownSeconds)
	s.SetErrorMessage("")
	s.SetSuccessMessage("A new OTP has been sent to " + result.To)

	return &result, nil
}

// Login implements domain.AuthService. The server answers with either a
// completed session or a challenge handoff; the two shapes are told apart by
// the presence of data.to.
func (s *AuthServiceImpl) Login(ctx context.Context, creds domain.Credentials) (*domain.LoginResult, error) {
	if res := validation.LoginRules.Validate(creds); !res.IsValid {
		return nil, res.Err()
	}

	env, err := s.api.Post(ctx, "/auth/login", creds)
	if err != nil {
		s.notify.Notify(domain.NewErrorNotification(err))
		return nil, err
	}

	var data struct {
		To        string       `json:"to"`
		PinID     string       `json:"pinId"`
		User      *domain.User `json:"user"`
		AuthToken string       `json:"authToken"`
	}
	if err := env.DecodeData(&data); err != nil {
		apiErr := domain.NewAPIError(env.MessageString())
		s.notify.Notify(domain.NewErrorNotification(apiErr))
		return nil, apiErr
	}

	if data.To != "" {
		s.cooldown.Reset(InitialCooldownSeconds)
		s.notify.Notify(domain.NewSuccessNotification("Login successful", "An OTP has been sent to %s", data.To))
		return &domain.LoginResult{
			Challenge: &domain.PendingRegistration{PhoneNumber: data.To, PinID: data.PinID},
		}, nil
	}

	session := &domain.Session{
		AuthToken:  data.AuthToken,
		User:       data.User,
		RememberMe: s.RememberMe(),
		Live:       true,
	}
	s.storeSession(ctx, session)

	name := ""
	if data.User != nil {
		name = data.User.FirstName
	}
	s.notify.Notify(domain.NewSuccessNotification("Welcome back "+name, ""))

	return &domain.LoginResult{Session: session}, nil
}

// Logout implements domain.AuthService. It succeeds locally and
// synchronously; no network round-trip is involved.
func (s *AuthServiceImpl) Logout(ctx context.Context) {
	s.mu.Lock()
	s.session = nil
	s.errorMessage = ""
	s.successMessage = ""
	s.mu.Unlock()

	s.api.SetAuthToken("")
	if err := s.sessions.Clear(ctx); err != nil {
		s.logger.Warn("failed to clear persisted session", zap.Error(err))
	}
}

// IsAuthenticated implements domain.AuthService: a pure read that rehydrates
// from the persisted store when the in-memory session is empty. It never
// fails; absent any session it returns a dead one.
func (s *AuthServiceImpl) IsAuthenticated() *domain.Session {
	s.mu.RLock()
	session := s.session
	s.mu.RUnlock()
	if session.IsLive() {
		return session
	}

	persisted, err := s.sessions.Load(context.Background())
	if err != nil || !persisted.IsLive() {
		return &domain.Session{}
	}

	s.mu.Lock()
	s.session = persisted
	s.rememberMe = persisted.RememberMe
	s.mu.Unlock()
	s.api.SetAuthToken(persisted.AuthToken)

	return persisted
}

// Profile implements domain.AuthService.
func (s *AuthServiceImpl) Profile(ctx context.Context) (*domain.User, error) {
	env, err := s.api.Get(ctx, "/auth/profile", nil)
	if err != nil {
		return nil, err
	}

	var data struct {
		User *domain.User `json:"user"`
	}
	if err := env.DecodeData(&data); err != nil || data.User == nil {
		return nil, domain.NewAPIError("profile payload missing user")
	}
	return data.User, nil
}

// SetRememberMe implements domain.AuthService.
func (s *AuthServiceImpl) SetRememberMe(remember bool) {
	s.mu.Lock()
	s.rememberMe = remember
	s.mu.Unlock()
}

// RememberMe implements domain.AuthService.
func (s *AuthServiceImpl) RememberMe() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rememberMe
}

// SetErrorMessage records transient UI-advisory state. Not part of the
// authentication contract proper.
func (s *AuthServiceImpl) SetErrorMessage(msg string) {
	s.mu.Lock()
	s.errorMessage = msg
	s.mu.Unlock()
}

// ErrorMessage returns the transient error message.
func (s *AuthServiceImpl) ErrorMessage() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errorMessage
}

// SetSuccessMessage records transient UI-advisory state.
func (s *AuthServiceImpl) SetSuccessMessage(msg string) {
	s.mu.Lock()
	s.successMessage = msg
	s.mu.Unlock()
}

// SuccessMessage returns the transient success message.
func (s *AuthServiceImpl) SuccessMessage() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.successMessage
}

func (s *AuthServiceImpl) storeSession(ctx context.Context, session *domain.Session) {
	s.mu.Lock()
	s.session = session
	s.mu.Unlock()

	s.api.SetAuthToken(session.AuthToken)
	if err := s.sessions.Save(ctx, session); err != nil {
		// The in-memory session stays valid; only rehydration is lost.
		s.logger.Warn("failed to persist session", zap.Error(err))
	}
}

var _ domain.AuthService = (*AuthServiceImpl)(nil)
