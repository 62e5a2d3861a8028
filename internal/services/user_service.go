package services

import (
	"context"
	"net/url"

	"go.uber.org/zap"

	"github.com/AllStackDev1/oja-client/domain"
)

// UserServiceImpl implements domain.UserService.
type UserServiceImpl struct {
	api    domain.HTTPClient
	logger *zap.Logger
}

// NewUserService creates the user/directory client.
func NewUserService(api domain.HTTPClient, logger *zap.Logger) *UserServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserServiceImpl{api: api, logger: logger}
}

// Get implements domain.UserService.
func (s *UserServiceImpl) Get(ctx context.Context, id string) (*domain.User, error) {
	env, err := s.api.Get(ctx, "/users/"+id, nil)
	if err != nil {
		return nil, err
	}

	var data struct {
		User *domain.User `json:"user"`
	}
	if err := env.DecodeData(&data); err != nil || data.User == nil {
		return nil, domain.NewAPIError("user payload missing user")
	}
	return data.User, nil
}

// List implements domain.UserService.
func (s *UserServiceImpl) List(ctx context.Context, query url.Values) ([]domain.User, error) {
	env, err := s.api.Get(ctx, "/users", query)
	if err != nil {
		return nil, err
	}

	var data struct {
		Users []domain.User `json:"users"`
	}
	if err := env.DecodeData(&data); err != nil {
		return nil, domain.NewAPIError("users payload missing data")
	}
	return data.Users, nil
}

// Count implements domain.UserService.
func (s *UserServiceImpl) Count(ctx context.Context, query url.Values) (int, error) {
	env, err := s.api.Get(ctx, "/users/count", query)
	if err != nil {
		return 0, err
	}

	var data struct {
		Count int `json:"count"`
	}
	if err := env.DecodeData(&data); err != nil {
		return 0, domain.NewAPIError("count payload missing data")
	}
	return data.Count, nil
}

// UpdateProfile implements domain.UserService.
func (s *UserServiceImpl) UpdateProfile(ctx context.Context, id string, payload *domain.UserUpdate) error {
	_, err := s.api.Patch(ctx, "/users/"+id, payload)
	return err
}

// VerifyEmail implements domain.UserService.
func (s *UserServiceImpl) VerifyEmail(ctx context.Context, token string) error {
	_, err := s.api.Patch(ctx, "/auth/verify-email/"+token, nil)
	return err
}

// Currencies implements domain.UserService.
func (s *UserServiceImpl) Currencies(ctx context.Context, query url.Values) ([]domain.Currency, error) {
	env, err := s.api.Get(ctx, "/currencies", query)
	if err != nil {
		return nil, err
	}

	var currencies []domain.Currency
	if err := env.DecodeData(&currencies); err != nil {
		return nil, domain.NewAPIError("currencies payload missing data")
	}
	return currencies, nil
}

var _ domain.UserService = (*UserServiceImpl)(nil)
