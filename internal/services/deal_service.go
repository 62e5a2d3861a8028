package services

import (
	"context"
	"net/url"

	"go.uber.org/zap"

	"github.com/AllStackDev1/oja-client/domain"
	"github.com/AllStackDev1/oja-client/internal/validation"
)

// DealServiceImpl implements domain.DealService.
type DealServiceImpl struct {
	api    domain.HTTPClient
	notify domain.NotificationSink
	logger *zap.Logger
}

// NewDealService creates the deal client. A nil sink or logger is replaced
// with a no-op.
func NewDealService(api domain.HTTPClient, notify domain.NotificationSink, logger *zap.Logger) *DealServiceImpl {
	if notify == nil {
		notify = domain.NopSink{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DealServiceImpl{api: api, notify: notify, logger: logger}
}

// Create implements domain.DealService. The deal rule set runs first so an
// invalid deal never costs a round-trip.
func (s *DealServiceImpl) Create(ctx context.Context, deal *domain.Deal) (*domain.Deal, error) {
	if res := validation.DealRules.Validate(deal); !res.IsValid {
		return nil, res.Err()
	}

	env, err := s.api.Post(ctx, "/deals", deal)
	if err != nil {
		s.notify.Notify(domain.NewErrorNotification(err))
		return nil, err
	}

	created := &domain.Deal{}
	if err := env.DecodeData(created); err != nil {
		s.logger.Warn("deal create response missing data", zap.Error(err))
		created = deal
	}

	s.notify.Notify(domain.NewSuccessNotification(env.MessageString(), "Deal created, please fund wallet"))
	return created, nil
}

// Get implements domain.DealService.
func (s *DealServiceImpl) Get(ctx context.Context, id string) (*domain.Deal, error) {
	env, err := s.api.Get(ctx, "/deals/"+id, nil)
	if err != nil {
		return nil, err
	}

	deal := &domain.Deal{}
	if err := env.DecodeData(deal); err != nil {
		return nil, domain.NewAPIError("deal payload missing data")
	}
	return deal, nil
}

// List implements domain.DealService.
func (s *DealServiceImpl) List(ctx context.Context, query url.Values) ([]domain.Deal, error) {
	env, err := s.api.Get(ctx, "/deals", query)
	if err != nil {
		return nil, err
	}

	var deals []domain.Deal
	if err := env.DecodeData(&deals); err != nil {
		return nil, domain.NewAPIError("deals payload missing data")
	}
	return deals, nil
}

// ActiveWithLatestTransaction implements domain.DealService.
func (s *DealServiceImpl) ActiveWithLatestTransaction(ctx context.Context) ([]domain.Deal, error) {
	env, err := s.api.Get(ctx, "/deals/active-with-their-latest-transaction", nil)
	if err != nil {
		return nil, err
	}

	var deals []domain.Deal
	if err := env.DecodeData(&deals); err != nil {
		return nil, domain.NewAPIError("deals payload missing data")
	}
	return deals, nil
}

// ConfirmInteracFunding implements domain.DealService.
func (s *DealServiceImpl) ConfirmInteracFunding(ctx context.Context, id string) error {
	_, err := s.api.Patch(ctx, "/deals/"+id+"/confirm-interac-funding", nil)
	if err != nil {
		s.notify.Notify(domain.NewErrorNotification(err))
	}
	return err
}

// ProcessSendCash implements domain.DealService.
func (s *DealServiceImpl) ProcessSendCash(ctx context.Context, id string) error {
	_, err := s.api.Patch(ctx, "/deals/"+id+"/send-cash-pay", nil)
	if err != nil {
		s.notify.Notify(domain.NewErrorNotification(err))
	}
	return err
}

var _ domain.DealService = (*DealServiceImpl)(nil)
