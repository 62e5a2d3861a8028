package e2e

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AllStackDev1/oja-client/domain"
)

func signedInSDK(t *testing.T, server *TestServer) *SDK {
	t.Helper()
	server.SeedUser("Efe", "Ogu", "efe@example.com", "+2348077778888", "Str0ng#Pass")
	sdk := newSDK(t, server.BaseURL)
	_, err := sdk.Auth.Login(context.Background(), domain.Credentials{
		Email:    "efe@example.com",
		Password: "Str0ng#Pass",
	})
	require.NoError(t, err)
	return sdk
}

func validDeal() *domain.Deal {
	return &domain.Deal{
		Type:           "NGN-CAD",
		Rate:           0.0031,
		TransactionFee: 150,
		SettlementFee:  75,
		Debit: domain.AccountDetails{
			Bank:          domain.Bank{Name: "First Bank", Code: "011"},
			Amount:        500000,
			AccountName:   "Efe Ogu",
			AccountNumber: "0123456789",
		},
		Credit: domain.AccountDetails{
			Bank:          domain.Bank{Name: "RBC", Code: "003", SwiftCode: "ROYCCAT2"},
			Amount:        1550,
			AccountName:   "Efe Ogu",
			AccountNumber: "4567890123",
		},
	}
}

func TestDealCreateAndList(t *testing.T) {
	server := NewTestServer(t)
	sdk := signedInSDK(t, server)
	ctx := context.Background()

	created, err := sdk.Deals.Create(ctx, validDeal())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "pending", created.Status)
	assert.Equal(t, "NGN-CAD", created.Type)

	last, ok := sdk.Sink.Last()
	require.True(t, ok)
	assert.Equal(t, domain.NotifySuccess, last.Status)
	assert.Equal(t, "Deal created, please fund wallet", last.Description)

	deals, err := sdk.Deals.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, deals, 1)
	assert.Equal(t, created.ID, deals[0].ID)
}

func TestDealCreateRejectedLocally(t *testing.T) {
	server := NewTestServer(t)
	sdk := signedInSDK(t, server)

	deal := validDeal()
	deal.Debit.AccountNumber = "12a3"
	deal.Credit.Bank.SwiftCode = "INVALID"

	_, err := sdk.Deals.Create(context.Background(), deal)
	require.Error(t, err)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	msg, ok := verr.FieldError("debit.accountNumber")
	require.True(t, ok)
	assert.Equal(t, "Provide a valid account number", msg)
	msg, ok = verr.FieldError("credit.bank.swiftCode")
	require.True(t, ok)
	assert.Equal(t, "Invalid Swift Code", msg)

	// The rejected deal never reached the server.
	deals, err := sdk.Deals.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, deals)
}

func TestDealsRequireAuthentication(t *testing.T) {
	server := NewTestServer(t)
	sdk := newSDK(t, server.BaseURL)

	_, err := sdk.Deals.List(context.Background(), nil)
	require.Error(t, err)

	var apiErr *domain.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Missing authorization token", apiErr.Message)
}

func TestCurrencies(t *testing.T) {
	server := NewTestServer(t)
	sdk := newSDK(t, server.BaseURL)

	currencies, err := sdk.Users.Currencies(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, currencies, 2)
	assert.Equal(t, "NGN", currencies[0].Code)
	assert.Equal(t, "Canadian Dollar", currencies[1].Name)
}
