package e2e

import (
	"path/filepath"
	"testing"

	"github.com/AllStackDev1/oja-client/internal/infrastructure/repositories"
	"github.com/AllStackDev1/oja-client/internal/mocks"
	"github.com/AllStackDev1/oja-client/internal/services"
	"github.com/AllStackDev1/oja-client/internal/transport"
)

// SDK bundles the full client stack wired against the fake API: the real
// transport, the real sqlite session store and the real services. Only the
// notification sink is a recorder.
type SDK struct {
	API      *transport.Client
	Sessions *repositories.SessionRepositoryImpl
	Sink     *mocks.MockNotificationSink
	Auth     *services.AuthServiceImpl
	Deals    *services.DealServiceImpl
	Users    *services.UserServiceImpl
	DBPath   string
}

func newSDK(t *testing.T, baseURL string) *SDK {
	t.Helper()
	return newSDKAt(t, baseURL, filepath.Join(t.TempDir(), "session.db"))
}

// newSDKAt builds the stack over an explicit session db path so tests can
// simulate a process restart by building a second stack over the same file.
func newSDKAt(t *testing.T, baseURL, dbPath string) *SDK {
	t.Helper()

	sessions, err := repositories.NewSessionRepository(dbPath)
	if err != nil {
		t.Fatalf("failed to open session store: %v", err)
	}
	t.Cleanup(func() { sessions.Close() })

	api := transport.NewClient(baseURL)
	sink := mocks.NewMockNotificationSink()

	return &SDK{
		API:      api,
		Sessions: sessions,
		Sink:     sink,
		Auth:     services.NewAuthService(api, sessions, sink, nil),
		Deals:    services.NewDealService(api, sink, nil),
		Users:    services.NewUserService(api, nil),
		DBPath:   dbPath,
	}
}
