package authx

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/zerofinance/xwallet-console/sdk/internal/apimachinery"
	"github.com/zerofinance/xwallet-console/sdk/locale"
	"github.com/zerofinance/xwallet-console/sdk/session"
)

const (
	testAPIAddress = "localhost:8080/api"
	testToken      = "opensesame"
)

type recordingNavigator struct {
	mu     sync.Mutex
	routes []string
}

func (r *recordingNavigator) Navigate(route string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, route)
}

func (r *recordingNavigator) Routes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.routes...)
}

type testScopes struct {
	durable   *session.MemoryScope
	ephemeral *session.MemoryScope
}

func newTestStore() (*session.Store, testScopes) {
	scopes := testScopes{
		durable:   session.NewMemoryScope(),
		ephemeral: session.NewMemoryScope(),
	}
	return session.NewStore(scopes.durable, scopes.ephemeral, nil), scopes
}

func newTestOptions(navigator locale.Navigator) *ClientOptions {
	return &ClientOptions{
		Timeout: 5 * time.Second,
		Locales: locale.DefaultConfig(),
		Location: func() string {
			return "/en-US/dashboard"
		},
		Navigator: navigator,
	}
}

func requireBaseClient(
	t *testing.T,
	baseClient *apimachinery.BaseClient,
	store *session.Store,
) {
	require.Equal(t, testAPIAddress, baseClient.APIAddress)
	require.NotNil(t, baseClient.HTTPClient)
	require.Equal(t, 5*time.Second, baseClient.HTTPClient.Timeout)
	require.Equal(t, locale.DefaultConfig(), baseClient.Locales)
	require.NotNil(t, baseClient.Location)
	if store == nil {
		require.Nil(t, baseClient.Credentials)
	} else {
		require.Equal(t, store, baseClient.Credentials)
	}
}
