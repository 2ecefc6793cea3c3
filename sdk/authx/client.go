package authx

import (
	"crypto/tls"
	"net/http"
	"time"

	"github.com/zerofinance/xwallet-console/sdk/internal/apimachinery"
	"github.com/zerofinance/xwallet-console/sdk/locale"
	"github.com/zerofinance/xwallet-console/sdk/session"
	"go.uber.org/zap"
)

// ClientOptions represents optional settings shared by every specialized
// client in this package.
type ClientOptions struct {
	// AllowInsecure skips TLS certificate verification.
	AllowInsecure bool
	// Timeout bounds each request. Zero means no client-side timeout.
	Timeout time.Duration
	// Locales determines the login route used after an unauthorized
	// response.
	Locales locale.Config
	// Location returns the console path the caller is on.
	Location func() string
	// Navigator is sent to the login route after an unauthorized response.
	Navigator locale.Navigator
	Logger    *zap.Logger
}

func newBaseClient(
	apiAddress string,
	store *session.Store,
	opts *ClientOptions,
) *apimachinery.BaseClient {
	if opts == nil {
		opts = &ClientOptions{}
	}
	b := &apimachinery.BaseClient{
		APIAddress: apiAddress,
		HTTPClient: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: opts.AllowInsecure, // nolint: gosec
				},
			},
		},
		Locales:   opts.Locales,
		Location:  opts.Location,
		Navigator: opts.Navigator,
		Logger:    opts.Logger,
	}
	// Avoid a non-nil interface wrapping a nil *session.Store
	if store != nil {
		b.Credentials = store
	}
	return b
}
