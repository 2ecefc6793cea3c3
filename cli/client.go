package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"github.com/zerofinance/xwallet-console/redis"
	"github.com/zerofinance/xwallet-console/sdk/authx"
	"github.com/zerofinance/xwallet-console/sdk/locale"
	"github.com/zerofinance/xwallet-console/sdk/session"
	"go.uber.org/zap"
)

// environment is everything a command needs to talk to the xwallet backend
// on behalf of the current session.
type environment struct {
	settings settings
	logger   *zap.Logger
	store    *session.Store
	client   authx.APIClient
	// apiAddress is the address client talks to.
	apiAddress string
}

func getEnvironment(c *cli.Context, apiAddress string) (*environment, error) {
	s, err := getSettings()
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(c.String(flagLogLevel))
	if err != nil {
		return nil, err
	}
	if apiAddress, err = s.apiAddress(apiAddress); err != nil {
		return nil, errors.Wrap(err, "error retrieving configuration")
	}
	locales := locale.Config{
		Supported: s.Locales,
		Default:   s.DefaultLocale,
	}
	currentLocale := locales.FromPath("/" + c.String(flagLocale))

	store, err := getStore(s, logger)
	if err != nil {
		return nil, err
	}
	store.Hydrate()

	client := authx.NewAPIClient(
		apiAddress,
		store,
		&authx.ClientOptions{
			AllowInsecure: c.Bool(flagInsecure),
			Timeout:       s.APITimeout,
			Locales:       locales,
			Location: func() string {
				return "/" + currentLocale
			},
			Navigator: &consoleNavigator{
				consoleAddress: s.ConsoleAddress,
				browse:         c.Bool(flagBrowse),
				out:            os.Stdout,
				open:           openBrowser,
				logger:         logger,
			},
			Logger: logger,
		},
	)
	return &environment{
		settings:   s,
		logger:     logger,
		store:      store,
		client:     client,
		apiAddress: apiAddress,
	}, nil
}

func getStore(s settings, logger *zap.Logger) (*session.Store, error) {
	var durable session.Scope
	switch s.SessionBackend {
	case sessionBackendRedis:
		redisConfig, err := redis.GetConfig()
		if err != nil {
			return nil, err
		}
		durable = redis.NewDurableScope(redisConfig.Client(), redisConfig.Prefix)
	default:
		durable = session.NewFileScope(s.Home, session.DurableKey)
	}
	return session.NewStore(
		durable,
		session.NewFileScope(s.ephemeralDir(), session.EphemeralKey),
		&session.StoreOptions{
			Logger: logger,
		},
	), nil
}

func requireSession(env *environment) error {
	if !env.store.Session().IsAuthenticated {
		return errors.New(
			"you are not logged in; please use `xwallet login` to continue",
		)
	}
	return nil
}
