package authx

import "github.com/zerofinance/xwallet-console/sdk/session"

// APIClient is the root of a tree of more specialized API clients for the
// xwallet console backend.
type APIClient interface {
	// Sessions returns a specialized client for logging in and out.
	Sessions() SessionsClient
	// Users returns a specialized client for User queries.
	Users() UsersClient
	// Roles returns a specialized client for Role queries.
	Roles() RolesClient
}

type apiClient struct {
	sessionsClient SessionsClient
	usersClient    UsersClient
	rolesClient    RolesClient
}

// NewAPIClient returns a client for the xwallet console backend at
// apiAddress. Every request carries the bearer token currently held by store,
// and an unauthorized response tears down the session in store.
func NewAPIClient(
	apiAddress string,
	store *session.Store,
	opts *ClientOptions,
) APIClient {
	return &apiClient{
		sessionsClient: NewSessionsClient(apiAddress, store, opts),
		usersClient:    NewUsersClient(apiAddress, store, opts),
		rolesClient:    NewRolesClient(apiAddress, store, opts),
	}
}

func (a *apiClient) Sessions() SessionsClient {
	return a.sessionsClient
}

func (a *apiClient) Users() UsersClient {
	return a.usersClient
}

func (a *apiClient) Roles() RolesClient {
	return a.rolesClient
}
