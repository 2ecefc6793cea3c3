package authx

import (
	"context"
	"net/http"

	"github.com/zerofinance/xwallet-console/sdk/internal/apimachinery"
	"github.com/zerofinance/xwallet-console/sdk/session"
)

// Role is a named set of permissions that may be granted to Users.
type Role struct {
	ID          int64  `json:"id"`
	RoleCode    string `json:"roleCode"`
	RoleName    string `json:"roleName"`
	Description string `json:"description,omitempty"`
	Status      int    `json:"status"`
	SortOrder   int    `json:"sortOrder"`
	// UserCount is how many Users hold the Role.
	UserCount int64 `json:"userCount"`
}

// RolesClient is the specialized client for querying Roles.
type RolesClient interface {
	// List returns all Roles.
	List(context.Context) ([]Role, error)
}

type rolesClient struct {
	*apimachinery.BaseClient
}

// NewRolesClient returns a specialized client for querying Roles.
func NewRolesClient(
	apiAddress string,
	store *session.Store,
	opts *ClientOptions,
) RolesClient {
	return &rolesClient{
		BaseClient: newBaseClient(apiAddress, store, opts),
	}
}

func (r *rolesClient) List(ctx context.Context) ([]Role, error) {
	roles := []Role{}
	return roles, r.ExecuteRequest(
		ctx,
		apimachinery.OutboundRequest{
			Method:   http.MethodGet,
			Path:     "role/list",
			RespObj:  &roles,
			Envelope: true,
		},
	)
}
