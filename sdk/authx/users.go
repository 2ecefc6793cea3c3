package authx

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/zerofinance/xwallet-console/sdk/internal/apimachinery"
	"github.com/zerofinance/xwallet-console/sdk/meta"
	"github.com/zerofinance/xwallet-console/sdk/session"
)

// User is a console operator as the backend's user management endpoints
// describe them.
type User struct {
	session.User `json:",inline"`
	// CreatedAt and UpdatedAt are passed through as the backend formats them.
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// UserList is an ordered and pageable list of Users.
type UserList struct {
	meta.ListMeta `json:",inline"`
	Items         []User `json:"list"`
}

// UsersSelector represents useful filter criteria when selecting multiple
// Users for API group operations like list.
type UsersSelector struct {
	// Keyword, if non-empty, matches Users by employee number, username, or
	// email.
	Keyword string
	// Status, if non-nil, selects only Users with the given status.
	Status *int
}

// UsersClient is the specialized client for querying Users.
type UsersClient interface {
	// List returns a UserList.
	List(context.Context, UsersSelector, meta.ListOptions) (UserList, error)
	// Get retrieves a single User specified by their identifier.
	Get(context.Context, int64) (User, error)
}

type usersClient struct {
	*apimachinery.BaseClient
}

// NewUsersClient returns a specialized client for querying Users.
func NewUsersClient(
	apiAddress string,
	store *session.Store,
	opts *ClientOptions,
) UsersClient {
	return &usersClient{
		BaseClient: newBaseClient(apiAddress, store, opts),
	}
}

func (u *usersClient) List(
	ctx context.Context,
	selector UsersSelector,
	opts meta.ListOptions,
) (UserList, error) {
	queryParams := listQueryParams(opts)
	if selector.Keyword != "" {
		queryParams["keyword"] = selector.Keyword
	}
	if selector.Status != nil {
		queryParams["status"] = strconv.Itoa(*selector.Status)
	}
	users := UserList{}
	return users, u.ExecuteRequest(
		ctx,
		apimachinery.OutboundRequest{
			Method:      http.MethodGet,
			Path:        "user/list",
			QueryParams: queryParams,
			RespObj:     &users,
			Envelope:    true,
		},
	)
}

func (u *usersClient) Get(ctx context.Context, id int64) (User, error) {
	user := User{}
	return user, u.ExecuteRequest(
		ctx,
		apimachinery.OutboundRequest{
			Method:   http.MethodGet,
			Path:     fmt.Sprintf("user/%d", id),
			RespObj:  &user,
			Envelope: true,
		},
	)
}

func listQueryParams(opts meta.ListOptions) map[string]string {
	queryParams := map[string]string{}
	if opts.Page > 0 {
		queryParams["page"] = strconv.Itoa(opts.Page)
	}
	if opts.Size > 0 {
		queryParams["size"] = strconv.Itoa(opts.Size)
	}
	return queryParams
}
