package authx

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/zerofinance/xwallet-console/sdk/internal/apimachinery"
	"github.com/zerofinance/xwallet-console/sdk/meta"
	"github.com/zerofinance/xwallet-console/sdk/session"
)

// userTypeSystem identifies console operators (as opposed to customers) to the
// backend's login endpoint.
const userTypeSystem = "SYSTEM"

// Credentials are what a console operator logs in with.
type Credentials struct {
	// EmployeeNo is the operator's employee number, which serves as the
	// account identifier.
	EmployeeNo string
	Password   string
	// RememberMe persists the resulting session to the durable scope.
	RememberMe bool
}

// LoginError is returned when a login attempt fails. No session is ever
// committed when a LoginError is returned.
type LoginError struct {
	// Message is the server-supplied (or, failing that, a generic)
	// description of the failure.
	Message string
	// Hint carries retry details parsed from Message, if any were found.
	Hint  LoginHint
	cause error
}

func (e *LoginError) Error() string {
	return e.Message
}

// Unwrap returns the error, if any, that caused the login to fail.
func (e *LoginError) Unwrap() error {
	return e.cause
}

func newLoginError(message string, cause error) *LoginError {
	if message == "" {
		message = "login failed"
	}
	return &LoginError{
		Message: message,
		Hint:    ParseLoginHint(message),
		cause:   cause,
	}
}

type loginRequest struct {
	UserType string `json:"userType"`
	Account  string `json:"account"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	UserInfo struct {
		UserID   int64    `json:"userId"`
		Username string   `json:"username"`
		UserType string   `json:"userType"`
		Roles    []string `json:"roles"`
	} `json:"userInfo"`
}

// SessionsClient is the specialized client for establishing and ending
// console sessions.
type SessionsClient interface {
	// Login exchanges credentials for a token and, on success, establishes a
	// session in the Store.
	Login(context.Context, Credentials) error
	// Logout ends the session. The server is asked to revoke the token, but
	// the local session is cleared regardless of the outcome.
	Logout(context.Context) error
	// Validate asks the server whether the current token is still valid.
	Validate(context.Context) (bool, error)
}

type sessionsClient struct {
	*apimachinery.BaseClient
	store *session.Store
}

// NewSessionsClient returns a specialized client for establishing and ending
// console sessions.
func NewSessionsClient(
	apiAddress string,
	store *session.Store,
	opts *ClientOptions,
) SessionsClient {
	return &sessionsClient{
		BaseClient: newBaseClient(apiAddress, store, opts),
		store:      store,
	}
}

func (s *sessionsClient) Login(
	ctx context.Context,
	credentials Credentials,
) error {
	if strings.TrimSpace(credentials.EmployeeNo) == "" ||
		strings.TrimSpace(credentials.Password) == "" {
		return newLoginError("employee number and password are required", nil)
	}
	result := meta.Result{}
	if err := s.ExecuteRequest(
		ctx,
		apimachinery.OutboundRequest{
			Method: http.MethodPost,
			Path:   "auth/login",
			ReqBodyObj: loginRequest{
				UserType: userTypeSystem,
				Account:  credentials.EmployeeNo,
				Password: credentials.Password,
			},
			RespObj: &result,
		},
	); err != nil {
		var reqErr *meta.ErrRequestFailed
		if errors.As(err, &reqErr) {
			return newLoginError(reqErr.Message, err)
		}
		var unauthErr *meta.ErrUnauthorized
		if errors.As(err, &unauthErr) {
			return newLoginError(unauthErr.Reason, err)
		}
		return newLoginError(err.Error(), err)
	}
	if !result.OK() || len(result.Data) == 0 || string(result.Data) == "null" {
		return newLoginError(result.Message, nil)
	}
	resp := loginResponse{}
	if err := json.Unmarshal(result.Data, &resp); err != nil {
		return newLoginError("", errors.Wrap(err, "error unmarshaling login data"))
	}
	if resp.Token == "" {
		return newLoginError("login response carried no token", nil)
	}

	user := session.User{
		ID:         resp.UserInfo.UserID,
		EmployeeNo: credentials.EmployeeNo,
		Username:   resp.UserInfo.Username,
		Status:     1,
		Roles:      make([]session.Role, len(resp.UserInfo.Roles)),
	}
	for i, roleCode := range resp.UserInfo.Roles {
		user.Roles[i] = session.Role{
			ID:       int64(i),
			RoleCode: roleCode,
			RoleName: roleCode,
		}
	}
	s.store.SetAuth(user, resp.Token, nil, credentials.RememberMe)
	return nil
}

func (s *sessionsClient) Logout(ctx context.Context) error {
	if s.store.Token() != "" {
		// The outcome is ignored; even if the server could not revoke the
		// token, the local session must still be destroyed.
		s.ExecuteRequest( // nolint: errcheck
			ctx,
			apimachinery.OutboundRequest{
				Method: http.MethodPost,
				Path:   "auth/logout",
			},
		)
	}
	s.store.Logout()
	return nil
}

func (s *sessionsClient) Validate(ctx context.Context) (bool, error) {
	var valid bool
	return valid, s.ExecuteRequest(
		ctx,
		apimachinery.OutboundRequest{
			Method:   http.MethodGet,
			Path:     "auth/validate",
			RespObj:  &valid,
			Envelope: true,
		},
	)
}
