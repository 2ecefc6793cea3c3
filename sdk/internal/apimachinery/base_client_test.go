package apimachinery

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"github.com/zerofinance/xwallet-console/sdk/locale"
	"github.com/zerofinance/xwallet-console/sdk/meta"
	"github.com/zerofinance/xwallet-console/sdk/session"
)

const testToken = "opensesame"

var testUser = session.User{
	ID:         1,
	EmployeeNo: "ADMIN001",
	Username:   "Admin User",
	Status:     1,
}

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

func newTestClient(
	address string,
	path string,
) (*BaseClient, *session.Store, *session.MemoryScope, *recordingNavigator) {
	durable := session.NewMemoryScope()
	store := session.NewStore(durable, session.NewMemoryScope(), nil)
	navigator := &recordingNavigator{}
	return &BaseClient{
		APIAddress:  address,
		Credentials: store,
		HTTPClient:  &http.Client{},
		Locales:     locale.DefaultConfig(),
		Location: func() string {
			return path
		},
		Navigator: navigator,
	}, store, durable, navigator
}

func TestExecuteRequestAttachesCredential(t *testing.T) {
	router := mux.NewRouter()
	var authHeaders []string
	router.HandleFunc(
		"/api/user/list",
		func(w http.ResponseWriter, r *http.Request) {
			authHeaders = append(authHeaders, r.Header.Get("Authorization"))
			require.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NotEmpty(t, r.Header.Get("X-Request-Id"))
			require.Equal(t, "2", r.URL.Query().Get("page"))
			fmt.Fprintln(w, `{"code":200,"message":"success","data":{"total":1}}`)
		},
	).Methods(http.MethodGet)
	server := httptest.NewServer(router)
	defer server.Close()

	client, store, _, _ := newTestClient(server.URL+"/api", "/zh-CN/users")
	req := OutboundRequest{
		Method:      http.MethodGet,
		Path:        "user/list",
		QueryParams: map[string]string{"page": "2"},
		Envelope:    true,
	}

	// Without a session, no credential is sent
	require.NoError(t, client.ExecuteRequest(context.Background(), req))

	// The token is read at call time
	store.SetAuth(testUser, testToken, nil, false)
	page := meta.ListMeta{}
	req.RespObj = &page
	require.NoError(t, client.ExecuteRequest(context.Background(), req))
	require.Equal(t, int64(1), page.Total)

	require.Equal(t, []string{"", "Bearer " + testToken}, authHeaders)
}

func TestExecuteRequestUnauthorized(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				fmt.Fprintln(w, `{"code": 401, "errmsg": "Token 无效或已过期"}`)
			},
		),
	)
	defer server.Close()

	client, store, durable, navigator :=
		newTestClient(server.URL, "/en-US/loan/transactions")
	store.SetAuth(testUser, testToken, nil, true)

	err := client.ExecuteRequest(
		context.Background(),
		OutboundRequest{
			Method: http.MethodGet,
			Path:   "loan/transactions",
		},
	)
	require.Error(t, err)
	unauthorizedErr, ok := errors.Cause(err).(*meta.ErrUnauthorized)
	require.True(t, ok)
	require.Equal(t, "Unauthorized", unauthorizedErr.Error())
	require.Equal(t, "Token 无效或已过期", unauthorizedErr.Reason)

	s := store.Session()
	require.False(t, s.IsAuthenticated)
	require.Nil(t, s.User)
	require.Empty(t, s.Token)
	data, err := durable.Read()
	require.NoError(t, err)
	require.Nil(t, data)
	require.Equal(t, []string{"/en-US/login"}, navigator.Routes())
}

func TestExecuteRequestConcurrentUnauthorized(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				<-release
				w.WriteHeader(http.StatusUnauthorized)
			},
		),
	)
	defer server.Close()

	client, store, _, navigator := newTestClient(server.URL, "/unknown/path")
	store.SetAuth(testUser, testToken, nil, false)

	const requests = 8
	errs := make(chan error, requests)
	started := sync.WaitGroup{}
	for i := 0; i < requests; i++ {
		started.Add(1)
		go func() {
			started.Done()
			errs <- client.ExecuteRequest(
				context.Background(),
				OutboundRequest{
					Method: http.MethodGet,
					Path:   "role/list",
				},
			)
		}()
	}
	started.Wait()
	close(release)
	for i := 0; i < requests; i++ {
		_, ok := errors.Cause(<-errs).(*meta.ErrUnauthorized)
		require.True(t, ok)
	}
	require.False(t, store.Session().IsAuthenticated)
	// Unrecognized locale segments fall back to the default
	require.Equal(t, []string{"/zh-CN/login"}, navigator.Routes())
}

func TestExecuteRequestFailures(t *testing.T) {
	testCases := []struct {
		name       string
		handler    http.HandlerFunc
		req        OutboundRequest
		assertions func(t *testing.T, err error)
	}{
		{
			name: "server-supplied message",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
				fmt.Fprintln(w, `{"message":"无 user:view 权限"}`)
			},
			assertions: func(t *testing.T, err error) {
				reqErr, ok := errors.Cause(err).(*meta.ErrRequestFailed)
				require.True(t, ok)
				require.Equal(t, http.StatusForbidden, reqErr.StatusCode)
				require.Equal(t, "无 user:view 权限", reqErr.Message)
			},
		},
		{
			name: "errmsg field",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
				fmt.Fprintln(w, `{"code":403,"errmsg":"用户已被禁用"}`)
			},
			assertions: func(t *testing.T, err error) {
				reqErr, ok := errors.Cause(err).(*meta.ErrRequestFailed)
				require.True(t, ok)
				require.Equal(t, "用户已被禁用", reqErr.Message)
			},
		},
		{
			name: "no message falls back to status text",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				fmt.Fprintln(w, "<html>bad gateway</html>")
			},
			assertions: func(t *testing.T, err error) {
				reqErr, ok := errors.Cause(err).(*meta.ErrRequestFailed)
				require.True(t, ok)
				require.Equal(t, http.StatusBadGateway, reqErr.StatusCode)
				require.Equal(t, "Bad Gateway", reqErr.Message)
			},
		},
		{
			name: "unexpected success code",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			},
			req: OutboundRequest{
				SuccessCode: http.StatusCreated,
			},
			assertions: func(t *testing.T, err error) {
				reqErr, ok := errors.Cause(err).(*meta.ErrRequestFailed)
				require.True(t, ok)
				require.Equal(t, http.StatusOK, reqErr.StatusCode)
			},
		},
		{
			name: "envelope failure",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprintln(w, `{"code":400,"message":"工号或密码错误"}`)
			},
			req: OutboundRequest{
				Envelope: true,
			},
			assertions: func(t *testing.T, err error) {
				reqErr, ok := errors.Cause(err).(*meta.ErrRequestFailed)
				require.True(t, ok)
				require.Equal(t, 400, reqErr.StatusCode)
				require.Equal(t, "工号或密码错误", reqErr.Message)
			},
		},
		{
			name: "envelope failure without message",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprintln(w, `{"code":500}`)
			},
			req: OutboundRequest{
				Envelope: true,
			},
			assertions: func(t *testing.T, err error) {
				reqErr, ok := errors.Cause(err).(*meta.ErrRequestFailed)
				require.True(t, ok)
				require.Equal(t, "request failed", reqErr.Message)
			},
		},
		{
			name: "unparsable success body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprintln(w, "not json")
			},
			req: OutboundRequest{
				RespObj: &map[string]interface{}{},
			},
			assertions: func(t *testing.T, err error) {
				require.Error(t, err)
				require.Contains(t, err.Error(), "error unmarshaling response body")
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			server := httptest.NewServer(testCase.handler)
			defer server.Close()
			client, store, _, navigator := newTestClient(server.URL, "/en-US")
			store.SetAuth(testUser, testToken, nil, false)
			req := testCase.req
			req.Method = http.MethodGet
			req.Path = "anything"
			err := client.ExecuteRequest(context.Background(), req)
			testCase.assertions(t, err)
			// Only a 401 ends the session
			require.True(t, store.Session().IsAuthenticated)
			require.Empty(t, navigator.Routes())
		})
	}
}

func TestExecuteRequestNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	address := server.URL
	server.Close()

	client, store, _, navigator := newTestClient(address, "/en-US")
	store.SetAuth(testUser, testToken, nil, false)
	err := client.ExecuteRequest(
		context.Background(),
		OutboundRequest{
			Method: http.MethodGet,
			Path:   "user/list",
		},
	)
	networkErr, ok := err.(*meta.ErrNetwork)
	require.True(t, ok)
	require.Contains(t, networkErr.Error(), "network error")
	require.True(t, store.Session().IsAuthenticated)
	require.Empty(t, navigator.Routes())
}

func TestExecuteRequestWithoutCollaborators(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Empty(t, r.Header.Get("Authorization"))
				w.WriteHeader(http.StatusUnauthorized)
			},
		),
	)
	defer server.Close()
	client := &BaseClient{APIAddress: server.URL}
	err := client.ExecuteRequest(
		context.Background(),
		OutboundRequest{
			Method: http.MethodGet,
			Path:   "auth/validate",
		},
	)
	_, ok := err.(*meta.ErrUnauthorized)
	require.True(t, ok)
}
