package authx

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zerofinance/xwallet-console/sdk/session"
)

func TestNewRolesClient(t *testing.T) {
	store, _ := newTestStore()
	client := NewRolesClient(testAPIAddress, store, newTestOptions(nil))
	require.IsType(t, &rolesClient{}, client)
	requireBaseClient(t, client.(*rolesClient).BaseClient, store)
}

func TestRolesClientList(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodGet, r.Method)
				require.Equal(t, "/role/list", r.URL.Path)
				fmt.Fprintln(
					w,
					`{"code":200,"data":[{"id":1,"roleCode":"SUPER_ADMIN",`+
						`"roleName":"超级管理员","status":1,"sortOrder":1,"userCount":3}]}`,
				)
			},
		),
	)
	defer server.Close()

	store, _ := newTestStore()
	store.SetAuth(session.User{ID: 1}, testToken, nil, false)
	client := NewRolesClient(server.URL, store, nil)
	roles, err := client.List(context.Background())
	require.NoError(t, err)
	require.Equal(
		t,
		[]Role{
			{
				ID:        1,
				RoleCode:  "SUPER_ADMIN",
				RoleName:  "超级管理员",
				Status:    1,
				SortOrder: 1,
				UserCount: 3,
			},
		},
		roles,
	)
}
