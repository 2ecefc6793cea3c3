package main

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"github.com/zerofinance/xwallet-console/sdk/authx"
)

func TestLoginFailure(t *testing.T) {
	intPtr := func(i int) *int {
		return &i
	}
	testCases := []struct {
		name       string
		err        error
		assertions func(*testing.T, error)
	}{
		{
			name: "not a login error",
			err:  errors.New("something else"),
			assertions: func(t *testing.T, err error) {
				require.Equal(t, "something else", err.Error())
			},
		},
		{
			name: "no hint",
			err:  &authx.LoginError{Message: "用户名或密码错误"},
			assertions: func(t *testing.T, err error) {
				require.Equal(t, "用户名或密码错误", err.Error())
			},
		},
		{
			name: "remaining attempts",
			err: &authx.LoginError{
				Message: "密码错误，剩余2次",
				Hint:    authx.LoginHint{RemainingAttempts: intPtr(2)},
			},
			assertions: func(t *testing.T, err error) {
				require.Contains(t, err.Error(), "2 attempt(s) remain")
			},
		},
		{
			name: "locked out",
			err: &authx.LoginError{
				Message: "账户已锁定15分钟",
				Hint:    authx.LoginHint{LockoutSeconds: intPtr(900)},
			},
			assertions: func(t *testing.T, err error) {
				require.Contains(t, err.Error(), "Try again in 15m0s.")
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			testCase.assertions(t, loginFailure(testCase.err))
		})
	}
}
