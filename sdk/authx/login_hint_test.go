package authx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLoginHint(t *testing.T) {
	intPtr := func(i int) *int {
		return &i
	}
	testCases := []struct {
		message  string
		expected LoginHint
	}{
		{
			message:  "用户名或密码错误",
			expected: LoginHint{},
		},
		{
			message:  "",
			expected: LoginHint{},
		},
		{
			message:  "密码错误，剩余3次尝试机会",
			expected: LoginHint{RemainingAttempts: intPtr(3)},
		},
		{
			message:  "密码错误，还可尝试 2 次",
			expected: LoginHint{RemainingAttempts: intPtr(2)},
		},
		{
			message:  "Invalid password, 4 attempts remaining",
			expected: LoginHint{RemainingAttempts: intPtr(4)},
		},
		{
			message:  "Invalid password. 1 attempt left",
			expected: LoginHint{RemainingAttempts: intPtr(1)},
		},
		{
			message:  "Remaining attempts: 0",
			expected: LoginHint{RemainingAttempts: intPtr(0)},
		},
		{
			message:  "账户已锁定15分钟",
			expected: LoginHint{LockoutSeconds: intPtr(900)},
		},
		{
			message:  "账户已锁定，请30秒后重试",
			expected: LoginHint{LockoutSeconds: intPtr(30)},
		},
		{
			message:  "登录失败，还有 2 次尝试机会",
			expected: LoginHint{RemainingAttempts: intPtr(2)},
		},
		{
			message:  "账户已锁定，请 30 秒后重试",
			expected: LoginHint{LockoutSeconds: intPtr(30)},
		},
		{
			message:  "已锁定 45 秒",
			expected: LoginHint{LockoutSeconds: intPtr(45)},
		},
		{
			message:  "Account locked for 30 seconds",
			expected: LoginHint{LockoutSeconds: intPtr(30)},
		},
		{
			message:  "Too many failures. Try again in 2 hours",
			expected: LoginHint{LockoutSeconds: intPtr(7200)},
		},
		{
			message: "密码错误，剩余0次，账户锁定1小时",
			expected: LoginHint{
				RemainingAttempts: intPtr(0),
				LockoutSeconds:    intPtr(3600),
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.message, func(t *testing.T) {
			hint := ParseLoginHint(testCase.message)
			require.Equal(t, testCase.expected, hint)
			require.Equal(
				t,
				testCase.expected.RemainingAttempts == nil &&
					testCase.expected.LockoutSeconds == nil,
				hint.Empty(),
			)
		})
	}
}
