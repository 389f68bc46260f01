//go:build unit

package user_test

import (
	"testing"

	"campus-order-service/internal/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name    string
	subject string
	role    string
	errIs   error
}

func TestPrincipal(t *testing.T) {
	t.Run("基本成功ケース", func(t *testing.T) {
		p, err := user.NewPrincipal(" +919876543210 ", "student")
		require.NoError(t, err)

		assert.Equal(t, "+919876543210", p.StudentID())
		assert.Equal(t, user.RoleStudent, p.Role())
	})

	t.Run("電話番号検証", func(t *testing.T) {
		runCases(t, []testCase{
			{name: "数字のみOK", subject: "9876543210", role: "student"},
			{name: "国番号付きOK", subject: "+15550001111", role: "vendor"},
			{name: "空NG", subject: "", role: "student", errIs: user.ErrInvalidPhone},
			{name: "短すぎNG", subject: "12345", role: "student", errIs: user.ErrInvalidPhone},
			{name: "文字混在NG", subject: "98765abc10", role: "student", errIs: user.ErrInvalidPhone},
		})
	})

	t.Run("ロール検証", func(t *testing.T) {
		runCases(t, []testCase{
			{name: "student ロールOK", subject: "9876543210", role: "student"},
			{name: "vendor ロールOK", subject: "9876543210", role: "vendor"},
			{name: "admin ロールOK", subject: "9876543210", role: "admin"},
			{name: "無効なロールNG", subject: "9876543210", role: "viewer", errIs: user.ErrInvalidRole},
			{name: "空のロールNG", subject: "9876543210", role: "", errIs: user.ErrInvalidRole},
		})
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := user.NewPrincipal(tc.subject, tc.role)
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, p)
		})
	}
}
