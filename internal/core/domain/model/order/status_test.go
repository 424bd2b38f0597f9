package order_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	for _, s := range order.AllStatuses() {
		require.NoError(t, s.Validate(), s.String())
	}

	require.Error(t, order.Unknown.Validate())
	require.Error(t, order.Status(42).Validate())
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Request", order.Request.String())
	assert.Equal(t, "Archive", order.Archive.String())
	assert.Equal(t, "Cancelled", order.Cancelled.String())
	assert.Equal(t, "Unknown", order.Status(42).String())
}

func TestStatusFromString(t *testing.T) {
	t.Run("round trips every valid status", func(t *testing.T) {
		for _, s := range order.AllStatuses() {
			parsed, err := order.StatusFromString(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("rejects unknown name", func(t *testing.T) {
		_, err := order.StatusFromString("Shipping")
		require.Error(t, err)
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Archive.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())

	for _, s := range []order.Status{order.Request, order.Receive, order.Pack, order.Transit, order.Delivery} {
		assert.False(t, s.IsTerminal(), s.String())
	}
}

func TestRole_Validate(t *testing.T) {
	for _, r := range []order.Role{order.RoleCustomer, order.RoleAdmin, order.RoleSuperAdmin, order.RoleSystem} {
		require.NoError(t, r.Validate(), r.String())
	}

	require.Error(t, order.RoleUnknown.Validate())
	require.Error(t, order.Role(42).Validate())
}

func TestRoleFromString(t *testing.T) {
	parsed, err := order.RoleFromString("SuperAdmin")
	require.NoError(t, err)
	assert.Equal(t, order.RoleSuperAdmin, parsed)

	_, err = order.RoleFromString("Operator")
	require.Error(t, err)
}

func TestRoleSet_Contains(t *testing.T) {
	set := order.RoleSet{order.RoleAdmin, order.RoleSuperAdmin}

	assert.True(t, set.Contains(order.RoleAdmin))
	assert.False(t, set.Contains(order.RoleCustomer))
	assert.False(t, order.RoleSet(nil).Contains(order.RoleAdmin))
}
