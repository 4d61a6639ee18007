package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscountTypeJSON(t *testing.T) {
	var d DiscountType
	require.NoError(t, json.Unmarshal([]byte(`"PERCENTAGE"`), &d))
	assert.Equal(t, DiscountTypePercentage, d)

	assert.Error(t, json.Unmarshal([]byte(`"HALF"`), &d))
	assert.Equal(t, DiscountTypeAmount, DiscountType("").OrDefault())
}

func TestPaymentMethod(t *testing.T) {
	for _, m := range PaymentMethods {
		assert.True(t, m.IsValid(), m)
	}
	assert.False(t, PaymentMethod("CARD").IsValid())
	assert.Equal(t, "Bank Transfer", PaymentMethodTransfer.Label())

	var m PaymentMethod
	assert.Error(t, json.Unmarshal([]byte(`"CARD"`), &m))
}

func TestStockMovementTypeStrict(t *testing.T) {
	var s StockMovementType
	require.NoError(t, json.Unmarshal([]byte(`"ADJUSTMENT"`), &s))
	assert.Equal(t, StockMovementAdjustment, s)
	assert.Error(t, json.Unmarshal([]byte(`""`), &s))
}

func TestUserRole(t *testing.T) {
	var r UserRole
	require.NoError(t, json.Unmarshal([]byte(`"MANAGER"`), &r))
	assert.True(t, r.CanManageCatalog())
	assert.False(t, UserRoleTechnician.CanManageCatalog())

	require.NoError(t, r.Scan([]byte("OWNER")))
	assert.Equal(t, UserRoleOwner, r)
	assert.Error(t, r.Scan(42))
}
