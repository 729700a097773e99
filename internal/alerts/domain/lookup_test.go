package domain

import (
	"testing"

	"github.com/smallbiznis/meterdash/internal/metering"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(id, alertType string) metering.AlertRecord {
	return metering.AlertRecord{
		CustomerStatus: "ok",
		Alert:          metering.Alert{ID: id, Type: alertType},
	}
}

func TestLookupFirstMatchWins(t *testing.T) {
	pair := Lookup([]metering.AlertRecord{
		record("a1", BalanceAlertType),
		record("a2", BalanceAlertType),
		record("a3", SpendAlertType),
	})

	require.NotNil(t, pair.Balance)
	assert.Equal(t, "a1", pair.Balance.Alert.ID, "later duplicates are ignored")
	require.NotNil(t, pair.Spend)
	assert.Equal(t, "a3", pair.Spend.Alert.ID)
}

func TestLookupMissingTypesAreNil(t *testing.T) {
	pair := Lookup([]metering.AlertRecord{
		record("a1", "some_other_alert"),
		record("a2", SpendAlertType),
	})

	assert.Nil(t, pair.Balance)
	require.NotNil(t, pair.Spend)
	assert.Equal(t, "a2", pair.Spend.Alert.ID)
}

func TestLookupEmptyList(t *testing.T) {
	pair := Lookup(nil)
	assert.Nil(t, pair.Balance)
	assert.Nil(t, pair.Spend)
}
