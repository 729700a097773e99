package domain

import "github.com/smallbiznis/meterdash/internal/metering"

// Lookup picks the customer's balance and spend alerts out of the full alert
// list. The first record of each type wins; later duplicates are ignored.
func Lookup(records []metering.AlertRecord) AlertPair {
	var pair AlertPair
	for i := range records {
		record := &records[i]
		switch record.Alert.Type {
		case BalanceAlertType:
			if pair.Balance == nil {
				pair.Balance = record
			}
		case SpendAlertType:
			if pair.Spend == nil {
				pair.Spend = record
			}
		}
	}
	return pair
}
