package domain

import (
	"testing"

	"github.com/smallbiznis/meterdash/internal/metering"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draftInvoice(lines ...metering.DraftInvoiceLineItem) []metering.DraftInvoice {
	return []metering.DraftInvoice{{ID: "inv1", LineItems: lines}}
}

func committedLine(name, productType string, total float64) metering.DraftInvoiceLineItem {
	return metering.DraftInvoiceLineItem{
		Name:                  name,
		ProductType:           productType,
		Total:                 total,
		CreditTypeName:        "USD (cents)",
		AppliedCommitOrCredit: &metering.AppliedCommitOrCredit{ID: "commit-1"},
	}
}

func overageLine(name, productType string, total float64) metering.DraftInvoiceLineItem {
	return metering.DraftInvoiceLineItem{
		Name:           name,
		ProductType:    productType,
		Total:          total,
		CreditTypeName: "USD (cents)",
	}
}

func TestClassifySplitsDrawdownAndOverage(t *testing.T) {
	out := Classify(draftInvoice(
		committedLine("API Calls - Tier 1", "usage", 50),
		overageLine("API Calls - Tier 2", "usage", 30),
	))

	product, ok := out.ProductTotals["API Calls"]
	require.True(t, ok)
	assert.Equal(t, 80.0, product.Total)
	assert.Equal(t, 50.0, product.BalanceDrawdown)
	assert.Equal(t, 30.0, product.Overages)

	assert.Equal(t, 50.0, out.CommitApplicationTotals[KeyBalanceDrawdown])
	assert.NotContains(t, out.CommitApplicationTotals, KeyOverages,
		"plain usage overage never reaches the commit application totals")
	assert.Equal(t, 80.0, out.TotalByCurrency["USD (cents)"])
}

func TestClassifyCPUConversionIsOverageOnly(t *testing.T) {
	out := Classify(draftInvoice(overageLine("CPU Conversion", "cpu_conversion", 20)))

	assert.Equal(t, 20.0, out.CommitApplicationTotals[KeyOverages])
	assert.NotContains(t, out.ProductTotals, "CPU Conversion")
	assert.Empty(t, out.ProductTotals)
	assert.Equal(t, 20.0, out.TotalByCurrency["USD (cents)"])
}

func TestClassifyCommittedCPUConversionDrawsDownOnly(t *testing.T) {
	out := Classify(draftInvoice(committedLine("CPU Conversion", "cpu_conversion", 15)))

	assert.Equal(t, 15.0, out.CommitApplicationTotals[KeyBalanceDrawdown])
	assert.NotContains(t, out.CommitApplicationTotals, KeyOverages,
		"a committed conversion line must not be double counted as overage")
	assert.Empty(t, out.ProductTotals)
}

func TestClassifyIgnoresZeroAndNegativeLines(t *testing.T) {
	out := Classify(draftInvoice(
		overageLine("Storage", "usage", 0),
		overageLine("Storage", "usage", -25),
	))

	assert.Empty(t, out.ProductTotals)
	assert.Empty(t, out.TotalByCurrency)
	assert.Empty(t, out.CommitApplicationTotals)
}

func TestClassifyEmptyCommitIDIsNotACommit(t *testing.T) {
	line := overageLine("Storage", "usage", 10)
	line.AppliedCommitOrCredit = &metering.AppliedCommitOrCredit{}

	out := Classify(draftInvoice(line))

	assert.Equal(t, 10.0, out.ProductTotals["Storage"].Overages)
	assert.NotContains(t, out.CommitApplicationTotals, KeyBalanceDrawdown)
}

func TestClassifyProductTypeLastWriteWins(t *testing.T) {
	out := Classify(draftInvoice(
		overageLine("Storage", "usage", 10),
		overageLine("Storage", "subscription", 5),
	))

	// The last line seen for a product sets its type, even when earlier
	// lines carried a different one.
	assert.Equal(t, "subscription", out.ProductTotals["Storage"].Type)
	assert.Equal(t, 15.0, out.ProductTotals["Storage"].Total)
}

func TestClassifyAccumulatesPerCurrency(t *testing.T) {
	eur := overageLine("Storage", "usage", 7)
	eur.CreditTypeName = "EUR"

	out := Classify(draftInvoice(
		overageLine("Storage", "usage", 10),
		eur,
	))

	assert.Equal(t, 10.0, out.TotalByCurrency["USD (cents)"])
	assert.Equal(t, 7.0, out.TotalByCurrency["EUR"])
}

func TestClassifySpansMultipleInvoices(t *testing.T) {
	out := Classify([]metering.DraftInvoice{
		{ID: "inv1", LineItems: []metering.DraftInvoiceLineItem{overageLine("Storage", "usage", 10)}},
		{ID: "inv2", LineItems: []metering.DraftInvoiceLineItem{committedLine("Storage", "usage", 5)}},
	})

	assert.Equal(t, 15.0, out.ProductTotals["Storage"].Total)
	assert.Equal(t, 5.0, out.CommitApplicationTotals[KeyBalanceDrawdown])
}
