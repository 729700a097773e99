package service

import (
	"context"
	"errors"
	"testing"

	"github.com/smallbiznis/meterdash/internal/metering"
	spend "github.com/smallbiznis/meterdash/internal/spend/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeDraftInvoiceLister struct {
	invoices []metering.DraftInvoice
	err      error
	lastID   string
}

func (f *fakeDraftInvoiceLister) ListDraftInvoices(_ context.Context, customerID string, _ ...metering.CallOption) ([]metering.DraftInvoice, error) {
	f.lastID = customerID
	return f.invoices, f.err
}

func TestGetSpendClassifiesDraftInvoices(t *testing.T) {
	api := &fakeDraftInvoiceLister{invoices: []metering.DraftInvoice{{
		ID: "inv1",
		LineItems: []metering.DraftInvoiceLineItem{{
			Name:                  "API Calls - Tier 1",
			ProductType:           "usage",
			Total:                 40,
			CreditTypeName:        "USD (cents)",
			AppliedCommitOrCredit: &metering.AppliedCommitOrCredit{ID: "commit-1"},
		}},
	}}}

	svc := &Service{api: api, log: zap.NewNop()}
	resp, err := svc.GetSpend(context.Background(), spend.SpendRequest{CustomerID: "c1"})
	require.NoError(t, err)

	assert.Equal(t, "c1", api.lastID)
	assert.Equal(t, 40.0, resp.ProductTotals["API Calls"].BalanceDrawdown)
	assert.Equal(t, 40.0, resp.CommitApplicationTotals[spend.KeyBalanceDrawdown])
}

func TestGetSpendRequiresCustomer(t *testing.T) {
	svc := &Service{api: &fakeDraftInvoiceLister{}, log: zap.NewNop()}
	_, err := svc.GetSpend(context.Background(), spend.SpendRequest{})
	require.ErrorIs(t, err, spend.ErrInvalidCustomer)
}

func TestGetSpendPropagatesUpstreamError(t *testing.T) {
	boom := errors.New("upstream down")
	svc := &Service{api: &fakeDraftInvoiceLister{err: boom}, log: zap.NewNop()}
	_, err := svc.GetSpend(context.Background(), spend.SpendRequest{CustomerID: "c1"})
	require.ErrorIs(t, err, boom)
}
