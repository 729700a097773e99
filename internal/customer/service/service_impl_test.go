package service

import (
	"context"
	"errors"
	"testing"

	customer "github.com/smallbiznis/meterdash/internal/customer/domain"
	"github.com/smallbiznis/meterdash/internal/metering"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCustomerLister struct {
	customers []metering.Customer
	err       error
}

func (f *fakeCustomerLister) ListCustomers(_ context.Context, _ ...metering.CallOption) ([]metering.Customer, error) {
	return f.customers, f.err
}

func TestListReturnsAllWithoutSearch(t *testing.T) {
	api := &fakeCustomerLister{customers: []metering.Customer{
		{ID: "c1", Name: "Acme Corp"},
		{ID: "c2", Name: "Globex"},
	}}

	svc := &Service{api: api, log: zap.NewNop()}
	resp, err := svc.List(context.Background(), customer.ListRequest{})
	require.NoError(t, err)
	assert.Len(t, resp.Customers, 2)
}

func TestListFiltersByFoldedName(t *testing.T) {
	api := &fakeCustomerLister{customers: []metering.Customer{
		{ID: "c1", Name: "Acme Corp"},
		{ID: "c2", Name: "Globex"},
		{ID: "c3", Name: "ACME Labs"},
	}}

	svc := &Service{api: api, log: zap.NewNop()}
	resp, err := svc.List(context.Background(), customer.ListRequest{Search: "  acme "})
	require.NoError(t, err)

	require.Len(t, resp.Customers, 2)
	assert.Equal(t, "c1", resp.Customers[0].ID)
	assert.Equal(t, "c3", resp.Customers[1].ID)
}

func TestListPropagatesUpstreamError(t *testing.T) {
	boom := errors.New("upstream down")
	svc := &Service{api: &fakeCustomerLister{err: boom}, log: zap.NewNop()}
	_, err := svc.List(context.Background(), customer.ListRequest{})
	require.ErrorIs(t, err, boom)
}
