package service

import (
	"context"
	"errors"
	"testing"

	"github.com/smallbiznis/meterdash/internal/metering"
	subscription "github.com/smallbiznis/meterdash/internal/subscription/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeContractAPI struct {
	contracts []metering.Contract
	listErr   error
	editErr   error
	lastEdit  metering.EditContractRequest
	edits     int
}

func (f *fakeContractAPI) ListContracts(_ context.Context, _ string, _ ...metering.CallOption) ([]metering.Contract, error) {
	return f.contracts, f.listErr
}

func (f *fakeContractAPI) EditContract(_ context.Context, req metering.EditContractRequest, _ ...metering.CallOption) error {
	f.edits++
	f.lastEdit = req
	return f.editErr
}

func newTestService(api contractAPI) *Service {
	return &Service{api: api, log: zap.NewNop()}
}

func TestListContracts(t *testing.T) {
	api := &fakeContractAPI{contracts: []metering.Contract{{ID: "ct1"}}}
	resp, err := newTestService(api).ListContracts(context.Background(), subscription.ListContractsRequest{CustomerID: "c1"})
	require.NoError(t, err)
	require.Len(t, resp.Contracts, 1)
	assert.Equal(t, "ct1", resp.Contracts[0].ID)
}

func TestCreateRechargeCommitValidatesAmount(t *testing.T) {
	api := &fakeContractAPI{}
	svc := newTestService(api)

	for _, amount := range []string{"", "abc", "0", "-50"} {
		err := svc.CreateRechargeCommit(context.Background(), subscription.RechargeRequest{
			CustomerID: "c1",
			ContractID: "ct1",
			Amount:     amount,
		})
		assert.ErrorIs(t, err, subscription.ErrInvalidAmount, "amount %q", amount)
	}
	assert.Zero(t, api.edits, "invalid amounts never reach the upstream")
}

func TestCreateRechargeCommit(t *testing.T) {
	api := &fakeContractAPI{}
	err := newTestService(api).CreateRechargeCommit(context.Background(), subscription.RechargeRequest{
		CustomerID: "c1",
		ContractID: "ct1",
		Amount:     "500.25",
	})
	require.NoError(t, err)

	require.Len(t, api.lastEdit.AddCommits, 1)
	commit := api.lastEdit.AddCommits[0]
	assert.Equal(t, "prepaid", commit.Type)
	assert.Equal(t, "Recharge", commit.Name)
	assert.Equal(t, 500.25, commit.Amount)
	assert.Equal(t, "ct1", api.lastEdit.ContractID)
}

func TestUpdateSeatQuantityValidates(t *testing.T) {
	svc := newTestService(&fakeContractAPI{})

	err := svc.UpdateSeatQuantity(context.Background(), subscription.SeatQuantityRequest{
		CustomerID: "c1", ContractID: "ct1", SubscriptionID: "sub1", Quantity: 0,
	})
	assert.ErrorIs(t, err, subscription.ErrInvalidQuantity)

	err = svc.UpdateSeatQuantity(context.Background(), subscription.SeatQuantityRequest{
		CustomerID: "c1", ContractID: "ct1", Quantity: 5,
	})
	assert.ErrorIs(t, err, subscription.ErrInvalidSubscription)
}

func TestUpdateSeatQuantity(t *testing.T) {
	api := &fakeContractAPI{}
	err := newTestService(api).UpdateSeatQuantity(context.Background(), subscription.SeatQuantityRequest{
		CustomerID:     "c1",
		ContractID:     "ct1",
		SubscriptionID: "sub1",
		Quantity:       12,
	})
	require.NoError(t, err)

	require.Len(t, api.lastEdit.UpdateSubscriptions, 1)
	assert.Equal(t, "sub1", api.lastEdit.UpdateSubscriptions[0].SubscriptionID)
	assert.Equal(t, 12.0, api.lastEdit.UpdateSubscriptions[0].Quantity)
}

func TestEditErrorsPropagate(t *testing.T) {
	boom := errors.New("upstream down")
	err := newTestService(&fakeContractAPI{editErr: boom}).CreateRechargeCommit(context.Background(), subscription.RechargeRequest{
		CustomerID: "c1", ContractID: "ct1", Amount: "10",
	})
	require.ErrorIs(t, err, boom)
}
