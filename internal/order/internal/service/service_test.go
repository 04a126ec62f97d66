// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package service

import (
	"context"
	"testing"

	"github.com/ecodeclub/emall/internal/order/internal/domain"
	"github.com/ecodeclub/emall/internal/order/internal/event"
	"github.com/ecodeclub/emall/internal/order/internal/repository"
	"github.com/ecodeclub/emall/internal/order/internal/repository/dao"
	"github.com/ecodeclub/emall/internal/pkg/sequencenumber"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderRepository struct {
	repository.OrderRepository
	orders map[string]domain.Order // sn -> order
	// 记录状态更新调用, 断言用
	statusUpdates   []statusUpdate
	deliveryUpdates []deliveryUpdate
}

type statusUpdate struct {
	orderID int64
	status  domain.OrderStatus
	note    string
}

type deliveryUpdate struct {
	orderID  int64
	from, to domain.DeliveryStatus
}

func (f *fakeOrderRepository) CreateOrder(_ context.Context, order domain.Order) (domain.Order, error) {
	order.ID = int64(len(f.orders) + 1)
	f.orders[order.SN] = order
	return order, nil
}

func (f *fakeOrderRepository) FindOrderBySNAndBuyerID(_ context.Context, sn string, buyerID int64) (domain.Order, error) {
	order, ok := f.orders[sn]
	if !ok || order.BuyerID != buyerID {
		return domain.Order{}, dao.ErrOrderNotFound
	}
	return order, nil
}

func (f *fakeOrderRepository) FindOrderBySN(_ context.Context, sn string) (domain.Order, error) {
	order, ok := f.orders[sn]
	if !ok {
		return domain.Order{}, dao.ErrOrderNotFound
	}
	return order, nil
}

func (f *fakeOrderRepository) UpdateOrderStatus(_ context.Context, orderID int64, status domain.OrderStatus, _ int64, _, note string) error {
	f.statusUpdates = append(f.statusUpdates, statusUpdate{orderID: orderID, status: status, note: note})
	for sn, order := range f.orders {
		if order.ID == orderID {
			order.Status = status
			f.orders[sn] = order
		}
	}
	return nil
}

func (f *fakeOrderRepository) UpdateDeliveryStatus(_ context.Context, orderID int64, from, to domain.DeliveryStatus, _, _ string) error {
	f.deliveryUpdates = append(f.deliveryUpdates, deliveryUpdate{orderID: orderID, from: from, to: to})
	return nil
}

type fakeCloseProducer struct {
	events []event.OrderCloseEvent
}

func (f *fakeCloseProducer) Produce(_ context.Context, evt event.OrderCloseEvent) error {
	f.events = append(f.events, evt)
	return nil
}

func newTestService(repo repository.OrderRepository, producer event.OrderCloseEventProducer) Service {
	return NewService(repo, sequencenumber.NewGenerator(), producer)
}

func TestServiceCreateOrder(t *testing.T) {
	t.Parallel()

	repo := &fakeOrderRepository{orders: map[string]domain.Order{}}
	svc := newTestService(repo, &fakeCloseProducer{})

	order, err := svc.CreateOrder(context.Background(), domain.Order{
		BuyerID:            234,
		OriginalTotalPrice: 5000,
		DiscountAmount:     500,
		RealTotalPrice:     4500,
		Items: []domain.OrderItem{
			{SKU: domain.SKU{ID: 1, Quantity: 1}},
		},
	})
	require.NoError(t, err)
	assert.NotZero(t, order.ID)
	assert.Len(t, order.SN, 32)
	assert.Equal(t, domain.OrderStatusUnpaid, order.Status)
	assert.Equal(t, domain.DeliveryStatusPending, order.DeliveryStatus)
}

func TestServiceCancelOrder(t *testing.T) {
	t.Parallel()
	const uid = int64(234)

	testCases := []struct {
		name       string
		order      domain.Order
		wantErr    error
		wantEvents int
	}{
		{
			name: "取消未支付订单",
			order: domain.Order{
				ID:       1,
				SN:       "OrderSN-1",
				BuyerID:  uid,
				CouponID: 9,
				Status:   domain.OrderStatusUnpaid,
				Items: []domain.OrderItem{
					{SKU: domain.SKU{ID: 1, Quantity: 2}},
				},
			},
			wantEvents: 1,
		},
		{
			name: "已支付订单不可取消",
			order: domain.Order{
				ID:      2,
				SN:      "OrderSN-2",
				BuyerID: uid,
				Status:  domain.OrderStatusPaid,
			},
			wantErr: ErrOrderNotCancelable,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			repo := &fakeOrderRepository{orders: map[string]domain.Order{
				tc.order.SN: tc.order,
			}}
			producer := &fakeCloseProducer{}
			svc := newTestService(repo, producer)

			err := svc.CancelOrder(context.Background(), uid, tc.order.SN)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Empty(t, producer.events)
				return
			}
			require.NoError(t, err)
			require.Len(t, producer.events, tc.wantEvents)
			evt := producer.events[0]
			assert.Equal(t, tc.order.ID, evt.OrderID)
			assert.Equal(t, tc.order.SN, evt.OrderSN)
			assert.Equal(t, tc.order.CouponID, evt.CouponID)
			require.Len(t, evt.SKUs, 1)
			assert.Equal(t, int64(2), evt.SKUs[0].Quantity)

			require.Len(t, repo.statusUpdates, 1)
			assert.Equal(t, domain.OrderStatusCanceled, repo.statusUpdates[0].status)
			// 未支付订单的配送记录同时作废
			require.Len(t, repo.deliveryUpdates, 1)
			assert.Equal(t, domain.DeliveryStatusCancelled, repo.deliveryUpdates[0].to)
		})
	}
}

func TestServiceCompleteOrder(t *testing.T) {
	t.Parallel()
	const uid = int64(234)

	repo := &fakeOrderRepository{orders: map[string]domain.Order{
		"OrderSN-paid": {
			ID:      1,
			SN:      "OrderSN-paid",
			BuyerID: uid,
			Status:  domain.OrderStatusUnpaid,
		},
	}}
	producer := &fakeCloseProducer{}
	svc := newTestService(repo, producer)

	err := svc.CompleteOrder(context.Background(), uid, "OrderSN-paid")
	require.NoError(t, err)
	require.Len(t, repo.statusUpdates, 1)
	assert.Equal(t, domain.OrderStatusPaid, repo.statusUpdates[0].status)
	// 支付成功不发关单事件
	assert.Empty(t, producer.events)

	err = svc.CompleteOrder(context.Background(), uid, "OrderSN-missing")
	assert.ErrorIs(t, err, dao.ErrOrderNotFound)
}

func TestServiceUpdateDeliveryStatus(t *testing.T) {
	t.Parallel()

	repo := &fakeOrderRepository{orders: map[string]domain.Order{}}
	svc := newTestService(repo, &fakeCloseProducer{})
	repo.orders["OrderSN-3"] = domain.Order{
		ID:             3,
		SN:             "OrderSN-3",
		BuyerID:        234,
		Status:         domain.OrderStatusPaid,
		DeliveryStatus: domain.DeliveryStatusPending,
	}

	err := svc.UpdateDeliveryStatus(context.Background(), "OrderSN-3", domain.DeliveryStatusShipped, "admin:1")
	assert.ErrorIs(t, err, domain.ErrInvalidDeliveryTransition)
	assert.Empty(t, repo.deliveryUpdates)

	err = svc.UpdateDeliveryStatus(context.Background(), "OrderSN-3", domain.DeliveryStatusConfirmed, "admin:1")
	require.NoError(t, err)
	require.Len(t, repo.deliveryUpdates, 1)
	assert.Equal(t, domain.DeliveryStatusPending, repo.deliveryUpdates[0].from)
	assert.Equal(t, domain.DeliveryStatusConfirmed, repo.deliveryUpdates[0].to)
}
