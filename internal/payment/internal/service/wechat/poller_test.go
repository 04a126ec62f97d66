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

package wechat

import (
	"context"
	"testing"
	"time"

	"github.com/ecodeclub/emall/internal/payment/internal/domain"
	wechatmocks "github.com/ecodeclub/emall/internal/payment/internal/service/wechat/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wechatpay-apiv3/wechatpay-go/core"
	"github.com/wechatpay-apiv3/wechatpay-go/services/payments"
	"github.com/wechatpay-apiv3/wechatpay-go/services/payments/native"
	"go.uber.org/mock/gomock"
)

func newTransaction(orderSN, tradeState, txnID string) *payments.Transaction {
	return &payments.Transaction{
		OutTradeNo:    core.String(orderSN),
		TradeState:    core.String(tradeState),
		TransactionId: core.String(txnID),
	}
}

func TestStatusPollerStopsOnTerminalState(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	const orderSN = "order-SN-poll-1"

	mockAPI := wechatmocks.NewMockNativeAPIService(ctrl)
	gomock.InOrder(
		mockAPI.EXPECT().QueryOrderByOutTradeNo(gomock.Any(), gomock.Any()).
			Return(newTransaction(orderSN, "NOTPAY", ""), &core.APIResult{}, nil).Times(2),
		mockAPI.EXPECT().QueryOrderByOutTradeNo(gomock.Any(), gomock.Any()).
			Return(newTransaction(orderSN, "SUCCESS", "txn-3rd-1"), &core.APIResult{}, nil).Times(1),
	)

	svc := NewNativePaymentService(mockAPI, "appid", "mchid", "http://localhost/pay/callback")
	poller := NewStatusPoller(svc, time.Millisecond, 10)

	var applied []domain.Payment
	err := poller.Poll(context.Background(), orderSN, func(_ context.Context, pmt domain.Payment) error {
		applied = append(applied, pmt)
		return nil
	})

	// 第三次查到SUCCESS即停, 不会用完10次预算
	require.NoError(t, err)
	require.Len(t, applied, 1)
	assert.Equal(t, domain.PaymentStatusPaidSuccess, applied[0].Status)
	assert.Equal(t, orderSN, applied[0].OrderSN)
	assert.Equal(t, "txn-3rd-1", applied[0].PaymentNO3rd)
}

func TestStatusPollerExhaustsAttempts(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	const orderSN = "order-SN-poll-2"

	mockAPI := wechatmocks.NewMockNativeAPIService(ctrl)
	mockAPI.EXPECT().QueryOrderByOutTradeNo(gomock.Any(), gomock.Any()).
		Return(newTransaction(orderSN, "NOTPAY", ""), &core.APIResult{}, nil).Times(3)

	svc := NewNativePaymentService(mockAPI, "appid", "mchid", "http://localhost/pay/callback")
	poller := NewStatusPoller(svc, time.Millisecond, 3)

	err := poller.Poll(context.Background(), orderSN, func(context.Context, domain.Payment) error {
		t.Fatal("未达终态不应该落库")
		return nil
	})
	assert.ErrorIs(t, err, ErrPollingExhausted)
}

func TestStatusPollerRespectsContext(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	const orderSN = "order-SN-poll-3"

	mockAPI := wechatmocks.NewMockNativeAPIService(ctrl)
	mockAPI.EXPECT().QueryOrderByOutTradeNo(gomock.Any(), gomock.Any()).
		Return(newTransaction(orderSN, "NOTPAY", ""), &core.APIResult{}, nil).Times(1)

	svc := NewNativePaymentService(mockAPI, "appid", "mchid", "http://localhost/pay/callback")
	poller := NewStatusPoller(svc, time.Hour, 5)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := poller.Poll(ctx, orderSN, func(context.Context, domain.Payment) error {
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNativePaymentServicePrepay(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	mockAPI := wechatmocks.NewMockNativeAPIService(ctrl)
	mockAPI.EXPECT().Prepay(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req native.PrepayRequest) (*native.PrepayResponse, *core.APIResult, error) {
			assert.Equal(t, "order-SN-prepay", *req.OutTradeNo)
			assert.Equal(t, int64(4500), *req.Amount.Total)
			return &native.PrepayResponse{
				CodeUrl: core.String("weixin://wxpay/bizpayurl?pr=abc"),
			}, &core.APIResult{}, nil
		})

	svc := NewNativePaymentService(mockAPI, "appid", "mchid", "http://localhost/pay/callback")
	codeURL, err := svc.Prepay(context.Background(), domain.Payment{
		OrderSN:          "order-SN-prepay",
		OrderDescription: "电商订单",
		TotalAmount:      4500,
		Deadline:         time.Now().Add(time.Minute * 30).UnixMilli(),
	})
	require.NoError(t, err)
	assert.Equal(t, "weixin://wxpay/bizpayurl?pr=abc", codeURL)
}
