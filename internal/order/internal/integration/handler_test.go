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

//go:build e2e

package integration

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/ecodeclub/ekit/iox"
	"github.com/ecodeclub/emall/internal/coupon"
	"github.com/ecodeclub/emall/internal/order"
	"github.com/ecodeclub/emall/internal/order/internal/errs"
	"github.com/ecodeclub/emall/internal/order/internal/repository/dao"
	"github.com/ecodeclub/emall/internal/order/internal/web"
	"github.com/ecodeclub/emall/internal/payment"
	"github.com/ecodeclub/emall/internal/product"
	"github.com/ecodeclub/emall/internal/test"
	testioc "github.com/ecodeclub/emall/internal/test/ioc"
	"github.com/ecodeclub/ginx/session"
	"github.com/ego-component/egorm"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/server/egin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const testUID = 234

type fakePaymentService struct {
	payment.Service
	counter atomic.Int64
}

func (f *fakePaymentService) CreatePayment(_ context.Context, p payment.Payment) (payment.Payment, error) {
	id := f.counter.Add(1)
	p.ID = id
	p.SN = fmt.Sprintf("PaymentSN-%d", id)
	p.CodeURL = "weixin://wxpay/bizpayurl/fake"
	return p, nil
}

type fakeProductService struct {
	product.Service
}

func (f *fakeProductService) FindSKUBySN(_ context.Context, sn string) (product.SPU, error) {
	skus := map[string]product.SKU{
		"SKU100": {
			ID:     100,
			SPUID:  10,
			SN:     "SKU100",
			Name:   "帆布鞋",
			Color:  "白色",
			Size:   "42",
			Price:  990,
			Stock:  10,
			Status: product.StatusOnShelf,
		},
		"SKU101": {
			ID:     101,
			SPUID:  10,
			SN:     "SKU101",
			Name:   "帆布鞋",
			Color:  "黑色",
			Size:   "41",
			Price:  9900,
			Stock:  1,
			Status: product.StatusOnShelf,
		},
	}
	sku, ok := skus[sn]
	if !ok {
		return product.SPU{}, fmt.Errorf("%w: sn=%s", product.ErrProductNotFound, sn)
	}
	return product.SPU{
		ID:     sku.SPUID,
		SN:     "SPU10",
		Name:   "帆布鞋",
		Status: product.StatusOnShelf,
		SKUs:   []product.SKU{sku},
	}, nil
}

func (f *fakeProductService) DecreaseStock(_ context.Context, _, _ int64) error {
	return nil
}

func (f *fakeProductService) ReleaseStock(_ context.Context, _, _ int64) error {
	return nil
}

type fakeCouponService struct {
	coupon.Service
}

func (f *fakeCouponService) Validate(_ context.Context, code string, _ int64) (coupon.Coupon, error) {
	if code != "OFF10" {
		return coupon.Coupon{}, fmt.Errorf("%w: code=%s", coupon.ErrCouponNotFound, code)
	}
	return coupon.Coupon{
		ID:              1,
		Code:            "OFF10",
		Name:            "九折券",
		DiscountPercent: 10,
		Status:          coupon.StatusActive,
	}, nil
}

func (f *fakeCouponService) Redeem(ctx context.Context, code string, uid, _ int64) (coupon.Coupon, error) {
	return f.Validate(ctx, code, uid)
}

type HandlerTestSuite struct {
	suite.Suite
	server *egin.Component
	db     *egorm.Component
	dao    dao.OrderDAO
}

func (s *HandlerTestSuite) SetupSuite() {
	s.db = testioc.InitDB()
	module, err := order.InitModule(s.db, testioc.InitCache(), testioc.InitMQ(),
		&fakePaymentService{}, &fakeProductService{}, &fakeCouponService{})
	require.NoError(s.T(), err)

	econf.Set("server", map[string]any{"contextTimeout": "1s"})
	server := egin.Load("server").Build()
	server.Use(func(ctx *gin.Context) {
		ctx.Set("_session", session.NewMemorySession(session.Claims{
			Uid: testUID,
		}))
	})
	module.Hdl.PrivateRoutes(server.Engine)

	s.server = server
	s.dao = dao.NewOrderGORMDAO(s.db)
}

func (s *HandlerTestSuite) TearDownSuite() {
	for _, table := range []string{"orders", "order_items", "order_status_histories"} {
		require.NoError(s.T(), s.db.Exec("DROP TABLE `"+table+"`").Error)
	}
}

func (s *HandlerTestSuite) TearDownTest() {
	for _, table := range []string{"orders", "order_items", "order_status_histories"} {
		require.NoError(s.T(), s.db.Exec("TRUNCATE TABLE `"+table+"`").Error)
	}
}

func (s *HandlerTestSuite) TestPreviewOrder() {
	t := s.T()
	resp := s.previewOrder(t, web.PreviewOrderReq{
		Items: []web.OrderItemReq{
			{SKUSN: "SKU100", Quantity: 2},
		},
		CouponCode: "OFF10",
	})
	assert.NotEmpty(t, resp.RequestID)
	assert.Equal(t, int64(1980), resp.OriginalTotalPrice)
	assert.Equal(t, int64(198), resp.DiscountAmount)
	assert.Equal(t, int64(1782), resp.RealTotalPrice)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "SKU100", resp.Items[0].SKUSN)
	assert.Equal(t, "白色 42", resp.Items[0].Attrs)
}

func (s *HandlerTestSuite) TestPreviewOrderFailed() {
	testCases := []struct {
		name     string
		req      web.PreviewOrderReq
		wantCode int
	}{
		{
			name: "SKU不存在",
			req: web.PreviewOrderReq{
				Items: []web.OrderItemReq{{SKUSN: "InvalidSN", Quantity: 1}},
			},
			wantCode: errs.InvalidSKU.Code,
		},
		{
			name: "购买数量非法",
			req: web.PreviewOrderReq{
				Items: []web.OrderItemReq{{SKUSN: "SKU100", Quantity: 0}},
			},
			wantCode: errs.InvalidSKU.Code,
		},
		{
			name: "库存不足",
			req: web.PreviewOrderReq{
				Items: []web.OrderItemReq{{SKUSN: "SKU101", Quantity: 2}},
			},
			wantCode: errs.InsufficientStock.Code,
		},
		{
			name: "优惠码不存在",
			req: web.PreviewOrderReq{
				Items:      []web.OrderItemReq{{SKUSN: "SKU100", Quantity: 1}},
				CouponCode: "NOPE",
			},
			wantCode: errs.InvalidCoupon.Code,
		},
	}
	for _, tc := range testCases {
		s.T().Run(tc.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodPost,
				"/order/preview", iox.NewJSONReader(tc.req))
			require.NoError(t, err)
			req.Header.Set("content-type", "application/json")
			recorder := test.NewJSONResponseRecorder[any]()
			s.server.ServeHTTP(recorder, req)
			require.Equal(t, 500, recorder.Code)
			assert.Equal(t, tc.wantCode, recorder.MustScan().Code)
		})
	}
}

func (s *HandlerTestSuite) TestCreateOrder() {
	t := s.T()
	preview := s.previewOrder(t, web.PreviewOrderReq{
		Items: []web.OrderItemReq{
			{SKUSN: "SKU100", Quantity: 2},
			{SKUSN: "SKU101", Quantity: 1},
		},
		CouponCode: "OFF10",
	})

	createReq := web.CreateOrderReq{
		RequestID: preview.RequestID,
		Items: []web.OrderItemReq{
			{SKUSN: "SKU100", Quantity: 2},
			{SKUSN: "SKU101", Quantity: 1},
		},
		CouponCode: "OFF10",
		Address: web.AddressReq{
			Recipient: "张三",
			Phone:     "13800000000",
			Province:  "广东省",
			City:      "深圳市",
			Detail:    "南山区某街道1号",
		},
	}
	req, err := http.NewRequest(http.MethodPost,
		"/order/create", iox.NewJSONReader(createReq))
	require.NoError(t, err)
	req.Header.Set("content-type", "application/json")
	recorder := test.NewJSONResponseRecorder[web.CreateOrderResp]()
	s.server.ServeHTTP(recorder, req)
	require.Equal(t, 200, recorder.Code)
	resp := recorder.MustScan().Data
	assert.Len(t, resp.OrderSN, 32)
	assert.Equal(t, "weixin://wxpay/bizpayurl/fake", resp.CodeURL)

	created, err := s.dao.FindOrderBySN(context.Background(), resp.OrderSN)
	require.NoError(t, err)
	assert.Equal(t, int64(testUID), created.BuyerId)
	assert.Equal(t, "OFF10", created.CouponCode)
	assert.Equal(t, int64(11880), created.OriginalTotalPrice)
	assert.Equal(t, int64(1188), created.DiscountAmount)
	assert.Equal(t, int64(10692), created.RealTotalPrice)
	assert.Equal(t, uint8(1), created.Status)
	assert.Equal(t, uint8(1), created.DeliveryStatus)
	assert.NotZero(t, created.PaymentId)
	assert.NotEmpty(t, created.PaymentSn)

	items, err := s.dao.FindOrderItems(context.Background(), created.Id)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	history, err := s.dao.FindStatusHistory(context.Background(), created.Id)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "订单已创建", history[0].Note)

	// 凭证只能用一次
	req, err = http.NewRequest(http.MethodPost,
		"/order/create", iox.NewJSONReader(createReq))
	require.NoError(t, err)
	req.Header.Set("content-type", "application/json")
	dupRecorder := test.NewJSONResponseRecorder[any]()
	s.server.ServeHTTP(dupRecorder, req)
	require.Equal(t, 500, dupRecorder.Code)
	assert.Equal(t, errs.DuplicateRequest.Code, dupRecorder.MustScan().Code)
}

func (s *HandlerTestSuite) TestCancelOrder() {
	t := s.T()
	sn := s.createOrder(t, []web.OrderItemReq{{SKUSN: "SKU100", Quantity: 1}})

	req, err := http.NewRequest(http.MethodPost,
		"/order/cancel", iox.NewJSONReader(web.OrderSNReq{SN: sn}))
	require.NoError(t, err)
	req.Header.Set("content-type", "application/json")
	recorder := test.NewJSONResponseRecorder[any]()
	s.server.ServeHTTP(recorder, req)
	require.Equal(t, 200, recorder.Code)

	statusReq, err := http.NewRequest(http.MethodPost,
		"/order/status", iox.NewJSONReader(web.OrderSNReq{SN: sn}))
	require.NoError(t, err)
	statusReq.Header.Set("content-type", "application/json")
	statusRecorder := test.NewJSONResponseRecorder[web.OrderStatusResp]()
	s.server.ServeHTTP(statusRecorder, statusReq)
	require.Equal(t, 200, statusRecorder.Code)
	status := statusRecorder.MustScan().Data
	assert.Equal(t, uint8(3), status.Status)
	assert.Equal(t, uint8(5), status.DeliveryStatus)

	// 已取消的订单不能再取消
	req, err = http.NewRequest(http.MethodPost,
		"/order/cancel", iox.NewJSONReader(web.OrderSNReq{SN: sn}))
	require.NoError(t, err)
	req.Header.Set("content-type", "application/json")
	againRecorder := test.NewJSONResponseRecorder[any]()
	s.server.ServeHTTP(againRecorder, req)
	require.Equal(t, 500, againRecorder.Code)
	assert.Equal(t, errs.OrderNotCancelable.Code, againRecorder.MustScan().Code)
}

func (s *HandlerTestSuite) TestRetrieveOrderStatusNotFound() {
	t := s.T()
	req, err := http.NewRequest(http.MethodPost,
		"/order/status", iox.NewJSONReader(web.OrderSNReq{SN: "NoSuchSN"}))
	require.NoError(t, err)
	req.Header.Set("content-type", "application/json")
	recorder := test.NewJSONResponseRecorder[any]()
	s.server.ServeHTTP(recorder, req)
	require.Equal(t, 500, recorder.Code)
	assert.Equal(t, errs.OrderNotFound.Code, recorder.MustScan().Code)
}

func (s *HandlerTestSuite) previewOrder(t *testing.T, pr web.PreviewOrderReq) web.PreviewOrderResp {
	req, err := http.NewRequest(http.MethodPost,
		"/order/preview", iox.NewJSONReader(pr))
	require.NoError(t, err)
	req.Header.Set("content-type", "application/json")
	recorder := test.NewJSONResponseRecorder[web.PreviewOrderResp]()
	s.server.ServeHTTP(recorder, req)
	require.Equal(t, 200, recorder.Code)
	return recorder.MustScan().Data
}

func (s *HandlerTestSuite) createOrder(t *testing.T, items []web.OrderItemReq) string {
	preview := s.previewOrder(t, web.PreviewOrderReq{Items: items})
	req, err := http.NewRequest(http.MethodPost,
		"/order/create", iox.NewJSONReader(web.CreateOrderReq{
			RequestID: preview.RequestID,
			Items:     items,
			Address: web.AddressReq{
				Recipient: "张三",
				Phone:     "13800000000",
				Province:  "广东省",
				City:      "深圳市",
				Detail:    "南山区某街道1号",
			},
		}))
	require.NoError(t, err)
	req.Header.Set("content-type", "application/json")
	recorder := test.NewJSONResponseRecorder[web.CreateOrderResp]()
	s.server.ServeHTTP(recorder, req)
	require.Equal(t, 200, recorder.Code)
	return recorder.MustScan().Data.OrderSN
}

func TestHandler(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
