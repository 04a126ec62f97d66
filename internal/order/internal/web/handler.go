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

package web

import (
	"errors"
	"fmt"
	"time"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/emall/internal/coupon"
	"github.com/ecodeclub/emall/internal/order/internal/domain"
	"github.com/ecodeclub/emall/internal/order/internal/repository/dao"
	"github.com/ecodeclub/emall/internal/order/internal/service"
	"github.com/ecodeclub/emall/internal/payment"
	"github.com/ecodeclub/emall/internal/product"
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"
	"github.com/lithammer/shortuuid/v4"
)

var _ ginx.Handler = &Handler{}

const (
	// 预览产生的下单凭证有效期, 过期后必须重新预览
	createTokenExpiration = time.Minute * 10
	// 未支付订单的支付截止时间
	paymentDeadline = time.Minute * 30
)

type Handler struct {
	svc        service.Service
	paymentSvc payment.Service
	productSvc product.Service
	couponSvc  coupon.Service
	cache      ecache.Cache
	logger     *elog.Component
}

func NewHandler(svc service.Service,
	paymentSvc payment.Service,
	productSvc product.Service,
	couponSvc coupon.Service,
	cache ecache.Cache) *Handler {
	return &Handler{
		svc:        svc,
		paymentSvc: paymentSvc,
		productSvc: productSvc,
		couponSvc:  couponSvc,
		cache: &ecache.NamespaceCache{
			Namespace: "order:",
			C:         cache,
		},
		logger: elog.DefaultLogger,
	}
}

func (h *Handler) PublicRoutes(_ *gin.Engine) {}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/order")
	g.POST("/preview", ginx.BS[PreviewOrderReq](h.PreviewOrder))
	g.POST("/create", ginx.BS[CreateOrderReq](h.CreateOrder))
	g.POST("/status", ginx.BS[OrderSNReq](h.RetrieveOrderStatus))
	g.POST("/list", ginx.BS[ListOrdersReq](h.ListOrders))
	g.POST("/detail", ginx.BS[OrderSNReq](h.RetrieveOrderDetail))
	g.POST("/cancel", ginx.BS[OrderSNReq](h.CancelOrder))
}

// PreviewOrder 计算订单金额并发放一次性下单凭证
func (h *Handler) PreviewOrder(ctx *ginx.Context, req PreviewOrderReq, sess session.Session) (ginx.Result, error) {
	uid := sess.Claims().Uid
	items, err := h.buildOrderItems(ctx, req.Items)
	if err != nil {
		return h.itemErrorResult(err), err
	}
	original, discount, real, _, err := h.orderTotals(ctx, items, req.CouponCode, uid)
	if err != nil {
		return invalidCouponResult, err
	}

	requestID := shortuuid.New()
	err = h.cache.Set(ctx.Request.Context(), h.createKey(requestID), "1", createTokenExpiration)
	if err != nil {
		return systemErrorResult, fmt.Errorf("缓存下单凭证失败: %w", err)
	}
	return ginx.Result{
		Data: PreviewOrderResp{
			RequestID: requestID,
			Items: slice.Map(items, func(idx int, src domain.OrderItem) OrderItem {
				return toOrderItemVO(src)
			}),
			OriginalTotalPrice: original,
			DiscountAmount:     discount,
			RealTotalPrice:     real,
		},
	}, nil
}

// CreateOrder 下单主流程: 校验凭证, 扣库存, 建订单, 占用优惠码, 创建支付
func (h *Handler) CreateOrder(ctx *ginx.Context, req CreateOrderReq, sess session.Session) (ginx.Result, error) {
	uid := sess.Claims().Uid
	if err := h.consumeCreateToken(ctx, req.RequestID); err != nil {
		return duplicateRequestResult, err
	}

	items, err := h.buildOrderItems(ctx, req.Items)
	if err != nil {
		return h.itemErrorResult(err), err
	}
	original, discount, real, c, err := h.orderTotals(ctx, items, req.CouponCode, uid)
	if err != nil {
		return invalidCouponResult, err
	}

	if err = h.decreaseStock(ctx, items); err != nil {
		return insufficientStockResult, err
	}

	order, err := h.svc.CreateOrder(ctx.Request.Context(), domain.Order{
		BuyerID:            uid,
		CouponID:           c.ID,
		CouponCode:         c.Code,
		OriginalTotalPrice: original,
		DiscountAmount:     discount,
		RealTotalPrice:     real,
		Address: domain.Address{
			Recipient: req.Address.Recipient,
			Phone:     req.Address.Phone,
			Province:  req.Address.Province,
			City:      req.Address.City,
			Detail:    req.Address.Detail,
		},
		Items: items,
	})
	if err != nil {
		h.releaseStock(ctx, items)
		return systemErrorResult, fmt.Errorf("创建订单失败: %w", err)
	}

	if c.ID > 0 {
		_, err = h.couponSvc.Redeem(ctx.Request.Context(), c.Code, uid, order.ID)
		if err != nil {
			// 关单事件会把已扣的库存还回去
			if er := h.svc.CloseOrder(ctx.Request.Context(), order,
				domain.OrderStatusCanceled, "system", "优惠码占用失败"); er != nil {
				h.logger.Error("关闭订单失败",
					elog.FieldErr(er),
					elog.String("order_sn", order.SN))
			}
			return invalidCouponResult, err
		}
	}

	pmt, err := h.paymentSvc.CreatePayment(ctx.Request.Context(), payment.Payment{
		OrderID:          order.ID,
		OrderSN:          order.SN,
		PayerID:          uid,
		OrderDescription: fmt.Sprintf("订单 %s", order.SN),
		TotalAmount:      real,
		Channel:          payment.ChannelTypeWechat,
		Deadline:         time.Now().Add(paymentDeadline).UnixMilli(),
	})
	if err != nil {
		// 订单保持未支付, 超时任务会兜底关闭
		return systemErrorResult, fmt.Errorf("创建支付失败: %w", err)
	}
	err = h.svc.UpdatePaymentInfo(ctx.Request.Context(), uid, order.ID, pmt.ID, pmt.SN)
	if err != nil {
		return systemErrorResult, fmt.Errorf("回填支付信息失败: %w", err)
	}
	return ginx.Result{
		Data: CreateOrderResp{
			OrderSN: order.SN,
			CodeURL: pmt.CodeURL,
		},
	}, nil
}

func (h *Handler) RetrieveOrderStatus(ctx *ginx.Context, req OrderSNReq, sess session.Session) (ginx.Result, error) {
	order, err := h.svc.FindOrderBySNAndBuyerID(ctx.Request.Context(), req.SN, sess.Claims().Uid)
	if err != nil {
		if errors.Is(err, dao.ErrOrderNotFound) {
			return orderNotFoundResult, err
		}
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: OrderStatusResp{
			Status:         order.Status.ToUint8(),
			DeliveryStatus: order.DeliveryStatus.ToUint8(),
		},
	}, nil
}

func (h *Handler) ListOrders(ctx *ginx.Context, req ListOrdersReq, sess session.Session) (ginx.Result, error) {
	total, orders, err := h.svc.ListOrdersByUID(ctx.Request.Context(), req.Offset, req.Limit, sess.Claims().Uid)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: ListOrdersResp{
			Total: total,
			Orders: slice.Map(orders, func(idx int, src domain.Order) Order {
				return toOrderVO(src)
			}),
		},
	}, nil
}

func (h *Handler) RetrieveOrderDetail(ctx *ginx.Context, req OrderSNReq, sess session.Session) (ginx.Result, error) {
	order, err := h.svc.FindOrderBySNAndBuyerID(ctx.Request.Context(), req.SN, sess.Claims().Uid)
	if err != nil {
		if errors.Is(err, dao.ErrOrderNotFound) {
			return orderNotFoundResult, err
		}
		return systemErrorResult, err
	}
	return ginx.Result{Data: toOrderVO(order)}, nil
}

func (h *Handler) CancelOrder(ctx *ginx.Context, req OrderSNReq, sess session.Session) (ginx.Result, error) {
	err := h.svc.CancelOrder(ctx.Request.Context(), sess.Claims().Uid, req.SN)
	if err != nil {
		switch {
		case errors.Is(err, dao.ErrOrderNotFound):
			return orderNotFoundResult, err
		case errors.Is(err, service.ErrOrderNotCancelable):
			return orderNotCancelableResult, err
		default:
			return systemErrorResult, err
		}
	}
	return ginx.Result{Msg: "OK"}, nil
}

// buildOrderItems 依据SKU序列号取价格和库存快照
func (h *Handler) buildOrderItems(ctx *ginx.Context, reqItems []OrderItemReq) ([]domain.OrderItem, error) {
	if len(reqItems) == 0 {
		return nil, fmt.Errorf("%w: 订单不能为空", product.ErrProductNotFound)
	}
	items := make([]domain.OrderItem, 0, len(reqItems))
	for _, ri := range reqItems {
		if ri.Quantity <= 0 {
			return nil, fmt.Errorf("%w: 购买数量非法 sku_sn=%s", product.ErrProductNotFound, ri.SKUSN)
		}
		spu, err := h.productSvc.FindSKUBySN(ctx.Request.Context(), ri.SKUSN)
		if err != nil {
			return nil, fmt.Errorf("查找SKU失败: sku_sn=%s: %w", ri.SKUSN, err)
		}
		sku := spu.SKUs[0]
		if sku.Stock < ri.Quantity {
			return nil, fmt.Errorf("%w: sku_sn=%s", product.ErrStockNotEnough, ri.SKUSN)
		}
		items = append(items, domain.OrderItem{
			SKU: domain.SKU{
				SPUID:         spu.ID,
				ID:            sku.ID,
				SN:            sku.SN,
				Image:         sku.Image,
				Name:          sku.Name,
				Attrs:         fmt.Sprintf("%s %s", sku.Color, sku.Size),
				OriginalPrice: sku.Price,
				RealPrice:     sku.Price,
				Quantity:      ri.Quantity,
			},
		})
	}
	return items, nil
}

func (h *Handler) orderTotals(ctx *ginx.Context, items []domain.OrderItem, couponCode string, uid int64) (original, discount, real int64, c coupon.Coupon, err error) {
	if couponCode != "" {
		c, err = h.couponSvc.Validate(ctx.Request.Context(), couponCode, uid)
		if err != nil {
			return 0, 0, 0, coupon.Coupon{}, fmt.Errorf("校验优惠码失败: %w", err)
		}
	}
	original, discount, real = computeTotals(items, c)
	return original, discount, real, c, nil
}

// computeTotals 折扣作用在订单小计上, 单价不变
func computeTotals(items []domain.OrderItem, c coupon.Coupon) (original, discount, real int64) {
	for _, it := range items {
		original += it.SKU.OriginalPrice * it.SKU.Quantity
	}
	discount = c.Discount(original)
	return original, discount, original - discount
}

func (h *Handler) decreaseStock(ctx *ginx.Context, items []domain.OrderItem) error {
	for i, it := range items {
		err := h.productSvc.DecreaseStock(ctx.Request.Context(), it.SKU.ID, it.SKU.Quantity)
		if err != nil {
			// 已扣的部分立即还回去
			h.releaseStock(ctx, items[:i])
			return fmt.Errorf("扣减库存失败: sku_id=%d: %w", it.SKU.ID, err)
		}
	}
	return nil
}

func (h *Handler) releaseStock(ctx *ginx.Context, items []domain.OrderItem) {
	for _, it := range items {
		err := h.productSvc.ReleaseStock(ctx.Request.Context(), it.SKU.ID, it.SKU.Quantity)
		if err != nil {
			h.logger.Error("归还库存失败",
				elog.FieldErr(err),
				elog.Int64("sku_id", it.SKU.ID))
		}
	}
}

func (h *Handler) consumeCreateToken(ctx *ginx.Context, requestID string) error {
	if requestID == "" {
		return fmt.Errorf("下单凭证为空")
	}
	cnt, err := h.cache.Delete(ctx.Request.Context(), h.createKey(requestID))
	if err != nil {
		return fmt.Errorf("校验下单凭证失败: %w", err)
	}
	if cnt == 0 {
		return fmt.Errorf("下单凭证已失效: request_id=%s", requestID)
	}
	return nil
}

func (h *Handler) createKey(requestID string) string {
	return fmt.Sprintf("create:%s", requestID)
}

func (h *Handler) itemErrorResult(err error) ginx.Result {
	switch {
	case errors.Is(err, product.ErrStockNotEnough):
		return insufficientStockResult
	case errors.Is(err, product.ErrProductNotFound):
		return invalidSKUResult
	default:
		return systemErrorResult
	}
}

func toOrderVO(order domain.Order) Order {
	return Order{
		SN:                 order.SN,
		PaymentSN:          order.PaymentSN,
		CouponCode:         order.CouponCode,
		OriginalTotalPrice: order.OriginalTotalPrice,
		DiscountAmount:     order.DiscountAmount,
		RealTotalPrice:     order.RealTotalPrice,
		Status:             order.Status.ToUint8(),
		DeliveryStatus:     order.DeliveryStatus.ToUint8(),
		Address: AddressReq{
			Recipient: order.Address.Recipient,
			Phone:     order.Address.Phone,
			Province:  order.Address.Province,
			City:      order.Address.City,
			Detail:    order.Address.Detail,
		},
		Items: slice.Map(order.Items, func(idx int, src domain.OrderItem) OrderItem {
			return toOrderItemVO(src)
		}),
		History: slice.Map(order.History, func(idx int, src domain.StatusChange) StatusChange {
			return StatusChange{
				OrderStatus:    src.OrderStatus.ToUint8(),
				DeliveryStatus: src.DeliveryStatus.ToUint8(),
				Actor:          src.Actor,
				Note:           src.Note,
				Ctime:          src.Ctime,
			}
		}),
		Ctime: order.Ctime,
		Utime: order.Utime,
	}
}

func toOrderItemVO(item domain.OrderItem) OrderItem {
	return OrderItem{
		SPUID:         item.SKU.SPUID,
		SKUID:         item.SKU.ID,
		SKUSN:         item.SKU.SN,
		Image:         item.SKU.Image,
		Name:          item.SKU.Name,
		Attrs:         item.SKU.Attrs,
		OriginalPrice: item.SKU.OriginalPrice,
		RealPrice:     item.SKU.RealPrice,
		Quantity:      item.SKU.Quantity,
	}
}
