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

package repository

import (
	"context"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/emall/internal/order/internal/domain"
	"github.com/ecodeclub/emall/internal/order/internal/repository/dao"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error)
	UpdatePaymentInfo(ctx context.Context, buyerID, orderID, paymentID int64, paymentSN string) error
	// FindOrderBySN 连同订单项和状态历史一起返回
	FindOrderBySN(ctx context.Context, sn string) (domain.Order, error)
	FindOrderBySNAndBuyerID(ctx context.Context, sn string, buyerID int64) (domain.Order, error)
	ListOrdersByUID(ctx context.Context, offset, limit int, uid int64) ([]domain.Order, error)
	TotalOrdersByUID(ctx context.Context, uid int64) (int64, error)
	ListOrders(ctx context.Context, offset, limit int) ([]domain.Order, error)
	TotalOrders(ctx context.Context) (int64, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status domain.OrderStatus, closedAt int64, actor, note string) error
	UpdateDeliveryStatus(ctx context.Context, orderID int64, from, to domain.DeliveryStatus, actor, note string) error
	ListExpiredOrders(ctx context.Context, offset, limit int, ctime int64) ([]domain.Order, error)
	TotalExpiredOrders(ctx context.Context, ctime int64) (int64, error)
}

func NewRepository(d dao.OrderDAO) OrderRepository {
	return &orderRepository{dao: d}
}

type orderRepository struct {
	dao dao.OrderDAO
}

func (r *orderRepository) CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	id, err := r.dao.CreateOrder(ctx, r.toOrderEntity(order), r.toOrderItemEntities(order.Items))
	if err != nil {
		return domain.Order{}, err
	}
	order.ID = id
	return order, nil
}

func (r *orderRepository) UpdatePaymentInfo(ctx context.Context, buyerID, orderID, paymentID int64, paymentSN string) error {
	return r.dao.UpdatePaymentInfo(ctx, buyerID, orderID, paymentID, paymentSN)
}

func (r *orderRepository) FindOrderBySN(ctx context.Context, sn string) (domain.Order, error) {
	order, err := r.dao.FindOrderBySN(ctx, sn)
	if err != nil {
		return domain.Order{}, err
	}
	return r.assembleOrder(ctx, order)
}

func (r *orderRepository) FindOrderBySNAndBuyerID(ctx context.Context, sn string, buyerID int64) (domain.Order, error) {
	order, err := r.dao.FindOrderBySNAndBuyerID(ctx, sn, buyerID)
	if err != nil {
		return domain.Order{}, err
	}
	return r.assembleOrder(ctx, order)
}

func (r *orderRepository) assembleOrder(ctx context.Context, order dao.Order) (domain.Order, error) {
	items, err := r.dao.FindOrderItems(ctx, order.Id)
	if err != nil {
		return domain.Order{}, err
	}
	history, err := r.dao.FindStatusHistory(ctx, order.Id)
	if err != nil {
		return domain.Order{}, err
	}
	res := r.toOrderDomain(order)
	res.Items = slice.Map(items, func(idx int, src dao.OrderItem) domain.OrderItem {
		return r.toOrderItemDomain(src)
	})
	res.History = slice.Map(history, func(idx int, src dao.OrderStatusHistory) domain.StatusChange {
		return domain.StatusChange{
			ID:             src.Id,
			OrderID:        src.OrderId,
			OrderStatus:    domain.OrderStatus(src.OrderStatus),
			DeliveryStatus: domain.DeliveryStatus(src.DeliveryStatus),
			Actor:          src.Actor,
			Note:           src.Note,
			Ctime:          src.Ctime,
		}
	})
	return res, nil
}

func (r *orderRepository) ListOrdersByUID(ctx context.Context, offset, limit int, uid int64) ([]domain.Order, error) {
	os, err := r.dao.ListOrdersByUID(ctx, offset, limit, uid)
	if err != nil {
		return nil, err
	}
	return slice.Map(os, func(idx int, src dao.Order) domain.Order {
		return r.toOrderDomain(src)
	}), nil
}

func (r *orderRepository) TotalOrdersByUID(ctx context.Context, uid int64) (int64, error) {
	return r.dao.CountOrdersByUID(ctx, uid)
}

func (r *orderRepository) ListOrders(ctx context.Context, offset, limit int) ([]domain.Order, error) {
	os, err := r.dao.ListOrders(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(os, func(idx int, src dao.Order) domain.Order {
		return r.toOrderDomain(src)
	}), nil
}

func (r *orderRepository) TotalOrders(ctx context.Context) (int64, error) {
	return r.dao.CountOrders(ctx)
}

func (r *orderRepository) UpdateOrderStatus(ctx context.Context, orderID int64, status domain.OrderStatus, closedAt int64, actor, note string) error {
	return r.dao.UpdateOrderStatus(ctx, orderID, status.ToUint8(), closedAt, actor, note)
}

func (r *orderRepository) UpdateDeliveryStatus(ctx context.Context, orderID int64, from, to domain.DeliveryStatus, actor, note string) error {
	return r.dao.UpdateDeliveryStatus(ctx, orderID, from.ToUint8(), to.ToUint8(), actor, note)
}

func (r *orderRepository) ListExpiredOrders(ctx context.Context, offset, limit int, ctime int64) ([]domain.Order, error) {
	os, err := r.dao.ListExpiredOrders(ctx, offset, limit, ctime)
	if err != nil {
		return nil, err
	}
	res := make([]domain.Order, 0, len(os))
	for _, o := range os {
		order, err := r.assembleOrder(ctx, o)
		if err != nil {
			return nil, err
		}
		res = append(res, order)
	}
	return res, nil
}

func (r *orderRepository) TotalExpiredOrders(ctx context.Context, ctime int64) (int64, error) {
	return r.dao.CountExpiredOrders(ctx, ctime)
}

func (r *orderRepository) toOrderEntity(order domain.Order) dao.Order {
	return dao.Order{
		Id:                 order.ID,
		SN:                 order.SN,
		BuyerId:            order.BuyerID,
		PaymentId:          order.PaymentID,
		PaymentSn:          order.PaymentSN,
		CouponId:           order.CouponID,
		CouponCode:         order.CouponCode,
		OriginalTotalPrice: order.OriginalTotalPrice,
		DiscountAmount:     order.DiscountAmount,
		RealTotalPrice:     order.RealTotalPrice,
		Status:             order.Status.ToUint8(),
		DeliveryStatus:     order.DeliveryStatus.ToUint8(),
		AddressRecipient:   order.Address.Recipient,
		AddressPhone:       order.Address.Phone,
		AddressProvince:    order.Address.Province,
		AddressCity:        order.Address.City,
		AddressDetail:      order.Address.Detail,
		ClosedAt:           order.ClosedAt,
	}
}

func (r *orderRepository) toOrderItemEntities(items []domain.OrderItem) []dao.OrderItem {
	return slice.Map(items, func(idx int, src domain.OrderItem) dao.OrderItem {
		return dao.OrderItem{
			SPUId:            src.SKU.SPUID,
			SKUId:            src.SKU.ID,
			SKUSN:            src.SKU.SN,
			SKUImage:         src.SKU.Image,
			SKUName:          src.SKU.Name,
			SKUAttrs:         src.SKU.Attrs,
			SKUOriginalPrice: src.SKU.OriginalPrice,
			SKURealPrice:     src.SKU.RealPrice,
			Quantity:         src.SKU.Quantity,
		}
	})
}

func (r *orderRepository) toOrderDomain(order dao.Order) domain.Order {
	return domain.Order{
		ID:                 order.Id,
		SN:                 order.SN,
		BuyerID:            order.BuyerId,
		PaymentID:          order.PaymentId,
		PaymentSN:          order.PaymentSn,
		CouponID:           order.CouponId,
		CouponCode:         order.CouponCode,
		OriginalTotalPrice: order.OriginalTotalPrice,
		DiscountAmount:     order.DiscountAmount,
		RealTotalPrice:     order.RealTotalPrice,
		Status:             domain.OrderStatus(order.Status),
		DeliveryStatus:     domain.DeliveryStatus(order.DeliveryStatus),
		Address: domain.Address{
			Recipient: order.AddressRecipient,
			Phone:     order.AddressPhone,
			Province:  order.AddressProvince,
			City:      order.AddressCity,
			Detail:    order.AddressDetail,
		},
		ClosedAt: order.ClosedAt,
		Ctime:    order.Ctime,
		Utime:    order.Utime,
	}
}

func (r *orderRepository) toOrderItemDomain(item dao.OrderItem) domain.OrderItem {
	return domain.OrderItem{
		SKU: domain.SKU{
			SPUID:         item.SPUId,
			ID:            item.SKUId,
			SN:            item.SKUSN,
			Image:         item.SKUImage,
			Name:          item.SKUName,
			Attrs:         item.SKUAttrs,
			OriginalPrice: item.SKUOriginalPrice,
			RealPrice:     item.SKURealPrice,
			Quantity:      item.Quantity,
		},
	}
}
