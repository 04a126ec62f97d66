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
	"errors"
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/emall/internal/order/internal/domain"
	"github.com/ecodeclub/emall/internal/order/internal/event"
	"github.com/ecodeclub/emall/internal/order/internal/repository"
	"github.com/ecodeclub/emall/internal/pkg/sequencenumber"
	"github.com/gotomicro/ego/core/elog"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrOrderNotCancelable 只有未支付订单才允许取消
	ErrOrderNotCancelable = errors.New("订单当前状态不可取消")
)

type Service interface {
	CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error)
	UpdatePaymentInfo(ctx context.Context, buyerID, orderID, paymentID int64, paymentSN string) error
	FindOrderBySNAndBuyerID(ctx context.Context, sn string, buyerID int64) (domain.Order, error)
	FindOrderBySN(ctx context.Context, sn string) (domain.Order, error)
	ListOrdersByUID(ctx context.Context, offset, limit int, uid int64) (int64, []domain.Order, error)
	ListOrders(ctx context.Context, offset, limit int) (int64, []domain.Order, error)
	// CompleteOrder 支付成功回调, 重复调用是无害的空操作
	CompleteOrder(ctx context.Context, buyerID int64, orderSN string) error
	// CancelOrder 用户主动取消, 仅限未支付订单
	CancelOrder(ctx context.Context, buyerID int64, orderSN string) error
	// CloseOrder 支付失败或超时关单, 发出订单关闭事件让库存和优惠码回滚
	CloseOrder(ctx context.Context, order domain.Order, status domain.OrderStatus, actor, note string) error
	FindExpiredOrders(ctx context.Context, offset, limit int, ctime int64) ([]domain.Order, error)
	TotalExpiredOrders(ctx context.Context, ctime int64) (int64, error)
	UpdateDeliveryStatus(ctx context.Context, orderSN string, to domain.DeliveryStatus, actor string) error
}

func NewService(repo repository.OrderRepository,
	snGenerator *sequencenumber.Generator,
	producer event.OrderCloseEventProducer) Service {
	return &service{
		repo:        repo,
		snGenerator: snGenerator,
		producer:    producer,
		logger:      elog.DefaultLogger,
	}
}

type service struct {
	repo        repository.OrderRepository
	snGenerator *sequencenumber.Generator
	producer    event.OrderCloseEventProducer
	logger      *elog.Component
}

func (s *service) CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	sn, err := s.snGenerator.Generate(order.BuyerID)
	if err != nil {
		return domain.Order{}, err
	}
	order.SN = sn
	order.Status = domain.OrderStatusUnpaid
	order.DeliveryStatus = domain.DeliveryStatusPending
	return s.repo.CreateOrder(ctx, order)
}

func (s *service) UpdatePaymentInfo(ctx context.Context, buyerID, orderID, paymentID int64, paymentSN string) error {
	return s.repo.UpdatePaymentInfo(ctx, buyerID, orderID, paymentID, paymentSN)
}

func (s *service) FindOrderBySNAndBuyerID(ctx context.Context, sn string, buyerID int64) (domain.Order, error) {
	return s.repo.FindOrderBySNAndBuyerID(ctx, sn, buyerID)
}

func (s *service) FindOrderBySN(ctx context.Context, sn string) (domain.Order, error) {
	return s.repo.FindOrderBySN(ctx, sn)
}

func (s *service) ListOrdersByUID(ctx context.Context, offset, limit int, uid int64) (int64, []domain.Order, error) {
	var (
		eg    errgroup.Group
		total int64
		os    []domain.Order
	)
	eg.Go(func() error {
		var err error
		total, err = s.repo.TotalOrdersByUID(ctx, uid)
		return err
	})
	eg.Go(func() error {
		var err error
		os, err = s.repo.ListOrdersByUID(ctx, offset, limit, uid)
		return err
	})
	return total, os, eg.Wait()
}

func (s *service) ListOrders(ctx context.Context, offset, limit int) (int64, []domain.Order, error) {
	var (
		eg    errgroup.Group
		total int64
		os    []domain.Order
	)
	eg.Go(func() error {
		var err error
		total, err = s.repo.TotalOrders(ctx)
		return err
	})
	eg.Go(func() error {
		var err error
		os, err = s.repo.ListOrders(ctx, offset, limit)
		return err
	})
	return total, os, eg.Wait()
}

func (s *service) CompleteOrder(ctx context.Context, buyerID int64, orderSN string) error {
	order, err := s.repo.FindOrderBySNAndBuyerID(ctx, orderSN, buyerID)
	if err != nil {
		return err
	}
	return s.repo.UpdateOrderStatus(ctx, order.ID, domain.OrderStatusPaid, 0, "system", "支付成功")
}

func (s *service) CancelOrder(ctx context.Context, buyerID int64, orderSN string) error {
	order, err := s.repo.FindOrderBySNAndBuyerID(ctx, orderSN, buyerID)
	if err != nil {
		return err
	}
	if order.Status != domain.OrderStatusUnpaid {
		return ErrOrderNotCancelable
	}
	return s.CloseOrder(ctx, order, domain.OrderStatusCanceled, "buyer", "用户取消订单")
}

func (s *service) CloseOrder(ctx context.Context, order domain.Order, status domain.OrderStatus, actor, note string) error {
	err := s.repo.UpdateOrderStatus(ctx, order.ID, status, time.Now().UnixMilli(), actor, note)
	if err != nil {
		return err
	}
	// 未支付订单配送一定停留在待处理, 直接作废
	err = s.repo.UpdateDeliveryStatus(ctx, order.ID,
		domain.DeliveryStatusPending, domain.DeliveryStatusCancelled, actor, note)
	if err != nil {
		s.logger.Warn("作废配送状态失败",
			elog.FieldErr(err),
			elog.Int64("order_id", order.ID))
	}
	evt := event.OrderCloseEvent{
		OrderID:  order.ID,
		OrderSN:  order.SN,
		BuyerID:  order.BuyerID,
		CouponID: order.CouponID,
		SKUs: slice.Map(order.Items, func(idx int, src domain.OrderItem) event.SKU {
			return event.SKU{
				SKUID:    src.SKU.ID,
				Quantity: src.SKU.Quantity,
			}
		}),
	}
	if er := s.producer.Produce(ctx, evt); er != nil {
		// 发送失败不回滚关单, 靠日志人工补偿
		s.logger.Error("发送订单关闭事件失败",
			elog.FieldErr(er),
			elog.String("order_sn", order.SN))
	}
	return nil
}

func (s *service) FindExpiredOrders(ctx context.Context, offset, limit int, ctime int64) ([]domain.Order, error) {
	return s.repo.ListExpiredOrders(ctx, offset, limit, ctime)
}

func (s *service) TotalExpiredOrders(ctx context.Context, ctime int64) (int64, error) {
	return s.repo.TotalExpiredOrders(ctx, ctime)
}

func (s *service) UpdateDeliveryStatus(ctx context.Context, orderSN string, to domain.DeliveryStatus, actor string) error {
	order, err := s.repo.FindOrderBySN(ctx, orderSN)
	if err != nil {
		return err
	}
	note, err := domain.DeliveryTransitionNote(order.DeliveryStatus, to)
	if err != nil {
		return err
	}
	return s.repo.UpdateDeliveryStatus(ctx, order.ID, order.DeliveryStatus, to, actor, note)
}
