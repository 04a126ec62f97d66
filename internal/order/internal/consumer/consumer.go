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

package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ecodeclub/emall/internal/order/internal/domain"
	"github.com/ecodeclub/emall/internal/order/internal/event"
	"github.com/ecodeclub/emall/internal/order/internal/service"
	"github.com/ecodeclub/mq-api"
	"github.com/gotomicro/ego/core/elog"
)

const paymentEvents = "payment_events"

// PaymentConsumer 消费支付事件推进订单状态
type PaymentConsumer struct {
	svc      service.Service
	consumer mq.Consumer
	logger   *elog.Component
}

func NewPaymentConsumer(svc service.Service, q mq.MQ) (*PaymentConsumer, error) {
	const groupID = "order"
	consumer, err := q.Consumer(paymentEvents, groupID)
	if err != nil {
		return nil, err
	}
	return &PaymentConsumer{
		svc:      svc,
		consumer: consumer,
		logger:   elog.DefaultLogger,
	}, nil
}

func (c *PaymentConsumer) Start(ctx context.Context) {
	go func() {
		for {
			er := c.Consume(ctx)
			if er != nil {
				c.logger.Error("消费支付事件失败", elog.FieldErr(er))
			}
		}
	}()
}

func (c *PaymentConsumer) Consume(ctx context.Context) error {
	msg, err := c.consumer.Consume(ctx)
	if err != nil {
		return fmt.Errorf("获取消息失败: %w", err)
	}

	var evt event.PaymentEvent
	err = json.Unmarshal(msg.Value, &evt)
	if err != nil {
		return fmt.Errorf("解析消息失败: %w", err)
	}

	// 支付模块的状态语义: 3=支付成功 4=支付失败 6=超时关闭
	switch evt.Status {
	case 3:
		err = c.svc.CompleteOrder(ctx, evt.PayerID, evt.OrderSN)
	case 4:
		err = c.closeOrder(ctx, evt, domain.OrderStatusCanceled, "支付失败关单")
	case 6:
		err = c.closeOrder(ctx, evt, domain.OrderStatusExpired, "支付超时关单")
	default:
		c.logger.Warn("忽略未知的支付状态",
			elog.Any("event", evt))
		return nil
	}
	if err != nil {
		return fmt.Errorf("处理支付事件失败: order_sn=%s: %w", evt.OrderSN, err)
	}
	return nil
}

func (c *PaymentConsumer) closeOrder(ctx context.Context, evt event.PaymentEvent, status domain.OrderStatus, note string) error {
	order, err := c.svc.FindOrderBySNAndBuyerID(ctx, evt.OrderSN, evt.PayerID)
	if err != nil {
		return err
	}
	if order.Status != domain.OrderStatusUnpaid {
		// 重复事件, 订单已经到达终态
		return nil
	}
	return c.svc.CloseOrder(ctx, order, status, "system", note)
}
