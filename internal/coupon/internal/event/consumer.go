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

package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ecodeclub/emall/internal/coupon/internal/service"
	"github.com/ecodeclub/mq-api"
	"github.com/gotomicro/ego/core/elog"
)

// ReleaseUsageConsumer 消费订单关闭事件归还优惠码使用次数
type ReleaseUsageConsumer struct {
	svc      service.Service
	consumer mq.Consumer
	logger   *elog.Component
}

func NewReleaseUsageConsumer(svc service.Service, q mq.MQ) (*ReleaseUsageConsumer, error) {
	const groupID = "coupon"
	consumer, err := q.Consumer(orderCloseEvents, groupID)
	if err != nil {
		return nil, err
	}
	return &ReleaseUsageConsumer{
		svc:      svc,
		consumer: consumer,
		logger:   elog.DefaultLogger,
	}, nil
}

func (c *ReleaseUsageConsumer) Start(ctx context.Context) {
	go func() {
		for {
			er := c.Consume(ctx)
			if er != nil {
				c.logger.Error("消费订单关闭事件失败", elog.FieldErr(er))
			}
		}
	}()
}

func (c *ReleaseUsageConsumer) Consume(ctx context.Context) error {
	msg, err := c.consumer.Consume(ctx)
	if err != nil {
		return fmt.Errorf("获取消息失败: %w", err)
	}

	var evt OrderCloseEvent
	err = json.Unmarshal(msg.Value, &evt)
	if err != nil {
		return fmt.Errorf("解析消息失败: %w", err)
	}

	// 未使用优惠码的订单直接忽略
	if evt.CouponID <= 0 {
		return nil
	}
	err = c.svc.Release(ctx, evt.OrderID)
	if err != nil {
		return fmt.Errorf("归还优惠码使用次数失败: order_id=%d: %w", evt.OrderID, err)
	}
	return nil
}
