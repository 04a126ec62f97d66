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

	"github.com/ecodeclub/emall/internal/product/internal/service"
	"github.com/ecodeclub/mq-api"
	"github.com/gotomicro/ego/core/elog"
)

// ReleaseStockConsumer 消费订单关闭事件归还库存
type ReleaseStockConsumer struct {
	svc      service.Service
	consumer mq.Consumer
	logger   *elog.Component
}

func NewReleaseStockConsumer(svc service.Service, q mq.MQ) (*ReleaseStockConsumer, error) {
	const groupID = "product"
	consumer, err := q.Consumer(orderCloseEvents, groupID)
	if err != nil {
		return nil, err
	}
	return &ReleaseStockConsumer{
		svc:      svc,
		consumer: consumer,
		logger:   elog.DefaultLogger,
	}, nil
}

func (c *ReleaseStockConsumer) Start(ctx context.Context) {
	go func() {
		for {
			er := c.Consume(ctx)
			if er != nil {
				c.logger.Error("消费订单关闭事件失败", elog.FieldErr(er))
			}
		}
	}()
}

func (c *ReleaseStockConsumer) Consume(ctx context.Context) error {
	msg, err := c.consumer.Consume(ctx)
	if err != nil {
		return fmt.Errorf("获取消息失败: %w", err)
	}

	var evt OrderCloseEvent
	err = json.Unmarshal(msg.Value, &evt)
	if err != nil {
		return fmt.Errorf("解析消息失败: %w", err)
	}

	for _, sku := range evt.SKUs {
		er := c.svc.ReleaseStock(ctx, sku.SKUID, sku.Quantity)
		if er != nil {
			// 归还失败只记录, 不阻塞后续SKU
			c.logger.Error("归还库存失败",
				elog.FieldErr(er),
				elog.String("order_sn", evt.OrderSN),
				elog.Int64("sku_id", sku.SKUID),
				elog.Int64("quantity", sku.Quantity))
		}
	}
	return nil
}
