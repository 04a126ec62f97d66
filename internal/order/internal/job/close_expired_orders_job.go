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

package job

import (
	"context"
	"fmt"
	"time"

	"github.com/ecodeclub/emall/internal/order/internal/domain"
	"github.com/ecodeclub/emall/internal/order/internal/service"
	"github.com/gotomicro/ego/core/elog"
	"github.com/gotomicro/ego/task/ecron"
)

var _ ecron.NamedJob = (*CloseExpiredOrdersJob)(nil)

// CloseExpiredOrdersJob 扫描超过支付时限仍未支付的订单并关闭
type CloseExpiredOrdersJob struct {
	svc     service.Service
	minutes int64
	seconds int64
	limit   int
	l       *elog.Component
}

func NewCloseExpiredOrdersJob(svc service.Service, minutes int64, seconds int64, limit int) *CloseExpiredOrdersJob {
	return &CloseExpiredOrdersJob{
		svc:     svc,
		minutes: minutes,
		seconds: seconds,
		limit:   limit,
		l:       elog.DefaultLogger,
	}
}

func (c *CloseExpiredOrdersJob) Name() string {
	return "close_expired_orders_job"
}

func (c *CloseExpiredOrdersJob) Run(ctx context.Context) error {
	ctime := time.Now().Add(time.Duration(-c.minutes)*time.Minute + time.Duration(-c.seconds)*time.Second).UnixMilli()

	// 关单成功的订单不会再被查出来, 只需要跳过关单失败的
	var failed int
	for {
		orders, err := c.svc.FindExpiredOrders(ctx, failed, c.limit, ctime)
		if err != nil {
			return fmt.Errorf("获取过期订单失败: %w", err)
		}

		for _, order := range orders {
			err = c.svc.CloseOrder(ctx, order, domain.OrderStatusExpired, "system", "支付超时关单")
			if err != nil {
				failed++
				c.l.Error("关闭过期订单失败",
					elog.FieldErr(err),
					elog.String("order_sn", order.SN),
				)
			}
		}

		if len(orders) < c.limit {
			return nil
		}
	}
}
