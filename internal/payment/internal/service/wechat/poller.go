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
	"errors"
	"time"

	"github.com/ecodeclub/emall/internal/payment/internal/domain"
	"github.com/gotomicro/ego/core/elog"
)

// ErrPollingExhausted 轮询次数用完仍未等到终态, 交给定时任务兜底
var ErrPollingExhausted = errors.New("轮询支付状态未达终态")

// StatusPoller 微信回调的兜底手段: 以固定间隔主动查单,
// 查到终态或次数用尽即停止, 绝不无限轮询
type StatusPoller struct {
	svc         *NativePaymentService
	interval    time.Duration
	maxAttempts int
	l           *elog.Component
}

func NewStatusPoller(svc *NativePaymentService, interval time.Duration, maxAttempts int) *StatusPoller {
	return &StatusPoller{
		svc:         svc,
		interval:    interval,
		maxAttempts: maxAttempts,
		l:           elog.DefaultLogger,
	}
}

// Poll 阻塞直到查到终态, 次数用尽或ctx结束.
// 查到终态时调用apply落库, 次数用尽返回 ErrPollingExhausted.
func (p *StatusPoller) Poll(ctx context.Context, orderSN string,
	apply func(ctx context.Context, pmt domain.Payment) error) error {
	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		pmt, err := p.svc.QueryOrderBySN(ctx, orderSN)
		if err != nil {
			p.l.Error("主动查询微信支付状态失败",
				elog.FieldErr(err),
				elog.String("order_sn", orderSN),
				elog.Int("attempt", attempt),
			)
		} else if pmt.Status.IsTerminal() {
			return apply(ctx, pmt)
		}

		if attempt == p.maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.interval):
		}
	}
	return ErrPollingExhausted
}
