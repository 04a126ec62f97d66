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
	"fmt"
	"time"

	"github.com/ecodeclub/emall/internal/payment/internal/domain"
	"github.com/ecodeclub/emall/internal/payment/internal/event"
	"github.com/ecodeclub/emall/internal/payment/internal/repository"
	"github.com/ecodeclub/emall/internal/payment/internal/service/wechat"
	"github.com/ecodeclub/emall/internal/pkg/mqx"
	"github.com/ecodeclub/emall/internal/pkg/sequencenumber"
	"github.com/gotomicro/ego/core/elog"
	"github.com/wechatpay-apiv3/wechatpay-go/services/payments"
)

type Service interface {
	// CreatePayment 幂等: 同一订单重复调用复用已有支付单
	CreatePayment(ctx context.Context, pmt domain.Payment) (domain.Payment, error)
	FindByOrderSN(ctx context.Context, orderSN string) (domain.Payment, error)
	// HandleWechatCallback 微信回调主通道
	HandleWechatCallback(ctx context.Context, txn *payments.Transaction) error
	// PollPaymentStatus 回调迟迟未到时的有界兜底轮询
	PollPaymentStatus(ctx context.Context, orderSN string) error
	// SyncWechatInfo 定时任务扫表时主动向微信对账
	SyncWechatInfo(ctx context.Context, pmt domain.Payment) error
	CloseTimeoutPayment(ctx context.Context, pmt domain.Payment) error
	FindTimeoutPayments(ctx context.Context, offset, limit int, ctime int64) ([]domain.Payment, int64, error)
}

func NewService(repo repository.PaymentRepository,
	nativeSvc *wechat.NativePaymentService,
	poller *wechat.StatusPoller,
	snGenerator *sequencenumber.Generator,
	producer mqx.Producer[event.PaymentEvent]) Service {
	return &service{
		repo:        repo,
		nativeSvc:   nativeSvc,
		poller:      poller,
		snGenerator: snGenerator,
		producer:    producer,
		logger:      elog.DefaultLogger,
	}
}

type service struct {
	repo        repository.PaymentRepository
	nativeSvc   *wechat.NativePaymentService
	poller      *wechat.StatusPoller
	snGenerator *sequencenumber.Generator
	producer    mqx.Producer[event.PaymentEvent]
	logger      *elog.Component
}

func (s *service) CreatePayment(ctx context.Context, pmt domain.Payment) (domain.Payment, error) {
	sn, err := s.snGenerator.Generate(pmt.PayerID)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("生成支付序列号失败: %w", err)
	}
	pmt.SN = sn
	pmt.Channel = domain.ChannelTypeWechat
	pmt.Status = domain.PaymentStatusUnpaid

	created, err := s.repo.FindOrCreate(ctx, pmt)
	if err != nil {
		return domain.Payment{}, err
	}
	if created.Status != domain.PaymentStatusUnpaid {
		return domain.Payment{}, fmt.Errorf("支付单已关闭: order_sn=%s", created.OrderSN)
	}
	if created.CodeURL != "" {
		// 已经预下过单, 直接复用二维码
		return created, nil
	}

	codeURL, err := s.nativeSvc.Prepay(ctx, created)
	if err != nil {
		return domain.Payment{}, err
	}
	err = s.repo.SetCodeURL(ctx, created.OrderSN, codeURL)
	if err != nil {
		return domain.Payment{}, err
	}
	created.CodeURL = codeURL
	// 回调可能丢, 预下单成功后起一条有界兜底轮询
	s.startFallbackPoll(created.OrderSN)
	return created, nil
}

func (s *service) FindByOrderSN(ctx context.Context, orderSN string) (domain.Payment, error) {
	return s.repo.FindByOrderSN(ctx, orderSN)
}

func (s *service) HandleWechatCallback(ctx context.Context, txn *payments.Transaction) error {
	pmt, err := s.nativeSvc.ConvertCallbackTransactionToDomain(txn)
	if err != nil {
		if errors.Is(err, wechat.ErrIgnoredPaymentStatus) {
			return nil
		}
		return err
	}
	return s.applyWechatResult(ctx, pmt)
}

func (s *service) PollPaymentStatus(ctx context.Context, orderSN string) error {
	return s.poller.Poll(ctx, orderSN, s.applyWechatResult)
}

func (s *service) startFallbackPoll(orderSN string) {
	go func() {
		// 轮询次数有界, 不需要额外的超时控制
		err := s.PollPaymentStatus(context.Background(), orderSN)
		if err != nil && !errors.Is(err, wechat.ErrPollingExhausted) {
			s.logger.Warn("兜底轮询支付状态失败",
				elog.FieldErr(err),
				elog.String("order_sn", orderSN))
		}
	}()
}

func (s *service) SyncWechatInfo(ctx context.Context, pmt domain.Payment) error {
	res, err := s.nativeSvc.QueryOrderBySN(ctx, pmt.OrderSN)
	if err != nil {
		return err
	}
	if !res.Status.IsTerminal() {
		// 对账时还停在中间态, 按超时关闭处理
		res.Status = domain.PaymentStatusTimeoutClosed
	}
	return s.applyWechatResult(ctx, res)
}

func (s *service) CloseTimeoutPayment(ctx context.Context, pmt domain.Payment) error {
	pmt.Status = domain.PaymentStatusTimeoutClosed
	err := s.repo.UpdateStatus(ctx, pmt.OrderSN, domain.PaymentStatusTimeoutClosed)
	if err != nil {
		return err
	}
	s.produceEvent(ctx, pmt)
	return nil
}

func (s *service) FindTimeoutPayments(ctx context.Context, offset, limit int, ctime int64) ([]domain.Payment, int64, error) {
	t := time.UnixMilli(ctime)
	pmts, err := s.repo.FindExpiredPayments(ctx, offset, limit, t)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.TotalExpiredPayments(ctx, t)
	if err != nil {
		return nil, 0, err
	}
	return pmts, total, nil
}

// applyWechatResult 微信侧结论落库并广播, 回调/轮询/对账三条链路共用
func (s *service) applyWechatResult(ctx context.Context, res domain.Payment) error {
	stored, err := s.repo.FindByOrderSN(ctx, res.OrderSN)
	if err != nil {
		return fmt.Errorf("查找支付单失败: order_sn=%s: %w", res.OrderSN, err)
	}
	if stored.Status.IsTerminal() {
		// 回调和轮询可能竞争, 先到先得
		return nil
	}
	err = s.repo.UpdateTxnIDAndStatus(ctx, res.OrderSN, res.PaymentNO3rd, res.Status, res.PaidAt)
	if err != nil {
		return err
	}
	stored.Status = res.Status
	s.produceEvent(ctx, stored)
	return nil
}

func (s *service) produceEvent(ctx context.Context, pmt domain.Payment) {
	evt := event.PaymentEvent{
		OrderSN: pmt.OrderSN,
		PayerID: pmt.PayerID,
		Status:  pmt.Status.ToUint8(),
	}
	if err := s.producer.Produce(ctx, evt); err != nil {
		s.logger.Error("发送支付结果事件失败",
			elog.FieldErr(err),
			elog.String("order_sn", pmt.OrderSN),
			elog.Any("event", evt),
		)
	}
}
