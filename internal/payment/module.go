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

package payment

import (
	"sync"

	"github.com/ecodeclub/emall/internal/payment/internal/domain"
	"github.com/ecodeclub/emall/internal/payment/internal/event"
	"github.com/ecodeclub/emall/internal/payment/internal/job"
	"github.com/ecodeclub/emall/internal/payment/internal/repository/dao"
	"github.com/ecodeclub/emall/internal/payment/internal/service"
	"github.com/ecodeclub/emall/internal/payment/internal/web"
	"github.com/ecodeclub/emall/internal/pkg/mqx"
	"github.com/ecodeclub/mq-api"
	"github.com/ego-component/egorm"
)

type (
	Handler            = web.Handler
	Payment            = domain.Payment
	Status             = domain.PaymentStatus
	ChannelType        = domain.ChannelType
	Service            = service.Service
	SyncWechatOrderJob = job.SyncWechatOrderJob
)

const (
	ChannelTypeWechat = domain.ChannelTypeWechat

	StatusUnpaid        = domain.PaymentStatusUnpaid
	StatusProcessing    = domain.PaymentStatusProcessing
	StatusPaidSuccess   = domain.PaymentStatusPaidSuccess
	StatusPaidFailed    = domain.PaymentStatusPaidFailed
	StatusRefund        = domain.PaymentStatusRefund
	StatusTimeoutClosed = domain.PaymentStatusTimeoutClosed
)

var ErrPaymentNotFound = dao.ErrPaymentNotFound

type Module struct {
	Svc                Service
	Hdl                *Handler
	SyncWechatOrderJob *SyncWechatOrderJob
}

var once = &sync.Once{}

func InitTablesOnce(db *egorm.Component) dao.PaymentDAO {
	once.Do(func() {
		_ = dao.InitTables(db)
	})
	return dao.NewPaymentGORMDAO(db)
}

func InitPaymentEventProducer(q mq.MQ) (mqx.Producer[event.PaymentEvent], error) {
	return mqx.NewGeneralProducer[event.PaymentEvent](q, event.PaymentEventName)
}

func InitSyncWechatOrderJob(svc service.Service) *job.SyncWechatOrderJob {
	const (
		minutes = int64(30)
		seconds = int64(10)
		limit   = 100
	)
	return job.NewSyncWechatOrderJob(svc, minutes, seconds, limit)
}
