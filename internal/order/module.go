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

package order

import (
	"sync"

	"github.com/ecodeclub/emall/internal/order/internal/domain"
	"github.com/ecodeclub/emall/internal/order/internal/consumer"
	"github.com/ecodeclub/emall/internal/order/internal/event"
	"github.com/ecodeclub/emall/internal/order/internal/job"
	"github.com/ecodeclub/emall/internal/order/internal/repository/dao"
	"github.com/ecodeclub/emall/internal/order/internal/service"
	"github.com/ecodeclub/emall/internal/order/internal/web"
	"github.com/ecodeclub/mq-api"
	"github.com/ego-component/egorm"
)

type (
	Handler               = web.Handler
	AdminHandler          = web.AdminHandler
	Service               = service.Service
	Order                 = domain.Order
	Status                = domain.OrderStatus
	DeliveryStatus        = domain.DeliveryStatus
	CloseExpiredOrdersJob = job.CloseExpiredOrdersJob
)

const (
	StatusUnpaid   = domain.OrderStatusUnpaid
	StatusPaid     = domain.OrderStatusPaid
	StatusCanceled = domain.OrderStatusCanceled
	StatusExpired  = domain.OrderStatusExpired
)

var ErrOrderNotFound = dao.ErrOrderNotFound

type Module struct {
	Svc                   Service
	Hdl                   *Handler
	AdminHdl              *AdminHandler
	Consumer              *consumer.PaymentConsumer
	CloseExpiredOrdersJob *CloseExpiredOrdersJob
}

var once = &sync.Once{}

func InitTablesOnce(db *egorm.Component) dao.OrderDAO {
	once.Do(func() {
		_ = dao.InitTables(db)
	})
	return dao.NewOrderGORMDAO(db)
}

func InitOrderCloseEventProducer(q mq.MQ) (event.OrderCloseEventProducer, error) {
	return event.NewOrderCloseEventProducer(q)
}

func InitCloseExpiredOrdersJob(svc service.Service) *job.CloseExpiredOrdersJob {
	const (
		minutes = int64(30)
		seconds = int64(10)
		limit   = 100
	)
	return job.NewCloseExpiredOrdersJob(svc, minutes, seconds, limit)
}
