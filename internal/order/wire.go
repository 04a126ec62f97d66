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

//go:build wireinject

package order

import (
	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/emall/internal/coupon"
	"github.com/ecodeclub/emall/internal/order/internal/consumer"
	"github.com/ecodeclub/emall/internal/order/internal/event"
	"github.com/ecodeclub/emall/internal/order/internal/repository"
	"github.com/ecodeclub/emall/internal/order/internal/service"
	"github.com/ecodeclub/emall/internal/order/internal/web"
	"github.com/ecodeclub/emall/internal/payment"
	"github.com/ecodeclub/emall/internal/pkg/sequencenumber"
	"github.com/ecodeclub/emall/internal/product"
	"github.com/ecodeclub/mq-api"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
)

var ServiceSet = wire.NewSet(
	InitTablesOnce,
	InitOrderCloseEventProducer,
	sequencenumber.NewGenerator,
	repository.NewRepository,
	service.NewService)

func InitModule(db *egorm.Component, cache ecache.Cache, q mq.MQ,
	paymentSvc payment.Service,
	productSvc product.Service,
	couponSvc coupon.Service) (*Module, error) {
	wire.Build(
		ServiceSet,
		web.NewHandler,
		web.NewAdminHandler,
		consumer.NewPaymentConsumer,
		InitCloseExpiredOrdersJob,
		wire.Struct(new(Module), "*"),
	)
	return new(Module), nil
}
