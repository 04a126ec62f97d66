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

package coupon

import (
	"github.com/ecodeclub/emall/internal/coupon/internal/event"
	"github.com/ecodeclub/emall/internal/coupon/internal/repository"
	"github.com/ecodeclub/emall/internal/coupon/internal/service"
	"github.com/ecodeclub/emall/internal/coupon/internal/web"
	"github.com/ecodeclub/mq-api"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
)

var ServiceSet = wire.NewSet(
	InitTablesOnce,
	InitSnowflakeNode,
	repository.NewCouponRepository,
	service.NewService)

func InitModule(db *egorm.Component, q mq.MQ) (*Module, error) {
	wire.Build(
		ServiceSet,
		web.NewHandler,
		web.NewAdminHandler,
		event.NewReleaseUsageConsumer,
		wire.Struct(new(Module), "*"),
	)
	return new(Module), nil
}
