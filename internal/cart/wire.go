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

package cart

import (
	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/emall/internal/cart/internal/event"
	"github.com/ecodeclub/emall/internal/cart/internal/repository"
	"github.com/ecodeclub/emall/internal/cart/internal/repository/cache"
	"github.com/ecodeclub/emall/internal/cart/internal/service"
	"github.com/ecodeclub/emall/internal/cart/internal/web"
	"github.com/ecodeclub/emall/internal/product"
	"github.com/ecodeclub/mq-api"
	"github.com/google/wire"
)

var ServiceSet = wire.NewSet(
	cache.NewCartECache,
	repository.NewCartRepository,
	service.NewService)

func InitModule(ec ecache.Cache, q mq.MQ, productSvc product.Service) (*Module, error) {
	wire.Build(
		ServiceSet,
		web.NewHandler,
		event.NewClearCartConsumer,
		wire.Struct(new(Module), "*"),
	)
	return new(Module), nil
}
