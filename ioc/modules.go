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

package ioc

import (
	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/emall/internal/cart"
	"github.com/ecodeclub/emall/internal/coupon"
	"github.com/ecodeclub/emall/internal/order"
	"github.com/ecodeclub/emall/internal/payment"
	"github.com/ecodeclub/emall/internal/product"
	"github.com/ecodeclub/emall/internal/user"
	"github.com/ecodeclub/mq-api"
	"github.com/ego-component/egorm"
	"github.com/gotomicro/ego/core/econf"
)

func initUserModule(db *egorm.Component, ec ecache.Cache, q mq.MQ) *user.Module {
	type Config struct {
		Admins []string `yaml:"admins"`
	}
	var cfg Config
	err := econf.UnmarshalKey("user", &cfg)
	if err != nil {
		panic(err)
	}
	res, err := user.InitModule(db, ec, q, cfg.Admins)
	if err != nil {
		panic(err)
	}
	return res
}

func initProductModule(db *egorm.Component, ec ecache.Cache, q mq.MQ) *product.Module {
	res, err := product.InitModule(db, ec, q)
	if err != nil {
		panic(err)
	}
	return res
}

func initCouponModule(db *egorm.Component, q mq.MQ) *coupon.Module {
	res, err := coupon.InitModule(db, q)
	if err != nil {
		panic(err)
	}
	return res
}

func initPaymentModule(db *egorm.Component, q mq.MQ) *payment.Module {
	res, err := payment.InitModule(db, q)
	if err != nil {
		panic(err)
	}
	return res
}

func initOrderModule(db *egorm.Component, ec ecache.Cache, q mq.MQ,
	paymentModule *payment.Module,
	productModule *product.Module,
	couponModule *coupon.Module) *order.Module {
	res, err := order.InitModule(db, ec, q, paymentModule.Svc, productModule.Svc, couponModule.Svc)
	if err != nil {
		panic(err)
	}
	return res
}

func initCartModule(ec ecache.Cache, q mq.MQ, productModule *product.Module) *cart.Module {
	res, err := cart.InitModule(ec, q, productModule.Svc)
	if err != nil {
		panic(err)
	}
	return res
}
