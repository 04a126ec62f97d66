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
	"github.com/ecodeclub/emall/internal/cart"
	"github.com/ecodeclub/emall/internal/coupon"
	"github.com/ecodeclub/emall/internal/order"
	"github.com/ecodeclub/emall/internal/product"
)

// initMQConsumers 模块各自的消费者统一在这里拉起
func initMQConsumers(
	productModule *product.Module,
	couponModule *coupon.Module,
	orderModule *order.Module,
	cartModule *cart.Module,
) []Consumer {
	return []Consumer{
		productModule.Consumer,
		couponModule.Consumer,
		orderModule.Consumer,
		cartModule.Consumer,
	}
}
