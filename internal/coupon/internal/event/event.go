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

package event

const orderCloseEvents = "order_close_events"

// OrderCloseEvent 订单被取消或超时关闭, 优惠码模块据此归还使用次数
type OrderCloseEvent struct {
	OrderID  int64           `json:"orderID"`
	OrderSN  string          `json:"orderSN"`
	BuyerID  int64           `json:"buyerID"`
	CouponID int64           `json:"couponID"`
	SKUs     []OrderCloseSKU `json:"skus"`
}

type OrderCloseSKU struct {
	SKUID    int64 `json:"skuID"`
	Quantity int64 `json:"quantity"`
}
