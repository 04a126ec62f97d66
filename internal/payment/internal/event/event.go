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

const PaymentEventName = "payment_events"

// PaymentEvent 只广播结果, 支付详情由订阅方按需回查
type PaymentEvent struct {
	OrderSN string `json:"orderSN"`
	PayerID int64  `json:"payerID"`
	// Status 支付状态 3=支付成功 4=支付失败 6=超时关闭
	Status uint8 `json:"status"`
}
