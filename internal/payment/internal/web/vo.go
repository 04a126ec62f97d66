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

package web

type QueryReq struct {
	OrderSN string `json:"orderSN"`
}

type PaymentResp struct {
	SN          string `json:"sn"`
	OrderSN     string `json:"orderSN"`
	TotalAmount int64  `json:"totalAmount"`
	CodeURL     string `json:"codeURL,omitempty"`
	Status      uint8  `json:"status"`
	PaidAt      int64  `json:"paidAt,omitempty"`
}
