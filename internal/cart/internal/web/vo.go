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

type AddItemReq struct {
	SKUSN    string `json:"skuSn"`
	Quantity int64  `json:"quantity"`
}

type UpdateQuantityReq struct {
	SKUID    int64 `json:"skuId"`
	Quantity int64 `json:"quantity"`
}

type RemoveItemReq struct {
	SKUID int64 `json:"skuId"`
}

type CartResp struct {
	Items []CartItem `json:"items"`
	// TotalPrice 在售商品小计, 下架商品不计入
	TotalPrice int64 `json:"totalPrice"`
}

type CartItem struct {
	SKUID    int64  `json:"skuId"`
	SKUSN    string `json:"skuSn"`
	Name     string `json:"name"`
	Image    string `json:"image"`
	Price    int64  `json:"price"`
	Stock    int64  `json:"stock"`
	Quantity int64  `json:"quantity"`
	OffShelf bool   `json:"offShelf"`
}
