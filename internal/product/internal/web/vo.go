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

type SPUSNReq struct {
	SN string `json:"sn"`
}

type SKUSNReq struct {
	SN string `json:"sn"`
}

type ListReq struct {
	Offset int `json:"offset,omitempty"`
	Limit  int `json:"limit,omitempty"`
}

type ListResp struct {
	Total int64 `json:"total,omitempty"`
	SPUs  []SPU `json:"spus,omitempty"`
}

type SPU struct {
	ID          int64  `json:"id,omitempty"`
	SN          string `json:"sn"`
	Name        string `json:"name"`
	Desc        string `json:"desc"`
	Category    string `json:"category"`
	SubCategory string `json:"subCategory"`
	Status      uint8  `json:"status,omitempty"`
	SKUs        []SKU  `json:"skus"`
}

type SKU struct {
	ID     int64  `json:"id,omitempty"`
	SN     string `json:"sn"`
	Name   string `json:"name"`
	Color  string `json:"color"`
	Size   string `json:"size"`
	Price  int64  `json:"price"`
	Stock  int64  `json:"stock"`
	Image  string `json:"image"`
	Status uint8  `json:"status,omitempty"`
}

// SaveSPUReq 管理端创建/更新商品
// Colors与Sizes非空时按矩阵批量生成SKU, SKUs字段可覆盖单个变体
type SaveSPUReq struct {
	SPU    SPU      `json:"spu"`
	Colors []string `json:"colors,omitempty"`
	Sizes  []string `json:"sizes,omitempty"`
	Price  int64    `json:"price,omitempty"`
	Stock  int64    `json:"stock,omitempty"`
}

type SaveSPUResp struct {
	ID int64 `json:"id"`
}
