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

package domain

type Status uint8

func (s Status) ToUint8() uint8 {
	return uint8(s)
}

const (
	StatusOffShelf Status = 1 // 下架
	StatusOnShelf  Status = 2 // 上架
)

type SPU struct {
	ID          int64
	SN          string
	Name        string
	Desc        string
	Category    string
	SubCategory string
	Status      Status
	SKUs        []SKU
}

// SKU 一个可购买的变体, (颜色, 尺码)组合, 有独立库存和序列号
type SKU struct {
	ID    int64
	SPUID int64
	SN    string
	Name  string
	Color string
	Size  string

	Price int64
	Stock int64

	Image  string
	Status Status
}
