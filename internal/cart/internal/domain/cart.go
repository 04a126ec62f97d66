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

// Cart 购物车整体存储, 以用户为粒度读写
type Cart struct {
	UID   int64
	Items []CartItem
}

// CartItem 价格和库存是读取时的快照, 下单前以商品模块为准
type CartItem struct {
	SKUID    int64
	SKUSN    string
	Name     string
	Image    string
	Price    int64
	Stock    int64
	Quantity int64
	// OffShelf 商品已下架, 仅展示不可下单
	OffShelf bool
	Utime    int64
}

// Find 返回items中skuID对应的下标, 不存在返回-1
func (c Cart) Find(skuID int64) int {
	for i := range c.Items {
		if c.Items[i].SKUID == skuID {
			return i
		}
	}
	return -1
}
