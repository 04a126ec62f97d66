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
	StatusDisabled Status = 1 // 已停用
	StatusActive   Status = 2 // 生效中
)

// Coupon 百分比折扣的优惠码
// 有效期窗口和用量上限字段为0时表示不限制
type Coupon struct {
	ID              int64
	Code            string
	Name            string
	DiscountPercent int64
	ValidFrom       int64
	ValidUntil      int64
	MaxTotalUses    int64
	MaxUsesPerUser  int64
	UsedCount       int64
	// UsedByUser 当前用户已用次数, 只在Validate链路上有值
	UsedByUser int64
	Status     Status
	Ctime      int64
	Utime      int64
}

// Discount 对小计金额的折扣, 单位为分, 向下取整
func (c Coupon) Discount(subtotal int64) int64 {
	return subtotal * c.DiscountPercent / 100
}

func (c Coupon) IsExpired(now int64) bool {
	return c.ValidUntil > 0 && now > c.ValidUntil
}

func (c Coupon) NotStarted(now int64) bool {
	return c.ValidFrom > 0 && now < c.ValidFrom
}

func (c Coupon) IsReachedUsageLimit() bool {
	return c.MaxTotalUses > 0 && c.UsedCount >= c.MaxTotalUses
}

// RemainingUses 剩余可用次数, -1表示不限
func (c Coupon) RemainingUses() int64 {
	if c.MaxTotalUses == 0 {
		return -1
	}
	remaining := c.MaxTotalUses - c.UsedCount
	if remaining < 0 {
		return 0
	}
	return remaining
}

// RemainingUsesForUser 当前用户剩余可用次数, -1表示不限
func (c Coupon) RemainingUsesForUser() int64 {
	if c.MaxUsesPerUser == 0 {
		return -1
	}
	remaining := c.MaxUsesPerUser - c.UsedByUser
	if remaining < 0 {
		return 0
	}
	return remaining
}
