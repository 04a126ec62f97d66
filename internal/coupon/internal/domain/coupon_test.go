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

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestCouponDiscount(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name     string
		percent  int64
		subtotal int64
		want     int64
	}{
		{name: "九折", percent: 10, subtotal: 5000, want: 500},
		{name: "不打折", percent: 0, subtotal: 5000, want: 0},
		{name: "全免", percent: 100, subtotal: 5000, want: 5000},
		{name: "除不尽向下取整", percent: 33, subtotal: 100, want: 33},
		{name: "一分钱", percent: 50, subtotal: 1, want: 0},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c := Coupon{DiscountPercent: tc.percent}
			assert.Equal(t, tc.want, c.Discount(tc.subtotal))
		})
	}
}

// 折扣金额永远落在 [0, subtotal] 区间内, 且与 subtotal*(1-pct/100) 一致
func TestCouponDiscountProperties(t *testing.T) {
	t.Parallel()
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 1000
	properties := gopter.NewProperties(parameters)

	properties.Property("折扣金额不超过小计", prop.ForAll(
		func(percent, subtotal int64) bool {
			c := Coupon{DiscountPercent: percent}
			d := c.Discount(subtotal)
			return d >= 0 && d <= subtotal
		},
		gen.Int64Range(0, 100),
		gen.Int64Range(0, 1_000_000_00),
	))

	properties.Property("实付金额等于小计减折扣", prop.ForAll(
		func(percent, subtotal int64) bool {
			c := Coupon{DiscountPercent: percent}
			real := subtotal - c.Discount(subtotal)
			return real >= 0 && real <= subtotal &&
				real == subtotal-subtotal*percent/100
		},
		gen.Int64Range(0, 100),
		gen.Int64Range(0, 1_000_000_00),
	))

	properties.TestingRun(t)
}

func TestCouponIsExpired(t *testing.T) {
	t.Parallel()
	const now = int64(1000)
	testCases := []struct {
		name       string
		validUntil int64
		want       bool
	}{
		{name: "未设置截止时间永不过期", validUntil: 0, want: false},
		{name: "截止时间之前", validUntil: 1001, want: false},
		{name: "恰好截止时间", validUntil: 1000, want: false},
		{name: "已过截止时间", validUntil: 999, want: true},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c := Coupon{ValidUntil: tc.validUntil}
			assert.Equal(t, tc.want, c.IsExpired(now))
		})
	}
}

func TestCouponIsReachedUsageLimit(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name      string
		max       int64
		used      int64
		want      bool
		remaining int64
	}{
		{name: "不限用量", max: 0, used: 100, want: false, remaining: -1},
		{name: "还差一次", max: 10, used: 9, want: false, remaining: 1},
		{name: "恰好用完", max: 10, used: 10, want: true, remaining: 0},
		{name: "超额", max: 10, used: 11, want: true, remaining: 0},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c := Coupon{MaxTotalUses: tc.max, UsedCount: tc.used}
			assert.Equal(t, tc.want, c.IsReachedUsageLimit())
			assert.Equal(t, tc.remaining, c.RemainingUses())
		})
	}
}

func TestCouponRemainingUsesForUser(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name string
		max  int64
		used int64
		want int64
	}{
		{name: "不限单人用量", max: 0, used: 5, want: -1},
		{name: "还差一次", max: 2, used: 1, want: 1},
		{name: "恰好用完", max: 2, used: 2, want: 0},
		{name: "超额", max: 2, used: 3, want: 0},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c := Coupon{MaxUsesPerUser: tc.max, UsedByUser: tc.used}
			assert.Equal(t, tc.want, c.RemainingUsesForUser())
		})
	}
}
