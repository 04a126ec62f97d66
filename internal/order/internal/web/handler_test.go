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

import (
	"testing"

	"github.com/ecodeclub/emall/internal/coupon"
	"github.com/ecodeclub/emall/internal/order/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestComputeTotals(t *testing.T) {
	t.Parallel()

	items := []domain.OrderItem{
		{SKU: domain.SKU{ID: 1, OriginalPrice: 1000, Quantity: 1}},
		{SKU: domain.SKU{ID: 2, OriginalPrice: 2000, Quantity: 2}},
	}

	testCases := []struct {
		name         string
		items        []domain.OrderItem
		coupon       coupon.Coupon
		wantOriginal int64
		wantDiscount int64
		wantReal     int64
	}{
		{
			name:         "无优惠码",
			items:        items,
			wantOriginal: 5000,
			wantDiscount: 0,
			wantReal:     5000,
		},
		{
			name:         "九折优惠码",
			items:        items,
			coupon:       coupon.Coupon{ID: 1, Code: "SAVE10", DiscountPercent: 10},
			wantOriginal: 5000,
			wantDiscount: 500,
			wantReal:     4500,
		},
		{
			name: "折扣向下取整",
			items: []domain.OrderItem{
				{SKU: domain.SKU{ID: 3, OriginalPrice: 999, Quantity: 1}},
			},
			coupon:       coupon.Coupon{ID: 2, Code: "SAVE10", DiscountPercent: 10},
			wantOriginal: 999,
			wantDiscount: 99,
			wantReal:     900,
		},
		{
			name:         "全额折扣",
			items:        items,
			coupon:       coupon.Coupon{ID: 3, Code: "FREE", DiscountPercent: 100},
			wantOriginal: 5000,
			wantDiscount: 5000,
			wantReal:     0,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			original, discount, real := computeTotals(tc.items, tc.coupon)
			assert.Equal(t, tc.wantOriginal, original)
			assert.Equal(t, tc.wantDiscount, discount)
			assert.Equal(t, tc.wantReal, real)
		})
	}
}
