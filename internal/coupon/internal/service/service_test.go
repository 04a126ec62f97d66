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

package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/ecodeclub/emall/internal/coupon/internal/domain"
	"github.com/ecodeclub/emall/internal/coupon/internal/repository"
	"github.com/ecodeclub/emall/internal/coupon/internal/repository/dao"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCouponRepository struct {
	repository.CouponRepository
	coupons     map[string]domain.Coupon
	redemptions map[int64]int64 // couponID -> 当前uid已用次数
}

func (f *fakeCouponRepository) FindByCode(_ context.Context, code string) (domain.Coupon, error) {
	c, ok := f.coupons[code]
	if !ok {
		return domain.Coupon{}, dao.ErrCouponNotFound
	}
	return c, nil
}

func (f *fakeCouponRepository) CountRedemptions(_ context.Context, couponID, _ int64) (int64, error) {
	return f.redemptions[couponID], nil
}

func TestServiceValidate(t *testing.T) {
	t.Parallel()
	const uid = int64(234)
	now := time.Now().UnixMilli()
	hour := time.Hour.Milliseconds()

	testCases := []struct {
		name        string
		coupons     map[string]domain.Coupon
		redemptions map[int64]int64
		code        string
		wantErr     error

		wantRemaining     int64
		wantUserRemaining int64
	}{
		{
			name:    "优惠码不存在",
			coupons: map[string]domain.Coupon{},
			code:    "NOPE",
			wantErr: dao.ErrCouponNotFound,
		},
		{
			name: "已停用",
			coupons: map[string]domain.Coupon{
				"OFF10": {ID: 1, Code: "OFF10", Status: domain.StatusDisabled},
			},
			code:    "OFF10",
			wantErr: dao.ErrCouponInactive,
		},
		{
			name: "尚未生效",
			coupons: map[string]domain.Coupon{
				"OFF10": {ID: 1, Code: "OFF10", Status: domain.StatusActive, ValidFrom: now + hour},
			},
			code:    "OFF10",
			wantErr: dao.ErrCouponInactive,
		},
		{
			name: "已过期",
			coupons: map[string]domain.Coupon{
				"OFF10": {ID: 1, Code: "OFF10", Status: domain.StatusActive, ValidUntil: now - hour},
			},
			code:    "OFF10",
			wantErr: dao.ErrCouponInactive,
		},
		{
			name: "全局次数用尽",
			coupons: map[string]domain.Coupon{
				"OFF10": {ID: 1, Code: "OFF10", Status: domain.StatusActive, MaxTotalUses: 5, UsedCount: 5},
			},
			code:    "OFF10",
			wantErr: dao.ErrCouponLimitReached,
		},
		{
			name: "单人次数用尽",
			coupons: map[string]domain.Coupon{
				"OFF10": {ID: 1, Code: "OFF10", Status: domain.StatusActive, MaxUsesPerUser: 1},
			},
			redemptions: map[int64]int64{1: 1},
			code:        "OFF10",
			wantErr:     dao.ErrCouponLimitReached,
		},
		{
			name: "还剩最后一次可用",
			coupons: map[string]domain.Coupon{
				"OFF10": {
					ID: 1, Code: "OFF10", Status: domain.StatusActive,
					DiscountPercent: 10,
					ValidUntil:      now + hour,
					MaxTotalUses:    5, UsedCount: 4,
				},
			},
			code:              "OFF10",
			wantRemaining:     1,
			wantUserRemaining: -1,
		},
		{
			name: "单人限额未用尽时返回单人剩余次数",
			coupons: map[string]domain.Coupon{
				"OFF10": {
					ID: 1, Code: "OFF10", Status: domain.StatusActive,
					DiscountPercent: 10,
					MaxUsesPerUser:  3,
				},
			},
			redemptions:       map[int64]int64{1: 1},
			code:              "OFF10",
			wantRemaining:     -1,
			wantUserRemaining: 2,
		},
	}

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc := NewService(&fakeCouponRepository{
				coupons:     tc.coupons,
				redemptions: tc.redemptions,
			}, node)

			c, err := svc.Validate(context.Background(), tc.code, uid)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.code, c.Code)
			assert.Equal(t, tc.wantRemaining, c.RemainingUses())
			assert.Equal(t, tc.wantUserRemaining, c.RemainingUsesForUser())
		})
	}
}

func TestServiceSaveValidation(t *testing.T) {
	t.Parallel()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	svc := NewService(&fakeCouponRepository{}, node)

	_, err = svc.Save(context.Background(), domain.Coupon{DiscountPercent: 101})
	assert.Error(t, err)

	_, err = svc.Save(context.Background(), domain.Coupon{DiscountPercent: -1})
	assert.Error(t, err)

	_, err = svc.Save(context.Background(), domain.Coupon{
		DiscountPercent: 10,
		ValidFrom:       200,
		ValidUntil:      100,
	})
	assert.Error(t, err)
}
