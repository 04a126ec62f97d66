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

package repository

import (
	"context"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/emall/internal/coupon/internal/domain"
	"github.com/ecodeclub/emall/internal/coupon/internal/repository/dao"
)

type CouponRepository interface {
	Create(ctx context.Context, c domain.Coupon) (int64, error)
	Update(ctx context.Context, c domain.Coupon) error
	UpdateStatus(ctx context.Context, id int64, status domain.Status) error
	FindByCode(ctx context.Context, code string) (domain.Coupon, error)
	FindByID(ctx context.Context, id int64) (domain.Coupon, error)
	List(ctx context.Context, offset, limit int) ([]domain.Coupon, error)
	Count(ctx context.Context) (int64, error)
	CountRedemptions(ctx context.Context, couponID, uid int64) (int64, error)
	Redeem(ctx context.Context, uid, orderID int64, code string) (domain.Coupon, error)
	Release(ctx context.Context, orderID int64) error
}

func NewCouponRepository(d dao.CouponDAO) CouponRepository {
	return &couponRepository{dao: d}
}

type couponRepository struct {
	dao dao.CouponDAO
}

func (r *couponRepository) Create(ctx context.Context, c domain.Coupon) (int64, error) {
	return r.dao.Create(ctx, r.toEntity(c))
}

func (r *couponRepository) Update(ctx context.Context, c domain.Coupon) error {
	return r.dao.Update(ctx, r.toEntity(c))
}

func (r *couponRepository) UpdateStatus(ctx context.Context, id int64, status domain.Status) error {
	return r.dao.UpdateStatus(ctx, id, status.ToUint8())
}

func (r *couponRepository) FindByCode(ctx context.Context, code string) (domain.Coupon, error) {
	c, err := r.dao.FindByCode(ctx, code)
	if err != nil {
		return domain.Coupon{}, err
	}
	return r.toDomain(c), nil
}

func (r *couponRepository) FindByID(ctx context.Context, id int64) (domain.Coupon, error) {
	c, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Coupon{}, err
	}
	return r.toDomain(c), nil
}

func (r *couponRepository) List(ctx context.Context, offset, limit int) ([]domain.Coupon, error) {
	cs, err := r.dao.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(cs, func(idx int, src dao.Coupon) domain.Coupon {
		return r.toDomain(src)
	}), nil
}

func (r *couponRepository) Count(ctx context.Context) (int64, error) {
	return r.dao.Count(ctx)
}

func (r *couponRepository) CountRedemptions(ctx context.Context, couponID, uid int64) (int64, error) {
	return r.dao.CountRedemptions(ctx, couponID, uid)
}

func (r *couponRepository) Redeem(ctx context.Context, uid, orderID int64, code string) (domain.Coupon, error) {
	c, err := r.dao.Redeem(ctx, uid, orderID, code)
	if err != nil {
		return domain.Coupon{}, err
	}
	return r.toDomain(c), nil
}

func (r *couponRepository) Release(ctx context.Context, orderID int64) error {
	return r.dao.Release(ctx, orderID)
}

func (r *couponRepository) toEntity(c domain.Coupon) dao.Coupon {
	return dao.Coupon{
		Id:              c.ID,
		Code:            c.Code,
		Name:            c.Name,
		DiscountPercent: c.DiscountPercent,
		ValidFrom:       c.ValidFrom,
		ValidUntil:      c.ValidUntil,
		MaxTotalUses:    c.MaxTotalUses,
		MaxUsesPerUser:  c.MaxUsesPerUser,
		UsedCount:       c.UsedCount,
		Status:          c.Status.ToUint8(),
	}
}

func (r *couponRepository) toDomain(c dao.Coupon) domain.Coupon {
	return domain.Coupon{
		ID:              c.Id,
		Code:            c.Code,
		Name:            c.Name,
		DiscountPercent: c.DiscountPercent,
		ValidFrom:       c.ValidFrom,
		ValidUntil:      c.ValidUntil,
		MaxTotalUses:    c.MaxTotalUses,
		MaxUsesPerUser:  c.MaxUsesPerUser,
		UsedCount:       c.UsedCount,
		Status:          domain.Status(c.Status),
		Ctime:           c.Ctime,
		Utime:           c.Utime,
	}
}
