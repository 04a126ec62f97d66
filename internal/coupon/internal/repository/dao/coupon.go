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

package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ecodeclub/emall/internal/coupon/internal/domain"
	"github.com/ego-component/egorm"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrCouponNotFound     = gorm.ErrRecordNotFound
	ErrCouponInactive     = errors.New("优惠码不在有效期内或已停用")
	ErrCouponLimitReached = errors.New("优惠码使用次数已达上限")
)

type CouponDAO interface {
	Create(ctx context.Context, c Coupon) (int64, error)
	Update(ctx context.Context, c Coupon) error
	UpdateStatus(ctx context.Context, id int64, status uint8) error
	FindByCode(ctx context.Context, code string) (Coupon, error)
	FindByID(ctx context.Context, id int64) (Coupon, error)
	List(ctx context.Context, offset, limit int) ([]Coupon, error)
	Count(ctx context.Context) (int64, error)
	CountRedemptions(ctx context.Context, couponId, uid int64) (int64, error)
	// Redeem 在单个事务内完成校验+占用, 并发兑换时防止超发
	Redeem(ctx context.Context, uid, orderId int64, code string) (Coupon, error)
	// Release 订单关闭后归还已占用的次数
	Release(ctx context.Context, orderId int64) error
}

type gormCouponDAO struct {
	db *egorm.Component
}

func NewGORMCouponDAO(db *egorm.Component) CouponDAO {
	return &gormCouponDAO{db: db}
}

func (g *gormCouponDAO) Create(ctx context.Context, c Coupon) (int64, error) {
	now := time.Now().UnixMilli()
	c.Ctime, c.Utime = now, now
	err := g.db.WithContext(ctx).Create(&c).Error
	return c.Id, err
}

func (g *gormCouponDAO) Update(ctx context.Context, c Coupon) error {
	c.Utime = time.Now().UnixMilli()
	// UsedCount只能走Redeem/Release修改
	return g.db.WithContext(ctx).Model(&Coupon{}).
		Where("id = ?", c.Id).
		Omit("used_count", "ctime").
		Updates(&c).Error
}

func (g *gormCouponDAO) UpdateStatus(ctx context.Context, id int64, status uint8) error {
	return g.db.WithContext(ctx).Model(&Coupon{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status": status,
			"utime":  time.Now().UnixMilli(),
		}).Error
}

func (g *gormCouponDAO) FindByCode(ctx context.Context, code string) (Coupon, error) {
	var res Coupon
	err := g.db.WithContext(ctx).First(&res, "code = ?", code).Error
	return res, err
}

func (g *gormCouponDAO) FindByID(ctx context.Context, id int64) (Coupon, error) {
	var res Coupon
	err := g.db.WithContext(ctx).First(&res, "id = ?", id).Error
	return res, err
}

func (g *gormCouponDAO) List(ctx context.Context, offset, limit int) ([]Coupon, error) {
	var res []Coupon
	err := g.db.WithContext(ctx).Order("ctime DESC").
		Offset(offset).Limit(limit).Find(&res).Error
	return res, err
}

func (g *gormCouponDAO) Count(ctx context.Context) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&Coupon{}).Count(&count).Error
	return count, err
}

func (g *gormCouponDAO) CountRedemptions(ctx context.Context, couponId, uid int64) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&RedeemLog{}).
		Where("coupon_id = ? AND uid = ?", couponId, uid).
		Count(&count).Error
	return count, err
}

func (g *gormCouponDAO) Redeem(ctx context.Context, uid, orderId int64, code string) (Coupon, error) {
	now := time.Now().UnixMilli()
	var c Coupon
	err := g.db.WithContext(ctx).Transaction(func(tx *egorm.Component) error {
		// 行锁保证 全局上限 和 单人上限 两个判断的原子性
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&c, "code = ?", code).Error; err != nil {
			return err
		}
		if c.Status != domain.StatusActive.ToUint8() {
			return fmt.Errorf("%w: %s", ErrCouponInactive, code)
		}
		coupon := domain.Coupon{
			ValidFrom:    c.ValidFrom,
			ValidUntil:   c.ValidUntil,
			MaxTotalUses: c.MaxTotalUses,
			UsedCount:    c.UsedCount,
		}
		if coupon.NotStarted(now) || coupon.IsExpired(now) {
			return fmt.Errorf("%w: %s", ErrCouponInactive, code)
		}
		if coupon.IsReachedUsageLimit() {
			return fmt.Errorf("%w: %s", ErrCouponLimitReached, code)
		}
		if c.MaxUsesPerUser > 0 {
			var used int64
			if err := tx.Model(&RedeemLog{}).
				Where("coupon_id = ? AND uid = ?", c.Id, uid).
				Count(&used).Error; err != nil {
				return err
			}
			if used >= c.MaxUsesPerUser {
				return fmt.Errorf("%w: %s", ErrCouponLimitReached, code)
			}
		}

		res := tx.Model(&Coupon{}).
			Where("id = ? AND (max_total_uses = 0 OR used_count < max_total_uses)", c.Id).
			Updates(map[string]any{
				"used_count": gorm.Expr("used_count + 1"),
				"utime":      now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: %s", ErrCouponLimitReached, code)
		}
		c.UsedCount++

		l := RedeemLog{
			CouponId: c.Id,
			Uid:      uid,
			OrderId:  orderId,
			Code:     code,
			Ctime:    now,
			Utime:    now,
		}
		return tx.Create(&l).Error
	})
	if err != nil {
		return Coupon{}, err
	}
	return c, nil
}

func (g *gormCouponDAO) Release(ctx context.Context, orderId int64) error {
	now := time.Now().UnixMilli()
	return g.db.WithContext(ctx).Transaction(func(tx *egorm.Component) error {
		var l RedeemLog
		err := tx.First(&l, "order_id = ?", orderId).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 未用券的订单, 无需归还
			return nil
		}
		if err != nil {
			return err
		}
		if err = tx.Delete(&RedeemLog{}, "id = ?", l.Id).Error; err != nil {
			return err
		}
		return tx.Model(&Coupon{}).
			Where("id = ? AND used_count > 0", l.CouponId).
			Updates(map[string]any{
				"used_count": gorm.Expr("used_count - 1"),
				"utime":      now,
			}).Error
	})
}

type Coupon struct {
	Id              int64  `gorm:"primaryKey;autoIncrement;comment:优惠码自增ID"`
	Code            string `gorm:"type:varchar(64);not null;uniqueIndex:uniq_coupon_code;comment:优惠码"`
	Name            string `gorm:"type:varchar(255);not null;comment:优惠活动名称"`
	DiscountPercent int64  `gorm:"not null;comment:折扣百分比, 10表示减免10%"`
	ValidFrom       int64  `gorm:"not null;default:0;comment:生效时间, 0表示立即生效"`
	ValidUntil      int64  `gorm:"not null;default:0;comment:失效时间, 0表示长期有效"`
	MaxTotalUses    int64  `gorm:"not null;default:0;comment:全局使用上限, 0表示不限"`
	MaxUsesPerUser  int64  `gorm:"not null;default:0;comment:单人使用上限, 0表示不限"`
	UsedCount       int64  `gorm:"not null;default:0;comment:已使用次数"`
	Status          uint8  `gorm:"type:tinyint unsigned;not null;default:2;comment:状态 1=停用 2=生效"`
	Ctime           int64
	Utime           int64
}

type RedeemLog struct {
	Id       int64  `gorm:"primaryKey;autoIncrement;comment:兑换记录自增ID"`
	CouponId int64  `gorm:"not null;index:idx_coupon_uid,priority:1;comment:优惠码自增ID"`
	Uid      int64  `gorm:"not null;index:idx_coupon_uid,priority:2;comment:使用者ID"`
	OrderId  int64  `gorm:"not null;uniqueIndex:uniq_redeem_order_id;comment:订单自增ID"`
	Code     string `gorm:"type:varchar(64);not null;comment:优惠码"`
	Ctime    int64
	Utime    int64
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&Coupon{}, &RedeemLog{})
}
