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
	"database/sql"
	"fmt"
	"time"

	"github.com/ego-component/egorm"
	"gorm.io/gorm"
)

var ErrPaymentNotFound = gorm.ErrRecordNotFound

type PaymentDAO interface {
	FindOrCreate(ctx context.Context, pmt Payment) (Payment, error)
	FindByOrderSN(ctx context.Context, orderSN string) (Payment, error)
	FindBySN(ctx context.Context, sn string) (Payment, error)
	// UpdateTxnIDAndStatus 回调和同步共用的状态落库入口
	UpdateTxnIDAndStatus(ctx context.Context, orderSN string, txnID string, status uint8, paidAt int64) error
	UpdateStatus(ctx context.Context, orderSN string, status uint8) error
	SetCodeURL(ctx context.Context, orderSN string, codeURL string) error
	FindExpiredPayments(ctx context.Context, offset, limit int, t time.Time) ([]Payment, error)
	CountExpiredPayments(ctx context.Context, t time.Time) (int64, error)
}

type PaymentGORMDAO struct {
	db *egorm.Component
}

func NewPaymentGORMDAO(db *egorm.Component) PaymentDAO {
	return &PaymentGORMDAO{db: db}
}

// FindOrCreate 同一订单重复发起支付复用未关闭的支付单
func (g *PaymentGORMDAO) FindOrCreate(ctx context.Context, pmt Payment) (Payment, error) {
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UnixMilli()
		pmt.Ctime, pmt.Utime = now, now
		if err := tx.FirstOrCreate(&pmt, "order_id = ?", pmt.OrderId).Error; err != nil {
			return fmt.Errorf("创建支付记录失败: %w", err)
		}
		return nil
	})
	return pmt, err
}

func (g *PaymentGORMDAO) FindByOrderSN(ctx context.Context, orderSN string) (Payment, error) {
	var pmt Payment
	err := g.db.WithContext(ctx).First(&pmt, "order_sn = ?", orderSN).Error
	return pmt, err
}

func (g *PaymentGORMDAO) FindBySN(ctx context.Context, sn string) (Payment, error) {
	var pmt Payment
	err := g.db.WithContext(ctx).First(&pmt, "sn = ?", sn).Error
	return pmt, err
}

func (g *PaymentGORMDAO) UpdateTxnIDAndStatus(ctx context.Context, orderSN string, txnID string, status uint8, paidAt int64) error {
	return g.db.WithContext(ctx).Model(&Payment{}).
		Where("order_sn = ?", orderSN).
		Updates(map[string]any{
			"payment_no_3rd": sql.NullString{String: txnID, Valid: txnID != ""},
			"status":         status,
			"paid_at":        paidAt,
			"utime":          time.Now().UnixMilli(),
		}).Error
}

func (g *PaymentGORMDAO) UpdateStatus(ctx context.Context, orderSN string, status uint8) error {
	return g.db.WithContext(ctx).Model(&Payment{}).
		Where("order_sn = ?", orderSN).
		Updates(map[string]any{
			"status": status,
			"utime":  time.Now().UnixMilli(),
		}).Error
}

func (g *PaymentGORMDAO) SetCodeURL(ctx context.Context, orderSN string, codeURL string) error {
	return g.db.WithContext(ctx).Model(&Payment{}).
		Where("order_sn = ?", orderSN).
		Updates(map[string]any{
			"code_url": codeURL,
			"utime":    time.Now().UnixMilli(),
		}).Error
}

func (g *PaymentGORMDAO) FindExpiredPayments(ctx context.Context, offset, limit int, t time.Time) ([]Payment, error) {
	var res []Payment
	err := g.db.WithContext(ctx).
		Where("status = ? AND utime < ?", uint8(1), t.UnixMilli()).
		Offset(offset).Limit(limit).
		Find(&res).Error
	return res, err
}

func (g *PaymentGORMDAO) CountExpiredPayments(ctx context.Context, t time.Time) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&Payment{}).
		Where("status = ? AND utime < ?", uint8(1), t.UnixMilli()).
		Count(&count).Error
	return count, err
}

type Payment struct {
	Id               int64          `gorm:"primaryKey;autoIncrement;comment:支付自增ID"`
	SN               string         `gorm:"type:varchar(255);not null;uniqueIndex:uniq_payment_sn;comment:支付序列号"`
	PayerId          int64          `gorm:"index:idx_payer_id;comment:支付者ID"`
	OrderId          int64          `gorm:"uniqueIndex:uniq_order_id;comment:订单自增ID"`
	OrderSn          string         `gorm:"type:varchar(255);uniqueIndex:uniq_order_sn;comment:订单序列号"`
	OrderDescription string         `gorm:"type:varchar(255);not null;comment:订单简要描述"`
	TotalAmount      int64          `gorm:"not null;comment:支付总金额, 单位为分"`
	Channel          uint8          `gorm:"type:tinyint unsigned;not null;default:1;comment:支付渠道 1=微信"`
	PaymentNO3rd     sql.NullString `gorm:"column:payment_no_3rd;type:varchar(255);uniqueIndex:uniq_payment_no_3rd;comment:支付渠道的事务ID"`
	CodeURL          string         `gorm:"type:varchar(512);comment:微信支付二维码内容"`
	Deadline         int64          `gorm:"comment:支付截止时间"`
	PaidAt           int64          `gorm:"comment:支付时间"`
	Status           uint8          `gorm:"type:tinyint unsigned;not null;default:1;comment:支付状态 1=未支付 2=支付中 3=支付成功 4=支付失败 5=转入退款 6=超时关闭"`
	Ctime            int64
	Utime            int64
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&Payment{})
}
