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

	"github.com/ego-component/egorm"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound = gorm.ErrRecordNotFound
	// ErrInvalidTransition 并发修改或非法流转, 条件更新没改到行
	ErrInvalidTransition = errors.New("订单状态流转失败")
)

type OrderDAO interface {
	// CreateOrder 订单, 订单项和首条状态历史在同一事务内落库
	CreateOrder(ctx context.Context, o Order, items []OrderItem) (int64, error)
	UpdatePaymentInfo(ctx context.Context, buyerID, orderID, paymentID int64, paymentSN string) error
	FindOrderBySN(ctx context.Context, sn string) (Order, error)
	FindOrderBySNAndBuyerID(ctx context.Context, sn string, buyerID int64) (Order, error)
	FindOrderItems(ctx context.Context, orderID int64) ([]OrderItem, error)
	FindStatusHistory(ctx context.Context, orderID int64) ([]OrderStatusHistory, error)
	ListOrdersByUID(ctx context.Context, offset, limit int, uid int64) ([]Order, error)
	CountOrdersByUID(ctx context.Context, uid int64) (int64, error)
	ListOrders(ctx context.Context, offset, limit int) ([]Order, error)
	CountOrders(ctx context.Context) (int64, error)
	// UpdateOrderStatus 幂等: 订单已处于目标状态时不改行也不追加历史
	UpdateOrderStatus(ctx context.Context, orderID int64, status uint8, closedAt int64, actor, note string) error
	// UpdateDeliveryStatus 条件更新, from不匹配时返回 ErrInvalidTransition
	UpdateDeliveryStatus(ctx context.Context, orderID int64, from, to uint8, actor, note string) error
	ListExpiredOrders(ctx context.Context, offset, limit int, ctime int64) ([]Order, error)
	CountExpiredOrders(ctx context.Context, ctime int64) (int64, error)
}

type OrderGORMDAO struct {
	db *egorm.Component
}

func NewOrderGORMDAO(db *egorm.Component) OrderDAO {
	return &OrderGORMDAO{db: db}
}

func (o *OrderGORMDAO) CreateOrder(ctx context.Context, order Order, items []OrderItem) (int64, error) {
	err := o.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UnixMilli()
		order.Ctime, order.Utime = now, now
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("创建订单失败: %w", err)
		}
		for i := range items {
			items[i].OrderId = order.Id
			items[i].Ctime, items[i].Utime = now, now
		}
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("创建订单项失败: %w", err)
		}
		history := OrderStatusHistory{
			OrderId:        order.Id,
			OrderStatus:    order.Status,
			DeliveryStatus: order.DeliveryStatus,
			Actor:          "system",
			Note:           "订单已创建",
			Ctime:          now,
		}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("创建订单状态历史失败: %w", err)
		}
		return nil
	})
	return order.Id, err
}

func (o *OrderGORMDAO) UpdatePaymentInfo(ctx context.Context, buyerID, orderID, paymentID int64, paymentSN string) error {
	return o.db.WithContext(ctx).Model(&Order{}).
		Where("id = ? AND buyer_id = ?", orderID, buyerID).
		Updates(map[string]any{
			"payment_id": paymentID,
			"payment_sn": paymentSN,
			"utime":      time.Now().UnixMilli(),
		}).Error
}

func (o *OrderGORMDAO) FindOrderBySN(ctx context.Context, sn string) (Order, error) {
	var order Order
	err := o.db.WithContext(ctx).First(&order, "sn = ?", sn).Error
	return order, err
}

func (o *OrderGORMDAO) FindOrderBySNAndBuyerID(ctx context.Context, sn string, buyerID int64) (Order, error) {
	var order Order
	err := o.db.WithContext(ctx).First(&order, "sn = ? AND buyer_id = ?", sn, buyerID).Error
	return order, err
}

func (o *OrderGORMDAO) FindOrderItems(ctx context.Context, orderID int64) ([]OrderItem, error) {
	var items []OrderItem
	err := o.db.WithContext(ctx).Find(&items, "order_id = ?", orderID).Error
	return items, err
}

func (o *OrderGORMDAO) FindStatusHistory(ctx context.Context, orderID int64) ([]OrderStatusHistory, error) {
	var hs []OrderStatusHistory
	err := o.db.WithContext(ctx).
		Order("id ASC").
		Find(&hs, "order_id = ?", orderID).Error
	return hs, err
}

func (o *OrderGORMDAO) ListOrdersByUID(ctx context.Context, offset, limit int, uid int64) ([]Order, error) {
	var orders []Order
	err := o.db.WithContext(ctx).
		Where("buyer_id = ?", uid).
		Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&orders).Error
	return orders, err
}

func (o *OrderGORMDAO) CountOrdersByUID(ctx context.Context, uid int64) (int64, error) {
	var count int64
	err := o.db.WithContext(ctx).Model(&Order{}).
		Where("buyer_id = ?", uid).
		Count(&count).Error
	return count, err
}

func (o *OrderGORMDAO) ListOrders(ctx context.Context, offset, limit int) ([]Order, error) {
	var orders []Order
	err := o.db.WithContext(ctx).
		Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&orders).Error
	return orders, err
}

func (o *OrderGORMDAO) CountOrders(ctx context.Context) (int64, error) {
	var count int64
	err := o.db.WithContext(ctx).Model(&Order{}).Count(&count).Error
	return count, err
}

func (o *OrderGORMDAO) UpdateOrderStatus(ctx context.Context, orderID int64, status uint8, closedAt int64, actor, note string) error {
	return o.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UnixMilli()
		updates := map[string]any{
			"status": status,
			"utime":  now,
		}
		if closedAt > 0 {
			updates["closed_at"] = closedAt
		}
		res := tx.Model(&Order{}).
			Where("id = ? AND status <> ?", orderID, status).
			Updates(updates)
		if res.Error != nil {
			return fmt.Errorf("更新订单状态失败: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			// 已经是目标状态, 重复消息直接吞掉
			return nil
		}
		var order Order
		if err := tx.First(&order, "id = ?", orderID).Error; err != nil {
			return err
		}
		history := OrderStatusHistory{
			OrderId:        orderID,
			OrderStatus:    status,
			DeliveryStatus: order.DeliveryStatus,
			Actor:          actor,
			Note:           note,
			Ctime:          now,
		}
		return tx.Create(&history).Error
	})
}

func (o *OrderGORMDAO) UpdateDeliveryStatus(ctx context.Context, orderID int64, from, to uint8, actor, note string) error {
	return o.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UnixMilli()
		res := tx.Model(&Order{}).
			Where("id = ? AND delivery_status = ?", orderID, from).
			Updates(map[string]any{
				"delivery_status": to,
				"utime":           now,
			})
		if res.Error != nil {
			return fmt.Errorf("更新配送状态失败: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: order_id=%d", ErrInvalidTransition, orderID)
		}
		var order Order
		if err := tx.First(&order, "id = ?", orderID).Error; err != nil {
			return err
		}
		history := OrderStatusHistory{
			OrderId:        orderID,
			OrderStatus:    order.Status,
			DeliveryStatus: to,
			Actor:          actor,
			Note:           note,
			Ctime:          now,
		}
		return tx.Create(&history).Error
	})
}

func (o *OrderGORMDAO) ListExpiredOrders(ctx context.Context, offset, limit int, ctime int64) ([]Order, error) {
	var orders []Order
	err := o.db.WithContext(ctx).
		Where("status = ? AND ctime < ?", uint8(1), ctime).
		Order("id ASC").
		Offset(offset).Limit(limit).
		Find(&orders).Error
	return orders, err
}

func (o *OrderGORMDAO) CountExpiredOrders(ctx context.Context, ctime int64) (int64, error) {
	var count int64
	err := o.db.WithContext(ctx).Model(&Order{}).
		Where("status = ? AND ctime < ?", uint8(1), ctime).
		Count(&count).Error
	return count, err
}

type Order struct {
	Id        int64  `gorm:"primaryKey;autoIncrement;comment:订单自增ID"`
	SN        string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_order_sn;comment:订单序列号"`
	BuyerId   int64  `gorm:"not null;index:idx_buyer_id;comment:购买者ID"`
	PaymentId int64  `gorm:"comment:支付自增ID"`
	PaymentSn string `gorm:"type:varchar(255);comment:支付序列号"`
	CouponId  int64  `gorm:"comment:优惠码自增ID, 0表示未使用"`
	// CouponCode 下单时的优惠码快照
	CouponCode         string `gorm:"type:varchar(64);comment:优惠码"`
	OriginalTotalPrice int64  `gorm:"not null;comment:优惠前小计;单位为分, 999表示9.99元"`
	DiscountAmount     int64  `gorm:"not null;default:0;comment:优惠金额;单位为分"`
	RealTotalPrice     int64  `gorm:"not null;comment:实付总价;单位为分, 999表示9.99元"`
	Status             uint8  `gorm:"type:tinyint unsigned;not null;default:1;comment:订单状态 1=未支付 2=已支付 3=已取消 4=已超时"`
	DeliveryStatus     uint8  `gorm:"type:tinyint unsigned;not null;default:1;comment:配送状态 1=待处理 2=已确认 3=已发货 4=已送达 5=已取消"`
	// 收货地址快照
	AddressRecipient string `gorm:"type:varchar(64);comment:收件人"`
	AddressPhone     string `gorm:"type:varchar(32);comment:联系电话"`
	AddressProvince  string `gorm:"type:varchar(64);comment:省"`
	AddressCity      string `gorm:"type:varchar(64);comment:市"`
	AddressDetail    string `gorm:"type:varchar(255);comment:详细地址"`
	ClosedAt         int64  `gorm:"comment:订单关闭时间"`
	Ctime            int64
	Utime            int64
}

type OrderItem struct {
	Id               int64  `gorm:"primaryKey;autoIncrement;comment:订单项自增ID"`
	OrderId          int64  `gorm:"not null;index:idx_order_id;comment:订单自增ID"`
	SPUId            int64  `gorm:"not null;comment:SPU自增ID"`
	SKUId            int64  `gorm:"not null;index:idx_sku_id;comment:SKU自增ID"`
	SKUSN            string `gorm:"column:sku_sn;type:varchar(255);not null;comment:SKU序列号"`
	SKUImage         string `gorm:"type:varchar(512);comment:SKU图片"`
	SKUName          string `gorm:"type:varchar(255);not null;comment:SKU名称"`
	SKUAttrs         string `gorm:"type:varchar(255);comment:SKU属性快照, 颜色和尺码"`
	SKUOriginalPrice int64  `gorm:"not null;comment:商品原始单价;单位为分, 999表示9.99元"`
	SKURealPrice     int64  `gorm:"not null;comment:商品实付单价;单位为分, 999表示9.99元"`
	Quantity         int64  `gorm:"not null;comment:购买数量"`
	Ctime            int64
	Utime            int64
}

// OrderStatusHistory 只追加不修改
type OrderStatusHistory struct {
	Id             int64  `gorm:"primaryKey;autoIncrement;comment:历史自增ID"`
	OrderId        int64  `gorm:"not null;index:idx_history_order_id;comment:订单自增ID"`
	OrderStatus    uint8  `gorm:"type:tinyint unsigned;not null;comment:订单状态"`
	DeliveryStatus uint8  `gorm:"type:tinyint unsigned;not null;comment:配送状态"`
	Actor          string `gorm:"type:varchar(64);not null;default:system;comment:操作者, system或admin标识"`
	Note           string `gorm:"type:varchar(255);comment:备注"`
	Ctime          int64
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&Order{}, &OrderItem{}, &OrderStatusHistory{})
}
