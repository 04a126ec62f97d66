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

import "fmt"

type OrderStatus uint8

func (s OrderStatus) ToUint8() uint8 {
	return uint8(s)
}

const (
	OrderStatusUnpaid   OrderStatus = 1
	OrderStatusPaid     OrderStatus = 2
	OrderStatusCanceled OrderStatus = 3
	OrderStatusExpired  OrderStatus = 4
)

type DeliveryStatus uint8

func (s DeliveryStatus) ToUint8() uint8 {
	return uint8(s)
}

const (
	DeliveryStatusPending   DeliveryStatus = 1
	DeliveryStatusConfirmed DeliveryStatus = 2
	DeliveryStatusShipped   DeliveryStatus = 3
	DeliveryStatusDelivered DeliveryStatus = 4
	DeliveryStatusCancelled DeliveryStatus = 5
)

var ErrInvalidDeliveryTransition = fmt.Errorf("非法的配送状态流转")

// deliveryTransitions 配送状态只能沿此表流转, 任何非终态都可以被取消
var deliveryTransitions = map[DeliveryStatus]map[DeliveryStatus]string{
	DeliveryStatusPending: {
		DeliveryStatusConfirmed: "订单已确认",
		DeliveryStatusCancelled: "订单已取消",
	},
	DeliveryStatusConfirmed: {
		DeliveryStatusShipped:   "订单已发货",
		DeliveryStatusCancelled: "订单已取消",
	},
	DeliveryStatusShipped: {
		DeliveryStatusDelivered: "订单已送达",
		DeliveryStatusCancelled: "订单已取消",
	},
}

// DeliveryTransitionNote 校验from->to是否合法, 合法时返回写入状态历史的备注
func DeliveryTransitionNote(from, to DeliveryStatus) (string, error) {
	note, ok := deliveryTransitions[from][to]
	if !ok {
		return "", fmt.Errorf("%w: %d -> %d", ErrInvalidDeliveryTransition, from, to)
	}
	return note, nil
}

type Order struct {
	ID        int64
	SN        string
	BuyerID   int64
	PaymentID int64
	PaymentSN string
	// CouponID 为0表示未使用优惠码
	CouponID   int64
	CouponCode string
	// OriginalTotalPrice 优惠前小计, 单位为分
	OriginalTotalPrice int64
	// DiscountAmount 优惠金额, 单位为分
	DiscountAmount int64
	// RealTotalPrice 实付总价, 单位为分
	RealTotalPrice int64
	Status         OrderStatus
	DeliveryStatus DeliveryStatus
	Address        Address
	Items          []OrderItem
	History        []StatusChange
	ClosedAt       int64
	Ctime          int64
	Utime          int64
}

// Address 下单时的收货地址快照
type Address struct {
	Recipient string
	Phone     string
	Province  string
	City      string
	Detail    string
}

type OrderItem struct {
	SKU SKU
}

type SKU struct {
	SPUID         int64
	ID            int64
	SN            string
	Image         string
	Name          string
	Attrs         string
	OriginalPrice int64
	RealPrice     int64
	Quantity      int64
}

// StatusChange 订单状态历史, 只追加不修改
type StatusChange struct {
	ID             int64
	OrderID        int64
	OrderStatus    OrderStatus
	DeliveryStatus DeliveryStatus
	Actor          string
	Note           string
	Ctime          int64
}
