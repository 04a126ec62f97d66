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

type OrderItemReq struct {
	SKUSN    string `json:"skuSn"`
	Quantity int64  `json:"quantity"`
}

type AddressReq struct {
	Recipient string `json:"recipient"`
	Phone     string `json:"phone"`
	Province  string `json:"province"`
	City      string `json:"city"`
	Detail    string `json:"detail"`
}

type PreviewOrderReq struct {
	Items      []OrderItemReq `json:"items"`
	CouponCode string         `json:"couponCode"`
}

type PreviewOrderResp struct {
	RequestID          string      `json:"requestId"`
	Items              []OrderItem `json:"items"`
	OriginalTotalPrice int64       `json:"originalTotalPrice"`
	DiscountAmount     int64       `json:"discountAmount"`
	RealTotalPrice     int64       `json:"realTotalPrice"`
}

type CreateOrderReq struct {
	RequestID  string         `json:"requestId"`
	Items      []OrderItemReq `json:"items"`
	CouponCode string         `json:"couponCode"`
	Address    AddressReq     `json:"address"`
}

type CreateOrderResp struct {
	OrderSN string `json:"orderSn"`
	// CodeURL 微信支付二维码内容
	CodeURL string `json:"codeUrl"`
}

type OrderSNReq struct {
	SN string `json:"sn"`
}

type OrderStatusResp struct {
	Status         uint8 `json:"status"`
	DeliveryStatus uint8 `json:"deliveryStatus"`
}

type ListOrdersReq struct {
	Offset int `json:"offset,omitempty"`
	Limit  int `json:"limit,omitempty"`
}

type ListOrdersResp struct {
	Total  int64   `json:"total,omitempty"`
	Orders []Order `json:"orders,omitempty"`
}

type UpdateDeliveryReq struct {
	SN             string `json:"sn"`
	DeliveryStatus uint8  `json:"deliveryStatus"`
}

type Order struct {
	SN                 string         `json:"sn"`
	PaymentSN          string         `json:"paymentSn"`
	CouponCode         string         `json:"couponCode,omitempty"`
	OriginalTotalPrice int64          `json:"originalTotalPrice"`
	DiscountAmount     int64          `json:"discountAmount"`
	RealTotalPrice     int64          `json:"realTotalPrice"`
	Status             uint8          `json:"status"`
	DeliveryStatus     uint8          `json:"deliveryStatus"`
	Address            AddressReq     `json:"address"`
	Items              []OrderItem    `json:"items,omitempty"`
	History            []StatusChange `json:"history,omitempty"`
	Ctime              int64          `json:"ctime"`
	Utime              int64          `json:"utime"`
}

type OrderItem struct {
	SPUID         int64  `json:"spuId"`
	SKUID         int64  `json:"skuId"`
	SKUSN         string `json:"skuSn"`
	Image         string `json:"image"`
	Name          string `json:"name"`
	Attrs         string `json:"attrs"`
	OriginalPrice int64  `json:"originalPrice"`
	RealPrice     int64  `json:"realPrice"`
	Quantity      int64  `json:"quantity"`
}

type StatusChange struct {
	OrderStatus    uint8  `json:"orderStatus"`
	DeliveryStatus uint8  `json:"deliveryStatus"`
	Actor          string `json:"actor"`
	Note           string `json:"note"`
	Ctime          int64  `json:"ctime"`
}
