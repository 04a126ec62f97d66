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

type ChannelType uint8

const (
	ChannelTypeWechat ChannelType = 1
)

type PaymentStatus uint8

func (s PaymentStatus) ToUint8() uint8 {
	return uint8(s)
}

// IsTerminal 终态不再同步, 不再轮询
func (s PaymentStatus) IsTerminal() bool {
	switch s {
	case PaymentStatusPaidSuccess, PaymentStatusPaidFailed,
		PaymentStatusRefund, PaymentStatusTimeoutClosed:
		return true
	default:
		return false
	}
}

const (
	PaymentStatusUnpaid        PaymentStatus = 1
	PaymentStatusProcessing    PaymentStatus = 2
	PaymentStatusPaidSuccess   PaymentStatus = 3
	PaymentStatusPaidFailed    PaymentStatus = 4
	PaymentStatusRefund        PaymentStatus = 5
	PaymentStatusTimeoutClosed PaymentStatus = 6
)

type Payment struct {
	ID               int64
	SN               string
	PayerID          int64
	OrderID          int64
	OrderSN          string
	OrderDescription string
	TotalAmount      int64
	Channel          ChannelType
	// PaymentNO3rd 支付渠道的事务ID
	PaymentNO3rd string
	// CodeURL 微信Native下单返回的二维码内容
	CodeURL  string
	Deadline int64
	PaidAt   int64
	Status   PaymentStatus
	Ctime    int64
	Utime    int64
}
