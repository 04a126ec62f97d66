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

package errs

var (
	SystemError           = ErrorCode{Code: 503001, Msg: "系统错误"}
	OrderNotFound         = ErrorCode{Code: 503002, Msg: "订单未找到"}
	OrderNotCancelable    = ErrorCode{Code: 503003, Msg: "订单当前状态不可取消"}
	InvalidSKU            = ErrorCode{Code: 503004, Msg: "商品信息有误"}
	InsufficientStock     = ErrorCode{Code: 503005, Msg: "库存不足"}
	InvalidCoupon         = ErrorCode{Code: 503006, Msg: "优惠码不可用"}
	InvalidDeliveryStatus = ErrorCode{Code: 503007, Msg: "配送状态流转非法"}
	DuplicateRequest      = ErrorCode{Code: 503008, Msg: "请求无效或重复提交"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
