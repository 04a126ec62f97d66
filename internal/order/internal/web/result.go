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
	"github.com/ecodeclub/emall/internal/order/internal/errs"
	"github.com/ecodeclub/ginx"
)

var (
	systemErrorResult = ginx.Result{
		Code: errs.SystemError.Code,
		Msg:  errs.SystemError.Msg,
	}
	orderNotFoundResult = ginx.Result{
		Code: errs.OrderNotFound.Code,
		Msg:  errs.OrderNotFound.Msg,
	}
	orderNotCancelableResult = ginx.Result{
		Code: errs.OrderNotCancelable.Code,
		Msg:  errs.OrderNotCancelable.Msg,
	}
	invalidSKUResult = ginx.Result{
		Code: errs.InvalidSKU.Code,
		Msg:  errs.InvalidSKU.Msg,
	}
	insufficientStockResult = ginx.Result{
		Code: errs.InsufficientStock.Code,
		Msg:  errs.InsufficientStock.Msg,
	}
	invalidCouponResult = ginx.Result{
		Code: errs.InvalidCoupon.Code,
		Msg:  errs.InvalidCoupon.Msg,
	}
	invalidDeliveryStatusResult = ginx.Result{
		Code: errs.InvalidDeliveryStatus.Code,
		Msg:  errs.InvalidDeliveryStatus.Msg,
	}
	duplicateRequestResult = ginx.Result{
		Code: errs.DuplicateRequest.Code,
		Msg:  errs.DuplicateRequest.Msg,
	}
)
