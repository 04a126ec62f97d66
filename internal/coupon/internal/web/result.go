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
	"github.com/ecodeclub/emall/internal/coupon/internal/errs"
	"github.com/ecodeclub/ginx"
)

var (
	systemErrorResult = ginx.Result{
		Code: errs.SystemError.Code,
		Msg:  errs.SystemError.Msg,
	}
	couponNotFoundResult = ginx.Result{
		Code: errs.CouponNotFound.Code,
		Msg:  errs.CouponNotFound.Msg,
	}
	couponInactiveResult = ginx.Result{
		Code: errs.CouponInactive.Code,
		Msg:  errs.CouponInactive.Msg,
	}
	couponLimitReachedResult = ginx.Result{
		Code: errs.CouponLimitReached.Code,
		Msg:  errs.CouponLimitReached.Msg,
	}
)
