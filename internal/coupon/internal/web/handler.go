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
	"errors"

	"github.com/ecodeclub/emall/internal/coupon/internal/domain"
	"github.com/ecodeclub/emall/internal/coupon/internal/repository/dao"
	"github.com/ecodeclub/emall/internal/coupon/internal/service"
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/gin-gonic/gin"
)

var _ ginx.Handler = &Handler{}

type Handler struct {
	svc service.Service
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) PublicRoutes(_ *gin.Engine) {}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/coupon")
	g.POST("/validate", ginx.BS[ValidateReq](h.Validate))
}

// Validate 下单前校验优惠码, 只读不占用次数
func (h *Handler) Validate(ctx *ginx.Context, req ValidateReq, sess session.Session) (ginx.Result, error) {
	c, err := h.svc.Validate(ctx.Request.Context(), req.Code, sess.Claims().Uid)
	if err != nil {
		switch {
		case errors.Is(err, dao.ErrCouponNotFound):
			return couponNotFoundResult, err
		case errors.Is(err, dao.ErrCouponInactive):
			return couponInactiveResult, err
		case errors.Is(err, dao.ErrCouponLimitReached):
			return couponLimitReachedResult, err
		default:
			return systemErrorResult, err
		}
	}
	return ginx.Result{
		Data: ValidateResp{
			Coupon: Coupon{
				Code:            c.Code,
				Name:            c.Name,
				DiscountPercent: c.DiscountPercent,
				ValidFrom:       c.ValidFrom,
				ValidUntil:      c.ValidUntil,
			},
			RemainingUses:        c.RemainingUses(),
			RemainingUsesForUser: c.RemainingUsesForUser(),
		},
	}, nil
}

func toCouponVO(c domain.Coupon) Coupon {
	return Coupon{
		ID:              c.ID,
		Code:            c.Code,
		Name:            c.Name,
		DiscountPercent: c.DiscountPercent,
		ValidFrom:       c.ValidFrom,
		ValidUntil:      c.ValidUntil,
		MaxTotalUses:    c.MaxTotalUses,
		MaxUsesPerUser:  c.MaxUsesPerUser,
		UsedCount:       c.UsedCount,
		Status:          int64(c.Status.ToUint8()),
	}
}
