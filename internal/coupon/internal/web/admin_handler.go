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
	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/emall/internal/coupon/internal/domain"
	"github.com/ecodeclub/emall/internal/coupon/internal/service"
	"github.com/ecodeclub/ginx"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	svc service.Service
}

func NewAdminHandler(svc service.Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/coupon")
	g.POST("/save", ginx.B[SaveReq](h.Save))
	g.POST("/disable", ginx.B[IDReq](h.Disable))
	g.POST("/list", ginx.B[ListReq](h.List))
}

func (h *AdminHandler) PublicRoutes(_ *gin.Engine) {}

// Save 创建或更新优惠码, code留空时自动生成
func (h *AdminHandler) Save(ctx *ginx.Context, req SaveReq) (ginx.Result, error) {
	id, err := h.svc.Save(ctx.Request.Context(), domain.Coupon{
		ID:              req.Coupon.ID,
		Code:            req.Coupon.Code,
		Name:            req.Coupon.Name,
		DiscountPercent: req.Coupon.DiscountPercent,
		ValidFrom:       req.Coupon.ValidFrom,
		ValidUntil:      req.Coupon.ValidUntil,
		MaxTotalUses:    req.Coupon.MaxTotalUses,
		MaxUsesPerUser:  req.Coupon.MaxUsesPerUser,
		Status:          domain.Status(req.Coupon.Status),
	})
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Data: id}, nil
}

func (h *AdminHandler) Disable(ctx *ginx.Context, req IDReq) (ginx.Result, error) {
	err := h.svc.Disable(ctx.Request.Context(), req.ID)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Msg: "OK"}, nil
}

func (h *AdminHandler) List(ctx *ginx.Context, req ListReq) (ginx.Result, error) {
	cs, total, err := h.svc.List(ctx.Request.Context(), req.Offset, req.Limit)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: ListResp{
			Total: total,
			Coupons: slice.Map(cs, func(idx int, src domain.Coupon) Coupon {
				return toCouponVO(src)
			}),
		},
	}, nil
}
