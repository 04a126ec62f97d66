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
	"fmt"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/emall/internal/order/internal/domain"
	"github.com/ecodeclub/emall/internal/order/internal/repository/dao"
	"github.com/ecodeclub/emall/internal/order/internal/service"
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	svc service.Service
}

func NewAdminHandler(svc service.Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/order")
	g.POST("/list", ginx.B[ListOrdersReq](h.ListOrders))
	g.POST("/detail", ginx.B[OrderSNReq](h.RetrieveOrderDetail))
	g.POST("/delivery", ginx.BS[UpdateDeliveryReq](h.UpdateDeliveryStatus))
}

func (h *AdminHandler) ListOrders(ctx *ginx.Context, req ListOrdersReq) (ginx.Result, error) {
	total, orders, err := h.svc.ListOrders(ctx.Request.Context(), req.Offset, req.Limit)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: ListOrdersResp{
			Total: total,
			Orders: slice.Map(orders, func(idx int, src domain.Order) Order {
				return toOrderVO(src)
			}),
		},
	}, nil
}

func (h *AdminHandler) RetrieveOrderDetail(ctx *ginx.Context, req OrderSNReq) (ginx.Result, error) {
	order, err := h.svc.FindOrderBySN(ctx.Request.Context(), req.SN)
	if err != nil {
		if errors.Is(err, dao.ErrOrderNotFound) {
			return orderNotFoundResult, err
		}
		return systemErrorResult, err
	}
	return ginx.Result{Data: toOrderVO(order)}, nil
}

// UpdateDeliveryStatus 推进配送状态, 非法流转直接拒绝
func (h *AdminHandler) UpdateDeliveryStatus(ctx *ginx.Context, req UpdateDeliveryReq, sess session.Session) (ginx.Result, error) {
	// 历史里记录操作的管理员
	actor := fmt.Sprintf("admin:%d", sess.Claims().Uid)
	err := h.svc.UpdateDeliveryStatus(ctx.Request.Context(),
		req.SN, domain.DeliveryStatus(req.DeliveryStatus), actor)
	if err != nil {
		switch {
		case errors.Is(err, dao.ErrOrderNotFound):
			return orderNotFoundResult, err
		case errors.Is(err, domain.ErrInvalidDeliveryTransition),
			errors.Is(err, dao.ErrInvalidTransition):
			return invalidDeliveryStatusResult, err
		default:
			return systemErrorResult, err
		}
	}
	return ginx.Result{Msg: "OK"}, nil
}
