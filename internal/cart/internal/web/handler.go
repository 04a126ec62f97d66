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

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/emall/internal/cart/internal/domain"
	"github.com/ecodeclub/emall/internal/cart/internal/service"
	"github.com/ecodeclub/emall/internal/product"
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
	g := server.Group("/cart")
	g.POST("/add", ginx.BS[AddItemReq](h.AddItem))
	g.POST("/update", ginx.BS[UpdateQuantityReq](h.UpdateQuantity))
	g.POST("/remove", ginx.BS[RemoveItemReq](h.RemoveItem))
	g.POST("/list", ginx.S(h.List))
	g.POST("/clear", ginx.S(h.Clear))
}

func (h *Handler) AddItem(ctx *ginx.Context, req AddItemReq, sess session.Session) (ginx.Result, error) {
	cart, err := h.svc.AddItem(ctx.Request.Context(), sess.Claims().Uid, req.SKUSN, req.Quantity)
	if err != nil {
		return h.errorResult(err), err
	}
	return ginx.Result{Data: toCartVO(cart)}, nil
}

func (h *Handler) UpdateQuantity(ctx *ginx.Context, req UpdateQuantityReq, sess session.Session) (ginx.Result, error) {
	cart, err := h.svc.UpdateQuantity(ctx.Request.Context(), sess.Claims().Uid, req.SKUID, req.Quantity)
	if err != nil {
		return h.errorResult(err), err
	}
	return ginx.Result{Data: toCartVO(cart)}, nil
}

func (h *Handler) RemoveItem(ctx *ginx.Context, req RemoveItemReq, sess session.Session) (ginx.Result, error) {
	cart, err := h.svc.RemoveItem(ctx.Request.Context(), sess.Claims().Uid, req.SKUID)
	if err != nil {
		return h.errorResult(err), err
	}
	return ginx.Result{Data: toCartVO(cart)}, nil
}

func (h *Handler) List(ctx *ginx.Context, sess session.Session) (ginx.Result, error) {
	cart, err := h.svc.List(ctx.Request.Context(), sess.Claims().Uid)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Data: toCartVO(cart)}, nil
}

func (h *Handler) Clear(ctx *ginx.Context, sess session.Session) (ginx.Result, error) {
	err := h.svc.Clear(ctx.Request.Context(), sess.Claims().Uid)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Msg: "OK"}, nil
}

func (h *Handler) errorResult(err error) ginx.Result {
	switch {
	case errors.Is(err, service.ErrCartItemNotFound):
		return cartItemNotFoundResult
	case errors.Is(err, service.ErrInvalidQuantity):
		return invalidQuantityResult
	case errors.Is(err, product.ErrStockNotEnough):
		return insufficientStockResult
	case errors.Is(err, product.ErrProductNotFound):
		return invalidSKUResult
	default:
		return systemErrorResult
	}
}

func toCartVO(cart domain.Cart) CartResp {
	var total int64
	for _, it := range cart.Items {
		if !it.OffShelf {
			total += it.Price * it.Quantity
		}
	}
	return CartResp{
		Items: slice.Map(cart.Items, func(idx int, src domain.CartItem) CartItem {
			return CartItem{
				SKUID:    src.SKUID,
				SKUSN:    src.SKUSN,
				Name:     src.Name,
				Image:    src.Image,
				Price:    src.Price,
				Stock:    src.Stock,
				Quantity: src.Quantity,
				OffShelf: src.OffShelf,
			}
		}),
		TotalPrice: total,
	}
}
