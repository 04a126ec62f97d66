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
	"github.com/ecodeclub/emall/internal/product/internal/domain"
	"github.com/ecodeclub/emall/internal/product/internal/repository/dao"
	"github.com/ecodeclub/emall/internal/product/internal/service"
	"github.com/ecodeclub/ginx"
	"github.com/gin-gonic/gin"
)

var _ ginx.Handler = &Handler{}

type Handler struct {
	svc service.Service
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) PublicRoutes(server *gin.Engine) {
	g := server.Group("/product")
	g.POST("/list", ginx.B[ListReq](h.List))
	g.POST("/detail", ginx.B[SPUSNReq](h.Detail))
	g.POST("/sku/detail", ginx.B[SKUSNReq](h.SKUDetail))
}

func (h *Handler) PrivateRoutes(_ *gin.Engine) {}

// List 分页查询上架商品
func (h *Handler) List(ctx *ginx.Context, req ListReq) (ginx.Result, error) {
	spus, total, err := h.svc.List(ctx.Request.Context(), req.Offset, req.Limit)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: ListResp{
			Total: total,
			SPUs: slice.Map(spus, func(idx int, src domain.SPU) SPU {
				return toSPUVO(src)
			}),
		},
	}, nil
}

func (h *Handler) Detail(ctx *ginx.Context, req SPUSNReq) (ginx.Result, error) {
	spu, err := h.svc.DetailBySN(ctx.Request.Context(), req.SN)
	if err != nil {
		if errors.Is(err, dao.ErrProductNotFound) {
			return productNotFoundResult, err
		}
		return systemErrorResult, err
	}
	return ginx.Result{Data: toSPUVO(spu)}, nil
}

func (h *Handler) SKUDetail(ctx *ginx.Context, req SKUSNReq) (ginx.Result, error) {
	spu, err := h.svc.FindSKUBySN(ctx.Request.Context(), req.SN)
	if err != nil {
		if errors.Is(err, dao.ErrProductNotFound) {
			return productNotFoundResult, err
		}
		return systemErrorResult, err
	}
	return ginx.Result{Data: toSPUVO(spu)}, nil
}

func toSPUVO(spu domain.SPU) SPU {
	return SPU{
		SN:          spu.SN,
		Name:        spu.Name,
		Desc:        spu.Desc,
		Category:    spu.Category,
		SubCategory: spu.SubCategory,
		SKUs: slice.Map(spu.SKUs, func(idx int, src domain.SKU) SKU {
			return SKU{
				SN:    src.SN,
				Name:  src.Name,
				Color: src.Color,
				Size:  src.Size,
				Price: src.Price,
				Stock: src.Stock,
				Image: src.Image,
			}
		}),
	}
}
