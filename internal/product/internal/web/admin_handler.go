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
	"fmt"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/emall/internal/product/internal/domain"
	"github.com/ecodeclub/emall/internal/product/internal/service"
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
	g := server.Group("/product")
	g.POST("/save", ginx.B[SaveSPUReq](h.Save))
	g.POST("/list", ginx.B[ListReq](h.List))
}

func (h *AdminHandler) PublicRoutes(_ *gin.Engine) {}

// Save 创建或更新商品, Colors×Sizes矩阵批量生成变体
func (h *AdminHandler) Save(ctx *ginx.Context, req SaveSPUReq) (ginx.Result, error) {
	spu := domain.SPU{
		ID:          req.SPU.ID,
		SN:          req.SPU.SN,
		Name:        req.SPU.Name,
		Desc:        req.SPU.Desc,
		Category:    req.SPU.Category,
		SubCategory: req.SPU.SubCategory,
		Status:      domain.Status(req.SPU.Status),
	}
	if spu.Name == "" {
		return systemErrorResult, fmt.Errorf("商品名称为空")
	}
	if spu.Status == 0 {
		spu.Status = domain.StatusOffShelf
	}
	skus, err := h.buildSKUs(req)
	if err != nil {
		return systemErrorResult, err
	}
	spu.SKUs = skus
	id, err := h.svc.SaveSPU(ctx.Request.Context(), spu)
	if err != nil {
		return systemErrorResult, fmt.Errorf("保存商品失败: %w", err)
	}
	return ginx.Result{Data: SaveSPUResp{ID: id}}, nil
}

func (h *AdminHandler) buildSKUs(req SaveSPUReq) ([]domain.SKU, error) {
	if len(req.Colors) > 0 && len(req.Sizes) > 0 {
		if req.Price <= 0 {
			return nil, fmt.Errorf("批量生成SKU时单价非法")
		}
		skus := make([]domain.SKU, 0, len(req.Colors)*len(req.Sizes))
		for _, color := range req.Colors {
			for _, size := range req.Sizes {
				skus = append(skus, domain.SKU{
					Color:  color,
					Size:   size,
					Price:  req.Price,
					Stock:  req.Stock,
					Status: domain.StatusOnShelf,
				})
			}
		}
		return skus, nil
	}
	skus := make([]domain.SKU, 0, len(req.SPU.SKUs))
	for _, sku := range req.SPU.SKUs {
		if sku.Price <= 0 {
			return nil, fmt.Errorf("SKU单价非法: color=%s size=%s", sku.Color, sku.Size)
		}
		status := domain.Status(sku.Status)
		if status == 0 {
			status = domain.StatusOnShelf
		}
		skus = append(skus, domain.SKU{
			ID:     sku.ID,
			SN:     sku.SN,
			Name:   sku.Name,
			Color:  sku.Color,
			Size:   sku.Size,
			Price:  sku.Price,
			Stock:  sku.Stock,
			Image:  sku.Image,
			Status: status,
		})
	}
	return skus, nil
}

// List 管理端分页, 含下架商品
func (h *AdminHandler) List(ctx *ginx.Context, req ListReq) (ginx.Result, error) {
	spus, total, err := h.svc.AdminList(ctx.Request.Context(), req.Offset, req.Limit)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: ListResp{
			Total: total,
			SPUs: slice.Map(spus, func(idx int, src domain.SPU) SPU {
				vo := toSPUVO(src)
				vo.ID = src.ID
				vo.Status = src.Status.ToUint8()
				vo.SKUs = slice.Map(src.SKUs, func(idx int, sku domain.SKU) SKU {
					return SKU{
						ID:     sku.ID,
						SN:     sku.SN,
						Name:   sku.Name,
						Color:  sku.Color,
						Size:   sku.Size,
						Price:  sku.Price,
						Stock:  sku.Stock,
						Image:  sku.Image,
						Status: sku.Status.ToUint8(),
					}
				})
				return vo
			}),
		},
	}, nil
}
