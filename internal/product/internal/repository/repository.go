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

package repository

import (
	"context"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/emall/internal/product/internal/domain"
	"github.com/ecodeclub/emall/internal/product/internal/repository/cache"
	"github.com/ecodeclub/emall/internal/product/internal/repository/dao"
	"github.com/gotomicro/ego/core/elog"
)

type ProductRepository interface {
	CreateSPU(ctx context.Context, spu domain.SPU) (int64, error)
	UpdateSPU(ctx context.Context, spu domain.SPU) error
	FindSPUByID(ctx context.Context, id int64) (domain.SPU, error)
	FindSPUBySN(ctx context.Context, sn string) (domain.SPU, error)
	FindSKUBySN(ctx context.Context, sn string) (domain.SKU, error)
	FindSKUByID(ctx context.Context, id int64) (domain.SKU, error)
	ListSPUs(ctx context.Context, offset, limit int, onShelfOnly bool) ([]domain.SPU, error)
	CountSPUs(ctx context.Context, onShelfOnly bool) (int64, error)
	DecreaseStock(ctx context.Context, skuID, quantity int64) error
	IncreaseStock(ctx context.Context, skuID, quantity int64) error
}

func NewProductRepository(d dao.ProductDAO, c cache.SKUCache) ProductRepository {
	return &productRepository{
		dao:    d,
		cache:  c,
		logger: elog.DefaultLogger,
	}
}

type productRepository struct {
	dao    dao.ProductDAO
	cache  cache.SKUCache
	logger *elog.Component
}

func (r *productRepository) CreateSPU(ctx context.Context, spu domain.SPU) (int64, error) {
	return r.dao.CreateSPU(ctx, r.toSPUEntity(spu), slice.Map(spu.SKUs, func(idx int, src domain.SKU) dao.SKU {
		return r.toSKUEntity(src)
	}))
}

func (r *productRepository) UpdateSPU(ctx context.Context, spu domain.SPU) error {
	err := r.dao.UpdateSPU(ctx, r.toSPUEntity(spu), slice.Map(spu.SKUs, func(idx int, src domain.SKU) dao.SKU {
		return r.toSKUEntity(src)
	}))
	if err != nil {
		return err
	}
	// 管理端改动后废弃缓存
	for _, sku := range spu.SKUs {
		if er := r.cache.DelSKU(ctx, sku.SN); er != nil {
			r.logger.Warn("删除SKU缓存失败",
				elog.FieldErr(er),
				elog.String("sku_sn", sku.SN))
		}
	}
	return nil
}

func (r *productRepository) FindSPUByID(ctx context.Context, id int64) (domain.SPU, error) {
	spu, err := r.dao.FindSPUByID(ctx, id)
	if err != nil {
		return domain.SPU{}, err
	}
	skus, err := r.dao.FindSKUsBySPUID(ctx, spu.Id)
	if err != nil {
		return domain.SPU{}, err
	}
	return r.toSPUDomain(spu, skus), nil
}

func (r *productRepository) FindSPUBySN(ctx context.Context, sn string) (domain.SPU, error) {
	spu, err := r.dao.FindSPUBySN(ctx, sn)
	if err != nil {
		return domain.SPU{}, err
	}
	skus, err := r.dao.FindSKUsBySPUID(ctx, spu.Id)
	if err != nil {
		return domain.SPU{}, err
	}
	return r.toSPUDomain(spu, skus), nil
}

func (r *productRepository) FindSKUBySN(ctx context.Context, sn string) (domain.SKU, error) {
	sku, err := r.cache.GetSKU(ctx, sn)
	if err == nil {
		return sku, nil
	}
	entity, err := r.dao.FindSKUBySN(ctx, sn)
	if err != nil {
		return domain.SKU{}, err
	}
	sku = r.toSKUDomain(entity)
	if er := r.cache.SetSKU(ctx, sku); er != nil {
		r.logger.Warn("缓存SKU失败",
			elog.FieldErr(er),
			elog.String("sku_sn", sn))
	}
	return sku, nil
}

func (r *productRepository) FindSKUByID(ctx context.Context, id int64) (domain.SKU, error) {
	entity, err := r.dao.FindSKUByID(ctx, id)
	if err != nil {
		return domain.SKU{}, err
	}
	return r.toSKUDomain(entity), nil
}

func (r *productRepository) ListSPUs(ctx context.Context, offset, limit int, onShelfOnly bool) ([]domain.SPU, error) {
	spus, err := r.dao.ListSPUs(ctx, offset, limit, onShelfOnly)
	if err != nil {
		return nil, err
	}
	res := make([]domain.SPU, 0, len(spus))
	for _, spu := range spus {
		skus, er := r.dao.FindSKUsBySPUID(ctx, spu.Id)
		if er != nil {
			return nil, er
		}
		res = append(res, r.toSPUDomain(spu, skus))
	}
	return res, nil
}

func (r *productRepository) CountSPUs(ctx context.Context, onShelfOnly bool) (int64, error) {
	return r.dao.CountSPUs(ctx, onShelfOnly)
}

func (r *productRepository) DecreaseStock(ctx context.Context, skuID, quantity int64) error {
	return r.dao.DecreaseStock(ctx, skuID, quantity)
}

func (r *productRepository) IncreaseStock(ctx context.Context, skuID, quantity int64) error {
	return r.dao.IncreaseStock(ctx, skuID, quantity)
}

func (r *productRepository) toSPUEntity(spu domain.SPU) dao.SPU {
	return dao.SPU{
		Id:          spu.ID,
		SN:          spu.SN,
		Name:        spu.Name,
		Description: spu.Desc,
		Category:    spu.Category,
		SubCategory: spu.SubCategory,
		Status:      spu.Status.ToUint8(),
	}
}

func (r *productRepository) toSKUEntity(sku domain.SKU) dao.SKU {
	return dao.SKU{
		Id:     sku.ID,
		SPUID:  sku.SPUID,
		SN:     sku.SN,
		Name:   sku.Name,
		Color:  sku.Color,
		Size:   sku.Size,
		Price:  sku.Price,
		Stock:  sku.Stock,
		Image:  sku.Image,
		Status: sku.Status.ToUint8(),
	}
}

func (r *productRepository) toSPUDomain(spu dao.SPU, skus []dao.SKU) domain.SPU {
	return domain.SPU{
		ID:          spu.Id,
		SN:          spu.SN,
		Name:        spu.Name,
		Desc:        spu.Description,
		Category:    spu.Category,
		SubCategory: spu.SubCategory,
		Status:      domain.Status(spu.Status),
		SKUs: slice.Map(skus, func(idx int, src dao.SKU) domain.SKU {
			return r.toSKUDomain(src)
		}),
	}
}

func (r *productRepository) toSKUDomain(sku dao.SKU) domain.SKU {
	return domain.SKU{
		ID:     sku.Id,
		SPUID:  sku.SPUID,
		SN:     sku.SN,
		Name:   sku.Name,
		Color:  sku.Color,
		Size:   sku.Size,
		Price:  sku.Price,
		Stock:  sku.Stock,
		Image:  sku.Image,
		Status: domain.Status(sku.Status),
	}
}
