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

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ecodeclub/emall/internal/cart/internal/domain"
	"github.com/ecodeclub/emall/internal/cart/internal/repository"
	"github.com/ecodeclub/emall/internal/product"
	"github.com/gotomicro/ego/core/elog"
)

var (
	ErrCartItemNotFound = errors.New("购物车中没有该商品")
	ErrInvalidQuantity  = errors.New("购买数量非法")
)

type Service interface {
	// AddItem 加购, 数量超出库存时截到库存上限
	AddItem(ctx context.Context, uid int64, skuSN string, quantity int64) (domain.Cart, error)
	UpdateQuantity(ctx context.Context, uid, skuID, quantity int64) (domain.Cart, error)
	RemoveItem(ctx context.Context, uid, skuID int64) (domain.Cart, error)
	// List 返回前按商品模块校对价格库存和上下架
	List(ctx context.Context, uid int64) (domain.Cart, error)
	Clear(ctx context.Context, uid int64) error
}

func NewService(repo repository.CartRepository, productSvc product.Service) Service {
	return &service{
		repo:       repo,
		productSvc: productSvc,
		logger:     elog.DefaultLogger,
	}
}

type service struct {
	repo       repository.CartRepository
	productSvc product.Service
	logger     *elog.Component
}

func (s *service) AddItem(ctx context.Context, uid int64, skuSN string, quantity int64) (domain.Cart, error) {
	if quantity <= 0 {
		return domain.Cart{}, ErrInvalidQuantity
	}
	spu, err := s.productSvc.FindSKUBySN(ctx, skuSN)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("查找SKU失败: sku_sn=%s: %w", skuSN, err)
	}
	sku := spu.SKUs[0]
	if sku.Stock <= 0 {
		return domain.Cart{}, fmt.Errorf("%w: sku_sn=%s", product.ErrStockNotEnough, skuSN)
	}

	cart, err := s.repo.GetCart(ctx, uid)
	if err != nil {
		return domain.Cart{}, err
	}
	now := time.Now().UnixMilli()
	if idx := cart.Find(sku.ID); idx >= 0 {
		cart.Items[idx].Quantity = capQuantity(cart.Items[idx].Quantity+quantity, sku.Stock)
		cart.Items[idx].Price = sku.Price
		cart.Items[idx].Stock = sku.Stock
		cart.Items[idx].Utime = now
	} else {
		cart.Items = append(cart.Items, domain.CartItem{
			SKUID:    sku.ID,
			SKUSN:    sku.SN,
			Name:     sku.Name,
			Image:    sku.Image,
			Price:    sku.Price,
			Stock:    sku.Stock,
			Quantity: capQuantity(quantity, sku.Stock),
			Utime:    now,
		})
	}
	return cart, s.repo.SaveCart(ctx, cart)
}

func (s *service) UpdateQuantity(ctx context.Context, uid, skuID, quantity int64) (domain.Cart, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, uid, skuID)
	}
	cart, err := s.repo.GetCart(ctx, uid)
	if err != nil {
		return domain.Cart{}, err
	}
	idx := cart.Find(skuID)
	if idx < 0 {
		return domain.Cart{}, fmt.Errorf("%w: sku_id=%d", ErrCartItemNotFound, skuID)
	}
	spu, err := s.productSvc.FindSKUBySN(ctx, cart.Items[idx].SKUSN)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("查找SKU失败: sku_id=%d: %w", skuID, err)
	}
	sku := spu.SKUs[0]
	cart.Items[idx].Quantity = capQuantity(quantity, sku.Stock)
	cart.Items[idx].Price = sku.Price
	cart.Items[idx].Stock = sku.Stock
	cart.Items[idx].Utime = time.Now().UnixMilli()
	return cart, s.repo.SaveCart(ctx, cart)
}

func (s *service) RemoveItem(ctx context.Context, uid, skuID int64) (domain.Cart, error) {
	cart, err := s.repo.GetCart(ctx, uid)
	if err != nil {
		return domain.Cart{}, err
	}
	idx := cart.Find(skuID)
	if idx < 0 {
		return domain.Cart{}, fmt.Errorf("%w: sku_id=%d", ErrCartItemNotFound, skuID)
	}
	cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	return cart, s.repo.SaveCart(ctx, cart)
}

func (s *service) List(ctx context.Context, uid int64) (domain.Cart, error) {
	cart, err := s.repo.GetCart(ctx, uid)
	if err != nil {
		return domain.Cart{}, err
	}
	changed := false
	for i := range cart.Items {
		spu, err := s.productSvc.FindSKUBySN(ctx, cart.Items[i].SKUSN)
		if err != nil {
			// 只有确认下架才改标记, 临时故障维持原样
			if errors.Is(err, product.ErrProductNotFound) && !cart.Items[i].OffShelf {
				cart.Items[i].OffShelf = true
				changed = true
			}
			continue
		}
		sku := spu.SKUs[0]
		quantity := capQuantity(cart.Items[i].Quantity, sku.Stock)
		if cart.Items[i].Price != sku.Price ||
			cart.Items[i].Stock != sku.Stock ||
			cart.Items[i].Quantity != quantity ||
			cart.Items[i].OffShelf {
			cart.Items[i].Price = sku.Price
			cart.Items[i].Stock = sku.Stock
			cart.Items[i].Quantity = quantity
			cart.Items[i].OffShelf = false
			changed = true
		}
	}
	if changed {
		if err := s.repo.SaveCart(ctx, cart); err != nil {
			// 校对结果写回失败只影响下次读取
			s.logger.Warn("回写购物车失败",
				elog.FieldErr(err),
				elog.Int64("uid", uid))
		}
	}
	return cart, nil
}

func (s *service) Clear(ctx context.Context, uid int64) error {
	return s.repo.ClearCart(ctx, uid)
}

func capQuantity(quantity, stock int64) int64 {
	if quantity > stock {
		return stock
	}
	return quantity
}
