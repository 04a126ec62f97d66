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

package dao

import (
	"context"
	"errors"
	"time"

	"github.com/ecodeclub/emall/internal/product/internal/domain"
	"github.com/ego-component/egorm"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = gorm.ErrRecordNotFound
	ErrStockNotEnough  = errors.New("库存不足")
)

type ProductDAO interface {
	CreateSPU(ctx context.Context, spu SPU, skus []SKU) (int64, error)
	UpdateSPU(ctx context.Context, spu SPU, skus []SKU) error
	FindSPUByID(ctx context.Context, id int64) (SPU, error)
	FindSPUBySN(ctx context.Context, sn string) (SPU, error)
	FindSKUBySN(ctx context.Context, sn string) (SKU, error)
	FindSKUByID(ctx context.Context, id int64) (SKU, error)
	FindSKUsBySPUID(ctx context.Context, spuId int64) ([]SKU, error)
	ListSPUs(ctx context.Context, offset, limit int, onShelfOnly bool) ([]SPU, error)
	CountSPUs(ctx context.Context, onShelfOnly bool) (int64, error)
	DecreaseStock(ctx context.Context, skuId, quantity int64) error
	IncreaseStock(ctx context.Context, skuId, quantity int64) error
}

type ProductGORMDAO struct {
	db *egorm.Component
}

func NewProductGORMDAO(db *egorm.Component) ProductDAO {
	return &ProductGORMDAO{db: db}
}

func (d *ProductGORMDAO) CreateSPU(ctx context.Context, spu SPU, skus []SKU) (int64, error) {
	now := time.Now().UnixMilli()
	spu.Ctime, spu.Utime = now, now
	err := d.db.WithContext(ctx).Transaction(func(tx *egorm.Component) error {
		if err := tx.Create(&spu).Error; err != nil {
			return err
		}
		for i := range skus {
			skus[i].SPUID = spu.Id
			skus[i].Ctime, skus[i].Utime = now, now
		}
		return tx.Create(&skus).Error
	})
	return spu.Id, err
}

func (d *ProductGORMDAO) UpdateSPU(ctx context.Context, spu SPU, skus []SKU) error {
	now := time.Now().UnixMilli()
	return d.db.WithContext(ctx).Transaction(func(tx *egorm.Component) error {
		spu.Utime = now
		if err := tx.Model(&SPU{}).Where("id = ?", spu.Id).Updates(&spu).Error; err != nil {
			return err
		}
		for i := range skus {
			skus[i].SPUID = spu.Id
			skus[i].Utime = now
			if skus[i].Id > 0 {
				if err := tx.Model(&SKU{}).Where("id = ?", skus[i].Id).Updates(&skus[i]).Error; err != nil {
					return err
				}
				continue
			}
			skus[i].Ctime = now
			if err := tx.Create(&skus[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (d *ProductGORMDAO) FindSPUByID(ctx context.Context, id int64) (SPU, error) {
	var res SPU
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&res).Error
	return res, err
}

func (d *ProductGORMDAO) FindSPUBySN(ctx context.Context, sn string) (SPU, error) {
	var res SPU
	err := d.db.WithContext(ctx).
		Where("sn = ? AND status = ?", sn, domain.StatusOnShelf.ToUint8()).First(&res).Error
	return res, err
}

func (d *ProductGORMDAO) FindSKUBySN(ctx context.Context, sn string) (SKU, error) {
	var res SKU
	err := d.db.WithContext(ctx).
		Where("sn = ? AND status = ?", sn, domain.StatusOnShelf.ToUint8()).First(&res).Error
	return res, err
}

func (d *ProductGORMDAO) FindSKUByID(ctx context.Context, id int64) (SKU, error) {
	var res SKU
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&res).Error
	return res, err
}

func (d *ProductGORMDAO) FindSKUsBySPUID(ctx context.Context, spuId int64) ([]SKU, error) {
	var res []SKU
	err := d.db.WithContext(ctx).Where("spu_id = ?", spuId).
		Order("id ASC").
		Find(&res).Error
	return res, err
}

func (d *ProductGORMDAO) ListSPUs(ctx context.Context, offset, limit int, onShelfOnly bool) ([]SPU, error) {
	var res []SPU
	query := d.db.WithContext(ctx)
	if onShelfOnly {
		query = query.Where("status = ?", domain.StatusOnShelf.ToUint8())
	}
	err := query.Order("ctime DESC").Offset(offset).Limit(limit).Find(&res).Error
	return res, err
}

func (d *ProductGORMDAO) CountSPUs(ctx context.Context, onShelfOnly bool) (int64, error) {
	var count int64
	query := d.db.WithContext(ctx).Model(&SPU{})
	if onShelfOnly {
		query = query.Where("status = ?", domain.StatusOnShelf.ToUint8())
	}
	err := query.Count(&count).Error
	return count, err
}

// DecreaseStock 条件扣减, 并发下单时防止超卖
func (d *ProductGORMDAO) DecreaseStock(ctx context.Context, skuId, quantity int64) error {
	res := d.db.WithContext(ctx).Model(&SKU{}).
		Where("id = ? AND stock >= ?", skuId, quantity).
		Updates(map[string]any{
			"stock": gorm.Expr("stock - ?", quantity),
			"utime": time.Now().UnixMilli(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStockNotEnough
	}
	return nil
}

func (d *ProductGORMDAO) IncreaseStock(ctx context.Context, skuId, quantity int64) error {
	return d.db.WithContext(ctx).Model(&SKU{}).
		Where("id = ?", skuId).
		Updates(map[string]any{
			"stock": gorm.Expr("stock + ?", quantity),
			"utime": time.Now().UnixMilli(),
		}).Error
}

type SPU struct {
	Id          int64  `gorm:"primaryKey;autoIncrement;comment:商品SPU自增ID"`
	SN          string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_product_spu_sn;comment:商品SPU序列号"`
	Name        string `gorm:"type:varchar(255);not null;comment:商品名称"`
	Description string `gorm:"not null;comment:商品描述"`
	Category    string `gorm:"type:varchar(255);not null;index:idx_category;comment:商品类目"`
	SubCategory string `gorm:"type:varchar(255);not null;comment:商品子类目"`
	Status      uint8  `gorm:"type:tinyint unsigned;not null;default:1;comment:状态 1=下架 2=上架"`
	Ctime       int64
	Utime       int64
}

type SKU struct {
	Id     int64  `gorm:"primaryKey;autoIncrement;comment:商品SKU自增ID"`
	SPUID  int64  `gorm:"column:spu_id;not null;uniqueIndex:uniq_spu_sku_sn,priority:1;comment:商品SPU自增ID"`
	SN     string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_spu_sku_sn,priority:2;comment:商品SKU序列号,SPU内唯一"`
	Name   string `gorm:"type:varchar(255);not null;comment:SKU名称"`
	Color  string `gorm:"type:varchar(64);not null;comment:颜色"`
	Size   string `gorm:"type:varchar(64);not null;comment:尺码"`
	Price  int64  `gorm:"not null;comment:商品单价;单位为分, 999表示9.99元"`
	Stock  int64  `gorm:"not null;comment:库存数量"`
	Image  string `gorm:"type:varchar(512);not null;comment:商品缩略图,CDN绝对路径"`
	Status uint8  `gorm:"type:tinyint unsigned;not null;default:1;comment:状态 1=下架 2=上架"`
	Ctime  int64
	Utime  int64
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&SPU{}, &SKU{})
}
