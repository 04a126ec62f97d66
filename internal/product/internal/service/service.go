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
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ecodeclub/emall/internal/product/internal/domain"
	"github.com/ecodeclub/emall/internal/product/internal/repository"
	"github.com/lithammer/shortuuid/v4"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=./service.go -package=svcmocks -destination=./mocks/service.mock.go -typed Service
type Service interface {
	// FindSKUBySN 返回包含单个SKU的SPU, 下单路径使用
	FindSKUBySN(ctx context.Context, sn string) (domain.SPU, error)
	DetailBySN(ctx context.Context, sn string) (domain.SPU, error)
	List(ctx context.Context, offset, limit int) ([]domain.SPU, int64, error)
	AdminList(ctx context.Context, offset, limit int) ([]domain.SPU, int64, error)
	// SaveSPU 创建或更新SPU及其SKU, 缺失的序列号会自动生成
	SaveSPU(ctx context.Context, spu domain.SPU) (int64, error)
	DecreaseStock(ctx context.Context, skuID, quantity int64) error
	ReleaseStock(ctx context.Context, skuID, quantity int64) error
}

func NewService(repo repository.ProductRepository) Service {
	return &service{repo: repo}
}

type service struct {
	repo repository.ProductRepository
}

func (s *service) FindSKUBySN(ctx context.Context, sn string) (domain.SPU, error) {
	sku, err := s.repo.FindSKUBySN(ctx, sn)
	if err != nil {
		return domain.SPU{}, err
	}
	spu, err := s.repo.FindSPUByID(ctx, sku.SPUID)
	if err != nil {
		return domain.SPU{}, err
	}
	spu.SKUs = []domain.SKU{sku}
	return spu, nil
}

func (s *service) DetailBySN(ctx context.Context, sn string) (domain.SPU, error) {
	return s.repo.FindSPUBySN(ctx, sn)
}

func (s *service) List(ctx context.Context, offset, limit int) ([]domain.SPU, int64, error) {
	return s.list(ctx, offset, limit, true)
}

func (s *service) AdminList(ctx context.Context, offset, limit int) ([]domain.SPU, int64, error) {
	return s.list(ctx, offset, limit, false)
}

func (s *service) list(ctx context.Context, offset, limit int, onShelfOnly bool) ([]domain.SPU, int64, error) {
	var (
		eg    errgroup.Group
		spus  []domain.SPU
		total int64
	)
	eg.Go(func() error {
		var err error
		spus, err = s.repo.ListSPUs(ctx, offset, limit, onShelfOnly)
		return err
	})
	eg.Go(func() error {
		var err error
		total, err = s.repo.CountSPUs(ctx, onShelfOnly)
		return err
	})
	return spus, total, eg.Wait()
}

func (s *service) SaveSPU(ctx context.Context, spu domain.SPU) (int64, error) {
	if spu.SN == "" {
		spu.SN = shortuuid.New()
	}
	for i := range spu.SKUs {
		if spu.SKUs[i].SN == "" {
			spu.SKUs[i].SN = SKUSN(spu.SN, spu.SKUs[i].Color, spu.SKUs[i].Size)
		}
		if spu.SKUs[i].Name == "" {
			spu.SKUs[i].Name = fmt.Sprintf("%s %s %s", spu.Name, spu.SKUs[i].Color, spu.SKUs[i].Size)
		}
	}
	if spu.ID > 0 {
		return spu.ID, s.repo.UpdateSPU(ctx, spu)
	}
	return s.repo.CreateSPU(ctx, spu)
}

func (s *service) DecreaseStock(ctx context.Context, skuID, quantity int64) error {
	return s.repo.DecreaseStock(ctx, skuID, quantity)
}

func (s *service) ReleaseStock(ctx context.Context, skuID, quantity int64) error {
	return s.repo.IncreaseStock(ctx, skuID, quantity)
}

// SKUSN 由商品序列号和(颜色, 尺码)拼接SKU序列号
// 属性无法转成slug时退化为其原始值的十六进制截断
func SKUSN(spuSN, color, size string) string {
	return fmt.Sprintf("%s-%s-%s", spuSN, attrSlug(color), attrSlug(size))
}

func attrSlug(attr string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(attr)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}
	if b.Len() == 0 {
		return truncatedHex(attr)
	}
	return b.String()
}

func truncatedHex(attr string) string {
	if attr == "" {
		return "na"
	}
	const maxLen = 6
	h := hex.EncodeToString([]byte(attr))
	if len(h) > maxLen {
		return h[:maxLen]
	}
	return h
}
