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

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/emall/internal/product/internal/domain"
)

type SKUCache interface {
	GetSKU(ctx context.Context, sn string) (domain.SKU, error)
	SetSKU(ctx context.Context, sku domain.SKU) error
	DelSKU(ctx context.Context, sn string) error
}

type SKUECache struct {
	ec         ecache.Cache
	expiration time.Duration
}

func NewSKUECache(ec ecache.Cache) SKUCache {
	return &SKUECache{
		ec: &ecache.NamespaceCache{
			Namespace: "product:sku:",
			C:         ec,
		},
		expiration: 10 * time.Minute,
	}
}

func (c *SKUECache) GetSKU(ctx context.Context, sn string) (domain.SKU, error) {
	var sku domain.SKU
	err := c.ec.Get(ctx, c.skuKey(sn)).JSONScan(&sku)
	return sku, err
}

func (c *SKUECache) SetSKU(ctx context.Context, sku domain.SKU) error {
	data, err := json.Marshal(sku)
	if err != nil {
		return fmt.Errorf("序列化SKU失败: %w", err)
	}
	return c.ec.Set(ctx, c.skuKey(sku.SN), data, c.expiration)
}

func (c *SKUECache) DelSKU(ctx context.Context, sn string) error {
	_, err := c.ec.Delete(ctx, c.skuKey(sn))
	return err
}

func (c *SKUECache) skuKey(sn string) string {
	return fmt.Sprintf("sn:%s", sn)
}
