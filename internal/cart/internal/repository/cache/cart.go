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
	"errors"
	"fmt"
	"time"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/emall/internal/cart/internal/domain"
	"github.com/redis/go-redis/v9"
)

// 购物车长期有效, 到期自动清空视为放弃
const cartExpiration = time.Hour * 24 * 30

type CartCache interface {
	Get(ctx context.Context, uid int64) (domain.Cart, error)
	Set(ctx context.Context, cart domain.Cart) error
	Delete(ctx context.Context, uid int64) error
}

type CartECache struct {
	cache ecache.Cache
}

func NewCartECache(c ecache.Cache) CartCache {
	return &CartECache{
		cache: &ecache.NamespaceCache{
			Namespace: "cart:",
			C:         c,
		},
	}
}

func (c *CartECache) Get(ctx context.Context, uid int64) (domain.Cart, error) {
	var items []domain.CartItem
	err := c.cache.Get(ctx, c.key(uid)).JSONScan(&items)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// 没有记录等价于空购物车
			return domain.Cart{UID: uid}, nil
		}
		return domain.Cart{}, err
	}
	return domain.Cart{UID: uid, Items: items}, nil
}

func (c *CartECache) Set(ctx context.Context, cart domain.Cart) error {
	data, err := json.Marshal(cart.Items)
	if err != nil {
		return fmt.Errorf("序列化购物车失败: %w", err)
	}
	return c.cache.Set(ctx, c.key(cart.UID), data, cartExpiration)
}

func (c *CartECache) Delete(ctx context.Context, uid int64) error {
	_, err := c.cache.Delete(ctx, c.key(uid))
	return err
}

func (c *CartECache) key(uid int64) string {
	return fmt.Sprintf("items:%d", uid)
}
