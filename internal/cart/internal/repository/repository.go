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

	"github.com/ecodeclub/emall/internal/cart/internal/domain"
	"github.com/ecodeclub/emall/internal/cart/internal/repository/cache"
)

type CartRepository interface {
	GetCart(ctx context.Context, uid int64) (domain.Cart, error)
	SaveCart(ctx context.Context, cart domain.Cart) error
	ClearCart(ctx context.Context, uid int64) error
}

func NewCartRepository(c cache.CartCache) CartRepository {
	return &cartRepository{cache: c}
}

type cartRepository struct {
	cache cache.CartCache
}

func (r *cartRepository) GetCart(ctx context.Context, uid int64) (domain.Cart, error) {
	return r.cache.Get(ctx, uid)
}

func (r *cartRepository) SaveCart(ctx context.Context, cart domain.Cart) error {
	return r.cache.Set(ctx, cart)
}

func (r *cartRepository) ClearCart(ctx context.Context, uid int64) error {
	return r.cache.Delete(ctx, uid)
}
