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
	"testing"

	"github.com/ecodeclub/emall/internal/cart/internal/domain"
	"github.com/ecodeclub/emall/internal/product"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCartRepository struct {
	carts map[int64]domain.Cart
}

func (f *fakeCartRepository) GetCart(_ context.Context, uid int64) (domain.Cart, error) {
	cart, ok := f.carts[uid]
	if !ok {
		return domain.Cart{UID: uid}, nil
	}
	return cart, nil
}

func (f *fakeCartRepository) SaveCart(_ context.Context, cart domain.Cart) error {
	f.carts[cart.UID] = cart
	return nil
}

func (f *fakeCartRepository) ClearCart(_ context.Context, uid int64) error {
	delete(f.carts, uid)
	return nil
}

type fakeProductService struct {
	product.Service
	skus map[string]product.SKU // sn -> sku
}

func (f *fakeProductService) FindSKUBySN(_ context.Context, sn string) (product.SPU, error) {
	sku, ok := f.skus[sn]
	if !ok {
		return product.SPU{}, product.ErrProductNotFound
	}
	return product.SPU{ID: sku.SPUID, SKUs: []product.SKU{sku}}, nil
}

func newTestService() (Service, *fakeCartRepository, *fakeProductService) {
	repo := &fakeCartRepository{carts: map[int64]domain.Cart{}}
	productSvc := &fakeProductService{skus: map[string]product.SKU{
		"SKU-1": {ID: 1, SPUID: 100, SN: "SKU-1", Name: "T恤 黑色 M", Price: 1000, Stock: 5},
		"SKU-2": {ID: 2, SPUID: 100, SN: "SKU-2", Name: "T恤 白色 L", Price: 2000, Stock: 2},
	}}
	return NewService(repo, productSvc), repo, productSvc
}

func TestServiceAddItem(t *testing.T) {
	t.Parallel()
	const uid = int64(234)

	t.Run("正常加购", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newTestService()
		cart, err := svc.AddItem(context.Background(), uid, "SKU-1", 2)
		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, int64(2), cart.Items[0].Quantity)
		assert.Equal(t, int64(1000), cart.Items[0].Price)
	})

	t.Run("重复加购累加数量", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newTestService()
		_, err := svc.AddItem(context.Background(), uid, "SKU-1", 2)
		require.NoError(t, err)
		cart, err := svc.AddItem(context.Background(), uid, "SKU-1", 1)
		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, int64(3), cart.Items[0].Quantity)
	})

	t.Run("数量截到库存上限", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newTestService()
		cart, err := svc.AddItem(context.Background(), uid, "SKU-2", 10)
		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, int64(2), cart.Items[0].Quantity)
	})

	t.Run("SKU不存在", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newTestService()
		_, err := svc.AddItem(context.Background(), uid, "SKU-404", 1)
		assert.ErrorIs(t, err, product.ErrProductNotFound)
	})

	t.Run("数量非法", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newTestService()
		_, err := svc.AddItem(context.Background(), uid, "SKU-1", 0)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})
}

func TestServiceUpdateQuantity(t *testing.T) {
	t.Parallel()
	const uid = int64(234)

	svc, _, _ := newTestService()
	_, err := svc.AddItem(context.Background(), uid, "SKU-1", 1)
	require.NoError(t, err)

	cart, err := svc.UpdateQuantity(context.Background(), uid, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(4), cart.Items[0].Quantity)

	// 数量归零等价于移除
	cart, err = svc.UpdateQuantity(context.Background(), uid, 1, 0)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	_, err = svc.UpdateQuantity(context.Background(), uid, 999, 1)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestServiceRemoveItem(t *testing.T) {
	t.Parallel()
	const uid = int64(234)

	svc, _, _ := newTestService()
	_, err := svc.AddItem(context.Background(), uid, "SKU-1", 1)
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), uid, "SKU-2", 1)
	require.NoError(t, err)

	cart, err := svc.RemoveItem(context.Background(), uid, 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(2), cart.Items[0].SKUID)

	_, err = svc.RemoveItem(context.Background(), uid, 1)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestServiceListReconciles(t *testing.T) {
	t.Parallel()
	const uid = int64(234)

	svc, _, productSvc := newTestService()
	_, err := svc.AddItem(context.Background(), uid, "SKU-1", 4)
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), uid, "SKU-2", 2)
	require.NoError(t, err)

	// 价格变动且库存缩水, SKU-2直接下架
	productSvc.skus["SKU-1"] = product.SKU{ID: 1, SPUID: 100, SN: "SKU-1", Name: "T恤 黑色 M", Price: 1200, Stock: 3}
	delete(productSvc.skus, "SKU-2")

	cart, err := svc.List(context.Background(), uid)
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)

	idx := cart.Find(1)
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, int64(1200), cart.Items[idx].Price)
	assert.Equal(t, int64(3), cart.Items[idx].Quantity)
	assert.False(t, cart.Items[idx].OffShelf)

	idx = cart.Find(2)
	require.GreaterOrEqual(t, idx, 0)
	assert.True(t, cart.Items[idx].OffShelf)
}

func TestServiceClear(t *testing.T) {
	t.Parallel()
	const uid = int64(234)

	svc, repo, _ := newTestService()
	_, err := svc.AddItem(context.Background(), uid, "SKU-1", 1)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(context.Background(), uid))
	assert.Empty(t, repo.carts)

	cart, err := svc.List(context.Background(), uid)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}
