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
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/ecodeclub/emall/internal/coupon/internal/domain"
	"github.com/ecodeclub/emall/internal/coupon/internal/repository"
	"github.com/ecodeclub/emall/internal/coupon/internal/repository/dao"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=./service.go -package=svcmocks -destination=./mocks/service.mock.go -typed Service
type Service interface {
	// Validate 只读校验, 返回可用的优惠码
	Validate(ctx context.Context, code string, uid int64) (domain.Coupon, error)
	// Redeem 校验并原子占用一次使用额度
	Redeem(ctx context.Context, code string, uid, orderID int64) (domain.Coupon, error)
	// Release 订单关闭后归还额度
	Release(ctx context.Context, orderID int64) error
	FindByID(ctx context.Context, id int64) (domain.Coupon, error)

	Save(ctx context.Context, c domain.Coupon) (int64, error)
	Disable(ctx context.Context, id int64) error
	List(ctx context.Context, offset, limit int) ([]domain.Coupon, int64, error)
}

func NewService(repo repository.CouponRepository, node *snowflake.Node) Service {
	return &service{repo: repo, node: node}
}

type service struct {
	repo repository.CouponRepository
	node *snowflake.Node
}

func (s *service) Validate(ctx context.Context, code string, uid int64) (domain.Coupon, error) {
	c, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return domain.Coupon{}, err
	}
	now := time.Now().UnixMilli()
	if c.Status != domain.StatusActive || c.NotStarted(now) || c.IsExpired(now) {
		return domain.Coupon{}, fmt.Errorf("%w: %s", dao.ErrCouponInactive, code)
	}
	if c.IsReachedUsageLimit() {
		return domain.Coupon{}, fmt.Errorf("%w: %s", dao.ErrCouponLimitReached, code)
	}
	if c.MaxUsesPerUser > 0 {
		used, er := s.repo.CountRedemptions(ctx, c.ID, uid)
		if er != nil {
			return domain.Coupon{}, er
		}
		if used >= c.MaxUsesPerUser {
			return domain.Coupon{}, fmt.Errorf("%w: %s", dao.ErrCouponLimitReached, code)
		}
		c.UsedByUser = used
	}
	return c, nil
}

func (s *service) Redeem(ctx context.Context, code string, uid, orderID int64) (domain.Coupon, error) {
	return s.repo.Redeem(ctx, uid, orderID, code)
}

func (s *service) Release(ctx context.Context, orderID int64) error {
	return s.repo.Release(ctx, orderID)
}

func (s *service) FindByID(ctx context.Context, id int64) (domain.Coupon, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) Save(ctx context.Context, c domain.Coupon) (int64, error) {
	if c.DiscountPercent < 0 || c.DiscountPercent > 100 {
		return 0, fmt.Errorf("折扣百分比非法: %d", c.DiscountPercent)
	}
	if c.ValidFrom > 0 && c.ValidUntil > 0 && c.ValidFrom > c.ValidUntil {
		return 0, fmt.Errorf("有效期窗口非法")
	}
	if c.Status == 0 {
		c.Status = domain.StatusActive
	}
	if c.ID > 0 {
		return c.ID, s.repo.Update(ctx, c)
	}
	if c.Code == "" {
		c.Code = strings.ToUpper(s.node.Generate().Base36())
	}
	return s.repo.Create(ctx, c)
}

func (s *service) Disable(ctx context.Context, id int64) error {
	return s.repo.UpdateStatus(ctx, id, domain.StatusDisabled)
}

func (s *service) List(ctx context.Context, offset, limit int) ([]domain.Coupon, int64, error) {
	var (
		eg    errgroup.Group
		cs    []domain.Coupon
		total int64
	)
	eg.Go(func() error {
		var err error
		cs, err = s.repo.List(ctx, offset, limit)
		return err
	})
	eg.Go(func() error {
		var err error
		total, err = s.repo.Count(ctx)
		return err
	})
	return cs, total, eg.Wait()
}
