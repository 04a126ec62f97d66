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

//go:build e2e

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/ecodeclub/emall/internal/coupon/internal/domain"
	"github.com/ecodeclub/emall/internal/coupon/internal/repository/dao"
	testioc "github.com/ecodeclub/emall/internal/test/ioc"
	"github.com/ego-component/egorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	testUID      = 234
	otherUID     = 235
	testOrderID  = 9001
	otherOrderID = 9002
)

type CouponDAOTestSuite struct {
	suite.Suite
	db  *egorm.Component
	dao dao.CouponDAO
}

func (s *CouponDAOTestSuite) SetupSuite() {
	s.db = testioc.InitDB()
	require.NoError(s.T(), dao.InitTables(s.db))
	s.dao = dao.NewGORMCouponDAO(s.db)
}

func (s *CouponDAOTestSuite) TearDownSuite() {
	require.NoError(s.T(), s.db.Exec("DROP TABLE `coupons`").Error)
	require.NoError(s.T(), s.db.Exec("DROP TABLE `redeem_logs`").Error)
}

func (s *CouponDAOTestSuite) TearDownTest() {
	require.NoError(s.T(), s.db.Exec("TRUNCATE TABLE `coupons`").Error)
	require.NoError(s.T(), s.db.Exec("TRUNCATE TABLE `redeem_logs`").Error)
}

func (s *CouponDAOTestSuite) createCoupon(c dao.Coupon) dao.Coupon {
	if c.Status == 0 {
		c.Status = domain.StatusActive.ToUint8()
	}
	id, err := s.dao.Create(context.Background(), c)
	require.NoError(s.T(), err)
	c.Id = id
	return c
}

func (s *CouponDAOTestSuite) usedCount(id int64) int64 {
	c, err := s.dao.FindByID(context.Background(), id)
	require.NoError(s.T(), err)
	return c.UsedCount
}

func (s *CouponDAOTestSuite) TestRedeemAtGlobalLimitBoundary() {
	t := s.T()
	c := s.createCoupon(dao.Coupon{
		Code:            "BOUND10",
		Name:            "九折券",
		DiscountPercent: 10,
		MaxTotalUses:    3,
		UsedCount:       2,
	})

	// 还剩最后一次, 兑换成功并恰好用满
	got, err := s.dao.Redeem(context.Background(), testUID, testOrderID, "BOUND10")
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.UsedCount)
	assert.Equal(t, int64(3), s.usedCount(c.Id))

	// 已用满, 再兑换被拒绝且计数不动
	_, err = s.dao.Redeem(context.Background(), otherUID, otherOrderID, "BOUND10")
	assert.ErrorIs(t, err, dao.ErrCouponLimitReached)
	assert.Equal(t, int64(3), s.usedCount(c.Id))
}

func (s *CouponDAOTestSuite) TestRedeemDuplicateOrderRollsBack() {
	t := s.T()
	c := s.createCoupon(dao.Coupon{
		Code:            "DUP10",
		Name:            "九折券",
		DiscountPercent: 10,
	})

	_, err := s.dao.Redeem(context.Background(), testUID, testOrderID, "DUP10")
	require.NoError(t, err)
	require.Equal(t, int64(1), s.usedCount(c.Id))

	// 同一订单重复兑换撞唯一索引, 事务回滚, 计数只加一次
	_, err = s.dao.Redeem(context.Background(), otherUID, testOrderID, "DUP10")
	assert.Error(t, err)
	assert.Equal(t, int64(1), s.usedCount(c.Id))
}

func (s *CouponDAOTestSuite) TestRedeemPerUserLimit() {
	t := s.T()
	c := s.createCoupon(dao.Coupon{
		Code:            "ONCE10",
		Name:            "九折券",
		DiscountPercent: 10,
		MaxUsesPerUser:  1,
	})

	_, err := s.dao.Redeem(context.Background(), testUID, testOrderID, "ONCE10")
	require.NoError(t, err)

	// 同一用户换不同订单也被单人限额拦住
	_, err = s.dao.Redeem(context.Background(), testUID, otherOrderID, "ONCE10")
	assert.ErrorIs(t, err, dao.ErrCouponLimitReached)
	assert.Equal(t, int64(1), s.usedCount(c.Id))

	// 别的用户不受影响
	_, err = s.dao.Redeem(context.Background(), otherUID, otherOrderID, "ONCE10")
	require.NoError(t, err)
	assert.Equal(t, int64(2), s.usedCount(c.Id))
}

func (s *CouponDAOTestSuite) TestRedeemInactiveAndWindow() {
	t := s.T()
	now := time.Now().UnixMilli()
	hour := time.Hour.Milliseconds()
	s.createCoupon(dao.Coupon{
		Code:            "OFFLINE",
		Name:            "停用券",
		DiscountPercent: 10,
		Status:          domain.StatusDisabled.ToUint8(),
	})
	s.createCoupon(dao.Coupon{
		Code:            "EXPIRED",
		Name:            "过期券",
		DiscountPercent: 10,
		ValidUntil:      now - hour,
	})

	_, err := s.dao.Redeem(context.Background(), testUID, testOrderID, "OFFLINE")
	assert.ErrorIs(t, err, dao.ErrCouponInactive)
	_, err = s.dao.Redeem(context.Background(), testUID, testOrderID, "EXPIRED")
	assert.ErrorIs(t, err, dao.ErrCouponInactive)
	_, err = s.dao.Redeem(context.Background(), testUID, testOrderID, "NOSUCH")
	assert.ErrorIs(t, err, dao.ErrCouponNotFound)
}

func (s *CouponDAOTestSuite) TestReleaseIsIdempotent() {
	t := s.T()
	c := s.createCoupon(dao.Coupon{
		Code:            "BACK10",
		Name:            "九折券",
		DiscountPercent: 10,
		MaxTotalUses:    3,
	})

	// 没兑换过的订单归还是空操作
	require.NoError(t, s.dao.Release(context.Background(), testOrderID))
	assert.Equal(t, int64(0), s.usedCount(c.Id))

	_, err := s.dao.Redeem(context.Background(), testUID, testOrderID, "BACK10")
	require.NoError(t, err)
	require.Equal(t, int64(1), s.usedCount(c.Id))

	// 第一次归还减一, 重复归还不再减
	require.NoError(t, s.dao.Release(context.Background(), testOrderID))
	assert.Equal(t, int64(0), s.usedCount(c.Id))
	require.NoError(t, s.dao.Release(context.Background(), testOrderID))
	assert.Equal(t, int64(0), s.usedCount(c.Id))

	// 归还之后额度可以再次被占用
	_, err = s.dao.Redeem(context.Background(), testUID, otherOrderID, "BACK10")
	require.NoError(t, err)
	assert.Equal(t, int64(1), s.usedCount(c.Id))
}

func TestCouponDAO(t *testing.T) {
	suite.Run(t, new(CouponDAOTestSuite))
}
