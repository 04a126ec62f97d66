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

package coupon

import (
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/ecodeclub/emall/internal/coupon/internal/domain"
	"github.com/ecodeclub/emall/internal/coupon/internal/event"
	"github.com/ecodeclub/emall/internal/coupon/internal/repository/dao"
	"github.com/ecodeclub/emall/internal/coupon/internal/service"
	"github.com/ecodeclub/emall/internal/coupon/internal/web"
	"github.com/ego-component/egorm"
)

type (
	Handler      = web.Handler
	AdminHandler = web.AdminHandler
	Service      = service.Service
	Coupon       = domain.Coupon
	Status       = domain.Status
)

const (
	StatusDisabled = domain.StatusDisabled
	StatusActive   = domain.StatusActive
)

var (
	ErrCouponNotFound     = dao.ErrCouponNotFound
	ErrCouponInactive     = dao.ErrCouponInactive
	ErrCouponLimitReached = dao.ErrCouponLimitReached
)

type Module struct {
	Svc      Service
	Hdl      *Handler
	AdminHdl *AdminHandler
	Consumer *event.ReleaseUsageConsumer
}

var once = &sync.Once{}

func InitTablesOnce(db *egorm.Component) dao.CouponDAO {
	once.Do(func() {
		_ = dao.InitTables(db)
	})
	return dao.NewGORMCouponDAO(db)
}

// InitSnowflakeNode 优惠码自动生成依赖的发号器
func InitSnowflakeNode() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
