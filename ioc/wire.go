//go:build wireinject

package ioc

import (
	"github.com/ecodeclub/emall/internal/cart"
	"github.com/ecodeclub/emall/internal/coupon"
	"github.com/ecodeclub/emall/internal/order"
	"github.com/ecodeclub/emall/internal/payment"
	"github.com/ecodeclub/emall/internal/product"
	"github.com/ecodeclub/emall/internal/user"
	"github.com/google/wire"
)

var BaseSet = wire.NewSet(InitDB, InitCache, InitRedis, InitMQ)

func InitApp() (*App, error) {
	wire.Build(
		BaseSet,
		InitSession,
		initUserModule,
		initProductModule,
		initCouponModule,
		initPaymentModule,
		initOrderModule,
		initCartModule,
		wire.FieldsOf(new(*user.Module), "Hdl", "AdminHdl"),
		wire.FieldsOf(new(*product.Module), "Hdl", "AdminHdl"),
		wire.FieldsOf(new(*coupon.Module), "Hdl", "AdminHdl"),
		wire.FieldsOf(new(*payment.Module), "Hdl", "SyncWechatOrderJob"),
		wire.FieldsOf(new(*order.Module), "Hdl", "AdminHdl", "CloseExpiredOrdersJob"),
		wire.FieldsOf(new(*cart.Module), "Hdl"),
		initMQConsumers,
		initCronJobs,
		initGinxServer,
		InitAdminServer,
		wire.Struct(new(App), "*"),
	)
	return new(App), nil
}
