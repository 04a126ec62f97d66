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

package web

import (
	"errors"

	"github.com/ecodeclub/emall/internal/payment/internal/errs"
	"github.com/ecodeclub/emall/internal/payment/internal/repository/dao"
	"github.com/ecodeclub/emall/internal/payment/internal/service"
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"
	"github.com/wechatpay-apiv3/wechatpay-go/core/notify"
	"github.com/wechatpay-apiv3/wechatpay-go/services/payments"
)

var _ ginx.Handler = &Handler{}

type Handler struct {
	handler *notify.Handler
	svc     service.Service
	l       *elog.Component
}

func NewHandler(handler *notify.Handler, svc service.Service) *Handler {
	return &Handler{
		handler: handler,
		svc:     svc,
		l:       elog.DefaultLogger,
	}
}

func (h *Handler) PublicRoutes(server *gin.Engine) {
	server.Any("/pay/callback", ginx.W(h.HandleWechatNativePayCallBack))
}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/pay")
	g.POST("/query", ginx.BS[QueryReq](h.Query))
}

func (h *Handler) HandleWechatNativePayCallBack(ctx *ginx.Context) (ginx.Result, error) {
	transaction := &payments.Transaction{}
	_, err := h.handler.ParseNotifyRequest(ctx, ctx.Request, transaction)
	if err != nil {
		return ginx.Result{}, err
	}
	err = h.svc.HandleWechatCallback(ctx, transaction)
	return ginx.Result{}, err
}

// Query 买家查询自己订单的支付状态
func (h *Handler) Query(ctx *ginx.Context, req QueryReq, sess session.Session) (ginx.Result, error) {
	pmt, err := h.svc.FindByOrderSN(ctx.Request.Context(), req.OrderSN)
	if err != nil {
		if errors.Is(err, dao.ErrPaymentNotFound) {
			return paymentNotFoundResult, err
		}
		return systemErrorResult, err
	}
	if pmt.PayerID != sess.Claims().Uid {
		return paymentNotFoundResult, errors.New("支付单不属于当前用户")
	}
	return ginx.Result{
		Data: PaymentResp{
			SN:          pmt.SN,
			OrderSN:     pmt.OrderSN,
			TotalAmount: pmt.TotalAmount,
			CodeURL:     pmt.CodeURL,
			Status:      pmt.Status.ToUint8(),
			PaidAt:      pmt.PaidAt,
		},
	}, nil
}

var (
	systemErrorResult = ginx.Result{
		Code: errs.SystemError.Code,
		Msg:  errs.SystemError.Msg,
	}
	paymentNotFoundResult = ginx.Result{
		Code: errs.PaymentNotFound.Code,
		Msg:  errs.PaymentNotFound.Msg,
	}
)
