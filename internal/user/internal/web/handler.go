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
	"net/mail"

	"github.com/ecodeclub/emall/internal/user/internal/domain"
	"github.com/ecodeclub/emall/internal/user/internal/service"
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/gin-gonic/gin"
)

var _ ginx.Handler = &Handler{}

type Handler struct {
	svc service.UserService
	// admins 管理后台白名单邮箱
	admins map[string]struct{}
}

func NewHandler(svc service.UserService, admins []string) *Handler {
	adminSet := make(map[string]struct{}, len(admins))
	for _, email := range admins {
		adminSet[email] = struct{}{}
	}
	return &Handler{svc: svc, admins: adminSet}
}

func (h *Handler) PublicRoutes(server *gin.Engine) {
	users := server.Group("/users")
	users.POST("/register", ginx.B[RegisterReq](h.Register))
	users.POST("/login", ginx.B[LoginReq](h.Login))
}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	users := server.Group("/users")
	users.GET("/profile", ginx.S(h.Profile))
	users.POST("/profile", ginx.BS[EditReq](h.Edit))
	users.Any("/token/refresh", ginx.W(h.RefreshAccessToken))
}

func (h *Handler) Register(ctx *ginx.Context, req RegisterReq) (ginx.Result, error) {
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return invalidUserOrPasswordResult, err
	}
	const minPasswordLen = 8
	if len(req.Password) < minPasswordLen {
		return invalidUserOrPasswordResult, errors.New("密码过短")
	}
	u, err := h.svc.Register(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserDuplicate) {
			return duplicateUserResult, err
		}
		return systemErrorResult, err
	}
	if err = h.buildSession(ctx, u); err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Data: toProfile(u)}, nil
}

func (h *Handler) Login(ctx *ginx.Context, req LoginReq) (ginx.Result, error) {
	u, err := h.svc.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidUserOrPassword) {
			return invalidUserOrPasswordResult, err
		}
		return systemErrorResult, err
	}
	if err = h.buildSession(ctx, u); err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Data: toProfile(u)}, nil
}

// buildSession 管理员身份写进claims, 管理后台靠它做权限校验
func (h *Handler) buildSession(ctx *ginx.Context, u domain.User) error {
	builder := session.NewSessionBuilder(ctx, u.ID)
	if _, ok := h.admins[u.Email]; ok {
		builder = builder.SetJwtData(map[string]string{"admin": "true"})
	}
	_, err := builder.Build()
	return err
}

func (h *Handler) RefreshAccessToken(ctx *ginx.Context) (ginx.Result, error) {
	err := session.RenewAccessToken(ctx)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Msg: "OK"}, nil
}

func (h *Handler) Profile(ctx *ginx.Context, sess session.Session) (ginx.Result, error) {
	u, err := h.svc.Profile(ctx.Request.Context(), sess.Claims().Uid)
	if err != nil {
		return systemErrorResult, err
	}
	p := toProfile(u)
	// 自己看自己的资料不需要回显ID
	p.Id = 0
	return ginx.Result{Data: p}, nil
}

func (h *Handler) Edit(ctx *ginx.Context, req EditReq, sess session.Session) (ginx.Result, error) {
	err := h.svc.UpdateNonSensitiveInfo(ctx.Request.Context(), domain.User{
		ID:       sess.Claims().Uid,
		Nickname: req.Nickname,
		Avatar:   req.Avatar,
	})
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Msg: "OK"}, nil
}

func toProfile(u domain.User) Profile {
	return Profile{
		Id:       u.ID,
		SN:       u.SN,
		Email:    u.Email,
		Nickname: u.Nickname,
		Avatar:   u.Avatar,
	}
}
