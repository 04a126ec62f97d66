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
	"database/sql"
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/emall/internal/payment/internal/domain"
	"github.com/ecodeclub/emall/internal/payment/internal/repository/dao"
)

type PaymentRepository interface {
	FindOrCreate(ctx context.Context, pmt domain.Payment) (domain.Payment, error)
	FindByOrderSN(ctx context.Context, orderSN string) (domain.Payment, error)
	UpdateTxnIDAndStatus(ctx context.Context, orderSN, txnID string, status domain.PaymentStatus, paidAt int64) error
	UpdateStatus(ctx context.Context, orderSN string, status domain.PaymentStatus) error
	SetCodeURL(ctx context.Context, orderSN, codeURL string) error
	FindExpiredPayments(ctx context.Context, offset, limit int, t time.Time) ([]domain.Payment, error)
	TotalExpiredPayments(ctx context.Context, t time.Time) (int64, error)
}

func NewPaymentRepository(d dao.PaymentDAO) PaymentRepository {
	return &paymentRepository{dao: d}
}

type paymentRepository struct {
	dao dao.PaymentDAO
}

func (p *paymentRepository) FindOrCreate(ctx context.Context, pmt domain.Payment) (domain.Payment, error) {
	created, err := p.dao.FindOrCreate(ctx, p.toEntity(pmt))
	if err != nil {
		return domain.Payment{}, err
	}
	return p.toDomain(created), nil
}

func (p *paymentRepository) FindByOrderSN(ctx context.Context, orderSN string) (domain.Payment, error) {
	pmt, err := p.dao.FindByOrderSN(ctx, orderSN)
	if err != nil {
		return domain.Payment{}, err
	}
	return p.toDomain(pmt), nil
}

func (p *paymentRepository) UpdateTxnIDAndStatus(ctx context.Context, orderSN, txnID string, status domain.PaymentStatus, paidAt int64) error {
	return p.dao.UpdateTxnIDAndStatus(ctx, orderSN, txnID, status.ToUint8(), paidAt)
}

func (p *paymentRepository) UpdateStatus(ctx context.Context, orderSN string, status domain.PaymentStatus) error {
	return p.dao.UpdateStatus(ctx, orderSN, status.ToUint8())
}

func (p *paymentRepository) SetCodeURL(ctx context.Context, orderSN, codeURL string) error {
	return p.dao.SetCodeURL(ctx, orderSN, codeURL)
}

func (p *paymentRepository) FindExpiredPayments(ctx context.Context, offset, limit int, t time.Time) ([]domain.Payment, error) {
	pmts, err := p.dao.FindExpiredPayments(ctx, offset, limit, t)
	if err != nil {
		return nil, err
	}
	return slice.Map(pmts, func(idx int, src dao.Payment) domain.Payment {
		return p.toDomain(src)
	}), nil
}

func (p *paymentRepository) TotalExpiredPayments(ctx context.Context, t time.Time) (int64, error) {
	return p.dao.CountExpiredPayments(ctx, t)
}

func (p *paymentRepository) toDomain(pmt dao.Payment) domain.Payment {
	return domain.Payment{
		ID:               pmt.Id,
		SN:               pmt.SN,
		PayerID:          pmt.PayerId,
		OrderID:          pmt.OrderId,
		OrderSN:          pmt.OrderSn,
		OrderDescription: pmt.OrderDescription,
		TotalAmount:      pmt.TotalAmount,
		Channel:          domain.ChannelType(pmt.Channel),
		PaymentNO3rd:     pmt.PaymentNO3rd.String,
		CodeURL:          pmt.CodeURL,
		Deadline:         pmt.Deadline,
		PaidAt:           pmt.PaidAt,
		Status:           domain.PaymentStatus(pmt.Status),
		Ctime:            pmt.Ctime,
		Utime:            pmt.Utime,
	}
}

func (p *paymentRepository) toEntity(pmt domain.Payment) dao.Payment {
	return dao.Payment{
		Id:               pmt.ID,
		SN:               pmt.SN,
		PayerId:          pmt.PayerID,
		OrderId:          pmt.OrderID,
		OrderSn:          pmt.OrderSN,
		OrderDescription: pmt.OrderDescription,
		TotalAmount:      pmt.TotalAmount,
		Channel:          uint8(pmt.Channel),
		PaymentNO3rd: sql.NullString{
			String: pmt.PaymentNO3rd,
			Valid:  pmt.PaymentNO3rd != "",
		},
		CodeURL:  pmt.CodeURL,
		Deadline: pmt.Deadline,
		PaidAt:   pmt.PaidAt,
		Status:   pmt.Status.ToUint8(),
	}
}
