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

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeliveryTransitionNote(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name     string
		from     DeliveryStatus
		to       DeliveryStatus
		wantNote string
		wantErr  bool
	}{
		{name: "待处理到已确认", from: DeliveryStatusPending, to: DeliveryStatusConfirmed, wantNote: "订单已确认"},
		{name: "已确认到已发货", from: DeliveryStatusConfirmed, to: DeliveryStatusShipped, wantNote: "订单已发货"},
		{name: "已发货到已送达", from: DeliveryStatusShipped, to: DeliveryStatusDelivered, wantNote: "订单已送达"},
		{name: "待处理可取消", from: DeliveryStatusPending, to: DeliveryStatusCancelled, wantNote: "订单已取消"},
		{name: "已确认可取消", from: DeliveryStatusConfirmed, to: DeliveryStatusCancelled, wantNote: "订单已取消"},
		{name: "已发货可取消", from: DeliveryStatusShipped, to: DeliveryStatusCancelled, wantNote: "订单已取消"},
		{name: "不能跳过确认直接发货", from: DeliveryStatusPending, to: DeliveryStatusShipped, wantErr: true},
		{name: "不能跳过发货直接送达", from: DeliveryStatusConfirmed, to: DeliveryStatusDelivered, wantErr: true},
		{name: "不能回退", from: DeliveryStatusShipped, to: DeliveryStatusConfirmed, wantErr: true},
		{name: "已送达是终态", from: DeliveryStatusDelivered, to: DeliveryStatusCancelled, wantErr: true},
		{name: "已取消是终态", from: DeliveryStatusCancelled, to: DeliveryStatusConfirmed, wantErr: true},
		{name: "不能原地踏步", from: DeliveryStatusPending, to: DeliveryStatusPending, wantErr: true},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			note, err := DeliveryTransitionNote(tc.from, tc.to)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDeliveryTransition)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantNote, note)
		})
	}
}
