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

type ValidateReq struct {
	Code string `json:"code"`
}

type ValidateResp struct {
	Coupon Coupon `json:"coupon"`
	// 剩余可用次数, -1表示不限
	RemainingUses        int64 `json:"remainingUses"`
	RemainingUsesForUser int64 `json:"remainingUsesForUser"`
}

type Coupon struct {
	ID              int64  `json:"id,omitempty"`
	Code            string `json:"code"`
	Name            string `json:"name"`
	DiscountPercent int64  `json:"discountPercent"`
	ValidFrom       int64  `json:"validFrom"`
	ValidUntil      int64  `json:"validUntil"`
	MaxTotalUses    int64  `json:"maxTotalUses,omitempty"`
	MaxUsesPerUser  int64  `json:"maxUsesPerUser,omitempty"`
	UsedCount       int64  `json:"usedCount,omitempty"`
	Status          int64  `json:"status,omitempty"`
}

type SaveReq struct {
	Coupon Coupon `json:"coupon"`
}

type IDReq struct {
	ID int64 `json:"id"`
}

type ListReq struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type ListResp struct {
	Total   int64    `json:"total"`
	Coupons []Coupon `json:"coupons"`
}
