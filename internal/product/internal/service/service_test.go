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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSKUSN(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name  string
		spuSN string
		color string
		size  string
		want  string
	}{
		{
			name:  "常规颜色尺码",
			spuSN: "SPU123",
			color: "Black",
			size:  "XL",
			want:  "SPU123-black-xl",
		},
		{
			name:  "含空格的属性",
			spuSN: "SPU123",
			color: "Navy Blue",
			size:  "38 EU",
			want:  "SPU123-navy-blue-38-eu",
		},
		{
			name:  "中文属性退化为十六进制截断",
			spuSN: "SPU123",
			color: "黑色",
			size:  "M",
			want:  "SPU123-e9bb91-m",
		},
		{
			name:  "空属性",
			spuSN: "SPU123",
			color: "",
			size:  "",
			want:  "SPU123-na-na",
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, SKUSN(tc.spuSN, tc.color, tc.size))
		})
	}
}

func TestSKUSNDeterministic(t *testing.T) {
	t.Parallel()
	first := SKUSN("SPU9", "Olive Green", "XXL")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, SKUSN("SPU9", "Olive Green", "XXL"))
	}
}
