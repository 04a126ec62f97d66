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
	"testing"

	"github.com/ecodeclub/emall/internal/user/internal/domain"
	"github.com/ecodeclub/emall/internal/user/internal/event"
	"github.com/ecodeclub/emall/internal/user/internal/repository"
	"github.com/ecodeclub/mq-api/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepository struct {
	repository.UserRepository
	nextID int64
	users  map[string]domain.User
}

func (f *fakeUserRepository) Create(_ context.Context, u domain.User) (int64, error) {
	if _, ok := f.users[u.Email]; ok {
		return 0, repository.ErrUserDuplicate
	}
	f.nextID++
	u.ID = f.nextID
	f.users[u.Email] = u
	return u.ID, nil
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string) (domain.User, error) {
	u, ok := f.users[email]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func newTestService(t *testing.T) (UserService, *fakeUserRepository) {
	t.Helper()
	repo := &fakeUserRepository{users: map[string]domain.User{}}
	producer, err := event.NewRegistrationEventProducer(memory.NewMQ())
	require.NoError(t, err)
	return NewUserService(repo, producer), repo
}

func TestUserServiceRegister(t *testing.T) {
	t.Parallel()
	svc, repo := newTestService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "tom@example.com", "p@ssw0rd123")
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, "tom", u.Nickname)
	assert.NotEmpty(t, u.SN)
	assert.Empty(t, u.Password)

	// 落库的是bcrypt哈希而不是明文
	stored := repo.users["tom@example.com"]
	assert.NotEqual(t, "p@ssw0rd123", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("p@ssw0rd123")))

	_, err = svc.Register(ctx, "tom@example.com", "p@ssw0rd123")
	assert.ErrorIs(t, err, ErrUserDuplicate)
}

func TestUserServiceLogin(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, "tom@example.com", "p@ssw0rd123")
	require.NoError(t, err)

	testCases := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "登录成功",
			email:    "tom@example.com",
			password: "p@ssw0rd123",
		},
		{
			name:     "密码错误",
			email:    "tom@example.com",
			password: "wrong-password",
			wantErr:  ErrInvalidUserOrPassword,
		},
		{
			name:     "邮箱不存在",
			email:    "nobody@example.com",
			password: "p@ssw0rd123",
			wantErr:  ErrInvalidUserOrPassword,
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			u, err := svc.Login(ctx, tc.email, tc.password)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.email, u.Email)
			assert.Empty(t, u.Password)
		})
	}
}
