// Copyright 2025 Caseflow Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package repo

import (
	"github.com/caseflow/caseflow/internal/engine/model"
	"github.com/caseflow/caseflow/pkg/database"
)

type IUserRepository interface {
	GetUserById(userId string) (*model.User, error)
	GetUserByUsername(username string) (*model.User, error)
	ListUsers(pageNum, pageSize int) ([]model.User, error)
	CountUsers() (int64, error)
	AddUser(user *model.User) error
	UpdateUser(userId string, updates map[string]interface{}) error
	DeleteUser(userId string) error
}

type UserRepo struct {
	database.IDatabase
}

func NewUserRepo(db database.IDatabase) IUserRepository {
	return &UserRepo{IDatabase: db}
}

// GetUserById 根据用户 ID 获取用户
func (r *UserRepo) GetUserById(userId string) (*model.User, error) {
	var user model.User
	err := r.Database().Where("user_id = ?", userId).First(&user).Error
	return &user, err
}

// GetUserByUsername 根据用户名获取用户
func (r *UserRepo) GetUserByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.Database().Where("username = ?", username).First(&user).Error
	return &user, err
}

// ListUsers 分页列出用户
func (r *UserRepo) ListUsers(pageNum, pageSize int) ([]model.User, error) {
	var users []model.User
	err := r.Database().Offset((pageNum - 1) * pageSize).Limit(pageSize).
		Order("id DESC").Find(&users).Error
	return users, err
}

// CountUsers 统计用户总数
func (r *UserRepo) CountUsers() (int64, error) {
	var count int64
	err := r.Database().Model(&model.User{}).Count(&count).Error
	return count, err
}

// AddUser 新增用户
func (r *UserRepo) AddUser(user *model.User) error {
	return r.Database().Create(user).Error
}

// UpdateUser 更新用户
func (r *UserRepo) UpdateUser(userId string, updates map[string]interface{}) error {
	return r.Database().Model(&model.User{}).
		Where("user_id = ?", userId).Updates(updates).Error
}

// DeleteUser 删除用户
func (r *UserRepo) DeleteUser(userId string) error {
	return r.Database().Where("user_id = ?", userId).Delete(&model.User{}).Error
}
