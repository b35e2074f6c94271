package pg

import (
	"errors"

	"gorm.io/gorm"

	"tradex-hertz/biz/model"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// CreateUser 插入用户
func (r *UserRepo) CreateUser(user *model.User) error {
	return r.db.Create(user).Error
}

// GetUserByID 查询单个用户
func (r *UserRepo) GetUserByID(id uint) (*model.User, error) {
	var user model.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail 按邮箱查询用户，不存在返回 nil
func (r *UserRepo) GetUserByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers 查询用户列表
func (r *UserRepo) ListUsers(role string, limit, offset int) ([]model.User, error) {
	var users []model.User
	db := r.db.Model(&model.User{})
	if role != "" {
		db = db.Where("role = ?", role)
	}
	err := db.Order("id").Limit(limit).Offset(offset).Find(&users).Error
	return users, err
}

// UpdateUserRole 更新用户角色
func (r *UserRepo) UpdateUserRole(id uint, role string) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Update("role", role).Error
}
