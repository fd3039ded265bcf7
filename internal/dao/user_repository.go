package dao

import (
	"context"

	"github.com/haierkeys/markdown-note-service/internal/domain"
	"github.com/haierkeys/markdown-note-service/internal/model"
	"github.com/haierkeys/markdown-note-service/pkg/convert"
	"github.com/haierkeys/markdown-note-service/pkg/timex"
	"gorm.io/gorm"
)

// userRepository 实现 domain.UserRepository 接口
type userRepository struct {
	dao *Dao
}

var _ domain.UserRepository = (*userRepository)(nil)

// NewUserRepository 创建 UserRepository 实例
func NewUserRepository(dao *Dao) domain.UserRepository {
	return &userRepository{dao: dao}
}

// user 获取用户表，首次访问时迁移
func (r *userRepository) user(ctx context.Context) *gorm.DB {
	return r.dao.UseWithOnceFunc(func(g *gorm.DB) error {
		return model.AutoMigrate(g, "User")
	}, "user").WithContext(ctx)
}

func (r *userRepository) first(ctx context.Context, query string, args ...interface{}) (*domain.User, error) {
	var m model.User
	if err := r.user(ctx).Where(query, args...).First(&m).Error; err != nil {
		return nil, err
	}
	u := &domain.User{}
	if err := convert.StructAssign(u, &m); err != nil {
		return nil, err
	}
	return u, nil
}

// GetByUID 根据UID获取用户
func (r *userRepository) GetByUID(ctx context.Context, uid int64) (*domain.User, error) {
	return r.first(ctx, "uid = ?", uid)
}

// GetByEmail 根据邮箱获取用户
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.first(ctx, "email = ?", email)
}

// GetByUsername 根据用户名获取用户
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.first(ctx, "username = ?", username)
}

// Create 创建用户
func (r *userRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	m := &model.User{}
	if err := convert.StructAssign(m, user); err != nil {
		return nil, err
	}
	now := timex.Now()
	m.CreatedAt = now
	m.UpdatedAt = now

	if err := r.user(ctx).Create(m).Error; err != nil {
		return nil, err
	}

	out := &domain.User{}
	if err := convert.StructAssign(out, m); err != nil {
		return nil, err
	}
	return out, nil
}
