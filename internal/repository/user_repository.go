package repository

import (
	"time"

	"pahamkode_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id string) (*model.User, error) {
	var user model.User
	if err := r.DB.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.DB.First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) CountByRole(role model.UserRole) (int64, error) {
	var count int64
	err := r.DB.Model(&model.User{}).
		Where("role = ?", role).
		Count(&count).Error
	return count, err
}

func (r *UserRepository) CountByRoleSince(role model.UserRole, since time.Time) (int64, error) {
	var count int64
	err := r.DB.Model(&model.User{}).
		Where("role = ? AND created_at >= ?", role, since).
		Count(&count).Error
	return count, err
}

// FindMahasiswa mengembalikan daftar mahasiswa dengan paginasi dan pencarian
// (email atau nama, case-insensitive).
func (r *UserRepository) FindMahasiswa(page, limit int, search string) ([]model.User, int64, error) {
	q := r.DB.Model(&model.User{}).Where("role = ?", model.RoleMahasiswa)
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("LOWER(email) LIKE LOWER(?) OR LOWER(nama) LIKE LOWER(?)", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	err := q.
		Order("created_at DESC, id ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error
	return users, total, err
}

func (r *UserRepository) UpdateStatus(id string, status model.UserStatus) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *UserRepository) UpdateLastLogin(id string, at time.Time) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", id).
		Update("last_login", at).Error
}

func (r *UserRepository) BulkUpdateStatus(ids []string, status model.UserStatus) (int64, error) {
	res := r.DB.Model(&model.User{}).
		Where("id IN ?", ids).
		Update("status", status)
	return res.RowsAffected, res.Error
}

func (r *UserRepository) BulkDelete(ids []string) (int64, error) {
	res := r.DB.Where("id IN ?", ids).Delete(&model.User{})
	return res.RowsAffected, res.Error
}
