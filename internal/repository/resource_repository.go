package repository

import (
	"strings"

	"pahamkode_backend/internal/model"

	"gorm.io/gorm"
)

type ResourceRepository struct {
	DB *gorm.DB
}

func NewResourceRepository(db *gorm.DB) *ResourceRepository {
	return &ResourceRepository{DB: db}
}

func (r *ResourceRepository) Create(res *model.LearningResource) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(res).Error; err != nil {
			return err
		}
		return syncResourceTopics(tx, res)
	})
}

func (r *ResourceRepository) Update(res *model.LearningResource) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(res).Error; err != nil {
			return err
		}
		if err := tx.Where("resource_id = ?", res.ID).
			Delete(&model.ResourceTopic{}).Error; err != nil {
			return err
		}
		return syncResourceTopics(tx, res)
	})
}

func syncResourceTopics(tx *gorm.DB, res *model.LearningResource) error {
	seen := make(map[string]bool, len(res.TopikTerkait))
	for _, topik := range res.TopikTerkait {
		topik = strings.TrimSpace(topik)
		if topik == "" || seen[topik] {
			continue
		}
		seen[topik] = true
		if err := tx.Create(&model.ResourceTopic{ResourceID: res.ID, Topik: topik}).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *ResourceRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("resource_id = ?", id).
			Delete(&model.ResourceTopic{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.LearningResource{}, "id = ?", id).Error
	})
}

func (r *ResourceRepository) FindByID(id string) (*model.LearningResource, error) {
	var res model.LearningResource
	if err := r.DB.First(&res, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ResourceRepository) FindAll(page, limit int) ([]model.LearningResource, int64, error) {
	var total int64
	if err := r.DB.Model(&model.LearningResource{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []model.LearningResource
	err := r.DB.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&list).Error
	return list, total, err
}

// FindByTopics mengambil sumber daya yang menyinggung minimal satu topik.
func (r *ResourceRepository) FindByTopics(topics []string, limit int) ([]model.LearningResource, error) {
	if len(topics) == 0 {
		return nil, nil
	}
	var ids []string
	err := r.DB.Model(&model.ResourceTopic{}).
		Where("topik IN ?", topics).
		Distinct("resource_id").
		Pluck("resource_id", &ids).Error
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	var list []model.LearningResource
	err = r.DB.
		Where("id IN ?", ids).
		Order("created_at DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *ResourceRepository) FindByDifficulty(level string, limit int) ([]model.LearningResource, error) {
	var list []model.LearningResource
	err := r.DB.
		Where("tingkat_kesulitan = ?", level).
		Order("created_at DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}
