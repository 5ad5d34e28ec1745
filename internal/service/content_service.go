package service

import (
	"errors"

	"pahamkode_backend/internal/model"
	"pahamkode_backend/internal/repository"
	"pahamkode_backend/internal/util"

	"gorm.io/gorm"
)

// ContentService mengelola katalog sumber daya belajar.
type ContentService struct {
	Resources *repository.ResourceRepository
}

func NewContentService(resources *repository.ResourceRepository) *ContentService {
	return &ContentService{Resources: resources}
}

func (s *ContentService) List(page, limit int) ([]model.LearningResource, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.Resources.FindAll(page, limit)
}

func (s *ContentService) Get(id string) (*model.LearningResource, error) {
	res, err := s.Resources.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrResourceNotFound
		}
		return nil, err
	}
	return res, nil
}

func (s *ContentService) Create(res *model.LearningResource) error {
	if res.TingkatKesulitan == "" {
		res.TingkatKesulitan = model.KemahiranPemula
	}
	return s.Resources.Create(res)
}

func (s *ContentService) Update(id string, res *model.LearningResource) error {
	existing, err := s.Get(id)
	if err != nil {
		return err
	}
	res.ID = existing.ID
	res.CreatedAt = existing.CreatedAt
	return s.Resources.Update(res)
}

func (s *ContentService) Delete(id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.Resources.Delete(id)
}
