package service

import (
	"fmt"
	"strings"

	"github.com/bangmod-market/internal/models"
	"github.com/bangmod-market/internal/repository"
)

// BrandInput 品牌写入参数
type BrandInput struct {
	Name            string
	WebsiteURL      string
	CountryOfOrigin string
	IsActive        *bool
}

// BrandDetail 品牌及其商品数
type BrandDetail struct {
	Brand         *models.Brand
	SaleItemCount int64
}

// BrandService 品牌管理
type BrandService struct {
	repo repository.BrandRepository
}

// NewBrandService 创建品牌服务
func NewBrandService(repo repository.BrandRepository) *BrandService {
	return &BrandService{repo: repo}
}

// List 全部品牌
func (s *BrandService) List() ([]models.Brand, error) {
	return s.repo.List()
}

// Get 获取品牌及商品数
func (s *BrandService) Get(id uint) (*BrandDetail, error) {
	brand, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, ErrBrandNotFound
	}
	count, err := s.repo.CountSaleItems(id)
	if err != nil {
		return nil, err
	}
	return &BrandDetail{Brand: brand, SaleItemCount: count}, nil
}

// Create 创建品牌，启用状态默认为 true
func (s *BrandService) Create(input BrandInput) (*models.Brand, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrBrandNameRequired
	}
	exists, err := s.repo.ExistsByName(name, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrBrandExists
	}
	brand := &models.Brand{
		Name:            &name,
		WebsiteURL:      input.WebsiteURL,
		CountryOfOrigin: input.CountryOfOrigin,
		IsActive:        true,
	}
	if input.IsActive != nil {
		brand.IsActive = *input.IsActive
	}
	if err := s.repo.Create(brand); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConstraintViolation, err)
	}
	return brand, nil
}

// Update 更新品牌，重名校验排除自身
func (s *BrandService) Update(id uint, input BrandInput) (*models.Brand, error) {
	brand, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, ErrBrandNotFound
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrBrandNameRequired
	}
	exists, err := s.repo.ExistsByName(name, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrBrandExists
	}
	brand.Name = &name
	brand.WebsiteURL = input.WebsiteURL
	brand.CountryOfOrigin = input.CountryOfOrigin
	if input.IsActive != nil {
		brand.IsActive = *input.IsActive
	}
	if err := s.repo.Update(brand); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConstraintViolation, err)
	}
	return brand, nil
}

// Delete 删除品牌，品牌下有商品时拒绝
func (s *BrandService) Delete(id uint) error {
	brand, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if brand == nil {
		return ErrBrandNotFound
	}
	count, err := s.repo.CountSaleItems(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrBrandHasSaleItem
	}
	return s.repo.Delete(id)
}
