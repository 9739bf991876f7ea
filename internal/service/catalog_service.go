package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bangmod-market/internal/cache"
	"github.com/bangmod-market/internal/config"
	"github.com/bangmod-market/internal/constants"
	"github.com/bangmod-market/internal/logger"
	"github.com/bangmod-market/internal/models"
	"github.com/bangmod-market/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StorageSelection 存储容量筛选，Values 为空且 IncludeNull 为 false 时只匹配未指定容量
type StorageSelection struct {
	Values      []int
	IncludeNull bool
}

// CatalogQuery 商品目录查询参数
type CatalogQuery struct {
	Page          int
	Size          int
	SortField     string
	SortDirection string
	BrandNames    []string
	Storages      *StorageSelection
	PriceLower    *int
	PriceUpper    *int
	Keyword       string
}

// CatalogPage 商品分页结果
type CatalogPage struct {
	Items []models.SaleItem
	Total int64
	Page  int
	Size  int
	Sort  string
}

// SaleItemInput 商品写入参数
type SaleItemInput struct {
	BrandID        uint
	Model          string
	Description    string
	Price          *int
	RAMGB          *int
	ScreenSizeInch *decimal.Decimal
	StorageGB      *int
	Color          *string
	Quantity       *int
}

// ImageOperation 商品图片变更，Status 为 ONLINE / MOVE / NEW / DELETE
type ImageOperation struct {
	Status   string
	FileName string
	Order    int
	File     *UploadFile
}

// CatalogService 商品目录查询与商品维护
type CatalogService struct {
	cfg       *config.Config
	items     repository.SaleItemRepository
	images    repository.SaleItemImageRepository
	brands    repository.BrandRepository
	users     repository.UserRepository
	storage   FileStorage
	storageTT time.Duration
}

// NewCatalogService 创建商品目录服务
func NewCatalogService(cfg *config.Config, items repository.SaleItemRepository, images repository.SaleItemImageRepository, brands repository.BrandRepository, users repository.UserRepository, storage FileStorage) *CatalogService {
	return &CatalogService{
		cfg:       cfg,
		items:     items,
		images:    images,
		brands:    brands,
		users:     users,
		storage:   storage,
		storageTT: time.Duration(cfg.Catalog.StorageCacheTTLSeconds) * time.Second,
	}
}

// BuildCatalogFilters 将查询参数转换为 AND 组合的筛选条件
func BuildCatalogFilters(q CatalogQuery) []repository.CatalogFilter {
	filters := make([]repository.CatalogFilter, 0, 4)
	if len(q.BrandNames) > 0 {
		filters = append(filters, repository.BrandNamesFilter(q.BrandNames))
	}
	if q.Storages != nil {
		filters = append(filters, repository.StoragesFilter(q.Storages.Values, q.Storages.IncludeNull))
	}
	if q.PriceLower != nil || q.PriceUpper != nil {
		filters = append(filters, repository.PriceRangeFilter(q.PriceLower, q.PriceUpper))
	}
	if keyword := strings.TrimSpace(q.Keyword); keyword != "" {
		filters = append(filters, repository.KeywordFilter(keyword))
	}
	return filters
}

// normalizePageRequest 页码非负，页大小非正时取默认值并受上限约束
func (s *CatalogService) normalizePageRequest(q CatalogQuery) repository.PageRequest {
	return normalizePageRequest(q.Page, q.Size, q.SortField, q.SortDirection, s.cfg.Catalog, repository.ResolveSaleItemSortField)
}

func normalizePageRequest(page, size int, sortField, sortDirection string, cfg config.CatalogConfig, resolve func(string) string) repository.PageRequest {
	if page < 0 {
		page = 0
	}
	defaultSize := cfg.DefaultPageSize
	if defaultSize <= 0 {
		defaultSize = constants.DefaultCatalogPageSize
	}
	if size <= 0 {
		size = defaultSize
	}
	if cfg.MaxPageSize > 0 && size > cfg.MaxPageSize {
		size = cfg.MaxPageSize
	}
	return repository.PageRequest{
		Page:      page,
		Size:      size,
		SortField: resolve(sortField),
		Desc:      strings.EqualFold(strings.TrimSpace(sortDirection), constants.SortDirectionDesc),
	}
}

// describeSort 回显排序规则，例如 "createdOn: ASC,id: ASC"
func describeSort(req repository.PageRequest, tieDesc bool) string {
	return fmt.Sprintf("%s: %s,id: %s", req.SortField, directionLabel(req.Desc), directionLabel(tieDesc))
}

func directionLabel(desc bool) string {
	if desc {
		return "DESC"
	}
	return "ASC"
}

// Gallery 商品目录分页查询
func (s *CatalogService) Gallery(q CatalogQuery) (*CatalogPage, error) {
	return s.page(q, BuildCatalogFilters(q))
}

// SellerItems 某卖家的商品分页，不叠加其他筛选
func (s *CatalogService) SellerItems(sellerID uint, q CatalogQuery) (*CatalogPage, error) {
	seller, err := s.users.GetByID(sellerID)
	if err != nil {
		return nil, err
	}
	if seller == nil || !seller.IsSeller() {
		return nil, ErrSellerNotFound
	}
	return s.page(q, []repository.CatalogFilter{repository.SellerFilter(sellerID)})
}

func (s *CatalogService) page(q CatalogQuery, filters []repository.CatalogFilter) (*CatalogPage, error) {
	req := s.normalizePageRequest(q)
	items, total, err := s.items.Page(repository.SaleItemPageQuery{PageRequest: req, Filters: filters})
	if err != nil {
		return nil, err
	}
	return &CatalogPage{
		Items: items,
		Total: total,
		Page:  req.Page,
		Size:  req.Size,
		Sort:  describeSort(req, false),
	}, nil
}

// ListAll 全部商品
func (s *CatalogService) ListAll() ([]models.SaleItem, error) {
	return s.items.ListAll()
}

// Get 获取商品及图片
func (s *CatalogService) Get(id uint) (*models.SaleItem, error) {
	item, err := s.items.GetWithImages(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrSaleItemNotFound
	}
	return item, nil
}

// Storages 去重的存储容量列表，nil 表示未指定容量且排在最后
func (s *CatalogService) Storages(ctx context.Context) ([]*int, error) {
	if cached, hit, err := cache.GetStorageList(ctx); err == nil && hit {
		return cached, nil
	}
	values, err := s.items.DistinctStorages()
	if err != nil {
		return nil, err
	}
	if err := cache.SetStorageList(ctx, values, s.storageTT); err != nil {
		logger.Warnw("catalog_storage_cache_set_failed", "error", err)
	}
	return values, nil
}

func (s *CatalogService) invalidateStorages() {
	if err := cache.InvalidateStorageList(context.Background()); err != nil {
		logger.Warnw("catalog_storage_cache_invalidate_failed", "error", err)
	}
}

func (s *CatalogService) applyInput(item *models.SaleItem, input SaleItemInput) error {
	if input.BrandID == 0 || strings.TrimSpace(input.Model) == "" || strings.TrimSpace(input.Description) == "" ||
		input.Price == nil || *input.Price < 0 {
		return ErrInvalidSaleItem
	}
	brand, err := s.brands.GetByID(input.BrandID)
	if err != nil {
		return err
	}
	if brand == nil {
		return ErrBrandNotFound
	}
	item.BrandID = brand.ID
	item.Brand = brand
	item.Model = input.Model
	item.Description = input.Description
	item.Price = *input.Price
	item.RAMGB = input.RAMGB
	item.StorageGB = input.StorageGB
	item.Color = input.Color
	item.ScreenSizeInch = decimal.NullDecimal{}
	if input.ScreenSizeInch != nil {
		item.ScreenSizeInch = decimal.NullDecimal{Decimal: input.ScreenSizeInch.Round(2), Valid: true}
	}
	item.Quantity = constants.DefaultSaleItemStock
	if input.Quantity != nil && *input.Quantity >= 0 {
		item.Quantity = *input.Quantity
	}
	return nil
}

// Create 创建商品，sellerID 为空表示平台商品
func (s *CatalogService) Create(input SaleItemInput, sellerID *uint) (*models.SaleItem, error) {
	return s.CreateWithImages(input, sellerID, nil)
}

// CreateWithImages 创建商品并保存图片，超出上限的图片被拒绝
func (s *CatalogService) CreateWithImages(input SaleItemInput, sellerID *uint, files []UploadFile) (*models.SaleItem, error) {
	if len(files) > s.maxImages() {
		return nil, ErrImageLimitExceeded
	}
	item := &models.SaleItem{SellerID: sellerID}
	if err := s.applyInput(item, input); err != nil {
		return nil, err
	}

	err := s.items.Transaction(func(tx *gorm.DB) error {
		if err := s.items.WithTx(tx).Create(item); err != nil {
			return fmt.Errorf("%w: %w", ErrConstraintViolation, err)
		}
		imageRepo := s.images.WithTx(tx)
		for i, file := range files {
			fileName, err := s.storage.Store(constants.StorageFolderSaleItems, item.ID, file.Name, file.Size, file.Content)
			if err != nil {
				return err
			}
			if err := imageRepo.Create(&models.SaleItemImage{SaleItemID: item.ID, FileName: fileName, ImageViewOrder: i + 1}); err != nil {
				return fmt.Errorf("%w: %w", ErrConstraintViolation, err)
			}
		}
		return nil
	})
	if err != nil {
		if item.ID != 0 && len(files) > 0 {
			_ = s.storage.DeleteAll(constants.StorageFolderSaleItems, item.ID)
		}
		return nil, err
	}
	s.invalidateStorages()
	logger.Infow("catalog_sale_item_created", "sale_item_id", item.ID, "seller_id", sellerID, "images", len(files))
	return s.Get(item.ID)
}

// CreateForSeller 卖家本人上架商品
func (s *CatalogService) CreateForSeller(principalID, sellerID uint, input SaleItemInput, files []UploadFile) (*models.SaleItem, error) {
	if principalID != sellerID {
		return nil, ErrUserMismatch
	}
	seller, err := s.users.GetByID(sellerID)
	if err != nil {
		return nil, err
	}
	if seller == nil {
		return nil, ErrSellerNotFound
	}
	if !seller.IsSeller() {
		return nil, ErrNotSeller
	}
	if !seller.IsActive {
		return nil, ErrAccountNotActive
	}
	return s.CreateWithImages(input, &sellerID, files)
}

func (s *CatalogService) loadEditable(principalID, id uint) (*models.SaleItem, error) {
	item, err := s.items.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrSaleItemNotFound
	}
	if item.SellerID != nil && *item.SellerID != principalID {
		return nil, ErrUserMismatch
	}
	return item, nil
}

// Update 更新商品字段与图片，input 为空时只处理图片
func (s *CatalogService) Update(principalID, id uint, input *SaleItemInput, operations []ImageOperation) (*models.SaleItem, error) {
	item, err := s.loadEditable(principalID, id)
	if err != nil {
		return nil, err
	}
	if input != nil {
		if err := s.applyInput(item, *input); err != nil {
			return nil, err
		}
	}
	current, err := s.images.ListBySaleItem(id)
	if err != nil {
		return nil, err
	}
	plan, err := planImageOperations(current, operations, s.maxImages())
	if err != nil {
		return nil, err
	}

	var storedFiles []string
	err = s.items.Transaction(func(tx *gorm.DB) error {
		if input != nil {
			if err := s.items.WithTx(tx).Update(item); err != nil {
				return fmt.Errorf("%w: %w", ErrConstraintViolation, err)
			}
		}
		imageRepo := s.images.WithTx(tx)
		for _, image := range plan.deleted {
			if err := imageRepo.Delete(image.ID); err != nil {
				return err
			}
		}
		for _, entry := range plan.kept {
			if entry.image.ID != 0 {
				if entry.image.ImageViewOrder != entry.order {
					if err := imageRepo.UpdateOrder(entry.image.ID, entry.order); err != nil {
						return err
					}
				}
				continue
			}
			fileName, err := s.storage.Store(constants.StorageFolderSaleItems, id, entry.file.Name, entry.file.Size, entry.file.Content)
			if err != nil {
				return err
			}
			storedFiles = append(storedFiles, fileName)
			if err := imageRepo.Create(&models.SaleItemImage{SaleItemID: id, FileName: fileName, ImageViewOrder: entry.order}); err != nil {
				return fmt.Errorf("%w: %w", ErrConstraintViolation, err)
			}
		}
		return nil
	})
	if err != nil {
		for _, name := range storedFiles {
			_ = s.storage.Delete(constants.StorageFolderSaleItems, name)
		}
		return nil, err
	}
	for _, image := range plan.deleted {
		if err := s.storage.Delete(constants.StorageFolderSaleItems, image.FileName); err != nil {
			logger.Warnw("catalog_image_file_delete_failed", "sale_item_id", id, "file_name", image.FileName, "error", err)
		}
	}
	s.invalidateStorages()
	return s.Get(id)
}

// Delete 删除商品及其图片文件
func (s *CatalogService) Delete(principalID, id uint) error {
	if _, err := s.loadEditable(principalID, id); err != nil {
		return err
	}
	if err := s.items.Delete(id); err != nil {
		return err
	}
	if err := s.storage.DeleteAll(constants.StorageFolderSaleItems, id); err != nil {
		logger.Warnw("catalog_image_files_delete_failed", "sale_item_id", id, "error", err)
	}
	s.invalidateStorages()
	logger.Infow("catalog_sale_item_deleted", "sale_item_id", id)
	return nil
}

func (s *CatalogService) maxImages() int {
	if s.cfg.Upload.MaxImagesPerItem > 0 {
		return s.cfg.Upload.MaxImagesPerItem
	}
	return 4
}

type plannedImage struct {
	image models.SaleItemImage
	file  *UploadFile
	order int
}

type imagePlan struct {
	kept    []plannedImage
	deleted []models.SaleItemImage
}

// planImageOperations 计算图片变更结果，保留图片按请求顺序重排为 1..n
func planImageOperations(current []models.SaleItemImage, operations []ImageOperation, maxImages int) (*imagePlan, error) {
	byName := make(map[string]models.SaleItemImage, len(current))
	for _, image := range current {
		byName[image.FileName] = image
	}
	requested := make(map[string]int, len(current))
	deleted := make(map[string]bool)
	var added []plannedImage

	for _, op := range operations {
		status := strings.ToUpper(strings.TrimSpace(op.Status))
		name := strings.TrimSpace(op.FileName)
		switch status {
		case constants.ImageStatusOnline:
			continue
		case constants.ImageStatusMove:
			if _, ok := byName[name]; !ok || deleted[name] {
				return nil, ErrInvalidImageOperation
			}
			requested[name] = op.Order
		case constants.ImageStatusDelete:
			if _, ok := byName[name]; !ok || deleted[name] {
				return nil, ErrInvalidImageOperation
			}
			deleted[name] = true
		case constants.ImageStatusNew:
			if op.File == nil || op.File.Content == nil {
				return nil, ErrInvalidImageOperation
			}
			added = append(added, plannedImage{file: op.File, order: op.Order})
		default:
			return nil, ErrInvalidImageOperation
		}
	}

	plan := &imagePlan{}
	for _, image := range current {
		if deleted[image.FileName] {
			plan.deleted = append(plan.deleted, image)
			continue
		}
		order := image.ImageViewOrder
		if requestedOrder, ok := requested[image.FileName]; ok {
			order = requestedOrder
		}
		plan.kept = append(plan.kept, plannedImage{image: image, order: order})
	}
	plan.kept = append(plan.kept, added...)
	if len(plan.kept) > maxImages {
		return nil, ErrImageLimitExceeded
	}
	sort.SliceStable(plan.kept, func(i, j int) bool {
		return plan.kept[i].order < plan.kept[j].order
	})
	for i := range plan.kept {
		plan.kept[i].order = i + 1
	}
	return plan, nil
}
