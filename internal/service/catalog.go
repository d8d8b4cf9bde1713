package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"delivery-admin-api/internal/apperr"
	"delivery-admin-api/internal/dto"
	"delivery-admin-api/internal/model"
	"delivery-admin-api/internal/repository"
)

// CatalogService covers the vendor and product screens. Stock never moves
// through here; product updates cannot touch stock_quantity.
type CatalogService interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*model.Product, error)
	GetProduct(ctx context.Context, productID string) (*model.Product, error)
	ListProducts(ctx context.Context, q dto.ListQuery) ([]*model.Product, int64, error)
	UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest) (*model.Product, error)
	DeleteProduct(ctx context.Context, productID string) error

	CreateVendor(ctx context.Context, req dto.CreateVendorRequest) (*model.Vendor, error)
	ListVendors(ctx context.Context, q dto.ListQuery) ([]*model.Vendor, int64, error)
	UpdateVendor(ctx context.Context, vendorID string, req dto.CreateVendorRequest) (*model.Vendor, error)
}

type catalogServiceImpl struct {
	productRepo repository.ProductRepository
	vendorRepo  repository.VendorRepository
	log         *logrus.Logger
}

func NewCatalogService(productRepo repository.ProductRepository, vendorRepo repository.VendorRepository, log *logrus.Logger) CatalogService {
	return &catalogServiceImpl{
		productRepo: productRepo,
		vendorRepo:  vendorRepo,
		log:         log,
	}
}

func (s *catalogServiceImpl) CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*model.Product, error) {
	if req.Price.IsNegative() {
		return nil, apperr.New(apperr.KindValidation, "product price must not be negative")
	}
	if req.StockQuantity < 0 {
		return nil, apperr.New(apperr.KindValidation, "stock quantity must not be negative")
	}
	if _, err := s.vendorRepo.FindByID(ctx, req.VendorID); err != nil {
		return nil, err
	}

	product := &model.Product{
		VendorID:      req.VendorID,
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		Category:      req.Category,
		IsActive:      true,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"product_id": product.ProductID,
		"vendor_id":  product.VendorID,
	}).Info("product created")
	return product, nil
}

func (s *catalogServiceImpl) GetProduct(ctx context.Context, productID string) (*model.Product, error) {
	return s.productRepo.FindByID(ctx, productID)
}

func (s *catalogServiceImpl) ListProducts(ctx context.Context, q dto.ListQuery) ([]*model.Product, int64, error) {
	return s.productRepo.List(ctx, repository.ProductFilter{
		ListOptions: repository.ListOptions{
			Search:  q.Search,
			Page:    q.Page,
			PerPage: q.PerPage,
		},
		Category: q.Category,
	})
}

func (s *catalogServiceImpl) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest) (*model.Product, error) {
	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, apperr.New(apperr.KindValidation, "product price must not be negative")
		}
		fields["price"] = *req.Price
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}
	if len(fields) == 0 {
		return s.productRepo.FindByID(ctx, productID)
	}

	if err := s.productRepo.Update(ctx, productID, fields); err != nil {
		return nil, err
	}
	return s.productRepo.FindByID(ctx, productID)
}

func (s *catalogServiceImpl) DeleteProduct(ctx context.Context, productID string) error {
	return s.productRepo.Delete(ctx, productID)
}

func (s *catalogServiceImpl) CreateVendor(ctx context.Context, req dto.CreateVendorRequest) (*model.Vendor, error) {
	vendor := &model.Vendor{
		Name:          req.Name,
		ContactNumber: req.ContactNumber,
		Email:         req.Email,
		Location:      req.Location,
	}
	if err := s.vendorRepo.Create(ctx, vendor); err != nil {
		return nil, err
	}
	return vendor, nil
}

func (s *catalogServiceImpl) ListVendors(ctx context.Context, q dto.ListQuery) ([]*model.Vendor, int64, error) {
	return s.vendorRepo.List(ctx, repository.ListOptions{
		Search:  q.Search,
		Page:    q.Page,
		PerPage: q.PerPage,
	})
}

func (s *catalogServiceImpl) UpdateVendor(ctx context.Context, vendorID string, req dto.CreateVendorRequest) (*model.Vendor, error) {
	err := s.vendorRepo.Update(ctx, vendorID, map[string]interface{}{
		"name":           req.Name,
		"contact_number": req.ContactNumber,
		"email":          req.Email,
		"location":       req.Location,
	})
	if err != nil {
		return nil, err
	}
	return s.vendorRepo.FindByID(ctx, vendorID)
}
