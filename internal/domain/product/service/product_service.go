package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/chadandhabale/Ecommerce-Microservices/internal/domain/product/model"
	"github.com/chadandhabale/Ecommerce-Microservices/internal/domain/product/repository"
	"github.com/chadandhabale/Ecommerce-Microservices/pkg/apperr"
)

type ProductService interface {
	Add(name, description string, price decimal.Decimal, category string) (*model.Product, error)
	GetByID(id uint) (*model.Product, error)
	GetAll() ([]model.Product, error)
	GetByCategory(category string) ([]model.Product, error)
	Search(keyword string) ([]model.Product, error)
	Update(id uint, name, description string, price decimal.Decimal, category string) (*model.Product, error)
	Delete(id uint) error
}

type productService struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) ProductService {
	return &productService{repo: repo}
}

func (s *productService) Add(name, description string, price decimal.Decimal, category string) (*model.Product, error) {
	if price.IsNegative() || price.IsZero() {
		return nil, fmt.Errorf("product price must be positive: %w", apperr.ErrValidation)
	}

	product := &model.Product{
		Name:        name,
		Description: description,
		Price:       price,
		Category:    category,
	}
	if err := s.repo.Create(product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

func (s *productService) GetByID(id uint) (*model.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product not found with ID %d: %w", id, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	return product, nil
}

func (s *productService) GetAll() ([]model.Product, error) {
	return s.repo.GetAll()
}

func (s *productService) GetByCategory(category string) ([]model.Product, error) {
	return s.repo.GetByCategory(category)
}

func (s *productService) Search(keyword string) ([]model.Product, error) {
	return s.repo.Search(keyword)
}

func (s *productService) Update(id uint, name, description string, price decimal.Decimal, category string) (*model.Product, error) {
	product, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	product.Name = name
	product.Description = description
	product.Price = price
	product.Category = category
	if err := s.repo.Update(product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

func (s *productService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}
