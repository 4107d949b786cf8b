package services

import (
	"github.com/Kentemie/Nimbus/internal/models"
	"github.com/Kentemie/Nimbus/internal/repositories"
	"github.com/Kentemie/Nimbus/internal/services/dto"
	"github.com/Kentemie/Nimbus/pkg/apperrors"
)

type ProductService interface {
	GetByID(id uint) (*models.Product, error)
	GetAll() ([]models.Product, error)
	Create(req *dto.ProductCreate) (*models.Product, error)
	Update(id uint, req *dto.ProductUpdate) (*models.Product, error)
	Delete(id uint) error
}

type ProductServiceImpl struct {
	productRepo repositories.ProductRepository
}

func NewProductService(productRepo repositories.ProductRepository) ProductService {
	return &ProductServiceImpl{productRepo: productRepo}
}

func (s *ProductServiceImpl) GetByID(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProductNotFound) {
			return nil, apperrors.ErrRecordNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return product, nil
}

func (s *ProductServiceImpl) GetAll() ([]models.Product, error) {
	products, err := s.productRepo.GetAll()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return products, nil
}

func (s *ProductServiceImpl) Create(req *dto.ProductCreate) (*models.Product, error) {
	product := &models.Product{
		Name:  req.Name,
		Price: req.Price,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return product, nil
}

func (s *ProductServiceImpl) Update(id uint, req *dto.ProductUpdate) (*models.Product, error) {
	product, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}

	// Пустой патч - валидный запрос, менять нечего
	if len(updates) == 0 {
		return product, nil
	}

	updated, err := s.productRepo.Update(product, updates)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProductNotFound) {
			return nil, apperrors.ErrRecordNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return updated, nil
}

func (s *ProductServiceImpl) Delete(id uint) error {
	if err := s.productRepo.Delete(id); err != nil {
		if apperrors.Is(err, repositories.ErrProductNotFound) {
			return apperrors.ErrRecordNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}
