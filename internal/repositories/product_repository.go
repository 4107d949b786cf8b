package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Kentemie/Nimbus/internal/models"
)

var ErrProductNotFound = errors.New("product not found")

type ProductRepository interface {
	GetByID(id uint) (*models.Product, error)
	GetAll() ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product, updates map[string]interface{}) (*models.Product, error)
	Delete(id uint) error
}

type ProductRepositoryImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &ProductRepositoryImpl{db: db}
}

func (r *ProductRepositoryImpl) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepositoryImpl) GetAll() ([]models.Product, error) {
	var products []models.Product
	err := r.db.Order("id").Find(&products).Error
	return products, err
}

func (r *ProductRepositoryImpl) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

func (r *ProductRepositoryImpl) Update(product *models.Product, updates map[string]interface{}) (*models.Product, error) {
	result := r.db.Model(product).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrProductNotFound
	}
	return r.GetByID(product.ID)
}

func (r *ProductRepositoryImpl) Delete(id uint) error {
	result := r.db.Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
