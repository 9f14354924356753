package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/you/accountsvc/domain"
)

// BusinessRepositoryImpl implements domain.BusinessStore using GORM
type BusinessRepositoryImpl struct {
	db *gorm.DB
}

// DBBusiness represents the database model for Business (with GORM tags)
type DBBusiness struct {
	ID        string    `gorm:"primaryKey;size:36"`
	Name      string    `gorm:"uniqueIndex;size:255"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBBusiness) TableName() string {
	return "businesses"
}

// NewBusinessRepository creates a new business repository
func NewBusinessRepository(db *gorm.DB) domain.BusinessStore {
	return &BusinessRepositoryImpl{db: db}
}

// FindByName implements domain.BusinessStore. Absence is (nil, nil).
func (r *BusinessRepositoryImpl) FindByName(ctx context.Context, name string) (*domain.Business, error) {
	var dbBusiness DBBusiness
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&dbBusiness).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.dbToDomain(&dbBusiness), nil
}

// FindByID implements domain.BusinessStore. Absence is (nil, nil).
func (r *BusinessRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.Business, error) {
	var dbBusiness DBBusiness
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbBusiness).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.dbToDomain(&dbBusiness), nil
}

// FindByIDs implements domain.BusinessStore
func (r *BusinessRepositoryImpl) FindByIDs(ctx context.Context, ids []string) ([]domain.Business, error) {
	var dbBusinesses []DBBusiness
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&dbBusinesses).Error; err != nil {
		return nil, err
	}

	businesses := make([]domain.Business, 0, len(dbBusinesses))
	for i := range dbBusinesses {
		businesses = append(businesses, *r.dbToDomain(&dbBusinesses[i]))
	}
	return businesses, nil
}

// dbToDomain converts a database business to the domain model
func (r *BusinessRepositoryImpl) dbToDomain(dbBusiness *DBBusiness) *domain.Business {
	return &domain.Business{
		ID:        dbBusiness.ID,
		Name:      dbBusiness.Name,
		CreatedAt: dbBusiness.CreatedAt,
		UpdatedAt: dbBusiness.UpdatedAt,
	}
}
