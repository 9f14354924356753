package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/you/accountsvc/domain"
)

// AccountRepositoryImpl implements domain.AccountStore using GORM
type AccountRepositoryImpl struct {
	db *gorm.DB
}

// DBAccount represents the database model for Account (with GORM tags)
type DBAccount struct {
	ID              string     `gorm:"primaryKey;size:36"`
	Name            string     `gorm:"size:255"`
	Email           string     `gorm:"uniqueIndex;size:255"`
	PasswordHash    string     `gorm:"column:password"`
	Role            string     `gorm:"index;size:64"`
	IsEmailVerified bool       `gorm:"index"`
	InviteStatus    string     `gorm:"size:32"`
	OTPCode         string     `gorm:"column:otp_code;size:8"`
	OTPExpiresAt    *time.Time `gorm:"column:otp_expires_at"`
	BusinessID      string     `gorm:"index;size:36"`
	CreatedAt       time.Time  `gorm:"index"`
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBAccount) TableName() string {
	return "accounts"
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) domain.AccountStore {
	return &AccountRepositoryImpl{db: db}
}

// FindByEmail implements domain.AccountStore. Absence is (nil, nil).
func (r *AccountRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var dbAccount DBAccount
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&dbAccount).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.dbToDomain(&dbAccount), nil
}

// FindByID implements domain.AccountStore. Absence is (nil, nil).
func (r *AccountRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	var dbAccount DBAccount
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbAccount).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.dbToDomain(&dbAccount), nil
}

// CreateAccountAndBusiness implements domain.AccountStore. The business and
// its owner account are created in a single transaction.
func (r *AccountRepositoryImpl) CreateAccountAndBusiness(ctx context.Context, account *domain.Account, businessName string) (*domain.Account, error) {
	dbAccount := r.domainToDB(account)
	dbAccount.ID = uuid.NewString()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbBusiness := &DBBusiness{
			ID:   uuid.NewString(),
			Name: businessName,
		}
		if err := tx.Create(dbBusiness).Error; err != nil {
			return err
		}
		dbAccount.BusinessID = dbBusiness.ID
		return tx.Create(dbAccount).Error
	})
	if err != nil {
		return nil, err
	}

	return r.dbToDomain(dbAccount), nil
}

// UpdateAccount implements domain.AccountStore. Only the non-nil fields of
// the update are written; the refreshed record is returned.
func (r *AccountRepositoryImpl) UpdateAccount(ctx context.Context, id string, update domain.AccountUpdate) (*domain.Account, error) {
	fields := map[string]interface{}{}
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.PasswordHash != nil {
		fields["password"] = *update.PasswordHash
	}
	if update.InviteStatus != nil {
		fields["invite_status"] = string(*update.InviteStatus)
	}

	if len(fields) > 0 {
		if err := r.db.WithContext(ctx).Model(&DBAccount{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return nil, err
		}
	}

	return r.FindByID(ctx, id)
}

// MarkEmailVerified implements domain.AccountStore. The flag only ever
// transitions false to true.
func (r *AccountRepositoryImpl) MarkEmailVerified(ctx context.Context, id string) (*domain.Account, error) {
	err := r.db.WithContext(ctx).Model(&DBAccount{}).Where("id = ?", id).Update("is_email_verified", true).Error
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

// SetOTP implements domain.AccountStore. Code and expiry are always written
// together so they are both present or both absent.
func (r *AccountRepositoryImpl) SetOTP(ctx context.Context, id, code string, expiresAt time.Time) error {
	return r.db.WithContext(ctx).Model(&DBAccount{}).Where("id = ?", id).Updates(map[string]interface{}{
		"otp_code":       code,
		"otp_expires_at": expiresAt,
	}).Error
}

// domainToDB converts a domain account to the database model
func (r *AccountRepositoryImpl) domainToDB(account *domain.Account) *DBAccount {
	return &DBAccount{
		ID:              account.ID,
		Name:            account.Name,
		Email:           account.Email,
		PasswordHash:    account.PasswordHash,
		Role:            account.Role,
		IsEmailVerified: account.IsEmailVerified,
		InviteStatus:    string(account.InviteStatus),
		OTPCode:         account.OTPCode,
		OTPExpiresAt:    account.OTPExpiresAt,
		BusinessID:      account.BusinessID,
	}
}

// dbToDomain converts a database account to the domain model
func (r *AccountRepositoryImpl) dbToDomain(dbAccount *DBAccount) *domain.Account {
	return &domain.Account{
		ID:              dbAccount.ID,
		Name:            dbAccount.Name,
		Email:           dbAccount.Email,
		PasswordHash:    dbAccount.PasswordHash,
		Role:            dbAccount.Role,
		IsEmailVerified: dbAccount.IsEmailVerified,
		InviteStatus:    domain.InviteStatus(dbAccount.InviteStatus),
		OTPCode:         dbAccount.OTPCode,
		OTPExpiresAt:    dbAccount.OTPExpiresAt,
		BusinessID:      dbAccount.BusinessID,
		CreatedAt:       dbAccount.CreatedAt,
		UpdatedAt:       dbAccount.UpdatedAt,
	}
}
