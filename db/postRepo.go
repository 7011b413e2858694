package db

import (
	"github.com/jeevanprakash/donatex/models"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DonationPostRepository interface {
	CreatePost(post *models.DonationPost) error
	GetPostByID(postID uint) (*models.DonationPost, error)
	GetActiveDonationTypes() ([]models.DonationType, error)
}

type donationPostRepo struct {
	DB *gorm.DB
}

func NewDonationPostRepo(db *GormDB) DonationPostRepository {
	return &donationPostRepo{db.DB}
}

func (r *donationPostRepo) CreatePost(post *models.DonationPost) error {
	if err := r.DB.Create(post).Error; err != nil {
		return errors.Wrap(err, "could not create donation post")
	}
	return nil
}

func (r *donationPostRepo) GetPostByID(postID uint) (*models.DonationPost, error) {
	var post models.DonationPost
	if err := r.DB.First(&post, postID).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *donationPostRepo) GetActiveDonationTypes() ([]models.DonationType, error) {
	var types []models.DonationType
	if err := r.DB.Where("is_active = ?", true).Order("name asc").Find(&types).Error; err != nil {
		return nil, errors.Wrap(err, "could not list donation types")
	}
	return types, nil
}

// applyDonationToPost bumps the post's running total inside tx, but only when
// the target cap still holds. Returns false when the conditional update
// matched no row, i.e. the donation would overshoot the target. Doing the
// check and the increment in one statement keeps concurrent donations from
// racing past the cap.
func applyDonationToPost(tx *gorm.DB, postID uint, amount decimal.Decimal) (bool, error) {
	result := tx.Model(&models.DonationPost{}).
		Where("id = ? AND received_amount + ? <= target_amount", postID, amount).
		Update("received_amount", gorm.Expr("received_amount + ?", amount))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
