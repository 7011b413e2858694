package db

import (
	errs "github.com/jeevanprakash/donatex/errors"
	"github.com/jeevanprakash/donatex/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type DonationRepository interface {
	CreateDonation(donation *models.Donation) error
	CountSuccessfulDonations(userID uint, postID uint) (int64, error)
	GetDonationHistory(userID uint, filter models.DonationHistoryFilter) ([]models.Donation, error)
	GetDonationByIDAndUser(donationID uint, userID uint) (*models.Donation, error)
	SetSavedFlag(donationID uint, userID uint, saved bool) error
}

type donationRepo struct {
	DB *gorm.DB
}

func NewDonationRepo(db *GormDB) DonationRepository {
	return &donationRepo{db.DB}
}

// CreateDonation commits the mandatory portion of a donation in one
// transaction: the conditional post-total update and the donation row. When
// the cap check fails inside the transaction nothing is written and
// ErrTargetExceeded comes back.
func (r *donationRepo) CreateDonation(donation *models.Donation) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		ok, err := applyDonationToPost(tx, donation.NgoPostID, donation.Amount)
		if err != nil {
			return errors.Wrap(err, "could not update post received total")
		}
		if !ok {
			return errs.ErrTargetExceeded
		}
		if err := tx.Create(donation).Error; err != nil {
			return errors.Wrap(err, "could not create donation")
		}
		return nil
	})
}

func (r *donationRepo) CountSuccessfulDonations(userID uint, postID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&models.Donation{}).
		Where("user_id = ? AND ngopost_id = ? AND payment_status = ?", userID, postID, models.PaymentStatusSuccess).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "could not count donations")
	}
	return count, nil
}

func (r *donationRepo) GetDonationHistory(userID uint, filter models.DonationHistoryFilter) ([]models.Donation, error) {
	query := r.DB.Model(&models.Donation{}).Where("user_id = ?", userID)

	if filter.PaymentStatus != "" {
		query = query.Where("payment_status ILIKE ?", "%"+filter.PaymentStatus+"%")
	}
	if filter.PaymentMethod != "" {
		query = query.Where("payment_method ILIKE ?", "%"+filter.PaymentMethod+"%")
	}
	if filter.StartDate != nil {
		query = query.Where("payment_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("payment_date <= ?", *filter.EndDate)
	}
	if filter.MinAmount != nil {
		query = query.Where("amount >= ?", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		query = query.Where("amount <= ?", *filter.MaxAmount)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	var donations []models.Donation
	err := query.Order("payment_date DESC").
		Offset(filter.Offset).
		Limit(limit).
		Find(&donations).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not fetch donation history")
	}
	return donations, nil
}

func (r *donationRepo) GetDonationByIDAndUser(donationID uint, userID uint) (*models.Donation, error) {
	var donation models.Donation
	err := r.DB.Preload("User").Preload("NgoPost").
		Where("id = ? AND user_id = ?", donationID, userID).
		First(&donation).Error
	if err != nil {
		return nil, err
	}
	return &donation, nil
}

func (r *donationRepo) SetSavedFlag(donationID uint, userID uint, saved bool) error {
	result := r.DB.Model(&models.Donation{}).
		Where("id = ? AND user_id = ?", donationID, userID).
		Update("saved", saved)
	if result.Error != nil {
		return errors.Wrap(result.Error, "could not update saved flag")
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
