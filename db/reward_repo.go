package db

import (
	"github.com/jeevanprakash/donatex/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type RewardRepository interface {
	GetActionTypeByName(name string) (*models.PointsActionType, error)
	SaveRewardHistory(entry *models.RewardHistory) error
	GetRewardHistory(userID uint, filter models.RewardHistoryFilter) ([]models.RewardHistory, error)
	SumPointsByUserID(userID uint) (int, error)
	SumPointsByUserIDFiltered(userID uint, filter models.RewardHistoryFilter) (int, error)
	GetAllBadges() ([]models.PointsBadge, error)
	GetAllActionTypes() ([]models.PointsActionType, error)
}

type rewardRepo struct {
	DB *gorm.DB
}

func NewRewardRepo(db *GormDB) RewardRepository {
	return &rewardRepo{db.DB}
}

// GetActionTypeByName returns nil without error when the action is not
// configured; accrual treats that as a no-op.
func (r *rewardRepo) GetActionTypeByName(name string) (*models.PointsActionType, error) {
	var actionType models.PointsActionType
	err := r.DB.Where("action_type = ?", name).First(&actionType).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "could not look up action type")
	}
	return &actionType, nil
}

func (r *rewardRepo) SaveRewardHistory(entry *models.RewardHistory) error {
	if err := r.DB.Create(entry).Error; err != nil {
		return errors.Wrap(err, "could not save reward history")
	}
	return nil
}

func applyRewardFilters(query *gorm.DB, filter models.RewardHistoryFilter) *gorm.DB {
	if filter.ActionTypeID != nil {
		query = query.Where("action_type_id = ?", *filter.ActionTypeID)
	}
	if filter.StartDate != nil {
		query = query.Where("timestamp >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("timestamp <= ?", *filter.EndDate)
	}
	return query
}

func (r *rewardRepo) GetRewardHistory(userID uint, filter models.RewardHistoryFilter) ([]models.RewardHistory, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	query := r.DB.Model(&models.RewardHistory{}).Where("user_id = ?", userID)
	query = applyRewardFilters(query, filter)

	var history []models.RewardHistory
	err := query.Preload("ActionType").
		Order("timestamp DESC").
		Offset(filter.Offset).
		Limit(limit).
		Find(&history).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not fetch reward history")
	}
	return history, nil
}

func (r *rewardRepo) SumPointsByUserID(userID uint) (int, error) {
	var total int
	err := r.DB.Model(&models.RewardHistory{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(points), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, errors.Wrap(err, "could not sum reward points")
	}
	return total, nil
}

func (r *rewardRepo) SumPointsByUserIDFiltered(userID uint, filter models.RewardHistoryFilter) (int, error) {
	query := r.DB.Model(&models.RewardHistory{}).Where("user_id = ?", userID)
	query = applyRewardFilters(query, filter)

	var total int
	err := query.Select("COALESCE(SUM(points), 0)").Scan(&total).Error
	if err != nil {
		return 0, errors.Wrap(err, "could not sum filtered reward points")
	}
	return total, nil
}

func (r *rewardRepo) GetAllBadges() ([]models.PointsBadge, error) {
	var badges []models.PointsBadge
	if err := r.DB.Order("min_points ASC").Find(&badges).Error; err != nil {
		return nil, errors.Wrap(err, "could not fetch badges")
	}
	return badges, nil
}

func (r *rewardRepo) GetAllActionTypes() ([]models.PointsActionType, error) {
	var actionTypes []models.PointsActionType
	if err := r.DB.Order("action_type ASC").Find(&actionTypes).Error; err != nil {
		return nil, errors.Wrap(err, "could not fetch action types")
	}
	return actionTypes, nil
}
