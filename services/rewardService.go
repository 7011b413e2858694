package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/jeevanprakash/donatex/config"
	"github.com/jeevanprakash/donatex/db"
	"github.com/jeevanprakash/donatex/models"
	"github.com/redis/go-redis/v9"
)

type RewardService interface {
	AccruePoints(userID uint, actionName string)
	GetRewardHistory(userID uint, filter models.RewardHistoryFilter) ([]models.RewardHistory, int, int, error)
	GetBadgeList() ([]models.PointsBadge, error)
	GetPointsActions() ([]models.PointsActionType, error)
}

type rewardService struct {
	Config      *config.Config
	rewardRepo  db.RewardRepository
	redisClient *redis.Client
}

const actionTypeCacheTTL = 10 * time.Minute

func NewRewardService(rewardRepo db.RewardRepository, redisClient *redis.Client, conf *config.Config) RewardService {
	return &rewardService{
		Config:      conf,
		rewardRepo:  rewardRepo,
		redisClient: redisClient,
	}
}

// lookupActionType reads the action type through the redis cache. The table
// is reference data consulted on every accrual, so a short TTL is plenty.
func (s *rewardService) lookupActionType(actionName string) (*models.PointsActionType, error) {
	cacheKey := "points:action:" + actionName

	if s.redisClient != nil {
		cached, err := s.redisClient.Get(context.Background(), cacheKey).Result()
		if err == nil {
			var actionType models.PointsActionType
			if err := json.Unmarshal([]byte(cached), &actionType); err == nil {
				return &actionType, nil
			}
		}
	}

	actionType, err := s.rewardRepo.GetActionTypeByName(actionName)
	if err != nil {
		return nil, err
	}
	if actionType == nil {
		return nil, nil
	}

	if s.redisClient != nil {
		if payload, err := json.Marshal(actionType); err == nil {
			if err := s.redisClient.Set(context.Background(), cacheKey, payload, actionTypeCacheTTL).Err(); err != nil {
				log.Printf("failed to cache action type %q: %v", actionName, err)
			}
		}
	}
	return actionType, nil
}

// AccruePoints appends a reward history entry for the named action. It never
// reports failure to the caller: a missing action type is a no-op and any
// internal error is logged and swallowed, so the parent donation stands.
func (s *rewardService) AccruePoints(userID uint, actionName string) {
	actionType, err := s.lookupActionType(actionName)
	if err != nil {
		log.Printf("reward accrual skipped for user %d: %v", userID, err)
		return
	}
	if actionType == nil {
		log.Printf("reward accrual skipped: action type %q not configured", actionName)
		return
	}

	entry := &models.RewardHistory{
		UserID:       userID,
		ActionTypeID: actionType.ID,
		Points:       actionType.DefaultPoints,
		Timestamp:    time.Now(),
	}
	if err := s.rewardRepo.SaveRewardHistory(entry); err != nil {
		log.Printf("failed to save reward history for user %d: %v", userID, err)
	}
}

func (s *rewardService) GetRewardHistory(userID uint, filter models.RewardHistoryFilter) ([]models.RewardHistory, int, int, error) {
	totalPoints, err := s.rewardRepo.SumPointsByUserID(userID)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("error getting total points: %w", err)
	}

	filteredTotal, err := s.rewardRepo.SumPointsByUserIDFiltered(userID, filter)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("error getting filtered total points: %w", err)
	}

	history, err := s.rewardRepo.GetRewardHistory(userID, filter)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("error getting reward history: %w", err)
	}

	return history, totalPoints, filteredTotal, nil
}

func (s *rewardService) GetBadgeList() ([]models.PointsBadge, error) {
	badges, err := s.rewardRepo.GetAllBadges()
	if err != nil {
		return nil, fmt.Errorf("error getting badge list: %w", err)
	}
	return badges, nil
}

func (s *rewardService) GetPointsActions() ([]models.PointsActionType, error) {
	actions, err := s.rewardRepo.GetAllActionTypes()
	if err != nil {
		return nil, fmt.Errorf("error getting points actions: %w", err)
	}
	return actions, nil
}
