package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	errs "github.com/jeevanprakash/donatex/errors"
	"github.com/jeevanprakash/donatex/models"
	"github.com/jeevanprakash/donatex/server/response"
)

func (s *Server) handleGetRewardHistory() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := GetUserFromContext(c)
		if err != nil {
			respondWithError(c, err)
			return
		}

		var filter models.RewardHistoryFilter

		if raw := c.Query("action_type_id"); raw != "" {
			id, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				respondWithError(c, errs.New("invalid action_type_id", http.StatusBadRequest))
				return
			}
			actionTypeID := uint(id)
			filter.ActionTypeID = &actionTypeID
		}

		if filter.StartDate, err = parseDateQuery(c.Query("start_date")); err != nil {
			respondWithError(c, err)
			return
		}
		if filter.EndDate, err = parseDateQuery(c.Query("end_date")); err != nil {
			respondWithError(c, err)
			return
		}

		if raw := c.Query("limit"); raw != "" {
			if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
				filter.Limit = limit
			}
		}
		if raw := c.Query("offset"); raw != "" {
			if offset, err := strconv.Atoi(raw); err == nil && offset >= 0 {
				filter.Offset = offset
			}
		}

		history, totalPoints, filteredTotal, err := s.RewardService.GetRewardHistory(user.ID, filter)
		if err != nil {
			respondWithError(c, err)
			return
		}

		response.JSON(c, "", http.StatusOK, gin.H{
			"reward_history":        history,
			"total_points":          totalPoints,
			"filtered_total_points": filteredTotal,
		}, nil)
	}
}

func (s *Server) handleGetBadgeList() gin.HandlerFunc {
	return func(c *gin.Context) {
		badges, err := s.RewardService.GetBadgeList()
		if err != nil {
			respondWithError(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, badges, nil)
	}
}

func (s *Server) handleGetPointsActions() gin.HandlerFunc {
	return func(c *gin.Context) {
		actions, err := s.RewardService.GetPointsActions()
		if err != nil {
			respondWithError(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, actions, nil)
	}
}
