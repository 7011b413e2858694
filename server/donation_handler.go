package server

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	errs "github.com/jeevanprakash/donatex/errors"
	"github.com/jeevanprakash/donatex/models"
	"github.com/jeevanprakash/donatex/server/response"
	"github.com/shopspring/decimal"
)

const DefaultHistoryLimit = 50

// respondWithError maps domain errors onto their HTTP status; anything
// untyped becomes a 500 without leaking internals.
func respondWithError(c *gin.Context, err error) {
	var e *errs.Error
	if errs.As(err, &e) {
		response.JSON(c, "", e.Status, nil, e)
		return
	}
	log.Printf("unexpected error: %v", err)
	response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
}

func parseUintParam(c *gin.Context, name string) (uint, error) {
	value, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, errs.New("invalid "+name, http.StatusBadRequest)
	}
	return uint(value), nil
}

// parseDateQuery accepts RFC3339 timestamps or bare dates.
func parseDateQuery(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, errs.New("invalid date, use RFC3339 or YYYY-MM-DD", http.StatusBadRequest)
	}
	return &t, nil
}

func (s *Server) handleDonationPay() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := GetUserFromContext(c)
		if err != nil {
			respondWithError(c, err)
			return
		}

		postID, err := parseUintParam(c, "post_id")
		if err != nil {
			respondWithError(c, err)
			return
		}

		amount, err := decimal.NewFromString(c.PostForm("donation_amount"))
		if err != nil || !amount.IsPositive() {
			respondWithError(c, errs.New("donation_amount must be a positive number", http.StatusBadRequest))
			return
		}

		panNumber := c.PostForm("pan_number")
		paymentMethod := models.PaymentMethod(c.PostForm("payment_method"))

		panDocument, err := c.FormFile("pan_document")
		if err != nil {
			respondWithError(c, errs.New("pan_document is required", http.StatusBadRequest))
			return
		}

		donation, err := s.DonationService.SubmitDonation(user, postID, amount, paymentMethod, panNumber, panDocument)
		if err != nil {
			respondWithError(c, err)
			return
		}

		response.JSON(c, "Donation successful", http.StatusCreated, gin.H{
			"order_id":       donation.OrderID,
			"transaction_id": donation.TransactionID,
			"donation":       donation,
		}, nil)
	}
}

func (s *Server) handleDonationHistory() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := GetUserFromContext(c)
		if err != nil {
			respondWithError(c, err)
			return
		}

		filter := models.DonationHistoryFilter{
			PaymentStatus: c.Query("payment_status"),
			PaymentMethod: c.Query("payment_method"),
			Limit:         DefaultHistoryLimit,
		}

		if filter.StartDate, err = parseDateQuery(c.Query("start_date")); err != nil {
			respondWithError(c, err)
			return
		}
		if filter.EndDate, err = parseDateQuery(c.Query("end_date")); err != nil {
			respondWithError(c, err)
			return
		}

		if raw := c.Query("min_amount"); raw != "" {
			min, err := decimal.NewFromString(raw)
			if err != nil {
				respondWithError(c, errs.New("invalid min_amount", http.StatusBadRequest))
				return
			}
			filter.MinAmount = &min
		}
		if raw := c.Query("max_amount"); raw != "" {
			max, err := decimal.NewFromString(raw)
			if err != nil {
				respondWithError(c, errs.New("invalid max_amount", http.StatusBadRequest))
				return
			}
			filter.MaxAmount = &max
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

		donations, err := s.DonationService.GetDonationHistory(user.ID, filter)
		if err != nil {
			respondWithError(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, donations, nil)
	}
}

func (s *Server) handleDonationBill() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := GetUserFromContext(c)
		if err != nil {
			respondWithError(c, err)
			return
		}

		donationID, err := parseUintParam(c, "donation_id")
		if err != nil {
			respondWithError(c, err)
			return
		}

		bill, err := s.DonationService.GetDonationBill(user.ID, donationID)
		if err != nil {
			respondWithError(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, bill, nil)
	}
}

func (s *Server) handleToggleSaved() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := GetUserFromContext(c)
		if err != nil {
			respondWithError(c, err)
			return
		}

		donationID, err := strconv.ParseUint(c.PostForm("donation_id"), 10, 64)
		if err != nil {
			respondWithError(c, errs.New("invalid donation_id", http.StatusBadRequest))
			return
		}

		saved, err := s.DonationService.ToggleSaved(user.ID, uint(donationID), c.PostForm("action"))
		if err != nil {
			respondWithError(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, gin.H{"donation_id": donationID, "saved": saved}, nil)
	}
}

func (s *Server) handleGetDonationTypes() gin.HandlerFunc {
	return func(c *gin.Context) {
		types, err := s.DonationService.GetDonationTypes()
		if err != nil {
			respondWithError(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, types, nil)
	}
}
