package services

import (
	"log"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/jeevanprakash/donatex/config"
	"github.com/jeevanprakash/donatex/db"
	errs "github.com/jeevanprakash/donatex/errors"
	"github.com/jeevanprakash/donatex/models"
	"github.com/jeevanprakash/donatex/services/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReceiptMailer is the outbound notification collaborator. Delivery is
// best-effort everywhere it is used.
type ReceiptMailer interface {
	SendDonationReceipt(toEmail string, bill *models.DonationBill) error
}

type DonationService interface {
	SubmitDonation(user *models.User, postID uint, amount decimal.Decimal, paymentMethod models.PaymentMethod, panNumber string, panDocument *multipart.FileHeader) (*models.Donation, error)
	GetDonationHistory(userID uint, filter models.DonationHistoryFilter) ([]models.Donation, error)
	GetDonationBill(userID uint, donationID uint) (*models.DonationBill, error)
	ToggleSaved(userID uint, donationID uint, action string) (bool, error)
	GetDonationTypes() ([]models.DonationType, error)
}

type donationService struct {
	Config        *config.Config
	donationRepo  db.DonationRepository
	postRepo      db.DonationPostRepository
	rewardService RewardService
	billService   BillService
	mediaService  MediaService
	mailer        ReceiptMailer
}

func NewDonationService(
	donationRepo db.DonationRepository,
	postRepo db.DonationPostRepository,
	rewardService RewardService,
	billService BillService,
	mediaService MediaService,
	mailer ReceiptMailer,
	conf *config.Config,
) DonationService {
	return &donationService{
		Config:        conf,
		donationRepo:  donationRepo,
		postRepo:      postRepo,
		rewardService: rewardService,
		billService:   billService,
		mediaService:  mediaService,
		mailer:        mailer,
	}
}

// SubmitDonation runs the donation transaction script: validate, persist the
// donation together with the post-total update, then kick off the best-effort
// side effects. Validation happens before any mutation; the first violated
// check wins.
func (s *donationService) SubmitDonation(
	user *models.User,
	postID uint,
	amount decimal.Decimal,
	paymentMethod models.PaymentMethod,
	panNumber string,
	panDocument *multipart.FileHeader,
) (*models.Donation, error) {
	post, err := s.postRepo.GetPostByID(postID)
	if err != nil {
		if errs.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrPostNotFound
		}
		return nil, err
	}

	if amount.LessThan(models.MinDonationAmount) {
		return nil, errs.ErrAmountBelowMinimum
	}

	// Early cap check for a fast failure; the authoritative check happens
	// atomically inside the transaction.
	if post.ReceivedAmount.Add(amount).GreaterThan(post.TargetAmount) {
		return nil, errs.ErrTargetExceeded
	}

	priorCount, err := s.donationRepo.CountSuccessfulDonations(user.ID, postID)
	if err != nil {
		return nil, err
	}
	if priorCount >= int64(post.FrequencyPolicy.AllowedCount()) {
		return nil, errs.ErrFrequencyExceeded
	}

	if !models.ValidPanNumber(panNumber) {
		return nil, errs.ErrInvalidPAN
	}

	documentPath, err := s.mediaService.ValidateAndSavePanDocument(panDocument, user.ID)
	if err != nil {
		return nil, err
	}

	if paymentMethod == "" {
		paymentMethod = models.PaymentMethodUPI
	}

	fee, gst, net := models.ComputeFees(amount)
	donation := &models.Donation{
		NgoPostID:     postID,
		UserID:        user.ID,
		Amount:        amount,
		PlatformFee:   fee,
		Gst:           gst,
		AmountToNgo:   net,
		OrderID:       utils.GenerateOrderID(),
		TransactionID: utils.GenerateTransactionID(),
		PaymentMethod: paymentMethod,
		PaymentStatus: models.PaymentStatusSuccess,
		PanNumber:     panNumber,
		PanDocument:   documentPath,
		PaymentDate:   time.Now(),
	}

	if err := s.donationRepo.CreateDonation(donation); err != nil {
		return nil, err
	}

	// Best-effort side effects run detached once the mandatory portion has
	// committed. Their failures never reach the request path.
	go s.rewardService.AccruePoints(user.ID, models.ActionDonate)
	go s.sendReceiptEmail(user, post, donation)

	return donation, nil
}

func (s *donationService) sendReceiptEmail(user *models.User, post *models.DonationPost, donation *models.Donation) {
	if s.mailer == nil {
		return
	}

	withRelations := *donation
	withRelations.User = user
	withRelations.NgoPost = post

	bill, err := s.billService.RenderBill(&withRelations)
	if err != nil {
		log.Printf("could not render receipt for donation %d: %v", donation.ID, err)
		return
	}
	if err := s.mailer.SendDonationReceipt(user.Email, bill); err != nil {
		log.Printf("could not email receipt for donation %d: %v", donation.ID, err)
	}
}

func (s *donationService) GetDonationHistory(userID uint, filter models.DonationHistoryFilter) ([]models.Donation, error) {
	return s.donationRepo.GetDonationHistory(userID, filter)
}

func (s *donationService) GetDonationBill(userID uint, donationID uint) (*models.DonationBill, error) {
	donation, err := s.donationRepo.GetDonationByIDAndUser(donationID, userID)
	if err != nil {
		if errs.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.New("donation not found or not authorized", http.StatusNotFound)
		}
		return nil, err
	}
	return s.billService.RenderBill(donation)
}

func (s *donationService) ToggleSaved(userID uint, donationID uint, action string) (bool, error) {
	var saved bool
	switch action {
	case "save":
		saved = true
	case "unsave":
		saved = false
	default:
		return false, errs.New("action must be save or unsave", http.StatusBadRequest)
	}

	if err := s.donationRepo.SetSavedFlag(donationID, userID, saved); err != nil {
		if errs.Is(err, gorm.ErrRecordNotFound) {
			return false, errs.New("donation not found or not authorized", http.StatusNotFound)
		}
		return false, err
	}
	return saved, nil
}

func (s *donationService) GetDonationTypes() ([]models.DonationType, error) {
	return s.postRepo.GetActiveDonationTypes()
}
