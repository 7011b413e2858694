package services

import (
	"mime/multipart"
	"net/http"
	"strings"
	"testing"
	"time"

	errs "github.com/jeevanprakash/donatex/errors"
	"github.com/jeevanprakash/donatex/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeDonationRepo struct {
	created     *models.Donation
	countResult int64
	countErr    error
	createErr   error
	history     []models.Donation
	byID        *models.Donation
	byIDErr     error
	savedErr    error
}

func (f *fakeDonationRepo) CreateDonation(donation *models.Donation) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = donation
	return nil
}

func (f *fakeDonationRepo) CountSuccessfulDonations(userID uint, postID uint) (int64, error) {
	return f.countResult, f.countErr
}

func (f *fakeDonationRepo) GetDonationHistory(userID uint, filter models.DonationHistoryFilter) ([]models.Donation, error) {
	return f.history, nil
}

func (f *fakeDonationRepo) GetDonationByIDAndUser(donationID uint, userID uint) (*models.Donation, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byID, nil
}

func (f *fakeDonationRepo) SetSavedFlag(donationID uint, userID uint, saved bool) error {
	return f.savedErr
}

type fakePostRepo struct {
	post    *models.DonationPost
	postErr error
	types   []models.DonationType
}

func (f *fakePostRepo) CreatePost(post *models.DonationPost) error { return nil }

func (f *fakePostRepo) GetPostByID(postID uint) (*models.DonationPost, error) {
	if f.postErr != nil {
		return nil, f.postErr
	}
	return f.post, nil
}

func (f *fakePostRepo) GetActiveDonationTypes() ([]models.DonationType, error) {
	return f.types, nil
}

type fakeRewardService struct {
	accrued chan string
}

func (f *fakeRewardService) AccruePoints(userID uint, actionName string) {
	if f.accrued != nil {
		f.accrued <- actionName
	}
}

func (f *fakeRewardService) GetRewardHistory(userID uint, filter models.RewardHistoryFilter) ([]models.RewardHistory, int, int, error) {
	return nil, 0, 0, nil
}

func (f *fakeRewardService) GetBadgeList() ([]models.PointsBadge, error) { return nil, nil }

func (f *fakeRewardService) GetPointsActions() ([]models.PointsActionType, error) { return nil, nil }

type fakeMediaService struct {
	path string
	err  error
}

func (f *fakeMediaService) ValidateAndSavePanDocument(fileHeader *multipart.FileHeader, userID uint) (string, error) {
	return f.path, f.err
}

type fakeMailer struct {
	sent chan string
}

func (f *fakeMailer) SendDonationReceipt(toEmail string, bill *models.DonationBill) error {
	if f.sent != nil {
		f.sent <- toEmail
	}
	return nil
}

type donationFixture struct {
	service      DonationService
	donationRepo *fakeDonationRepo
	postRepo     *fakePostRepo
	rewards      *fakeRewardService
	mailer       *fakeMailer
}

func newDonationFixture() *donationFixture {
	donationRepo := &fakeDonationRepo{}
	postRepo := &fakePostRepo{
		post: &models.DonationPost{
			Model:           models.Model{ID: 1},
			Header:          "Surgery for Aarav",
			Description:     "Heart surgery fund",
			TargetAmount:    decimal.NewFromInt(100000),
			ReceivedAmount:  decimal.NewFromInt(5000),
			FrequencyPolicy: models.FrequencyOnce,
			Status:          models.PostStatusActive,
		},
	}
	rewards := &fakeRewardService{accrued: make(chan string, 1)}
	mailer := &fakeMailer{sent: make(chan string, 1)}

	service := NewDonationService(
		donationRepo,
		postRepo,
		rewards,
		NewBillService(),
		&fakeMediaService{path: "uploads/pan_documents/user_1.pdf"},
		mailer,
		nil,
	)
	return &donationFixture{
		service:      service,
		donationRepo: donationRepo,
		postRepo:     postRepo,
		rewards:      rewards,
		mailer:       mailer,
	}
}

func testUser() *models.User {
	return &models.User{
		Model:    models.Model{ID: 1},
		Fullname: "Asha Rao",
		Email:    "asha@example.com",
		IsActive: true,
	}
}

func panDoc() *multipart.FileHeader {
	return &multipart.FileHeader{Filename: "pan.pdf", Size: 1024}
}

func waitFor(t *testing.T, ch chan string, what string) string {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
		return ""
	}
}

func TestSubmitDonationSuccess(t *testing.T) {
	fx := newDonationFixture()

	donation, err := fx.service.SubmitDonation(testUser(), 1, decimal.NewFromInt(1500), "", "ABCDE1234F", panDoc())
	require.NoError(t, err)
	require.NotNil(t, fx.donationRepo.created)

	assert.True(t, donation.PlatformFee.Equal(decimal.NewFromInt(30)))
	assert.True(t, donation.Gst.Equal(decimal.RequireFromString("5.4")))
	assert.True(t, donation.AmountToNgo.Equal(decimal.RequireFromString("1464.6")))
	assert.Equal(t, models.PaymentMethodUPI, donation.PaymentMethod, "blank method defaults to UPI")
	assert.Equal(t, models.PaymentStatusSuccess, donation.PaymentStatus)
	assert.True(t, strings.HasPrefix(donation.OrderID, "ORD-"))
	assert.True(t, strings.HasPrefix(donation.TransactionID, "TXN-"))
	assert.Equal(t, "uploads/pan_documents/user_1.pdf", donation.PanDocument)

	assert.Equal(t, models.ActionDonate, waitFor(t, fx.rewards.accrued, "reward accrual"))
	assert.Equal(t, "asha@example.com", waitFor(t, fx.mailer.sent, "receipt email"))
}

func TestSubmitDonationPostNotFound(t *testing.T) {
	fx := newDonationFixture()
	fx.postRepo.postErr = gorm.ErrRecordNotFound

	_, err := fx.service.SubmitDonation(testUser(), 99, decimal.NewFromInt(1500), "", "ABCDE1234F", panDoc())
	assert.ErrorIs(t, err, errs.ErrPostNotFound)
	assert.Nil(t, fx.donationRepo.created)
}

func TestSubmitDonationBelowMinimum(t *testing.T) {
	fx := newDonationFixture()

	// The amount check fires before the PAN check, so a bad PAN here is
	// not the error that comes back.
	_, err := fx.service.SubmitDonation(testUser(), 1, decimal.NewFromInt(99), "", "bad", panDoc())
	assert.ErrorIs(t, err, errs.ErrAmountBelowMinimum)
	assert.Nil(t, fx.donationRepo.created)
}

func TestSubmitDonationTargetExceeded(t *testing.T) {
	fx := newDonationFixture()
	fx.postRepo.post.TargetAmount = decimal.NewFromInt(5500)

	_, err := fx.service.SubmitDonation(testUser(), 1, decimal.NewFromInt(1000), "", "ABCDE1234F", panDoc())
	assert.ErrorIs(t, err, errs.ErrTargetExceeded)
	assert.Nil(t, fx.donationRepo.created)
}

func TestSubmitDonationFrequencyExceeded(t *testing.T) {
	fx := newDonationFixture()
	fx.donationRepo.countResult = 1

	_, err := fx.service.SubmitDonation(testUser(), 1, decimal.NewFromInt(1500), "", "ABCDE1234F", panDoc())
	assert.ErrorIs(t, err, errs.ErrFrequencyExceeded)
	assert.Nil(t, fx.donationRepo.created)
}

func TestSubmitDonationTwicePolicyAllowsSecond(t *testing.T) {
	fx := newDonationFixture()
	fx.postRepo.post.FrequencyPolicy = models.FrequencyTwice
	fx.donationRepo.countResult = 1

	_, err := fx.service.SubmitDonation(testUser(), 1, decimal.NewFromInt(1500), "", "ABCDE1234F", panDoc())
	assert.NoError(t, err)
	assert.NotNil(t, fx.donationRepo.created)
}

func TestSubmitDonationInvalidPan(t *testing.T) {
	fx := newDonationFixture()

	_, err := fx.service.SubmitDonation(testUser(), 1, decimal.NewFromInt(1500), "", "SHORT", panDoc())
	assert.ErrorIs(t, err, errs.ErrInvalidPAN)
	assert.Nil(t, fx.donationRepo.created)
}

func TestSubmitDonationExplicitMethodKept(t *testing.T) {
	fx := newDonationFixture()

	donation, err := fx.service.SubmitDonation(testUser(), 1, decimal.NewFromInt(1500), models.PaymentMethodCard, "ABCDE1234F", panDoc())
	require.NoError(t, err)
	assert.Equal(t, models.PaymentMethodCard, donation.PaymentMethod)
}

func TestToggleSaved(t *testing.T) {
	fx := newDonationFixture()

	saved, err := fx.service.ToggleSaved(1, 10, "save")
	require.NoError(t, err)
	assert.True(t, saved)

	saved, err = fx.service.ToggleSaved(1, 10, "unsave")
	require.NoError(t, err)
	assert.False(t, saved)

	_, err = fx.service.ToggleSaved(1, 10, "bookmark")
	var e *errs.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, http.StatusBadRequest, e.Status)
}

func TestToggleSavedNotOwned(t *testing.T) {
	fx := newDonationFixture()
	fx.donationRepo.savedErr = gorm.ErrRecordNotFound

	_, err := fx.service.ToggleSaved(1, 10, "save")
	var e *errs.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, http.StatusNotFound, e.Status)
}

func TestGetDonationBillNotFound(t *testing.T) {
	fx := newDonationFixture()
	fx.donationRepo.byIDErr = gorm.ErrRecordNotFound

	_, err := fx.service.GetDonationBill(1, 42)
	var e *errs.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, http.StatusNotFound, e.Status)
}
