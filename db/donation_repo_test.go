package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	errs "github.com/jeevanprakash/donatex/errors"
	"github.com/jeevanprakash/donatex/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *GormDB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "donatex_test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&models.User{}, &models.DonationPost{}, &models.Donation{}))
	return &GormDB{DB: gdb}
}

func seedPost(t *testing.T, gdb *GormDB, target, received int64) *models.DonationPost {
	t.Helper()
	post := &models.DonationPost{
		Header:          "Surgery for Aarav",
		TargetAmount:    decimal.NewFromInt(target),
		ReceivedAmount:  decimal.NewFromInt(received),
		FrequencyPolicy: models.FrequencyOnce,
		Status:          models.PostStatusActive,
	}
	require.NoError(t, gdb.DB.Create(post).Error)
	return post
}

func buildDonation(postID uint, amount decimal.Decimal, suffix string) *models.Donation {
	fee, gst, net := models.ComputeFees(amount)
	return &models.Donation{
		NgoPostID:     postID,
		UserID:        1,
		Amount:        amount,
		PlatformFee:   fee,
		Gst:           gst,
		AmountToNgo:   net,
		OrderID:       "ORD-" + suffix,
		TransactionID: "TXN-" + suffix,
		PaymentMethod: models.PaymentMethodUPI,
		PaymentStatus: models.PaymentStatusSuccess,
		PaymentDate:   time.Now(),
	}
}

func reloadPost(t *testing.T, gdb *GormDB, postID uint) *models.DonationPost {
	t.Helper()
	var post models.DonationPost
	require.NoError(t, gdb.DB.First(&post, postID).Error)
	return &post
}

func TestCreateDonationUpdatesReceivedTotal(t *testing.T) {
	gdb := newTestDB(t)
	post := seedPost(t, gdb, 1000, 0)
	repo := NewDonationRepo(gdb)

	donation := buildDonation(post.ID, decimal.NewFromInt(150), "a1")
	require.NoError(t, repo.CreateDonation(donation))
	assert.NotZero(t, donation.ID)

	assert.True(t, reloadPost(t, gdb, post.ID).ReceivedAmount.Equal(decimal.NewFromInt(150)))
}

func TestCreateDonationOvershootRollsBack(t *testing.T) {
	gdb := newTestDB(t)
	post := seedPost(t, gdb, 1000, 900)
	repo := NewDonationRepo(gdb)

	err := repo.CreateDonation(buildDonation(post.ID, decimal.NewFromInt(150), "b1"))
	assert.ErrorIs(t, err, errs.ErrTargetExceeded)

	// The conditional update matched no row, so the whole transaction must
	// leave both tables untouched.
	assert.True(t, reloadPost(t, gdb, post.ID).ReceivedAmount.Equal(decimal.NewFromInt(900)))

	var count int64
	require.NoError(t, gdb.DB.Model(&models.Donation{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateDonationExactFillSucceeds(t *testing.T) {
	gdb := newTestDB(t)
	post := seedPost(t, gdb, 1000, 900)
	repo := NewDonationRepo(gdb)

	require.NoError(t, repo.CreateDonation(buildDonation(post.ID, decimal.NewFromInt(100), "c1")))

	assert.True(t, reloadPost(t, gdb, post.ID).ReceivedAmount.Equal(decimal.NewFromInt(1000)))

	var count int64
	require.NoError(t, gdb.DB.Model(&models.Donation{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateDonationRejectsOnceFull(t *testing.T) {
	gdb := newTestDB(t)
	post := seedPost(t, gdb, 1000, 900)
	repo := NewDonationRepo(gdb)

	require.NoError(t, repo.CreateDonation(buildDonation(post.ID, decimal.NewFromInt(100), "d1")))

	err := repo.CreateDonation(buildDonation(post.ID, decimal.NewFromInt(100), "d2"))
	assert.ErrorIs(t, err, errs.ErrTargetExceeded)
	assert.True(t, reloadPost(t, gdb, post.ID).ReceivedAmount.Equal(decimal.NewFromInt(1000)))
}
