package services

import (
	"testing"
	"time"

	"github.com/jeevanprakash/donatex/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func billDonation() *models.Donation {
	return &models.Donation{
		Model:         models.Model{ID: 7},
		NgoPostID:     1,
		UserID:        1,
		Amount:        decimal.NewFromInt(1500),
		PaymentMethod: models.PaymentMethodUPI,
		TransactionID: "TXN-abc",
		PanNumber:     "ABCDE1234F",
		PaymentDate:   time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC),
		User: &models.User{
			Model:    models.Model{ID: 1},
			Fullname: "Asha Rao",
			Email:    "asha@example.com",
		},
		NgoPost: &models.DonationPost{
			Model:       models.Model{ID: 1},
			Header:      "Surgery for Aarav",
			Description: "Heart surgery fund",
		},
	}
}

func TestRenderBill(t *testing.T) {
	bill, err := NewBillService().RenderBill(billDonation())
	require.NoError(t, err)

	assert.Equal(t, "NGO/2026/0007", bill.ReceiptNo)
	assert.Equal(t, "14-Mar-2026", bill.Date)
	assert.Equal(t, "Surgery for Aarav", bill.NgoName)
	assert.Equal(t, "Asha Rao", bill.DonorName)
	assert.Equal(t, "asha@example.com", bill.DonorEmail)
	assert.Equal(t, "ABCDE1234F", bill.DonorPan)
	assert.Equal(t, "UPI", bill.ModeOfPayment)
	assert.Equal(t, "TXN-abc", bill.ReferenceNo)
	assert.Equal(t, "Heart surgery fund", bill.PurposeOfDonation)
	assert.Equal(t, "INR One Thousand Five Hundred Only", bill.AmountInWords)
}

func TestRenderBillDefaults(t *testing.T) {
	donation := billDonation()
	donation.NgoPost = nil
	donation.PanNumber = ""
	donation.User.PanNumber = "FGHIJ5678K"

	bill, err := NewBillService().RenderBill(donation)
	require.NoError(t, err)

	assert.Equal(t, "Jeevan Prakash Foundation", bill.NgoName)
	assert.Equal(t, "Medical Aid for Child in Need", bill.PurposeOfDonation)
	assert.Equal(t, "FGHIJ5678K", bill.DonorPan, "falls back to the profile PAN")
}

func TestRenderBillDeterministic(t *testing.T) {
	svc := NewBillService()
	first, err := svc.RenderBill(billDonation())
	require.NoError(t, err)
	second, err := svc.RenderBill(billDonation())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRenderBillMissingDonor(t *testing.T) {
	donation := billDonation()
	donation.User = nil

	_, err := NewBillService().RenderBill(donation)
	assert.Error(t, err)
}
