package services

import (
	"net/http"
	"strings"

	errs "github.com/jeevanprakash/donatex/errors"
	"github.com/jeevanprakash/donatex/models"
	"github.com/jeevanprakash/donatex/services/utils"
)

const (
	defaultNgoName = "Jeevan Prakash Foundation"
	defaultPurpose = "Medical Aid for Child in Need"
)

// BillService renders the human-readable receipt for a donation. Rendering
// is deterministic: the same donation always yields the same bill.
type BillService interface {
	RenderBill(donation *models.Donation) (*models.DonationBill, error)
}

type billService struct{}

func NewBillService() BillService {
	return &billService{}
}

func (b *billService) RenderBill(donation *models.Donation) (*models.DonationBill, error) {
	if donation.User == nil {
		return nil, errs.New("donation is missing donor details", http.StatusInternalServerError)
	}

	ngoName := defaultNgoName
	purpose := defaultPurpose
	if donation.NgoPost != nil {
		if donation.NgoPost.Header != "" {
			ngoName = donation.NgoPost.Header
		}
		if donation.NgoPost.Description != "" {
			purpose = donation.NgoPost.Description
		}
	}

	donorPan := donation.PanNumber
	if donorPan == "" {
		donorPan = donation.User.PanNumber
	}

	bill := &models.DonationBill{
		ReceiptNo:         utils.ReceiptNumber(donation.PaymentDate, donation.ID),
		Date:              donation.PaymentDate.Format("02-Jan-2006"),
		NgoName:           ngoName,
		DonorName:         donation.User.Fullname,
		DonorEmail:        donation.User.Email,
		DonorPan:          donorPan,
		AmountDonated:     donation.Amount,
		ModeOfPayment:     strings.ToUpper(string(donation.PaymentMethod)),
		ReferenceNo:       donation.TransactionID,
		PurposeOfDonation: purpose,
		AmountInWords:     utils.AmountInWords(donation.Amount),
	}
	return bill, nil
}
