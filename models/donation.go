package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodUPI        PaymentMethod = "UPI"
	PaymentMethodCard       PaymentMethod = "Card"
	PaymentMethodNetBanking PaymentMethod = "NetBanking"
	PaymentMethodWallet     PaymentMethod = "Wallet"
	PaymentMethodOther      PaymentMethod = "Other"
)

type PaymentStatus string

const (
	PaymentStatusSuccess PaymentStatus = "Success"
	PaymentStatusFailed  PaymentStatus = "Failed"
)

// MinDonationAmount is the smallest accepted contribution.
var MinDonationAmount = decimal.NewFromInt(100)

var (
	platformFeeRate = decimal.NewFromFloat(0.02)
	gstRate         = decimal.NewFromFloat(0.18)
)

// Donation is one completed contribution. Rows are immutable after creation
// except for the Saved flag.
type Donation struct {
	Model
	NgoPostID     uint            `json:"ngopost_id" gorm:"column:ngopost_id;not null;index"`
	UserID        uint            `json:"user_id" gorm:"not null;index"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:numeric(12,2);not null"`
	PlatformFee   decimal.Decimal `json:"platform_fee" gorm:"type:numeric(12,2)"`
	Gst           decimal.Decimal `json:"gst" gorm:"type:numeric(12,2)"`
	AmountToNgo   decimal.Decimal `json:"amount_to_ngo" gorm:"type:numeric(12,2)"`
	OrderID       string          `json:"order_id" gorm:"size:64;uniqueIndex"`
	TransactionID string          `json:"transaction_id" gorm:"size:64;uniqueIndex"`
	PaymentMethod PaymentMethod   `json:"payment_method" gorm:"size:16;default:UPI;not null"`
	PaymentStatus PaymentStatus   `json:"payment_status" gorm:"size:16;default:Success;not null"`
	PanNumber     string          `json:"pan_number" gorm:"size:32"`
	PanDocument   string          `json:"pan_document" gorm:"size:255"`
	Saved         bool            `json:"saved" gorm:"default:false"`
	PaymentDate   time.Time       `json:"payment_date"`

	NgoPost *DonationPost `json:"ngo_post,omitempty" gorm:"foreignKey:NgoPostID"`
	User    *User         `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// ComputeFees splits a gross contribution into the platform fee, the GST
// charged on that fee and the net amount passed through to the NGO. Rounding
// is at 2 decimal places; net absorbs the rounding remainder so that
// fee + gst + net == gross. Callers reject non-positive amounts first.
func ComputeFees(gross decimal.Decimal) (fee, gst, net decimal.Decimal) {
	fee = gross.Mul(platformFeeRate).Round(2)
	gst = fee.Mul(gstRate).Round(2)
	net = gross.Sub(fee).Sub(gst)
	return fee, gst, net
}

// ValidPanNumber reports whether a PAN string has the mandated length.
func ValidPanNumber(pan string) bool {
	return len(pan) == 10
}

// DonationHistoryFilter carries the query-string filters of the
// donation_history endpoint.
type DonationHistoryFilter struct {
	PaymentStatus string
	PaymentMethod string
	StartDate     *time.Time
	EndDate       *time.Time
	MinAmount     *decimal.Decimal
	MaxAmount     *decimal.Decimal
	Limit         int
	Offset        int
}

// DonationBill is the rendered receipt for one donation.
type DonationBill struct {
	ReceiptNo         string          `json:"receipt_no"`
	Date              string          `json:"date"`
	NgoName           string          `json:"ngo_name"`
	DonorName         string          `json:"donor_name"`
	DonorEmail        string          `json:"donor_email"`
	DonorPan          string          `json:"donor_pan,omitempty"`
	AmountDonated     decimal.Decimal `json:"amount_donated"`
	ModeOfPayment     string          `json:"mode_of_payment"`
	ReferenceNo       string          `json:"reference_no"`
	PurposeOfDonation string          `json:"purpose_of_donation"`
	AmountInWords     string          `json:"amount_in_words"`
}
