package mailingservices

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jeevanprakash/donatex/config"
	"github.com/jeevanprakash/donatex/models"
	"github.com/mailgun/mailgun-go/v4"
)

type Mailgun struct {
	Client *mailgun.MailgunImpl
	From   string
}

func (m *Mailgun) Init(conf *config.Config) {
	m.Client = mailgun.NewMailgun(conf.MgDomain, conf.MailgunApiKey)
	m.From = conf.MgEmailFrom
	if m.From == "" {
		m.From = fmt.Sprintf("Donatex <no-reply@%s>", conf.MgDomain)
	}
	log.Println("Mailgun initialized")
}

// SendDonationReceipt emails a rendered bill to the donor. Callers treat this
// as best-effort; failures are logged, never propagated to the donation flow.
func (m *Mailgun) SendDonationReceipt(toEmail string, bill *models.DonationBill) error {
	subject := fmt.Sprintf("Donation receipt %s", bill.ReceiptNo)
	body := fmt.Sprintf(
		"Dear %s,\n\nThank you for your donation to %s.\n\nReceipt No: %s\nDate: %s\nAmount: INR %s\nAmount in words: %s\nMode of payment: %s\nReference No: %s\nPurpose: %s\n\nWarm regards,\n%s",
		bill.DonorName,
		bill.NgoName,
		bill.ReceiptNo,
		bill.Date,
		bill.AmountDonated.StringFixed(2),
		bill.AmountInWords,
		bill.ModeOfPayment,
		bill.ReferenceNo,
		bill.PurposeOfDonation,
		bill.NgoName,
	)

	message := m.Client.NewMessage(m.From, subject, body, toEmail)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, _, err := m.Client.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send donation receipt: %w", err)
	}
	return nil
}
