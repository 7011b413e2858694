package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	unitWords = []string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine"}
	teenWords = []string{"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen"}
	tensWords = []string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}
)

// twoDigitWords renders 0-99.
func twoDigitWords(n int64) string {
	switch {
	case n < 10:
		return unitWords[n]
	case n < 20:
		return teenWords[n-10]
	default:
		if n%10 == 0 {
			return tensWords[n/10]
		}
		return tensWords[n/10] + " " + unitWords[n%10]
	}
}

// threeDigitWords renders 0-999.
func threeDigitWords(n int64) string {
	if n < 100 {
		return twoDigitWords(n)
	}
	result := unitWords[n/100] + " Hundred"
	if rem := n % 100; rem > 0 {
		result += " " + twoDigitWords(rem)
	}
	return result
}

// integerWords renders a non-negative rupee amount with Indian grouping:
// the last three digits, then two-digit groups for thousand, lakh and crore.
// Amounts of a hundred crore or more recurse on the crore count.
func integerWords(n int64) string {
	if n == 0 {
		return ""
	}

	ones := n % 1000
	n /= 1000
	thousand := n % 100
	n /= 100
	lakh := n % 100
	n /= 100
	crore := n

	var parts []string
	if crore > 0 {
		if crore > 99 {
			parts = append(parts, integerWords(crore)+" Crore")
		} else {
			parts = append(parts, twoDigitWords(crore)+" Crore")
		}
	}
	if lakh > 0 {
		parts = append(parts, twoDigitWords(lakh)+" Lakh")
	}
	if thousand > 0 {
		parts = append(parts, twoDigitWords(thousand)+" Thousand")
	}
	if ones > 0 {
		parts = append(parts, threeDigitWords(ones))
	}
	return strings.Join(parts, " ")
}

// AmountInWords renders a monetary amount for receipts, e.g.
// "INR One Thousand Five Hundred Only". Zero stays "Zero Only" and paise are
// appended as "and NN/100". Anything the renderer cannot handle falls back to
// the raw amount.
func AmountInWords(amount decimal.Decimal) string {
	if amount.IsZero() {
		return "Zero Only"
	}
	if amount.IsNegative() {
		return fmt.Sprintf("INR %s Only", amount.String())
	}

	rounded := amount.Round(2)
	rupees := rounded.IntPart()
	paise := rounded.Sub(decimal.NewFromInt(rupees)).Mul(decimal.NewFromInt(100)).IntPart()

	words := integerWords(rupees)
	if words == "" {
		words = "Zero"
	}
	if paise > 0 {
		return fmt.Sprintf("INR %s and %02d/100 Only", words, paise)
	}
	return fmt.Sprintf("INR %s Only", words)
}

// GenerateOrderID returns a collision-resistant order identifier.
func GenerateOrderID() string {
	return "ORD-" + uuid.New().String()
}

// GenerateTransactionID returns a transaction identifier independent of the
// order identifier.
func GenerateTransactionID() string {
	return "TXN-" + uuid.New().String()
}

// ReceiptNumber derives the deterministic receipt number for a donation.
func ReceiptNumber(paymentDate time.Time, donationID uint) string {
	return fmt.Sprintf("NGO/%d/%04d", paymentDate.Year(), donationID)
}
