package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FrequencyPolicy limits how many times one contributor may donate to the
// same post. Stored as an explicit enum; the free-text field the legacy data
// carried is only interpreted at import time, see ParseFrequencyPolicy.
type FrequencyPolicy string

const (
	FrequencyOnce   FrequencyPolicy = "once"
	FrequencyTwice  FrequencyPolicy = "twice"
	FrequencyThrice FrequencyPolicy = "thrice"
)

// AllowedCount maps the policy to the number of accepted donations.
func (f FrequencyPolicy) AllowedCount() int {
	switch f {
	case FrequencyTwice:
		return 2
	case FrequencyThrice:
		return 3
	default:
		return 1
	}
}

// ParseFrequencyPolicy interprets legacy policy text ("one-time", "twice a
// year", ...). Unrecognized text defaults to once, matching the legacy data.
func ParseFrequencyPolicy(text string) FrequencyPolicy {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "three") || strings.Contains(lower, "thrice"):
		return FrequencyThrice
	case strings.Contains(lower, "two") || strings.Contains(lower, "twice"):
		return FrequencyTwice
	default:
		return FrequencyOnce
	}
}

type PostStatus string

const (
	PostStatusActive PostStatus = "active"
	PostStatusClosed PostStatus = "closed"
)

// DonationPost is a fundraising campaign. ReceivedAmount is the only shared
// mutable value in the donation flow; it is updated with a conditional UPDATE
// so the target cap holds under concurrent donations.
type DonationPost struct {
	Model
	Header          string          `json:"header" gorm:"size:255;not null"`
	Description     string          `json:"description" gorm:"type:text"`
	TargetAmount    decimal.Decimal `json:"target_amount" gorm:"type:numeric(12,2);not null"`
	ReceivedAmount  decimal.Decimal `json:"received_amount" gorm:"type:numeric(12,2);default:0"`
	FrequencyPolicy FrequencyPolicy `json:"frequency_policy" gorm:"size:16;default:once"`
	ValidFrom       time.Time       `json:"valid_from"`
	ValidUntil      time.Time       `json:"valid_until"`
	Status          PostStatus      `json:"status" gorm:"size:16;default:active"`
	DonationTypeID  *uint           `json:"donation_type_id"`

	DonationType *DonationType `json:"donation_type,omitempty" gorm:"foreignKey:DonationTypeID"`
}

// DonationType is a reference category for posts (medical aid, education...).
type DonationType struct {
	Model
	Name     string `json:"name" gorm:"size:100;uniqueIndex;not null"`
	IsActive bool   `json:"is_active" gorm:"default:true"`
}
