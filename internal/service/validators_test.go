package service

import (
	"testing"
	"time"

	"github.com/benx421/atm-core/internal/models"
	"github.com/stretchr/testify/assert"
)

var validatorNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func TestValidateCardNumber(t *testing.T) {
	tests := []struct {
		name    string
		number  string
		wantErr string
	}{
		{
			name:   "16 digits",
			number: "1234567890123456",
		},
		{
			name:    "18 digits",
			number:  "123456789012345678",
			wantErr: "card number must be 16 digits",
		},
		{
			name:    "15 digits",
			number:  "123456789012345",
			wantErr: "card number must be 16 digits",
		},
		{
			name:    "empty",
			number:  "",
			wantErr: "card number must be 16 digits",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCardNumber(tt.number)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateExpirationDate(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		wantErr string
	}{
		{
			name: "far future",
			date: "20990101",
		},
		{
			name: "tomorrow",
			date: "20240616",
		},
		{
			name:    "today counts as expired",
			date:    "20240615",
			wantErr: "card is expired: 20240615",
		},
		{
			name:    "past",
			date:    "20000101",
			wantErr: "card is expired: 20000101",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateExpirationDate(tt.date, validatorNow)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateVerificationCode(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantErr bool
	}{
		{
			name: "3 digits",
			code: "123",
		},
		{
			name:    "2 digits",
			code:    "12",
			wantErr: true,
		},
		{
			name:    "4 digits",
			code:    "1234",
			wantErr: true,
		},
		{
			name:    "empty",
			code:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateVerificationCode(tt.code)
			if tt.wantErr {
				assert.EqualError(t, err, "card verification code must be 3 digits")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateCard_OrderOfChecks(t *testing.T) {
	// A card violating every rule reports the first one.
	card := models.CardData{
		Number:           "123",
		ExpirationDate:   "20000101",
		VerificationCode: "12345",
	}
	assert.EqualError(t, ValidateCard(card, validatorNow), "card number must be 16 digits")

	card.Number = "1234567890123456"
	assert.EqualError(t, ValidateCard(card, validatorNow), "card is expired: 20000101")

	card.ExpirationDate = "20990101"
	assert.EqualError(t, ValidateCard(card, validatorNow), "card verification code must be 3 digits")

	card.VerificationCode = "123"
	assert.NoError(t, ValidateCard(card, validatorNow))
}

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, ValidateAmount(1))
	assert.Error(t, ValidateAmount(0))
	assert.Error(t, ValidateAmount(-100))
}
