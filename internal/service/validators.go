package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/benx421/atm-core/internal/models"
)

// ValidateCard applies the card checks in order, stopping at the first
// failure: number length, expiration date, verification code length.
func ValidateCard(card models.CardData, now time.Time) error {
	if err := ValidateCardNumber(card.Number); err != nil {
		return err
	}
	if err := ValidateExpirationDate(card.ExpirationDate, now); err != nil {
		return err
	}

	return ValidateVerificationCode(card.VerificationCode)
}

// ValidateCardNumber checks the card number length
func ValidateCardNumber(number string) error {
	if len(number) != 16 {
		return fmt.Errorf("card number must be 16 digits")
	}

	return nil
}

// ValidateExpirationDate checks a YYYYMMDD expiration date against now. The
// date must be strictly in the future; a card expiring today is already
// expired.
func ValidateExpirationDate(expirationDate string, now time.Time) error {
	if expirationDate <= now.Format("20060102") {
		return fmt.Errorf("card is expired: %s", expirationDate)
	}

	return nil
}

// ValidateVerificationCode checks the verification code length
func ValidateVerificationCode(code string) error {
	if len(code) != 3 {
		return fmt.Errorf("card verification code must be 3 digits")
	}

	return nil
}

// ValidateAmount checks if amount is valid (positive)
func ValidateAmount(amount int64) error {
	if amount <= 0 {
		return errors.New(MsgInvalidAmount)
	}

	return nil
}
