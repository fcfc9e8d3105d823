package models

// CardData represents the attributes decoded from an inserted card.
//
// It is produced once per interaction by the chip decode step and never
// mutated afterwards. The JSON tags mirror the chip payload field names.
type CardData struct {
	Number           string `json:"card_number"`
	HolderName       string `json:"name"`
	ExpirationDate   string `json:"expiration_date"` // YYYYMMDD
	ServiceCode      string `json:"service_code"`
	VerificationCode string `json:"card_verification_code"`
}
