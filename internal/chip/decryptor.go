// Package chip turns the card reader's opaque chip payload into card data.
package chip

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/benx421/atm-core/internal/models"
)

// ErrBadPayload marks a chip payload the reader could not decode.
var ErrBadPayload = errors.New("bad chip payload")

// Decryptor decodes the payload captured by the reader hardware. The demo
// payload format is a JSON document; a hardware deployment swaps in a real
// decryption step behind the same method.
type Decryptor struct{}

// NewDecryptor creates a new Decryptor
func NewDecryptor() *Decryptor {
	return &Decryptor{}
}

// Decrypt decodes an encrypted chip payload into card data. A malformed
// payload is a decode error, not a validation failure.
func (d *Decryptor) Decrypt(encryptedInfo string) (models.CardData, error) {
	var card models.CardData
	if err := json.Unmarshal([]byte(encryptedInfo), &card); err != nil {
		return models.CardData{}, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}

	return card, nil
}
