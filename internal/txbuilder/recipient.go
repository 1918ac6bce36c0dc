package txbuilder

import (
	"encoding/base64"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/goodnatureofminers/txsubmitter/internal/model"
)

// PublicKeyField is the output data key holding the recipient's key.
const PublicKeyField = "publicKey"

// RecipientOutput pays value to the holder of a base64 encoded secp256k1 public key.
func RecipientOutput(value, nonce uint64, publicKey string) (model.TransactionOutput, error) {
	if value == 0 {
		return model.TransactionOutput{}, fmt.Errorf("%w: output value is zero", ErrInvalidArgument)
	}
	if publicKey == "" {
		return model.TransactionOutput{}, fmt.Errorf("%w: recipient public key is empty", ErrInvalidArgument)
	}
	raw, err := base64.StdEncoding.DecodeString(publicKey)
	if err != nil {
		return model.TransactionOutput{}, fmt.Errorf("%w: decode recipient public key: %w", ErrInvalidArgument, err)
	}
	if _, err := btcec.ParsePubKey(raw); err != nil {
		return model.TransactionOutput{}, fmt.Errorf("%w: parse recipient public key: %w", ErrInvalidArgument, err)
	}
	return model.TransactionOutput{
		Value: value,
		Nonce: nonce,
		Data:  model.Data{PublicKeyField: model.String(publicKey)},
	}, nil
}
