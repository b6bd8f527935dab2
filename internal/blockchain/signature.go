package blockchain

import (
	"strings"

	"creatorhub/internal/apperrors"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// ValidAddress reports whether a is a hex-encoded Ethereum address.
func ValidAddress(a string) bool {
	return common.IsHexAddress(a)
}

// VerifySignature recovers the address that signed message as an
// EIP-191 personal message and compares it case-insensitively to the
// claimed address. A well-formed signature that recovers a different
// address is not an error; it is simply invalid.
func VerifySignature(message, signature, address string) (bool, error) {
	if !common.IsHexAddress(address) {
		return false, apperrors.Validation("invalid wallet address")
	}

	sig, err := hexutil.Decode(signature)
	if err != nil || len(sig) != crypto.SignatureLength {
		return false, apperrors.Validation("malformed signature")
	}

	// Wallets encode the recovery id as 27/28; SigToPub expects 0/1.
	recovery := make([]byte, crypto.SignatureLength)
	copy(recovery, sig)
	if recovery[crypto.RecoveryIDOffset] >= 27 {
		recovery[crypto.RecoveryIDOffset] -= 27
	}

	pub, err := crypto.SigToPub(accounts.TextHash([]byte(message)), recovery)
	if err != nil {
		return false, nil
	}

	recovered := crypto.PubkeyToAddress(*pub)
	return strings.EqualFold(recovered.Hex(), address), nil
}
