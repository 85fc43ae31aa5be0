package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"math/big"
)

const numberBytes = "0123456789"

// GenerateNumericCode returns a cryptographically random code of the given length.
func GenerateNumericCode(length int) (string, error) {
	result := make([]byte, length)
	max := big.NewInt(int64(len(numberBytes)))
	for i := range result {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		result[i] = numberBytes[n.Int64()]
	}
	return string(result), nil
}

func HashData(data string) string {
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])
}
