package scoring

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const (
	GroupCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	GroupCodeLength   = 6
)

var alphabetSize = big.NewInt(int64(len(GroupCodeAlphabet)))

// GenerateGroupCode draws GroupCodeLength symbols uniformly from
// GroupCodeAlphabet. Uniqueness is left to the store.
func GenerateGroupCode() string {
	var sb strings.Builder
	sb.Grow(GroupCodeLength)
	for i := 0; i < GroupCodeLength; i++ {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken.
			panic("scoring: reading random source: " + err.Error())
		}
		sb.WriteByte(GroupCodeAlphabet[n.Int64()])
	}
	return sb.String()
}

// NormalizeGroupCode trims whitespace and upper-cases a code typed by a user.
func NormalizeGroupCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func ValidGroupCode(code string) bool {
	if len(code) != GroupCodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		if strings.IndexByte(GroupCodeAlphabet, code[i]) < 0 {
			return false
		}
	}
	return true
}
