package postgres

import (
	"crypto/rand"
	"math/big"

	"github.com/oklog/ulid/v2"

	"github.com/qwellan/peerpay/internal/domain"
)

// ULIDGenerator generates ULID-based internal user IDs.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate generates a new ULID.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}

const accountIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// AccountIDGenerator generates public 10-character alphanumeric account IDs.
// Uniqueness is guaranteed by the users.account_id constraint, not here.
type AccountIDGenerator struct{}

// NewAccountIDGenerator creates a new AccountIDGenerator.
func NewAccountIDGenerator() *AccountIDGenerator {
	return &AccountIDGenerator{}
}

// Generate returns a fresh account ID drawn from crypto/rand.
func (g *AccountIDGenerator) Generate() string {
	buf := make([]byte, domain.AccountIDLength)
	max := big.NewInt(int64(len(accountIDAlphabet)))

	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand failure means the process has bigger problems
			panic(err)
		}

		buf[i] = accountIDAlphabet[n.Int64()]
	}

	return string(buf)
}
