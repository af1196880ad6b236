package oappscan

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// AmbiguousByteOrderError is returned by a targeted lookup when records
// exist at the addresses derived under both byte orders, so neither can be
// attributed as the one the program actually uses. The collision is a
// reportable anomaly, never silently resolved.
type AmbiguousByteOrderError struct {
	EID       uint32
	AddressLE solana.PublicKey
	AddressBE solana.PublicKey
}

func (e *AmbiguousByteOrderError) Error() string {
	return fmt.Sprintf("eid %d has peer records under both byte orders (le=%s be=%s)",
		e.EID, e.AddressLE, e.AddressBE)
}
