package ticket

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Prefix is the fixed literal tag in front of every ticket id.
const Prefix = "TICKET"

// GenerateID returns a ticket id of the form TICKET#### with a random
// 4-digit number in [1000, 9999]. Uniqueness against the active ledger is
// the caller's responsibility.
func GenerateID() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%d", Prefix, n.Int64()+1000), nil
}
