package upload

import (
	"errors"
	"fmt"
	"math"
)

const DefaultTransferWeight = 0.8

var ErrInvalidPolicy = errors.New("invalid upload policy")

// Policy splits the progress range between the client-to-server transfer
// and the server's own storage commit.
type Policy struct {
	TransferWeight float64
}

func DefaultPolicy() Policy {
	return Policy{TransferWeight: DefaultTransferWeight}
}

func (p Policy) Validate() error {
	w := p.TransferWeight
	if math.IsNaN(w) || w <= 0 || w >= 1 {
		return fmt.Errorf("%w: transfer weight must be in (0,1), got %v", ErrInvalidPolicy, w)
	}
	if p.Pin() < 1 || p.Pin() > 99 {
		return fmt.Errorf("%w: transfer weight %v rounds outside 1..99%%", ErrInvalidPolicy, w)
	}
	return nil
}

// Pin is the value reported once the transfer leg completes.
func (p Policy) Pin() int {
	return int(math.Round(p.TransferWeight * 100))
}

// transferPercent maps a byte fraction onto [0, Pin).
func (p Policy) transferPercent(sent, total int64) int {
	if total <= 0 || sent <= 0 {
		return 0
	}
	frac := float64(sent) / float64(total)
	if frac > 1 {
		frac = 1
	}
	v := int(math.Floor(frac * p.TransferWeight * 100))
	if v >= p.Pin() {
		v = p.Pin() - 1
	}
	return v
}
