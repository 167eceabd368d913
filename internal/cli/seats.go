package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/okian/dragonbalance/internal/domain/balance"
)

// parseSeats turns repeated SEAT=NAME values such as "L1=Ana" into seats.
// Sides are case-insensitive; a later value for the same seat wins.
func parseSeats(values []string) (balance.Seats, error) {
	seats := make(balance.Seats, len(values))
	for _, v := range values {
		key, name, ok := strings.Cut(v, "=")
		if !ok {
			return nil, fmt.Errorf("%w: %q is not SEAT=NAME", ErrInvalidSeat, v)
		}
		key = strings.ToUpper(strings.TrimSpace(key))
		if len(key) < 2 {
			return nil, fmt.Errorf("%w: %q has no bench number", ErrInvalidSeat, v)
		}

		side := balance.Side(key[:1])
		if side != balance.Left && side != balance.Right {
			return nil, fmt.Errorf("%w: %q must start with L or R", ErrInvalidSeat, v)
		}
		bench, err := strconv.Atoi(key[1:])
		if err != nil || bench < 1 {
			return nil, fmt.Errorf("%w: %q has no bench number", ErrInvalidSeat, v)
		}

		seats[balance.SeatKey(side, bench)] = strings.TrimSpace(name)
	}
	return seats, nil
}
