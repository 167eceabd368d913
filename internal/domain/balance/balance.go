// Package balance computes crew weight distribution for a seating chart.
package balance

import (
	"strconv"

	"github.com/okian/dragonbalance/internal/domain/layout"
)

// Side of the boat a seat is on.
type Side string

const (
	Left  Side = "L"
	Right Side = "R"
)

// SeatKey returns the seat identifier for side and 1-based bench index, e.g. "L3".
func SeatKey(side Side, bench int) string {
	return string(side) + strconv.Itoa(bench)
}

// Seats maps seat identifiers to paddler names. Missing keys mean an empty seat.
type Seats map[string]string

// WeightLookup resolves a paddler name to a weight; unknown names give 0.
// *roster.Roster satisfies it.
type WeightLookup interface {
	Weight(name string) float64
}

// Bench is one computed bench row.
type Bench struct {
	Bench       int     `json:"bench"`
	LeftName    string  `json:"left_name"`
	LeftWeight  float64 `json:"left_weight"`
	RightName   string  `json:"right_name"`
	RightWeight float64 `json:"right_weight"`
}

// Totals are zone weights in kilograms.
type Totals struct {
	Left    float64 `json:"left"`
	Right   float64 `json:"right"`
	Bow     float64 `json:"bow"`
	Stern   float64 `json:"stern"`
	Drummer float64 `json:"drummer"`
	Helm    float64 `json:"helm"`
	Total   float64 `json:"total"`
}

// Percents are left/right shares of left+right and bow/stern shares of bow+stern.
type Percents struct {
	Left  float64 `json:"left"`
	Right float64 `json:"right"`
	Bow   float64 `json:"bow"`
	Stern float64 `json:"stern"`
}

// Result is the outcome of one computation.
type Result struct {
	Assignments []Bench  `json:"assignments"`
	Totals      Totals   `json:"totals"`
	Percents    Percents `json:"percents"`
}

// Calculator computes balances against a fixed roster and layout table.
// It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	weights WeightLookup
	layouts *layout.Table
}

// NewCalculator returns a calculator. A nil table means layout.Default().
func NewCalculator(weights WeightLookup, layouts *layout.Table) *Calculator {
	if layouts == nil {
		layouts = layout.Default()
	}
	return &Calculator{weights: weights, layouts: layouts}
}

// Layouts exposes the table the calculator validates sizes against.
func (c *Calculator) Layouts() *layout.Table {
	return c.layouts
}

// Compute returns the balance for boatSize. drummerWeight and helmWeight are
// already resolved by the caller. The only error is an unsupported boat size
// (layout.ErrUnsupportedBoatSize).
func (c *Calculator) Compute(boatSize int, seats Seats, drummerWeight, helmWeight float64) (Result, error) {
	benches, err := c.layouts.Benches(boatSize)
	if err != nil {
		return Result{}, err
	}

	res := Result{Assignments: make([]Bench, 0, benches)}
	half := benches / 2 // odd counts leave the extra bench to the stern
	var bowLeft, bowRight, sternLeft, sternRight float64

	for i := 1; i <= benches; i++ {
		b := Bench{
			Bench:     i,
			LeftName:  seats[SeatKey(Left, i)],
			RightName: seats[SeatKey(Right, i)],
		}
		b.LeftWeight = c.weights.Weight(b.LeftName)
		b.RightWeight = c.weights.Weight(b.RightName)
		res.Assignments = append(res.Assignments, b)

		res.Totals.Left += b.LeftWeight
		res.Totals.Right += b.RightWeight
		if i <= half {
			bowLeft += b.LeftWeight
			bowRight += b.RightWeight
		} else {
			sternLeft += b.LeftWeight
			sternRight += b.RightWeight
		}
	}

	res.Totals.Drummer = drummerWeight
	res.Totals.Helm = helmWeight
	res.Totals.Bow = drummerWeight + bowLeft + bowRight
	res.Totals.Stern = helmWeight + sternLeft + sternRight
	res.Totals.Total = res.Totals.Left + res.Totals.Right + drummerWeight + helmWeight

	sides := res.Totals.Left + res.Totals.Right
	ends := res.Totals.Bow + res.Totals.Stern
	res.Percents = Percents{
		Left:  Pct(res.Totals.Left, sides),
		Right: Pct(res.Totals.Right, sides),
		Bow:   Pct(res.Totals.Bow, ends),
		Stern: Pct(res.Totals.Stern, ends),
	}
	return res, nil
}

// Pct returns a as a percentage of b rounded to two decimals, or 0 when b is
// not positive. Rounding applies to the exact binary value with ties to even,
// so 40.625 gives 40.62 and 2.675 (stored just below) gives 2.67.
func Pct(a, b float64) float64 {
	if b <= 0 {
		return 0
	}
	v, _ := strconv.ParseFloat(strconv.FormatFloat(a/b*100, 'f', 2, 64), 64)
	return v
}
