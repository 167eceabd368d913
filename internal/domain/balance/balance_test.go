package balance

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/okian/dragonbalance/internal/domain/layout"
	"github.com/okian/dragonbalance/internal/domain/roster"
	. "github.com/smartystreets/goconvey/convey"
)

const tolerance = 1e-9

func testRoster() *roster.Roster {
	return roster.New(map[string]float64{
		"Ana":    60,
		"Bea":    55.5,
		"Carlos": 82.3,
		"Dani":   74,
		"Eva":    63.2,
		"Fer":    90.1,
	})
}

func TestComputeEmptyBoat(t *testing.T) {
	Convey("Given a DB10 with nobody seated", t, func() {
		calc := NewCalculator(testRoster(), nil)

		res, err := calc.Compute(10, nil, 0, 0)

		Convey("Then all totals and percentages are zero", func() {
			So(err, ShouldBeNil)
			So(res.Totals, ShouldResemble, Totals{})
			So(res.Percents, ShouldResemble, Percents{})
		})

		Convey("And five empty benches are listed in order", func() {
			So(len(res.Assignments), ShouldEqual, 5)
			for i, b := range res.Assignments {
				So(b.Bench, ShouldEqual, i+1)
				So(b.LeftName, ShouldEqual, "")
				So(b.RightName, ShouldEqual, "")
			}
		})
	})
}

func TestComputeSinglePaddler(t *testing.T) {
	Convey("Given a DB10 with a 60kg paddler on left bench 1", t, func() {
		calc := NewCalculator(testRoster(), nil)

		res, err := calc.Compute(10, Seats{"L1": "Ana"}, 0, 0)

		Convey("Then all weight is on the left and at the bow", func() {
			So(err, ShouldBeNil)
			So(res.Totals.Left, ShouldEqual, 60.0)
			So(res.Totals.Right, ShouldEqual, 0.0)
			So(res.Totals.Total, ShouldEqual, 60.0)
			So(res.Totals.Bow, ShouldEqual, 60.0)
			So(res.Totals.Stern, ShouldEqual, 0.0)
			So(res.Percents.Left, ShouldEqual, 100.0)
			So(res.Percents.Right, ShouldEqual, 0.0)
			So(res.Percents.Bow, ShouldEqual, 100.0)
			So(res.Percents.Stern, ShouldEqual, 0.0)
		})

		Convey("And the bench row records name and weight", func() {
			So(res.Assignments[0], ShouldResemble, Bench{Bench: 1, LeftName: "Ana", LeftWeight: 60})
		})
	})
}

func TestComputeZones(t *testing.T) {
	Convey("Given a DB10 with drummer, helm and paddlers on both halves", t, func() {
		calc := NewCalculator(testRoster(), nil)
		// benches 1-2 are bow, 3-5 stern
		seats := Seats{
			"L1": "Ana", "R1": "Bea",
			"L2": "Dani",
			"R3": "Carlos",
			"L5": "Eva", "R5": "Fer",
		}

		res, err := calc.Compute(10, seats, 50, 70)

		Convey("Then the front two benches count toward the bow", func() {
			So(err, ShouldBeNil)
			So(res.Totals.Bow, ShouldAlmostEqual, 50+60+55.5+74, tolerance)
			So(res.Totals.Stern, ShouldAlmostEqual, 70+82.3+63.2+90.1, tolerance)
		})

		Convey("And left and right sums exclude drummer and helm", func() {
			So(res.Totals.Left, ShouldAlmostEqual, 60+74+63.2, tolerance)
			So(res.Totals.Right, ShouldAlmostEqual, 55.5+82.3+90.1, tolerance)
			So(res.Totals.Drummer, ShouldEqual, 50.0)
			So(res.Totals.Helm, ShouldEqual, 70.0)
		})

		Convey("And percentages are rounded to two decimals", func() {
			So(res.Percents.Left, ShouldAlmostEqual, 46.39, tolerance)
			So(res.Percents.Right, ShouldAlmostEqual, 53.61, tolerance)
			So(res.Percents.Bow, ShouldAlmostEqual, 43.94, tolerance)
			So(res.Percents.Stern, ShouldAlmostEqual, 56.06, tolerance)
		})
	})
}

func TestComputeTiedShares(t *testing.T) {
	Convey("Given a crew whose side split is an exact tie at the third decimal", t, func() {
		weights := roster.New(map[string]float64{"A": 60, "B": 70, "C": 95, "D": 95})
		calc := NewCalculator(weights, nil)

		res, err := calc.Compute(10, Seats{"L1": "A", "L2": "B", "R1": "C", "R2": "D"}, 0, 0)

		Convey("Then the shares round to even and still sum to 100", func() {
			So(err, ShouldBeNil)
			So(res.Percents.Left, ShouldEqual, 40.62)
			So(res.Percents.Right, ShouldEqual, 59.38)
			So(res.Percents.Left+res.Percents.Right, ShouldAlmostEqual, 100, tolerance)
		})
	})
}

func TestComputeUnknownNames(t *testing.T) {
	Convey("Given seats naming people missing from the roster", t, func() {
		calc := NewCalculator(testRoster(), nil)

		res, err := calc.Compute(20, Seats{"L1": "Ghost", "R10": "", "L4": "Ana"}, 0, 0)

		Convey("Then they weigh 0 and no error is raised", func() {
			So(err, ShouldBeNil)
			So(res.Assignments[0].LeftName, ShouldEqual, "Ghost")
			So(res.Assignments[0].LeftWeight, ShouldEqual, 0.0)
			So(res.Totals.Total, ShouldEqual, 60.0)
			So(len(res.Assignments), ShouldEqual, 10)
		})
	})
}

func TestComputeUnsupportedSize(t *testing.T) {
	Convey("Given a boat size outside the layout table", t, func() {
		calc := NewCalculator(testRoster(), nil)

		_, err := calc.Compute(12, Seats{"L1": "Ana"}, 0, 0)

		Convey("Then a named, catchable error is returned", func() {
			So(errors.Is(err, ErrUnsupportedBoatSize), ShouldBeTrue)
			So(errors.Is(err, layout.ErrUnsupportedBoatSize), ShouldBeTrue)
		})
	})
}

func TestComputeOddBenches(t *testing.T) {
	Convey("Given a three-bench layout", t, func() {
		tbl, err := layout.New(map[int]int{6: 3})
		So(err, ShouldBeNil)
		calc := NewCalculator(testRoster(), tbl)

		res, err := calc.Compute(6, Seats{"L1": "Ana", "L2": "Bea", "R3": "Dani"}, 0, 0)

		Convey("Then only the first bench is bow and the extra bench goes to the stern", func() {
			So(err, ShouldBeNil)
			So(res.Totals.Bow, ShouldEqual, 60.0)
			So(res.Totals.Stern, ShouldAlmostEqual, 55.5+74, tolerance)
		})
	})
}

func TestComputeInvariants(t *testing.T) {
	Convey("Given random seatings on every supported size", t, func() {
		r := testRoster()
		calc := NewCalculator(r, nil)
		names := r.Names()
		rng := rand.New(rand.NewSource(7))

		for _, l := range calc.Layouts().All() {
			for round := 0; round < 50; round++ {
				seats := Seats{}
				for i := 1; i <= l.Benches; i++ {
					seats[SeatKey(Left, i)] = names[rng.Intn(len(names))]
					seats[SeatKey(Right, i)] = names[rng.Intn(len(names))]
				}
				drummer := r.Weight(names[rng.Intn(len(names))])
				helm := r.Weight(names[rng.Intn(len(names))])

				res, err := calc.Compute(l.Size, seats, drummer, helm)
				So(err, ShouldBeNil)

				tot := res.Totals
				So(tot.Left+tot.Right+tot.Drummer+tot.Helm, ShouldAlmostEqual, tot.Total, tolerance)
				So(tot.Bow+tot.Stern, ShouldAlmostEqual, tot.Total, tolerance)

				for _, p := range []float64{res.Percents.Left, res.Percents.Right, res.Percents.Bow, res.Percents.Stern} {
					So(p, ShouldBeBetweenOrEqual, 0.0, 100.0)
				}

				again, err := calc.Compute(l.Size, seats, drummer, helm)
				So(err, ShouldBeNil)
				So(again, ShouldResemble, res)
			}
		}
	})
}

func TestPct(t *testing.T) {
	Convey("Given the percentage helper", t, func() {
		Convey("Then a zero denominator gives exactly zero", func() {
			So(Pct(0, 0), ShouldEqual, 0.0)
			So(Pct(5, 0), ShouldEqual, 0.0)
		})

		Convey("And results are rounded to two decimals", func() {
			So(Pct(1, 3), ShouldEqual, 33.33)
			So(Pct(2, 3), ShouldEqual, 66.67)
			So(Pct(3, 3), ShouldEqual, 100.0)
		})

		Convey("And exact ties round to even", func() {
			So(Pct(130, 320), ShouldEqual, 40.62)
			So(Pct(190, 320), ShouldEqual, 59.38)
			So(Pct(1, 32), ShouldEqual, 3.12)
			So(Pct(3, 32), ShouldEqual, 9.38)
		})

		Convey("And inexact values round their binary value", func() {
			So(Pct(2.675, 100), ShouldEqual, 2.67)
		})
	})
}

func TestSeatKey(t *testing.T) {
	Convey("Given a side and bench index", t, func() {
		So(SeatKey(Left, 1), ShouldEqual, "L1")
		So(SeatKey(Right, 10), ShouldEqual, "R10")
	})
}
