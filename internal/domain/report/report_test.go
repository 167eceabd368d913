package report

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/okian/dragonbalance/internal/domain/balance"
	"github.com/okian/dragonbalance/internal/domain/roster"
	"github.com/okian/dragonbalance/internal/platform/i18n"
	. "github.com/smartystreets/goconvey/convey"
	"golang.org/x/text/language"
)

func sampleDocument(boatSize int) Document {
	r := roster.New(map[string]float64{"Ana": 60, "Bea": 55.5, "Dani": 74})
	calc := balance.NewCalculator(r, nil)
	res, err := calc.Compute(boatSize, balance.Seats{"L1": "Ana", "R2": "Bea", "L3": "Ghost"}, r.Weight("Dani"), 0)
	So(err, ShouldBeNil)
	benches, err := calc.Layouts().Benches(boatSize)
	So(err, ShouldBeNil)
	return Document{BoatSize: boatSize, Benches: benches, Drummer: "Dani", Result: res}
}

func newTestRenderer() *Renderer {
	bundle, err := i18n.Load("es")
	So(err, ShouldBeNil)
	clock := func() time.Time { return time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC) }
	return NewRenderer(bundle, WithCompression(false), WithClock(clock))
}

func TestRender(t *testing.T) {
	Convey("Given a DB10 result", t, func() {
		r := newTestRenderer()
		doc := sampleDocument(10)

		Convey("When rendering in English", func() {
			var buf bytes.Buffer
			err := r.Render(&buf, language.English, doc)
			out := buf.Bytes()

			Convey("Then a PDF with the report sections is produced", func() {
				So(err, ShouldBeNil)
				So(bytes.HasPrefix(out, []byte("%PDF-")), ShouldBeTrue)
				So(bytes.Contains(out, []byte("Boat: DB10")), ShouldBeTrue)
				So(bytes.Contains(out, []byte("Benches: 5")), ShouldBeTrue)
				So(bytes.Contains(out, []byte("Drummer: Dani \\(74.0 kg\\)")), ShouldBeTrue)
				So(bytes.Contains(out, []byte("Helm: - \\(0.0 kg\\)")), ShouldBeTrue)
				So(bytes.Contains(out, []byte("Stern \\(kg\\)")), ShouldBeTrue)
				So(bytes.Contains(out, []byte("Left \\(Name/Weight\\)")), ShouldBeTrue)
			})

			Convey("And seats show name and weight, unknown names at 0", func() {
				So(bytes.Contains(out, []byte("Ana \\(60.0 kg\\)")), ShouldBeTrue)
				So(bytes.Contains(out, []byte("Bea \\(55.5 kg\\)")), ShouldBeTrue)
				So(bytes.Contains(out, []byte("Ghost \\(0.0 kg\\)")), ShouldBeTrue)
			})

			Convey("And totals use one decimal", func() {
				So(bytes.Contains(out, []byte("(189.5)")), ShouldBeTrue)
			})

			Convey("And the footer numbers pages", func() {
				So(bytes.Contains(out, []byte("Page 1 of 1")), ShouldBeTrue)
			})
		})

		Convey("When rendering in Spanish", func() {
			var buf bytes.Buffer
			So(r.Render(&buf, language.Spanish, doc), ShouldBeNil)
			out := buf.Bytes()

			Convey("Then labels are translated and encoded for the core fonts", func() {
				So(bytes.Contains(out, []byte("Babor \\(kg\\)")), ShouldBeTrue)
				So(bytes.Contains(out, []byte("Tim\xf3n")), ShouldBeTrue)
				So(bytes.Contains(out, []byte("Bea \\(55,5 kg\\)")), ShouldBeTrue)
			})
		})
	})

	Convey("Given a result too long for one page", t, func() {
		r := newTestRenderer()
		rows := make([]balance.Bench, 60)
		for i := range rows {
			rows[i] = balance.Bench{Bench: i + 1}
		}
		doc := Document{BoatSize: 120, Benches: 60, Result: balance.Result{Assignments: rows}}

		var buf bytes.Buffer
		err := r.Render(&buf, language.English, doc)

		Convey("Then the bench table continues on a second page", func() {
			So(err, ShouldBeNil)
			So(bytes.Contains(buf.Bytes(), []byte("Page 2 of 2")), ShouldBeTrue)
		})
	})

	Convey("Given a writer that fails", t, func() {
		r := newTestRenderer()
		err := r.Render(failingWriter{}, language.English, Document{BoatSize: 10, Benches: 5})

		Convey("Then a render error is returned", func() {
			So(errors.Is(err, ErrRender), ShouldBeTrue)
		})
	})
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }
