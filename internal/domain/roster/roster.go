// Package roster loads the paddler name -> weight table.
//
// A Roster is built once and never changes afterwards, so it can be shared
// by concurrent requests without locking. The empty name is always present
// and always weighs 0; it stands for "no one assigned".
package roster

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/okian/dragonbalance/pkg/logger"
)

// Accepted header names, compared case-insensitively.
var (
	nameColumns   = []string{"nombre", "name"}
	weightColumns = []string{"peso", "weight"}
)

// Paddler is one roster entry.
type Paddler struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// Roster is an immutable name -> weight mapping.
type Roster struct {
	weights map[string]float64
	skipped int
}

func empty() *Roster {
	return &Roster{weights: map[string]float64{"": 0}}
}

// New builds a roster from an in-memory map. Names are trimmed; blank names
// and invalid weights follow the same rules as CSV rows.
func New(weights map[string]float64) *Roster {
	r := empty()
	for name, w := range weights {
		r.add(name, w)
	}
	return r
}

func (r *Roster) add(name string, weight float64) {
	name = strings.TrimSpace(name)
	if name == "" {
		r.weights[""] = 0
		return
	}
	if !validWeight(weight) {
		return
	}
	r.weights[name] = weight
}

func validWeight(w float64) bool {
	return !math.IsNaN(w) && !math.IsInf(w, 0) && w >= 0
}

// ParseWeight parses a weight cell. Both '.' and ',' are decimal separators
// and an underscore between two digits groups them, as in "1_000".
func ParseWeight(s string) (float64, error) {
	s = stripDigitSeparators(strings.ReplaceAll(strings.TrimSpace(s), ",", "."))
	w, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if !validWeight(w) {
		return 0, ErrInvalidWeight
	}
	return w, nil
}

// stripDigitSeparators drops underscores sitting between two digits. Any other
// underscore is kept so that ParseFloat rejects the cell.
func stripDigitSeparators(s string) string {
	if !strings.Contains(s, "_") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '_' && i > 0 && i < len(s)-1 && isDigit(s[i-1]) && isDigit(s[i+1]) {
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// Parse reads CSV rows with a header naming the name and weight columns.
// Rows whose weight does not parse are skipped. A syntax error in one record
// skips that record; any other read error ends parsing with the rows read so far.
func Parse(src io.Reader) *Roster {
	r, _ := parse(src, logger.Nop())
	return r
}

func parse(src io.Reader, log logger.Logger) (*Roster, int) {
	ctx := context.Background()
	r := empty()
	skipped := 0

	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return r, skipped
	}
	nameIdx, weightIdx := columnIndex(header, nameColumns), columnIndex(header, weightColumns)

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				skipped++
				log.Debug(ctx, "skipping malformed roster record", logger.Int("line", perr.Line), logger.Error(err))
				continue
			}
			log.Warn(ctx, "roster read interrupted", logger.Error(err))
			break
		}

		name := strings.TrimSpace(cell(rec, nameIdx))
		if name == "" {
			r.weights[""] = 0
			continue
		}
		w, err := ParseWeight(cell(rec, weightIdx))
		if err != nil {
			skipped++
			log.Debug(ctx, "skipping roster row with bad weight",
				logger.String("name", name), logger.String("weight", cell(rec, weightIdx)))
			continue
		}
		r.weights[name] = w
	}
	r.skipped = skipped
	return r, skipped
}

func columnIndex(header []string, names []string) int {
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		for _, n := range names {
			if h == n {
				return i
			}
		}
	}
	return -1
}

func cell(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return rec[idx]
}

// Load reads the roster at path. A missing or unreadable file yields a roster
// holding only the empty entry; that is logged, not returned.
func Load(ctx context.Context, path string, opts ...Option) *Roster {
	o := &options{log: logger.Nop()}
	for _, opt := range opts {
		opt(o)
	}

	f, err := os.Open(path)
	if err != nil {
		o.log.Warn(ctx, "roster source unavailable; using empty roster",
			logger.String("path", path), logger.Error(err))
		return empty()
	}
	defer func() { _ = f.Close() }()

	r, skipped := parse(f, o.log)
	o.log.Info(ctx, "roster loaded",
		logger.String("path", path),
		logger.Int("paddlers", r.Len()),
		logger.Int("skipped", skipped),
	)
	return r
}

// Weight returns the weight for name, or 0 when the name is unknown or blank.
func (r *Roster) Weight(name string) float64 {
	return r.weights[name]
}

// Len is the number of named paddlers (the empty entry is not counted).
func (r *Roster) Len() int {
	return len(r.weights) - 1
}

// Skipped is the number of source rows dropped while parsing.
func (r *Roster) Skipped() int {
	return r.skipped
}

// Names returns every name in order, starting with the empty entry.
func (r *Roster) Names() []string {
	out := make([]string, 0, len(r.weights))
	for name := range r.weights {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Entries returns the named paddlers sorted by name.
func (r *Roster) Entries() []Paddler {
	out := make([]Paddler, 0, r.Len())
	for _, name := range r.Names() {
		if name == "" {
			continue
		}
		out = append(out, Paddler{Name: name, Weight: r.weights[name]})
	}
	return out
}
