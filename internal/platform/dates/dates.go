package dates

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"

	apperrors "lockedin/internal/platform/errors"
)

var layouts = []string{
	"2006-01-02",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	time.RFC3339,
	"2006/01/02",
	"02/01/2006",
}

// Parser resolves user supplied dates such as "2026-03-14", "tomorrow" or
// "next friday" relative to a base instant.
type Parser struct {
	w *when.Parser
}

func NewParser() *Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &Parser{w: w}
}

// Parse returns the calendar day described by input in base's location.
// Fixed layouts win over natural language so ISO dates never drift.
func (p *Parser) Parse(input string, base time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, fmt.Errorf("%w: empty date", apperrors.ErrInvalidInput)
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, input, base.Location()); err == nil {
			return t, nil
		}
	}
	result, err := p.w.Parse(input, base)
	if err != nil || result == nil {
		return time.Time{}, fmt.Errorf("%w: unrecognised date %q", apperrors.ErrInvalidInput, input)
	}
	return result.Time, nil
}

// StartOfDay truncates t to local midnight.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysUntil is the whole number of days, rounded up, from now until target.
// Past targets yield zero or negative values.
func DaysUntil(target, now time.Time) int {
	return int(math.Ceil(target.Sub(now).Hours() / 24))
}
