package domain

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrUnknownSchema = errors.New("schema must be 100, 125 or 150")
	ErrNegativeMarks = errors.New("marks cannot be negative")
	ErrMarksExceed   = errors.New("marks exceed the schema maximum")
)

// Schema is the maximum total. 100 counts IA and end-semester marks, 125
// adds the lab component and 150 adds the practical as well.
type Schema int

const (
	Schema100 Schema = 100
	Schema125 Schema = 125
	Schema150 Schema = 150
)

func ParseSchema(v int) (Schema, error) {
	switch s := Schema(v); s {
	case Schema100, Schema125, Schema150:
		return s, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnknownSchema, v)
	}
}

func (s Schema) UsesLab() bool       { return s >= Schema125 }
func (s Schema) UsesPractical() bool { return s == Schema150 }

type Marks struct {
	IA        float64 `json:"ia"`
	End       float64 `json:"end"`
	Lab       float64 `json:"lab"`
	Practical float64 `json:"practical"`
}

type Grade struct {
	Label       string `json:"label"`
	GradePoints int    `json:"grade_points"`
}

var (
	GradeO       = Grade{Label: "O Grade (10 GP)", GradePoints: 10}
	GradeAPlus   = Grade{Label: "A+ Grade (9 GP)", GradePoints: 9}
	GradeA       = Grade{Label: "A Grade (8 GP)", GradePoints: 8}
	GradeNotUpTo = Grade{Label: "Not up to mark", GradePoints: 0}
)

func GradeFor(percentage float64) Grade {
	switch {
	case percentage >= 80:
		return GradeO
	case percentage >= 70:
		return GradeAPlus
	case percentage >= 60:
		return GradeA
	default:
		return GradeNotUpTo
	}
}

type Result struct {
	Schema      Schema    `json:"schema"`
	Marks       Marks     `json:"marks"`
	Total       float64   `json:"total"`
	Percentage  float64   `json:"percentage"`
	Grade       Grade     `json:"grade"`
	EvaluatedAt time.Time `json:"evaluated_at"`
}

// Evaluate totals the components the schema counts. Components outside the
// schema are ignored.
func Evaluate(schema Schema, marks Marks, now time.Time) (Result, error) {
	if _, err := ParseSchema(int(schema)); err != nil {
		return Result{}, err
	}
	if marks.IA < 0 || marks.End < 0 || marks.Lab < 0 || marks.Practical < 0 {
		return Result{}, ErrNegativeMarks
	}
	counted := Marks{IA: marks.IA, End: marks.End}
	total := marks.IA + marks.End
	if schema.UsesLab() {
		counted.Lab = marks.Lab
		total += marks.Lab
	}
	if schema.UsesPractical() {
		counted.Practical = marks.Practical
		total += marks.Practical
	}
	if total > float64(schema) {
		return Result{}, fmt.Errorf("%w: %.2f of %d", ErrMarksExceed, total, schema)
	}
	percentage := math.Round(total/float64(schema)*100*100) / 100
	return Result{
		Schema:      schema,
		Marks:       counted,
		Total:       total,
		Percentage:  percentage,
		Grade:       GradeFor(percentage),
		EvaluatedAt: now,
	}, nil
}
