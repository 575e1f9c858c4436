package dto

import "time"

type EvaluateInput struct {
	Schema    int
	IA        float64
	End       float64
	Lab       float64
	Practical float64
}

type Result struct {
	Schema      int
	Total       float64
	Percentage  float64
	Grade       string
	GradePoints int
	EvaluatedAt time.Time
}
