package domain

import (
	"errors"
	"sort"
	"strings"
	"time"
)

var ErrMissingDate = errors.New("date is required")

type Exam struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Date string `json:"date"`
}

func (e Exam) DayIn(loc *time.Location) (time.Time, bool) {
	day, err := time.ParseInLocation(DayLayout, e.Date, loc)
	return day, err == nil
}

type Exams []Exam

func (es Exams) Add(id, name string, date time.Time) (Exams, Exam, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return es, Exam{}, ErrEmptyText
	}
	if date.IsZero() {
		return es, Exam{}, ErrMissingDate
	}
	exam := Exam{ID: id, Name: name, Date: date.Format(DayLayout)}
	out := make(Exams, len(es), len(es)+1)
	copy(out, es)
	return append(out, exam), exam, nil
}

func (es Exams) Remove(id string) (Exams, error) {
	out := make(Exams, 0, len(es))
	for _, e := range es {
		if e.ID != id {
			out = append(out, e)
		}
	}
	if len(out) == len(es) {
		return es, ErrNotFound
	}
	return out, nil
}

// Sorted orders exams by date, soonest first.
func (es Exams) Sorted() Exams {
	out := make(Exams, len(es))
	copy(out, es)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func (es Exams) Resolve(ref string) (Exam, error) {
	sorted := es.Sorted()
	ids := make([]string, len(sorted))
	for i, e := range sorted {
		ids[i] = e.ID
	}
	idx, err := resolve(ids, ref)
	if err != nil {
		return Exam{}, err
	}
	return sorted[idx], nil
}
