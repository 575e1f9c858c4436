package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

var ErrBadLabStatus = errors.New("status must be pending, in-progress, submitted or evaluated")

type LabStatus string

const (
	LabPending    LabStatus = "pending"
	LabInProgress LabStatus = "in-progress"
	LabSubmitted  LabStatus = "submitted"
	LabEvaluated  LabStatus = "evaluated"
)

var labCycle = []LabStatus{LabPending, LabInProgress, LabSubmitted, LabEvaluated}

func ParseLabStatus(raw string) (LabStatus, error) {
	s := LabStatus(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), " ", "-"))
	if s == "" {
		return LabPending, nil
	}
	for _, known := range labCycle {
		if s == known {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrBadLabStatus, raw)
}

// Next cycles pending, in-progress, submitted, evaluated and back.
func (s LabStatus) Next() LabStatus {
	for i, known := range labCycle {
		if s == known {
			return labCycle[(i+1)%len(labCycle)]
		}
	}
	return LabPending
}

// Open reports statuses that still need work.
func (s LabStatus) Open() bool {
	return s == LabPending || s == LabInProgress
}

type LabItem struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	DueDate string    `json:"due_date,omitempty"`
	Link    string    `json:"link,omitempty"`
	Status  LabStatus `json:"status"`
}

type LabItems []LabItem

func (ls LabItems) Add(id, name string, due time.Time, link string, status LabStatus) (LabItems, LabItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return ls, LabItem{}, ErrEmptyText
	}
	item := LabItem{ID: id, Name: name, Link: strings.TrimSpace(link), Status: status}
	if !due.IsZero() {
		item.DueDate = due.Format(DayLayout)
	}
	out := make(LabItems, len(ls), len(ls)+1)
	copy(out, ls)
	return append(out, item), item, nil
}

// SetStatus moves an item to status, or to the next status in the cycle
// when status is empty.
func (ls LabItems) SetStatus(id string, status LabStatus) (LabItems, LabItem, error) {
	out := make(LabItems, len(ls))
	copy(out, ls)
	for i := range out {
		if out[i].ID != id {
			continue
		}
		if status == "" {
			status = out[i].Status.Next()
		}
		out[i].Status = status
		return out, out[i], nil
	}
	return ls, LabItem{}, ErrNotFound
}

func (ls LabItems) Remove(id string) (LabItems, error) {
	out := make(LabItems, 0, len(ls))
	for _, l := range ls {
		if l.ID != id {
			out = append(out, l)
		}
	}
	if len(out) == len(ls) {
		return ls, ErrNotFound
	}
	return out, nil
}

func (ls LabItems) Resolve(ref string) (LabItem, error) {
	ids := make([]string, len(ls))
	for i, l := range ls {
		ids[i] = l.ID
	}
	idx, err := resolve(ids, ref)
	if err != nil {
		return LabItem{}, err
	}
	return ls[idx], nil
}

type LabProgress struct {
	Total     int
	Completed int
	Percent   int
}

// Progress counts submitted and evaluated items as done.
func (ls LabItems) Progress() LabProgress {
	p := LabProgress{Total: len(ls)}
	for _, l := range ls {
		if !l.Status.Open() {
			p.Completed++
		}
	}
	if p.Total > 0 {
		p.Percent = int(math.Round(float64(p.Completed) / float64(p.Total) * 100))
	}
	return p
}

// Pending returns up to n open items in entry order.
func (ls LabItems) Pending(n int) LabItems {
	var out LabItems
	for _, l := range ls {
		if l.Status.Open() {
			out = append(out, l)
			if len(out) == n {
				break
			}
		}
	}
	return out
}
