package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

const (
	DefaultThreshold = 75.0
	SafeBoundary     = 80.0
)

var (
	ErrDuplicateSubject = errors.New("subject already exists")
	ErrEmptySubjectName = errors.New("subject name is empty")
	ErrSubjectNotFound  = errors.New("subject not found")
	ErrWeekNotFound     = errors.New("week not found")
	ErrInvalidField     = errors.New("field must be conducted or attended")
)

type Week struct {
	ID        string `json:"id"`
	Conducted int    `json:"conducted"`
	Attended  int    `json:"attended"`
}

// Subject owns its weeks. Week order is entry order.
type Subject struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Weeks []Week `json:"weeks"`
}

// Collection is the whole attendance record, persisted as one document.
type Collection []Subject

type Field string

const (
	FieldConducted Field = "conducted"
	FieldAttended  Field = "attended"
)

func ParseField(raw string) (Field, error) {
	switch Field(strings.ToLower(strings.TrimSpace(raw))) {
	case FieldConducted:
		return FieldConducted, nil
	case FieldAttended:
		return FieldAttended, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidField, raw)
	}
}

// AddSubject appends a subject with no weeks. Names are trimmed and compared
// case-insensitively.
func (c Collection) AddSubject(id, name string) (Collection, Subject, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return c, Subject{}, ErrEmptySubjectName
	}
	for _, s := range c {
		if strings.EqualFold(s.Name, name) {
			return c, Subject{}, fmt.Errorf("%w: %s", ErrDuplicateSubject, s.Name)
		}
	}
	subject := Subject{ID: id, Name: name, Weeks: []Week{}}
	return append(c.clone(), subject), subject, nil
}

func (c Collection) RemoveSubject(id string) (Collection, error) {
	idx := c.index(id)
	if idx < 0 {
		return c, ErrSubjectNotFound
	}
	out := make(Collection, 0, len(c)-1)
	out = append(out, c[:idx]...)
	return append(out, c[idx+1:]...), nil
}

func (c Collection) Find(id string) (Subject, bool) {
	idx := c.index(id)
	if idx < 0 {
		return Subject{}, false
	}
	return c[idx], true
}

// FindByName resolves an exact id first, then a case-insensitive name.
func (c Collection) FindByName(ref string) (Subject, bool) {
	if s, ok := c.Find(ref); ok {
		return s, true
	}
	for _, s := range c {
		if strings.EqualFold(s.Name, strings.TrimSpace(ref)) {
			return s, true
		}
	}
	return Subject{}, false
}

// Replace swaps in an edited subject by id.
func (c Collection) Replace(subject Subject) (Collection, error) {
	idx := c.index(subject.ID)
	if idx < 0 {
		return c, ErrSubjectNotFound
	}
	out := c.clone()
	out[idx] = subject
	return out, nil
}

func (c Collection) index(id string) int {
	for i, s := range c {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func (c Collection) clone() Collection {
	out := make(Collection, len(c), len(c)+1)
	copy(out, c)
	return out
}

// AddWeek appends an empty week.
func (s Subject) AddWeek(id string) Subject {
	weeks := make([]Week, len(s.Weeks), len(s.Weeks)+1)
	copy(weeks, s.Weeks)
	s.Weeks = append(weeks, Week{ID: id})
	return s
}

func (s Subject) RemoveWeek(id string) (Subject, error) {
	idx := s.weekIndex(id)
	if idx < 0 {
		return s, ErrWeekNotFound
	}
	weeks := make([]Week, 0, len(s.Weeks)-1)
	weeks = append(weeks, s.Weeks[:idx]...)
	s.Weeks = append(weeks, s.Weeks[idx+1:]...)
	return s, nil
}

// UpdateWeek sets one field. Values are clamped so that
// 0 <= attended <= conducted always holds.
func (s Subject) UpdateWeek(id string, field Field, value int) (Subject, error) {
	idx := s.weekIndex(id)
	if idx < 0 {
		return s, ErrWeekNotFound
	}
	weeks := make([]Week, len(s.Weeks))
	copy(weeks, s.Weeks)
	w := &weeks[idx]
	value = max(0, value)
	switch field {
	case FieldConducted:
		w.Conducted = value
		w.Attended = min(w.Attended, w.Conducted)
	case FieldAttended:
		w.Attended = min(value, w.Conducted)
	default:
		return s, fmt.Errorf("%w: %q", ErrInvalidField, field)
	}
	s.Weeks = weeks
	return s, nil
}

// WeekAt resolves a 1-based week number to its id.
func (s Subject) WeekAt(number int) (Week, bool) {
	if number < 1 || number > len(s.Weeks) {
		return Week{}, false
	}
	return s.Weeks[number-1], true
}

func (s Subject) weekIndex(id string) int {
	for i, w := range s.Weeks {
		if w.ID == id {
			return i
		}
	}
	return -1
}

// ParseCount reads a leading integer the way a lenient form field would.
// Anything without leading digits counts as 0.
func ParseCount(raw string) int {
	raw = strings.TrimSpace(raw)
	sign := 1
	if raw != "" && (raw[0] == '-' || raw[0] == '+') {
		if raw[0] == '-' {
			sign = -1
		}
		raw = raw[1:]
	}
	n := 0
	for _, r := range raw {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		if n > math.MaxInt32 {
			n = math.MaxInt32
		}
	}
	return sign * n
}
