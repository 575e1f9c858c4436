package domain

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	DayLayout     = "2006-01-02"
	UpcomingLimit = 3
	// MinRefPrefix is the shortest id prefix accepted as a reference.
	MinRefPrefix = 4
)

var (
	ErrEmptyText   = errors.New("text is empty")
	ErrNotFound    = errors.New("item not found")
	ErrAmbiguous   = errors.New("reference matches more than one item")
	ErrBadPriority = errors.New("priority must be normal or high")
)

type Priority string

const (
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

func ParsePriority(raw string) (Priority, error) {
	switch Priority(strings.ToLower(strings.TrimSpace(raw))) {
	case "", PriorityNormal:
		return PriorityNormal, nil
	case PriorityHigh:
		return PriorityHigh, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrBadPriority, raw)
	}
}

type Task struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	Due         string    `json:"due,omitempty"`
	Priority    Priority  `json:"priority"`
	Done        bool      `json:"done"`
	CreatedAt   time.Time `json:"created_at"`
	CompletedAt time.Time `json:"completed_at,omitempty"`
}

func (t Task) Dated() bool {
	return t.Due != ""
}

// DueIn is the due day as local midnight in loc.
func (t Task) DueIn(loc *time.Location) (time.Time, bool) {
	if t.Due == "" {
		return time.Time{}, false
	}
	day, err := time.ParseInLocation(DayLayout, t.Due, loc)
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}

type Tasks []Task

func (ts Tasks) Add(id, text string, due time.Time, priority Priority, now time.Time) (Tasks, Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return ts, Task{}, ErrEmptyText
	}
	task := Task{ID: id, Text: text, Priority: priority, CreatedAt: now}
	if !due.IsZero() {
		task.Due = due.Format(DayLayout)
	}
	out := make(Tasks, len(ts), len(ts)+1)
	copy(out, ts)
	return append(out, task), task, nil
}

// Edit replaces the text. Blank text keeps the old one.
func (ts Tasks) Edit(id, text string) (Tasks, Task, error) {
	return ts.update(id, func(t *Task) {
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			t.Text = trimmed
		}
	})
}

// SetDone toggles completion. completed is true only on the transition from
// open to done.
func (ts Tasks) SetDone(id string, done bool, now time.Time) (Tasks, Task, bool, error) {
	completed := false
	out, task, err := ts.update(id, func(t *Task) {
		completed = done && !t.Done
		t.Done = done
		if done {
			if completed {
				t.CompletedAt = now
			}
		} else {
			t.CompletedAt = time.Time{}
		}
	})
	return out, task, completed, err
}

func (ts Tasks) Remove(id string) (Tasks, error) {
	out := make(Tasks, 0, len(ts))
	found := false
	for _, t := range ts {
		if t.ID == id {
			found = true
			continue
		}
		out = append(out, t)
	}
	if !found {
		return ts, ErrNotFound
	}
	return out, nil
}

func (ts Tasks) ClearCompleted() (Tasks, int) {
	out := make(Tasks, 0, len(ts))
	for _, t := range ts {
		if !t.Done {
			out = append(out, t)
		}
	}
	return out, len(ts) - len(out)
}

// Sorted orders open tasks before done ones; open high priority first; then
// dated before undated, earliest first. Ties keep insertion order.
func (ts Tasks) Sorted() Tasks {
	out := make(Tasks, len(ts))
	copy(out, ts)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Done != b.Done {
			return !a.Done
		}
		if !a.Done && a.Priority != b.Priority {
			return a.Priority == PriorityHigh
		}
		switch {
		case a.Dated() && b.Dated():
			return a.Due < b.Due
		case a.Dated():
			return true
		default:
			return false
		}
	})
	return out
}

// Upcoming returns the earliest open dated tasks.
func (ts Tasks) Upcoming(n int) Tasks {
	var open Tasks
	for _, t := range ts {
		if !t.Done && t.Dated() {
			open = append(open, t)
		}
	}
	sort.SliceStable(open, func(i, j int) bool { return open[i].Due < open[j].Due })
	if len(open) > n {
		open = open[:n]
	}
	return open
}

// CompletionRate is the rounded share of done tasks, 0 when there are none.
func (ts Tasks) CompletionRate() int {
	if len(ts) == 0 {
		return 0
	}
	return int(math.Round(float64(ts.DoneCount()) / float64(len(ts)) * 100))
}

func (ts Tasks) DoneCount() int {
	n := 0
	for _, t := range ts {
		if t.Done {
			n++
		}
	}
	return n
}

func (ts Tasks) DatedCount() int {
	n := 0
	for _, t := range ts {
		if t.Dated() {
			n++
		}
	}
	return n
}

// Resolve finds a task by 1-based position in Sorted order, full id, or an
// unambiguous id prefix.
func (ts Tasks) Resolve(ref string) (Task, error) {
	sorted := ts.Sorted()
	ids := make([]string, len(sorted))
	for i, t := range sorted {
		ids[i] = t.ID
	}
	idx, err := resolve(ids, ref)
	if err != nil {
		return Task{}, err
	}
	return sorted[idx], nil
}

func (ts Tasks) update(id string, fn func(*Task)) (Tasks, Task, error) {
	out := make(Tasks, len(ts))
	copy(out, ts)
	for i := range out {
		if out[i].ID == id {
			fn(&out[i])
			return out, out[i], nil
		}
	}
	return ts, Task{}, ErrNotFound
}

func resolve(ids []string, ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return -1, fmt.Errorf("%w: empty reference", ErrNotFound)
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if n >= 1 && n <= len(ids) {
			return n - 1, nil
		}
		return -1, fmt.Errorf("%w: #%d", ErrNotFound, n)
	}
	match := -1
	for i, id := range ids {
		if id == ref {
			return i, nil
		}
		if len(ref) >= MinRefPrefix && strings.HasPrefix(id, ref) {
			if match >= 0 {
				return -1, fmt.Errorf("%w: %s", ErrAmbiguous, ref)
			}
			match = i
		}
	}
	if match < 0 {
		return -1, fmt.Errorf("%w: %s", ErrNotFound, ref)
	}
	return match, nil
}

// DaysLeft is the whole days, rounded up, from now until local midnight of
// day.
func DaysLeft(day, now time.Time) int {
	return int(math.Ceil(day.Sub(now).Hours() / 24))
}

// DeadlineLabel turns DaysLeft into the short tag shown next to a deadline.
func DeadlineLabel(days int) string {
	switch {
	case days < 0:
		return "Overdue"
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	default:
		return fmt.Sprintf("In %d days", days)
	}
}
