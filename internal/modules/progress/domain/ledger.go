package domain

import (
	"sort"
	"time"
)

const dayLayout = "2006-01-02"

// Ledger maps a calendar day (YYYY-MM-DD) to minutes studied that day.
type Ledger map[string]int

func (l Ledger) Add(day string, minutes int) Ledger {
	out := make(Ledger, len(l)+1)
	for k, v := range l {
		out[k] = v
	}
	if minutes > 0 {
		out[day] += minutes
	}
	return out
}

func (l Ledger) TotalMinutes() int {
	total := 0
	for _, m := range l {
		total += m
	}
	return total
}

func (l Ledger) ActiveDays() int {
	n := 0
	for _, m := range l {
		if m > 0 {
			n++
		}
	}
	return n
}

// MaxStreak is the longest run of consecutive active days.
func (l Ledger) MaxStreak() int {
	days := l.activeDays()
	best, run := 0, 0
	var prev time.Time
	for i, d := range days {
		if i > 0 && d.Sub(prev) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
		prev = d
	}
	return best
}

// CurrentStreak counts active days ending today, or yesterday when today
// has no minutes yet.
func (l Ledger) CurrentStreak(today time.Time) int {
	day := civil(today)
	if l[day.Format(dayLayout)] <= 0 {
		day = day.AddDate(0, 0, -1)
	}
	n := 0
	for l[day.Format(dayLayout)] > 0 {
		n++
		day = day.AddDate(0, 0, -1)
	}
	return n
}

func (l Ledger) activeDays() []time.Time {
	var days []time.Time
	for k, m := range l {
		if m <= 0 {
			continue
		}
		d, err := time.Parse(dayLayout, k)
		if err != nil {
			continue
		}
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// HeatLevel buckets a day's minutes into intensity 0..5.
func HeatLevel(minutes int) int {
	switch {
	case minutes <= 0:
		return 0
	case minutes < 15:
		return 1
	case minutes < 30:
		return 2
	case minutes < 60:
		return 3
	case minutes < 120:
		return 4
	default:
		return 5
	}
}

type HeatCell struct {
	Day     string
	Minutes int
	Level   int
}

// Heatmap returns the last n days ending at today, oldest first.
func (l Ledger) Heatmap(today time.Time, n int) []HeatCell {
	cells := make([]HeatCell, 0, n)
	start := civil(today).AddDate(0, 0, -(n - 1))
	for i := 0; i < n; i++ {
		key := start.AddDate(0, 0, i).Format(dayLayout)
		cells = append(cells, HeatCell{Day: key, Minutes: l[key], Level: HeatLevel(l[key])})
	}
	return cells
}

// civil drops the clock and location so day arithmetic ignores DST.
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
