// Package timegrid holds the pure slot-grid arithmetic shared by the
// schedule resolver and the reservation store: "HH:MM" normalization, step
// inference and past-deadline checks.
package timegrid

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// FallbackStepMin is used when a day has fewer than two slots and no step
// can be inferred from the grid.
const FallbackStepMin = 60

var (
	bareHourRe = regexp.MustCompile(`^\d{1,2}$`)
	hourMinRe  = regexp.MustCompile(`^(\d{1,2})\s*:\s*(\d{1,2})$`)
	canonRe    = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// Normalize coerces a time input to canonical zero-padded "HH:MM".
// Bare hours ("9") become "09:00". Anything it cannot parse is returned
// empty so callers can drop it.
func Normalize(input string) string {
	t := strings.TrimSpace(input)
	if t == "" {
		return ""
	}
	if bareHourRe.MatchString(t) {
		h, _ := strconv.Atoi(t)
		if h > 23 {
			return ""
		}
		return fmt.Sprintf("%02d:00", h)
	}
	m := hourMinRe.FindStringSubmatch(t)
	if m == nil {
		return ""
	}
	h, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])
	if h > 23 || mm > 59 {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", h, mm)
}

// ToMinutes converts canonical "HH:MM" to minutes since midnight.
func ToMinutes(hhmm string) int {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return 0
	}
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return h*60 + m
}

// FromMinutes converts minutes since midnight back to "HH:MM".
func FromMinutes(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// UniqSorted normalizes, drops malformed entries, de-duplicates and sorts
// a raw slot list.
func UniqSorted(hours []string) []string {
	seen := make(map[string]bool, len(hours))
	out := make([]string, 0, len(hours))
	for _, raw := range hours {
		h := Normalize(raw)
		if h == "" || !canonRe.MatchString(h) || seen[h] {
			continue
		}
		seen[h] = true
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return ToMinutes(out[i]) < ToMinutes(out[j]) })
	return out
}

// StepMin infers the grid step as the minimum positive gap between
// consecutive sorted slots.
func StepMin(sorted []string) int {
	if len(sorted) < 2 {
		return FallbackStepMin
	}
	best := 0
	for i := 1; i < len(sorted); i++ {
		diff := ToMinutes(sorted[i]) - ToMinutes(sorted[i-1])
		if diff > 0 && (best == 0 || diff < best) {
			best = diff
		}
	}
	if best == 0 {
		return FallbackStepMin
	}
	return best
}

// GroupID derives the composite reservation-group key from a date and its
// head slot, e.g. "2026-09-01_15-00".
func GroupID(date, hour string) string {
	return date + "_" + strings.ReplaceAll(hour, ":", "-")
}

// SlotTime resolves a (date, hour) pair to a wall-clock instant in loc.
func SlotTime(date, hour string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", date+" "+hour, loc)
}

// IsPast reports whether the slot's wall-clock time lies more than grace
// before now. Malformed inputs count as not past.
func IsPast(date, hour string, now time.Time, grace time.Duration, loc *time.Location) bool {
	t, err := SlotTime(date, hour, loc)
	if err != nil {
		return false
	}
	return t.Before(now.Add(-grace))
}

// Grid is one day's resolved slot list plus its inferred step.
type Grid struct {
	Hours []string
	Step  int
}

// Index returns the position of hour in the grid, or -1.
func (g Grid) Index(hour string) int {
	for i, h := range g.Hours {
		if h == hour {
			return i
		}
	}
	return -1
}
