package export

import (
	"fmt"
	"time"
)

type Preset string

const (
	PresetToday      Preset = "today"
	PresetYesterday  Preset = "yesterday"
	PresetLast7Days  Preset = "last7days"
	PresetLast30Days Preset = "last30days"
	PresetThisMonth  Preset = "thisMonth"
	PresetCustom     Preset = "custom"
)

// DateRange is an inclusive range of timestamps.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// RangeFor resolves a preset relative to now in loc. Ranges end on the last
// millisecond of their final day. For PresetCustom a missing start defaults
// to the start of the day seven days back and a missing end to the end of
// today. An empty preset means the last seven days.
func RangeFor(p Preset, now time.Time, loc *time.Location, customStart, customEnd *time.Time) (DateRange, error) {
	if loc == nil {
		loc = time.Local
	}
	today := endOfDay(now.In(loc))

	switch p {
	case PresetToday:
		return DateRange{Start: startOfDay(today), End: today}, nil
	case PresetYesterday:
		y := today.AddDate(0, 0, -1)
		return DateRange{Start: startOfDay(y), End: endOfDay(y)}, nil
	case PresetLast7Days, "":
		return DateRange{Start: startOfDay(today.AddDate(0, 0, -6)), End: today}, nil
	case PresetLast30Days:
		return DateRange{Start: startOfDay(today.AddDate(0, 0, -29)), End: today}, nil
	case PresetThisMonth:
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, loc)
		return DateRange{Start: first, End: endOfDay(first.AddDate(0, 1, -1))}, nil
	case PresetCustom:
		r := DateRange{Start: startOfDay(today.AddDate(0, 0, -7)), End: today}
		if customStart != nil {
			r.Start = *customStart
		}
		if customEnd != nil {
			r.End = *customEnd
		}
		return r, nil
	}
	return DateRange{}, fmt.Errorf("unknown date preset %q", p)
}

// Filename names an export file. With both dates it carries the range,
// otherwise today's date.
func Filename(kind string, start, end *time.Time, now time.Time) string {
	if start != nil && end != nil {
		return fmt.Sprintf("%s-%s-%s.csv", kind, start.Format("20060102"), end.Format("20060102"))
	}
	return fmt.Sprintf("%s-%s.csv", kind, now.Format("20060102"))
}
