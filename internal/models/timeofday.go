package models

import (
	"encoding/json"
	"fmt"
	"time"
)

const minutesPerDay = 24 * 60

// Minutes is a whole-minute duration. Internal state keeps durations as
// integers; display strings are derived on demand.
type Minutes int

// Duration converts to a time.Duration
func (m Minutes) Duration() time.Duration {
	return time.Duration(m) * time.Minute
}

// String formats as "45m", "1h 15m" or "2h"
func (m Minutes) String() string {
	if m < 60 {
		return fmt.Sprintf("%dm", int(m))
	}
	hours := int(m) / 60
	mins := int(m) % 60
	if mins > 0 {
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	return fmt.Sprintf("%dh", hours)
}

// TimeOfDay is a time within a service day, stored as minutes after the
// midnight that opened the day. Runs that continue past midnight keep
// counting (24:05 is 1445), so values stay ordered across the day
// boundary. It marshals as the wall-clock "HH:MM".
type TimeOfDay int

// TimeOfDayOf truncates t to the minute and drops the date
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*60 + t.Minute())
}

// ParseTimeOfDay parses "HH:MM" (24-hour)
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time of day %q: out of range", s)
	}
	return TimeOfDay(h*60 + m), nil
}

// Add returns t shifted by d. The result is not wrapped at midnight.
func (t TimeOfDay) Add(d Minutes) TimeOfDay {
	return t + TimeOfDay(d)
}

// Since returns the forward distance from earlier to t. Wall-clock values
// that crossed midnight (00:25 after 23:40) are treated as the next day.
func (t TimeOfDay) Since(earlier TimeOfDay) Minutes {
	d := int(t) - int(earlier)
	for d < 0 {
		d += minutesPerDay
	}
	return Minutes(d)
}

// Day is the number of midnights crossed since the start of the service day
func (t TimeOfDay) Day() int {
	d := int(t) / minutesPerDay
	if int(t)%minutesPerDay < 0 {
		d--
	}
	return d
}

// Clock returns the wall-clock minute of t, in [0, 1440)
func (t TimeOfDay) Clock() TimeOfDay {
	return t.normalize()
}

func (t TimeOfDay) normalize() TimeOfDay {
	v := int(t) % minutesPerDay
	if v < 0 {
		v += minutesPerDay
	}
	return TimeOfDay(v)
}

func (t TimeOfDay) String() string {
	c := int(t.normalize())
	return fmt.Sprintf("%02d:%02d", c/60, c%60)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
