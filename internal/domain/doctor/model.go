package doctor

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Doctor maps to the doctor table.
type Doctor struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Specialty    string    `db:"specialty" json:"specialty"`
	Email        string    `db:"email" json:"email"`
	Phone        *string   `db:"phone" json:"phone,omitempty"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Workday describes the bookable window of a single calendar day. Start and
// End are offsets from midnight; a slot may begin at End itself, so a
// 09:00-17:00 day with hourly slots has nine bookable ticks.
type Workday struct {
	Start time.Duration
	End   time.Duration
	Slot  time.Duration
}

func NewWorkday(start, end string, slotMinutes int) (Workday, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Workday{}, fmt.Errorf("workday start: %w", err)
	}
	e, err := ParseClock(end)
	if err != nil {
		return Workday{}, fmt.Errorf("workday end: %w", err)
	}
	if e <= s {
		return Workday{}, fmt.Errorf("workday end %s not after start %s", end, start)
	}
	if slotMinutes <= 0 {
		return Workday{}, fmt.Errorf("slot length must be positive, got %d minutes", slotMinutes)
	}
	return Workday{Start: s, End: e, Slot: time.Duration(slotMinutes) * time.Minute}, nil
}

// Ticks returns every bookable start time of the day, inclusive of both ends,
// ascending.
func (w Workday) Ticks() []time.Duration {
	var out []time.Duration
	for t := w.Start; t <= w.End; t += w.Slot {
		out = append(out, t)
	}
	return out
}

const noon = 12 * time.Hour

// MatchesPeriod reports whether any bookable tick falls in the given half of
// the day. AM is strictly before noon, PM is noon or later. Any other value,
// including empty, matches unconditionally.
func (w Workday) MatchesPeriod(period string) bool {
	return len(PartitionByPeriod(w.Ticks(), period)) > 0
}

// PartitionByPeriod keeps the slots in the given half of the day. An
// unrecognized period keeps everything.
func PartitionByPeriod(slots []time.Duration, period string) []time.Duration {
	p := normalizePeriod(period)
	if p != "AM" && p != "PM" {
		return slots
	}
	var out []time.Duration
	for _, s := range slots {
		if (p == "AM" && s < noon) || (p == "PM" && s >= noon) {
			out = append(out, s)
		}
	}
	return out
}

func normalizePeriod(period string) string {
	switch period {
	case "AM", "am", "Am", "aM":
		return "AM"
	case "PM", "pm", "Pm", "pM":
		return "PM"
	}
	return period
}

// ParseClock parses an HH:MM wall-clock string into an offset from midnight.
func ParseClock(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid HH:MM time %q: %w", s, err)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// Clock formats an offset from midnight as HH:MM.
func Clock(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}
