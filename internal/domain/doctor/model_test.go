package doctor

import (
	"testing"
	"time"
)

func TestNewWorkday(t *testing.T) {
	w, err := NewWorkday("09:00", "17:00", 60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Start != 9*time.Hour || w.End != 17*time.Hour || w.Slot != time.Hour {
		t.Errorf("unexpected workday: %+v", w)
	}
}

func TestNewWorkday_Invalid(t *testing.T) {
	if _, err := NewWorkday("17:00", "09:00", 60); err == nil {
		t.Error("expected error for inverted workday")
	}
	if _, err := NewWorkday("nine", "17:00", 60); err == nil {
		t.Error("expected error for bad start time")
	}
	if _, err := NewWorkday("09:00", "17:00", 0); err == nil {
		t.Error("expected error for zero slot length")
	}
}

func TestWorkday_Ticks_HourlyDay(t *testing.T) {
	w, _ := NewWorkday("09:00", "17:00", 60)
	ticks := w.Ticks()
	if len(ticks) != 9 {
		t.Fatalf("expected 9 ticks for a 09:00-17:00 hourly day, got %d", len(ticks))
	}
	if ticks[0] != 9*time.Hour {
		t.Errorf("expected first tick 09:00, got %s", Clock(ticks[0]))
	}
	if ticks[8] != 17*time.Hour {
		t.Errorf("expected last tick 17:00, got %s", Clock(ticks[8]))
	}
}

func TestWorkday_Ticks_HalfHourGranularity(t *testing.T) {
	w, _ := NewWorkday("09:00", "17:00", 30)
	if got := len(w.Ticks()); got != 17 {
		t.Errorf("expected 17 ticks at 30-minute granularity, got %d", got)
	}
}

func TestPartitionByPeriod(t *testing.T) {
	w, _ := NewWorkday("09:00", "17:00", 60)
	ticks := w.Ticks()

	am := PartitionByPeriod(ticks, "AM")
	if len(am) != 3 {
		t.Errorf("expected 3 AM slots (09,10,11), got %d", len(am))
	}
	for _, s := range am {
		if s >= 12*time.Hour {
			t.Errorf("AM partition contains %s", Clock(s))
		}
	}

	pm := PartitionByPeriod(ticks, "pm")
	if len(pm) != 6 {
		t.Errorf("expected 6 PM slots (12..17), got %d", len(pm))
	}

	all := PartitionByPeriod(ticks, "evening")
	if len(all) != len(ticks) {
		t.Errorf("unknown period should keep everything, got %d of %d", len(all), len(ticks))
	}
}

func TestWorkday_MatchesPeriod(t *testing.T) {
	w, _ := NewWorkday("09:00", "17:00", 60)
	if !w.MatchesPeriod("AM") || !w.MatchesPeriod("PM") {
		t.Error("default workday spans both halves of the day")
	}

	morning, _ := NewWorkday("08:00", "11:00", 60)
	if morning.MatchesPeriod("PM") {
		t.Error("morning-only workday should not match PM")
	}
	if !morning.MatchesPeriod("") {
		t.Error("empty period matches unconditionally")
	}
}

func TestClockRoundTrip(t *testing.T) {
	d, err := ParseClock("09:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := Clock(d); got != "09:30" {
		t.Errorf("expected 09:30, got %s", got)
	}
}
