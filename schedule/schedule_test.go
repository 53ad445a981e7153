package schedule

import (
	"fmt"
	"testing"
	"time"

	"sabor/models"
)

func TestParseHoursRoundTrip(t *testing.T) {
	for h1 := 0; h1 < 23; h1++ {
		for h2 := h1 + 1; h2 <= 23; h2++ {
			text := fmt.Sprintf("%dh às %dh", h1, h2)
			got, ok := ParseHours(text)
			if !ok {
				t.Fatalf("ParseHours(%q) did not match", text)
			}
			if got.Start != h1 || got.End != h2 {
				t.Fatalf("ParseHours(%q) = %+v, want {%d %d}", text, got, h1, h2)
			}
		}
	}
}

func TestParseHoursVariants(t *testing.T) {
	tests := []struct {
		text  string
		want  HourRange
		match bool
	}{
		{"11h às 22h", HourRange{11, 22}, true},
		{"Aberto das 11h às 22h todos os dias", HourRange{11, 22}, true},
		{"9H AS 18H", HourRange{9, 18}, true},
		{"from 10h to 20h", HourRange{10, 20}, true},
		{"11h às 22h, feriados 12h às 16h", HourRange{11, 22}, true}, // first match wins
		{"fechado", HourRange{}, false},
		{"", HourRange{}, false},
		{"11:00 - 22:00", HourRange{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseHours(tt.text)
		if ok != tt.match {
			t.Errorf("ParseHours(%q) match = %v, want %v", tt.text, ok, tt.match)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("ParseHours(%q) = %+v, want %+v", tt.text, got, tt.want)
		}
	}
}

func TestSlotsWeekday(t *testing.T) {
	s := models.EstablishmentSettings{Weekdays: "11h às 22h", Weekends: "12h às 16h"}
	tuesday := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)

	slots := Slots(s, tuesday, 20)
	if len(slots) != 33 {
		t.Fatalf("got %d slots, want 33", len(slots))
	}
	if slots[0] != "11:00" || slots[1] != "11:20" || slots[2] != "11:40" {
		t.Errorf("unexpected leading slots: %v", slots[:3])
	}
	if slots[len(slots)-1] != "21:40" {
		t.Errorf("last slot = %s, want 21:40", slots[len(slots)-1])
	}
	for _, s := range slots {
		if s == "22:00" {
			t.Error("slots include the closing hour 22:00")
		}
	}
}

func TestSlotsWeekendSelection(t *testing.T) {
	s := models.EstablishmentSettings{Weekdays: "11h às 22h", Weekends: "12h às 14h"}
	saturday := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)

	slots := Slots(s, saturday, 30)
	want := []string{"12:00", "12:30", "13:00", "13:30"}
	if len(slots) != len(want) {
		t.Fatalf("got %v, want %v", slots, want)
	}
	for i := range want {
		if slots[i] != want[i] {
			t.Fatalf("got %v, want %v", slots, want)
		}
	}
}

func TestSlotsMonotoneAndBounded(t *testing.T) {
	s := models.EstablishmentSettings{Weekdays: "8h às 20h"}
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	slots := Slots(s, monday, 20)
	prev := ""
	for _, slot := range slots {
		if slot <= prev {
			t.Fatalf("slots not strictly increasing: %s after %s", slot, prev)
		}
		if slot < "08:00" || slot >= "20:00" {
			t.Fatalf("slot %s outside [08:00, 20:00)", slot)
		}
		prev = slot
	}
}

func TestSlotsIntervalRollsOverPerHour(t *testing.T) {
	s := models.EstablishmentSettings{Weekdays: "11h às 13h"}
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	slots := Slots(s, monday, 25)
	want := []string{"11:00", "11:25", "11:50", "12:00", "12:25", "12:50"}
	if len(slots) != len(want) {
		t.Fatalf("got %v, want %v", slots, want)
	}
	for i := range want {
		if slots[i] != want[i] {
			t.Fatalf("got %v, want %v", slots, want)
		}
	}
}

func TestSlotsDegradesToEmpty(t *testing.T) {
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		s    models.EstablishmentSettings
	}{
		{"empty schedule", models.EstablishmentSettings{}},
		{"unparsable text", models.EstablishmentSettings{Weekdays: "fechado para reforma"}},
		{"inverted range", models.EstablishmentSettings{Weekdays: "22h às 11h"}},
		{"equal hours", models.EstablishmentSettings{Weekdays: "11h às 11h"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slots(tt.s, monday, 20); len(got) != 0 {
				t.Errorf("got %v, want empty", got)
			}
		})
	}
}
