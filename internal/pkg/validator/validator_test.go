package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidClockTime(t *testing.T) {
	valid := []string{"00:00", "09:05", "18:30", "23:59"}
	invalid := []string{"24:00", "9:05", "09:60", "0905", "09-05", "", "ab:cd"}
	for _, clock := range valid {
		if !IsValidClockTime(clock) {
			t.Errorf("IsValidClockTime(%q) = false, want true", clock)
		}
	}
	for _, clock := range invalid {
		if IsValidClockTime(clock) {
			t.Errorf("IsValidClockTime(%q) = true, want false", clock)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2025-06-09"); !ok {
		t.Error("IsValidDate(2025-06-09) = false, want true")
	}
	if _, ok := IsValidDate("2025-13-40"); ok {
		t.Error("IsValidDate(2025-13-40) = true, want false")
	}
	if _, ok := IsValidDate("09/06/2025"); ok {
		t.Error("IsValidDate(09/06/2025) = true, want false")
	}
}

func TestCoordinateValidation(t *testing.T) {
	if !IsValidLatitude(10.7769) || !IsValidLongitude(106.7009) {
		t.Error("valid coordinate rejected")
	}
	if IsValidLatitude(91) || IsValidLatitude(-91) {
		t.Error("out of range latitude accepted")
	}
	if IsValidLongitude(181) || IsValidLongitude(-181) {
		t.Error("out of range longitude accepted")
	}
}
