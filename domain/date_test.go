package domain

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	t.Run("should parse an ISO date", func(t *testing.T) {
		got, err := ParseDate("2024-01-01")
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		want := Date{Year: 2024, Month: time.January, Day: 1}
		if got != want {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", want, got)
		}

		if got.String() != "2024-01-01" {
			t.Fatalf("\nwanted:\n%q\ngot:\n%q", "2024-01-01", got.String())
		}
	})

	for _, input := range []string{"", "2024-13-01", "2024-02-30", "01/01/2024", "yesterday"} {
		t.Run("should reject "+input, func(t *testing.T) {
			if _, err := ParseDate(input); err == nil {
				t.Fatalf("\nwanted:\nerror\ngot:\nnil")
			}
		})
	}
}

func TestDate_AddDays(t *testing.T) {
	start := NewDate(2024, time.February, 20)

	got := start.AddDays(14)
	want := NewDate(2024, time.March, 5)
	if got != want {
		t.Fatalf("\nwanted:\n%v\ngot:\n%v", want, got)
	}
}

func TestTerm_Overlaps(t *testing.T) {
	base := Term{Start: NewDate(2024, time.January, 1), DurationDays: 14}

	tests := []struct {
		name  string
		other Term
		want  bool
	}{
		{name: "should overlap itself", other: base, want: true},
		{name: "should overlap a term starting inside", other: Term{Start: NewDate(2024, time.January, 14), DurationDays: 3}, want: true},
		{name: "should not overlap a term starting on the end date", other: Term{Start: NewDate(2024, time.January, 15), DurationDays: 3}, want: false},
		{name: "should not overlap an earlier term", other: Term{Start: NewDate(2023, time.December, 1), DurationDays: 31}, want: false},
		{name: "should not overlap a zero length term", other: Term{Start: NewDate(2024, time.January, 5)}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Overlaps(tt.other); got != tt.want {
				t.Fatalf("\nwanted:\n%v\ngot:\n%v", tt.want, got)
			}
			if got := tt.other.Overlaps(base); got != tt.want {
				t.Fatalf("overlap is not symmetric\nwanted:\n%v\ngot:\n%v", tt.want, got)
			}
		})
	}
}
