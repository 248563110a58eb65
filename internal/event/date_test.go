package event

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewDate(t *testing.T) {
	tests := []struct {
		name    string
		year    int
		month   time.Month
		day     int
		wantErr bool
	}{
		{name: "regular date", year: 2026, month: time.May, day: 1},
		{name: "leap day in leap year", year: 2028, month: time.February, day: 29},
		{name: "leap day in non-leap year", year: 2027, month: time.February, day: 29, wantErr: true},
		{name: "Feb 31", year: 2026, month: time.February, day: 31, wantErr: true},
		{name: "Apr 31", year: 2026, month: time.April, day: 31, wantErr: true},
		{name: "Dec 31", year: 2026, month: time.December, day: 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewDate(tt.year, tt.month, tt.day)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewDate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if KindOf(err) != KindInvalidDate {
					t.Errorf("KindOf() = %v, want %v", KindOf(err), KindInvalidDate)
				}
				return
			}
			want := Date{Year: tt.year, Month: tt.month, Day: tt.day}
			if got != want {
				t.Errorf("NewDate() = %v, want %v", got, want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2023-05-01")
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if got != (Date{Year: 2023, Month: time.May, Day: 1}) {
		t.Errorf("ParseDate() = %v", got)
	}

	for _, bad := range []string{"", "01/05/2023", "2023-13-01", "2023-02-30"} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q) expected error", bad)
		}
	}
}

func TestDate_String(t *testing.T) {
	d := Date{Year: 2026, Month: time.March, Day: 7}
	if got := d.String(); got != "2026-03-07" {
		t.Errorf("String() = %q, want %q", got, "2026-03-07")
	}
}

func TestDate_DaysSince(t *testing.T) {
	today := Date{Year: 2026, Month: time.October, Day: 19}

	tests := []struct {
		name string
		date Date
		want int
	}{
		{name: "same day", date: today, want: 0},
		{name: "tomorrow", date: Date{Year: 2026, Month: time.October, Day: 20}, want: 1},
		{name: "next week", date: Date{Year: 2026, Month: time.October, Day: 26}, want: 7},
		{name: "yesterday", date: Date{Year: 2026, Month: time.October, Day: 18}, want: -1},
		{name: "across year end", date: Date{Year: 2027, Month: time.January, Day: 1}, want: 74},
		{name: "across DST change", date: Date{Year: 2026, Month: time.November, Day: 2}, want: 14},
		{name: "centuries ahead", date: Date{Year: 2400, Month: time.October, Day: 19}, want: 136601},
		{name: "centuries ago", date: Date{Year: 1700, Month: time.January, Day: 1}, want: -119360},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.date.DaysSince(today); got != tt.want {
				t.Errorf("DaysSince() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDate_AddYears(t *testing.T) {
	tests := []struct {
		name string
		date Date
		want Date
	}{
		{
			name: "regular date",
			date: Date{Year: 2023, Month: time.May, Day: 1},
			want: Date{Year: 2024, Month: time.May, Day: 1},
		},
		{
			name: "leap day clamps to Feb 28",
			date: Date{Year: 2024, Month: time.February, Day: 29},
			want: Date{Year: 2025, Month: time.February, Day: 28},
		},
		{
			name: "Dec 31",
			date: Date{Year: 2025, Month: time.December, Day: 31},
			want: Date{Year: 2026, Month: time.December, Day: 31},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.date.AddYears(1); got != tt.want {
				t.Errorf("AddYears(1) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDate_JSON(t *testing.T) {
	d := Date{Year: 2026, Month: time.December, Day: 24}

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `"2026-12-24"` {
		t.Errorf("Marshal() = %s, want %q", data, "2026-12-24")
	}

	var got Date
	if err := json.Unmarshal([]byte(`"2026-12-24"`), &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got != d {
		t.Errorf("Unmarshal() = %v, want %v", got, d)
	}

	if err := json.Unmarshal([]byte(`20261224`), &got); err == nil {
		t.Error("Unmarshal() of a number should fail")
	}
}

func TestDate_Compare(t *testing.T) {
	a := Date{Year: 2026, Month: time.January, Day: 1}
	b := Date{Year: 2026, Month: time.January, Day: 2}

	if !a.Before(b) || a.After(b) {
		t.Errorf("expected %v before %v", a, b)
	}
	if a.Compare(a) != 0 {
		t.Errorf("Compare() of equal dates = %d, want 0", a.Compare(a))
	}
	if !(Date{}).IsZero() || a.IsZero() {
		t.Error("IsZero() mismatch")
	}
}
