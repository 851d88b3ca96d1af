package model

import (
	"reflect"
	"testing"
)

func TestParseSlot(t *testing.T) {
	cases := []struct {
		in      string
		want    Slot
		wantErr bool
	}{
		{"Mon:E", Slot{Day: "Mon", Period: "E"}, false},
		{" Tue : S ", Slot{Day: "Tue", Period: "S"}, false},
		{"M", Slot{Period: "M"}, false},
		{"", Slot{}, true},
		{":E", Slot{}, true},
		{"Mon:", Slot{}, true},
	}
	for _, tc := range cases {
		got, err := ParseSlot(tc.in)
		if (err != nil) != tc.wantErr {
			t.Fatalf("%q: unexpected error state %v", tc.in, err)
		}
		if !tc.wantErr && got != tc.want {
			t.Fatalf("%q: got %+v want %+v", tc.in, got, tc.want)
		}
	}
}

func TestSlotStringRoundTrip(t *testing.T) {
	for _, s := range []Slot{{Day: "Wed", Period: "A"}, {Period: "L"}} {
		got, err := ParseSlot(s.String())
		if err != nil || got != s {
			t.Fatalf("round trip of %v gave %v (%v)", s, got, err)
		}
	}
}

func TestNewPeriodSet(t *testing.T) {
	set := NewPeriodSet([]string{"M", " L ", "", "M", "A"})
	if want := (PeriodSet{"M", "L", "A"}); !reflect.DeepEqual(set, want) {
		t.Fatalf("got %v want %v", set, want)
	}
	if set.Index("A") != 2 || set.Contains("S") {
		t.Fatalf("unexpected lookups on %v", set)
	}
	if got := DefaultPeriods.Strings(); !reflect.DeepEqual(got, []string{"M", "L", "A", "E", "S"}) {
		t.Fatalf("unexpected default vocabulary %v", got)
	}
}
