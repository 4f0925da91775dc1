package money

import "testing"

func TestFromRupeesRounds(t *testing.T) {
	cases := []struct {
		rupees float64
		want   Paise
	}{
		{0, 0},
		{1, 100},
		{29000.50, 2900050},
		{0.005, 1},
		{123456.78, 12345678},
	}
	for _, tc := range cases {
		if got := FromRupees(tc.rupees); got != tc.want {
			t.Errorf("FromRupees(%v) = %d, want %d", tc.rupees, got, tc.want)
		}
	}
}

func TestFormatRupeesIndianGrouping(t *testing.T) {
	cases := []struct {
		paise Paise
		want  string
	}{
		{0, "Rs. 0"},
		{95000, "Rs. 950"},
		{100000, "Rs. 1,000"},
		{2900000, "Rs. 29,000"},
		{12345678 * 100, "Rs. 1,23,45,678"},
		{2900050, "Rs. 29,000.50"},
		{105, "Rs. 1.05"},
	}
	for _, tc := range cases {
		if got := FormatRupees(tc.paise); got != tc.want {
			t.Errorf("FormatRupees(%d) = %q, want %q", tc.paise, got, tc.want)
		}
	}
}

func TestAmountAbsentVersusZero(t *testing.T) {
	absent := None()
	zero := Some(0)

	if absent.Present {
		t.Fatal("None() must not be present")
	}
	if !zero.Present {
		t.Fatal("Some(0) must be present")
	}
	if absent.OrZero() != 0 || zero.OrZero() != 0 {
		t.Fatal("OrZero must be 0 for both absent and explicit zero")
	}
	if FormatAmount(absent) != "-" {
		t.Errorf("absent amount formatted as %q, want -", FormatAmount(absent))
	}
	if FormatAmount(zero) != "Rs. 0" {
		t.Errorf("zero amount formatted as %q, want Rs. 0", FormatAmount(zero))
	}
	if absent.PaisePtr() != nil {
		t.Error("absent amount must map to a nil column value")
	}
	if p := zero.PaisePtr(); p == nil || *p != 0 {
		t.Error("zero amount must map to a non-nil zero column value")
	}
}

func TestAmountPtrRoundTrip(t *testing.T) {
	r := 29000.50
	a := FromRupeesPtr(&r)
	if !a.Present || a.Paise != 2900050 {
		t.Fatalf("FromRupeesPtr = %+v", a)
	}
	got := a.RupeesPtr()
	if got == nil || *got != r {
		t.Fatalf("RupeesPtr = %v, want %v", got, r)
	}
	if FromRupeesPtr(nil).Present || FromPaisePtr(nil).Present {
		t.Fatal("nil pointers must map to absent amounts")
	}
}
