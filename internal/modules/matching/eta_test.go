package matching

import "testing"

func TestFormatETA(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "0 secs"},
		{45, "45 secs"},
		{59, "59 secs"},
		{60, "1 mins"},
		{125, "2 mins"},
		{3599, "60 mins"},
		{3600, "1h"},
		{5400, "1h 30m"},
		{7260, "2h 1m"},
		{86399, "23h 60m"},
		{86400, "1 day"},
		{90000, "1 day"},
		{172800, "2 days"},
		{300000, "3 days"},
	}
	for _, tc := range cases {
		if got := FormatETA(tc.seconds); got != tc.want {
			t.Errorf("FormatETA(%v) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}
