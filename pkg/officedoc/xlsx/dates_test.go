package xlsx

import "testing"

func TestDateFromSerial_WholeDay(t *testing.T) {
	got := DateFromSerial(1)
	want := "1899-12-31"
	if got.Format("2006-01-02") != want {
		t.Errorf("DateFromSerial(1) = %s, want %s", got.Format("2006-01-02"), want)
	}
}

func TestDateFromSerial_KnownAnchor(t *testing.T) {
	// Excel serial 44927 is 2023-01-01 (post leap-year-bug correction).
	got := DateFromSerial(44927)
	want := "2023-01-01"
	if got.Format("2006-01-02") != want {
		t.Errorf("DateFromSerial(44927) = %s, want %s", got.Format("2006-01-02"), want)
	}
}

func TestDateFromSerial_FractionalTimeOfDay(t *testing.T) {
	got := DateFromSerial(44927.5)
	if got.Hour() != 12 {
		t.Errorf("DateFromSerial(44927.5) hour = %d, want 12", got.Hour())
	}
}
