package xlsx

import "time"

// excelEpoch is day 0 of the 1900 date system: December 30, 1899. Using
// Dec 30 rather than Dec 31 absorbs Excel's well-known leap-year bug,
// which treats 1900 as a leap year and inserts a phantom February 29 at
// serial day 60 — shifting the epoch back one day keeps every serial
// number from day 61 onward correct without special-casing it.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// DateFromSerial converts an Excel date serial number (days, with a
// fractional part for time-of-day) to a time.Time.
func DateFromSerial(serial float64) time.Time {
	days := int(serial)
	frac := serial - float64(days)
	t := excelEpoch.AddDate(0, 0, days)
	seconds := frac * 86400
	return t.Add(time.Duration(seconds*float64(time.Second)) + time.Duration(0.5*float64(time.Millisecond)))
}
