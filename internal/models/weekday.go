package models

import (
	"fmt"
	"time"
)

// Wire layouts for dates and times. Dates are local-calendar values with no
// time zone attached.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Spanish weekday names as stored in visitantes.dia_semana, Monday-first.
var WeekdayNames = []string{
	"Lunes",
	"Martes",
	"Miércoles",
	"Jueves",
	"Viernes",
	"Sábado",
	"Domingo",
}

var weekdayByGoDay = map[time.Weekday]string{
	time.Monday:    "Lunes",
	time.Tuesday:   "Martes",
	time.Wednesday: "Miércoles",
	time.Thursday:  "Jueves",
	time.Friday:    "Viernes",
	time.Saturday:  "Sábado",
	time.Sunday:    "Domingo",
}

// DeriveWeekday maps a YYYY-MM-DD date to its Spanish weekday name.
// It is a pure calendar computation, independent of host time zone.
func DeriveWeekday(date string) (string, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", date, err)
	}
	return weekdayByGoDay[t.Weekday()], nil
}

// WeekdayOrderExpr orders dia_semana Monday-first in SQL, since the stored
// names do not sort chronologically.
const WeekdayOrderExpr = "CASE dia_semana " +
	"WHEN 'Lunes' THEN 1 " +
	"WHEN 'Martes' THEN 2 " +
	"WHEN 'Miércoles' THEN 3 " +
	"WHEN 'Jueves' THEN 4 " +
	"WHEN 'Viernes' THEN 5 " +
	"WHEN 'Sábado' THEN 6 " +
	"WHEN 'Domingo' THEN 7 " +
	"ELSE 8 END"

// ValidDate reports whether s is a well-formed YYYY-MM-DD calendar date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ValidTime reports whether s is a well-formed HH:MM clock time.
// time.Parse alone accepts single-digit hours, so the length is checked too.
func ValidTime(s string) bool {
	if len(s) != len(TimeLayout) {
		return false
	}
	_, err := time.Parse(TimeLayout, s)
	return err == nil
}

// Today returns the current date in the host's local calendar as YYYY-MM-DD.
func Today() string {
	return time.Now().Format(DateLayout)
}

// IsValidWeekday reports whether name is one of the seven stored weekday names.
func IsValidWeekday(name string) bool {
	for _, w := range WeekdayNames {
		if w == name {
			return true
		}
	}
	return false
}
