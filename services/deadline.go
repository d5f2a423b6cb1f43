package services

import (
	"fmt"
	"log"
	"os"
	"time"
)

// Overdue is returned by TimeRemaining once the deadline instant has passed.
const Overdue = "OVERDUE"

const defaultReminderZone = "Asia/Kolkata"

// ReminderLocation returns the reference time zone used for calendar-day
// matching. Configurable via REMINDER_TZ; falls back to the campus zone.
func ReminderLocation() *time.Location {
	name := os.Getenv("REMINDER_TZ")
	if name == "" {
		name = defaultReminderZone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid REMINDER_TZ %q, using %s: %v", name, defaultReminderZone, err)
		loc, err = time.LoadLocation(defaultReminderZone)
		if err != nil {
			return time.Local
		}
	}
	return loc
}

// IsDueToday reports whether deadline and now fall on the same calendar date
// in the given zone. Time-of-day is ignored; dates before or after today are
// both false, so reminders fire only on the exact due date.
func IsDueToday(deadline, now time.Time, loc *time.Location) bool {
	dy, dm, dd := deadline.In(loc).Date()
	ny, nm, nd := now.In(loc).Date()
	return dy == ny && dm == nm && dd == nd
}

// CalendarDay formats t as the YYYY-MM-DD ledger day in the given zone.
func CalendarDay(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// TimeRemaining describes how long is left until the deadline, decomposed
// into whole hours and remaining minutes. Returns Overdue once the deadline
// has passed. Display only; seconds are dropped.
func TimeRemaining(deadline, now time.Time) string {
	diff := deadline.Sub(now)
	if diff <= 0 {
		return Overdue
	}
	hours := int(diff / time.Hour)
	minutes := int(diff%time.Hour) / int(time.Minute)
	if hours > 0 {
		return fmt.Sprintf("%d hours and %d minutes", hours, minutes)
	}
	return fmt.Sprintf("%d minutes", minutes)
}
