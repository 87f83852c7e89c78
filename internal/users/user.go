package users

import "time"

// User is the read-only profile the ranking services need. Accounts are owned elsewhere.
type User struct {
	ID          int       `json:"user_id"`
	Username    string    `json:"username"`
	DateOfBirth time.Time `json:"date_of_birth"`
}

// Age is the calendar-year age at now: the difference in years, minus one when the
// birthday has not yet occurred in now's year.
func Age(dateOfBirth, now time.Time) int {
	age := now.Year() - dateOfBirth.Year()
	if now.Month() < dateOfBirth.Month() ||
		(now.Month() == dateOfBirth.Month() && now.Day() < dateOfBirth.Day()) {
		age--
	}
	return age
}

// BornBefore returns the latest date of birth that still gives an age of at least
// minAge at now. Used to push age filters into SQL.
func BornBefore(minAge int, now time.Time) time.Time {
	return sameDayYearsAgo(now, minAge)
}

// BornAfter returns the exclusive lower date of birth bound for an age of at most maxAge at now.
func BornAfter(maxAge int, now time.Time) time.Time {
	return sameDayYearsAgo(now, maxAge+1)
}

// sameDayYearsAgo is now's calendar day, years back. Feb 29 maps to Feb 28 in a
// non-leap year, so that Age of the result is exactly years.
func sameDayYearsAgo(now time.Time, years int) time.Time {
	y, m, d := now.Date()
	y -= years
	if m == time.February && d == 29 && !isLeap(y) {
		d = 28
	}
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
