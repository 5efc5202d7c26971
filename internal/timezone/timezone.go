package timezone

import (
	"time"

	"github.com/rs/zerolog/log"
)

const DefaultTimezone = "Asia/Bangkok"

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
)

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location falls back to DefaultTimezone, then to a fixed +07:00 zone on
// hosts without tzdata.
func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		log.Warn().Err(err).Msg("tzdata missing, using fixed +07:00")
		return time.FixedZone("ICT", 7*60*60)
	}
	return loc
}

func Now() time.Time {
	return time.Now().In(Location(DefaultTimezone))
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// ParseLocal reads a YYYY-MM-DD date and HH:mm wall-clock time in tz.
func ParseLocal(date, clock, tz string) (time.Time, error) {
	return time.ParseInLocation(dateTimeLayout, date+" "+clock, Location(tz))
}

// DayRange returns [start, end) of the given YYYY-MM-DD date in tz.
func DayRange(date, tz string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(dateLayout, date, Location(tz))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.AddDate(0, 0, 1), nil
}
