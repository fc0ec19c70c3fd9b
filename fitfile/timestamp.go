package fitfile

import (
	"time"

	"github.com/bgraf/trackheat/option"
)

// containerEpoch is 1989-12-31T00:00:00Z, the zero of container timestamps.
var containerEpoch = time.Date(1989, time.December, 31, 0, 0, 0, 0, time.UTC)

// ContainerTime converts seconds since the container epoch to an absolute time.
func ContainerTime(seconds uint64) time.Time {
	return containerEpoch.Add(time.Duration(seconds) * time.Second)
}

// NormalizeTimestamp interprets the timestamp representations found across
// decoders: time values are taken as is, numbers above 1e12 are Unix
// milliseconds, numbers above 1e9 Unix seconds, and smaller numbers seconds
// since the container epoch. Zero and pre-epoch values yield none.
func NormalizeTimestamp(v any) option.Option[time.Time] {
	var seconds float64

	switch t := v.(type) {
	case time.Time:
		if t.IsZero() || !t.After(containerEpoch) {
			return option.None[time.Time]()
		}
		return option.Some(t)
	case *time.Time:
		if t == nil {
			return option.None[time.Time]()
		}
		return NormalizeTimestamp(*t)
	case int64:
		seconds = float64(t)
	case int:
		seconds = float64(t)
	case uint32:
		seconds = float64(t)
	case uint64:
		seconds = float64(t)
	case float64:
		seconds = t
	default:
		return option.None[time.Time]()
	}

	switch {
	case seconds <= 0:
		return option.None[time.Time]()
	case seconds > 1e12:
		return option.Some(time.UnixMilli(int64(seconds)).UTC())
	case seconds > 1e9:
		return option.Some(time.Unix(int64(seconds), 0).UTC())
	}

	return option.Some(ContainerTime(uint64(seconds)))
}
