package value

import (
	"time"
)

const (
	nanosPerTick   = 100
	ticksPerSecond = 10_000_000

	// Unix seconds of 0001-01-01T00:00:00Z and 9999-12-31T23:59:59Z.
	minUnixSeconds = -62135596800
	maxUnixSeconds = 253402300799

	// offsetTimeBase is the tick count of 1800-01-01T00:00:00Z.
	offsetTimeBase    = 567709344000000000
	offsetTickBits    = 58
	offsetTickMask    = 1<<offsetTickBits - 1
	maxOffsetMinutes  = 14 * 60
	offsetStepMinutes = 30
	offsetZoneCount   = 2*maxOffsetMinutes/offsetStepMinutes + 1
)

// offsetZones caches one anonymous fixed zone per packable offset.
var offsetZones = func() [offsetZoneCount]*time.Location {
	var zones [offsetZoneCount]*time.Location
	for q := range zones {
		zones[q] = time.FixedZone("", (q*offsetStepMinutes-maxOffsetMinutes)*60)
	}

	return zones
}()

// Ticks returns the number of 100ns intervals between 0001-01-01T00:00:00Z
// and t. It reports false when t has sub-tick precision or lies outside years
// 1 through 9999.
func Ticks(t time.Time) (int64, bool) {
	sec := t.Unix()
	nsec := t.Nanosecond()
	if nsec%nanosPerTick != 0 || sec < minUnixSeconds || sec > maxUnixSeconds {
		return 0, false
	}

	return (sec-minUnixSeconds)*ticksPerSecond + int64(nsec/nanosPerTick), true
}

// FromTicks is the inverse of Ticks. The result is in UTC.
func FromTicks(ticks int64) time.Time {
	sec := ticks/ticksPerSecond + minUnixSeconds
	nsec := (ticks % ticksPerSecond) * nanosPerTick

	return time.Unix(sec, nsec).UTC()
}

// PackOffsetTime packs t and its UTC offset into one word.
//
// Layout: bits 63..58 hold (offsetMinutes+840)/30, bits 57..0 hold the tick
// count relative to 1800-01-01T00:00:00Z. Only anonymous fixed zones qualify:
// the zone must have no name and no transitions, and the offset must be a
// multiple of 30 minutes within ±14h.
func PackOffsetTime(t time.Time) (uint64, bool) {
	name, offset := t.Zone()
	if name != "" || offset%(offsetStepMinutes*60) != 0 {
		return 0, false
	}

	minutes := offset / 60
	if minutes < -maxOffsetMinutes || minutes > maxOffsetMinutes {
		return 0, false
	}

	if start, end := t.ZoneBounds(); !start.IsZero() || !end.IsZero() {
		return 0, false
	}

	ticks, ok := Ticks(t)
	if !ok {
		return 0, false
	}

	rel := ticks - offsetTimeBase
	if rel < 0 || rel > offsetTickMask {
		return 0, false
	}

	q := uint64((minutes + maxOffsetMinutes) / offsetStepMinutes)

	return q<<offsetTickBits | uint64(rel), true
}

// UnpackOffsetTime decodes a word produced by PackOffsetTime. The result is in
// an anonymous fixed zone with the packed offset.
func UnpackOffsetTime(num uint64) time.Time {
	t := FromTicks(int64(num&offsetTickMask) + offsetTimeBase)

	q := int(num >> offsetTickBits)
	if q >= offsetZoneCount {
		return t.In(time.FixedZone("", (q*offsetStepMinutes-maxOffsetMinutes)*60))
	}

	return t.In(offsetZones[q])
}
