package audio

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// timeValue is an intermediate time quantity in seconds. The zero value
// means "not specified".
type timeValue struct {
	present bool
	seconds float64
}

func secs(v float64) timeValue { return timeValue{present: true, seconds: v} }

func (t timeValue) isInf(sign int) bool {
	return t.present && math.IsInf(t.seconds, sign)
}

// sampleRange is a resolved, clamped, non-negative read window in the
// coordinate system of the actual signal.
type sampleRange struct {
	offset   int64
	duration int64 // -1 means "read to end"
	rate     int   // 0 when no metadata probe was needed
	empty    bool
}

var timeWithUnit = regexp.MustCompile(`^([+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)\s*([a-zA-Zµ]+)$`)

var unitScale = map[string]float64{
	"ns": 1e-9,
	"us": 1e-6, "µs": 1e-6,
	"ms": 1e-3,
	"s": 1, "sec": 1, "second": 1, "seconds": 1,
	"m": 60, "min": 60, "minute": 60, "minutes": 60,
	"h": 3600, "hour": 3600, "hours": 3600,
	"d": 86400, "day": 86400, "days": 86400,
}

// needsSamplingRate reports whether resolving the given raw offset and
// duration requires the file's sampling rate. This gates the lazy
// metadata probe: a plain read with no offset/duration, or a plain
// numeric offset of zero, never touches the resolver.
func needsSamplingRate(offset, duration any) bool {
	if duration != nil {
		return true
	}
	if offset == nil {
		return false
	}
	switch v := offset.(type) {
	case string:
		return true
	case time.Duration:
		return v != 0
	default:
		f, err := toFloat(offset)
		return err != nil || f != 0
	}
}

func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int8:
		return float64(x), nil
	case int16:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case uint:
		return float64(x), nil
	case uint8:
		return float64(x), nil
	case uint16:
		return float64(x), nil
	case uint32:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	default:
		return 0, fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeSpec, v)
	}
}

// timeSpecInSeconds converts a caller-supplied offset or duration value
// to seconds. Numeric values are seconds. Numeric strings without a unit
// are sample counts and are divided by the sampling rate. NaN and the
// not-a-time tokens normalize to "not specified".
func timeSpecInSeconds(v any, rate int) (timeValue, error) {
	switch x := v.(type) {
	case nil:
		return timeValue{}, nil
	case time.Duration:
		return secs(x.Seconds()), nil
	case string:
		return parseTimeString(x, rate)
	default:
		f, err := toFloat(v)
		if err != nil {
			return timeValue{}, err
		}
		if math.IsNaN(f) {
			return timeValue{}, nil
		}
		return secs(f), nil
	}
}

func parseTimeString(s string, rate int) (timeValue, error) {
	t := strings.TrimSpace(s)
	switch strings.ToLower(t) {
	case "", "none", "nan", "nat":
		return timeValue{}, nil
	case "inf", "+inf", "infinity", "+infinity":
		return secs(math.Inf(1)), nil
	case "-inf", "-infinity":
		return secs(math.Inf(-1)), nil
	}
	if f, err := strconv.ParseFloat(t, 64); err == nil {
		// A bare number is a sample count, not seconds.
		if rate <= 0 {
			return timeValue{}, fmt.Errorf("%w: sample count %q without sampling rate", ErrInvalidTimeSpec, s)
		}
		return secs(f / float64(rate)), nil
	}
	m := timeWithUnit.FindStringSubmatch(t)
	if m == nil {
		return timeValue{}, fmt.Errorf("%w: %q", ErrInvalidTimeSpec, s)
	}
	f, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return timeValue{}, fmt.Errorf("%w: %q", ErrInvalidTimeSpec, s)
	}
	scale, ok := unitScale[strings.ToLower(m[2])]
	if !ok {
		return timeValue{}, fmt.Errorf("%w: unknown unit %q in %q", ErrInvalidTimeSpec, m[2], s)
	}
	return secs(f * scale), nil
}

// normalizeRange reduces signed and infinite offset/duration values, in
// seconds, to a non-negative pair. Negative values are measured from the
// end of the signal, so the file's total duration is fetched lazily —
// at most once, and only when a negative value is present. An absent
// returned duration means "read to the end". Feeding the output back in
// is a no-op.
func normalizeRange(offset, duration timeValue, signalDuration func() (float64, error)) (timeValue, timeValue, error) {
	var sd float64
	if (offset.present && offset.seconds < 0) || (duration.present && duration.seconds < 0) {
		v, err := signalDuration()
		if err != nil {
			return timeValue{}, timeValue{}, err
		}
		sd = v
	}

	off, dur := offset, duration
	switch {
	case !off.present && dur.present && dur.seconds < 0:
		off = secs(math.Max(0, sd+dur.seconds))
		dur = timeValue{}

	case !off.present && dur.present && dur.seconds >= 0:
		if dur.isInf(1) {
			dur = timeValue{}
		}

	case off.present && off.seconds >= 0 && dur.present && dur.seconds < 0:
		switch {
		case off.isInf(1) && dur.isInf(-1):
			off = secs(0)
			dur = timeValue{}
		case off.isInf(1):
			dur = secs(0)
		default:
			if dur.isInf(-1) {
				off = secs(math.Min(off.seconds, sd))
				dur = secs(-sd)
			}
			orig := off.seconds
			off = secs(math.Max(0, off.seconds+dur.seconds))
			dur = secs(math.Min(-dur.seconds, orig))
		}

	case off.present && off.seconds >= 0 && dur.present && dur.seconds >= 0:
		if off.isInf(1) {
			dur = secs(0)
		} else if dur.isInf(1) {
			dur = timeValue{}
		}

	case off.present && off.seconds < 0 && !dur.present:
		off = secs(math.Max(0, sd+off.seconds))

	case off.present && off.seconds >= 0 && !dur.present:
		if off.isInf(1) {
			dur = secs(0)
		}

	case off.present && off.seconds < 0 && dur.present && dur.seconds > 0:
		switch {
		case off.isInf(-1) && dur.isInf(1):
			off = secs(0)
			dur = timeValue{}
		case off.isInf(-1):
			dur = secs(0)
		case dur.isInf(1):
			off = secs(math.Max(0, sd+off.seconds))
			dur = timeValue{}
		default:
			o := sd + off.seconds
			if o < 0 {
				dur = secs(math.Max(0, dur.seconds+o))
			} else {
				dur = secs(math.Min(dur.seconds, sd-o))
			}
			off = secs(math.Max(0, o))
		}

	case off.present && off.seconds < 0 && dur.present && dur.seconds < 0:
		if off.isInf(-1) {
			dur = secs(0)
		} else {
			d := dur.seconds
			if dur.isInf(-1) {
				d = -sd
			}
			orig := off.seconds
			off = secs(math.Max(0, sd+off.seconds+d))
			dur = secs(math.Max(0, math.Min(-d, sd+orig)))
		}
	}
	return off, dur, nil
}

// samplesFromSeconds converts a non-negative time in seconds to a sample
// count, evenly rounded.
func samplesFromSeconds(v float64, rate int) int64 {
	return int64(math.Round(v * float64(rate)))
}

// resolveRange turns caller-supplied offset/duration values into a
// concrete sample range for file. Metadata (sampling rate, total
// duration) is fetched through meta, lazily and at most once each.
func resolveRange(file string, offset, duration any, meta MetadataProvider) (sampleRange, error) {
	var r sampleRange

	if needsSamplingRate(offset, duration) {
		rate, err := meta.SamplingRate(file)
		if err != nil {
			return r, err
		}
		r.rate = rate
	}

	off, err := timeSpecInSeconds(offset, r.rate)
	if err != nil {
		return r, err
	}
	dur, err := timeSpecInSeconds(duration, r.rate)
	if err != nil {
		return r, err
	}

	off, dur, err = normalizeRange(off, dur, func() (float64, error) {
		return meta.Duration(file)
	})
	if err != nil {
		return r, err
	}

	r.duration = -1
	if dur.present {
		if dur.seconds != 0 {
			r.duration = samplesFromSeconds(dur.seconds, r.rate)
		} else {
			r.duration = 0
		}
		if r.duration == 0 {
			r.empty = true
			return r, nil
		}
	}
	if off.present && off.seconds != 0 {
		r.offset = samplesFromSeconds(off.seconds, r.rate)
	}
	return r, nil
}
