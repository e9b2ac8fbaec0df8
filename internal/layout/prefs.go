package layout

import (
	"math"
	"strconv"
)

// Persisted preference keys.
const (
	KeyLeftWidth     = "taskdex-leftWidth"
	KeyMidRatio      = "taskdex-midRatio"
	KeyLeftCollapsed = "taskdex-leftCollapsed"
)

// KV is a durable string key-value store for preferences.
type KV interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// Preferences are the user's persisted layout choices.
type Preferences struct {
	LeftWidth     int
	MidRatio      float64
	LeftCollapsed bool
}

// DefaultPreferences returns the layout used on first run.
func DefaultPreferences() Preferences {
	return Preferences{
		LeftWidth: DefaultLeftWidth,
		MidRatio:  DefaultMidRatio,
	}
}

// Clamp returns p with every value forced into its allowed range.
func (p Preferences) Clamp() Preferences {
	p.LeftWidth = clampInt(p.LeftWidth, MinLeftWidth, MaxLeftWidth)
	p.MidRatio = clampFloat(p.MidRatio, MinMidRatio, MaxMidRatio)
	return p
}

// Load reads preferences from kv. Missing or malformed values fall back to
// their defaults and numbers are clamped into range.
func Load(kv KV) Preferences {
	p := DefaultPreferences()
	if kv == nil {
		return p
	}

	if s, ok := kv.Get(KeyLeftWidth); ok {
		if f, ok := parseFinite(s); ok {
			// Clamp before converting so huge values cannot overflow.
			f = clampFloat(f, MinLeftWidth, MaxLeftWidth)
			p.LeftWidth = int(math.Round(f))
		}
	}
	if s, ok := kv.Get(KeyMidRatio); ok {
		if f, ok := parseFinite(s); ok {
			p.MidRatio = f
		}
	}
	if s, ok := kv.Get(KeyLeftCollapsed); ok {
		switch s {
		case "true":
			p.LeftCollapsed = true
		case "false":
			p.LeftCollapsed = false
		}
	}

	return p.Clamp()
}

// Save writes every preference to kv. The first failure is returned after
// attempting all keys.
func Save(kv KV, p Preferences) error {
	if kv == nil {
		return nil
	}

	var firstErr error
	set := func(key, value string) {
		if err := kv.Set(key, value); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	set(KeyLeftWidth, strconv.Itoa(p.LeftWidth))
	set(KeyMidRatio, strconv.FormatFloat(p.MidRatio, 'f', -1, 64))
	set(KeyLeftCollapsed, strconv.FormatBool(p.LeftCollapsed))

	return firstErr
}

func parseFinite(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
