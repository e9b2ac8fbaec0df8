package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name string
		data map[string]string
		want Preferences
	}{
		{
			name: "empty store",
			data: map[string]string{},
			want: DefaultPreferences(),
		},
		{
			name: "valid values",
			data: map[string]string{
				KeyLeftWidth:     "36",
				KeyMidRatio:      "0.55",
				KeyLeftCollapsed: "true",
			},
			want: Preferences{LeftWidth: 36, MidRatio: 0.55, LeftCollapsed: true},
		},
		{
			name: "out of range values are clamped",
			data: map[string]string{
				KeyLeftWidth: "900",
				KeyMidRatio:  "0.01",
			},
			want: Preferences{LeftWidth: MaxLeftWidth, MidRatio: MinMidRatio},
		},
		{
			name: "malformed values fall back",
			data: map[string]string{
				KeyLeftWidth:     "wide",
				KeyMidRatio:      "NaN",
				KeyLeftCollapsed: "yes",
			},
			want: DefaultPreferences(),
		},
		{
			name: "infinity falls back",
			data: map[string]string{
				KeyMidRatio: "+Inf",
			},
			want: DefaultPreferences(),
		},
		{
			name: "huge widths clamp to the maximum",
			data: map[string]string{
				KeyLeftWidth: "1e300",
			},
			want: Preferences{LeftWidth: MaxLeftWidth, MidRatio: DefaultMidRatio},
		},
		{
			name: "huge negative widths clamp to the minimum",
			data: map[string]string{
				KeyLeftWidth: "-1e300",
			},
			want: Preferences{LeftWidth: MinLeftWidth, MidRatio: DefaultMidRatio},
		},
		{
			name: "fractional width is rounded",
			data: map[string]string{
				KeyLeftWidth: "30.6",
			},
			want: Preferences{LeftWidth: 31, MidRatio: DefaultMidRatio},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := newMemKV()
			kv.data = tt.data
			assert.Equal(t, tt.want, Load(kv))
		})
	}
}

func TestLoadNilStore(t *testing.T) {
	assert.Equal(t, DefaultPreferences(), Load(nil))
}

func TestSaveRoundTrip(t *testing.T) {
	kv := newMemKV()
	p := Preferences{LeftWidth: 24, MidRatio: 0.62, LeftCollapsed: true}

	assert.NoError(t, Save(kv, p))
	assert.Equal(t, p, Load(kv))
}

func TestSaveReportsFailure(t *testing.T) {
	kv := newMemKV()
	kv.fail = true

	assert.Error(t, Save(kv, DefaultPreferences()))
	assert.Equal(t, 3, kv.sets, "every key is attempted")
}
