package models

import (
	"reflect"
	"testing"
)

func TestSettingsMapRoundTrip(t *testing.T) {
	want := Settings{
		FocusMinutes:         50,
		ShortBreakMinutes:    10,
		LongBreakMinutes:     30,
		NotificationsEnabled: false,
		BellEnabled:          true,
		DailyGoal:            6,
	}

	got, err := MapToSettings(SettingsToMap(want))
	if err != nil {
		t.Fatalf("MapToSettings() error = %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MapToSettings() = %+v, want %+v", got, want)
	}
}

func TestMapToSettings(t *testing.T) {
	tests := []struct {
		name    string
		data    map[string]string
		want    Settings
		wantErr bool
	}{
		{
			name: "missing keys keep defaults",
			data: map[string]string{"focus_minutes": "45"},
			want: func() Settings { s := DefaultSettings(); s.FocusMinutes = 45; return s }(),
		},
		{
			name: "unknown keys ignored",
			data: map[string]string{"day_start": "08:00"},
			want: DefaultSettings(),
		},
		{
			name:    "non-numeric duration",
			data:    map[string]string{"long_break_minutes": "soon"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MapToSettings(tt.data)
			if (err != nil) != tt.wantErr {
				t.Fatalf("MapToSettings() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MapToSettings() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNextColorKey(t *testing.T) {
	if got := NextColorKey(0); got != "emerald" {
		t.Errorf("NextColorKey(0) = %q, want emerald", got)
	}
	if got := NextColorKey(11); got != "blue" {
		t.Errorf("NextColorKey(11) = %q, want blue", got)
	}
	if !ValidColorKey("teal") || ValidColorKey("mauve") {
		t.Error("ValidColorKey() misclassified palette entries")
	}
}
