package fleet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePickup(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{
			name: "iso date with trailing token",
			raw:  "2024-01-05, AM",
			want: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "iso date alone",
			raw:  "2024-01-10",
			want: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "us date",
			raw:  "01/10/2024, PM",
			want: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "padded head",
			raw:  "  2024-02-01 , late pickup",
			want: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "unparseable text",
			raw:  "call dispatcher, AM",
			want: time.Time{},
		},
		{
			name: "empty value",
			raw:  "",
			want: time.Time{},
		},
		{
			name: "only a comma",
			raw:  ",",
			want: time.Time{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePickup(tt.raw)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}
