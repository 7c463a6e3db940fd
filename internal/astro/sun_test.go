package astro

import (
	"math"
	"testing"
	"time"
)

func TestSunLongitude(t *testing.T) {
	tests := []struct {
		name string
		time time.Time
		want float64 // apparent longitude in degrees
		tol  float64
	}{
		{
			name: "Spring Equinox 2024 - Sun near 0°",
			time: time.Date(2024, 3, 20, 3, 6, 0, 0, time.UTC),
			want: 0,
			tol:  0.05,
		},
		{
			name: "Summer Solstice 2024 - Sun near 90°",
			time: time.Date(2024, 6, 20, 20, 51, 0, 0, time.UTC),
			want: 90,
			tol:  0.05,
		},
		{
			name: "Autumn Equinox 2024 - Sun near 180°",
			time: time.Date(2024, 9, 22, 12, 44, 0, 0, time.UTC),
			want: 180,
			tol:  0.05,
		},
		{
			name: "Winter Solstice 2024 - Sun near 270°",
			time: time.Date(2024, 12, 21, 9, 21, 0, 0, time.UTC),
			want: 270,
			tol:  0.05,
		},
		{
			name: "Meeus example 25.a (1992-10-13 0h TD)",
			time: time.Date(1992, 10, 13, 0, 0, 0, 0, time.UTC),
			want: 199.90895,
			tol:  0.02,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SunLongitude(JulianDay(tt.time))
			if d := math.Abs(SignedDelta(tt.want, got)); d > tt.tol {
				t.Errorf("SunLongitude() = %.4f°, want %.4f° (±%v)", got, tt.want, tt.tol)
			}
		})
	}
}

func TestSunLongitude_Advances(t *testing.T) {
	// The Sun moves roughly one degree per day and is never retrograde
	jd := JulianDay(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	for i := 0; i < 365; i += 7 {
		d := SignedDelta(SunLongitude(jd+float64(i)), SunLongitude(jd+float64(i)+1))
		if d < 0.9 || d > 1.1 {
			t.Errorf("day %d: daily motion %v, want ~1°", i, d)
		}
	}
}
