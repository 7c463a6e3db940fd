package render

import (
	"time"

	"github.com/google/uuid"

	"github.com/litescript/ls-trichart/internal/astro"
	"github.com/litescript/ls-trichart/internal/chart"
	"github.com/litescript/ls-trichart/internal/places"
	"github.com/litescript/ls-trichart/internal/session"
)

// sampleChart is a small hand-built chart: ASC 100°, MC 10°, equal houses.
func sampleChart() *session.Chart {
	angles := chart.Angles{Ascendant: 100, Midheaven: 10}
	var lon [12]float64
	for i := range lon {
		lon[i] = astro.Normalize360(100 + 30*float64(i))
	}
	natal := chart.NewLayer(chart.Natal,
		chart.BodyPosition{Body: astro.Sun, Longitude: 15.39, Retrograde: false},
		chart.BodyPosition{Body: astro.Moon, Longitude: 200},
		chart.BodyPosition{Body: astro.Mercury, Longitude: 5, Retrograde: true},
	)
	natal.Bodies = append(natal.Bodies, angles.Positions()...)
	birth := time.Date(1990, 1, 1, 3, 0, 0, 0, time.UTC)
	transit := time.Date(2024, 3, 20, 3, 0, 0, 0, time.UTC)
	return &session.Chart{
		ID: uuid.MustParse("6f1c2f7e-8c1b-4b7a-9d55-2f0a1e9c3b10"),
		Request: session.Request{
			Birth:   birth,
			Transit: transit,
			Place:   places.Place{Name: "Tokyo", Lat: 35.69, Lon: 139.69, TimeZone: "Asia/Tokyo"},
		},
		Natal: natal,
		Progressed: chart.NewLayer(chart.Progressed,
			chart.BodyPosition{Body: astro.Sun, Longitude: 45},
			chart.BodyPosition{Body: astro.Moon, Longitude: 260},
		),
		Transit: chart.NewLayer(chart.Transit,
			chart.BodyPosition{Body: astro.Sun, Longitude: 300},
			chart.BodyPosition{Body: astro.Saturn, Longitude: 350, Retrograde: true},
		),
		Cusps:        chart.MustCusps(lon),
		Angles:       angles,
		ProgressedAt: session.ProgressedMoment(birth, transit),
		HouseSystem:  "equal",
		Provider:     "builtin",
	}
}
