package astro

// Body identifies a chart body or angle point.
type Body string

const (
	Sun       Body = "sun"
	Moon      Body = "moon"
	Mercury   Body = "mercury"
	Venus     Body = "venus"
	Mars      Body = "mars"
	Jupiter   Body = "jupiter"
	Saturn    Body = "saturn"
	Uranus    Body = "uranus"
	Neptune   Body = "neptune"
	Pluto     Body = "pluto"
	Lilith    Body = "lilith"     // mean lunar apogee
	NorthNode Body = "north_node" // mean ascending lunar node
	SouthNode Body = "south_node" // derived: opposite the north node

	Ascendant Body = "asc"
	Midheaven Body = "mc"
)

// BodyInfo contains display and lookup information for a body.
type BodyInfo struct {
	Body   Body
	Name   string
	Glyph  string
	NAIFID int  // NAIF SPICE ID, 0 if the point has no ephemeris target
	Angle  bool // ASC/MC: house boundaries, never assigned a house
}

// Bodies is the catalogue in chart order.
var Bodies = []BodyInfo{
	{Body: Sun, Name: "Sun", Glyph: "☉", NAIFID: 10},
	{Body: Moon, Name: "Moon", Glyph: "☽", NAIFID: 301},
	{Body: Mercury, Name: "Mercury", Glyph: "☿", NAIFID: 199},
	{Body: Venus, Name: "Venus", Glyph: "♀", NAIFID: 299},
	{Body: Mars, Name: "Mars", Glyph: "♂", NAIFID: 499},
	{Body: Jupiter, Name: "Jupiter", Glyph: "♃", NAIFID: 599},
	{Body: Saturn, Name: "Saturn", Glyph: "♄", NAIFID: 699},
	{Body: Uranus, Name: "Uranus", Glyph: "♅", NAIFID: 799},
	{Body: Neptune, Name: "Neptune", Glyph: "♆", NAIFID: 899},
	{Body: Pluto, Name: "Pluto", Glyph: "♇", NAIFID: 999},
	{Body: Lilith, Name: "Lilith", Glyph: "⚸"},
	{Body: NorthNode, Name: "North Node", Glyph: "☊"},
	{Body: SouthNode, Name: "South Node", Glyph: "☋"},
	{Body: Ascendant, Name: "Ascendant", Glyph: "ASC", Angle: true},
	{Body: Midheaven, Name: "Midheaven", Glyph: "MC", Angle: true},
}

// ChartBodies lists the bodies computed for every chart layer, in order.
// The south node is derived from the north node rather than looked up.
var ChartBodies = []Body{
	Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune, Pluto,
	Lilith, NorthNode,
}

var bodiesByID = func() map[Body]BodyInfo {
	m := make(map[Body]BodyInfo, len(Bodies))
	for _, b := range Bodies {
		m[b.Body] = b
	}
	return m
}()

// Info returns catalogue information for a body. Unknown bodies get their
// identifier as name and glyph.
func (b Body) Info() BodyInfo {
	if info, ok := bodiesByID[b]; ok {
		return info
	}
	return BodyInfo{Body: b, Name: string(b), Glyph: string(b)}
}

// Name returns the display name.
func (b Body) Name() string { return b.Info().Name }

// Glyph returns the chart glyph.
func (b Body) Glyph() string { return b.Info().Glyph }

// IsAngle reports whether the body is an angle point (ASC or MC).
func (b Body) IsAngle() bool { return b.Info().Angle }
