// Package area decodes the repeated sub-area records trailing an Area
// Notice header (IMO Circ 289 and the US DAC 367 variant).
//
// Each record opens with a 3-bit shape discriminator that selects the
// layout of the rest of the record. Records are packed back-to-back
// until the payload runs out of room or MaxSubAreas is reached. An
// unassigned discriminator is fatal for the whole message: without the
// shape, the remaining bit layout cannot be determined.
package area

import (
	"ais_watch/internal/bits"
	"ais_watch/internal/registry"
)

// Record sizes in bits. IMO Circ 289 packs sub-areas into 87-bit
// records; the US variant pads each record to 90 bits.
const (
	RecordBitsIMO = 87
	RecordBitsUS  = 90
)

// MaxSubAreas bounds the substructure loop regardless of payload size.
// An Area Notice describes at most a handful of shapes; anything past
// this is garbage or abuse.
const MaxSubAreas = 10

// Shape discriminator values.
const (
	ShapeCircle   = 0
	ShapeRect     = 1
	ShapeSector   = 2
	ShapePolyline = 3
	ShapePolygon  = 4
	ShapeText     = 5
)

// SubArea is the closed set of sub-area record shapes.
type SubArea interface {
	subArea()
}

// Circle is a point when RadiusM is zero.
type Circle struct {
	Shape       int      `json:"shape"`
	ScaleFactor int      `json:"scale_factor"`
	Longitude   *float64 `json:"longitude"`
	Latitude    *float64 `json:"latitude"`
	Precision   int      `json:"precision"`
	RadiusM     int      `json:"radius_m"`
}

// Rect is an axis-rotated rectangle anchored at its SW corner.
type Rect struct {
	Shape       int      `json:"shape"`
	ScaleFactor int      `json:"scale_factor"`
	Longitude   *float64 `json:"longitude"`
	Latitude    *float64 `json:"latitude"`
	Precision   int      `json:"precision"`
	EDimM       int      `json:"e_dim_m"`
	NDimM       int      `json:"n_dim_m"`
	Orientation int      `json:"orientation"`
}

// Sector is a circle slice bounded by two bearings.
type Sector struct {
	Shape       int      `json:"shape"`
	ScaleFactor int      `json:"scale_factor"`
	Longitude   *float64 `json:"longitude"`
	Latitude    *float64 `json:"latitude"`
	Precision   int      `json:"precision"`
	RadiusM     int      `json:"radius_m"`
	LeftBound   int      `json:"left_bound"`
	RightBound  int      `json:"right_bound"`
}

// Leg is one angle/distance pair of a polyline or polygon, relative to
// the previous sub-area's position.
type Leg struct {
	Angle int `json:"angle"`
	Dist  int `json:"dist"`
}

// Polyline is an open chain of up to four legs.
type Polyline struct {
	Shape       int    `json:"shape"`
	ScaleFactor int    `json:"scale_factor"`
	Legs        [4]Leg `json:"legs"`
}

// Polygon is a closed chain of up to four legs.
type Polygon struct {
	Shape       int    `json:"shape"`
	ScaleFactor int    `json:"scale_factor"`
	Legs        [4]Leg `json:"legs"`
}

// Text carries a free-text annotation for the preceding shapes.
type Text struct {
	Shape int    `json:"shape"`
	Text  string `json:"text"`
}

func (Circle) subArea()   {}
func (Rect) subArea()     {}
func (Sector) subArea()   {}
func (Polyline) subArea() {}
func (Polygon) subArea()  {}
func (Text) subArea()     {}

// DecodeList reads sub-area records of recordBits bits each until the
// cursor has less than one record left or MaxSubAreas is reached. Zero
// trailing bits is a valid empty list, not an error.
func DecodeList(c *bits.Cursor, recordBits int) ([]SubArea, error) {
	var list []SubArea
	for len(list) < MaxSubAreas && c.Remaining() >= recordBits {
		start := c.Pos()
		shape := c.Uint("sub_area_shape", 3)

		var sa SubArea
		switch shape {
		case ShapeCircle:
			sa = Circle{
				Shape:       ShapeCircle,
				ScaleFactor: int(c.Uint("scale_factor", 2)),
				Longitude:   c.Lon("longitude"),
				Latitude:    c.Lat("latitude"),
				Precision:   int(c.Uint("precision", 3)),
				RadiusM:     int(c.Uint("radius", 12)),
			}
		case ShapeRect:
			sa = Rect{
				Shape:       ShapeRect,
				ScaleFactor: int(c.Uint("scale_factor", 2)),
				Longitude:   c.Lon("longitude"),
				Latitude:    c.Lat("latitude"),
				Precision:   int(c.Uint("precision", 3)),
				EDimM:       int(c.Uint("e_dim", 8)),
				NDimM:       int(c.Uint("n_dim", 8)),
				Orientation: int(c.Uint("orientation", 9)),
			}
		case ShapeSector:
			sa = Sector{
				Shape:       ShapeSector,
				ScaleFactor: int(c.Uint("scale_factor", 2)),
				Longitude:   c.Lon("longitude"),
				Latitude:    c.Lat("latitude"),
				Precision:   int(c.Uint("precision", 3)),
				RadiusM:     int(c.Uint("radius", 12)),
				LeftBound:   int(c.Uint("left_bound", 9)),
				RightBound:  int(c.Uint("right_bound", 9)),
			}
		case ShapePolyline, ShapePolygon:
			scale := int(c.Uint("scale_factor", 2))
			var legs [4]Leg
			for i := range legs {
				legs[i].Angle = int(c.Uint("angle", 10))
				legs[i].Dist = int(c.Uint("dist", 10))
			}
			if shape == ShapePolyline {
				sa = Polyline{Shape: ShapePolyline, ScaleFactor: scale, Legs: legs}
			} else {
				sa = Polygon{Shape: ShapePolygon, ScaleFactor: scale, Legs: legs}
			}
		case ShapeText:
			sa = Text{
				Shape: ShapeText,
				Text:  c.Text("text", 14),
			}
		default:
			return nil, registry.NewUnknownDiscriminator(shape, len(list), start)
		}

		if err := c.Err(); err != nil {
			return nil, err
		}
		list = append(list, sa)

		// Records are fixed-size; skip any spare bits to the boundary.
		if used := c.Pos() - start; used < recordBits {
			c.Skip(recordBits - used)
		}
	}
	return list, c.Err()
}
