package gps

import "fmt"

// Coordinate is a position in signed decimal degrees.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// InRange reports whether the latitude lies in [-90, 90] and the longitude
// in [-180, 180]. Parsing does not enforce it.
func (c Coordinate) InRange() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%v, %v", c.Latitude, c.Longitude)
}

// Sexagesimal holds the raw degree, minute and second tokens of one axis
// together with its hemisphere letter.
type Sexagesimal struct {
	Degrees    string
	Minutes    string
	Seconds    string
	Hemisphere string
}

// Decimal converts the tokens to unsigned decimal degrees. The hemisphere
// is not applied here.
func (s Sexagesimal) Decimal(axis string) (float64, error) {
	deg, err := parseField(axis, "degrees", s.Degrees)
	if err != nil {
		return 0, err
	}
	mins, err := parseField(axis, "minutes", s.Minutes)
	if err != nil {
		return 0, err
	}
	secs, err := parseField(axis, "seconds", s.Seconds)
	if err != nil {
		return 0, err
	}
	return deg + mins/60 + secs/3600, nil
}
