package models

// Station is a stop on one line. The same physical station appears once per
// line it serves, so names are not unique; codes are.
type Station struct {
	Code       string     `json:"code"`
	Name       string     `json:"name"`
	Line       Line       `json:"line"`
	Zone       int        `json:"zone"`
	Facilities []Facility `json:"facilities"`
	Latitude   float64    `json:"latitude"`
	Longitude  float64    `json:"longitude"`
}

// HasFacility reports whether the station offers f
func (s Station) HasFacility(f Facility) bool {
	for _, have := range s.Facilities {
		if have == f {
			return true
		}
	}
	return false
}

// NearestStation is a station annotated with its distance from a query point
type NearestStation struct {
	Station
	DistanceMeters int `json:"distance"`
}
