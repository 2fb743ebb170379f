package model

// GeoEntity is a geographic identification target in the map quiz,
// drawn from the static reference catalog. Code is the unique 3-letter
// country code joining the feature data to the region classification.
type GeoEntity struct {
	Name   string `json:"name"`
	Code   string `json:"code"`
	Region string `json:"region"`
}
