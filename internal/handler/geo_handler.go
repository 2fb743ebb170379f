package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/geoquiz/geoquiz-backend/internal/geodata"
	"github.com/geoquiz/geoquiz-backend/internal/response"
	"github.com/geoquiz/geoquiz-backend/internal/session"
)

// GeoHandler serves the embedded geography catalog.
type GeoHandler struct{}

// NewGeoHandler creates a new GeoHandler.
func NewGeoHandler() *GeoHandler {
	return &GeoHandler{}
}

// ListRegions godoc
// GET /api/v1/geo/regions
// Returns the supported region names.
func (h *GeoHandler) ListRegions(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"regions": geodata.Regions})
}

// ListCountries godoc
// GET /api/v1/geo/countries?region=
// Returns the catalog, optionally filtered to a region.
func (h *GeoHandler) ListCountries(c *gin.Context) {
	region := c.Query("region")
	if region == "" {
		response.Success(c, http.StatusOK, gin.H{"countries": geodata.Catalog()})
		return
	}

	if !geodata.ValidRegion(region) {
		response.Fail(c, http.StatusBadRequest, response.ErrUnknownRegion)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"countries": session.FilterByRegion(geodata.Catalog(), region)})
}
