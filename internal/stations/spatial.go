package stations

import (
	"sort"

	"github.com/tidwall/rtree"
	"viewer.bysykkel.dev/internal/utils"
)

// NearbyStation is a search hit with its distance from the query point.
type NearbyStation struct {
	Station
	DistanceMeters float64 `json:"distance_meters"`
}

// SpatialIndex answers radius queries over one merged collection. Stations
// without coordinates are not indexed.
type SpatialIndex struct {
	tree rtree.RTreeG[Station]
}

// NewSpatialIndex indexes every located station in c.
func NewSpatialIndex(c *Collection) *SpatialIndex {
	idx := &SpatialIndex{}
	for _, s := range c.Stations() {
		if !s.HasLocation() {
			continue
		}
		point := [2]float64{s.Lon, s.Lat}
		idx.tree.Insert(point, point, s)
	}
	return idx
}

// Len is the number of indexed stations.
func (idx *SpatialIndex) Len() int {
	if idx == nil {
		return 0
	}
	return idx.tree.Len()
}

// Nearby returns stations within radius meters of (lat, lon), nearest first.
// Ties keep ascending station id.
func (idx *SpatialIndex) Nearby(lat, lon, radius float64) []NearbyStation {
	if idx == nil || radius <= 0 {
		return nil
	}

	bounds := utils.CalculateBounds(lat, lon, radius)
	lo := [2]float64{bounds.MinLon, bounds.MinLat}
	hi := [2]float64{bounds.MaxLon, bounds.MaxLat}

	var hits []NearbyStation
	idx.tree.Search(lo, hi, func(_, _ [2]float64, s Station) bool {
		d := utils.Distance(lat, lon, s.Lat, s.Lon)
		if d <= radius {
			hits = append(hits, NearbyStation{Station: s, DistanceMeters: d})
		}
		return true
	})

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].DistanceMeters != hits[j].DistanceMeters {
			return hits[i].DistanceMeters < hits[j].DistanceMeters
		}
		return hits[i].ID < hits[j].ID
	})
	return hits
}
