// Package stations joins the GBFS directory and availability feeds into the
// collection the views render, and owns the state those views read.
package stations

import "viewer.bysykkel.dev/internal/gbfs"

// Station is one bike-share dock. AvailableBikes is nil until an
// availability record for the station has been merged.
type Station struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	Address        string  `json:"address"`
	Lat            float64 `json:"lat,omitempty"`
	Lon            float64 `json:"lon,omitempty"`
	Capacity       *int    `json:"capacity,omitempty"`
	AvailableBikes *int    `json:"num_bikes_available"`
}

// HasLocation reports whether the directory gave the station coordinates.
// Exactly (0,0) counts as missing; no dock sits at Null Island.
func (s Station) HasLocation() bool {
	return s.Lat != 0 || s.Lon != 0
}

// Collection maps station id to Station and remembers the order ids first
// appeared in. A Collection is not modified once it has been dispatched to
// a Store.
type Collection struct {
	order []int
	byID  map[int]Station
}

func NewCollection() *Collection {
	return &Collection{byID: make(map[int]Station)}
}

// Put stores s. Replacing an existing id keeps its original position.
func (c *Collection) Put(s Station) {
	if _, exists := c.byID[s.ID]; !exists {
		c.order = append(c.order, s.ID)
	}
	c.byID[s.ID] = s
}

func (c *Collection) Get(id int) (Station, bool) {
	if c == nil {
		return Station{}, false
	}
	s, ok := c.byID[id]
	return s, ok
}

func (c *Collection) Has(id int) bool {
	_, ok := c.Get(id)
	return ok
}

func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// Stations returns the stations in collection order.
func (c *Collection) Stations() []Station {
	if c == nil {
		return nil
	}
	result := make([]Station, 0, len(c.order))
	for _, id := range c.order {
		result = append(result, c.byID[id])
	}
	return result
}

// Clone returns a shallow copy that can be changed without touching c.
func (c *Collection) Clone() *Collection {
	clone := NewCollection()
	if c == nil {
		return clone
	}
	clone.order = append(make([]int, 0, len(c.order)), c.order...)
	for id, s := range c.byID {
		clone.byID[id] = s
	}
	return clone
}

// FromDirectory projects station_information records into a Collection with
// availability unset.
func FromDirectory(records []gbfs.StationInformation) *Collection {
	c := NewCollection()
	for _, r := range records {
		c.Put(Station{
			ID:       int(r.StationID),
			Name:     r.Name,
			Address:  r.Address,
			Lat:      r.Lat,
			Lon:      r.Lon,
			Capacity: r.Capacity,
		})
	}
	return c
}

// Merge copies directory and sets AvailableBikes on every station that has
// an availability record. Records for ids outside the directory are skipped
// and counted in unmatched; directory itself is left untouched.
func Merge(directory *Collection, records []gbfs.StationStatus) (merged *Collection, unmatched int) {
	merged = directory.Clone()
	for _, r := range records {
		id := int(r.StationID)
		s, ok := merged.byID[id]
		if !ok {
			unmatched++
			continue
		}
		if r.NumBikesAvailable == nil {
			continue
		}
		bikes := *r.NumBikesAvailable
		s.AvailableBikes = &bikes
		merged.byID[id] = s
	}
	return merged, unmatched
}
