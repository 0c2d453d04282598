// Package gbfs fetches and decodes the two General Bikeshare Feed
// Specification feeds the viewer needs: station_information and
// station_status.
package gbfs

import "errors"

const (
	FeedStationInformation = "station_information"
	FeedStationStatus      = "station_status"
)

// StationInformationFeed is the station_information.json document.
type StationInformationFeed struct {
	LastUpdated int64                   `json:"last_updated"`
	TTL         int                     `json:"ttl"`
	Data        *StationInformationData `json:"data"`
}

type StationInformationData struct {
	Stations []StationInformation `json:"stations"`
}

// StationInformation is one directory record. Only station_id, name and
// address are guaranteed by every publisher.
type StationInformation struct {
	StationID StationID `json:"station_id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lon"`
	Capacity  *int      `json:"capacity,omitempty"`
}

// StationStatusFeed is the station_status.json document.
type StationStatusFeed struct {
	LastUpdated int64              `json:"last_updated"`
	TTL         int                `json:"ttl"`
	Data        *StationStatusData `json:"data"`
}

type StationStatusData struct {
	Stations []StationStatus `json:"stations"`
}

// StationStatus is one availability record.
type StationStatus struct {
	StationID         StationID `json:"station_id"`
	NumBikesAvailable *int      `json:"num_bikes_available"`
	NumDocksAvailable *int      `json:"num_docks_available,omitempty"`
	IsRenting         *bool     `json:"is_renting,omitempty"`
	LastReported      int64     `json:"last_reported,omitempty"`
}

// document is a decoded feed that can check its own shape.
type document interface {
	validate() error
}

func (f *StationInformationFeed) validate() error {
	if f.Data == nil || f.Data.Stations == nil {
		return errors.New("missing data.stations")
	}
	return nil
}

func (f *StationStatusFeed) validate() error {
	if f.Data == nil || f.Data.Stations == nil {
		return errors.New("missing data.stations")
	}
	return nil
}
