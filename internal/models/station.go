package models

import (
	"time"

	"viewer.bysykkel.dev/internal/stations"
)

// SnapshotStatus summarizes the state after a pipeline run.
type SnapshotStatus struct {
	Stations          int    `json:"stations"`
	DirectoryStations int    `json:"directoryStations"`
	Error             string `json:"error,omitempty"`
	DirectoryLoadedAt int64  `json:"directoryLoadedAt,omitempty"`
	MergedAt          int64  `json:"mergedAt,omitempty"`
}

func NewSnapshotStatus(s stations.State) SnapshotStatus {
	return SnapshotStatus{
		Stations:          s.Merged.Len(),
		DirectoryStations: s.Directory.Len(),
		Error:             s.ErrorMessage,
		DirectoryLoadedAt: unixMilli(s.DirectoryLoadedAt),
		MergedAt:          unixMilli(s.MergedAt),
	}
}

func unixMilli(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}
