package models

import (
	"net/http"

	"viewer.bysykkel.dev/internal/clock"
)

// ResponseModel is the envelope every JSON API response is wrapped in.
type ResponseModel struct {
	Code        int    `json:"code"`
	CurrentTime int64  `json:"currentTime"`
	Data        any    `json:"data,omitempty"`
	Text        string `json:"text"`
	Version     int    `json:"version"`
}

// ResponseCurrentTime is the envelope's currentTime in Unix milliseconds.
func ResponseCurrentTime(c clock.Clock) int64 {
	if c == nil {
		c = clock.RealClock{}
	}
	return c.NowUnixMilli()
}

func NewOKResponse(data any, c clock.Clock) ResponseModel {
	return ResponseModel{
		Code:        http.StatusOK,
		CurrentTime: ResponseCurrentTime(c),
		Data:        data,
		Text:        "OK",
		Version:     2,
	}
}

// NewListResponse wraps a list; an empty list is sent as [] rather than null.
func NewListResponse[T any](list []T, c clock.Clock) ResponseModel {
	if list == nil {
		list = []T{}
	}
	return NewOKResponse(ListData[T]{List: list}, c)
}

func NewEntryResponse(entry any, c clock.Clock) ResponseModel {
	return NewOKResponse(EntryData{Entry: entry}, c)
}

type ListData[T any] struct {
	List []T `json:"list"`
}

type EntryData struct {
	Entry any `json:"entry"`
}
