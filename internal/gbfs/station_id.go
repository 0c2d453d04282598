package gbfs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// StationID is the integer station key. Publishers disagree on whether
// station_id is a JSON string or a number, so both are accepted.
type StationID int

func (id *StationID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return fmt.Errorf("station_id is null")
	}

	raw := string(b)
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return fmt.Errorf("station_id: %w", err)
		}
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("station_id %q is not an integer", raw)
	}
	*id = StationID(n)
	return nil
}

func (id StationID) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(id))), nil
}

func (id StationID) String() string {
	return strconv.Itoa(int(id))
}
