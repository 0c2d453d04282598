package restapi

import (
	"fmt"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type mockTestingFatalf struct {
	failed bool
	err    string
}

func (m *mockTestingFatalf) Fatalf(format string, args ...any) {
	m.failed = true
	m.err = fmt.Sprintf(format, args...)
	runtime.Goexit()
}

func TestCollectStationIDs(t *testing.T) {
	data := []interface{}{
		map[string]interface{}{"id": float64(2350)},
		map[string]interface{}{"id": float64(627)},
	}

	assert.Equal(t, []int{2350, 627}, collectStationIDs(t, data))
}

func TestCollectNumbersFromObjectsFailures(t *testing.T) {
	tests := []struct {
		name          string
		data          []interface{}
		expectedError string
	}{
		{
			name:          "Invalid object type in the array",
			data:          []interface{}{map[int]interface{}{1: "234"}},
			expectedError: "item 0 is not a map[string]interface{}",
		},
		{
			name:          "Missing key from the object",
			data:          []interface{}{map[string]interface{}{"name": "Majorstuen"}},
			expectedError: "item 0 missing key \"id\"",
		},
		{
			name:          "Value is not a number",
			data:          []interface{}{map[string]interface{}{"id": "627"}},
			expectedError: "item 0 key \"id\" is not a number: string",
		},
		{
			name:          "Fractional station id",
			data:          []interface{}{map[string]interface{}{"id": 6.5}},
			expectedError: "station id 6.5 is not an integer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockFatalf := &mockTestingFatalf{}

			var running sync.WaitGroup
			running.Add(1)
			go func() {
				defer running.Done()
				collectStationIDs(mockFatalf, tt.data)
			}()
			running.Wait()

			assert.True(t, mockFatalf.failed)
			assert.Equal(t, tt.expectedError, mockFatalf.err)
		})
	}
}
