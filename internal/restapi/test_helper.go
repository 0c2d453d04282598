// test_helper.go contains shared utilities for reading station fields out of
// decoded JSON lists in handler tests.
package restapi

type testingFatalf interface {
	Fatalf(format string, args ...any)
}

// collectNumbersFromObjects extracts the numeric field key from every object
// in list. JSON numbers decode as float64.
func collectNumbersFromObjects(t testingFatalf, list []interface{}, key string) (values []float64) {
	for i, item := range list {
		object, ok := item.(map[string]interface{})
		if !ok {
			t.Fatalf("item %d is not a map[string]interface{}", i)
		}
		value, ok := object[key]
		if !ok {
			t.Fatalf("item %d missing key %q", i, key)
		}
		number, ok := value.(float64)
		if !ok {
			t.Fatalf("item %d key %q is not a number: %T", i, key, value)
		}
		values = append(values, number)
	}
	return values
}

// collectStationIDs extracts the integer station ids from a station list.
func collectStationIDs(t testingFatalf, list []interface{}) (ids []int) {
	for _, v := range collectNumbersFromObjects(t, list, "id") {
		if v != float64(int(v)) {
			t.Fatalf("station id %v is not an integer", v)
		}
		ids = append(ids, int(v))
	}
	return ids
}
