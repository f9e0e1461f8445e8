package country

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Decode parses a JSON array of records. A payload that is not an array of
// objects is reported as ErrDecode; missing optional fields are not errors.
func Decode(data []byte) ([]Record, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		if errors.Is(err, ErrDecode) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}
