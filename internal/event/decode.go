package event

import (
	"encoding/json"
	"fmt"
)

// DecodePayload returns the payload as T. In-process publishers hand over the
// struct itself, or a pointer to it; anything else, such as a map read back
// from the event log, goes through a JSON round trip.
func DecodePayload[T any](input interface{}) (T, error) {
	switch v := input.(type) {
	case T:
		return v, nil
	case *T:
		if v != nil {
			return *v, nil
		}
	}

	var result T
	data, err := json.Marshal(input)
	if err != nil {
		return result, fmt.Errorf("%s %T: %w", ErrMsgDecodePayload, result, err)
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return result, fmt.Errorf("%s %T: %w", ErrMsgDecodePayload, result, err)
	}
	return result, nil
}
