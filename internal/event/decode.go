package event

import (
	"encoding/json"
	"fmt"
)

// DecodePayload returns the payload as T. In-process publishers hand over the
// struct itself (or a pointer to it); anything else, such as a replayed
// dead-letter entry, goes through a JSON round trip.
func DecodePayload[T any](input any) (T, error) {
	switch v := input.(type) {
	case T:
		return v, nil
	case *T:
		if v != nil {
			return *v, nil
		}
	}

	var result T
	if input == nil {
		return result, fmt.Errorf(ErrMsgNilPayload, result)
	}
	data, err := json.Marshal(input)
	if err != nil {
		return result, err
	}
	return result, json.Unmarshal(data, &result)
}
