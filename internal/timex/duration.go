// Package timex provides a JSON-friendly duration type.
package timex

import (
	"encoding/json"
	"errors"
	"time"
)

// ErrInvalidDuration is returned when a JSON value is neither a duration
// string nor a number.
var ErrInvalidDuration = errors.New("invalid duration")

// Duration wraps time.Duration so JSON config can hold either a string such
// as "3s" or an integer number of nanoseconds.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		d.Duration = parsed
		return nil
	default:
		return ErrInvalidDuration
	}
}
