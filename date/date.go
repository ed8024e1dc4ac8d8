package date

import (
	"encoding/json"
	"fmt"
	"time"
)

// Format is the layout used to read and write stamps, second precision.
const Format = "2006-01-02 15:04:05"

// Stamp is a wall-clock instant with no lower than second granularity.
//
// Stamps carry no location: they are recorded and read back in local time, the
// way they are written in the transaction table.
type Stamp struct {
	t time.Time
}

// New returns a normalized Stamp for the given calendar fields.
func New(year int, month time.Month, day, hour, min, sec int) Stamp {
	return Stamp{time.Date(year, month, day, hour, min, sec, 0, time.Local)}
}

// Of truncates t to the second.
func Of(t time.Time) Stamp {
	y, m, d := t.Date()
	return New(y, m, d, t.Hour(), t.Minute(), t.Second())
}

// Now returns the current stamp.
func Now() Stamp { return Of(time.Now()) }

// Time returns the stamp as a time.Time in the local zone.
func (s Stamp) Time() time.Time { return s.t }

// IsZero reports whether s is the zero stamp.
func (s Stamp) IsZero() bool { return s.t.IsZero() }

// Before reports whether s is before x.
func (s Stamp) Before(x Stamp) bool { return s.t.Before(x.t) }

// After reports whether s is after x.
func (s Stamp) After(x Stamp) bool { return s.t.After(x.t) }

// Equal reports whether s and x are the same instant.
func (s Stamp) Equal(x Stamp) bool { return s.t.Equal(x.t) }

// String formats the stamp in its standard format.
func (s Stamp) String() string { return s.t.Format(Format) }

// Parse parses a Stamp written with Format.
func Parse(str string) (Stamp, error) {
	on, err := time.ParseInLocation(Format, str, time.Local)
	if err != nil {
		return Stamp{}, fmt.Errorf("invalid date %q want format %q: %w", str, Format, err)
	}
	return Stamp{on}, nil
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Stamp {
	s, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return s
}

// UnmarshalJSON implements the json specific way to unmarshall a stamp from a json string.
func (s *Stamp) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	v, err := Parse(str)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func (s Stamp) MarshalJSON() ([]byte, error) {
	str := s.String()
	return json.Marshal(&str)
}

// check that a Stamp pointer is a valid json marshall/unmarshaller type.
var _ json.Marshaler = (*Stamp)(nil)
var _ json.Unmarshaler = (*Stamp)(nil)
