package dto

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date accepts either "2006-01-02" or RFC3339 in JSON and query strings.
type Date struct {
	time.Time
}

// ParseDate parses a calendar date or an RFC3339 timestamp.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return Date{t}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or RFC3339", s)
	}
	return Date{t}, nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// OrNow returns d, or the current time when d was not supplied.
func (d Date) OrNow() time.Time {
	if d.IsZero() {
		return time.Now()
	}
	return d.Time
}

// DeletedResponse reports how many rows a delete removed.
type DeletedResponse struct {
	Deleted int64 `json:"deleted"`
}
