package sharesdata

import "fmt"

// PayloadFormatError describes a shares data byte string that does not match the fixed framing.
type PayloadFormatError struct {
	Segment  string
	Expected int
	Actual   int
	Reason   string
}

func (e *PayloadFormatError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("malformed shares data: %s: %s", e.Segment, e.Reason)
	}
	return fmt.Sprintf("malformed shares data: %s length %d, expected %d", e.Segment, e.Actual, e.Expected)
}
