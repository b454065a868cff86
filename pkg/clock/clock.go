package clock

import "time"

// Clock abstracts the timestamp source so agreement math can be tested
// against fixed instants.
type Clock interface {
	Now() time.Time
}

type System struct{}

func (System) Now() time.Time { return time.Now().UTC() }

// Fixed always returns the same instant. Test helper.
type Fixed struct{ T time.Time }

func (f Fixed) Now() time.Time { return f.T }
