package series

import (
	"fmt"
	"time"
)

// Counts summarizes the fixture makeup of a series as reported by the provider.
type Counts struct {
	ODI     int
	T20     int
	Test    int
	Squads  int
	Matches int
}

// Series is a named cricket tournament or bilateral tour.
type Series struct {
	ID        string
	Name      string
	StartDate string
	EndDate   string
	Counts    Counts
	UpdatedAt time.Time
}

func (s Series) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("series id is required")
	}
	if s.Name == "" {
		return fmt.Errorf("series name is required")
	}

	return nil
}
