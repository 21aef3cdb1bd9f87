package country

import (
	"fmt"
	"time"
)

// Country is a cricket-playing nation known to the provider.
type Country struct {
	ID        string
	Name      string
	UpdatedAt time.Time
}

func (c Country) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("country id is required")
	}
	if c.Name == "" {
		return fmt.Errorf("country name is required")
	}

	return nil
}
