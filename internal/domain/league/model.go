package league

import "fmt"

// League is a football competition tracked by the prediction platform.
type League struct {
	ID      string
	APIRef  string
	Name    string
	Country string
	LogoURL string
}

func (l League) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("league id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}

	return nil
}
