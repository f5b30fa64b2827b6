package team

import "fmt"

// Team is a real football club tracked by the prediction platform.
type Team struct {
	ID       string
	APIRef   string
	Name     string
	Short    string
	CrestURL string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}
