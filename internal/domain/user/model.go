package user

import "fmt"

// User identifies a prediction owner. Authentication happens upstream;
// this service only needs a stable identity to key predictions by.
type User struct {
	ID       string
	Username string
	Email    string
}

func (u User) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("user id is required")
	}
	if u.Username == "" {
		return fmt.Errorf("user username is required")
	}

	return nil
}
