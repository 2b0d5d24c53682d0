// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

const minPasswordLength = 6

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail checks that an email address is well-formed.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(strings.TrimSpace(email)) {
		return fmt.Errorf("Please include a valid email")
	}
	return nil
}

// ValidatePassword checks the minimum password length requirement.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("Please enter a password with %d or more characters", minPasswordLength)
	}
	return nil
}

// ValidateName checks that a display name is present.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("Name is required")
	}
	return nil
}

// CollectErrors runs the given checks and returns every failure message.
// An empty result means all checks passed.
func CollectErrors(checks ...func() error) []string {
	var msgs []string
	for _, check := range checks {
		if err := check(); err != nil {
			msgs = append(msgs, err.Error())
		}
	}
	return msgs
}
