package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// UserMap maps GitHub logins to Redmine user IDs. A missing login or a
// zero ID both mean "no mapping": the processor never assigns the issue.
type UserMap map[string]int

// LoadUsers reads users.yaml from the given path. A missing file is not an
// error; it yields an empty map.
func LoadUsers(path string) (UserMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return UserMap{}, nil
		}
		return nil, fmt.Errorf("failed to read users config: %w", err)
	}

	var users UserMap
	if err := yaml.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("failed to parse users config: %w", err)
	}
	if users == nil {
		users = UserMap{}
	}

	return users, nil
}

// RedmineID returns the Redmine user ID mapped to a GitHub login, or 0 when
// the login is unmapped.
func (u UserMap) RedmineID(login string) int {
	return u[login]
}
