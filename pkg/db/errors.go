package db

import "strings"

// IsUniqueViolation reports whether err is a Postgres unique violation.
// With a constraint name it further requires that constraint to be the one
// named in the error text.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	if !strings.Contains(err.Error(), "duplicate key value") && constraintName == "" {
		return false
	}
	if constraintName != "" {
		return strings.Contains(err.Error(), constraintName)
	}
	return true
}
