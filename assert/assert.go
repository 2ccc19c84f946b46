// Package assert includes some helper methods used for testing
package assert

import (
	"errors"
	"testing"
)

// Errors checks the validity of the expected error and returns false if the assertion failed
// or an error was expected, in which case the caller should not carry on with the test case.
func Errors(t *testing.T, expectError bool, err error, fields Fields) bool {
	t.Helper()

	if expectError && err == nil {
		t.Errorf("Expected an error, but received 'nil' (%s)", fields.String())
	}

	if !expectError && err != nil {
		t.Errorf("No error was expected, but received '%v' (%s)", err, fields.String())
	}

	return !expectError && err == nil
}

// ErrorIs checks that err matches the target error somewhere in its chain
func ErrorIs(t *testing.T, err, target error, fields Fields) bool {
	t.Helper()

	if !errors.Is(err, target) {
		t.Errorf("Expected '%v' as error, but received '%v' (%s)", target, err, fields.String())
		return false
	}
	return true
}
