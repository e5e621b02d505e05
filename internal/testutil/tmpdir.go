// Package testutil contains utilities used in tests.
package testutil

import (
	"os"
	"testing"

	"github.com/pkg/errors"
)

// GetTempDirectoryName returns a temporary directory name used for testing.
func GetTempDirectoryName() (string, error) {
	td, err := os.MkdirTemp("", "treefind-test")
	if err != nil {
		return "", errors.Wrap(err, "unable to create temp directory")
	}

	return td, nil
}

// TempDirectory returns a temporary directory and cleans it up before test
// completes.
func TempDirectory(t *testing.T) string {
	t.Helper()

	d, err := GetTempDirectoryName()
	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		if !t.Failed() {
			os.RemoveAll(d) //nolint:errcheck
		} else {
			t.Logf("temporary files left in %v", d)
		}
	})

	return d
}
