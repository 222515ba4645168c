package utils

import (
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/menta2k/treenorm/pkg/types"
)

// EnsureDir creates a directory and any missing parents
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// HasTargetExtension reports whether name ends with the target suffix.
// The comparison is case-sensitive: "a.PNG" does not match.
func HasTargetExtension(name string) bool {
	return strings.HasSuffix(name, types.TargetExtension)
}

// DirExists checks if a directory exists
func DirExists(dirname string) bool {
	info, err := os.Stat(dirname)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// FileExists checks if a file exists and is not a directory
func FileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// FormatFileSize formats file size in human-readable format
func FormatFileSize(size int64) string {
	if size < 0 {
		size = 0
	}
	return humanize.IBytes(uint64(size))
}
