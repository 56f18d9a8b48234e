// Package version reports the build version of ssv-keys. The variables are
// set at link time, e.g. -ldflags "-X github.com/ssvlabs/ssv-keys/runtime/version.gitTag=v1.0.0".
package version

import (
	"fmt"
	"runtime"
	"time"
)

var (
	gitTag    = "v0.0.0"
	gitCommit = "Local build"
	buildDate = "Moments ago"
)

// Version returns the tag, commit and build date of the binary.
func Version() string {
	if buildDate == "{DATE}" {
		now := time.Now().Format(time.RFC3339)
		buildDate = now
	}
	return fmt.Sprintf("%s/%s. Built at: %s", gitTag, gitCommit, buildDate)
}

// SemanticVersion returns the tag of the binary.
func SemanticVersion() string {
	return gitTag
}

// BuildData returns the version with the go toolchain and platform.
func BuildData() string {
	return fmt.Sprintf("%s (%s %s/%s)", Version(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
