// Package prereqs checks that the host can run the native BLS bindings.
package prereqs

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("prefix", "prereqs")

// platform is an OS and architecture the herumi and blst bindings ship for.
// A non-zero minimum applies to the kernel release reported by uname.
type platform struct {
	os       string
	arch     string
	minMajor int
	minMinor int
}

func (p platform) String() string {
	if p.minMajor == 0 {
		return fmt.Sprintf("%s/%s", p.os, p.arch)
	}
	return fmt.Sprintf("%s/%s (%d.%d+)", p.os, p.arch, p.minMajor, p.minMinor)
}

var (
	// execShellOutput is swapped in tests.
	execShellOutput = execShellOutputFunc
	runtimeOS       = runtime.GOOS
	runtimeArch     = runtime.GOARCH

	supportedPlatforms = []platform{
		{os: "linux", arch: "amd64"},
		{os: "linux", arch: "arm64"},
		{os: "darwin", arch: "amd64", minMajor: 10, minMinor: 14},
		{os: "darwin", arch: "arm64"},
		{os: "windows", arch: "amd64"},
	}
)

func execShellOutputFunc(ctx context.Context, command string, args ...string) (string, error) {
	result, err := exec.CommandContext(ctx, command, args...).Output() // #nosec G204
	if err != nil {
		return "", errors.Wrap(err, "error in command execution")
	}
	return string(result), nil
}

// parseVersion reads the first num dot separated integers of input.
func parseVersion(input string, num int) ([]int, error) {
	components := strings.Split(strings.TrimSpace(input), ".")
	if len(components) < num {
		return nil, errors.New("insufficient information about version")
	}
	version := make([]int, num)
	for i := range version {
		v, err := strconv.Atoi(strings.TrimSpace(components[i]))
		if err != nil {
			return nil, errors.Wrap(err, "error during conversion")
		}
		version[i] = v
	}
	return version, nil
}

// meetsMinPlatformReqs reports whether the runtime matches a supported platform.
func meetsMinPlatformReqs(ctx context.Context) (bool, error) {
	for _, p := range supportedPlatforms {
		if runtimeOS != p.os || runtimeArch != p.arch {
			continue
		}
		if p.minMajor == 0 {
			return true, nil
		}
		out, err := execShellOutput(ctx, "uname", "-r")
		if err != nil {
			return false, errors.Wrap(err, "error obtaining kernel release")
		}
		version, err := parseVersion(out, 2)
		if err != nil {
			return false, errors.Wrap(err, "error parsing version")
		}
		if version[0] != p.minMajor {
			return version[0] > p.minMajor, nil
		}
		return version[1] >= p.minMinor, nil
	}
	return false, nil
}

// WarnIfPlatformNotSupported logs a warning when the host is not a supported platform
// or cannot be detected.
func WarnIfPlatformNotSupported(ctx context.Context) {
	supported, err := meetsMinPlatformReqs(ctx)
	if err != nil {
		log.WithError(err).Warn("Failed to detect host platform")
		return
	}
	if !supported {
		names := make([]string, len(supportedPlatforms))
		for i, p := range supportedPlatforms {
			names[i] = p.String()
		}
		log.Warnf("This platform is not supported by the BLS libraries. Supported platforms: %s", strings.Join(names, ", "))
	}
}
