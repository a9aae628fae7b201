// Package platform probes the build target once per process and hands the
// result around as an immutable descriptor. Only output-path selection
// consumes it; resolution and code generation stay environment-free.
package platform

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/xyproto/env/v2"
)

// Family is the operating system family of the build target.
type Family int

const (
	FamilyUnknown Family = iota
	FamilyLinux
	FamilyDarwin
	FamilyBSD
	FamilyWindows
)

func (f Family) String() string {
	switch f {
	case FamilyLinux:
		return "linux"
	case FamilyDarwin:
		return "darwin"
	case FamilyBSD:
		return "bsd"
	case FamilyWindows:
		return "windows"
	default:
		return "unknown"
	}
}

// ParseFamily maps a GOOS-style name to its family. Unrecognized names map
// to FamilyUnknown rather than failing; an unknown host still compiles, it
// just gets the default output layout.
func ParseFamily(name string) Family {
	switch strings.ToLower(name) {
	case "linux":
		return FamilyLinux
	case "darwin":
		return FamilyDarwin
	case "freebsd", "openbsd", "netbsd", "dragonfly":
		return FamilyBSD
	case "windows":
		return FamilyWindows
	default:
		return FamilyUnknown
	}
}

// Descriptor describes the target a run compiles for. It is computed once,
// never mutated afterwards, and safe to share across units.
type Descriptor struct {
	Family     Family
	Arch       string
	ThreadSafe bool
}

// Flavor names the runtime variant the generated sources link against,
// following the zts/nts convention of the runtime's own build system.
func (d Descriptor) Flavor() string {
	if d.ThreadSafe {
		return "zts"
	}
	return "nts"
}

// OutputDir returns the generated-source directory for this target under
// buildDir. Each family and runtime flavor keeps its own tree so sources
// generated for one target never mix with another's.
func (d Descriptor) OutputDir(buildDir string) string {
	return filepath.Join(buildDir, fmt.Sprintf("build-%s-%s", d.Family, d.Flavor()))
}

var (
	detectOnce sync.Once
	detected   Descriptor
)

// Detect returns the process-wide descriptor, probing on first use.
func Detect() Descriptor {
	detectOnce.Do(func() {
		detected = Probe()
	})
	return detected
}

// Probe computes a fresh descriptor from the environment. ZETA_TARGET_OS and
// ZETA_TARGET_ARCH override the host for cross builds; ZETA_THREAD_SAFE
// forces the runtime flavor. Without an override, the bundled windows
// runtime is the only threaded one.
func Probe() Descriptor {
	family := ParseFamily(env.Str("ZETA_TARGET_OS", runtime.GOOS))
	arch := env.Str("ZETA_TARGET_ARCH", runtime.GOARCH)
	threadSafe := family == FamilyWindows
	if env.Has("ZETA_THREAD_SAFE") {
		threadSafe = env.Bool("ZETA_THREAD_SAFE")
	}
	return Descriptor{Family: family, Arch: arch, ThreadSafe: threadSafe}
}
