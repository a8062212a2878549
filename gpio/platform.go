package gpio

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/golang/glog"
)

// DefaultCPUInfo is the platform description source on Linux hosts.
const DefaultCPUInfo = "/proc/cpuinfo"

// Physical peripheral base addresses
const (
	LegacyPeripheralBase uint32 = 0x20000000 // BCM2835 (ARMv6)
	PeripheralBaseV2     uint32 = 0x3F000000 // BCM2836/7 (ARMv7)
)

// ModelClass identifies the host CPU architecture family
type ModelClass int

const (
	ModelUnknown ModelClass = iota
	ModelClassA             // ARMv6, legacy peripheral base
	ModelClassB             // ARMv7, later peripheral base
)

func (m ModelClass) String() string {
	switch m {
	case ModelClassA:
		return "ARMv6"
	case ModelClassB:
		return "ARMv7"
	default:
		return "unknown"
	}
}

// revisionDigits is the number of trailing hex digits in the revision line
func (m ModelClass) revisionDigits() int {
	if m == ModelClassB {
		return 6
	}
	return 4
}

// HardwareProfile describes the host board
type HardwareProfile struct {
	Revision       uint32
	PeripheralBase uint32
	Model          ModelClass
}

// GPIOBase returns the physical address of the GPIO register block.
func (p HardwareProfile) GPIOBase() uint32 {
	return p.PeripheralBase + GPIOOffset
}

// Platform resolves and caches the host HardwareProfile. It replaces
// process-wide state: one Platform is owned by whoever drives the board.
type Platform struct {
	path   string
	open   func(string) (io.ReadCloser, error)
	cached *HardwareProfile
}

// NewPlatform returns a Platform reading the description source at path.
func NewPlatform(path string) *Platform {
	return &Platform{
		path: path,
		open: func(name string) (io.ReadCloser, error) { return os.Open(name) },
	}
}

// HardwareProfile returns the host profile. Once a non-zero revision has
// been parsed the result is cached and the source is not read again.
// A missing or unrecognised source yields the legacy base with revision 0.
func (p *Platform) HardwareProfile() HardwareProfile {
	if p.cached != nil {
		return *p.cached
	}

	profile := HardwareProfile{PeripheralBase: LegacyPeripheralBase}

	f, err := p.open(p.path)
	if err != nil {
		glog.Warningf("platform description %s unavailable: %v", p.path, err)
		return profile
	}
	defer f.Close()

	profile = parseProfile(f)
	glog.V(1).Infof("hardware profile: model=%s revision=%#x base=%#08x",
		profile.Model, profile.Revision, profile.PeripheralBase)

	if profile.Revision != 0 {
		p.cached = &profile
	}
	return profile
}

func parseProfile(r io.Reader) HardwareProfile {
	profile := HardwareProfile{PeripheralBase: LegacyPeripheralBase}
	br := bufio.NewReader(r)

	for {
		line, err := br.ReadString('\n')
		if line != "" {
			scanLine(&profile, line)
		}
		if err != nil {
			break
		}
	}
	return profile
}

func scanLine(profile *HardwareProfile, line string) {
	if profile.Model == ModelUnknown && hasPrefixFold(line, "model name") {
		switch {
		case strings.Contains(line, "ARMv6"):
			profile.Model = ModelClassA
			profile.PeripheralBase = LegacyPeripheralBase
		case strings.Contains(line, "ARMv7"):
			profile.Model = ModelClassB
			profile.PeripheralBase = PeripheralBaseV2
		}
	}

	if hasPrefixFold(line, "revision") {
		if rev, ok := parseRevision(line, profile.Model.revisionDigits()); ok {
			profile.Revision = rev
		}
	}
}

// parseRevision reads the last digits hex characters of line. The byte
// right after them must be the line terminator, otherwise the revision is
// discarded as 0. ok is false when the line is too short to hold a value.
func parseRevision(line string, digits int) (uint32, bool) {
	if len(line) < digits+1 {
		return 0, false
	}
	tail := line[len(line)-(digits+1):]
	if tail[digits] != '\n' {
		return 0, true
	}
	rev, err := strconv.ParseUint(strings.TrimLeft(tail[:digits], " \t:"), 16, 32)
	if err != nil {
		return 0, true
	}
	return uint32(rev), true
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
