package serial

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// DefaultDevice is the Raspberry Pi primary UART the Alamode header is wired to
const DefaultDevice = "/dev/ttyAMA0"

// Serial device name patterns a bootloader can sit behind
var portPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^ttyAMA\d+$`), // ARM PL011 UART
	regexp.MustCompile(`^ttyS\d+$`),   // mini UART / 8250
	regexp.MustCompile(`^ttyUSB\d+$`), // USB serial adapters
	regexp.MustCompile(`^ttyACM\d+$`), // USB CDC/ACM devices
	regexp.MustCompile(`^serial\d+$`), // Raspberry Pi OS aliases
}

// ListPorts returns the serial ports found in dir, sorted by path.
// Pass "" to scan /dev.
func ListPorts(dir string) ([]string, error) {
	if dir == "" {
		dir = "/dev"
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var ports []string
	for _, entry := range entries {
		if !matchesPort(entry.Name()) {
			continue
		}

		fullPath := filepath.Join(dir, entry.Name())
		if isCharacterDevice(fullPath) {
			ports = append(ports, fullPath)
		}
	}

	sort.Strings(ports)
	return ports, nil
}

func matchesPort(name string) bool {
	for _, pattern := range portPatterns {
		if pattern.MatchString(name) {
			return true
		}
	}
	return false
}

// isCharacterDevice checks if the given path is a character device.
// Symlinks such as /dev/serial0 are followed.
func isCharacterDevice(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// Describe returns a human-readable description of a serial device name
func Describe(name string) string {
	name = filepath.Base(name)
	switch {
	case strings.HasPrefix(name, "serial"):
		return "Raspberry Pi UART alias"
	case strings.HasPrefix(name, "ttyAMA"):
		return "ARM PL011 UART"
	case strings.HasPrefix(name, "ttyUSB"):
		return "USB Serial Port"
	case strings.HasPrefix(name, "ttyACM"):
		return "USB CDC/ACM Device"
	case strings.HasPrefix(name, "ttyS"):
		return "Mini UART"
	default:
		return "Serial Port"
	}
}
