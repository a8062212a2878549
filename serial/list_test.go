package serial

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestListPorts(t *testing.T) {
	ports, err := ListPorts("")
	if err != nil {
		t.Errorf("ListPorts failed: %v", err)
	}

	for _, port := range ports {
		if !strings.HasPrefix(port, "/dev/") {
			t.Errorf("Port path doesn't start with /dev/: %s", port)
		}
		if !isCharacterDevice(port) {
			t.Errorf("Port is not a character device: %s", port)
		}
	}

	for i := 1; i < len(ports); i++ {
		if ports[i-1] > ports[i] {
			t.Errorf("Ports are not sorted: %s > %s", ports[i-1], ports[i])
		}
	}
}

func TestListPortsSkipsRegularFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"ttyAMA0", "ttyUSB0", "tty1"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o600); err != nil {
			t.Fatal(err)
		}
	}
	// character device reachable under a matching name
	if err := os.Symlink("/dev/null", filepath.Join(dir, "serial0")); err != nil {
		t.Fatal(err)
	}

	ports, err := ListPorts(dir)
	if err != nil {
		t.Fatalf("ListPorts failed: %v", err)
	}
	if len(ports) != 1 || ports[0] != filepath.Join(dir, "serial0") {
		t.Errorf("Expected only serial0, got %v", ports)
	}
}

func TestListPortsMissingDir(t *testing.T) {
	if _, err := ListPorts("/nonexistent"); err == nil {
		t.Error("Expected error for missing directory")
	}
}

func TestMatchesPort(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"ttyAMA0", true},
		{"ttyS0", true},
		{"ttyUSB12", true},
		{"ttyACM0", true},
		{"serial0", true},
		{"tty1", false},
		{"console", false},
		{"ptmx", false},
	}

	for _, test := range tests {
		if result := matchesPort(test.name); result != test.expected {
			t.Errorf("matchesPort(%s) = %v, expected %v", test.name, result, test.expected)
		}
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"/dev/serial0", "Raspberry Pi UART alias"},
		{"ttyAMA0", "ARM PL011 UART"},
		{"ttyUSB0", "USB Serial Port"},
		{"ttyACM0", "USB CDC/ACM Device"},
		{"ttyS0", "Mini UART"},
		{"unknown", "Serial Port"},
	}

	for _, test := range tests {
		if result := Describe(test.name); result != test.expected {
			t.Errorf("Describe(%s) = %s, expected %s", test.name, result, test.expected)
		}
	}
}
