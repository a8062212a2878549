package cmd

import (
	"testing"
	"time"

	"github.com/spf13/viper"

	alamode "github.com/allbin/go-alamode"
)

func TestProgrammerOptionsFromViper(t *testing.T) {
	defer viper.Reset()

	viper.Set("port", "/dev/ttyS0")
	viper.Set("baud", 57600)
	viper.Set("pin", 18)
	viper.Set("reset-low", "200ms")
	viper.Set("reset-high", "10ms")
	viper.Set("cpuinfo", "/tmp/cpuinfo")
	viper.Set("mem-device", "/dev/gpiomem")
	viper.Set("sync-attempts", 3)
	viper.Set("sync-write", true)

	config := alamode.DefaultConfig()
	for _, opt := range programmerOptions() {
		if err := opt(&config); err != nil {
			t.Fatalf("option failed: %v", err)
		}
	}

	if config.Device != "/dev/ttyS0" {
		t.Errorf("Expected Device /dev/ttyS0, got %s", config.Device)
	}
	if config.BaudRate != 57600 {
		t.Errorf("Expected BaudRate 57600, got %d", config.BaudRate)
	}
	if config.ResetPin != 18 {
		t.Errorf("Expected ResetPin 18, got %d", config.ResetPin)
	}
	if config.LowDuration != 200*time.Millisecond || config.HighDuration != 10*time.Millisecond {
		t.Errorf("Expected pulse 200ms/10ms, got %v/%v", config.LowDuration, config.HighDuration)
	}
	if config.MemDevice != "/dev/gpiomem" {
		t.Errorf("Expected MemDevice /dev/gpiomem, got %s", config.MemDevice)
	}
	if config.SyncAttempts != 3 {
		t.Errorf("Expected SyncAttempts 3, got %d", config.SyncAttempts)
	}
	if !config.SyncWrite {
		t.Error("Expected SyncWrite to be enabled")
	}
}

func TestProgrammerOptionsBufferedByDefault(t *testing.T) {
	defer viper.Reset()

	viper.Set("port", "/dev/ttyAMA0")
	viper.Set("baud", 115200)
	viper.Set("pin", 16)
	viper.Set("reset-low", "1s")
	viper.Set("reset-high", "50ms")
	viper.Set("sync-attempts", 10)

	config := alamode.DefaultConfig()
	for _, opt := range programmerOptions() {
		if err := opt(&config); err != nil {
			t.Fatalf("option failed: %v", err)
		}
	}
	if config.SyncWrite {
		t.Error("Expected SyncWrite to be disabled by default")
	}
}
