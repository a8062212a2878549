/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	alamode "github.com/allbin/go-alamode"
	"github.com/allbin/go-alamode/gpio"
	"github.com/allbin/go-alamode/serial"
	"github.com/allbin/go-alamode/stk500"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "alamode",
	Short: "Reset and identify an AVR target on the Raspberry Pi Alamode header",
	Long: `alamode controls an AVR microcontroller attached to a Raspberry Pi UART.

The target is reset by pulsing a GPIO line through the BCM peripheral
registers (/dev/mem, root required) and identified by reading its signature
over the STK500v1 bootloader protocol.

Settings are read from flags, ALAMODE_* environment variables and
$HOME/.alamode.yaml, in that order of precedence.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// glog refuses to log before the go flag set reports parsed
		_ = flag.CommandLine.Parse(nil)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.alamode.yaml)")
	rootCmd.PersistentFlags().StringP("port", "p", serial.DefaultDevice, "Serial device the target is attached to")
	rootCmd.PersistentFlags().IntP("baud", "b", 115200, "Bootloader baud rate")
	rootCmd.PersistentFlags().Int("pin", gpio.DefaultResetPin, "BCM GPIO line wired to the target's reset")
	rootCmd.PersistentFlags().Duration("reset-low", gpio.DefaultLowDuration, "How long reset is held low")
	rootCmd.PersistentFlags().Duration("reset-high", gpio.DefaultHighDuration, "Settle time after reset is released")
	rootCmd.PersistentFlags().String("cpuinfo", gpio.DefaultCPUInfo, "Platform description source")
	rootCmd.PersistentFlags().String("mem-device", gpio.DefaultMemDevice, "Physical memory device")
	rootCmd.PersistentFlags().Int("sync-attempts", stk500.DefaultSyncAttempts, "Bootloader sync handshake attempts")
	rootCmd.PersistentFlags().Bool("sync-write", false, "Open the serial device with O_SYNC")

	for _, key := range []string{"port", "baud", "pin", "reset-low", "reset-high", "cpuinfo", "mem-device", "sync-attempts", "sync-write"} {
		cobra.CheckErr(viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(key)))
	}

	// glog flags (-v, -logtostderr, ...)
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".alamode")
	}

	viper.SetEnvPrefix("alamode")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// programmerOptions builds Programmer options from the merged configuration
func programmerOptions() []alamode.Option {
	opts := []alamode.Option{
		alamode.WithDevice(viper.GetString("port")),
		alamode.WithBaudRate(viper.GetInt("baud")),
		alamode.WithResetPin(viper.GetInt("pin")),
		alamode.WithResetPulse(viper.GetDuration("reset-low"), viper.GetDuration("reset-high")),
		alamode.WithCPUInfo(viper.GetString("cpuinfo")),
		alamode.WithMemDevice(viper.GetString("mem-device")),
		alamode.WithSyncAttempts(viper.GetInt("sync-attempts")),
	}
	if viper.GetBool("sync-write") {
		opts = append(opts, alamode.WithSyncWrite())
	}
	return opts
}

// newProgrammer maps the GPIO registers or exits: without /dev/mem access
// no command can do anything useful.
func newProgrammer() *alamode.Programmer {
	prog, err := alamode.New(programmerOptions()...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if os.Geteuid() != 0 {
			fmt.Fprintln(os.Stderr, "GPIO access through /dev/mem requires root")
		}
		os.Exit(1)
	}
	return prog
}
