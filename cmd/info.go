/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/allbin/go-alamode/gpio"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Display the host hardware profile",
	Long: `Display the Raspberry Pi model class, revision code and peripheral
addresses resolved from the platform description (/proc/cpuinfo).

No hardware is accessed, so root is not required.

Examples:
  alamode info
  alamode info --cpuinfo ./cpuinfo.txt`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		source := viper.GetString("cpuinfo")
		profile := gpio.NewPlatform(source).HardwareProfile()

		fmt.Printf("Hardware Profile: %s\n\n", source)
		fmt.Printf("  Model:           %s\n", profile.Model)
		if profile.Revision != 0 {
			fmt.Printf("  Revision:        %#x\n", profile.Revision)
		} else {
			fmt.Printf("  Revision:        unknown\n")
		}
		fmt.Printf("  Peripheral base: %#08x\n", profile.PeripheralBase)
		fmt.Printf("  GPIO block:      %#08x (%d bytes)\n", profile.GPIOBase(), gpio.BlockSize)
		fmt.Printf("  Reset line:      GPIO%d\n", viper.GetInt("pin"))
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
