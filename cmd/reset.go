/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// resetCmd represents the reset command
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Hard-reset the target through its GPIO reset line",
	Long: `Pulse the target's reset line low and then high through the BCM GPIO
registers. The serial port is not touched.

The default pulse (GPIO16, 1s low, 50ms high) discharges the Alamode reset
capacitor. Boards with a different reset circuit may need other timings.

Requirements:
- Root/sudo permissions required for /dev/mem access

Examples:
  sudo alamode reset
  sudo alamode reset --pin 18 --reset-low 200ms`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		prog := newProgrammer()
		defer prog.Close()

		infoStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true)
		successStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("40")).Bold(true)

		fmt.Printf("%s Pulsing GPIO%d low for %v...\n",
			infoStyle.Render("⚡"), viper.GetInt("pin"), viper.GetDuration("reset-low"))

		if err := prog.Reset(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("%s Target reset\n", successStyle.Render("✓"))
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
