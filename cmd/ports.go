/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/allbin/go-alamode/serial"
)

// portsCmd represents the ports command
var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List serial ports a target may be attached to",
	Long: `List the serial devices a bootloader can sit behind:
- Raspberry Pi UARTs (ttyAMA*, ttyS*, serial* aliases)
- USB serial adapters (ttyUSB*)
- USB CDC/ACM devices (ttyACM*)`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ports, err := serial.ListPorts("")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing ports: %v\n", err)
			os.Exit(1)
		}

		if len(ports) == 0 {
			fmt.Println("No serial ports found")
			return
		}

		tableFormat, _ := cmd.Flags().GetBool("table")
		if tableFormat {
			renderTable(ports)
			return
		}
		for _, port := range ports {
			fmt.Println(port)
		}
	},
}

func init() {
	rootCmd.AddCommand(portsCmd)

	portsCmd.Flags().BoolP("table", "t", false, "Display output in a styled table format")
}

// renderTable renders the port list in a styled static table format
func renderTable(ports []string) {
	fmt.Printf("Found %d serial port(s):\n\n", len(ports))

	portWidth := 15
	descWidth := 30

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("240"))

	cellStyle := lipgloss.NewStyle().
		PaddingRight(2)

	fmt.Println(headerStyle.Render(fmt.Sprintf("%-*s %-*s", portWidth, "Port", descWidth, "Description")))

	for _, port := range ports {
		name := filepath.Base(port)
		if target, err := filepath.EvalSymlinks(port); err == nil && target != port {
			name += " -> " + filepath.Base(target)
		}
		row := fmt.Sprintf("%-*s %-*s", portWidth, name, descWidth, serial.Describe(port))
		fmt.Println(cellStyle.Render(row))
	}
}
