/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/allbin/go-alamode/stk500"
)

// signatureCmd represents the signature command
var signatureCmd = &cobra.Command{
	Use:   "signature",
	Short: "Reset the target and read its device signature",
	Long: `Open the serial port, reset the target, synchronize with its bootloader
and read the 3-byte device signature.

Examples:
  sudo alamode signature
  sudo alamode signature --port /dev/ttyS0 --baud 57600`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		prog := newProgrammer()
		defer prog.Close()

		if err := prog.Open(); err != nil {
			fmt.Fprintf(os.Stderr, "Error opening %s: %v\n", viper.GetString("port"), err)
			if errors.Is(err, stk500.ErrOutOfSync) {
				fmt.Fprintln(os.Stderr, "The bootloader did not answer in sync; check baud rate and reset wiring")
			}
			os.Exit(1)
		}

		mem := stk500.NewMemory("signature", stk500.SignatureSize)
		if _, err := prog.ReadSignature(mem); err != nil {
			fmt.Fprintf(os.Stderr, "Error reading signature: %v\n", err)
			os.Exit(1)
		}

		var sig stk500.Signature
		copy(sig[:], mem.Buf)

		labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
		valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true)

		fmt.Printf("%s %s\n", labelStyle.Render("Signature:"), valueStyle.Render(sig.String()))
		if name, ok := stk500.LookupPart(sig); ok {
			fmt.Printf("%s %s\n", labelStyle.Render("Part:     "), valueStyle.Render(name))
		} else {
			fmt.Printf("%s %s\n", labelStyle.Render("Part:     "), "unknown")
		}
	},
}

func init() {
	rootCmd.AddCommand(signatureCmd)
}
