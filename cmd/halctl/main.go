// halctl inspects the supported chip families and runs the drivers against a
// simulated register space.
//
//	halctl families
//	halctl chip nrf52832 stm32f407vgt6
//	halctl resolve --flags "-tags=nrf52,softdevice"
//	halctl map stm32f7
//	halctl sim-uart --board microbit --text "hello" --hex uart.hex
//	halctl sim-pwr stm32l1 --scale 3
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "halctl",
	Short:        "Inspect chip families and exercise drivers on simulated registers",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(familiesCmd, chipCmd, resolveCmd, mapCmd, simUARTCmd, simPWRCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
