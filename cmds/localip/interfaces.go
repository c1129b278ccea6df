package main

import (
	"fmt"

	"github.com/spf13/cobra"

	localip "github.com/cgzones/local-ip-address"
)

func init() {
	rootCmd.AddCommand(interfacesCmd)
}

var interfacesCmd = &cobra.Command{
	Use:   "interfaces",
	Short: "Print all interface addresses in kernel enumeration order",
	RunE:  runInterfaces,
}

func runInterfaces(cmd *cobra.Command, args []string) error {
	addrs, err := localip.InterfaceAddrs()
	if err != nil {
		return err
	}

	for _, entry := range addrs {
		fmt.Println(entry)
	}
	return nil
}
