package main

import (
	"fmt"
	"net"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	localip "github.com/cgzones/local-ip-address"
)

func init() {
	rootCmd.AddCommand(envCmd)
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Print a report of all address queries",
	Long: "Print a report of all address queries. Queries run independently, " +
		"a failing one does not stop the others.",
	RunE: runEnv,
}

func runEnv(cmd *cobra.Command, args []string) error {
	errs := new(multierror.Error)

	printQuery := func(title string, query func() (net.IP, error)) {
		ip, err := query()
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", title, err))
			return
		}
		fmt.Printf("%-15s %s\n", title+":", ip)
	}
	printQuery("local ipv4", localip.LocalIP)
	printQuery("local ipv6", localip.LocalIPv6)
	printQuery("broadcast", localip.BroadcastIP)

	ipv4, ipv6, err := localip.AssignedAddresses()
	if err != nil {
		errs = multierror.Append(errs, fmt.Errorf("assigned addresses: %w", err))
	} else {
		fmt.Printf("%-15s %v\n", "assigned ipv4:", ipv4)
		fmt.Printf("%-15s %v\n", "assigned ipv6:", ipv6)
	}

	addrs, err := localip.InterfaceAddrs()
	if err != nil {
		errs = multierror.Append(errs, fmt.Errorf("interface addresses: %w", err))
	} else {
		fmt.Println("interfaces:")
		for _, entry := range addrs {
			fmt.Printf("  %s\n", entry)
		}
	}

	return errs.ErrorOrNil()
}
