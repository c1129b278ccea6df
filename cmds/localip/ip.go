package main

import (
	"fmt"

	"github.com/spf13/cobra"

	localip "github.com/cgzones/local-ip-address"
)

func init() {
	rootCmd.AddCommand(ipCmd)
	rootCmd.AddCommand(broadcastCmd)
	ipCmd.Flags().BoolVarP(&queryIPv6, "ipv6", "6", false, "Query the IPv6 address instead")
}

var (
	ipCmd = &cobra.Command{
		Use:   "ip",
		Short: "Print the local IP address of this system",
		RunE:  runIP,
	}
	broadcastCmd = &cobra.Command{
		Use:   "broadcast",
		Short: "Print the broadcast address of the local network",
		RunE:  runBroadcast,
	}

	queryIPv6 bool
)

func runIP(cmd *cobra.Command, args []string) error {
	query := localip.LocalIP
	if queryIPv6 {
		query = localip.LocalIPv6
	}

	ip, err := query()
	if err != nil {
		return err
	}
	fmt.Println(ip)
	return nil
}

func runBroadcast(cmd *cobra.Command, args []string) error {
	ip, err := localip.BroadcastIP()
	if err != nil {
		return err
	}
	fmt.Println(ip)
	return nil
}
