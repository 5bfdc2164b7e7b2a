// Command staconn drives a station connection against a simulated Wi-Fi
// stack.
//
// Usage:
//
//	staconn [command] [flags]
//
// Commands:
//
//	connect        Connect, print the acquired address, then disconnect
//	shell          Interactive session with fault injection
//	config check   Validate a configuration file
//	config default Print the default configuration
//
// Examples:
//
//	# Connect and print the lease
//	staconn connect --ssid home --passphrase "correct horse"
//
//	# Fail the first three associations, then hold the link for 10s
//	staconn connect -c station.yaml --fail 3 --hold 10s
//
//	# Interactive session with an mDNS announcement
//	staconn shell -c station.yaml
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
