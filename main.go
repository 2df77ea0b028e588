// ABOUTME: Entry point for the boxcrm CLI, HTTP intake server and MCP server
// ABOUTME: Hands os.Args to the cobra command tree
package main

import (
	"fmt"
	"os"

	"github.com/harperreed/boxcrm/cli"
)

const version = "0.1.0"

func main() {
	if err := cli.NewRootCommand(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
