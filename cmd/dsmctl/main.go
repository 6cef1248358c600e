// Command dsmctl is the CLI entry point for the dependency-matrix analyzer.
package main

import "github.com/dsmgraph/dsm-analyzer/internal/cmd"

func main() {
	cmd.Execute()
}
