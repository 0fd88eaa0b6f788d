// Package main is the entry point for the datafeeds CLI.
package main

import (
	"github.com/etecplus/datafeeds/cmd/datafeeds/cmd"
)

func main() {
	cmd.Execute()
}
