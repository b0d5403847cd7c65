package main

import (
	"github.com/henderiw/freshness/cmd/freshness/cmd"
)

func main() {
	cmd.Execute()
}
