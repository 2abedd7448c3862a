package main

import (
	"os"

	"github.com/liyuwen/bankctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
