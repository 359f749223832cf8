package main

import (
	"os"

	"github.com/Leshuannn/customer-purchase-dashboard/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
