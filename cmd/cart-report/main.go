package main

import (
	"fmt"
	"os"

	"github.com/gostorefront/cart-backend/internal/cli"
)

func main() {
	flags := cli.ParseReportFlags()

	if err := cli.RunReport(flags); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
