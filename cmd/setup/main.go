// Command setup creates or replaces the site's admin and teacher accounts.
//
//	setup [-u username] [-d dsn]   provision accounts (passwords from env or prompt)
//	setup -gen-secret              print a new token signing secret
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/robotika/internal/logging"
	"github.com/dmitrijs2005/robotika/internal/server/setup"
)

func main() {
	l := logging.NewJSON(os.Stderr, "info")

	if err := setup.Command(context.Background(), os.Args[1:], os.LookupEnv, os.Stdout, l); err != nil {
		fmt.Fprintf(os.Stderr, "setup: %v\n", err)
		os.Exit(1)
	}
}
