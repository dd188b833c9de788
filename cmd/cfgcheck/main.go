// Command cfgcheck checks the attributes of an HCL file against expected
// types and reports every problem it finds.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/KimNorgaard/go-cfgconv/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := cli.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	if err == nil {
		return
	}
	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Message != "" {
			fmt.Fprintln(os.Stderr, exitErr.Message)
		}
		stop()
		os.Exit(exitErr.Code)
	}
	fmt.Fprintln(os.Stderr, err)
	stop()
	os.Exit(1)
}
