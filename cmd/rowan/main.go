// Package main provides the rowan CLI, a small note store built on the
// rowan ORM.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mesh-intelligence/rowan/pkg/orm"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if errors.Is(err, orm.ErrNoConnection) || errors.Is(err, orm.ErrDecode) {
			os.Exit(exitSysError)
		}
		os.Exit(exitUserError)
	}
}
