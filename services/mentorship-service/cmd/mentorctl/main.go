// Command mentorctl manages weekly schedule rules and previews bookable slots
// against a local SQLite file or the service's Postgres database.
package main

import (
	"fmt"
	"os"

	"github.com/md-rashed-zaman/mentorconnect/libs/config"
	"github.com/md-rashed-zaman/mentorconnect/libs/runtime"
)

func main() {
	config.LoadDotEnv()

	ctx, stop := runtime.SignalContext()
	defer stop()

	if err := execute(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
