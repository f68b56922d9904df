// Command demo wires the lending catalog end to end and walks through the
// borrow/return scenario with the seeded reference data. With the default
// configuration it runs against the in-memory engine; set
// STORE_ENGINE=postgres and POSTGRES_DSN to run against a database.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/libercore/lending-catalog-go/shell/config"
)

func main() {
	demoConfig, err := config.LoadDemo()
	if err != nil {
		slog.Error("loading demo config failed", "error", err.Error())
		os.Exit(1)
	}

	if err := run(context.Background(), demoConfig); err != nil {
		slog.Error("demo run failed", "error", err.Error())
		os.Exit(1)
	}
}
