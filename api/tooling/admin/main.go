// This program performs administrative tasks for the dispatch service.
package main

import (
	"context"
	"os"

	"github.com/jcpaschoal/wertvoll-dispo/api/tooling/admin/commands"
	"github.com/jcpaschoal/wertvoll-dispo/foundation/logger"
)

func main() {
	log := logger.New(os.Stdout, logger.LevelInfo, "ADMIN", func(context.Context) string { return "" })

	ctx := context.Background()

	if err := commands.NewRootCommand(log).ExecuteContext(ctx); err != nil {
		log.Error(ctx, "admin", "ERROR", err)
		os.Exit(1)
	}
}
