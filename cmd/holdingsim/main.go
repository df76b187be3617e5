package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"holding-sim/logger"
)

func main() {
	lg := logger.New()
	defer lg.Sync()
	zap.ReplaceGlobals(lg.Desugar())

	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, errInvalidInput) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		lg.Sync()
		os.Exit(exitCode(err))
	}
}
