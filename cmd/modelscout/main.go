package main

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/doeshing/modelscout/internal/domain"
	"github.com/doeshing/modelscout/internal/infrastructure/cli"
	"github.com/doeshing/modelscout/internal/infrastructure/cli/helpers"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx := context.Background()
	opts := cli.Options{Verbose: isVerbose()}

	root, container, err := cli.NewRootCmd(ctx, opts)
	if err != nil {
		helpers.ErrorColor.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := container.Close(closeCtx); err != nil {
			container.Logger.Warn("shutdown", map[string]interface{}{"error": err.Error()})
		}
	}()

	if err := root.ExecuteContext(ctx); err != nil {
		// the login hint has already been printed
		if !errors.Is(err, domain.ErrLoginRequired) {
			helpers.ErrorColor.Fprintln(os.Stderr, "error:", err)
		}
		return 1
	}
	return 0
}

func isVerbose() bool {
	v := os.Getenv(domain.DebugEnvVar)
	return strings.EqualFold(v, "1") || strings.EqualFold(v, "true")
}
