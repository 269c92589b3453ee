package main

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
)

const (
	exitPass  = 0
	exitFail  = 1
	exitUsage = 2
)

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stderr io.Writer) int {
	switch {
	case isSubCommand(args, "build"):
		return buildMain(args[1:], stderr)
	case isSubCommand(args, "ship"):
		return shipMain(args[1:], stderr)
	case isSubCommand(args, "version"):
		return versionMain()
	default:
		return verifyMain(ctx, args, stderr)
	}
}

func isSubCommand(args []string, name string) bool {
	return len(args) > 0 && args[0] == name
}

func usageExitCode(err error) int {
	if errors.Is(err, pflag.ErrHelp) {
		return exitPass
	}
	log.Println("[ERROR]", err)
	return exitUsage
}

func versionMain() int {
	log.Printf("sourcecheck [%s]\n", ldflagsSoftwareVersion)
	return exitPass
}

var ldflagsSoftwareVersion = "debug"
