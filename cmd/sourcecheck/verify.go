package main

import (
	"context"
	"io"
	"log"

	"github.com/smartystreets/sourcecheck/contracts"
	"github.com/smartystreets/sourcecheck/core"
	"github.com/smartystreets/sourcecheck/shell"
)

func verifyMain(ctx context.Context, args []string, stderr io.Writer) int {
	loader := core.NewConfigLoader(shell.NewDiskFileSystem(""), shell.NewEnvironment(), stderr)
	config, err := loader.LoadVerifyConfig("sourcecheck", args)
	if err != nil {
		return usageExitCode(err)
	}
	return NewVerifyApp(config).Run(ctx)
}

type VerifyApp struct {
	verifier *core.Verifier
}

func NewVerifyApp(config contracts.VerifyConfig) *VerifyApp {
	downloader := shell.NewHTTPDownloader(shell.NewHTTPClient(config.Settings.RequestTimeout))
	verifier := core.NewVerifier(
		config,
		downloader,
		shell.NewDiskFileSystem(""),
		shell.NewDirectoryLock(),
		shell.NewTarGzArchiver(),
	)
	return &VerifyApp{verifier: verifier}
}

func (this *VerifyApp) Run(ctx context.Context) int {
	counters, err := this.verifier.Verify(ctx)
	if err != nil {
		log.Println("[ERROR]", err)
		return exitFail
	}
	if !counters.Passed() {
		return exitFail
	}
	return exitPass
}
