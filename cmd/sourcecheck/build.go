package main

import (
	"io"
	"log"

	"github.com/smartystreets/sourcecheck/contracts"
	"github.com/smartystreets/sourcecheck/core"
	"github.com/smartystreets/sourcecheck/shell"
)

func buildMain(args []string, stderr io.Writer) int {
	loader := core.NewConfigLoader(shell.NewDiskFileSystem(""), shell.NewEnvironment(), stderr)
	config, err := loader.LoadBuildConfig("sourcecheck build", args)
	if err != nil {
		return usageExitCode(err)
	}
	return NewBuildApp(config).Run()
}

type BuildApp struct {
	config    contracts.BuildConfig
	generator *core.ManifestGenerator
}

func NewBuildApp(config contracts.BuildConfig) *BuildApp {
	return &BuildApp{
		config:    config,
		generator: core.NewManifestGenerator(shell.NewDiskFileSystem(config.SourceDirectory)),
	}
}

func (this *BuildApp) Run() int {
	if _, err := this.generator.Generate(this.config); err != nil {
		log.Println("[ERROR]", err)
		return exitFail
	}
	return exitPass
}
