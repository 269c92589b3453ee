package main

import (
	"io"
	"log"
	"net/http"
	"time"

	"github.com/smartystreets/sourcecheck/contracts"
	"github.com/smartystreets/sourcecheck/core"
	"github.com/smartystreets/sourcecheck/shell"
)

func shipMain(args []string, stderr io.Writer) int {
	loader := core.NewConfigLoader(shell.NewDiskFileSystem(""), shell.NewEnvironment(), stderr)
	config, err := loader.LoadShipConfig("sourcecheck ship", args)
	if err != nil {
		return usageExitCode(err)
	}
	return NewShipApp(config).Run()
}

type ShipApp struct {
	config  contracts.ShipConfig
	shipper *core.ManifestShipper
}

func NewShipApp(config contracts.ShipConfig) *ShipApp {
	client := shell.NewGoogleCloudStorageClient(shell.NewHTTPClient(time.Minute), config.GoogleCredentials, http.StatusOK)
	uploader := core.NewRetryClient(client, config.MaxRetry)
	return &ShipApp{
		config:  config,
		shipper: core.NewManifestShipper(shell.NewDiskFileSystem(""), uploader),
	}
}

func (this *ShipApp) Run() int {
	if err := this.shipper.Ship(this.config); err != nil {
		log.Println("[ERROR]", err)
		return exitFail
	}
	return exitPass
}
