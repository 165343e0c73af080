// Copyright 2026 Northern.tech AS
//
//    Licensed under the Apache License, Version 2.0 (the "License");
//    you may not use this file except in compliance with the License.
//    You may obtain a copy of the License at
//
//        http://www.apache.org/licenses/LICENSE-2.0
//
//    Unless required by applicable law or agreed to in writing, software
//    distributed under the License is distributed on an "AS IS" BASIS,
//    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//    See the License for the specific language governing permissions and
//    limitations under the License.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/mendersoftware/go-lib-micro/config"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	api "github.com/mendersoftware/printerconnect/api/http"
	dconfig "github.com/mendersoftware/printerconnect/config"
	"github.com/mendersoftware/printerconnect/model"
	"github.com/mendersoftware/printerconnect/server"
	"github.com/mendersoftware/printerconnect/store"
	"github.com/mendersoftware/printerconnect/store/file"
	"github.com/mendersoftware/printerconnect/store/mongo"
)

var Version string = "unknown"

func main() {
	doMain(os.Args)
}

func doMain(args []string) {
	var configPath string

	app := &cli.App{
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name: "config",
				Usage: "Configuration `FILE`. " +
					"Supports JSON, TOML, YAML and HCL " +
					"formatted configs.",
				Value:       "config.yaml",
				Destination: &configPath,
			},
		},
		Commands: []cli.Command{
			{
				Name:   "server",
				Usage:  "Run the HTTP API server",
				Action: cmdServer,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "automigrate",
						Usage: "Run database migrations before starting.",
					},
				},
			},
			{
				Name:   "migrate",
				Usage:  "Run the migrations",
				Action: cmdMigrate,
			},
			{
				Name:   "list-printers",
				Usage:  "List the printers known to a running server",
				Action: cmdListPrinters,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "url",
						Usage: "Base `URL` of the server, defaults to the listen address.",
					},
				},
			},
		},
	}
	app.Usage = "Printer Connect"
	app.Version = Version
	app.Action = cmdServer

	app.Before = func(args *cli.Context) error {
		err := config.FromConfigFile(configPath, dconfig.Defaults)
		if err != nil {
			return cli.NewExitError(
				fmt.Sprintf("error loading configuration: %s", err),
				1)
		}

		// Enable setting config values by environment variables
		config.Config.SetEnvPrefix("PRINTERCONNECT")
		config.Config.AutomaticEnv()
		config.Config.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

		return nil
	}

	err := app.Run(args)
	if err != nil {
		log.Fatal(err)
	}
}

func setupDataStore(conf config.Reader, automigrate bool) (store.DataStore, error) {
	switch backend := conf.GetString(dconfig.SettingStore); backend {
	case dconfig.StoreFile:
		return file.NewDataStore(conf.GetString(dconfig.SettingStorePath))
	case dconfig.StoreMongo:
		return mongo.SetupDataStore(automigrate)
	default:
		return nil, errors.Errorf("unknown store %q", backend)
	}
}

func cmdServer(args *cli.Context) error {
	dataStore, err := setupDataStore(config.Config, args.Bool("automigrate"))
	if err != nil {
		return err
	}
	defer dataStore.Close()
	return server.InitAndRun(config.Config, dataStore)
}

func cmdMigrate(args *cli.Context) error {
	if config.Config.GetString(dconfig.SettingStore) != dconfig.StoreMongo {
		return nil
	}
	dataStore, err := mongo.SetupDataStore(true)
	if err != nil {
		return err
	}
	return dataStore.Close()
}

func cmdListPrinters(args *cli.Context) error {
	baseURL := args.String("url")
	if baseURL == "" {
		baseURL = "http://" + config.Config.GetString(dconfig.SettingListen)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	printers, err := fetchPrinters(ctx, http.DefaultClient, baseURL)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	return writePrinters(os.Stdout, printers, time.Now())
}

func fetchPrinters(
	ctx context.Context,
	client *http.Client,
	baseURL string,
) ([]model.LivePrinter, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		strings.TrimSuffix(baseURL, "/")+api.APIURLPrinters, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to prepare request")
	}
	rsp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reach printerconnect")
	}
	defer rsp.Body.Close()
	if rsp.StatusCode != http.StatusOK {
		return nil, errors.Errorf(
			"printerconnect responded with unexpected status code: %d",
			rsp.StatusCode,
		)
	}
	var printers []model.LivePrinter
	if err := json.NewDecoder(rsp.Body).Decode(&printers); err != nil {
		return nil, errors.Wrap(err, "failed to decode printer list")
	}
	return printers, nil
}

func writePrinters(w io.Writer, printers []model.LivePrinter, now time.Time) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tADDRESS\tSTATE\tPHASE\tUPDATED\tERROR")
	for _, p := range printers {
		updated := "-"
		if p.LastUpdate != nil {
			updated = model.FormatTimeAgo(*p.LastUpdate, now)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Name, p.IPAddress, p.ConnectionState,
			p.PrintPhase(), updated, p.LastError)
	}
	return tw.Flush()
}
