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

package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/mendersoftware/go-lib-micro/config"
	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	api "github.com/mendersoftware/printerconnect/api/http"
	"github.com/mendersoftware/printerconnect/app"
	"github.com/mendersoftware/printerconnect/client/nats"
	"github.com/mendersoftware/printerconnect/client/printer"
	dconfig "github.com/mendersoftware/printerconnect/config"
	"github.com/mendersoftware/printerconnect/store"
)

const shutdownTimeout = 5 * time.Second

func millis(conf config.Reader, key string) time.Duration {
	return time.Duration(conf.GetInt(key)) * time.Millisecond
}

// InitAndRun initializes the server and runs it
func InitAndRun(conf config.Reader, dataStore store.DataStore) error {
	ctx := context.Background()

	log.Setup(conf.GetBool(dconfig.SettingDebugLog))
	l := log.FromContext(ctx)

	var natsClient nats.Client
	if natsURI := conf.GetString(dconfig.SettingNatsURI); natsURI != "" {
		var err error
		natsClient, err = nats.NewClientWithDefaults(natsURI)
		if err != nil {
			return errors.Wrap(err, "failed to connect to nats")
		}
		defer natsClient.Close()
	}

	printerConnectApp := app.New(
		dataStore,
		printer.NewDialer(millis(conf, dconfig.SettingWriteWait)),
		natsClient,
		app.Config{
			ConnectTimeout: millis(conf, dconfig.SettingConnectTimeout),
			StatusInterval: millis(conf, dconfig.SettingStatusInterval),
		},
	)
	if err := printerConnectApp.Start(ctx); err != nil {
		printerConnectApp.Shutdown(shutdownTimeout)
		return errors.Wrap(err, "failed to load the registered printers")
	}

	var listen = conf.GetString(dconfig.SettingListen)
	router, err := api.NewRouter(printerConnectApp, api.Config{
		AcceptedOrigins: conf.GetStringSlice(dconfig.SettingAcceptedOrigins),
	})
	if err != nil {
		l.Fatal(err)
	}
	srv := &http.Server{
		Addr:    listen,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatalf("listen: %s\n", err)
		}
	}()
	l.Infof("printerconnect listening on %s", listen)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, unix.SIGINT, unix.SIGTERM)
	<-quit

	l.Info("Shutdown Server ...")

	ctxWithTimeout, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctxWithTimeout); err != nil {
		l.Error("Server Shutdown: ", err)
	}
	printerConnectApp.Shutdown(shutdownTimeout)

	return nil
}
