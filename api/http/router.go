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

package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mendersoftware/go-lib-micro/accesslog"
	"github.com/mendersoftware/go-lib-micro/requestid"

	"github.com/mendersoftware/printerconnect/app"
)

// API URL used by the HTTP router
const (
	APIURLPrinterConnect = "/api/v1/printerconnect"

	APIURLAlive  = APIURLPrinterConnect + "/alive"
	APIURLHealth = APIURLPrinterConnect + "/health"

	APIURLPrinters          = APIURLPrinterConnect + "/printers"
	APIURLPrintersConnect   = APIURLPrinters + "/connect"
	APIURLPrintersReconnect = APIURLPrinters + "/reconnect"
	APIURLPrinter           = APIURLPrinters + "/:id"
	APIURLPrinterReconnect  = APIURLPrinter + "/reconnect"
	APIURLPrinterCommands   = APIURLPrinter + "/commands"
	APIURLPrinterToggle     = APIURLPrinter + "/print/toggle"
	APIURLPrinterStop       = APIURLPrinter + "/print/stop"
	APIURLPrinterLight      = APIURLPrinter + "/light"
	APIURLPrinterFan        = APIURLPrinter + "/fans/:fan"
)

// Config holds the router options
type Config struct {
	// AcceptedOrigins restricts the origins allowed to use the API; empty
	// allows all of them.
	AcceptedOrigins []string
}

// NewRouter returns the gin router
func NewRouter(
	app app.App,
	config ...Config,
) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	gin.DisableConsoleColor()

	conf := Config{}
	for _, c := range config {
		conf.AcceptedOrigins = append(conf.AcceptedOrigins, c.AcceptedOrigins...)
	}

	router := gin.New()
	router.Use(accesslog.Middleware())
	router.Use(gin.Recovery())
	router.Use(requestid.Middleware())
	router.Use(newCORSMiddleware(conf.AcceptedOrigins))

	status := NewStatusController(app)
	router.GET(APIURLAlive, status.Alive)
	router.GET(APIURLHealth, status.Health)

	printers := NewPrintersController(app, newOriginChecker(conf.AcceptedOrigins))
	router.GET(APIURLPrinters, printers.List)
	router.POST(APIURLPrinters, printers.Register)
	router.GET(APIURLPrintersConnect, printers.Connect)
	router.POST(APIURLPrintersReconnect, printers.ReconnectAll)
	router.GET(APIURLPrinter, printers.Get)
	router.PUT(APIURLPrinter, printers.Update)
	router.DELETE(APIURLPrinter, printers.Unregister)
	router.POST(APIURLPrinterReconnect, printers.Reconnect)
	router.POST(APIURLPrinterCommands, printers.SendCommand)
	router.POST(APIURLPrinterToggle, printers.TogglePrint)
	router.POST(APIURLPrinterStop, printers.StopPrint)
	router.PUT(APIURLPrinterLight, printers.SetLight)
	router.PUT(APIURLPrinterFan, printers.SetFan)

	return router, nil
}
