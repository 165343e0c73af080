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
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/mendersoftware/go-lib-micro/rest.utils"
	"github.com/pkg/errors"

	"github.com/mendersoftware/printerconnect/app"
	"github.com/mendersoftware/printerconnect/model"
)

// HTTP errors
var (
	ErrInternal = errors.New("internal error")
)

// PrinterRequest is the body of POST /printers and PUT /printers/:id
type PrinterRequest struct {
	Name      string `json:"printerName"`
	IPAddress string `json:"ipAddress"`
}

func (r PrinterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.IPAddress, validation.Required),
	)
}

// CommandRequest is a raw printer command
type CommandRequest struct {
	Cmd  *int        `json:"cmd"`
	Data interface{} `json:"data"`
}

func (r CommandRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Cmd, validation.NotNil, validation.Min(0)),
	)
}

type LightRequest struct {
	On *bool `json:"on"`
}

func (r LightRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.On, validation.NotNil),
	)
}

type FanRequest struct {
	Speed *int `json:"speed"`
}

func (r FanRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Speed,
			validation.NotNil,
			validation.Min(model.FanSpeedOff),
			validation.Max(model.FanSpeedMax),
		),
	)
}

// PrintersController container for end-points
type PrintersController struct {
	app         app.App
	checkOrigin func(r *http.Request) bool
}

// NewPrintersController returns a new PrintersController
func NewPrintersController(
	app app.App,
	checkOrigin func(r *http.Request) bool,
) *PrintersController {
	if checkOrigin == nil {
		checkOrigin = allowAllOrigins
	}
	return &PrintersController{
		app:         app,
		checkOrigin: checkOrigin,
	}
}

// bindBody decodes and validates the JSON body, rendering 400 on failure
func bindBody(c *gin.Context, body validation.Validatable) bool {
	if err := c.ShouldBindJSON(body); err != nil {
		rest.RenderError(c, http.StatusBadRequest,
			errors.Wrap(err, "malformed request body"))
		return false
	}
	if err := body.Validate(); err != nil {
		rest.RenderError(c, http.StatusBadRequest, err)
		return false
	}
	return true
}

// renderAppError maps the manager errors to HTTP status codes
func renderAppError(c *gin.Context, err error) {
	var verr validation.Errors
	switch cause := errors.Cause(err); {
	case errors.As(err, &verr),
		cause == app.ErrInvalidFanSpeed,
		cause == model.ErrUnknownFan:
		rest.RenderError(c, http.StatusBadRequest, err)
	case cause == app.ErrPrinterNotFound:
		rest.RenderError(c, http.StatusNotFound, err)
	case cause == app.ErrDuplicatePrinter,
		cause == app.ErrSendWhileClosed,
		cause == app.ErrActionNotAllowed:
		rest.RenderError(c, http.StatusConflict, err)
	case cause == app.ErrManagerClosed:
		rest.RenderError(c, http.StatusServiceUnavailable, err)
	default:
		log.FromContext(c.Request.Context()).Error(err)
		rest.RenderError(c, http.StatusInternalServerError, ErrInternal)
	}
}

// List responds to GET /printers
func (h PrintersController) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.app.GetPrinters(c.Request.Context()))
}

// Get responds to GET /printers/:id
func (h PrintersController) Get(c *gin.Context) {
	printer, err := h.app.GetPrinter(c.Request.Context(), c.Param("id"))
	if err != nil {
		renderAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, printer)
}

// Register responds to POST /printers
func (h PrintersController) Register(c *gin.Context) {
	var body PrinterRequest
	if !bindBody(c, &body) {
		return
	}
	ctx := c.Request.Context()
	printer, err := h.app.RegisterPrinter(ctx, body.Name, body.IPAddress)
	if err != nil {
		renderAppError(c, err)
		return
	}
	log.FromContext(ctx).Infof("registered printer %s at %s", printer.ID, printer.IPAddress)
	c.Header("Location", APIURLPrinters+"/"+printer.ID)
	c.JSON(http.StatusCreated, printer)
}

// Update responds to PUT /printers/:id
func (h PrintersController) Update(c *gin.Context) {
	var body PrinterRequest
	if !bindBody(c, &body) {
		return
	}
	printer, err := h.app.UpdatePrinter(c.Request.Context(),
		c.Param("id"), body.Name, body.IPAddress)
	if err != nil {
		renderAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, printer)
}

// Unregister responds to DELETE /printers/:id
func (h PrintersController) Unregister(c *gin.Context) {
	if err := h.app.UnregisterPrinter(c.Request.Context(), c.Param("id")); err != nil {
		renderAppError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ReconnectAll responds to POST /printers/reconnect
func (h PrintersController) ReconnectAll(c *gin.Context) {
	if err := h.app.ReconnectAll(c.Request.Context()); err != nil {
		renderAppError(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}

// Reconnect responds to POST /printers/:id/reconnect
func (h PrintersController) Reconnect(c *gin.Context) {
	if err := h.app.Reconnect(c.Request.Context(), c.Param("id")); err != nil {
		renderAppError(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}

// SendCommand responds to POST /printers/:id/commands
func (h PrintersController) SendCommand(c *gin.Context) {
	var body CommandRequest
	if !bindBody(c, &body) {
		return
	}
	err := h.app.SendCommand(c.Request.Context(), c.Param("id"), *body.Cmd, body.Data)
	if err != nil {
		renderAppError(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}

// TogglePrint responds to POST /printers/:id/print/toggle
func (h PrintersController) TogglePrint(c *gin.Context) {
	if err := h.app.TogglePrint(c.Request.Context(), c.Param("id")); err != nil {
		renderAppError(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}

// StopPrint responds to POST /printers/:id/print/stop
func (h PrintersController) StopPrint(c *gin.Context) {
	if err := h.app.StopPrint(c.Request.Context(), c.Param("id")); err != nil {
		renderAppError(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}

// SetLight responds to PUT /printers/:id/light
func (h PrintersController) SetLight(c *gin.Context) {
	var body LightRequest
	if !bindBody(c, &body) {
		return
	}
	if err := h.app.SetLight(c.Request.Context(), c.Param("id"), *body.On); err != nil {
		renderAppError(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}

// SetFan responds to PUT /printers/:id/fans/:fan
func (h PrintersController) SetFan(c *gin.Context) {
	fan, err := model.ParseFan(c.Param("fan"))
	if err != nil {
		rest.RenderError(c, http.StatusBadRequest, err)
		return
	}
	var body FanRequest
	if !bindBody(c, &body) {
		return
	}
	err = h.app.SetFan(c.Request.Context(), c.Param("id"), fan, *body.Speed)
	if err != nil {
		renderAppError(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}
