// internal/handler/printer_handler.go
package handler

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"print-bridge/internal/escpos"
	"print-bridge/internal/service"
	"print-bridge/internal/utils"
)

// PrinterHandler handles printer discovery and raw print requests
type PrinterHandler struct {
	discovery    *service.PrinterDiscoveryService
	printService *service.PrintService
	logger       *utils.ServiceLogger
}

// NewPrinterHandler creates a new printer handler
func NewPrinterHandler(discovery *service.PrinterDiscoveryService, printService *service.PrintService, logger *zap.Logger) *PrinterHandler {
	return &PrinterHandler{
		discovery:    discovery,
		printService: printService,
		logger:       utils.NewServiceLogger(logger, "printer-handler"),
	}
}

// RegisterRoutes registers printer routes
func (h *PrinterHandler) RegisterRoutes(router *gin.RouterGroup) {
	printers := router.Group("/printers")
	{
		printers.GET("", h.ListPrinters)
		printers.POST("/print", h.PrintRaw)
		printers.POST("/test", h.TestPrint)
		printers.POST("/drawer", h.OpenCashDrawer)
	}
}

// PrintRequest carries a raw payload as base64 or as a byte array
type PrintRequest struct {
	Printer       string `json:"printer" binding:"required" example:"EPSON TM-T20"`
	PayloadBase64 string `json:"payload_base64,omitempty" example:"G0BUZXN0"`
	Payload       []int  `json:"payload,omitempty"`
}

// bytes decodes whichever payload form was supplied
func (r *PrintRequest) bytes() ([]byte, error) {
	switch {
	case r.PayloadBase64 != "" && len(r.Payload) > 0:
		return nil, errors.New("send either payload_base64 or payload, not both")
	case r.PayloadBase64 != "":
		data, err := base64.StdEncoding.DecodeString(r.PayloadBase64)
		if err != nil {
			return nil, fmt.Errorf("payload_base64: %w", err)
		}
		return data, nil
	case len(r.Payload) > 0:
		data := make([]byte, len(r.Payload))
		for i, v := range r.Payload {
			if v < 0 || v > 255 {
				return nil, fmt.Errorf("payload[%d]: %d is not a byte", i, v)
			}
			data[i] = byte(v)
		}
		return data, nil
	default:
		return nil, errors.New("payload is required")
	}
}

// TestPrintRequest names the printer for a self-test
type TestPrintRequest struct {
	Printer string `json:"printer" binding:"required" example:"EPSON TM-T20"`
}

// DrawerRequest names the printer the cash drawer is wired to
type DrawerRequest struct {
	Printer string `json:"printer" binding:"required" example:"EPSON TM-T20"`
	Pin     int    `json:"pin,omitempty" example:"2"`
}

// PrinterListResponse is the discovery result
type PrinterListResponse struct {
	Printers []string `json:"printers"`
	Count    int      `json:"count"`
	Backend  string   `json:"backend"`
}

// PrintResult is returned by every submission endpoint
type PrintResult struct {
	Printer string `json:"printer"`
	Message string `json:"message"`
	Bytes   int    `json:"bytes,omitempty"`
}

// ListPrinters lists installed printers
// @Summary List printers
// @Description Enumerate printers installed on this machine through the OS backend
// @Tags Printers
// @Produce json
// @Success 200 {object} utils.APIResponse{data=PrinterListResponse} "Printers retrieved"
// @Failure 501 {object} utils.APIResponse "Platform not supported"
// @Failure 503 {object} utils.APIResponse "Printer query failed"
// @Router /printers [get]
func (h *PrinterHandler) ListPrinters(c *gin.Context) {
	printers, err := h.discovery.ListPrinters(c.Request.Context())
	if err != nil {
		utils.PrinterErrorResponse(c, "Failed to list printers", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Printers retrieved successfully", &PrinterListResponse{
		Printers: printers,
		Count:    len(printers),
		Backend:  h.discovery.BackendName(),
	})
}

// PrintRaw sends a raw payload to a printer
// @Summary Print raw payload
// @Description Send pre-formatted bytes (ESC/POS) to a printer without driver rendering
// @Tags Printers
// @Accept json
// @Produce json
// @Param request body PrintRequest true "Print request"
// @Success 200 {object} utils.APIResponse{data=PrintResult} "Receipt printed"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 404 {object} utils.APIResponse "Printer could not be opened"
// @Failure 501 {object} utils.APIResponse "Platform not supported"
// @Failure 502 {object} utils.APIResponse "Printer rejected the job"
// @Router /printers/print [post]
func (h *PrinterHandler) PrintRaw(c *gin.Context) {
	var req PrintRequest
	if !bindRequest(c, &req) {
		return
	}
	payload, err := req.bytes()
	if err != nil {
		utils.ValidationErrorResponse(c, map[string]string{"payload": err.Error()})
		return
	}

	message, err := h.printService.SubmitRaw(c.Request.Context(), req.Printer, payload)
	if err != nil {
		h.respondPrintError(c, "Print failed", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, message, &PrintResult{
		Printer: req.Printer,
		Message: message,
		Bytes:   len(payload),
	})
}

// TestPrint prints the self-test receipt
// @Summary Print test receipt
// @Description Print a fixed test receipt to check that a printer is reachable
// @Tags Printers
// @Accept json
// @Produce json
// @Param request body TestPrintRequest true "Test print request"
// @Success 200 {object} utils.APIResponse{data=PrintResult} "Test print sent"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 501 {object} utils.APIResponse "Platform not supported"
// @Router /printers/test [post]
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	var req TestPrintRequest
	if !bindRequest(c, &req) {
		return
	}

	message, err := h.printService.RunSelfTest(c.Request.Context(), req.Printer)
	if err != nil {
		h.respondPrintError(c, "Test print failed", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, message, &PrintResult{
		Printer: req.Printer,
		Message: message,
	})
}

// OpenCashDrawer kicks the cash drawer attached to a printer
// @Summary Open cash drawer
// @Description Pulse the drawer kick connector of a receipt printer (pin 2 by default)
// @Tags Printers
// @Accept json
// @Produce json
// @Param request body DrawerRequest true "Drawer request"
// @Success 200 {object} utils.APIResponse{data=PrintResult} "Cash drawer opened"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 501 {object} utils.APIResponse "Platform not supported"
// @Router /printers/drawer [post]
func (h *PrinterHandler) OpenCashDrawer(c *gin.Context) {
	var req DrawerRequest
	if !bindRequest(c, &req) {
		return
	}
	pin := escpos.DrawerPin(req.Pin)
	if req.Pin == 0 {
		pin = escpos.DrawerPin2
	}
	if pin != escpos.DrawerPin2 && pin != escpos.DrawerPin5 {
		utils.ValidationErrorResponse(c, map[string]string{"pin": fmt.Sprintf("must be 2 or 5, got %d", req.Pin)})
		return
	}

	message, err := h.printService.OpenCashDrawer(c.Request.Context(), req.Printer, pin)
	if err != nil {
		h.respondPrintError(c, "Failed to open cash drawer", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, message, &PrintResult{
		Printer: req.Printer,
		Message: message,
	})
}

// bindRequest decodes the JSON body into req and answers 400 on failure.
// Missing or invalid fields are reported per field.
func bindRequest(c *gin.Context, req interface{}) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		fields := make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields[strings.ToLower(fe.Field())] = fe.Tag()
		}
		utils.ValidationErrorResponse(c, fields)
		return false
	}

	utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
	return false
}

func (h *PrinterHandler) respondPrintError(c *gin.Context, message string, err error) {
	if errors.Is(err, service.ErrPrinterRequired) {
		utils.ErrorResponse(c, http.StatusBadRequest, message, err)
		return
	}
	utils.PrinterErrorResponse(c, message, err)
}
