package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/checkmygrade/internal/app/services"
	"github.com/yigit/checkmygrade/internal/middleware"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportController serves spreadsheet exports
type ReportController struct {
	reportService services.ReportService
}

// NewReportController creates a new ReportController
func NewReportController(reportService services.ReportService) *ReportController {
	return &ReportController{
		reportService: reportService,
	}
}

// ExportWorkbook streams the student ledger and course statistics as xlsx
// @Summary Export workbook
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} file
// @Failure 500 {object} dto.ErrorResponse "Workbook could not be built"
// @Router /reports/export.xlsx [get]
func (c *ReportController) ExportWorkbook(ctx *gin.Context) {
	// Build in memory so a failure can still produce a JSON error.
	var buf bytes.Buffer
	if err := c.reportService.Export(ctx, &buf); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	filename := fmt.Sprintf("checkmygrade-%s.xlsx", time.Now().Format("20060102"))
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
