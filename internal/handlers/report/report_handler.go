// internal/handlers/report/report_handler.go
package report

import (
	"fmt"
	"net/http"

	"decora-admin/internal/pkg/response"
	service "decora-admin/internal/service/report"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler struct {
	reportService *service.Service
}

func NewReportHandler(reportService *service.Service) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// Pipeline streams the customer pipeline workbook as an attachment.
func (h *ReportHandler) Pipeline(c *gin.Context) {
	buf, filename, err := h.reportService.PipelineWorkbook(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to build report", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
