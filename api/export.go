package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"caisse/models"
	"caisse/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 导出处理器
type ExportHandler struct {
	exporter *service.Exporter
	log      logrus.FieldLogger
	now      func() time.Time
}

// NewExportHandler 创建导出处理器
func NewExportHandler(exporter *service.Exporter, log logrus.FieldLogger) *ExportHandler {
	return &ExportHandler{exporter: exporter, log: log, now: time.Now}
}

// ExportExcel 导出收支记录为 Excel
// @Summary 导出收支记录
// @Description 导出收入与支出两个工作表，start/end 可选
// @Tags 导出
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param start query string false "开始日期 (2024-01-01)"
// @Param end query string false "结束日期 (2024-12-31)"
// @Success 200 {file} file "Excel 文件"
// @Failure 400 {object} Response "日期格式错误"
// @Router /api/export/excel [get]
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	from, to, ok := dateRange(c)
	if !ok {
		return
	}

	data, err := h.exporter.Workbook(c.Request.Context(), from, to)
	if err != nil {
		Fail(c, h.log, err)
		return
	}

	filename := fmt.Sprintf("caisse_%s.xlsx", h.now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Length", strconv.Itoa(len(data)))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// dateRange 解析 start/end 查询参数，空值表示不限
func dateRange(c *gin.Context) (from, to models.Date, ok bool) {
	var err error
	if s := c.Query("start"); s != "" {
		if from, err = models.ParseDate(s); err != nil {
			BadRequest(c, "Date de début invalide, format attendu AAAA-MM-JJ.")
			return from, to, false
		}
	}
	if s := c.Query("end"); s != "" {
		if to, err = models.ParseDate(s); err != nil {
			BadRequest(c, "Date de fin invalide, format attendu AAAA-MM-JJ.")
			return from, to, false
		}
	}
	return from, to, true
}
