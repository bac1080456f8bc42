package api

import (
	"caisse/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SummaryHandler 按币种汇总
type SummaryHandler struct {
	reporter *service.Reporter
	log      logrus.FieldLogger
}

// NewSummaryHandler 创建汇总处理器
func NewSummaryHandler(reporter *service.Reporter, log logrus.FieldLogger) *SummaryHandler {
	return &SummaryHandler{reporter: reporter, log: log}
}

// Summary 收支汇总
// @Summary 收支汇总
// @Description 按币种统计收入、支出与结余，不做汇率换算
// @Tags 统计
// @Produce json
// @Success 200 {object} Response{data=[]service.CurrencySummary} "获取成功"
// @Failure 500 {object} Response "服务器错误"
// @Router /api/reports/summary [get]
func (h *SummaryHandler) Summary(c *gin.Context) {
	rows, err := h.reporter.Summary(c.Request.Context())
	if err != nil {
		Fail(c, h.log, err)
		return
	}
	Success(c, rows)
}
