package api

import (
	"github.com/gin-gonic/gin"
)

// MetaHandler 类型字典
type MetaHandler struct {
	offeringTypes []string
	exitTypes     []string
}

// NewMetaHandler 创建字典处理器
func NewMetaHandler(offeringTypes, exitTypes []string) *MetaHandler {
	return &MetaHandler{offeringTypes: offeringTypes, exitTypes: exitTypes}
}

// OfferingTypes 奉献类型
// @Summary 奉献类型
// @Tags 字典
// @Produce json
// @Success 200 {object} Response{data=[]string} "获取成功"
// @Router /api/meta/offering-types [get]
func (h *MetaHandler) OfferingTypes(c *gin.Context) {
	Success(c, h.offeringTypes)
}

// ExitTypes 支出可用类型
// @Summary 支出类型
// @Tags 字典
// @Produce json
// @Success 200 {object} Response{data=[]string} "获取成功"
// @Router /api/meta/exit-types [get]
func (h *MetaHandler) ExitTypes(c *gin.Context) {
	Success(c, h.exitTypes)
}
