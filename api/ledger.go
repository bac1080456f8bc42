package api

import (
	"context"

	"caisse/middleware"
	"caisse/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// LedgerService 收入或支出记录的存储操作
type LedgerService[T any] interface {
	Create(ctx context.Context, in service.LedgerInput) (*T, error)
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id uint) (*T, error)
	Update(ctx context.Context, id uint, patch service.LedgerPatch) (*T, error)
	Delete(ctx context.Context, id uint) error
}

// LedgerHandler 收入 /api/entries 与支出 /api/exits 共用的处理器
type LedgerHandler[T any] struct {
	ledger LedgerService[T]
	log    logrus.FieldLogger
}

// NewLedgerHandler 创建记录处理器
func NewLedgerHandler[T any](ledger LedgerService[T], log logrus.FieldLogger) *LedgerHandler[T] {
	return &LedgerHandler[T]{ledger: ledger, log: log}
}

// List 记录列表
// @Summary 记录列表
// @Description 按日期倒序、同日按 id 倒序返回全部记录
// @Tags 收支
// @Produce json
// @Success 200 {object} Response{data=[]models.Entry} "获取成功"
// @Failure 500 {object} Response "服务器错误"
// @Router /api/entries [get]
// @Router /api/exits [get]
func (h *LedgerHandler[T]) List(c *gin.Context) {
	records, err := h.ledger.List(c.Request.Context())
	if err != nil {
		Fail(c, h.log, err)
		return
	}
	Success(c, records)
}

// Get 记录详情
// @Summary 记录详情
// @Tags 收支
// @Produce json
// @Param id path int true "记录 ID"
// @Success 200 {object} Response{data=models.Entry} "获取成功"
// @Failure 400 {object} Response "ID 非法"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/entries/{id} [get]
// @Router /api/exits/{id} [get]
func (h *LedgerHandler[T]) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	record, err := h.ledger.Get(c.Request.Context(), id)
	if err != nil {
		Fail(c, h.log, err)
		return
	}
	Success(c, record)
}

// Create 新建记录
// @Summary 新建记录
// @Description user_id 缺省时使用当前登录用户
// @Tags 收支
// @Accept json
// @Produce json
// @Param request body service.LedgerInput true "记录"
// @Success 201 {object} Response{data=models.Entry} "创建成功"
// @Failure 400 {object} Response "参数错误"
// @Failure 409 {object} Response "编号重复"
// @Router /api/entries [post]
// @Router /api/exits [post]
func (h *LedgerHandler[T]) Create(c *gin.Context) {
	var in service.LedgerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		invalidBody(c, err)
		return
	}
	if in.UserID == nil {
		if uid := middleware.GetCurrentUserID(c); uid != 0 {
			in.UserID = &uid
		}
	}

	record, err := h.ledger.Create(c.Request.Context(), in)
	if err != nil {
		Fail(c, h.log, err)
		return
	}
	Created(c, record)
}

// Update 修改记录
// @Summary 修改记录
// @Description 可修改日期、类型、金额、币种、见证人、备注；编号与归属用户不可修改
// @Tags 收支
// @Accept json
// @Produce json
// @Param id path int true "记录 ID"
// @Param request body service.LedgerPatch true "修改内容"
// @Success 200 {object} Response{data=models.Entry} "修改成功"
// @Failure 400 {object} Response "参数错误"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/entries/{id} [put]
// @Router /api/exits/{id} [put]
func (h *LedgerHandler[T]) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var patch service.LedgerPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		invalidBody(c, err)
		return
	}

	record, err := h.ledger.Update(c.Request.Context(), id, patch)
	if err != nil {
		Fail(c, h.log, err)
		return
	}
	Success(c, record)
}

// Delete 删除记录
// @Summary 删除记录
// @Tags 收支
// @Param id path int true "记录 ID"
// @Success 204 "删除成功"
// @Failure 400 {object} Response "ID 非法"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/entries/{id} [delete]
// @Router /api/exits/{id} [delete]
func (h *LedgerHandler[T]) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.ledger.Delete(c.Request.Context(), id); err != nil {
		Fail(c, h.log, err)
		return
	}
	NoContent(c)
}
