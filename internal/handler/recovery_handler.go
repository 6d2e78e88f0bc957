package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Awaismaz/bait-ul-rizq/internal/logic"
	"github.com/Awaismaz/bait-ul-rizq/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RecoveryHandler struct {
	recoveryLogic *logic.RecoveryLogic
}

func NewRecoveryHandler(db *gorm.DB) *RecoveryHandler {
	return &RecoveryHandler{
		recoveryLogic: logic.NewRecoveryLogic(db),
	}
}

// RecordRecovery 登记一笔项目回款，项目回收总额缓存同事务刷新
func (h *RecoveryHandler) RecordRecovery(c *gin.Context) {
	var req struct {
		ProjectId     int64               `json:"project_id" binding:"required"`
		Amount        decimal.Decimal     `json:"amount" binding:"required"`
		RecoveryDate  *time.Time          `json:"recovery_date"`
		PaymentMethod model.PaymentMethod `json:"payment_method"`
		ReferenceNo   string              `json:"reference_no"`
		Notes         string              `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	recovery := model.Recovery{
		ProjectId:     req.ProjectId,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		ReferenceNo:   req.ReferenceNo,
		Notes:         req.Notes,
	}
	if req.RecoveryDate != nil {
		recovery.RecoveryDate = *req.RecoveryDate
	}

	if err := h.recoveryLogic.RecordRecovery(&recovery); err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "回收登记成功", recovery)
}

// GetRecoveries 获取回收列表
func (h *RecoveryHandler) GetRecoveries(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	recoveries, total, err := h.recoveryLogic.GetRecoveries(actorFrom(c), page, pageSize)
	if err != nil {
		FailFromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recoveries": recoveries,
		"total":      total,
		"page":       page,
		"page_size":  pageSize,
	})
}

// GetProjectRecoveries 获取某项目的回收明细
func (h *RecoveryHandler) GetProjectRecoveries(c *gin.Context) {
	projectId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	recoveries, total, err := h.recoveryLogic.GetProjectRecoveries(projectId, page, pageSize)
	if err != nil {
		FailFromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recoveries": recoveries,
		"total":      total,
		"page":       page,
		"page_size":  pageSize,
	})
}

// UpdateRecovery 更新回收记录
func (h *RecoveryHandler) UpdateRecovery(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的回收记录ID")
		return
	}

	var updateData struct {
		Amount        *decimal.Decimal     `json:"amount"`
		RecoveryDate  *time.Time           `json:"recovery_date"`
		PaymentMethod *model.PaymentMethod `json:"payment_method"`
		ReferenceNo   *string              `json:"reference_no"`
		Notes         *string              `json:"notes"`
	}
	if err := c.ShouldBindJSON(&updateData); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	updates := make(map[string]interface{})
	if updateData.Amount != nil {
		updates["amount"] = *updateData.Amount
	}
	if updateData.RecoveryDate != nil {
		updates["recovery_date"] = *updateData.RecoveryDate
	}
	if updateData.PaymentMethod != nil {
		updates["payment_method"] = *updateData.PaymentMethod
	}
	if updateData.ReferenceNo != nil {
		updates["reference_no"] = *updateData.ReferenceNo
	}
	if updateData.Notes != nil {
		updates["notes"] = *updateData.Notes
	}

	if len(updates) == 0 {
		ErrorResponse(c, http.StatusBadRequest, "没有要更新的字段")
		return
	}

	if err := h.recoveryLogic.UpdateRecovery(id, updates); err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "回收记录更新成功", nil)
}

// DeleteRecovery 删除回收记录
func (h *RecoveryHandler) DeleteRecovery(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的回收记录ID")
		return
	}

	if err := h.recoveryLogic.DeleteRecovery(id); err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "回收记录已删除", nil)
}
