package handler

import (
	"net/http"
	"strconv"

	"github.com/Awaismaz/bait-ul-rizq/internal/logic"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AllocationHandler struct {
	allocationLogic *logic.AllocationLogic
}

func NewAllocationHandler(db *gorm.DB) *AllocationHandler {
	return &AllocationHandler{
		allocationLogic: logic.NewAllocationLogic(db),
	}
}

// Allocate 把捐赠余额拨给项目。同组合重复调用会覆盖已有分配行。
// 超出余额时返回400，响应里带准确的剩余可分配金额。
func (h *AllocationHandler) Allocate(c *gin.Context) {
	var req struct {
		DonationId int64           `json:"donation_id" binding:"required"`
		ProjectId  int64           `json:"project_id" binding:"required"`
		Amount     decimal.Decimal `json:"amount" binding:"required"`
		Notes      string          `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	allocation, err := h.allocationLogic.Allocate(req.DonationId, req.ProjectId, req.Amount, req.Notes)
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "分配成功", allocation)
}

// GetAllocations 获取分配列表
func (h *AllocationHandler) GetAllocations(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	allocations, total, err := h.allocationLogic.GetAllocations(actorFrom(c), page, pageSize)
	if err != nil {
		FailFromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"allocations": allocations,
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
	})
}

// GetAllocation 获取分配详情
func (h *AllocationHandler) GetAllocation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的分配ID")
		return
	}

	allocation, err := h.allocationLogic.GetAllocation(id)
	if err != nil {
		FailFromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"allocation": allocation})
}

// DeleteAllocation 删除分配，金额回到捐赠的未分配余额
func (h *AllocationHandler) DeleteAllocation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的分配ID")
		return
	}

	if err := h.allocationLogic.DeleteAllocation(id); err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "分配已删除", nil)
}

// GetDonationAllocations 获取某笔捐赠的全部分配
func (h *AllocationHandler) GetDonationAllocations(c *gin.Context) {
	donationId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的捐赠ID")
		return
	}

	allocations, err := h.allocationLogic.GetDonationAllocations(donationId)
	if err != nil {
		FailFromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"allocations": allocations})
}
