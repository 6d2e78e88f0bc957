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

type DonationHandler struct {
	donationLogic *logic.DonationLogic
}

func NewDonationHandler(db *gorm.DB) *DonationHandler {
	return &DonationHandler{
		donationLogic: logic.NewDonationLogic(db),
	}
}

// CreateDonation 登记捐赠
func (h *DonationHandler) CreateDonation(c *gin.Context) {
	var req struct {
		DonorId       int64               `json:"donor_id" binding:"required"`
		Amount        decimal.Decimal     `json:"amount" binding:"required"`
		Currency      model.Currency      `json:"currency"`
		PaymentMethod model.PaymentMethod `json:"payment_method"`
		ReferenceNo   string              `json:"reference_no"`
		DateReceived  *time.Time          `json:"date_received"`
		Notes         string              `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	donation := model.Donation{
		DonorId:       req.DonorId,
		Amount:        req.Amount,
		Currency:      req.Currency,
		PaymentMethod: req.PaymentMethod,
		ReferenceNo:   req.ReferenceNo,
		Notes:         req.Notes,
	}
	if req.DateReceived != nil {
		donation.DateReceived = *req.DateReceived
	}

	if err := h.donationLogic.CreateDonation(&donation); err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "捐赠登记成功", donation)
}

// GetDonations 获取捐赠列表
func (h *DonationHandler) GetDonations(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	donations, total, err := h.donationLogic.GetDonations(actorFrom(c), page, pageSize)
	if err != nil {
		FailFromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"donations": donations,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetDonation 获取捐赠详情
func (h *DonationHandler) GetDonation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的捐赠ID")
		return
	}

	donation, err := h.donationLogic.GetDonation(id)
	if err != nil {
		FailFromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"donation":  donation,
		"allocated": donation.AllocatedAmount(),
		"remaining": donation.RemainingAmount(),
	})
}

// UpdateDonation 更新捐赠记录
func (h *DonationHandler) UpdateDonation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的捐赠ID")
		return
	}

	var updateData struct {
		Amount        *decimal.Decimal     `json:"amount"`
		PaymentMethod *model.PaymentMethod `json:"payment_method"`
		ReferenceNo   *string              `json:"reference_no"`
		ReceiptIssued *bool                `json:"receipt_issued"`
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
	if updateData.PaymentMethod != nil {
		updates["payment_method"] = *updateData.PaymentMethod
	}
	if updateData.ReferenceNo != nil {
		updates["reference_no"] = *updateData.ReferenceNo
	}
	if updateData.ReceiptIssued != nil {
		updates["receipt_issued"] = *updateData.ReceiptIssued
	}
	if updateData.Notes != nil {
		updates["notes"] = *updateData.Notes
	}

	if len(updates) == 0 {
		ErrorResponse(c, http.StatusBadRequest, "没有要更新的字段")
		return
	}

	if err := h.donationLogic.UpdateDonation(id, updates); err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "捐赠更新成功", nil)
}

// DeleteDonation 删除捐赠记录（已有分配时返回409）
func (h *DonationHandler) DeleteDonation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的捐赠ID")
		return
	}

	if err := h.donationLogic.DeleteDonation(id); err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "捐赠已删除", nil)
}

// GetDonationStats 捐赠统计
func (h *DonationHandler) GetDonationStats(c *gin.Context) {
	stats, err := h.donationLogic.GetDonationStats(actorFrom(c))
	if err != nil {
		FailFromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": stats})
}
