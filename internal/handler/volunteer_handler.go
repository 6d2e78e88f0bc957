package handler

import (
	"net/http"
	"strconv"

	"github.com/Awaismaz/bait-ul-rizq/internal/logic"
	"github.com/Awaismaz/bait-ul-rizq/internal/model"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type VolunteerHandler struct {
	volunteerLogic *logic.VolunteerLogic
}

func NewVolunteerHandler(db *gorm.DB) *VolunteerHandler {
	return &VolunteerHandler{
		volunteerLogic: logic.NewVolunteerLogic(db),
	}
}

// RegisterVolunteer 志愿者公开报名
func (h *VolunteerHandler) RegisterVolunteer(c *gin.Context) {
	var volunteer model.Volunteer
	if err := c.ShouldBindJSON(&volunteer); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.volunteerLogic.RegisterVolunteer(&volunteer); err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "报名成功，等待审核", volunteer)
}

// GetVolunteers 获取志愿者列表
func (h *VolunteerHandler) GetVolunteers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	volunteers, total, err := h.volunteerLogic.GetVolunteers(actorFrom(c), page, pageSize)
	if err != nil {
		FailFromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"volunteers": volunteers,
		"total":      total,
		"page":       page,
		"page_size":  pageSize,
	})
}

// ApproveVolunteer 审核通过志愿者
func (h *VolunteerHandler) ApproveVolunteer(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的志愿者ID")
		return
	}

	if err := h.volunteerLogic.ApproveVolunteer(id); err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "志愿者审核通过", nil)
}
