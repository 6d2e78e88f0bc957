package handler

import (
	"net/http"
	"strconv"

	"github.com/Awaismaz/bait-ul-rizq/internal/logic"
	"github.com/Awaismaz/bait-ul-rizq/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProjectHandler struct {
	projectLogic *logic.ProjectLogic
}

func NewProjectHandler(db *gorm.DB) *ProjectHandler {
	return &ProjectHandler{
		projectLogic: logic.NewProjectLogic(db),
	}
}

// CreateProject 提交项目申请
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var project model.Project
	if err := c.ShouldBindJSON(&project); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.projectLogic.CreateProject(&project); err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "项目创建成功", project)
}

// GetProjects 获取项目列表
func (h *ProjectHandler) GetProjects(c *gin.Context) {
	status := c.Query("status")
	category := c.Query("category")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	projects, total, err := h.projectLogic.GetProjects(actorFrom(c), status, category, page, pageSize)
	if err != nil {
		FailFromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects":  projects,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetPublicProjects 公开网站的项目列表
func (h *ProjectHandler) GetPublicProjects(c *gin.Context) {
	featuredOnly := c.Query("featured") == "true"
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	projects, total, err := h.projectLogic.GetPublicProjects(featuredOnly, page, pageSize)
	if err != nil {
		FailFromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects":  projects,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetProject 获取项目详情
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	project, err := h.projectLogic.GetProject(id)
	if err != nil {
		FailFromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": project})
}

// UpdateProject 更新项目信息（状态走单独接口）
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	var updateData struct {
		Title                   *string          `json:"title"`
		Category                *string          `json:"category"`
		Description             *string          `json:"description"`
		BusinessPlan            *string          `json:"business_plan"`
		ApprovedAmount          *decimal.Decimal `json:"approved_amount"`
		ExpectedMonthlyRecovery *decimal.Decimal `json:"expected_monthly_recovery"`
		VerificationNotes       *string          `json:"verification_notes"`
		AdminNotes              *string          `json:"admin_notes"`
		IsFeatured              *bool            `json:"is_featured"`
		IsPublic                *bool            `json:"is_public"`
	}
	if err := c.ShouldBindJSON(&updateData); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	updates := make(map[string]interface{})
	if updateData.Title != nil {
		updates["title"] = *updateData.Title
	}
	if updateData.Category != nil {
		updates["category"] = *updateData.Category
	}
	if updateData.Description != nil {
		updates["description"] = *updateData.Description
	}
	if updateData.BusinessPlan != nil {
		updates["business_plan"] = *updateData.BusinessPlan
	}
	if updateData.ApprovedAmount != nil {
		updates["approved_amount"] = *updateData.ApprovedAmount
	}
	if updateData.ExpectedMonthlyRecovery != nil {
		updates["expected_monthly_recovery"] = *updateData.ExpectedMonthlyRecovery
	}
	if updateData.VerificationNotes != nil {
		updates["verification_notes"] = *updateData.VerificationNotes
	}
	if updateData.AdminNotes != nil {
		updates["admin_notes"] = *updateData.AdminNotes
	}
	if updateData.IsFeatured != nil {
		updates["is_featured"] = *updateData.IsFeatured
	}
	if updateData.IsPublic != nil {
		updates["is_public"] = *updateData.IsPublic
	}

	if len(updates) == 0 {
		ErrorResponse(c, http.StatusBadRequest, "没有要更新的字段")
		return
	}

	if err := h.projectLogic.UpdateProject(id, updates); err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "项目更新成功", nil)
}

// UpdateProjectStatus 推进项目状态
func (h *ProjectHandler) UpdateProjectStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	var req struct {
		Status model.ProjectStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.projectLogic.UpdateProjectStatus(id, req.Status); err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "项目状态更新成功", nil)
}

// GetProjectStats 项目资金与回收统计
func (h *ProjectHandler) GetProjectStats(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	stats, err := h.projectLogic.GetProjectStats(id)
	if err != nil {
		FailFromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": stats})
}

// AddProjectUpdate 发布项目进展
func (h *ProjectHandler) AddProjectUpdate(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	var req struct {
		Title   string `json:"title" binding:"required"`
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	update := model.ProjectUpdate{
		ProjectId: id,
		Title:     req.Title,
		Content:   req.Content,
	}

	if err := h.projectLogic.AddProjectUpdate(&update); err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "项目进展已发布", update)
}

// GetProjectUpdates 获取项目进展列表
func (h *ProjectHandler) GetProjectUpdates(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	updates, err := h.projectLogic.GetProjectUpdates(id)
	if err != nil {
		FailFromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"updates": updates})
}
