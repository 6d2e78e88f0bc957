package handler

import (
	"errors"
	"net/http"

	"github.com/Awaismaz/bait-ul-rizq/internal/logic"
	"github.com/Awaismaz/bait-ul-rizq/internal/model"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// LookupHandler 捐赠人自助查询（公开接口，无需登录）
type LookupHandler struct {
	donorLogic *logic.DonorLogic
}

func NewLookupHandler(db *gorm.DB) *LookupHandler {
	return &LookupHandler{
		donorLogic: logic.NewDonorLogic(db),
	}
}

// LookupDonor 按9位编号查询捐赠人及其捐赠去向。
// 编号格式不合法返回400；格式合法但查无此人是正常的空结果，返回404。
func (h *LookupHandler) LookupDonor(c *gin.Context) {
	donorId := c.Param("donor_id")

	donor, err := h.donorLogic.LookupByDonorId(donorId)
	if err != nil {
		if errors.Is(err, logic.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"found":    false,
				"donor_id": donorId,
			})
			return
		}
		FailFromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"found": true,
		"donor": h.publicView(donor),
	})
}

// publicView 公开视图：匿名捐赠人隐藏真实姓名，内部备注不外露
func (h *LookupHandler) publicView(donor *model.Donor) gin.H {
	donations := make([]gin.H, 0, len(donor.Donations))
	for _, donation := range donor.Donations {
		allocations := make([]gin.H, 0, len(donation.Allocations))
		for _, allocation := range donation.Allocations {
			entry := gin.H{
				"amount":         allocation.Amount,
				"allocated_date": allocation.AllocatedDate,
			}
			if allocation.Project != nil {
				entry["project_title"] = allocation.Project.Title
				entry["project_status"] = allocation.Project.Status
			}
			allocations = append(allocations, entry)
		}

		donations = append(donations, gin.H{
			"amount":        donation.Amount,
			"currency":      donation.Currency,
			"date_received": donation.DateReceived,
			"allocations":   allocations,
		})
	}

	return gin.H{
		"donor_id":     donor.DonorId,
		"display_name": donor.DisplayName(),
		"donations":    donations,
	}
}
