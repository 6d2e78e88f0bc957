package logic

import (
	"github.com/Awaismaz/bait-ul-rizq/internal/model"
	"gorm.io/gorm"
)

// ScopeEntity 需要做社区范围过滤的实体类型
type ScopeEntity int

const (
	ScopeDonor ScopeEntity = iota
	ScopeDonation
	ScopeAllocation
	ScopeProject
	ScopeProjectUpdate
	ScopeRecovery
	ScopeVolunteer
)

// ScopedDB 按操作者的角色和社区归属收紧查询范围：
//   - 超级用户 / 总监：不受限制；
//   - 带社区归属的管理员：只能看到本社区的记录（直接或经由关联）；
//   - 其他情况：返回空集。宁可看不到，绝不越权看到。
//
// 所有面向工作人员的多记录查询都必须经过这里。
func ScopedDB(db *gorm.DB, actor model.Actor, entity ScopeEntity) *gorm.DB {
	if actor.Unrestricted() {
		return db
	}

	if actor.CommunityId == nil {
		return db.Where("1 = 0")
	}
	cid := *actor.CommunityId

	switch entity {
	case ScopeDonor, ScopeVolunteer:
		return db.Where("community_id = ?", cid)
	case ScopeDonation:
		return db.Where("donor_id IN (?)",
			db.Session(&gorm.Session{NewDB: true}).
				Model(&model.Donor{}).Select("id").Where("community_id = ?", cid))
	case ScopeAllocation:
		// 分配记录要求捐赠方与项目方同属本社区
		session := db.Session(&gorm.Session{NewDB: true})
		return db.Where("donation_id IN (?)",
			session.Model(&model.Donation{}).Select("id").
				Where("donor_id IN (?)",
					session.Model(&model.Donor{}).Select("id").Where("community_id = ?", cid)),
		).Where("project_id IN (?)",
			session.Model(&model.Project{}).Select("id").Where("community_id = ?", cid))
	case ScopeProject:
		return db.Where("community_id = ?", cid)
	case ScopeProjectUpdate:
		return db.Where("project_id IN (?)",
			db.Session(&gorm.Session{NewDB: true}).
				Model(&model.Project{}).Select("id").Where("community_id = ?", cid))
	case ScopeRecovery:
		return db.Where("project_id IN (?)",
			db.Session(&gorm.Session{NewDB: true}).
				Model(&model.Project{}).Select("id").Where("community_id = ?", cid))
	default:
		return db.Where("1 = 0")
	}
}
