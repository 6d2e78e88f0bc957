package scheduler

import (
	"sync"
	"time"

	"github.com/Awaismaz/bait-ul-rizq/internal/config"
	"github.com/Awaismaz/bait-ul-rizq/internal/logger"
	"github.com/Awaismaz/bait-ul-rizq/internal/model"
	"github.com/go-co-op/gocron/v2"
	"github.com/panjf2000/ants/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RecoveryAuditJob 回收缓存审计任务。
// Project.TotalRecovered 是反范式缓存，正常路径上由 RecoveryLogic 同事务维护；
// 这里定期以回收明细为准重新核对，发现漂移立即修复并告警。
type RecoveryAuditJob struct {
	db     *gorm.DB
	config *config.Config
}

// NewRecoveryAuditJob 创建回收缓存审计任务
func NewRecoveryAuditJob(db *gorm.DB, cfg *config.Config) *RecoveryAuditJob {
	return &RecoveryAuditJob{
		db:     db,
		config: cfg,
	}
}

// GetName 获取任务名称
func (j *RecoveryAuditJob) GetName() string {
	return "recovery_cache_audit"
}

// GetSchedule 获取调度配置
func (j *RecoveryAuditJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Scheduler.RecoveryAuditInterval) * time.Second)
}

// Execute 执行任务
func (j *RecoveryAuditJob) Execute() {
	logger.Info("Starting recovery cache audit")

	var projects []model.Project
	if err := j.db.Select("id", "total_recovered").Find(&projects).Error; err != nil {
		logger.Error("Failed to fetch projects for audit: %v", err)
		return
	}

	if len(projects) == 0 {
		return
	}

	workers := j.config.Scheduler.AuditWorkers
	if workers <= 0 {
		workers = 4
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		logger.Error("Failed to create audit pool: %v", err)
		return
	}
	defer pool.Release()

	var wg sync.WaitGroup
	var repaired int64
	var mu sync.Mutex

	for _, project := range projects {
		p := project
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			if j.auditProject(p) {
				mu.Lock()
				repaired++
				mu.Unlock()
			}
		}); err != nil {
			wg.Done()
			logger.Error("Failed to submit audit task for project %d: %v", p.Id, err)
		}
	}
	wg.Wait()

	logger.Info("Recovery cache audit completed: %d projects checked, %d repaired", len(projects), repaired)
}

// auditProject 核对单个项目的缓存，返回是否发生了修复
func (j *RecoveryAuditJob) auditProject(project model.Project) bool {
	var actual decimal.Decimal
	if err := j.db.Model(&model.Recovery{}).
		Where("project_id = ?", project.Id).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&actual).Error; err != nil {
		logger.Error("Failed to sum recoveries for project %d: %v", project.Id, err)
		return false
	}

	if project.TotalRecovered.Equal(actual) {
		return false
	}

	logger.Warn("Recovery cache drift on project %d: cached=%s actual=%s, repairing",
		project.Id, project.TotalRecovered.StringFixed(2), actual.StringFixed(2))

	if err := j.db.Model(&model.Project{}).
		Where("id = ?", project.Id).
		Update("total_recovered", actual).Error; err != nil {
		logger.Error("Failed to repair recovery cache for project %d: %v", project.Id, err)
		return false
	}

	return true
}
