package router

import (
	"net/http"
	"strings"

	"github.com/Awaismaz/bait-ul-rizq/internal/auth"
	"github.com/Awaismaz/bait-ul-rizq/internal/config"
	"github.com/Awaismaz/bait-ul-rizq/internal/handler"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, cfg *config.Config) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
	}))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "bait-ul-rizq",
		})
	})

	v1 := r.Group("/api/v1")

	// 公开接口：登录、捐赠人自助查询、公开项目、志愿者报名
	authHandler := handler.NewAuthHandler(db, cfg.JWT)
	lookupHandler := handler.NewLookupHandler(db)
	projectHandler := handler.NewProjectHandler(db)
	volunteerHandler := handler.NewVolunteerHandler(db)

	v1.POST("/auth/login", authHandler.Login)
	v1.GET("/lookup/:donor_id", lookupHandler.LookupDonor)
	v1.GET("/public/projects", projectHandler.GetPublicProjects)
	v1.POST("/volunteers", volunteerHandler.RegisterVolunteer)

	// 工作人员接口：必须携带令牌，所有列表查询都经过社区范围过滤
	staff := v1.Group("")
	staff.Use(authMiddleware(cfg.JWT.Secret))
	{
		communityHandler := handler.NewCommunityHandler(db)
		communities := staff.Group("/communities")
		{
			communities.POST("", communityHandler.CreateCommunity)
			communities.GET("", communityHandler.GetCommunities)
			communities.PUT("/:id", communityHandler.UpdateCommunity)
			communities.DELETE("/:id", communityHandler.DeleteCommunity)
		}

		donorHandler := handler.NewDonorHandler(db)
		donors := staff.Group("/donors")
		{
			donors.POST("", donorHandler.CreateDonor)
			donors.GET("", donorHandler.GetDonors)
			donors.GET("/:id", donorHandler.GetDonor)
			donors.PUT("/:id", donorHandler.UpdateDonor)
			donors.DELETE("/:id", donorHandler.DeleteDonor)
		}

		donationHandler := handler.NewDonationHandler(db)
		allocationHandler := handler.NewAllocationHandler(db)
		donations := staff.Group("/donations")
		{
			donations.POST("", donationHandler.CreateDonation)
			donations.GET("", donationHandler.GetDonations)
			donations.GET("/stats", donationHandler.GetDonationStats)
			donations.GET("/:id", donationHandler.GetDonation)
			donations.PUT("/:id", donationHandler.UpdateDonation)
			donations.DELETE("/:id", donationHandler.DeleteDonation)
			donations.GET("/:id/allocations", allocationHandler.GetDonationAllocations)
		}

		allocations := staff.Group("/allocations")
		{
			allocations.POST("", allocationHandler.Allocate)
			allocations.GET("", allocationHandler.GetAllocations)
			allocations.GET("/:id", allocationHandler.GetAllocation)
			allocations.DELETE("/:id", allocationHandler.DeleteAllocation)
		}

		recoveryHandler := handler.NewRecoveryHandler(db)
		projects := staff.Group("/projects")
		{
			projects.POST("", projectHandler.CreateProject)
			projects.GET("", projectHandler.GetProjects)
			projects.GET("/:id", projectHandler.GetProject)
			projects.PUT("/:id", projectHandler.UpdateProject)
			projects.PUT("/:id/status", projectHandler.UpdateProjectStatus)
			projects.GET("/:id/stats", projectHandler.GetProjectStats)
			projects.POST("/:id/updates", projectHandler.AddProjectUpdate)
			projects.GET("/:id/updates", projectHandler.GetProjectUpdates)
			projects.GET("/:id/recoveries", recoveryHandler.GetProjectRecoveries)
		}

		recoveries := staff.Group("/recoveries")
		{
			recoveries.POST("", recoveryHandler.RecordRecovery)
			recoveries.GET("", recoveryHandler.GetRecoveries)
			recoveries.PUT("/:id", recoveryHandler.UpdateRecovery)
			recoveries.DELETE("/:id", recoveryHandler.DeleteRecovery)
		}

		volunteers := staff.Group("/volunteers")
		{
			volunteers.GET("", volunteerHandler.GetVolunteers)
			volunteers.PUT("/:id/approve", volunteerHandler.ApproveVolunteer)
		}
	}

	return r
}

// authMiddleware 校验令牌并把操作者注入上下文
func authMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "缺少认证令牌"})
			return
		}

		claims, err := auth.ParseToken(strings.TrimPrefix(header, "Bearer "), secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "认证令牌无效"})
			return
		}

		c.Set(handler.ActorKey, claims.Actor())
		c.Next()
	}
}
