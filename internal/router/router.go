package router

import (
	"potion-shop/internal/config"
	"potion-shop/internal/handler"
	"potion-shop/internal/middleware"
	"potion-shop/internal/store"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and all API routes.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	users := store.NewUserStore(db, cfg.Security.BcryptCost)
	potions := store.NewPotionStore(db)

	// 登录/注册接口（不需要鉴权）
	authHandler := handler.NewAuthHandler(users, cfg)
	auth := r.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/logout", authHandler.Logout)

	potionHandler := handler.NewPotionHandler(potions)
	exportHandler := handler.NewExportHandler(potions)

	// read endpoints are public
	p := r.Group("/potions")
	p.GET("", potionHandler.List)
	p.GET("/names", potionHandler.Names)
	p.GET("/vendor/:vendor_id", potionHandler.ByVendor)
	p.GET("/price-range", potionHandler.PriceRange)
	p.GET("/analytics/distinct-categories", potionHandler.DistinctCategories)
	p.GET("/analytics/average-score-by-vendor", potionHandler.AverageScoreByVendor)
	p.GET("/analytics/average-score-by-category", potionHandler.AverageScoreByCategory)
	p.GET("/analytics/strength-flavor-ratio", potionHandler.StrengthFlavorRatio)
	p.GET("/analytics/search", potionHandler.Search)
	p.GET("/export/csv", exportHandler.ExportCSV)
	p.GET("/export/xlsx", exportHandler.ExportXLSX)

	// creation requires a valid session cookie
	p.POST("", middleware.Auth(cfg.JWT.Secret, cfg.Cookie.Name), potionHandler.Create)

	return r
}
