package routes

import (
	"github.com/gin-gonic/gin"
	"tatvadirect/backend/config"
	"tatvadirect/backend/controllers"
	"tatvadirect/backend/middlewares"
	"tatvadirect/backend/models"
)

func Register(r *gin.Engine, cfg config.Config, store controllers.Storage) {
	r.NoRoute(controllers.NotFound())

	api := r.Group("/api")
	{
		api.GET("/health", controllers.Health())
		api.GET("/ready", controllers.Ready(store))

		auth := api.Group("/auth")
		auth.POST("/signup", controllers.Signup(cfg, store))
		auth.POST("/login", controllers.Login(cfg, store))

		// Mock recommendation flow, open like the rest of the upload wizard.
		api.POST("/boq/normalize", controllers.NormalizeBOQ(cfg))
		api.POST("/vendors/rank", controllers.RankVendors())
		api.POST("/substitutions/suggest", controllers.SuggestSubstitutions())
		api.POST("/po/group", controllers.GroupPO())
		api.POST("/po/create", controllers.CreatePO(cfg))

		priv := api.Group("/")
		priv.Use(middlewares.Auth(cfg.JWTSecret), middlewares.LoadUser(store))
		priv.GET("auth/profile", controllers.AuthProfile())

		priv.GET("profile", controllers.GetProfile())
		priv.PUT("profile", controllers.UpdateProfile(store))
		priv.PUT("profile/password", controllers.ChangePassword(store))

		supplier := priv.Group("supplier")
		supplier.Use(middlewares.RequireUserType(models.UserTypeSupplier))
		supplier.GET("/products", controllers.ListSupplierProducts(store))
		supplier.POST("/products", controllers.CreateProduct(store))
		supplier.GET("/products/export", controllers.ExportProducts(store))
		supplier.POST("/products/import", controllers.ImportProducts(cfg, store))
		supplier.PUT("/products/:id", controllers.UpdateProduct(store))
		supplier.DELETE("/products/:id", controllers.DeleteProduct(store))

		dash := priv.Group("dashboard")
		dash.GET("/service-provider", middlewares.RequireUserType(models.UserTypeServiceProvider), controllers.ServiceProviderDashboard(store))
		dash.GET("/supplier", middlewares.RequireUserType(models.UserTypeSupplier), controllers.SupplierDashboard(store))

		boq := priv.Group("boq")
		boq.Use(middlewares.RequireUserType(models.UserTypeServiceProvider))
		boq.GET("", controllers.ListBOQs(store))
		boq.POST("", controllers.CreateBOQ(store))
		boq.POST("/import", controllers.ImportBOQ(cfg, store))
		boq.GET("/:id", controllers.GetBOQ(store))
		boq.PUT("/:id/status", controllers.UpdateBOQStatus(store))

		orders := priv.Group("orders")
		orders.POST("", middlewares.RequireUserType(models.UserTypeServiceProvider), controllers.CreateOrder(store))
		orders.GET("", controllers.ListOrders(store))
		orders.GET("/:id", controllers.GetOrder(store))
		orders.PUT("/:id/status", controllers.UpdateOrderStatus(store))

		admin := priv.Group("admin")
		admin.Use(middlewares.RequireAdmin(cfg.AdminEmail))
		admin.GET("/dashboard", controllers.AdminDashboard(store))
		admin.GET("/users", controllers.AdminUsers(store))
		admin.GET("/users/:id", controllers.AdminUser(store))
		admin.GET("/transactions", controllers.AdminTransactions(store))
		admin.PUT("/users/:id/status", controllers.UpdateUserStatus(store))
	}
}
