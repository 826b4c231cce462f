package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hostel-backend/controllers"
	"hostel-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func SetupRouter(
	hc *controllers.HostelController,
	rc *controllers.RoomController,
	tc *controllers.TenantController,
	ac *controllers.AllocationController,
	pc *controllers.PaymentController,
	ec *controllers.ExpenseController,
) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		hostels := api.Group("/hostels")
		{
			hostels.GET("", hc.GetHostels)
			hostels.GET("/:id", hc.GetHostel)
			hostels.POST("", hc.CreateHostel)
			hostels.PATCH("/:id", hc.UpdateHostel)
			hostels.PUT("/:id", hc.UpdateHostel)
			hostels.DELETE("/:id", hc.DeleteHostel)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", rc.GetRooms)

			// must come before /:id
			rooms.GET("/available", rc.GetAvailableRooms)

			rooms.GET("/:id", rc.GetRoom)
			rooms.POST("", rc.CreateRoom)
			rooms.PATCH("/:id", rc.UpdateRoom)
			rooms.PUT("/:id", rc.UpdateRoom)
			rooms.DELETE("/:id", rc.DeleteRoom)
		}

		tenants := api.Group("/tenants")
		{
			tenants.GET("", tc.GetTenants)
			tenants.POST("/allocate", tc.AllocateTenant)
			tenants.GET("/:id", tc.GetTenant)
			tenants.PATCH("/:id", tc.UpdateTenant)
			tenants.PUT("/:id", tc.UpdateTenant)
			tenants.DELETE("/:id", tc.DeleteTenant)
		}

		allocations := api.Group("/allocations")
		{
			allocations.GET("", ac.GetAllocations)
			allocations.GET("/:id", ac.GetAllocation)
			allocations.PATCH("/:id/status", ac.UpdateAllocationStatus)
		}

		payments := api.Group("/payments")
		{
			payments.GET("", pc.GetPayments)
			payments.GET("/:id", pc.GetPayment)
			payments.POST("", pc.CreatePayment)
			payments.PATCH("/:id", pc.UpdatePayment)
			payments.DELETE("/:id", pc.DeletePayment)
		}

		expenses := api.Group("/expenses")
		{
			expenses.GET("", ec.GetExpenses)
			expenses.GET("/:id", ec.GetExpense)
			expenses.POST("", ec.CreateExpense)
			expenses.PATCH("/:id", ec.UpdateExpense)
			expenses.DELETE("/:id", ec.DeleteExpense)
		}
	}

	return r
}
