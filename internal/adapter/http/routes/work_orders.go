package routes

import (
	"github.com/gabrielauvo/auvoautonomo-sub005/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathWorkOrders = "/work-orders"
)

func addWorkOrderRoutes(rg *gin.RouterGroup, workOrderHandler *handlers.WorkOrderHandler) {
	wos := rg.Group(PathWorkOrders)
	{
		wos.POST("", workOrderHandler.Create)
		wos.GET("", workOrderHandler.ListByUser)
		wos.GET("/:id", workOrderHandler.GetByID)
		wos.PUT("/:id", workOrderHandler.Update)
		wos.PATCH("/:id/status", workOrderHandler.UpdateStatus)
		wos.DELETE("/:id", workOrderHandler.Delete)
	}
}
