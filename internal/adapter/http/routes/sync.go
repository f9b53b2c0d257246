package routes

import (
	"github.com/gabrielauvo/auvoautonomo-sub005/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathSync = "/sync"
)

func addSyncRoutes(rg *gin.RouterGroup, syncHandler *handlers.SyncHandler) {
	sync := rg.Group(PathSync)
	{
		// Protocol endpoints used by the mobile offline queue.
		sync.POST("/work-orders/pull", syncHandler.Pull)
		sync.POST("/work-orders/push", syncHandler.Push)
	}
}
