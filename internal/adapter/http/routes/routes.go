package routes

import (
	"log"
	"os"
	"strconv"

	_ "github.com/gabrielauvo/auvoautonomo-sub005/docs" // This will be auto-generated
	"github.com/gabrielauvo/auvoautonomo-sub005/internal/adapter/http/handlers"
	"github.com/gabrielauvo/auvoautonomo-sub005/internal/adapter/http/middleware"
	repository2 "github.com/gabrielauvo/auvoautonomo-sub005/internal/adapter/persistence/repository"
	"github.com/gabrielauvo/auvoautonomo-sub005/internal/domain/entities"
	"github.com/gabrielauvo/auvoautonomo-sub005/internal/infrastructure/collaborators"
	"github.com/gabrielauvo/auvoautonomo-sub005/internal/infrastructure/database"
	"github.com/gabrielauvo/auvoautonomo-sub005/internal/usecase"
	"github.com/gabrielauvo/auvoautonomo-sub005/internal/usecase/interfaces"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()

	workOrderRepo := repository2.NewWorkOrderDynamoRepository(ddb)
	clientRepo := repository2.NewClientDynamoRepository(ddb)
	ledgerRepo := repository2.NewMutationLedgerDynamoRepository(ddb)

	var inventory interfaces.IInventoryService
	inventorySvc, err := collaborators.NewInventoryHTTPService(os.Getenv("INVENTORY_SERVICE_URL"))
	if err != nil {
		log.Printf("Inventory collaborator not configured: %v", err)
	} else {
		inventory = inventorySvc
	}

	var notifier interfaces.IStatusNotifier
	notifierSvc, err := collaborators.NewStatusNotifierHTTPService(os.Getenv("NOTIFIER_SERVICE_URL"))
	if err != nil {
		log.Printf("Status notifier collaborator not configured: %v", err)
	} else {
		notifier = notifierSvc
	}

	inventoryTrigger := entities.WorkOrderStatus(os.Getenv("WORK_ORDER_INVENTORY_TRIGGER_STATUS"))

	pullUseCase := usecase.NewSyncPullUseCase(workOrderRepo)
	pushUseCase := usecase.NewSyncPushUseCase(workOrderRepo, clientRepo, ledgerRepo, inventory, inventoryTrigger)
	workOrderUseCase := usecase.NewWorkOrderUseCase(workOrderRepo, clientRepo, notifier, inventory, inventoryTrigger)

	syncHandler := handlers.NewSyncHandler(pullUseCase, pushUseCase)
	workOrderHandler := handlers.NewWorkOrderHandler(workOrderUseCase)

	v1 := router.Group("/v1")
	addPingRoutes(v1)

	authed := v1.Group("", middleware.TechnicianIdentity())
	addSyncRoutes(authed, syncHandler)
	addWorkOrderRoutes(authed, workOrderHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", middleware.TechnicianIDHeader)
	router.Use(cors.New(corsCfg))
}
