package routes

import (
	"log"
	"strconv"

	_ "biashara_backoffice/docs" // This will be auto-generated
	"biashara_backoffice/internal/adapter/http/handlers"
	"biashara_backoffice/internal/adapter/persistence/repository"
	"biashara_backoffice/internal/infrastructure/database"
	"biashara_backoffice/internal/usecase"

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

	expenseRepo := repository.NewExpenseDynamoRepository(ddb)
	saleRepo := repository.NewSaleDynamoRepository(ddb)
	jobCardRepo := repository.NewJobCardDynamoRepository(ddb)

	rollupUseCase := usecase.NewJobCardRollupUseCase(jobCardRepo, expenseRepo)
	expenseUseCase := usecase.NewExpenseUseCase(expenseRepo, rollupUseCase)
	saleUseCase := usecase.NewSaleUseCase(saleRepo)

	expenseHandler := handlers.NewExpenseHandler(expenseUseCase)
	saleHandler := handlers.NewSaleHandler(saleUseCase)
	jobCardHandler := handlers.NewJobCardHandler(rollupUseCase, expenseUseCase)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addFinanceRoutes(v1, expenseHandler, saleHandler, jobCardHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
