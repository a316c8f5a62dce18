package routes

import (
	"biashara_backoffice/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathExpenses = "/expenses"
	PathSales    = "/sales"
	PathJobCards = "/jobcards"
)

func addFinanceRoutes(rg *gin.RouterGroup, expenseHandler *handlers.ExpenseHandler, saleHandler *handlers.SaleHandler, jobCardHandler *handlers.JobCardHandler) {
	expenses := rg.Group(PathExpenses)
	{
		expenses.POST("", expenseHandler.CreateExpense)
		expenses.GET("/:id", expenseHandler.GetExpense)
		expenses.PATCH("/:id", expenseHandler.UpdateExpense)
		expenses.POST("/:id/approve", expenseHandler.ApproveExpense)
		expenses.POST("/:id/pay", expenseHandler.PayExpense)
		expenses.POST("/:id/reject", expenseHandler.RejectExpense)
		expenses.POST("/:id/cancel", expenseHandler.CancelExpense)
	}

	sales := rg.Group(PathSales)
	{
		sales.POST("", saleHandler.CreateSale)
		sales.GET("/:id", saleHandler.GetSale)
		sales.POST("/:id/items", saleHandler.AddSaleItem)
		sales.PATCH("/:id/items/:item_id", saleHandler.UpdateSaleItem)
		sales.DELETE("/:id/items/:item_id", saleHandler.RemoveSaleItem)
		sales.POST("/:id/installments", saleHandler.RecordInstallment)
		sales.POST("/:id/extension", saleHandler.RequestExtension)
		sales.POST("/:id/cancel", saleHandler.CancelSale)
	}

	jobCards := rg.Group(PathJobCards)
	{
		jobCards.POST("", jobCardHandler.CreateJobCard)
		jobCards.GET("/:id", jobCardHandler.GetJobCard)
	}
}
