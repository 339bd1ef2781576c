package demo

import (
	"github.com/Harshal6927/advanced-alchemy/filters"
	"github.com/Harshal6927/advanced-alchemy/ginext"
	"github.com/Harshal6927/advanced-alchemy/logger"

	"github.com/gin-gonic/gin"
)

// BasePath is the URL prefix of the demo API
const BasePath = "/api/v1"

// SetupRoutes sets up all the API routes for the demo application.
func SetupRoutes(r *gin.Engine, log logger.Logger) {
	taskFilters := filters.Config{
		IDFilter:         true,
		IDType:           filters.IDTypeUUID,
		CreatedAt:        true,
		UpdatedAt:        true,
		PaginationType:   filters.PaginationLimitOffset,
		PaginationSize:   20,
		Search:           "title,description",
		SearchIgnoreCase: true,
		SortField:        "created_at",
		SortOrder:        "desc",
	}

	// Task routes
	taskHandler := NewTaskHandler(log)
	v1 := r.Group(BasePath)
	v1.POST("/tasks", taskHandler.Create)
	v1.GET("/tasks", ginext.Filters(taskFilters), taskHandler.List)
	v1.GET("/tasks/:id", taskHandler.GetByID)
	v1.PATCH("/tasks/:id", taskHandler.Update)
	v1.DELETE("/tasks/:id", taskHandler.DeleteByID)
}
