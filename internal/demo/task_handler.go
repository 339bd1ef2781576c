package demo

import (
	"fmt"
	"net/http"

	"github.com/Harshal6927/advanced-alchemy/ginext"
	"github.com/Harshal6927/advanced-alchemy/logger"
	"github.com/Harshal6927/advanced-alchemy/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TaskHandler defines the interface for handling task operations
type TaskHandler interface {
	Create(ctx *gin.Context)
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Update(ctx *gin.Context)
	DeleteByID(ctx *gin.Context)
}

// taskHandler struct holds the logger
type taskHandler struct {
	logger logger.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(log logger.Logger) TaskHandler {
	return &taskHandler{
		logger: log,
	}
}

// Create stores a new task
func (handler *taskHandler) Create(ctx *gin.Context) {
	var request CreateTaskRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		var errorResponse ginext.ErrorResponse
		errorMessage := fmt.Sprintf("invalid request body: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	taskRepository, err := ginext.RequestRepository[Task](ctx, handler.logger)
	if err != nil {
		ginext.Error(ctx, err)
		return
	}

	task := &Task{
		Title:       request.Title,
		Description: request.Description,
	}
	if err := taskRepository.Add(ctx.Request.Context(), task); err != nil {
		ginext.Error(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, task)
}

// List fetches tasks applying the filters bound from the query string
func (handler *taskHandler) List(ctx *gin.Context) {
	taskRepository, err := ginext.RequestRepository[Task](ctx, handler.logger)
	if err != nil {
		ginext.Error(ctx, err)
		return
	}

	boundFilters := ginext.BoundFilters(ctx)
	tasks, total, err := taskRepository.ListAndCount(ctx.Request.Context(), boundFilters...)
	if err != nil {
		ginext.Error(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, repository.Paginate(tasks, total, boundFilters))
}

// GetByID fetches a task by ID
func (handler *taskHandler) GetByID(ctx *gin.Context) {
	taskID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		var errorResponse ginext.ErrorResponse
		errorMessage := fmt.Sprintf("invalid task id %s", ctx.Param("id"))
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	taskRepository, err := ginext.RequestRepository[Task](ctx, handler.logger)
	if err != nil {
		ginext.Error(ctx, err)
		return
	}

	task, err := taskRepository.Get(ctx.Request.Context(), taskID)
	if err != nil {
		ginext.Error(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, task)
}

// Update applies a partial update to a task
func (handler *taskHandler) Update(ctx *gin.Context) {
	taskID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		var errorResponse ginext.ErrorResponse
		errorMessage := fmt.Sprintf("invalid task id %s", ctx.Param("id"))
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	var request UpdateTaskRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		var errorResponse ginext.ErrorResponse
		errorMessage := fmt.Sprintf("invalid request body: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	taskRepository, err := ginext.RequestRepository[Task](ctx, handler.logger)
	if err != nil {
		ginext.Error(ctx, err)
		return
	}

	task, err := taskRepository.Get(ctx.Request.Context(), taskID)
	if err != nil {
		ginext.Error(ctx, err)
		return
	}

	if request.Title != nil {
		task.Title = *request.Title
	}
	if request.Description != nil {
		task.Description = *request.Description
	}
	if request.Done != nil {
		task.Done = *request.Done
	}

	if err := taskRepository.Update(ctx.Request.Context(), task); err != nil {
		ginext.Error(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, task)
}

// DeleteByID removes a task by ID
func (handler *taskHandler) DeleteByID(ctx *gin.Context) {
	taskID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		var errorResponse ginext.ErrorResponse
		errorMessage := fmt.Sprintf("invalid task id %s", ctx.Param("id"))
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	taskRepository, err := ginext.RequestRepository[Task](ctx, handler.logger)
	if err != nil {
		ginext.Error(ctx, err)
		return
	}

	if err := taskRepository.Delete(ctx.Request.Context(), taskID); err != nil {
		ginext.Error(ctx, err)
		return
	}

	var infoResponse ginext.InfoResponse
	infoMessage := fmt.Sprintf("task with id %s deleted", taskID)
	infoResponse.Message = &infoMessage
	ctx.JSON(http.StatusOK, infoResponse)
}
