package handlers

import (
	"net/http"

	"jobhub_backend/internal/middleware"
	"jobhub_backend/internal/models"
	"jobhub_backend/internal/services"
	"jobhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ApplicationHandler struct {
	*BaseHandler
	applicationService services.ApplicationService
}

func NewApplicationHandler(base *BaseHandler, applicationService services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler:        base,
		applicationService: applicationService,
	}
}

func (h *ApplicationHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	applications := r.Group("/applications")
	applications.Use(authMW)
	{
		applications.GET("/:applicationId", h.GetApplication)
		applications.GET("/my", h.MyApplications)
		applications.POST("/:applicationId/withdraw", h.Withdraw)
	}

	worker := r.Group("/applications")
	worker.Use(authMW, middleware.RequireRoles(models.UserRoleWorker))
	{
		worker.POST("", h.Apply)
	}

	employer := r.Group("/applications")
	employer.Use(authMW, middleware.RequireRoles(models.UserRoleEmployer, models.UserRoleAdmin))
	{
		employer.POST("/:applicationId/accept", h.Accept)
		employer.POST("/:applicationId/reject", h.Reject)
		employer.POST("/:applicationId/complete", h.Complete)
	}

	jobs := r.Group("/jobs")
	jobs.Use(authMW, middleware.RequireRoles(models.UserRoleEmployer, models.UserRoleAdmin))
	{
		jobs.GET("/:jobId/applications", h.ListForJob)
	}
}

func (h *ApplicationHandler) Apply(c *gin.Context) {
	actor, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	var req dto.CreateApplicationRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	application, err := h.applicationService.Apply(h.GetDB(c), actor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, application)
}

func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	actor, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	application, err := h.applicationService.GetApplication(h.GetDB(c), actor, c.Param("applicationId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, application)
}

func (h *ApplicationHandler) MyApplications(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	page, pageSize := ParsePagination(c)

	resp, err := h.applicationService.ListForWorker(h.GetDB(c), userID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	h.transition(c, h.applicationService.Withdraw)
}

func (h *ApplicationHandler) Accept(c *gin.Context) {
	h.transition(c, h.applicationService.Accept)
}

func (h *ApplicationHandler) Reject(c *gin.Context) {
	h.transition(c, h.applicationService.Reject)
}

func (h *ApplicationHandler) Complete(c *gin.Context) {
	h.transition(c, h.applicationService.Complete)
}

func (h *ApplicationHandler) ListForJob(c *gin.Context) {
	actor, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	applications, err := h.applicationService.ListForJob(h.GetDB(c), actor, c.Param("jobId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": applications,
		"total":        len(applications),
	})
}

// transition runs one of the status-change operations, which all share the
// same shape.
func (h *ApplicationHandler) transition(c *gin.Context, op func(db *gorm.DB, actor *models.User, applicationID string) error) {
	actor, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	if err := op(h.GetDB(c), actor, c.Param("applicationId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
