// Package interfaces 短期利率模型接口层
package interfaces

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/ratesanalytics/internal/ratemodel/application"
	"github.com/wyfcoding/ratesanalytics/internal/ratemodel/domain"
	"gorm.io/gorm"
)

// HTTPHandler HTTP 接口处理器
type HTTPHandler struct {
	commandService *application.CommandService
	queryService   *application.QueryService
}

// NewHTTPHandler 创建 HTTP 处理器
func NewHTTPHandler(
	commandService *application.CommandService,
	queryService *application.QueryService,
) *HTTPHandler {
	return &HTTPHandler{
		commandService: commandService,
		queryService:   queryService,
	}
}

// RegisterRoutes 注册路由
func (h *HTTPHandler) RegisterRoutes(r *gin.RouterGroup) {
	ratemodel := r.Group("/ratemodel")
	{
		ratemodel.POST("/scenarios", h.CreateScenario)
		ratemodel.GET("/scenarios", h.ListScenarios)
		ratemodel.GET("/scenarios/:id", h.GetScenario)
		ratemodel.POST("/scenarios/:id/evaluate", h.EvaluateScenario)
		ratemodel.POST("/scenarios/:id/archive", h.ArchiveScenario)
		ratemodel.GET("/scenarios/:id/evaluations", h.ListEvaluations)
		ratemodel.GET("/scenarios/:id/evaluations/latest", h.LatestEvaluation)
		ratemodel.GET("/evaluations/:id", h.GetEvaluation)

		ratemodel.POST("/distribution", h.Distribution)
	}
}

// statusFromError 领域校验错误映射 400，记录不存在映射 404，其余 500
func statusFromError(err error) int {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrMustBePositive),
		errors.Is(err, domain.ErrMustBeNonNegative),
		errors.Is(err, domain.ErrNotFinite),
		errors.Is(err, domain.ErrScenarioNotActive),
		errors.Is(err, domain.ErrScenarioArchived):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// CreateScenarioRequest 创建情景请求
type CreateScenarioRequest struct {
	Name  string  `json:"name" binding:"required"`
	Gamma float64 `json:"gamma" binding:"required"`
	RBar  float64 `json:"r_bar"`
	R0    float64 `json:"r_0"`
	Sigma float64 `json:"sigma"`
}

// CreateScenario 创建情景
func (h *HTTPHandler) CreateScenario(c *gin.Context) {
	var req CreateScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cmd := application.CreateScenarioCommand{
		Name: req.Name,
		Params: domain.VasicekParams{
			Gamma: req.Gamma,
			RBar:  req.RBar,
			R0:    req.R0,
			Sigma: req.Sigma,
		},
	}

	id, err := h.commandService.CreateScenario(c.Request.Context(), cmd)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"scenario_id": id})
}

// EvaluateScenarioRequest 评估情景请求
// horizon = 0 合法（退化为 r_0 处的点质量），定义域校验交给领域层。
type EvaluateScenarioRequest struct {
	Horizon float64 `json:"horizon"`
}

// EvaluateScenario 评估情景
func (h *HTTPHandler) EvaluateScenario(c *gin.Context) {
	var req EvaluateScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cmd := application.EvaluateScenarioCommand{
		ScenarioID: c.Param("id"),
		Horizon:    req.Horizon,
	}

	id, err := h.commandService.EvaluateScenario(c.Request.Context(), cmd)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"evaluation_id": id})
}

// ArchiveScenario 归档情景
func (h *HTTPHandler) ArchiveScenario(c *gin.Context) {
	if err := h.commandService.ArchiveScenario(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "archived"})
}

// GetScenario 获取情景
func (h *HTTPHandler) GetScenario(c *gin.Context) {
	scenario, err := h.queryService.GetScenario(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, scenario)
}

// GetEvaluation 获取单条评估记录
func (h *HTTPHandler) GetEvaluation(c *gin.Context) {
	evaluation, err := h.queryService.GetEvaluation(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, evaluation)
}

// ListScenarios 获取情景列表
func (h *HTTPHandler) ListScenarios(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	var status *domain.ScenarioStatus
	if sStr := c.Query("status"); sStr != "" {
		if s, err := strconv.Atoi(sStr); err == nil {
			st := domain.ScenarioStatus(s)
			status = &st
		}
	}

	scenarios, total, err := h.queryService.ListScenarios(c.Request.Context(), status, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"scenarios": scenarios, "total": total})
}

// ListEvaluations 获取情景的历史评估记录
func (h *HTTPHandler) ListEvaluations(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	evaluations, total, err := h.queryService.ListEvaluations(c.Request.Context(), c.Param("id"), page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"evaluations": evaluations, "total": total})
}

// LatestEvaluation 获取情景最新评估结果
func (h *HTTPHandler) LatestEvaluation(c *gin.Context) {
	evaluation, err := h.queryService.LatestEvaluation(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, evaluation)
}

// DistributionRequest 无状态分布计算请求
type DistributionRequest struct {
	Gamma   float64 `json:"gamma" binding:"required"`
	RBar    float64 `json:"r_bar"`
	R0      float64 `json:"r_0"`
	Sigma   float64 `json:"sigma"`
	Horizon float64 `json:"horizon"`
}

// Distribution 直接计算给定参数下 r_t 的分布特征，不持久化
func (h *HTTPHandler) Distribution(c *gin.Context) {
	var req DistributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	params := domain.VasicekParams{
		Gamma: req.Gamma,
		RBar:  req.RBar,
		R0:    req.R0,
		Sigma: req.Sigma,
	}

	dist, err := h.queryService.Distribution(c.Request.Context(), params, req.Horizon)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dist)
}
