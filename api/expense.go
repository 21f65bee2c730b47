package api

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"budget/models"
	"budget/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ExpenseHandler 消费记录处理器
type ExpenseHandler struct {
	alerts *service.AlertService
}

// NewExpenseHandler 创建消费记录处理器，alerts 为空时不发送预算提醒
func NewExpenseHandler(alerts *service.AlertService) *ExpenseHandler {
	return &ExpenseHandler{alerts: alerts}
}

// ExpenseRequest 新增/修改消费记录请求
type ExpenseRequest struct {
	CategoryID  uint            `json:"category_id" binding:"required" example:"1"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"string" example:"99.99"`
	Description string          `json:"description" example:"午餐"`
	Date        string          `json:"date" binding:"required" example:"2024-05-03"`
}

// ExpenseListRequest 消费记录列表请求
type ExpenseListRequest struct {
	Page        int    `form:"page" example:"1"`
	PageSize    int    `form:"page_size" example:"20"`
	CategoryIDs string `form:"category_ids" example:"1,2"`
	StartDate   string `form:"start_date" example:"2024-05-01"`
	EndDate     string `form:"end_date" example:"2024-05-31"`
}

// ExpenseListResponse 列表及筛选结果汇总
type ExpenseListResponse struct {
	PageResponse
	Stats service.ExpenseStats `json:"stats"`
}

// bind 解析请求并查类别，返回校验后的输入
func (h *ExpenseHandler) bind(c *gin.Context, gw *service.Gateway) (service.ExpenseInput, *models.Category, bool) {
	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return service.ExpenseInput{}, nil, false
	}

	date, err := time.ParseInLocation(models.DateLayout, req.Date, time.Local)
	if err != nil {
		BadRequest(c, "日期格式错误，应为: "+models.DateLayout)
		return service.ExpenseInput{}, nil, false
	}

	cat, err := gw.GetCategory(c.Request.Context(), req.CategoryID)
	if err != nil && !errors.Is(err, service.ErrNotFound) {
		respondError(c, err, "")
		return service.ExpenseInput{}, nil, false
	}

	in, err := service.ValidateExpense(service.ExpenseInput{
		CategoryID:  req.CategoryID,
		Amount:      req.Amount,
		Description: req.Description,
		Date:        date,
	}, cat != nil)
	if err != nil {
		respondError(c, err, "")
		return service.ExpenseInput{}, nil, false
	}
	return in, cat, true
}

// Create 创建消费记录
// @Summary 创建消费记录
// @Description 创建一条消费记录，金额必须大于 0 且类别存在；跨过预算阈值时发送提醒邮件
// @Tags 消费记录
// @Accept json
// @Produce json
// @Param request body ExpenseRequest true "消费记录信息"
// @Success 200 {object} Response{data=models.Expense} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 500 {object} Response "创建失败"
// @Router /api/v1/expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	gw := gateway()
	in, cat, ok := h.bind(c, gw)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	id, err := gw.AddExpense(ctx, in.CategoryID, in.Amount, in.Description, in.Date)
	if err != nil {
		respondError(c, err, "")
		return
	}

	if h.alerts.Enabled() {
		month := service.Month{Year: in.Date.Year(), Month: in.Date.Month()}
		if expenses, err := gw.ListExpenses(ctx); err == nil {
			h.alerts.CheckAndNotify(*cat, month, service.FilterByMonth(expenses, month.Year, month.Month), in.Amount)
		}
	}

	SuccessWithMessage(c, "创建成功", models.Expense{
		ID:          id,
		CategoryID:  in.CategoryID,
		Amount:      in.Amount,
		Description: in.Description,
		Date:        in.Date,
	})
}

// List 获取消费记录列表
// @Summary 获取消费记录列表
// @Description 按日期倒序返回消费记录，支持按类别和日期区间筛选，附带筛选结果的汇总
// @Tags 消费记录
// @Produce json
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Param category_ids query string false "类别ID，逗号分隔"
// @Param start_date query string false "开始日期 (2024-05-01)"
// @Param end_date query string false "结束日期 (2024-05-31)"
// @Success 200 {object} Response{data=ExpenseListResponse{list=[]models.Expense}} "获取成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	var req ExpenseListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	// 默认分页参数
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	filter, err := parseExpenseFilter(req)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	expenses, err := gateway().ListExpenses(c.Request.Context())
	if err != nil {
		respondError(c, err, "")
		return
	}
	filtered := service.FilterExpenses(expenses, filter)

	start := (req.Page - 1) * req.PageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + req.PageSize
	if end > len(filtered) {
		end = len(filtered)
	}

	Success(c, ExpenseListResponse{
		PageResponse: PageResponse{
			Total:    int64(len(filtered)),
			Page:     req.Page,
			PageSize: req.PageSize,
			List:     filtered[start:end],
		},
		Stats: service.SummarizeExpenses(filtered),
	})
}

func parseExpenseFilter(req ExpenseListRequest) (service.ExpenseFilter, error) {
	var f service.ExpenseFilter
	if req.CategoryIDs != "" {
		for _, part := range strings.Split(req.CategoryIDs, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseUint(part, 10, 32)
			if err != nil {
				return f, errors.New("无效的类别ID: " + part)
			}
			f.CategoryIDs = append(f.CategoryIDs, uint(id))
		}
	}
	if req.StartDate != "" {
		t, err := time.ParseInLocation(models.DateLayout, req.StartDate, time.Local)
		if err != nil {
			return f, errors.New("开始日期格式错误，应为: " + models.DateLayout)
		}
		f.From = t
	}
	if req.EndDate != "" {
		t, err := time.ParseInLocation(models.DateLayout, req.EndDate, time.Local)
		if err != nil {
			return f, errors.New("结束日期格式错误，应为: " + models.DateLayout)
		}
		f.To = t
	}
	return f, nil
}

// Get 获取单条消费记录
// @Summary 获取单条消费记录
// @Tags 消费记录
// @Produce json
// @Param id path int true "消费记录ID"
// @Success 200 {object} Response{data=models.Expense} "获取成功"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/expenses/{id} [get]
func (h *ExpenseHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	expense, err := gateway().GetExpense(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "记录不存在")
		return
	}
	Success(c, expense)
}

// Update 更新消费记录
// @Summary 更新消费记录
// @Description 按 ID 覆盖消费记录的类别、金额、描述和日期
// @Tags 消费记录
// @Accept json
// @Produce json
// @Param id path int true "消费记录ID"
// @Param request body ExpenseRequest true "消费记录信息"
// @Success 200 {object} Response{data=models.Expense} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/expenses/{id} [put]
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	gw := gateway()
	ctx := c.Request.Context()
	expense, err := gw.GetExpense(ctx, id)
	if err != nil {
		respondError(c, err, "记录不存在")
		return
	}

	in, _, ok := h.bind(c, gw)
	if !ok {
		return
	}
	if _, err := gw.UpdateExpense(ctx, id, in.CategoryID, in.Amount, in.Description, in.Date); err != nil {
		respondError(c, err, "")
		return
	}

	expense.CategoryID = in.CategoryID
	expense.Amount = in.Amount
	expense.Description = in.Description
	expense.Date = in.Date
	SuccessWithMessage(c, "更新成功", expense)
}

// Delete 删除消费记录
// @Summary 删除消费记录
// @Tags 消费记录
// @Produce json
// @Param id path int true "消费记录ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	gw := gateway()
	ctx := c.Request.Context()
	if _, err := gw.GetExpense(ctx, id); err != nil {
		respondError(c, err, "记录不存在")
		return
	}
	if _, err := gw.DeleteExpense(ctx, id); err != nil {
		respondError(c, err, "")
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}
