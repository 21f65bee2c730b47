package api

import (
	"fmt"
	"log"
	"time"

	"budget/service"

	"github.com/gin-gonic/gin"
)

// RenderError 生成仪表盘数据时发生的 panic
type RenderError struct {
	Value interface{}
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("渲染仪表盘失败: %v", e.Value)
}

// buildDashboard 可在测试中替换
var buildDashboard = service.BuildDashboard

// DashboardHandler 月度仪表盘
type DashboardHandler struct {
	now func() time.Time
}

func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{now: time.Now}
}

// render 调用 buildDashboard，panic 转为 *RenderError
func render(snap service.Snapshot, month service.Month) (dash service.Dashboard, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &RenderError{Value: r}
		}
	}()
	return buildDashboard(snap.Categories, snap.Expenses, month), nil
}

// Get 获取月度仪表盘
// @Summary 获取月度仪表盘
// @Description 返回指定月份的总预算、总支出、剩余、各类别使用情况（按占比倒序）和每日支出；不传 month 时为当月
// @Tags 仪表盘
// @Produce json
// @Param month query string false "月份 (2024-05)"
// @Success 200 {object} Response{data=service.Dashboard} "获取成功"
// @Failure 400 {object} Response "月份格式错误"
// @Failure 500 {object} Response "查询或渲染失败"
// @Router /api/v1/dashboard [get]
func (h *DashboardHandler) Get(c *gin.Context) {
	month := service.CurrentMonth(h.now())
	if s := c.Query("month"); s != "" {
		m, err := service.ParseMonth(s)
		if err != nil {
			respondError(c, err, "")
			return
		}
		month = m
	}

	snap, err := gateway().Snapshot(c.Request.Context())
	if err != nil {
		respondError(c, err, "")
		return
	}

	dash, err := render(snap, month)
	if err != nil {
		log.Printf("%v", err)
		InternalError(c, "渲染仪表盘失败")
		return
	}
	Success(c, dash)
}
