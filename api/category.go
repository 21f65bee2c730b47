package api

import (
	"budget/models"
	"budget/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CategoryHandler 预算类别管理
type CategoryHandler struct{}

func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// CategoryRequest 新增/修改类别请求，修改时整行覆盖
type CategoryRequest struct {
	Name   string          `json:"name" binding:"required,max=100" example:"餐饮"`
	Budget decimal.Decimal `json:"budget" swaggertype:"string" example:"300.00"`
	Color  string          `json:"color" binding:"omitempty,max=20" example:"#4CAF50"` // 颜色代码，默认 #4CAF50
}

func (r CategoryRequest) input() service.CategoryInput {
	return service.CategoryInput{Name: r.Name, Budget: r.Budget, Color: r.Color}
}

// List 列出所有类别
// @Summary 获取预算类别列表
// @Description 按名称升序返回全部类别
// @Tags 预算类别
// @Produce json
// @Success 200 {object} Response{data=[]models.Category} "获取成功"
// @Failure 500 {object} Response "查询失败"
// @Router /api/v1/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	list, err := gateway().ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err, "")
		return
	}
	Success(c, list)
}

// Create 创建类别
// @Summary 创建预算类别
// @Description 创建新的预算类别，预算必须大于 0，颜色为空时使用默认色
// @Tags 预算类别
// @Accept json
// @Produce json
// @Param request body CategoryRequest true "类别信息"
// @Success 200 {object} Response{data=models.Category} "创建成功"
// @Failure 400 {object} Response "参数错误"
// @Failure 500 {object} Response "创建失败"
// @Router /api/v1/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	in, err := service.ValidateCategory(req.input(), true)
	if err != nil {
		respondError(c, err, "")
		return
	}

	id, err := gateway().AddCategory(c.Request.Context(), in.Name, in.Budget, in.Color)
	if err != nil {
		respondError(c, err, "")
		return
	}
	SuccessWithMessage(c, "创建成功", models.Category{ID: id, Name: in.Name, Budget: in.Budget, Color: in.Color})
}

// Update 更新类别
// @Summary 更新预算类别
// @Description 按 ID 覆盖类别的名称、预算和颜色，预算允许为 0
// @Tags 预算类别
// @Accept json
// @Produce json
// @Param id path int true "类别ID"
// @Param request body CategoryRequest true "类别信息"
// @Success 200 {object} Response{data=models.Category} "更新成功"
// @Failure 400 {object} Response "参数错误"
// @Failure 404 {object} Response "类别不存在"
// @Router /api/v1/categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	in, err := service.ValidateCategory(req.input(), false)
	if err != nil {
		respondError(c, err, "")
		return
	}

	ctx := c.Request.Context()
	gw := gateway()
	cat, err := gw.GetCategory(ctx, id)
	if err != nil {
		respondError(c, err, "类别不存在")
		return
	}
	if _, err := gw.UpdateCategory(ctx, id, in.Name, in.Budget, in.Color); err != nil {
		respondError(c, err, "")
		return
	}

	cat.Name, cat.Budget, cat.Color = in.Name, in.Budget, in.Color
	SuccessWithMessage(c, "更新成功", cat)
}

// Delete 删除类别
// @Summary 删除预算类别
// @Description 删除类别及其全部消费记录
// @Tags 预算类别
// @Produce json
// @Param id path int true "类别ID"
// @Success 200 {object} Response "删除成功"
// @Failure 400 {object} Response "无效的ID"
// @Failure 404 {object} Response "类别不存在"
// @Router /api/v1/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	gw := gateway()
	if _, err := gw.GetCategory(ctx, id); err != nil {
		respondError(c, err, "类别不存在")
		return
	}
	if _, err := gw.DeleteCategory(ctx, id); err != nil {
		respondError(c, err, "")
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}
