// Package docs 预算助手 API 的 swagger 文档，与 api 包中的注解保持一致
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/categories": {
            "get": {
                "description": "按名称升序返回全部类别",
                "produces": ["application/json"],
                "tags": ["预算类别"],
                "summary": "获取预算类别列表",
                "responses": {
                    "200": {"description": "获取成功", "schema": {"$ref": "#/definitions/api.Response"}},
                    "500": {"description": "查询失败", "schema": {"$ref": "#/definitions/api.Response"}}
                }
            },
            "post": {
                "description": "创建新的预算类别，预算必须大于 0，颜色为空时使用默认色",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["预算类别"],
                "summary": "创建预算类别",
                "parameters": [
                    {"description": "类别信息", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.CategoryRequest"}}
                ],
                "responses": {
                    "200": {"description": "创建成功", "schema": {"$ref": "#/definitions/api.Response"}},
                    "400": {"description": "参数错误", "schema": {"$ref": "#/definitions/api.Response"}},
                    "500": {"description": "创建失败", "schema": {"$ref": "#/definitions/api.Response"}}
                }
            }
        },
        "/api/v1/categories/{id}": {
            "put": {
                "description": "按 ID 覆盖类别的名称、预算和颜色，预算允许为 0",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["预算类别"],
                "summary": "更新预算类别",
                "parameters": [
                    {"type": "integer", "description": "类别ID", "name": "id", "in": "path", "required": true},
                    {"description": "类别信息", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.CategoryRequest"}}
                ],
                "responses": {
                    "200": {"description": "更新成功", "schema": {"$ref": "#/definitions/api.Response"}},
                    "400": {"description": "参数错误", "schema": {"$ref": "#/definitions/api.Response"}},
                    "404": {"description": "类别不存在", "schema": {"$ref": "#/definitions/api.Response"}}
                }
            },
            "delete": {
                "description": "删除类别及其全部消费记录",
                "produces": ["application/json"],
                "tags": ["预算类别"],
                "summary": "删除预算类别",
                "parameters": [
                    {"type": "integer", "description": "类别ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "删除成功", "schema": {"$ref": "#/definitions/api.Response"}},
                    "400": {"description": "无效的ID", "schema": {"$ref": "#/definitions/api.Response"}},
                    "404": {"description": "类别不存在", "schema": {"$ref": "#/definitions/api.Response"}}
                }
            }
        },
        "/api/v1/dashboard": {
            "get": {
                "description": "返回指定月份的总预算、总支出、剩余、各类别使用情况（按占比倒序）和每日支出；不传 month 时为当月",
                "produces": ["application/json"],
                "tags": ["仪表盘"],
                "summary": "获取月度仪表盘",
                "parameters": [
                    {"type": "string", "description": "月份 (2024-05)", "name": "month", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "获取成功", "schema": {"$ref": "#/definitions/api.Response"}},
                    "400": {"description": "月份格式错误", "schema": {"$ref": "#/definitions/api.Response"}},
                    "500": {"description": "查询或渲染失败", "schema": {"$ref": "#/definitions/api.Response"}}
                }
            }
        },
        "/api/v1/expenses": {
            "get": {
                "description": "按日期倒序返回消费记录，支持按类别和日期区间筛选，附带筛选结果的汇总",
                "produces": ["application/json"],
                "tags": ["消费记录"],
                "summary": "获取消费记录列表",
                "parameters": [
                    {"type": "integer", "default": 1, "description": "页码", "name": "page", "in": "query"},
                    {"type": "integer", "default": 20, "description": "每页数量", "name": "page_size", "in": "query"},
                    {"type": "string", "description": "类别ID，逗号分隔", "name": "category_ids", "in": "query"},
                    {"type": "string", "description": "开始日期 (2024-05-01)", "name": "start_date", "in": "query"},
                    {"type": "string", "description": "结束日期 (2024-05-31)", "name": "end_date", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "获取成功", "schema": {"$ref": "#/definitions/api.Response"}},
                    "400": {"description": "请求参数错误", "schema": {"$ref": "#/definitions/api.Response"}}
                }
            },
            "post": {
                "description": "创建一条消费记录，金额必须大于 0 且类别存在；跨过预算阈值时发送提醒邮件",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["消费记录"],
                "summary": "创建消费记录",
                "parameters": [
                    {"description": "消费记录信息", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.ExpenseRequest"}}
                ],
                "responses": {
                    "200": {"description": "创建成功", "schema": {"$ref": "#/definitions/api.Response"}},
                    "400": {"description": "请求参数错误", "schema": {"$ref": "#/definitions/api.Response"}},
                    "500": {"description": "创建失败", "schema": {"$ref": "#/definitions/api.Response"}}
                }
            }
        },
        "/api/v1/expenses/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["消费记录"],
                "summary": "获取单条消费记录",
                "parameters": [
                    {"type": "integer", "description": "消费记录ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "获取成功", "schema": {"$ref": "#/definitions/api.Response"}},
                    "404": {"description": "记录不存在", "schema": {"$ref": "#/definitions/api.Response"}}
                }
            },
            "put": {
                "description": "按 ID 覆盖消费记录的类别、金额、描述和日期",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["消费记录"],
                "summary": "更新消费记录",
                "parameters": [
                    {"type": "integer", "description": "消费记录ID", "name": "id", "in": "path", "required": true},
                    {"description": "消费记录信息", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.ExpenseRequest"}}
                ],
                "responses": {
                    "200": {"description": "更新成功", "schema": {"$ref": "#/definitions/api.Response"}},
                    "400": {"description": "请求参数错误", "schema": {"$ref": "#/definitions/api.Response"}},
                    "404": {"description": "记录不存在", "schema": {"$ref": "#/definitions/api.Response"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["消费记录"],
                "summary": "删除消费记录",
                "parameters": [
                    {"type": "integer", "description": "消费记录ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "删除成功", "schema": {"$ref": "#/definitions/api.Response"}},
                    "404": {"description": "记录不存在", "schema": {"$ref": "#/definitions/api.Response"}}
                }
            }
        }
    },
    "definitions": {
        "api.CategoryRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "budget": {"type": "string", "example": "300.00"},
                "color": {"description": "颜色代码，默认 #4CAF50", "type": "string", "maxLength": 20, "example": "#4CAF50"},
                "name": {"type": "string", "maxLength": 100, "example": "餐饮"}
            }
        },
        "api.ExpenseRequest": {
            "type": "object",
            "required": ["category_id", "date"],
            "properties": {
                "amount": {"type": "string", "example": "99.99"},
                "category_id": {"type": "integer", "example": 1},
                "date": {"type": "string", "example": "2024-05-03"},
                "description": {"type": "string", "example": "午餐"}
            }
        },
        "api.Response": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "data": {},
                "message": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "预算助手 API",
	Description:      "个人预算记账 API，支持预算类别、消费记录管理和月度仪表盘",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
