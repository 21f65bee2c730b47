package main

import "budget/cmd"

// @title 预算助手 API
// @version 1.0
// @description 个人预算记账 API，支持预算类别、消费记录管理和月度仪表盘
// @host localhost:8080
// @BasePath /

func main() {
	cmd.Execute()
}
