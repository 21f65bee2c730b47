// Package cmd 命令行入口：serve 启动 HTTP 服务，summary 在终端打印月度汇总，email-test 检查邮件配置
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Version 构建时通过 -ldflags 注入
var Version = "1.0.0"

var cfgFile string

// NewRootCmd 创建根命令
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "budget",
		Short:         "💰 预算助手",
		Long:          `个人预算记账：按类别设置预算、记录消费，查看每月的预算使用情况。`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "外部配置文件路径（可选）")

	root.AddCommand(serveCmd())
	root.AddCommand(summaryCmd())
	root.AddCommand(emailTestCmd())
	root.AddCommand(versionCmd())
	return root
}

// Execute 运行根命令，收到中断信号时取消 context
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("错误: ")+err.Error())
		os.Exit(1)
	}
}
