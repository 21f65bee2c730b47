package cmd

import (
	"fmt"

	"budget/config"
	"budget/service"

	"github.com/spf13/cobra"
)

func emailTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "email-test <addr>",
		Short: "发送一封测试邮件",
		Long:  `按当前配置向指定地址发送测试邮件，用于确认预算提醒能够送达。`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("加载配置失败: %w", err)
			}
			if err := service.NewEmailService(&cfg.Email).SendTestEmail(args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), titleStyle.Render("✅ 测试邮件已发送至 "+args[0]))
			return nil
		},
	}
}
