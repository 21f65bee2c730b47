package cmd

import (
	"fmt"
	"log"
	"strings"

	"budget/config"
	"budget/database"
	"budget/router"

	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "启动 HTTP 服务",
		RunE: func(cmd *cobra.Command, args []string) error {
			// 加载配置（内置配置 + 可选的外部配置覆盖）
			cfg, err := config.LoadConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("加载配置失败: %w", err)
			}

			// 命令行参数覆盖端口配置
			if port != "" {
				// 自动添加冒号前缀
				if !strings.HasPrefix(port, ":") {
					port = ":" + port
				}
				cfg.Server.Port = port
				log.Printf("命令行指定端口: %s", port)
			}

			config.PrintConfig()

			if err := database.Init(cfg); err != nil {
				return fmt.Errorf("数据库初始化失败: %w", err)
			}
			defer database.Close()

			r := router.SetupRouter(cfg)

			log.Printf("==========================================")
			log.Printf("  💰 预算助手已启动")
			log.Printf("==========================================")
			log.Printf("  Swagger:  http://localhost%s/swagger/index.html", cfg.Server.Port)
			log.Printf("  API接口:  http://localhost%s/api/v1/", cfg.Server.Port)
			log.Printf("==========================================")

			if err := r.Run(cfg.Server.Port); err != nil {
				return fmt.Errorf("服务器启动失败: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "监听端口，如: 8080 或 :8080")
	return cmd
}
