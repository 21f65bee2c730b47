package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"budget/config"
	"budget/database"
	"budget/service"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4CAF50"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	overStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
)

const (
	progressWidth = 20
	columnGap     = 2
)

func summaryCmd() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "打印月度预算汇总",
		Long:  `读取全部类别和消费记录，打印指定月份的总预算、总支出和各类别使用情况。`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := service.CurrentMonth(time.Now())
			if month != "" {
				parsed, err := service.ParseMonth(month)
				if err != nil {
					return err
				}
				m = parsed
			}

			cfg, err := config.LoadConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("加载配置失败: %w", err)
			}
			db, err := database.Open(cfg)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}
			if err := database.Migrate(db); err != nil {
				return fmt.Errorf("迁移数据库失败: %w", err)
			}

			snap, err := service.NewGateway(db).Snapshot(cmd.Context())
			if err != nil {
				return err
			}
			renderDashboard(cmd.OutOrStdout(), service.BuildDashboard(snap.Categories, snap.Expenses, m))
			return nil
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "月份，如 2024-05（默认当月）")
	return cmd
}

// renderDashboard 以表格形式输出月度汇总
// 列宽按原始文本的显示宽度计算，先补齐空格再着色，避免 ANSI 转义干扰对齐
func renderDashboard(out io.Writer, d service.Dashboard) {
	fmt.Fprintln(out, titleStyle.Render("📊 "+d.Month+" 预算汇总"))
	fmt.Fprintf(out, "总预算: %s  已支出: %s  剩余: %s  笔数: %d  日均: %s  日预算: %s\n\n",
		d.TotalBudget.StringFixed(2), d.TotalSpent.StringFixed(2), d.Remaining.StringFixed(2),
		d.ExpenseCount, d.DailyAverage.StringFixed(2), d.DailyBudget.StringFixed(2))

	if len(d.Categories) == 0 {
		fmt.Fprintln(out, subtleStyle.Render("暂无类别，请先通过 API 创建类别"))
		return
	}

	rows := [][]string{{"类别", "预算", "已支出", "占比"}}
	for _, s := range d.Categories {
		rows = append(rows, []string{
			s.CategoryName,
			s.Budget.StringFixed(2),
			s.Spent.StringFixed(2),
			fmt.Sprintf("%.1f%%", s.Percentage),
		})
	}
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for c, cell := range row {
			if w := lipgloss.Width(cell); w > widths[c] {
				widths[c] = w
			}
		}
	}

	for i, row := range rows {
		var line strings.Builder
		for c, cell := range row {
			style := lipgloss.NewStyle()
			switch {
			case i == 0:
				style = headerStyle
			case c == len(row)-1 && d.Categories[i-1].OverBudget:
				style = overStyle
			}
			line.WriteString(style.Render(cell))
			line.WriteString(strings.Repeat(" ", widths[c]-lipgloss.Width(cell)+columnGap))
		}
		if i == 0 {
			line.WriteString(headerStyle.Render("进度"))
		} else {
			line.WriteString(progressBar(d.Categories[i-1].Progress))
		}
		fmt.Fprintln(out, line.String())
	}
}

// progressBar 把 0-100 的进度画成定宽条
func progressBar(progress float64) string {
	filled := int(progress / 100 * float64(progressWidth))
	if filled < 0 {
		filled = 0
	}
	if filled > progressWidth {
		filled = progressWidth
	}
	return strings.Repeat("█", filled) + subtleStyle.Render(strings.Repeat("░", progressWidth-filled))
}
