package service

import (
	"fmt"
	"time"
)

// MonthLayout 年月格式
const MonthLayout = "2006-01"

// Month 一个自然月
type Month struct {
	Year  int
	Month time.Month
}

// ParseMonth 解析 2006-01 格式的年月
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return Month{}, &ValidationError{Field: "month", Message: fmt.Sprintf("年月格式错误，应为 %s", MonthLayout)}
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// CurrentMonth 返回 now 所在的月份
func CurrentMonth(now time.Time) Month {
	return Month{Year: now.Year(), Month: now.Month()}
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Days 该月的天数
func (m Month) Days() int {
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
