package adapter

import "strings"

// CycleContext 单个抓取周期内跟踪的版本状态。
// 部分活动公告不写字面日期，只写“x.y版本”开启，需要间接取当前版本的开始时间。
// 状态仅在一个周期内有效，随适配器实例创建与丢弃。
type CycleContext struct {
	VersionNow       string
	VersionBeginTime string
}

// NewCycleContext 周期初始状态（未发现版本公告时的兜底值）
func NewCycleContext() CycleContext {
	return CycleContext{
		VersionNow:       "1.0",
		VersionBeginTime: "2024-11-01 00:00:01",
	}
}

// VersionRelative 时间文本是否指“本版本开启时”而非字面日期
func (c *CycleContext) VersionRelative(timeText string) bool {
	return strings.Contains(timeText, c.VersionNow+"版本")
}

// TrackVersion 记录本周期发现的版本号与版本开始时间
func (c *CycleContext) TrackVersion(version, beginTime string) {
	c.VersionNow = version
	c.VersionBeginTime = beginTime
}
