package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStripTags(t *testing.T) {
	assert.Equal(t, "2025/01/15 10:00", StripTags("<span style=\"color:#000\">2025/01/15 10:00</span>"))
	assert.Equal(t, "无标签文本", StripTags("  无标签文本  "))
}

func TestCleanText(t *testing.T) {
	// 实体解码 + 去标签
	assert.Equal(t, "2025/01/15 10:00", CleanText("<p>2025/01/15&nbsp;10:00</p>"))
}

func TestVersionNumbers(t *testing.T) {
	// 保持出现顺序
	assert.Equal(t, []string{"5.2", "5.3"}, VersionNumbers("5.2版本更新至5.3版本"))

	// "5.20" 与 "5.2" 归一为同一写法
	assert.Equal(t, []string{"5.2"}, VersionNumbers("「5.20」版本"))

	// 整数版本保留一位小数："5.0" 不缩成 "5"
	assert.Equal(t, []string{"5.0"}, VersionNumbers("原神5.0版本更新说明"))

	// 没有小数
	assert.Empty(t, VersionNumbers("全新活动开启"))
}

func TestFirstVersionNumber(t *testing.T) {
	v, ok := FirstVersionNumber("原神5.2版本更新说明")
	assert.True(t, ok)
	assert.Equal(t, "5.2", v)

	_, ok = FirstVersionNumber("版本更新说明")
	assert.False(t, ok)
}

func TestReformatTime(t *testing.T) {
	// 原神布局，分钟后补零秒
	got, ok := ReformatTime("2025/01/15 10:00", LayoutGenshin)
	assert.True(t, ok)
	assert.Equal(t, "2025-01-15 10:00:00", got)

	// 星铁布局带秒，秒归零
	got, ok = ReformatTime("2025/01/15 11:59:59", LayoutMihoyoTS)
	assert.True(t, ok)
	assert.Equal(t, "2025-01-15 11:59:00", got)

	// 鸣潮的中文日期，月日不补零
	got, ok = ReformatTime("2025年1月2日10:00", LayoutWuWa)
	assert.True(t, ok)
	assert.Equal(t, "2025-01-02 10:00:00", got)

	// 时间文本外层包着span也能解析
	got, ok = ReformatTime("<span>2025/01/15 10:00</span>", LayoutGenshin)
	assert.True(t, ok)
	assert.Equal(t, "2025-01-15 10:00:00", got)

	// 版本相对措辞不是字面日期，解析失败
	_, ok = ReformatTime("5.2版本更新后", LayoutGenshin)
	assert.False(t, ok)
}

func TestFormatMillis(t *testing.T) {
	ms := int64(1736907600000)
	assert.Equal(t, time.UnixMilli(ms).Format(TimeLayout), FormatMillis(ms))
}

func TestDedupPreserveOrder(t *testing.T) {
	assert.Equal(t, []string{"b", "a", "c"}, DedupPreserveOrder([]string{"b", "a", "b", "c", "a"}))
}
