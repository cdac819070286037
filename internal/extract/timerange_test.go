package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestYsEventStart(t *testing.T) {
	// 正文直接写了完整日期
	content := `<p>〓活动时间〓</p><p>2025/01/15 10:00 ~ 2025/02/03 03:59</p>`
	assert.Equal(t, "2025/01/15 10:00", YsEventStart(content))

	// 随版本开启的活动：跳过日期正则，走小节标题策略
	content = `<p>〓获取奖励时限〓</p><p>5.2版本更新后 ~ 2025/02/03 03:59</p>`
	assert.Equal(t, "5.2版本更新后", YsEventStart(content))

	// 小节段落没有波浪线时整段返回
	content = `<p>〓活动时间〓</p><p>5.2版本期间持续开放</p>`
	assert.Equal(t, "5.2版本期间持续开放", YsEventStart(content))

	// 没有任何时间小节
	assert.Equal(t, "", YsEventStart("<p>活动详情见游戏内</p>"))
}

func TestYsGachaStart(t *testing.T) {
	// 祈愿表格，时间在rowspan单元格里的span中
	content := `<table><tr><td rowspan="3"><p><span>5.2版本更新后</span></p><t><span>~</span></t><p><span>2025/02/03 17:59</span></p></td></tr></table>`
	assert.Equal(t, "5.2版本更新后", YsGachaStart(content))

	// rowspan=5 的排版同样命中
	content = `<table><tr><td rowspan="5"><p>2025/01/15 18:00 ~ 2025/02/03 14:59</p></td></tr></table>`
	assert.Equal(t, "2025/01/15 18:00", YsGachaStart(content))

	// 没有表格
	assert.Equal(t, "", YsGachaStart("<p>正文</p>"))
}

func TestSrEventStart(t *testing.T) {
	content := `<h1 style="x">活动时间</h1><p>2025/01/15 12:00:00 - 2025/02/03 14:59:59</p>`
	assert.Equal(t, "2025/01/15 12:00:00", SrEventStart(content))

	// 转义的富文本标签被剥掉
	content = `<h1>限时活动期</h1><p>&lt;t class="t_lc"&gt;2025/01/15 12:00:00&lt;/t&gt; - 2025/02/03 14:59:59</p>`
	assert.Equal(t, "2025/01/15 12:00:00", SrEventStart(content))

	assert.Equal(t, "", SrEventStart("<h1>活动奖励</h1><p>星琼*300</p>"))
}

func TestSrGachaStart(t *testing.T) {
	content := `<p>时间为2025/01/15 12:00:00 - 2025/02/05 11:59:59，包含如下内容</p>`
	assert.Equal(t, "2025/01/15 12:00:00", SrGachaStart(content))

	assert.Equal(t, "", SrGachaStart("<p>活动说明</p>"))
}

func TestZzzEventRange(t *testing.T) {
	content := `<p>【活动时间】</p><p>2025/01/15 06:00:00（服务器时间）~2025/02/03 03:59:59（服务器时间）</p>`
	r := ZzzEventRange(content)
	assert.Equal(t, "2025/01/15 06:00:00", r.Start)
	assert.Equal(t, "2025/02/03 03:59:59", r.End)

	// 标签段落缺失
	assert.Equal(t, TimeRange{}, ZzzEventRange("<p>正文</p>"))
}

func TestZzzGachaRange(t *testing.T) {
	content := `<table><tr><td>期数</td></tr><tr><td rowspan="2"><p>2025/01/15 12:00:00</p><p>~</p><p>2025/02/05 11:59:59</p></td><td>代理人</td></tr></table>`
	r, err := ZzzGachaRange(content)
	assert.NoError(t, err)
	assert.Equal(t, "2025/01/15 12:00:00", r.Start)
	assert.Equal(t, "2025/02/05 11:59:59", r.End)

	// 正文缺表格是错误：调用方据此跳过该条公告
	_, err = ZzzGachaRange("<p>调频说明</p>")
	assert.Error(t, err)
}

func TestWwEventRange(t *testing.T) {
	content := `<div>✦活动时间✦</div><div>2025年1月15日10:00 ~ 2025年2月3日5:59（服务器时间）</div>`
	r := WwEventRange(content)
	assert.Equal(t, "2025年1月15日10:00", r.Start)
	assert.Equal(t, "2025年2月3日5:59", r.End)

	// 只有开始时间
	content = `<div>✦活动时间✦</div><div>1.4版本更新后开启</div>`
	r = WwEventRange(content)
	assert.Equal(t, "1.4版本更新后开启", r.Start)
	assert.Equal(t, "", r.End)

	assert.Equal(t, TimeRange{}, WwEventRange("<div>活动说明</div>"))
}
