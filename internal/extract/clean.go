package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// TimeLayout 全库统一的时间文本格式
const TimeLayout = "2006-01-02 15:04:05"

// 各游戏公告正文里出现的日期写法
const (
	LayoutGenshin  = "2006/01/02 15:04"
	LayoutMihoyoTS = "2006/01/02 15:04:05" // 星铁与绝区零带秒
	LayoutWuWa     = "2006年1月2日15:04"
)

var (
	tagPattern   = regexp.MustCompile(`<.*?>`)
	floatPattern = regexp.MustCompile(`-?\d+\.\d+`)
)

// StripTags 去掉字符串中嵌入的markup标签并去除首尾空白
func StripTags(s string) string {
	return strings.TrimSpace(tagPattern.ReplaceAllString(s, ""))
}

// CleanText 解析HTML片段并返回纯文本（含实体解码），失败时退回正则去标签
func CleanText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return StripTags(html)
	}
	return strings.TrimSpace(doc.Text())
}

// VersionNumbers 提取文本中的全部十进制小数（如 "5.2"），保持出现顺序
func VersionNumbers(s string) []string {
	var versions []string
	for _, m := range floatPattern.FindAllString(s, -1) {
		f, err := strconv.ParseFloat(m, 64)
		if err != nil {
			continue
		}
		// 归一版本号写法："5.20"→"5.2"，但至少保留一位小数："5.0"不缩成"5"
		v := strconv.FormatFloat(f, 'f', -1, 64)
		if !strings.Contains(v, ".") {
			v += ".0"
		}
		versions = append(versions, v)
	}
	return versions
}

// FirstVersionNumber 标题中的第一个版本号
func FirstVersionNumber(s string) (string, bool) {
	versions := VersionNumbers(s)
	if len(versions) == 0 {
		return "", false
	}
	return versions[0], true
}

// ReformatTime 按给定布局解析公告里的时间文本（先清洗markup），
// 秒归零后转为统一格式。解析失败返回 ("", false)。
func ReformatTime(raw, layout string) (string, bool) {
	t, err := time.ParseInLocation(layout, CleanText(raw), time.Local)
	if err != nil {
		return "", false
	}
	t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
	return t.Format(TimeLayout), true
}

// FormatMillis 毫秒时间戳转统一时间格式
func FormatMillis(ms int64) string {
	return time.UnixMilli(ms).Format(TimeLayout)
}

// DedupPreserveOrder 去重并保持首次出现顺序
func DedupPreserveOrder(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}
