package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// TimeRange 从公告正文里提取出的起止时间文本（尚未解析成时间类型）。
// End 为空表示正文只给了开始时间。
type TimeRange struct {
	Start string
	End   string
}

// timeStrategy 命名提取策略。各游戏的正文排版不止一种，
// 策略按声明顺序依次尝试，首个命中即停。
type timeStrategy struct {
	name string
	fn   func(content string) (TimeRange, bool)
}

func runStrategies(content string, strategies []timeStrategy) TimeRange {
	for _, s := range strategies {
		if r, ok := s.fn(content); ok {
			return r
		}
	}
	return TimeRange{}
}

var (
	ysDatetimePattern  = regexp.MustCompile(`\d{4}/\d{2}/\d{2} \d{2}:\d{2}`)
	srEventPattern     = regexp.MustCompile(`(?s)<h1[^>]*>(?:活动时间|限时活动期)</h1>\s*<p[^>]*>(.*?)</p>`)
	srGachaPattern     = regexp.MustCompile(`时间为(.*?)，包含如下内容`)
	escapedTagPattern  = regexp.MustCompile(`&lt;.*?&gt;`)
	whitespacePattern  = regexp.MustCompile(`\s+`)
	serverTimeZhSuffix = "（服务器时间）"
)

// ========== 原神 ==========

var ysEventStrategies = []timeStrategy{
	// 正文直接写了完整日期时
	{name: "datetime-regex", fn: func(content string) (TimeRange, bool) {
		if strings.Contains(content, "版本更新后") {
			// 随版本开启的活动没有字面日期，交给后续策略
			return TimeRange{}, false
		}
		if m := ysDatetimePattern.FindString(content); m != "" {
			return TimeRange{Start: m}, true
		}
		return TimeRange{}, false
	}},
	// “〓获取奖励时限〓/〓活动时间〓”小节标题后的第一个段落
	{name: "labeled-section", fn: func(content string) (TimeRange, bool) {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
		if err != nil {
			return TimeRange{}, false
		}
		for _, label := range []string{"〓获取奖励时限〓", "〓活动时间〓"} {
			if text, ok := paragraphAfterLabel(doc, label); ok {
				if strings.Contains(text, "~") {
					return TimeRange{Start: StripTags(strings.SplitN(text, "~", 2)[0])}, true
				}
				return TimeRange{Start: StripTags(text)}, true
			}
		}
		return TimeRange{}, false
	}},
}

// YsEventStart 原神活动公告的开始时间文本
func YsEventStart(content string) string {
	return runStrategies(content, ysEventStrategies).Start
}

// YsGachaStart 原神祈愿公告的开始时间文本。
// 祈愿正文是一张表格，时间在带rowspan的单元格里；不同期数的rowspan取值不同，按已知值依次尝试。
func YsGachaStart(content string) string {
	strategies := make([]timeStrategy, 0, 3)
	for _, rowspan := range []string{"3", "5", "9"} {
		rs := rowspan
		strategies = append(strategies, timeStrategy{
			name: "rowspan-" + rs,
			fn: func(content string) (TimeRange, bool) {
				return ysGachaCell(content, rs)
			},
		})
	}
	return runStrategies(content, strategies).Start
}

func ysGachaCell(content, rowspan string) (TimeRange, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return TimeRange{}, false
	}
	cell := doc.Find(fmt.Sprintf("td[rowspan='%s']", rowspan)).First()
	if cell.Length() == 0 {
		return TimeRange{}, false
	}
	var texts []string
	cell.Children().Each(func(_ int, child *goquery.Selection) {
		name := goquery.NodeName(child)
		if name != "p" && name != "t" {
			return
		}
		if span := child.Find("span").First(); span.Length() > 0 {
			texts = append(texts, span.Text())
		} else {
			texts = append(texts, child.Text())
		}
	})
	timeRange := strings.Join(texts, " ")
	if strings.Contains(timeRange, "~") {
		return TimeRange{Start: strings.TrimSpace(strings.SplitN(timeRange, "~", 2)[0])}, true
	}
	return TimeRange{Start: timeRange}, true
}

// ========== 崩坏：星穹铁道 ==========

// SrEventStart 星铁活动公告的开始时间文本（“活动时间/限时活动期”标题后的段落）
func SrEventStart(content string) string {
	m := srEventPattern.FindStringSubmatch(content)
	if m == nil {
		return ""
	}
	cleaned := escapedTagPattern.ReplaceAllString(m[1], "")
	if strings.Contains(cleaned, "-") {
		return strings.TrimSpace(strings.SplitN(cleaned, "-", 2)[0])
	}
	return cleaned
}

// SrGachaStart 星铁跃迁公告的开始时间文本（“时间为…，包含如下内容”句式）
func SrGachaStart(content string) string {
	m := srGachaPattern.FindStringSubmatch(content)
	if m == nil {
		return ""
	}
	timeRange := escapedTagPattern.ReplaceAllString(strings.TrimSpace(m[1]), "")
	if strings.Contains(timeRange, "-") {
		return strings.TrimSpace(strings.SplitN(timeRange, "-", 2)[0])
	}
	return timeRange
}

// ========== 绝区零 ==========

// ZzzEventRange 绝区零活动公告的起止时间（“【活动时间】”标签后的段落）
func ZzzEventRange(content string) TimeRange {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return TimeRange{}
	}
	text, ok := paragraphAfterContaining(doc, "【活动时间】")
	if !ok {
		return TimeRange{}
	}
	return splitTilde(text)
}

// ZzzGachaRange 绝区零调频公告的起止时间。
// 正文缺表格视为该条公告不可解析（调用方记录后跳过，不影响同批其他公告）。
func ZzzGachaRange(content string) (TimeRange, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return TimeRange{}, fmt.Errorf("解析调频公告正文失败: %w", err)
	}
	table := doc.Find("table").First()
	if table.Length() == 0 {
		return TimeRange{}, fmt.Errorf("调频公告正文缺少时间表格")
	}

	rows := table.Find("tr")
	if rows.Length() < 2 {
		return TimeRange{}, nil
	}
	// 时间在表头之后的行里，带rowspan的单元格跨多期活动
	timeCell := rows.Eq(1).Find("td[rowspan]").First()
	if timeCell.Length() == 0 {
		return TimeRange{}, nil
	}

	var texts []string
	timeCell.Find("p").Each(func(_ int, p *goquery.Selection) {
		texts = append(texts, strings.TrimSpace(p.Text()))
	})
	if len(texts) < 2 {
		return TimeRange{}, nil
	}
	return TimeRange{
		Start: whitespacePattern.ReplaceAllString(texts[0], " "),
		End:   whitespacePattern.ReplaceAllString(texts[len(texts)-1], " "),
	}, nil
}

// ========== 鸣潮 ==========

// WwEventRange 鸣潮公告的起止时间（“✦活动时间✦”标题div的下一个同级div）
func WwEventRange(content string) TimeRange {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return TimeRange{}
	}
	var text string
	doc.Find("div").EachWithBreak(func(_ int, div *goquery.Selection) bool {
		if !strings.Contains(ownText(div), "✦活动时间✦") {
			return true
		}
		sibling := div.NextAllFiltered("div").First()
		if sibling.Length() > 0 {
			text = strings.TrimSpace(sibling.Text())
		}
		return false
	})
	if text == "" {
		return TimeRange{}
	}
	return splitTilde(text)
}

// ========== 共用辅助 ==========

func splitTilde(text string) TimeRange {
	if strings.Contains(text, "~") {
		parts := strings.SplitN(text, "~", 2)
		return TimeRange{
			Start: strings.TrimSpace(strings.ReplaceAll(parts[0], serverTimeZhSuffix, "")),
			End:   strings.TrimSpace(strings.ReplaceAll(parts[1], serverTimeZhSuffix, "")),
		}
	}
	return TimeRange{Start: strings.TrimSpace(strings.ReplaceAll(text, serverTimeZhSuffix, ""))}
}

// paragraphAfterLabel 找到文本恰为label的段落，返回其后第一个段落的文本
func paragraphAfterLabel(doc *goquery.Document, label string) (string, bool) {
	return nextParagraph(doc, func(text string) bool { return text == label })
}

// paragraphAfterContaining 找到文本包含label的段落，返回其后第一个段落的文本
func paragraphAfterContaining(doc *goquery.Document, label string) (string, bool) {
	return nextParagraph(doc, func(text string) bool { return strings.Contains(text, label) })
}

func nextParagraph(doc *goquery.Document, match func(string) bool) (string, bool) {
	paragraphs := doc.Find("p")
	found, text := false, ""
	paragraphs.EachWithBreak(func(i int, p *goquery.Selection) bool {
		if !match(strings.TrimSpace(p.Text())) {
			return true
		}
		if i+1 < paragraphs.Length() {
			found = true
			text = strings.TrimSpace(paragraphs.Eq(i + 1).Text())
		}
		return false
	})
	return text, found
}

// ownText 元素自身直接包含的文本（不含子元素文本）
func ownText(s *goquery.Selection) string {
	if len(s.Nodes) == 0 {
		return ""
	}
	var sb strings.Builder
	for c := s.Nodes[0].FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}
