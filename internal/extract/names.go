package extract

import (
	"regexp"
	"strings"
)

// 各游戏卡池公告里实体名（角色/武器/音擎/光锥）的括号约定不同，
// 逐游戏用固定正则提取。提取永不失败：没有命中时返回占位词并以 ok=false 标记。

var (
	zzzAgentPattern   = regexp.MustCompile(`限定S级代理人.*?\[(.*?)\(.*?\)\]`)
	zzzWeaponPattern  = regexp.MustCompile(`限定S级音擎.*?\[(.*?)\(.*?\)\]`)
	zzzChannelPattern = regexp.MustCompile(`「([^」]+)」调频活动`)

	srPoolPattern      = regexp.MustCompile(`<h1[^>]*>「([^」]+)」[^<]*活动跃迁</h1>`)
	srCharacterPattern = regexp.MustCompile(`限定5星角色「([^（」]+)`)
	srLightConePattern = regexp.MustCompile(`限定5星光锥「([^（」]+)`)

	ysWeaponPattern    = regexp.MustCompile(`「[^」]*·([^」]*)」`)
	ysPoolPattern      = regexp.MustCompile(`「([^」]+)」祈愿`)
	ysCharacterPattern = regexp.MustCompile(`·(.*)\(`)
)

// 音擎专属调频活动名，重命名调频标题时排除
var zzzWEngineChannels = map[string]struct{}{
	"喧哗奏鸣": {},
	"激荡谐振": {},
	"灿烂和声": {},
}

func findAllGroup1(pattern *regexp.Regexp, s string) []string {
	var out []string
	for _, m := range pattern.FindAllStringSubmatch(s, -1) {
		out = append(out, m[1])
	}
	return out
}

// ZzzAgentNames 限定S级代理人名，去重保序
func ZzzAgentNames(content string) []string {
	return DedupPreserveOrder(findAllGroup1(zzzAgentPattern, content))
}

// ZzzWeaponNames 限定S级音擎名，去重保序
func ZzzWeaponNames(content string) []string {
	return DedupPreserveOrder(findAllGroup1(zzzWeaponPattern, content))
}

// ZzzChannelNames 调频活动名（剔除音擎专属卡池名），去重保序
func ZzzChannelNames(content string) []string {
	var names []string
	for _, name := range findAllGroup1(zzzChannelPattern, content) {
		if _, isWEngine := zzzWEngineChannels[name]; !isWEngine {
			names = append(names, name)
		}
	}
	return DedupPreserveOrder(names)
}

// SrPoolNames 跃迁卡池名。带“•”的是光锥池（剔除），
// “铭心之萃”系列取“•”前半段。去重保序。
func SrPoolNames(content string) []string {
	var names []string
	for _, name := range findAllGroup1(srPoolPattern, content) {
		switch {
		case !strings.Contains(name, "•"):
			names = append(names, name)
		case strings.Contains(name, "铭心之萃"):
			names = append(names, strings.SplitN(name, "•", 2)[0])
		}
	}
	return DedupPreserveOrder(names)
}

// SrFiveStarCharacters 限定5星角色名，去重保序
func SrFiveStarCharacters(content string) []string {
	return DedupPreserveOrder(findAllGroup1(srCharacterPattern, content))
}

// SrFiveStarLightCones 限定5星光锥名，去重保序
func SrFiveStarLightCones(content string) []string {
	return DedupPreserveOrder(findAllGroup1(srLightConePattern, content))
}

// YsWeaponNames 神铸赋形武器祈愿里的武器名
func YsWeaponNames(title string) []string {
	return findAllGroup1(ysWeaponPattern, title)
}

// YsPoolName 祈愿卡池名（「…」祈愿）
func YsPoolName(title string) (string, bool) {
	m := ysPoolPattern.FindStringSubmatch(title)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// YsCharacterName 角色祈愿标题里的角色名（·与(之间）
func YsCharacterName(title string) (string, bool) {
	m := ysCharacterPattern.FindStringSubmatch(title)
	if m == nil {
		return "", false
	}
	return m[1], true
}
