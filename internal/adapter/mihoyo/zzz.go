package mihoyo

import (
	"context"
	"fmt"
	"strings"

	"AnnSync/internal/adapter"
	"AnnSync/internal/classify"
	"AnnSync/internal/config"
	"AnnSync/internal/extract"
	"AnnSync/internal/interfaces"
	"AnnSync/internal/model"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
)

func init() {
	adapter.Register(model.GameZZZ, NewZZZAdapter)
}

// ZZZAdapter 绝区零公告适配器
type ZZZAdapter struct {
	client *client
	logger *logrus.Logger
	cycle  adapter.CycleContext
}

func NewZZZAdapter(cfg *config.GameConfig, logger *logrus.Logger) interfaces.GameAdapter {
	return &ZZZAdapter{
		client: newClient(cfg, logger),
		logger: logger,
		cycle:  adapter.NewCycleContext(),
	}
}

func (a *ZZZAdapter) Game() model.GameType { return model.GameZZZ }

func (a *ZZZAdapter) FetchAnnouncements(ctx context.Context) ([]*model.Announcement, error) {
	list, err := a.client.fetchList(ctx)
	if err != nil {
		return nil, fmt.Errorf("绝区零: %w", err)
	}
	contentMap, _, err := a.client.fetchContents(ctx)
	if err != nil {
		return nil, fmt.Errorf("绝区零: %w", err)
	}

	var anns []*model.Announcement

	// 版本公告
version:
	for _, group := range list.Data.List {
		if group.TypeLabel != "游戏公告" {
			continue
		}
		for _, item := range group.List {
			cleanTitle := extract.StripTags(item.Title)
			if !strings.Contains(cleanTitle, "更新说明") || !strings.Contains(cleanTitle, "版本") {
				continue
			}
			versionNow, ok := extract.FirstVersionNumber(cleanTitle)
			if !ok {
				continue
			}
			a.cycle.TrackVersion(versionNow, item.StartTime)

			ann := &model.Announcement{
				Game:        model.GameZZZ,
				Title:       "绝区零 " + versionNow + " 版本",
				EventType:   model.EventTypeVersion,
				StartTime:   item.StartTime,
				EndTime:     item.EndTime,
				BannerImage: item.Banner,
			}
			annotate(a.logger, ann, item.Raw)
			anns = append(anns, ann)
			break version
		}
	}

	// 活动与调频公告（type_id=4 组）
	for _, group := range list.Data.List {
		if group.TypeID != 4 {
			continue
		}
		for _, item := range group.List {
			content, ok := contentMap[item.AnnID]
			if !ok {
				a.logger.WithField("ann_id", item.AnnID).Warn("绝区零公告缺少正文，跳过")
				continue
			}
			cleanTitle := extract.StripTags(item.Title)

			switch {
			case classify.TitleFilter(model.GameZZZ, cleanTitle) && !strings.Contains(content.Content, "累计登录7天"):
				anns = append(anns, a.buildEvent(item, content, cleanTitle))
			case strings.Contains(cleanTitle, "限时频段"):
				gacha, err := a.buildGacha(item, content, cleanTitle)
				if err != nil {
					// 单条公告正文结构异常只跳过该条
					a.logger.WithError(err).WithField("title", cleanTitle).Warn("绝区零调频公告解析失败，跳过")
					continue
				}
				anns = append(anns, gacha)
			}
		}
	}

	return anns, nil
}

func (a *ZZZAdapter) buildEvent(item model.MihoyoAnnItem, content model.MihoyoContentItem, cleanTitle string) *model.Announcement {
	ann := &model.Announcement{
		Game:        model.GameZZZ,
		Title:       cleanTitle,
		EventType:   model.EventTypeEvent,
		StartTime:   item.StartTime,
		EndTime:     item.EndTime,
		BannerImage: item.Banner,
	}
	a.applyRange(ann, extract.ZzzEventRange(content.Content))
	annotate(a.logger, ann, item.Raw)
	return ann
}

func (a *ZZZAdapter) buildGacha(item model.MihoyoAnnItem, content model.MihoyoContentItem, cleanTitle string) (*model.Announcement, error) {
	timeRange, err := extract.ZzzGachaRange(content.Content)
	if err != nil {
		return nil, err
	}

	channels := extract.ZzzChannelNames(content.Content)
	// 只拼实际命中的名字，缺了哪边就不写哪边
	names := append(extract.ZzzAgentNames(content.Content), extract.ZzzWeaponNames(content.Content)...)

	title := cleanTitle
	if len(channels) > 0 && len(names) > 0 {
		title = "【" + strings.Join(channels, ", ") + "】代理人、音擎调频: " + strings.Join(extract.DedupPreserveOrder(names), ", ")
	}

	banner := item.Banner
	if banner == "" {
		banner = firstImageSrc(content.Content)
	}

	ann := &model.Announcement{
		Game:        model.GameZZZ,
		Title:       title,
		EventType:   model.EventTypeGacha,
		StartTime:   item.StartTime,
		EndTime:     item.EndTime,
		BannerImage: banner,
	}
	a.applyRange(ann, timeRange)
	annotate(a.logger, ann, item.Raw)
	return ann, nil
}

// applyRange 按正文提取结果覆盖起止时间。
// 起始写“x.y版本”时取跟踪的版本开始时间；字面日期解析失败保留列表自带时间。
func (a *ZZZAdapter) applyRange(ann *model.Announcement, timeRange extract.TimeRange) {
	if a.cycle.VersionRelative(timeRange.Start) {
		ann.StartTime = a.cycle.VersionBeginTime
		if formatted, ok := extract.ReformatTime(timeRange.End, extract.LayoutMihoyoTS); ok {
			ann.EndTime = formatted
		}
		return
	}
	if formatted, ok := extract.ReformatTime(timeRange.Start, extract.LayoutMihoyoTS); ok {
		ann.StartTime = formatted
		if formattedEnd, ok := extract.ReformatTime(timeRange.End, extract.LayoutMihoyoTS); ok {
			ann.EndTime = formattedEnd
		}
	}
}

// firstImageSrc 头图缺失时取正文里的第一张图
func firstImageSrc(content string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return ""
	}
	src, _ := doc.Find("img").First().Attr("src")
	return src
}
