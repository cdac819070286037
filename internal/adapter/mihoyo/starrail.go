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

	"github.com/sirupsen/logrus"
)

func init() {
	adapter.Register(model.GameStarRail, NewStarRailAdapter)
}

// StarRailAdapter 崩坏：星穹铁道公告适配器。
// 活动与跃迁走图片公告列表（pic_list），普通公告列表只出版本与部分活动。
type StarRailAdapter struct {
	client *client
	logger *logrus.Logger
	cycle  adapter.CycleContext
}

func NewStarRailAdapter(cfg *config.GameConfig, logger *logrus.Logger) interfaces.GameAdapter {
	return &StarRailAdapter{
		client: newClient(cfg, logger),
		logger: logger,
		cycle:  adapter.NewCycleContext(),
	}
}

func (a *StarRailAdapter) Game() model.GameType { return model.GameStarRail }

func (a *StarRailAdapter) FetchAnnouncements(ctx context.Context) ([]*model.Announcement, error) {
	list, err := a.client.fetchList(ctx)
	if err != nil {
		return nil, fmt.Errorf("星穹铁道: %w", err)
	}
	contentMap, picContentMap, err := a.client.fetchContents(ctx)
	if err != nil {
		return nil, fmt.Errorf("星穹铁道: %w", err)
	}

	var anns []*model.Announcement

	// 版本公告（每周期预期至多一条，取列表序第一条）
version:
	for _, group := range list.Data.List {
		if group.TypeLabel != "公告" {
			continue
		}
		for _, item := range group.List {
			cleanTitle := extract.StripTags(item.Title)
			if !strings.Contains(cleanTitle, "版本更新说明") {
				continue
			}
			versionNow, ok := extract.FirstVersionNumber(cleanTitle)
			if !ok {
				continue
			}
			a.cycle.TrackVersion(versionNow, item.StartTime)

			ann := &model.Announcement{
				Game:        model.GameStarRail,
				Title:       "崩坏：星穹铁道 " + versionNow + " 版本",
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

	// 普通公告列表里的活动
	for _, group := range list.Data.List {
		if group.TypeLabel != "公告" {
			continue
		}
		for _, item := range group.List {
			content, ok := contentMap[item.AnnID]
			if !ok {
				continue
			}
			cleanTitle := extract.StripTags(item.Title)
			// 版本公告已在上一趟改写入流，这里不再按活动重复产出
			if strings.Contains(cleanTitle, "版本更新说明") {
				continue
			}
			if !classify.TitleFilter(model.GameStarRail, cleanTitle) {
				continue
			}
			anns = append(anns, a.buildEvent(item, content, cleanTitle, item.Banner))
		}
	}

	// 图片公告列表里的活动与跃迁
	for _, group := range list.Data.PicList {
		for _, typeGroup := range group.TypeList {
			for _, item := range typeGroup.List {
				content, ok := picContentMap[item.AnnID]
				if !ok {
					a.logger.WithField("ann_id", item.AnnID).Warn("星穹铁道图片公告缺少正文，跳过")
					continue
				}
				cleanTitle := extract.StripTags(item.Title)
				switch {
				case classify.TitleFilter(model.GameStarRail, cleanTitle):
					anns = append(anns, a.buildEvent(item, content, cleanTitle, item.Img))
				case strings.Contains(cleanTitle, "跃迁"):
					anns = append(anns, a.buildGacha(item, content, cleanTitle))
				}
			}
		}
	}

	return anns, nil
}

func (a *StarRailAdapter) buildEvent(item model.MihoyoAnnItem, content model.MihoyoContentItem, cleanTitle, banner string) *model.Announcement {
	ann := &model.Announcement{
		Game:        model.GameStarRail,
		Title:       cleanTitle,
		EventType:   model.EventTypeEvent,
		StartTime:   item.StartTime,
		EndTime:     item.EndTime,
		BannerImage: banner,
	}

	startText := extract.SrEventStart(content.Content)
	if a.cycle.VersionRelative(startText) {
		ann.StartTime = a.cycle.VersionBeginTime
	} else if formatted, ok := extract.ReformatTime(startText, extract.LayoutMihoyoTS); ok {
		ann.StartTime = formatted
	}

	annotate(a.logger, ann, item.Raw)
	return ann
}

func (a *StarRailAdapter) buildGacha(item model.MihoyoAnnItem, content model.MihoyoContentItem, cleanTitle string) *model.Announcement {
	pools := extract.SrPoolNames(content.Content)
	entities := append(extract.SrFiveStarCharacters(content.Content), extract.SrFiveStarLightCones(content.Content)...)

	title := cleanTitle
	if len(pools) > 0 && len(entities) > 0 {
		title = "【" + strings.Join(pools, ", ") + "】角色、光锥跃迁: " + strings.Join(entities, ", ")
	}

	ann := &model.Announcement{
		Game:        model.GameStarRail,
		Title:       title,
		EventType:   model.EventTypeGacha,
		StartTime:   item.StartTime,
		EndTime:     item.EndTime,
		BannerImage: item.Img,
	}

	startText := extract.SrGachaStart(content.Content)
	if a.cycle.VersionRelative(startText) {
		ann.StartTime = a.cycle.VersionBeginTime
	} else if formatted, ok := extract.ReformatTime(startText, extract.LayoutMihoyoTS); ok {
		ann.StartTime = formatted
	}

	annotate(a.logger, ann, item.Raw)
	return ann
}
