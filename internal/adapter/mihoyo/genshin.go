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
	adapter.Register(model.GameGenshin, NewGenshinAdapter)
}

// GenshinAdapter 原神公告适配器
type GenshinAdapter struct {
	client *client
	logger *logrus.Logger
	cycle  adapter.CycleContext
}

func NewGenshinAdapter(cfg *config.GameConfig, logger *logrus.Logger) interfaces.GameAdapter {
	return &GenshinAdapter{
		client: newClient(cfg, logger),
		logger: logger,
		cycle:  adapter.NewCycleContext(),
	}
}

func (a *GenshinAdapter) Game() model.GameType { return model.GameGenshin }

func (a *GenshinAdapter) FetchAnnouncements(ctx context.Context) ([]*model.Announcement, error) {
	list, err := a.client.fetchList(ctx)
	if err != nil {
		return nil, fmt.Errorf("原神: %w", err)
	}
	contentMap, _, err := a.client.fetchContents(ctx)
	if err != nil {
		return nil, fmt.Errorf("原神: %w", err)
	}

	var anns []*model.Announcement

	// 版本公告：官方公告组里第一条“版本更新说明”确定本周期的版本号与版本开始时间
version:
	for _, group := range list.Data.List {
		if group.TypeLabel != "游戏公告" {
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
				Game:        model.GameGenshin,
				Title:       "原神 " + versionNow + " 版本",
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

	// 活动与祈愿公告
	for _, group := range list.Data.List {
		if group.TypeLabel != "活动公告" {
			continue
		}
		for _, item := range group.List {
			content, ok := contentMap[item.AnnID]
			if !ok {
				a.logger.WithField("ann_id", item.AnnID).Warn("原神公告缺少正文，跳过")
				continue
			}
			cleanTitle := extract.StripTags(item.Title)

			switch {
			case strings.Contains(cleanTitle, "时限内") ||
				(item.TagLabel == "活动" && classify.TitleFilter(model.GameGenshin, cleanTitle)):
				anns = append(anns, a.buildEvent(item, content, cleanTitle))
			case item.TagLabel == "扭蛋":
				anns = append(anns, a.buildGacha(item, content))
			}
		}
	}

	return anns, nil
}

func (a *GenshinAdapter) buildEvent(item model.MihoyoAnnItem, content model.MihoyoContentItem, cleanTitle string) *model.Announcement {
	ann := &model.Announcement{
		Game:        model.GameGenshin,
		Title:       cleanTitle,
		EventType:   model.EventTypeEvent,
		StartTime:   item.StartTime,
		EndTime:     item.EndTime,
		BannerImage: item.Banner,
	}

	startText := extract.YsEventStart(content.Content)
	if a.cycle.VersionRelative(startText) {
		ann.StartTime = a.cycle.VersionBeginTime
	} else if formatted, ok := extract.ReformatTime(startText, extract.LayoutGenshin); ok {
		ann.StartTime = formatted
	}

	annotate(a.logger, ann, item.Raw)
	return ann
}

func (a *GenshinAdapter) buildGacha(item model.MihoyoAnnItem, content model.MihoyoContentItem) *model.Announcement {
	ann := &model.Announcement{
		Game:        model.GameGenshin,
		Title:       renameGenshinGacha(content.Title),
		EventType:   model.EventTypeGacha,
		StartTime:   item.StartTime,
		EndTime:     item.EndTime,
		BannerImage: content.Banner,
	}

	startText := extract.YsGachaStart(content.Content)
	if a.cycle.VersionRelative(startText) {
		ann.StartTime = a.cycle.VersionBeginTime
	} else if formatted, ok := extract.ReformatTime(startText, extract.LayoutGenshin); ok {
		ann.StartTime = formatted
	}

	annotate(a.logger, ann, item.Raw)
	return ann
}

// renameGenshinGacha 把祈愿公告标题改写成“卡池+实体名”的短格式。
// 提取不到实体名时保留原标题。
func renameGenshinGacha(title string) string {
	if !strings.Contains(title, "祈愿") {
		return title
	}
	switch {
	case strings.Contains(title, "神铸赋形"):
		if weapons := extract.YsWeaponNames(title); len(weapons) > 0 {
			return "【神铸赋形】武器祈愿: " + strings.Join(weapons, ", ")
		}
	case strings.Contains(title, "集录"):
		if pool, ok := extract.YsPoolName(title); ok {
			return "【" + pool + "】集录祈愿"
		}
	default:
		character, okChar := extract.YsCharacterName(title)
		pool, okPool := extract.YsPoolName(title)
		if okChar && okPool {
			return "【" + pool + "】角色祈愿: " + character
		}
	}
	return title
}
