package kuro

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"AnnSync/internal/adapter"
	"AnnSync/internal/classify"
	"AnnSync/internal/config"
	"AnnSync/internal/extract"
	"AnnSync/internal/interfaces"
	"AnnSync/internal/model"
	"AnnSync/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
)

func init() {
	adapter.Register(model.GameWuWa, NewWuWaAdapter)
}

// WuWaAdapter 鸣潮公告适配器。
// 列表一次给全量（notice.json），正文按条目的 contentPrefix 逐条再拉。
type WuWaAdapter struct {
	cfg        *config.GameConfig
	httpClient *http.Client
	logger     *logrus.Logger
	cycle      adapter.CycleContext
}

func NewWuWaAdapter(cfg *config.GameConfig, logger *logrus.Logger) interfaces.GameAdapter {
	return &WuWaAdapter{
		cfg:        cfg,
		httpClient: httpclient.NewHTTPClient(cfg, logger),
		logger:     logger,
		cycle:      adapter.NewCycleContext(),
	}
}

func (a *WuWaAdapter) Game() model.GameType { return model.GameWuWa }

func (a *WuWaAdapter) FetchAnnouncements(ctx context.Context) ([]*model.Announcement, error) {
	var notice model.KuroNotice
	if err := a.getJSON(ctx, a.cfg.ListURL, &notice); err != nil {
		return nil, fmt.Errorf("鸣潮: 获取公告列表失败: %w", err)
	}

	var anns []*model.Announcement

	// 版本公告
	for _, item := range notice.Game {
		cleanTitle := extract.StripTags(item.TitleZh())
		if !strings.Contains(cleanTitle, "版本内容说明") {
			continue
		}
		versionNow, ok := extract.FirstVersionNumber(cleanTitle)
		if !ok {
			continue
		}
		startTime := extract.FormatMillis(item.StartTimeMs)
		a.cycle.TrackVersion(versionNow, startTime)

		ann := &model.Announcement{
			Game:        model.GameWuWa,
			Title:       "鸣潮 " + versionNow + " 版本",
			EventType:   model.EventTypeVersion,
			StartTime:   startTime,
			EndTime:     extract.FormatMillis(item.EndTimeMs),
			BannerImage: item.BannerZh(),
		}
		a.annotate(ann, item.Raw)
		anns = append(anns, ann)
		break
	}

	// 活动与唤取公告（正文逐条拉取，单条失败只跳过该条）
	for _, item := range notice.Activity {
		cleanTitle := extract.StripTags(item.TitleZh())

		isEvent := classify.TitleFilter(model.GameWuWa, cleanTitle)
		isGacha := strings.Contains(cleanTitle, "唤取")
		if !isEvent && !isGacha {
			continue
		}

		content, err := a.fetchContent(ctx, item)
		if err != nil {
			a.logger.WithError(err).WithField("title", cleanTitle).Warn("鸣潮公告正文拉取失败，跳过")
			continue
		}

		if isEvent {
			anns = append(anns, a.buildEvent(item, content, cleanTitle))
		} else {
			anns = append(anns, a.buildGacha(item, content, cleanTitle))
		}
	}

	return anns, nil
}

func (a *WuWaAdapter) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("构造请求失败: %w", err)
	}
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("请求失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("非预期状态码: %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("解析响应失败: %w", err)
	}
	return nil
}

func (a *WuWaAdapter) fetchContent(ctx context.Context, item model.KuroAnnItem) (*model.KuroContent, error) {
	if len(item.ContentPrefix) == 0 {
		return nil, fmt.Errorf("公告缺少contentPrefix")
	}
	var content model.KuroContent
	if err := a.getJSON(ctx, item.ContentPrefix[0]+"zh-Hans.json", &content); err != nil {
		return nil, err
	}
	return &content, nil
}

func (a *WuWaAdapter) buildEvent(item model.KuroAnnItem, content *model.KuroContent, cleanTitle string) *model.Announcement {
	ann := &model.Announcement{
		Game:        model.GameWuWa,
		Title:       cleanTitle,
		EventType:   model.EventTypeEvent,
		StartTime:   extract.FormatMillis(item.StartTimeMs),
		EndTime:     extract.FormatMillis(item.EndTimeMs),
		BannerImage: item.BannerZh(),
	}
	a.applyRange(ann, extract.WwEventRange(content.TextContent))
	a.annotate(ann, item.Raw)
	return ann
}

func (a *WuWaAdapter) buildGacha(item model.KuroAnnItem, content *model.KuroContent, cleanTitle string) *model.Announcement {
	gachaKind := "共鸣者"
	if strings.Contains(cleanTitle, "浮声") {
		gachaKind = "武器"
	}

	ann := &model.Announcement{
		Game:        model.GameWuWa,
		Title:       renameWuWaGacha(content.TextTitle, gachaKind, cleanTitle),
		EventType:   model.EventTypeGacha,
		StartTime:   extract.FormatMillis(item.StartTimeMs),
		EndTime:     extract.FormatMillis(item.EndTimeMs),
		BannerImage: item.BannerZh(),
	}
	a.applyRange(ann, extract.WwEventRange(content.TextContent))
	a.annotate(ann, item.Raw)
	return ann
}

// renameWuWaGacha 唤取标题改写为“【卡池】<类别>唤取: 实体名”，
// 正文标题不含预期括号约定时保留原标题。
func renameWuWaGacha(textTitle, gachaKind, fallback string) string {
	pool := between(textTitle, "[", "]")
	entity := between(textTitle, "「", "」")
	if pool == "" || entity == "" {
		return fallback
	}
	return "【" + pool + "】" + gachaKind + "唤取: " + entity
}

func between(s, open, close string) string {
	_, after, ok := strings.Cut(s, open)
	if !ok {
		return ""
	}
	value, _, ok := strings.Cut(after, close)
	if !ok {
		return ""
	}
	return value
}

// applyRange 正文里的活动时间覆盖列表时间戳；“x.y版本”起始走版本开始时间
func (a *WuWaAdapter) applyRange(ann *model.Announcement, timeRange extract.TimeRange) {
	if a.cycle.VersionRelative(timeRange.Start) {
		ann.StartTime = a.cycle.VersionBeginTime
		return
	}
	if formatted, ok := extract.ReformatTime(timeRange.Start, extract.LayoutWuWa); ok {
		ann.StartTime = formatted
		if formattedEnd, ok := extract.ReformatTime(timeRange.End, extract.LayoutWuWa); ok {
			ann.EndTime = formattedEnd
		}
	}
}

func (a *WuWaAdapter) annotate(ann *model.Announcement, raw json.RawMessage) {
	if err := ann.AnnotateRaw(raw); err != nil {
		a.logger.WithError(err).WithField("title", ann.Title).Warn("公告原始数据投影失败")
	}
}
