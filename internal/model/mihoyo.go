package model

import "encoding/json"

// 米哈游三款游戏（ys/sr/zzz）共用 getAnnList / getAnnContent 两个接口，
// 列表按 type_label 分组，正文按 ann_id 对应。

// MihoyoAnnList getAnnList 响应
type MihoyoAnnList struct {
	Retcode int    `json:"retcode"`
	Message string `json:"message"`
	Data    struct {
		List    []MihoyoTypeGroup `json:"list"`
		PicList []MihoyoPicGroup  `json:"pic_list"`
	} `json:"data"`
}

// MihoyoTypeGroup 按公告类型分组的列表项
type MihoyoTypeGroup struct {
	TypeID    int             `json:"type_id"`
	TypeLabel string          `json:"type_label"`
	List      []MihoyoAnnItem `json:"list"`
}

// MihoyoPicGroup 图片公告分组（星穹铁道的活动/跃迁走这里）
type MihoyoPicGroup struct {
	TypeList []MihoyoPicTypeGroup `json:"type_list"`
}

type MihoyoPicTypeGroup struct {
	List []MihoyoAnnItem `json:"list"`
}

// MihoyoAnnItem 单条公告列表项。Raw 保留原始JSON，入库时做投影。
type MihoyoAnnItem struct {
	AnnID     int64  `json:"ann_id"`
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle"`
	Banner    string `json:"banner"`
	Img       string `json:"img"`
	TagLabel  string `json:"tag_label"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`

	Raw json.RawMessage `json:"-"`
}

func (a *MihoyoAnnItem) UnmarshalJSON(b []byte) error {
	type alias MihoyoAnnItem
	var tmp alias
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}
	*a = MihoyoAnnItem(tmp)
	a.Raw = append(json.RawMessage(nil), b...)
	return nil
}

// MihoyoAnnContent getAnnContent 响应
type MihoyoAnnContent struct {
	Retcode int    `json:"retcode"`
	Message string `json:"message"`
	Data    struct {
		List    []MihoyoContentItem `json:"list"`
		PicList []MihoyoContentItem `json:"pic_list"`
	} `json:"data"`
}

// MihoyoContentItem 公告正文（HTML片段）
type MihoyoContentItem struct {
	AnnID   int64  `json:"ann_id"`
	Title   string `json:"title"`
	Banner  string `json:"banner"`
	Content string `json:"content"`
}
