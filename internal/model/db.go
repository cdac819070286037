package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Event 游戏活动事件表（同一标题仅存一行，标题即去重键）
type Event struct {
	ID          uint64         `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	UUID        string         `gorm:"column:uuid;type:varchar(36);uniqueIndex;not null;comment:由游戏+标题派生的稳定标识"`
	Title       string         `gorm:"column:title;type:varchar(200);comment:展示标题"`
	Game        string         `gorm:"column:game;type:varchar(50);comment:所属游戏：ys/sr/zzz/ww"`
	Data        datatypes.JSON `gorm:"column:data;type:jsonb;comment:原始公告数据投影"`
	StartTime   *time.Time     `gorm:"column:start_time;type:timestamp;comment:开始时间"`
	EndTime     *time.Time     `gorm:"column:end_time;type:timestamp;comment:结束时间"`
	BannerImage string         `gorm:"column:banner_image;type:varchar(16384);comment:头图地址"`
	EventType   string         `gorm:"column:event_type;type:varchar(50);comment:事件类型：version/event/gacha"`
}

// NewEventUUID 由 (game, title) 派生稳定标识。
// UUIDv3（DNS命名空间，name 为 "<game>-<title>"），同一输入永远得到同一值。
func NewEventUUID(game, title string) string {
	return uuid.NewMD5(uuid.NameSpaceDNS, []byte(game+"-"+title)).String()
}

// RequestLog 最近一次成功刷新时间（单行，用于24小时按需刷新闸门）
type RequestLog struct {
	ID              uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	LastRequestTime time.Time `gorm:"column:last_request_time;type:timestamp"`
}

// RefreshLog 每次定时刷新追加一行（历史记录）
type RefreshLog struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	RefreshTime time.Time `gorm:"column:refresh_time;type:timestamp;default:now()"`
}

// User 用户表
type User struct {
	UserID   uint64 `gorm:"column:userid;primaryKey;comment:用户ID"`
	Username string `gorm:"column:username;type:varchar(80);uniqueIndex;not null;comment:用户名"`
	Password string `gorm:"column:password;type:varchar(120);not null;comment:密码哈希"`
}

// UserLoginToken 登录令牌（每用户最多保留10条，旧的淘汰）
type UserLoginToken struct {
	TokenID uint64    `gorm:"column:tokenid;primaryKey;autoIncrement"`
	UserID  uint64    `gorm:"column:userid;type:bigint;not null;index"`
	Token   string    `gorm:"column:token;type:varchar(256);not null;index"`
	Time    time.Time `gorm:"column:time;type:timestamp;not null;default:now()"`
}

// UserSettings 用户个性化设置（JSON文本整存整取）
type UserSettings struct {
	UserID   uint64 `gorm:"column:userid;primaryKey"`
	Settings string `gorm:"column:settings;type:text;not null"`
}

func (Event) TableName() string          { return "events" }
func (RequestLog) TableName() string     { return "request_logs" }
func (RefreshLog) TableName() string     { return "refresh_logs" }
func (User) TableName() string           { return "users" }
func (UserLoginToken) TableName() string { return "user_login_tokens" }
func (UserSettings) TableName() string   { return "user_settings" }
