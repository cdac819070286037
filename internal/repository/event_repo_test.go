package repository

import (
	"context"
	"testing"
	"time"

	"AnnSync/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB 创建内存SQLite数据库并迁移表结构
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&model.Event{},
		&model.RequestLog{},
		&model.RefreshLog{},
		&model.User{},
		&model.UserLoginToken{},
		&model.UserSettings{},
	)
	require.NoError(t, err)
	return db
}

func sampleAnnouncement() *model.Announcement {
	return &model.Announcement{
		Game:        model.GameGenshin,
		Title:       "「流光拾遗之旅」活动",
		EventType:   model.EventTypeEvent,
		StartTime:   "2025-01-15 10:00:00",
		EndTime:     "2025-02-03 03:59:00",
		BannerImage: "https://example.com/banner.png",
		Raw:         []byte(`{"ann_id":100,"title":"「流光拾遗之旅」活动"}`),
	}
}

func TestSaveAnnouncementCreate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.SaveAnnouncement(ctx, sampleAnnouncement()))

	var event model.Event
	require.NoError(t, db.Where("title = ?", "「流光拾遗之旅」活动").First(&event).Error)
	assert.Equal(t, model.GameGenshin, event.Game)
	assert.Equal(t, model.EventTypeEvent, event.EventType)
	require.NotNil(t, event.StartTime)
	assert.Equal(t, "2025-01-15 10:00:00", event.StartTime.Format("2006-01-02 15:04:05"))
	// UUID由游戏+标题确定
	assert.Equal(t, model.NewEventUUID(model.GameGenshin, "「流光拾遗之旅」活动"), event.UUID)
}

func TestSaveAnnouncementIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	// 同一条公告存两遍不产生重复行
	require.NoError(t, repo.SaveAnnouncement(ctx, sampleAnnouncement()))
	require.NoError(t, repo.SaveAnnouncement(ctx, sampleAnnouncement()))

	var count int64
	require.NoError(t, db.Model(&model.Event{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSaveAnnouncementUpdatesChangedFields(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.SaveAnnouncement(ctx, sampleAnnouncement()))

	// 同标题但横幅与结束时间变了：原行被更新而不是新增
	updated := sampleAnnouncement()
	updated.BannerImage = "https://example.com/banner-v2.png"
	updated.EndTime = "2025-02-10 03:59:00"
	require.NoError(t, repo.SaveAnnouncement(ctx, updated))

	var event model.Event
	require.NoError(t, db.Where("title = ?", updated.Title).First(&event).Error)
	assert.Equal(t, "https://example.com/banner-v2.png", event.BannerImage)
	require.NotNil(t, event.EndTime)
	assert.Equal(t, "2025-02-10 03:59:00", event.EndTime.Format("2006-01-02 15:04:05"))
}

func TestSaveAnnouncementKeepsTimeOnParseFailure(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.SaveAnnouncement(ctx, sampleAnnouncement()))

	// 再抓到同一条公告但这次时间没解析出来：保留之前的时间
	updated := sampleAnnouncement()
	updated.StartTime = ""
	updated.EndTime = ""
	require.NoError(t, repo.SaveAnnouncement(ctx, updated))

	var event model.Event
	require.NoError(t, db.Where("title = ?", updated.Title).First(&event).Error)
	require.NotNil(t, event.StartTime)
	assert.Equal(t, "2025-01-15 10:00:00", event.StartTime.Format("2006-01-02 15:04:05"))
	require.NotNil(t, event.EndTime)
}

func TestListActive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()
	now := time.Now()

	mk := func(title string, start, end time.Time) *model.Event {
		return &model.Event{
			UUID:      model.NewEventUUID(model.GameGenshin, title),
			Title:     title,
			Game:      model.GameGenshin,
			EventType: model.EventTypeEvent,
			StartTime: &start,
			EndTime:   &end,
		}
	}
	// 已过期的一条不应出现
	require.NoError(t, db.Create(mk("过期活动", now.Add(-48*time.Hour), now.Add(-24*time.Hour))).Error)
	require.NoError(t, db.Create(mk("晚开始的活动", now.Add(-1*time.Hour), now.Add(24*time.Hour))).Error)
	require.NoError(t, db.Create(mk("早开始的活动", now.Add(-2*time.Hour), now.Add(24*time.Hour))).Error)
	// 开始时间为NULL的行不会让查询失败
	require.NoError(t, db.Create(&model.Event{
		UUID:      model.NewEventUUID(model.GameGenshin, "没有时间的活动"),
		Title:     "没有时间的活动",
		Game:      model.GameGenshin,
		EventType: model.EventTypeEvent,
	}).Error)

	events, err := repo.ListActive(ctx, now)
	require.NoError(t, err)
	require.Len(t, events, 2)
	// 按开始时间升序
	assert.Equal(t, "早开始的活动", events[0].Title)
	assert.Equal(t, "晚开始的活动", events[1].Title)
}

func TestRefreshRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRefreshRepository(db)
	ctx := context.Background()

	// 从未刷新过
	_, ok, err := repo.LastRequestTime(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	first := time.Now().Add(-30 * time.Hour).Truncate(time.Second)
	require.NoError(t, repo.TouchRequestLog(ctx, first))

	got, ok, err := repo.LastRequestTime(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, first.Unix(), got.Unix())

	// 再次Touch更新同一行而不是新增
	second := time.Now().Truncate(time.Second)
	require.NoError(t, repo.TouchRequestLog(ctx, second))

	var count int64
	require.NoError(t, db.Model(&model.RequestLog{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	got, ok, err = repo.LastRequestTime(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, second.Unix(), got.Unix())

	// 刷新历史逐条追加
	require.NoError(t, repo.AppendRefreshLog(ctx, first))
	require.NoError(t, repo.AppendRefreshLog(ctx, second))
	require.NoError(t, db.Model(&model.RefreshLog{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestUserRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	// 不存在的用户
	user, err := repo.GetByUsername(ctx, "user")
	require.NoError(t, err)
	assert.Nil(t, user)

	require.NoError(t, repo.CreateUser(ctx, &model.User{UserID: 10, Username: "user", Password: "hash"}))

	user, err = repo.GetByUsername(ctx, "user")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, uint64(10), user.UserID)

	// 令牌保存与查询
	require.NoError(t, repo.SaveToken(ctx, &model.UserLoginToken{UserID: 10, Token: "tok-1", Time: time.Now()}))
	loginToken, err := repo.GetToken(ctx, "tok-1")
	require.NoError(t, err)
	require.NotNil(t, loginToken)
	assert.Equal(t, uint64(10), loginToken.UserID)

	// 删除后查不到
	require.NoError(t, repo.DeleteToken(ctx, "tok-1"))
	loginToken, err = repo.GetToken(ctx, "tok-1")
	require.NoError(t, err)
	assert.Nil(t, loginToken)

	// 设置整存整取
	settings, err := repo.GetSettings(ctx, 10)
	require.NoError(t, err)
	assert.Nil(t, settings)

	require.NoError(t, repo.SaveSettings(ctx, 10, `{"theme":"dark"}`))
	require.NoError(t, repo.SaveSettings(ctx, 10, `{"theme":"light"}`))

	settings, err = repo.GetSettings(ctx, 10)
	require.NoError(t, err)
	require.NotNil(t, settings)
	assert.Equal(t, `{"theme":"light"}`, settings.Settings)
}

func TestSaveTokenCapsHistory(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateUser(ctx, &model.User{UserID: 10, Username: "user", Password: "hash"}))

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 11; i++ {
		require.NoError(t, repo.SaveToken(ctx, &model.UserLoginToken{
			UserID: 10,
			Token:  "tok-" + string(rune('a'+i)),
			Time:   base.Add(time.Duration(i) * time.Minute),
		}))
	}

	// 超过10条时最旧的被淘汰
	var count int64
	require.NoError(t, db.Model(&model.UserLoginToken{}).Count(&count).Error)
	assert.Equal(t, int64(10), count)

	oldest, err := repo.GetToken(ctx, "tok-a")
	require.NoError(t, err)
	assert.Nil(t, oldest)
}
