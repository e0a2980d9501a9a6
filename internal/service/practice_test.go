package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cobrayao-blip/mediation/internal/model"
	"github.com/cobrayao-blip/mediation/internal/storage"
)

func TestSaveAndObserveSession(t *testing.T) {
	store := storage.NewMemoryStorage()
	p := NewPracticeService(store)

	session, err := p.SaveSession("u1", "s1", []model.ChatMessage{
		{Role: model.RoleUser, Content: "你好"},
	}, &model.AssessmentResult{Score: 80})
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)

	// 首次观摩登记观摩者
	observed, err := p.Observe(session.ID, "mentor1")
	require.NoError(t, err)
	assert.True(t, observed.IsObserved)
	assert.Equal(t, []string{"mentor1"}, observed.Observers)

	// 重复观摩不重复登记
	observed, err = p.Observe(session.ID, "mentor1")
	require.NoError(t, err)
	assert.Equal(t, []string{"mentor1"}, observed.Observers)

	observed, err = p.Observe(session.ID, "mentor2")
	require.NoError(t, err)
	assert.Len(t, observed.Observers, 2)
}

func TestAddComment(t *testing.T) {
	store := storage.NewMemoryStorage()
	p := NewPracticeService(store)

	session, err := p.SaveSession("u1", "s1", nil, nil)
	require.NoError(t, err)

	comment, err := p.AddComment(session.ID, "mentor1", "注意释明环节")
	require.NoError(t, err)
	assert.Equal(t, "注意释明环节", comment.Comment)

	// 最新评语冗余到 session 上
	got, err := p.Get(session.ID)
	require.NoError(t, err)
	assert.Equal(t, "注意释明环节", got.MentorComment)

	comments, err := p.Comments(session.ID)
	require.NoError(t, err)
	assert.Len(t, comments, 1)
}

func TestUserReport(t *testing.T) {
	store := storage.NewMemoryStorage()
	require.NoError(t, store.CreateScenario(&model.Scenario{ID: "s1", Title: "漏水纠纷", CreatedAt: time.Now()}))
	p := NewPracticeService(store)

	day1 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.Local)
	day2 := time.Date(2026, 8, 2, 10, 0, 0, 0, time.Local)

	sessions := []*model.PracticeSession{
		{
			ID: "p1", UserID: "u1", ScenarioID: "s1", CreatedAt: day1,
			Messages: []model.ChatMessage{
				{Role: model.RoleUser, Content: "你好", RecommendedSkillName: "积极倾听"},
				{Role: model.RoleModel, Content: "哼"},
			},
			Assessment: &model.AssessmentResult{Score: 60, KeyAdvice: []string{"注意控制节奏"}},
		},
		{
			ID: "p2", UserID: "u1", ScenarioID: "s1", CreatedAt: day1.Add(2 * time.Hour),
			Messages: []model.ChatMessage{
				{Role: model.RoleUser, Content: "继续", RecommendedSkillName: "积极倾听"},
			},
			Assessment: &model.AssessmentResult{Score: 80, KeyAdvice: []string{"注意控制节奏"}},
		},
		{
			ID: "p3", UserID: "u1", ScenarioID: "s1", CreatedAt: day2,
			Assessment: &model.AssessmentResult{Score: 90, KeyAdvice: []string{"释明可以更充分"}},
		},
		// 其他用户的记录不应计入
		{ID: "px", UserID: "u2", ScenarioID: "s1", CreatedAt: day2,
			Assessment: &model.AssessmentResult{Score: 10}},
	}
	for _, s := range sessions {
		require.NoError(t, store.CreatePracticeSession(s))
	}

	report, err := p.UserReport("u1")
	require.NoError(t, err)

	assert.Equal(t, 3, report.TotalSessions)
	// (60+80+90)/3 = 76.666... 保留一位小数
	assert.Equal(t, 76.7, report.AvgScore)

	// 成长曲线按日期升序，按日取平均
	require.Len(t, report.GrowthCurve, 2)
	assert.Equal(t, "2026-08-01", report.GrowthCurve[0].Date)
	assert.Equal(t, 70, report.GrowthCurve[0].Score)
	assert.Equal(t, "2026-08-02", report.GrowthCurve[1].Date)
	assert.Equal(t, 90, report.GrowthCurve[1].Score)

	assert.Equal(t, 2, report.SkillUsage["积极倾听"])

	// 常见问题按出现次数倒序
	require.NotEmpty(t, report.CommonMistakes)
	assert.Equal(t, "注意控制节奏", report.CommonMistakes[0].Mistake)
	assert.Equal(t, 2, report.CommonMistakes[0].Count)

	require.Len(t, report.RecentSessions, 3)
	// 最近的在前，案例标题已解析
	assert.Equal(t, "p3", report.RecentSessions[0].ID)
	assert.Equal(t, "漏水纠纷", report.RecentSessions[0].Scenario)
	assert.Equal(t, 90, report.RecentSessions[0].Score)
}

func TestUserReportEmpty(t *testing.T) {
	p := NewPracticeService(storage.NewMemoryStorage())

	report, err := p.UserReport("nobody")
	require.NoError(t, err)
	assert.Equal(t, 0, report.TotalSessions)
	assert.Equal(t, 0.0, report.AvgScore)
	assert.NotNil(t, report.GrowthCurve)
	assert.NotNil(t, report.SkillUsage)
	assert.NotNil(t, report.CommonMistakes)
	assert.NotNil(t, report.RecentSessions)
}

func TestAdvicePrefix(t *testing.T) {
	assert.Equal(t, "短建议", advicePrefix("短建议"))
	long := "这是一条超过二十个字符的很长很长的评估建议内容示例文本"
	assert.Equal(t, 20, len([]rune(advicePrefix(long))))
}
