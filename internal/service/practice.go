package service

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/cobrayao-blip/mediation/internal/model"
	"github.com/cobrayao-blip/mediation/internal/storage"
	"github.com/cobrayao-blip/mediation/pkg/logger"
)

type PracticeService struct {
	store storage.Storage
}

func NewPracticeService(store storage.Storage) *PracticeService {
	return &PracticeService{store: store}
}

// SaveSession 评估完成后保存一次练习记录
func (s *PracticeService) SaveSession(
	userID, scenarioID string,
	messages []model.ChatMessage,
	assessment *model.AssessmentResult,
) (*model.PracticeSession, error) {
	session := &model.PracticeSession{
		ID:         uuid.New().String(),
		UserID:     userID,
		ScenarioID: scenarioID,
		Messages:   messages,
		Assessment: assessment,
		CreatedAt:  time.Now(),
	}
	if err := s.store.CreatePracticeSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *PracticeService) Get(id string) (*model.PracticeSession, error) {
	return s.store.GetPracticeSession(id)
}

// List userID 为空时返回全部记录（管理端）
func (s *PracticeService) List(userID string, limit int) ([]*model.PracticeSession, error) {
	return s.store.ListPracticeSessions(userID, limit)
}

// AddComment 追加导师评语，并把最新评语冗余到 session 上便于列表展示
func (s *PracticeService) AddComment(sessionID, mentorID, comment string) (*model.MentorComment, error) {
	mc := &model.MentorComment{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		MentorID:  mentorID,
		Comment:   comment,
		CreatedAt: time.Now(),
	}
	if err := s.store.AddMentorComment(mc); err != nil {
		return nil, err
	}
	session, err := s.store.GetPracticeSession(sessionID)
	if err != nil {
		return nil, err
	}
	updated := *session
	updated.MentorComment = comment
	if err := s.store.UpdatePracticeSession(&updated); err != nil {
		logger.Errorf("更新练习记录评语失败: %v", err)
	}
	return mc, nil
}

func (s *PracticeService) Comments(sessionID string) ([]*model.MentorComment, error) {
	return s.store.ListMentorComments(sessionID)
}

// Observe 导师观摩：登记观摩者并返回会话
func (s *PracticeService) Observe(sessionID, observerID string) (*model.PracticeSession, error) {
	session, err := s.store.GetPracticeSession(sessionID)
	if err != nil {
		return nil, err
	}
	for _, id := range session.Observers {
		if id == observerID {
			return session, nil
		}
	}
	updated := *session
	updated.Observers = append(append([]string{}, session.Observers...), observerID)
	updated.IsObserved = true
	if err := s.store.UpdatePracticeSession(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// UserReport 学员数据报表：总场次、平均分、按日成长曲线、
// 技巧使用统计、常见问题 Top10、最近 10 条记录
func (s *PracticeService) UserReport(userID string) (*model.AnalyticsReport, error) {
	sessions, err := s.store.ListPracticeSessions(userID, 0)
	if err != nil {
		return nil, err
	}

	report := &model.AnalyticsReport{
		GrowthCurve:    []model.GrowthPoint{},
		SkillUsage:     map[string]int{},
		CommonMistakes: []model.MistakeCount{},
		RecentSessions: []model.SessionSummary{},
	}
	report.TotalSessions = len(sessions)
	if len(sessions) == 0 {
		return report, nil
	}

	totalScore := 0
	type dayBucket struct {
		sum   int
		count int
	}
	days := map[string]*dayBucket{}
	mistakes := map[string]int{}

	for _, session := range sessions {
		score := 0
		if session.Assessment != nil {
			score = session.Assessment.Score
		}
		totalScore += score

		day := session.CreatedAt.Format("2006-01-02")
		bucket := days[day]
		if bucket == nil {
			bucket = &dayBucket{}
			days[day] = bucket
		}
		bucket.sum += score
		bucket.count++

		for _, msg := range session.Messages {
			if msg.RecommendedSkillName != "" {
				report.SkillUsage[msg.RecommendedSkillName]++
			}
		}

		if session.Assessment != nil {
			for _, advice := range session.Assessment.KeyAdvice {
				mistakes[advicePrefix(advice)]++
			}
		}
	}

	report.AvgScore = math.Round(float64(totalScore)/float64(len(sessions))*10) / 10

	for day, bucket := range days {
		report.GrowthCurve = append(report.GrowthCurve, model.GrowthPoint{
			Date:  day,
			Score: int(math.Round(float64(bucket.sum) / float64(bucket.count))),
		})
	}
	sort.Slice(report.GrowthCurve, func(i, j int) bool {
		return report.GrowthCurve[i].Date < report.GrowthCurve[j].Date
	})

	for mistake, count := range mistakes {
		report.CommonMistakes = append(report.CommonMistakes, model.MistakeCount{Mistake: mistake, Count: count})
	}
	sort.Slice(report.CommonMistakes, func(i, j int) bool {
		if report.CommonMistakes[i].Count != report.CommonMistakes[j].Count {
			return report.CommonMistakes[i].Count > report.CommonMistakes[j].Count
		}
		return report.CommonMistakes[i].Mistake < report.CommonMistakes[j].Mistake
	})
	if len(report.CommonMistakes) > 10 {
		report.CommonMistakes = report.CommonMistakes[:10]
	}

	recent := sessions
	if len(recent) > 10 {
		recent = recent[:10]
	}
	for _, session := range recent {
		title := session.ScenarioID
		if scenario, err := s.store.GetScenario(session.ScenarioID); err == nil {
			title = scenario.Title
		}
		score := 0
		if session.Assessment != nil {
			score = session.Assessment.Score
		}
		report.RecentSessions = append(report.RecentSessions, model.SessionSummary{
			ID:       session.ID,
			Scenario: title,
			Score:    score,
			Date:     session.CreatedAt.Format(time.RFC3339),
		})
	}

	return report, nil
}

// advicePrefix 取建议前 20 个字符作为归类键
func advicePrefix(advice string) string {
	runes := []rune(advice)
	if len(runes) <= 20 {
		return advice
	}
	return string(runes[:20])
}
