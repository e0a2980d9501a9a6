package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOpening(t *testing.T) {
	s := newTestService(t, replyWith(`{
		"openingDialogue": "（双方落座）\n张建国：我要个说法！\n李伟：漏水不是我愿意的。",
		"coachTip": "先分别安抚双方情绪。",
		"recommendedSkillName": "背对背调解 (Caucus)",
		"initialMoodA": 30,
		"initialMoodB": 45
	}`))

	opening, err := s.GenerateOpening(context.Background(), ProviderQwen, "qwen-max", testScenario)
	require.NoError(t, err)

	assert.Contains(t, opening.OpeningDialogue, "张建国")
	assert.Equal(t, "先分别安抚双方情绪。", opening.CoachTip)
	assert.Equal(t, "背对背调解 (Caucus)", opening.RecommendedSkillName)
	assert.Equal(t, 30, opening.InitialMoodA)
	assert.Equal(t, 45, opening.InitialMoodB)
}

// TestGenerateOpeningDefaults 字段缺失或为空时用含当事人姓名的默认开场
func TestGenerateOpeningDefaults(t *testing.T) {
	s := newTestService(t, replyWith(`{"openingDialogue": ""}`))

	opening, err := s.GenerateOpening(context.Background(), ProviderQwen, "qwen-max", testScenario)
	require.NoError(t, err)

	assert.Contains(t, opening.OpeningDialogue, "张建国：调解员，我今天来就是要个公道")
	assert.Contains(t, opening.OpeningDialogue, "李伟：我也不是好欺负的")
	assert.Equal(t, "背对背调解 (Caucus)", opening.RecommendedSkillName)
	assert.Equal(t, 40, opening.InitialMoodA)
	assert.Equal(t, 40, opening.InitialMoodB)
}

// TestGenerateOpeningParseFailure 开场生成解析失败时直接报错，由调用方决定兜底
func TestGenerateOpeningParseFailure(t *testing.T) {
	s := newTestService(t, replyWith("无法生成开场对话。"))

	_, err := s.GenerateOpening(context.Background(), ProviderQwen, "qwen-max", testScenario)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedReply))
	assert.Contains(t, err.Error(), "开场对话生成失败")
}
