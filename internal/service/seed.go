package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/cobrayao-blip/mediation/internal/model"
	"github.com/cobrayao-blip/mediation/internal/storage"
	"github.com/cobrayao-blip/mediation/pkg/logger"
)

// EnsureSeed 首次启动时写入示例案例与技巧，已有数据则跳过
func EnsureSeed(store storage.Storage) error {
	scenarios, err := store.ListScenarios(false)
	if err != nil {
		return err
	}
	if len(scenarios) == 0 {
		for i, s := range seedScenarios() {
			s.ID = uuid.New().String()
			s.SortOrder = i
			s.Enabled = true
			s.CreatedAt = time.Now()
			if err := store.CreateScenario(s); err != nil {
				return err
			}
		}
		logger.Infof("已写入 %d 个示例案例", len(seedScenarios()))
	}

	skills, err := store.ListSkills(false)
	if err != nil {
		return err
	}
	if len(skills) == 0 {
		for _, sk := range seedSkills() {
			sk.ID = uuid.New().String()
			sk.Enabled = true
			if err := store.CreateSkill(sk); err != nil {
				return err
			}
		}
		logger.Infof("已写入 %d 条示例技巧", len(seedSkills()))
	}
	return nil
}

func seedScenarios() []*model.Scenario {
	return []*model.Scenario{
		{
			Title:        "楼上漏水引发的邻里纠纷",
			Category:     "社区治理",
			Difficulty:   "入门级",
			Description:  "张大爷家的天花板因楼上李先生家水管老化渗水受损，多次协商未果，双方情绪对立，社区调解室介入。",
			DisputePoint: "漏水责任认定与维修、赔偿费用的分担。",
			PartyA: model.Persona{
				Name:       "张建国",
				Trait:      "守旧、固执、爱面子",
				Background: "退休教师，独居，对房屋受损十分心疼",
			},
			PartyB: model.Persona{
				Name:       "李伟",
				Trait:      "焦躁、务实、防御性强",
				Background: "私企中层，工作压力大，认为是房屋老化不该全由自己负责",
			},
		},
		{
			Title:        "装修款尾款拖欠纠纷",
			Category:     "民事纠纷",
			Difficulty:   "进阶级",
			Description:  "业主王女士以装修质量不达标为由拒付三万元尾款，施工方陈师傅认为已按合同完工，多次催款无果。",
			DisputePoint: "装修质量是否达标、尾款应否支付及金额。",
			PartyA: model.Persona{
				Name:       "王芳",
				Trait:      "谨慎、较真、注重证据",
				Background: "公司财务，保留了全部合同与验收照片",
			},
			PartyB: model.Persona{
				Name:       "陈国强",
				Trait:      "直爽、急躁、吃苦耐劳",
				Background: "个体装修工头，垫付了材料款急需回款",
			},
		},
		{
			Title:        "加班费争议引发的劳动纠纷",
			Category:     "劳动争议",
			Difficulty:   "专业级",
			Description:  "员工刘某主张两年累计加班费五万余元，公司以实行不定时工作制为由拒绝，刘某申请调解。",
			DisputePoint: "不定时工作制审批是否有效、加班事实与加班费计算基数。",
			PartyA: model.Persona{
				Name:       "刘洋",
				Trait:      "委屈、执着、有备而来",
				Background: "前销售主管，保存了打卡记录和工作群聊天截图",
			},
			PartyB: model.Persona{
				Name:       "赵敏",
				Trait:      "职业化、谨慎、立场强硬",
				Background: "公司人力资源总监，担心开了先例引发连锁仲裁",
			},
		},
	}
}

func seedSkills() []*model.Skill {
	return []*model.Skill{
		{
			Name:        "积极倾听 (Active Listening)",
			Category:    "情绪疏导",
			Description: "通过复述、确认和共情回应，让当事人感到被理解，降低对抗情绪。",
			HowToUse:    "在当事人陈述后先复述要点再回应，避免急于给出判断。",
			Phrasings:   []string{"我听到您说的是……，我理解得对吗？", "您刚才提到……，这件事确实让人着急。"},
			Pitfalls:    []string{"机械重复对方原话", "在复述中夹带评价"},
		},
		{
			Name:        "释明法律 (Legal Clarification)",
			Category:    "释明",
			Description: "用通俗语言向当事人说明相关法律规定、权利义务和可能的诉讼后果。",
			HowToUse:    "在双方对责任认定有分歧时引入，先讲规则再谈选择。",
			Phrasings:   []string{"按照民法典的相关规定，这种情况一般是……", "如果走诉讼程序，您可能需要承担……"},
			Pitfalls:    []string{"替当事人下法律结论", "用专业术语加重对立"},
		},
		{
			Name:        "换位思考引导 (Perspective Taking)",
			Category:    "情绪疏导",
			Description: "引导一方站在对方角度理解其处境，软化立场。",
			HowToUse:    "在情绪缓和后使用，避免在激烈对抗时引发反感。",
			Phrasings:   []string{"如果您是他，遇到这样的情况会怎么想？"},
			Pitfalls:    []string{"让当事人觉得调解员偏袒对方"},
		},
		{
			Name:        "利益聚焦 (Interest Focusing)",
			Category:    "协议拟定",
			Description: "把讨论从立场之争拉回到双方真正关心的利益上，寻找交换空间。",
			HowToUse:    "核实事实后，引导双方各自说出最在意的一两件事。",
			Phrasings:   []string{"抛开谁对谁错，您最希望解决的是什么？"},
			Pitfalls:    []string{"过早进入方案讨论，事实基础不牢"},
		},
	}
}
