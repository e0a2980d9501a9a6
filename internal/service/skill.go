package service

import (
	"github.com/google/uuid"

	"github.com/cobrayao-blip/mediation/internal/model"
	"github.com/cobrayao-blip/mediation/internal/storage"
)

type SkillService struct {
	store storage.Storage
}

func NewSkillService(store storage.Storage) *SkillService {
	return &SkillService{store: store}
}

func (s *SkillService) List(enabledOnly bool) ([]*model.Skill, error) {
	return s.store.ListSkills(enabledOnly)
}

func (s *SkillService) Get(id string) (*model.Skill, error) {
	return s.store.GetSkill(id)
}

func (s *SkillService) Create(req *model.SkillRequest) (*model.Skill, error) {
	skill := &model.Skill{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		HowToUse:    req.HowToUse,
		Phrasings:   req.Phrasings,
		Pitfalls:    req.Pitfalls,
		Enabled:     true,
	}
	if skill.Phrasings == nil {
		skill.Phrasings = []string{}
	}
	if skill.Pitfalls == nil {
		skill.Pitfalls = []string{}
	}
	if req.Enabled != nil {
		skill.Enabled = *req.Enabled
	}
	if err := s.store.CreateSkill(skill); err != nil {
		return nil, err
	}
	return skill, nil
}

func (s *SkillService) Update(id string, req *model.SkillRequest) (*model.Skill, error) {
	skill, err := s.store.GetSkill(id)
	if err != nil {
		return nil, err
	}
	updated := *skill
	if req.Name != "" {
		updated.Name = req.Name
	}
	if req.Category != "" {
		updated.Category = req.Category
	}
	if req.Description != "" {
		updated.Description = req.Description
	}
	if req.HowToUse != "" {
		updated.HowToUse = req.HowToUse
	}
	if req.Phrasings != nil {
		updated.Phrasings = req.Phrasings
	}
	if req.Pitfalls != nil {
		updated.Pitfalls = req.Pitfalls
	}
	if req.Enabled != nil {
		updated.Enabled = *req.Enabled
	}
	if err := s.store.UpdateSkill(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *SkillService) Delete(id string) error {
	return s.store.DeleteSkill(id)
}
