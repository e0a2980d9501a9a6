package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/cobrayao-blip/mediation/internal/model"
	"github.com/cobrayao-blip/mediation/internal/storage"
)

type ScenarioService struct {
	store storage.Storage
}

func NewScenarioService(store storage.Storage) *ScenarioService {
	return &ScenarioService{store: store}
}

func (s *ScenarioService) List(enabledOnly bool) ([]*model.Scenario, error) {
	return s.store.ListScenarios(enabledOnly)
}

func (s *ScenarioService) Get(id string) (*model.Scenario, error) {
	return s.store.GetScenario(id)
}

func (s *ScenarioService) Create(req *model.ScenarioRequest) (*model.Scenario, error) {
	scenario := &model.Scenario{
		ID:           uuid.New().String(),
		Title:        req.Title,
		Category:     req.Category,
		Description:  req.Description,
		Difficulty:   req.Difficulty,
		DisputePoint: req.DisputePoint,
		Enabled:      true,
		CreatedAt:    time.Now(),
	}
	if scenario.Difficulty == "" {
		scenario.Difficulty = "入门级"
	}
	if req.PartyA != nil {
		scenario.PartyA = *req.PartyA
	}
	if req.PartyB != nil {
		scenario.PartyB = *req.PartyB
	}
	if req.SortOrder != nil {
		scenario.SortOrder = *req.SortOrder
	}
	if req.Enabled != nil {
		scenario.Enabled = *req.Enabled
	}
	if err := s.store.CreateScenario(scenario); err != nil {
		return nil, err
	}
	return scenario, nil
}

func (s *ScenarioService) Update(id string, req *model.ScenarioRequest) (*model.Scenario, error) {
	scenario, err := s.store.GetScenario(id)
	if err != nil {
		return nil, err
	}
	updated := *scenario
	if req.Title != "" {
		updated.Title = req.Title
	}
	if req.Category != "" {
		updated.Category = req.Category
	}
	if req.Description != "" {
		updated.Description = req.Description
	}
	if req.Difficulty != "" {
		updated.Difficulty = req.Difficulty
	}
	if req.DisputePoint != "" {
		updated.DisputePoint = req.DisputePoint
	}
	if req.PartyA != nil {
		updated.PartyA = *req.PartyA
	}
	if req.PartyB != nil {
		updated.PartyB = *req.PartyB
	}
	if req.SortOrder != nil {
		updated.SortOrder = *req.SortOrder
	}
	if req.Enabled != nil {
		updated.Enabled = *req.Enabled
	}
	if err := s.store.UpdateScenario(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *ScenarioService) Delete(id string) error {
	return s.store.DeleteScenario(id)
}
