package memory

import (
	"github.com/takeline-lab/takeline/pkg/domain/interfaces"
)

// Memory is an in-memory repository for development and tests.
type Memory struct {
	project   *projectRepository
	takeoff   *takeoffRepository
	rfi       *rfiRepository
	actionLog *actionLogRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		project:   newProjectRepository(),
		takeoff:   newTakeoffRepository(),
		rfi:       newRFIRepository(),
		actionLog: newActionLogRepository(),
	}
}

func (m *Memory) Project() interfaces.ProjectRepository {
	return m.project
}

func (m *Memory) Takeoff() interfaces.TakeoffRepository {
	return m.takeoff
}

func (m *Memory) RFI() interfaces.RFIRepository {
	return m.rfi
}

func (m *Memory) ActionLog() interfaces.ActionLogRepository {
	return m.actionLog
}

func (m *Memory) Close() error {
	return nil
}
