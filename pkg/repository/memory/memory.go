package memory

import (
	"github.com/secmon-lab/riskquant/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	profile    *profileRepository
	investment *investmentRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		profile:    newProfileRepository(),
		investment: newInvestmentRepository(),
	}
}

func (m *Memory) Profile() interfaces.ProfileRepository {
	return m.profile
}

func (m *Memory) Investment() interfaces.InvestmentRepository {
	return m.investment
}

func (m *Memory) Close() error {
	return nil
}
