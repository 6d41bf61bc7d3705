package usecase_test

import (
	"context"
	"sync"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/repository/memory"
	"github.com/secmon-lab/riskquant/pkg/usecase"
)

type recordingWriter struct {
	mu      sync.Mutex
	written map[string][]byte
	err     error
}

func newRecordingWriter() *recordingWriter {
	return &recordingWriter{written: map[string][]byte{}}
}

func (w *recordingWriter) Write(ctx context.Context, name string, data []byte) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return "", w.err
	}
	w.written[name] = data
	return "memory://" + name, nil
}

func (w *recordingWriter) get(name string) ([]byte, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	data, ok := w.written[name]
	return data, ok
}

func newUseCases(t *testing.T, opts ...usecase.Option) *usecase.UseCases {
	t.Helper()
	opts = append([]usecase.Option{
		usecase.WithSimulationSettings(model.SimulationSettings{Iterations: 500, Seed: 42}),
	}, opts...)
	return usecase.New(memory.New(), opts...)
}

// seedReference stores the reference profile and two investments
func seedReference(t *testing.T, uc *usecase.UseCases) {
	t.Helper()
	ctx := context.Background()

	_, err := uc.Profile.CreateProfile(ctx, &model.RiskProfile{
		ID:          "payment-breach",
		Name:        "Payment gateway breach",
		Category:    "data-breach",
		Probability: 0.35,
		Impact:      750000,
	})
	gt.NoError(t, err).Required()

	for _, inv := range []*model.SecurityInvestment{
		{ID: "waf", Name: "Web application firewall", Cost: 50000, Effectiveness: 0.3, ImplementationTime: 2, Lifecycle: 3},
		{ID: "mfa", Name: "Multi-factor authentication", Cost: 20000, Effectiveness: 0.5, ImplementationTime: 1, Lifecycle: 3},
	} {
		_, err := uc.Investment.CreateInvestment(ctx, inv)
		gt.NoError(t, err).Required()
	}
}
