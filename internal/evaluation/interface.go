package evaluation

import (
	"context"

	"github.com/samhab/hslu-devops-evaluation/pkg/domain"
)

//go:generate mockgen -package mockevaluation -source=interface.go -destination=mock/mockevaluation.go *
type Evaluator interface {
	Evaluate(ctx context.Context, sheetURL string) (*domain.Run, error)
	EvaluateTeam(ctx context.Context, team domain.Team, masterDir string) domain.TeamResult
}
