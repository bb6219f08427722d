package workflow

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// RunLog collects the human-readable audit trail of one cycle. Lines end up
// in the OptimizationRun record; they are mirrored to logrus for operators.
type RunLog struct {
	logger *logrus.Logger
	lines  []string
}

func NewRunLog(logger *logrus.Logger) *RunLog {
	return &RunLog{logger: logger}
}

func (l *RunLog) Logf(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	l.lines = append(l.lines, line)
	if l.logger != nil {
		l.logger.WithField("module", "optimization_cycle").Info(line)
	}
}

func (l *RunLog) Lines() []string {
	return l.lines
}
