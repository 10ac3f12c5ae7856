package service

import (
	"context"
	"errors"

	"github.com/looplab/fsm"
	"go.uber.org/zap"

	"github.com/langchou/autocheck/internal/apperrors"
	"github.com/langchou/autocheck/internal/models"
)

// 保养记录的全部状态
var serviceStatuses = []string{
	models.ServiceStatusPending,
	models.ServiceStatusInProgress,
	models.ServiceStatusCompleted,
}

// StatusLifecycle 保养记录状态机。每个状态都可以从任意状态进入，
// 车主可以随意改状态，状态机只负责校验取值和记录流转
type StatusLifecycle struct {
	logger *zap.Logger
}

// NewStatusLifecycle 创建状态机
func NewStatusLifecycle(logger *zap.Logger) *StatusLifecycle {
	return &StatusLifecycle{logger: logger}
}

// ValidStatus 判断状态取值是否合法
func ValidStatus(status string) bool {
	for _, s := range serviceStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Transition 从 current 切换到 next，未知状态返回校验错误
func (l *StatusLifecycle) Transition(ctx context.Context, serviceID int64, current, next string) (string, error) {
	if !ValidStatus(next) {
		return "", apperrors.WithFields(apperrors.CodeInvalid, "invalid service status",
			map[string]string{"status": "Status must be one of: pending, in_progress, completed."})
	}
	if !ValidStatus(current) {
		current = models.ServiceStatusPending
	}

	m := fsm.NewFSM(
		current,
		statusEvents(),
		fsm.Callbacks{
			"after_event": func(_ context.Context, e *fsm.Event) {
				if e.Src != e.Dst {
					l.logger.Info("service status changed",
						zap.Int64("service_id", serviceID),
						zap.String("from", e.Src),
						zap.String("to", e.Dst),
					)
				}
			},
		},
	)

	if err := m.Event(ctx, next); err != nil {
		var noTransition fsm.NoTransitionError
		if !errors.As(err, &noTransition) {
			return "", apperrors.Wrap(apperrors.CodeInvalid, "invalid status transition", err)
		}
	}

	return m.Current(), nil
}

// statusEvents 每个状态对应一个事件，任意状态均可作为起点
func statusEvents() fsm.Events {
	events := make(fsm.Events, 0, len(serviceStatuses))
	for _, dst := range serviceStatuses {
		events = append(events, fsm.EventDesc{
			Name: dst,
			Src:  serviceStatuses,
			Dst:  dst,
		})
	}
	return events
}
