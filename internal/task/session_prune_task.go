package task

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"fc_shop_v1/internal/middleware"
	"fc_shop_v1/pkg/logger"
)

// ==================== SessionPruneTask 会话清理任务 ====================

// SessionPruneTask 定期清理过期会话
// 会话注册表在内存里，不清理会随登录次数缓慢增长
type SessionPruneTask struct {
	Cron *cron.Cron
	spec string
}

// NewSessionPruneTask 创建会话清理任务
func NewSessionPruneTask(spec string) *SessionPruneTask {
	return &SessionPruneTask{
		Cron: cron.New(cron.WithSeconds()),
		spec: spec,
	}
}

// Start 启动定时任务
func (t *SessionPruneTask) Start() error {
	_, err := t.Cron.AddFunc(t.spec, func() {
		if pruned := middleware.PruneExpiredSessions(); pruned > 0 {
			logger.L().Info("已清理过期会话",
				zap.Int("pruned", pruned),
				zap.Int("active", middleware.ActiveSessionCount()))
		}
	})
	if err != nil {
		return err
	}

	t.Cron.Start()
	logger.L().Info("会话清理任务已启动", zap.String("spec", t.spec))
	return nil
}

// Stop 停止定时任务
func (t *SessionPruneTask) Stop() {
	t.Cron.Stop()
}
