package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"team-project-api/internal/tasks"
)

// WorkerServer 封装了 Asynq Worker Server 的启动和关闭逻辑
type WorkerServer struct {
	server       *asynq.Server
	log          *logrus.Entry
	statsHandler *StatsRefreshHandler
}

// NewWorkerServer 创建一个新的 WorkerServer 实例
func NewWorkerServer(redisOpt asynq.RedisClientOpt, refresher StatsRefresher, logger *logrus.Logger) *WorkerServer {
	logEntry := logger.WithField("component", "worker_server")

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"default": 3,
				"low":     1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				retryCount, _ := asynq.GetRetryCount(ctx)
				maxRetry, _ := asynq.GetMaxRetry(ctx)
				taskID, _ := asynq.GetTaskID(ctx)
				logEntry.WithFields(logrus.Fields{
					"task_id":   taskID,
					"task_type": task.Type(),
					"retries":   retryCount,
					"max_retry": maxRetry,
				}).Errorf("Task failed: %v", err)
			}),
			Logger: logEntry,
		},
	)

	return &WorkerServer{
		server:       server,
		log:          logEntry,
		statsHandler: NewStatsRefreshHandler(refresher),
	}
}

// Mux 返回注册了全部任务处理器的 ServeMux
func (ws *WorkerServer) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeStatsRefresh, ws.statsHandler.ProcessTask)
	return mux
}

// Start 启动 Worker Server，处理任务的 goroutine 由 asynq 管理，不会阻塞
func (ws *WorkerServer) Start() error {
	ws.log.Info("Worker server starting...")
	if err := ws.server.Start(ws.Mux()); err != nil {
		if errors.Is(err, asynq.ErrServerClosed) {
			ws.log.Info("Worker server already stopped.")
			return nil
		}
		return fmt.Errorf("could not start worker server: %w", err)
	}
	return nil
}

// Shutdown 优雅地关闭 Worker Server
func (ws *WorkerServer) Shutdown() {
	ws.log.Info("Shutting down worker server...")
	ws.server.Shutdown()
	ws.log.Info("Worker server shut down complete.")
}
