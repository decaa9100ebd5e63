package main

import (
	"database/sql"

	"pfhr-workers/internal/common/aws"
	"pfhr-workers/internal/common/camunda"
	"pfhr-workers/internal/common/config"
	"pfhr-workers/internal/common/logger"
	computescore "pfhr-workers/internal/workers/pfhr/compute-pfhr-score"
	getlatest "pfhr-workers/internal/workers/pfhr/get-latest-pfhr-assessment"
	recordassessment "pfhr-workers/internal/workers/pfhr/record-pfhr-assessment"
	sendsummary "pfhr-workers/internal/workers/pfhr/send-pfhr-summary"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

type deps struct {
	db    *sql.DB
	redis *redis.Client
	aws   *aws.Clients
	log   logger.Logger
}

// workerRegistrar is the part of camunda.Registrar main needs.
type workerRegistrar interface {
	Register(taskType string, wcfg config.WorkerConfig, handler worker.JobHandler) bool
}

var _ workerRegistrar = (*camunda.Registrar)(nil)

// registerWorkers opens every enabled PFHR worker and returns how many started.
func registerWorkers(r workerRegistrar, cfg *config.Config, d deps) int {
	handlers := []struct {
		taskType string
		handler  worker.JobHandler
	}{
		{
			taskType: computescore.TaskType,
			handler:  computescore.NewHandler(computescore.LoadConfig(cfg), d.log).Handle,
		},
		{
			taskType: recordassessment.TaskType,
			handler:  recordassessment.NewHandler(recordassessment.LoadConfig(cfg), d.db, d.redis, d.log).Handle,
		},
		{
			taskType: getlatest.TaskType,
			handler:  getlatest.NewHandler(getlatest.LoadConfig(cfg), d.db, d.redis, d.log).Handle,
		},
		{
			taskType: sendsummary.TaskType,
			handler:  sendsummary.NewHandler(sendsummary.LoadConfig(cfg), d.db, d.aws, d.log).Handle,
		},
	}

	started := 0
	for _, h := range handlers {
		if r.Register(h.taskType, config.GetWorkerConfig(cfg, h.taskType), h.handler) {
			started++
		}
	}
	return started
}
