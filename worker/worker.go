// Package worker runs the background jobs of the rental service: the
// overdue sweeps, session cleanup and notification sends. Jobs run on
// pond pools per queue and can be scheduled through a cron worker.
package worker

import (
	"context"
	"sync"
	"time"

	pond "github.com/alitto/pond/v2"
	"github.com/dkasparas/autonuoma/logger"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
)

// Queue names.
const (
	QueueMaintenance = "maintenance"
	QueueNotify      = "notify"
)

// Job is one queued or running background job.
type Job struct {
	ID      string
	Name    string
	Queue   string
	Added   time.Time
	Started time.Time
}

// JobSchedule is one registered cron schedule.
type JobSchedule struct {
	JobName        string
	ScheduleString string
	CronID         cron.EntryID
}

var (
	poolMaintenance pond.Pool
	poolNotify      pond.Pool

	cronWorker *cron.Cron

	queueSet   = make(map[string]*Job)
	schedules  []JobSchedule
	registryMu sync.Mutex

	ErrNotQueued    = errors.New("not queued")
	ErrInvalidQueue = errors.New("invalid queue")
)

type wrappedLogger struct{}

func (*wrappedLogger) Info(_ string, _ ...any) {
}

func (*wrappedLogger) Error(err error, msg string, keysAndValues ...any) {
	logger.Logtype("error").Any("values", keysAndValues).Str("msg", msg).Err(err).Msg("cron error")
}

// CreateWorkerPools sets up the job pools. size caps the concurrent jobs
// per queue.
func CreateWorkerPools(size int) {
	if size < 1 {
		size = 1
	}
	poolMaintenance = pond.NewPool(size)
	poolNotify = pond.NewPool(size)
}

// CreateCronWorker sets up the scheduler. Schedules use the six-field
// form with seconds.
func CreateCronWorker() {
	loggerworker := wrappedLogger{}
	cronWorker = cron.New(
		cron.WithLogger(&loggerworker),
		cron.WithChain(cron.Recover(&loggerworker), cron.SkipIfStillRunning(&loggerworker)),
		cron.WithSeconds(),
	)
}

// StartCronWorker starts executing registered schedules.
func StartCronWorker() {
	if cronWorker != nil {
		cronWorker.Start()
	}
}

// StopCronWorker stops the scheduler and waits for running jobs.
func StopCronWorker() {
	if cronWorker != nil {
		cronWorker.Stop()
	}
}

// StopWorkerPools drains the pools and waits for completion.
func StopWorkerPools() {
	if poolMaintenance != nil {
		poolMaintenance.StopAndWait()
	}
	if poolNotify != nil {
		poolNotify.StopAndWait()
	}
}

func getPool(queue string) pond.Pool {
	switch queue {
	case QueueMaintenance:
		return poolMaintenance
	case QueueNotify:
		return poolNotify
	}
	return nil
}

// Dispatch queues fn on the named queue. The job gets a uuid and shows up
// in GetQueue until it finishes.
func Dispatch(name string, fn func(ctx context.Context) error, queue string) error {
	pool := getPool(queue)
	if pool == nil {
		return ErrInvalidQueue
	}
	job := &Job{
		ID:    uuid.NewString(),
		Name:  name,
		Queue: queue,
		Added: time.Now(),
	}
	registryMu.Lock()
	queueSet[job.ID] = job
	registryMu.Unlock()

	if _, ok := pool.TrySubmitErr(runjob(job, fn)); !ok {
		registryMu.Lock()
		delete(queueSet, job.ID)
		registryMu.Unlock()
		return ErrNotQueued
	}
	return nil
}

func runjob(job *Job, fn func(ctx context.Context) error) func() error {
	return func() error {
		registryMu.Lock()
		job.Started = time.Now()
		registryMu.Unlock()
		defer func() {
			registryMu.Lock()
			delete(queueSet, job.ID)
			registryMu.Unlock()
		}()

		err := fn(context.Background())
		if err != nil {
			logger.Logtype("error").Err(err).Str("job", job.Name).Str("queue", job.Queue).Msg("job failed")
			return err
		}
		logger.Logtype("debug").Str("job", job.Name).Str("queue", job.Queue).Msg("job done")
		return nil
	}
}

// DispatchCron registers fn to be dispatched on cronStr.
func DispatchCron(cronStr, name, queue string, fn func(ctx context.Context) error) error {
	if cronWorker == nil {
		return errors.New("cron worker not created")
	}
	if getPool(queue) == nil {
		return ErrInvalidQueue
	}
	id, err := cronWorker.AddFunc(cronStr, func() {
		if err := Dispatch(name, fn, queue); err != nil {
			logger.Logtype("error").Err(err).Str("job", name).Msg("cron dispatch")
		}
	})
	if err != nil {
		return errors.Wrapf(err, "schedule %s", name)
	}
	registryMu.Lock()
	schedules = append(schedules, JobSchedule{JobName: name, ScheduleString: cronStr, CronID: id})
	registryMu.Unlock()
	return nil
}

// GetQueue snapshots the queued and running jobs.
func GetQueue() []Job {
	registryMu.Lock()
	defer registryMu.Unlock()
	jobs := make([]Job, 0, len(queueSet))
	for _, job := range queueSet {
		jobs = append(jobs, *job)
	}
	return jobs
}

// GetSchedules snapshots the registered cron schedules.
func GetSchedules() []JobSchedule {
	registryMu.Lock()
	defer registryMu.Unlock()
	result := make([]JobSchedule, len(schedules))
	copy(result, schedules)
	return result
}
