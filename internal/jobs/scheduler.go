package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultJobTimeout сколько может выполняться один запуск задачи
const DefaultJobTimeout = 5 * time.Minute

// Scheduler запускает задачи по cron-расписанию.
// Ошибки задач только логируются, повторов нет: следующий запуск по расписанию.
type Scheduler struct {
	cron    *cron.Cron
	timeout time.Duration
	logger  Logger
}

// NewScheduler loc часовой пояс, в котором интерпретируются расписания
func NewScheduler(loc *time.Location, logger Logger) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	adapter := cronLogger{logger: logger}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(adapter),
			cron.WithChain(cron.Recover(adapter), cron.SkipIfStillRunning(adapter)),
		),
		timeout: DefaultJobTimeout,
		logger:  logger,
	}
}

// Add регистрирует задачу. Пустое расписание отключает задачу.
func (s *Scheduler) Add(spec string, job Job) error {
	if spec == "" {
		s.logger.Info("Scheduler: job %s disabled", job.Name())
		return nil
	}

	if _, err := s.cron.AddFunc(spec, func() { s.run(job) }); err != nil {
		return fmt.Errorf("schedule job %s with spec %q: %w", job.Name(), spec, err)
	}
	s.logger.Info("Scheduler: job %s scheduled: spec=%q", job.Name(), spec)
	return nil
}

// Jobs количество зарегистрированных задач
func (s *Scheduler) Jobs() int {
	return len(s.cron.Entries())
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop останавливает планировщик и ждет завершения запущенных задач, но не дольше ctx
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) run(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	if err := job.Run(ctx); err != nil {
		s.logger.Error("Scheduler: job %s failed after %s: %v", job.Name(), time.Since(start), err)
		return
	}
	s.logger.Info("Scheduler: job %s finished in %s", job.Name(), time.Since(start))
}

// cronLogger адаптер под интерфейс логгера robfig/cron
type cronLogger struct {
	logger Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	// cron пишет в Info каждое пробуждение, это шум
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: %s: %v %v", msg, err, keysAndValues)
}
