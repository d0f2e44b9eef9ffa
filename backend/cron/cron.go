package cron

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"shardvault/backend/config"
	"shardvault/backend/state"
	"shardvault/backend/vault"
	"shardvault/shared/constants"
)

const (
	LimiterTask    = "limiter"
	CheckpointTask = "checkpoint"
)

type CronTask struct {
	Name           string
	Interval       time.Duration
	IntervalAmount int
	Enabled        bool
	TaskFn         func()
}

// tasks: defines all background cron tasks in the vault daemon. This includes:
// - a limiter task for sweeping idle rate limiter entries
// - a checkpoint task that keeps the store's write-ahead log from growing
//   while the vault stays unlocked for long stretches
var tasks = []CronTask{
	{
		Name:           LimiterTask,
		Interval:       time.Second,
		IntervalAmount: constants.LimiterSeconds,
		Enabled:        true,
		TaskFn:         func() {}, // Set in InitCronTasks
	},
	{
		Name:           CheckpointTask,
		Interval:       time.Hour,
		IntervalAmount: 1,
		Enabled:        true,
		TaskFn:         func() {}, // Set in InitCronTasks
	},
}

func (task CronTask) getCronString() string {
	var intervalChar rune
	switch task.Interval {
	case time.Second:
		intervalChar = 's'
	case time.Minute:
		intervalChar = 'm'
	case time.Hour:
		intervalChar = 'h'
	default:
		log.Fatalf("Unsupported cron interval type: %s", task.Interval)
		return ""
	}

	return fmt.Sprintf("@every %d%c", task.IntervalAmount, intervalChar)
}

func (task CronTask) runCronTask() {
	if config.IsDebugMode {
		log.Printf("CRON: Running '%s' task...\n", task.Name)
	}

	task.TaskFn()
}

// InitCronTasks registers and starts the background tasks. Task bodies that
// live in packages importing this one's callers are injected here.
func InitCronTasks(appCtx *state.Context, limiterFn func()) {
	c := cron.New()

	for _, task := range tasks {
		if !task.Enabled {
			continue
		}

		switch task.Name {
		case LimiterTask:
			task.TaskFn = limiterFn
		case CheckpointTask:
			task.TaskFn = checkpointFn(appCtx)
		}

		_, err := c.AddFunc(task.getCronString(), task.runCronTask)
		if err == nil {
			log.Printf("Added cron task '%s'\n", task.Name)
		} else {
			log.Printf("Error adding cron task: %v\n", err)
		}
	}

	c.Start()
}

// checkpointFn builds the checkpoint task body. A locked vault has no store
// to checkpoint, which is not an error.
func checkpointFn(appCtx *state.Context) func() {
	return func() {
		err := appCtx.WithSession(func(session *vault.Session) error {
			return session.Store().Checkpoint()
		})
		if err != nil && !errors.Is(err, state.VaultLockedError) {
			log.Printf("Error checkpointing store: %v\n", err)
		}
	}
}
