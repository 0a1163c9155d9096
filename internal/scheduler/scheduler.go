// Package scheduler runs a bounded queue of tasks with one recurring
// low-priority job, used to periodically evict the toc loader's memo cache.
package scheduler

import (
	"sync"
	"time"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("tocloader.scheduler")

// Task is one unit of work the scheduler can run.
type Task struct {
	Name    string
	Execute func() error
}

// Scheduler serializes task execution through a single worker goroutine,
// with a separate periodic-scheduling goroutine for the low-priority job.
type Scheduler struct {
	taskQueue       chan Task
	lowPriorityLock sync.Mutex
	stopChan        chan struct{}
	wg              sync.WaitGroup
}

// NewScheduler creates a Scheduler whose task queue holds up to queueSize
// pending tasks before ScheduleHighPriorityTask blocks.
func NewScheduler(queueSize int) *Scheduler {
	return &Scheduler{
		taskQueue: make(chan Task, queueSize),
		stopChan:  make(chan struct{}),
	}
}

// RunScheduler starts the worker loop in the background.
func (s *Scheduler) RunScheduler() {
	go func() {
		for {
			select {
			case task, ok := <-s.taskQueue:
				if !ok {
					return
				}
				s.run(task)
			case <-s.stopChan:
				for task := range s.taskQueue {
					s.run(task)
				}
				return
			}
		}
	}()
}

func (s *Scheduler) run(task Task) {
	log.Debugf("executing task %s", task.Name)
	if err := task.Execute(); err != nil {
		log.Warningf("task %s failed: %s", task.Name, err)
	}
	s.wg.Done()
}

// SchedulePeriodicTask runs lowTask immediately and then every interval,
// until StopScheduler is called. A full queue skips that tick rather than
// blocking the ticker.
func (s *Scheduler) SchedulePeriodicTask(interval time.Duration, lowTask Task) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.lowPriorityLock.Lock()
	s.wg.Add(1)
	s.run(lowTask)
	s.lowPriorityLock.Unlock()

	for {
		select {
		case <-ticker.C:
			s.lowPriorityLock.Lock()
			select {
			case s.taskQueue <- lowTask:
				s.wg.Add(1)
			default:
				log.Warningf("skipped scheduling %s: queue full", lowTask.Name)
			}
			s.lowPriorityLock.Unlock()
		case <-s.stopChan:
			return
		}
	}
}

// ScheduleHighPriorityTask enqueues task ahead of the next periodic tick.
func (s *Scheduler) ScheduleHighPriorityTask(task Task) {
	s.wg.Add(1)
	s.taskQueue <- task
}

// StopScheduler signals every running loop to stop, drains the queue, and
// waits for in-flight tasks to finish.
func (s *Scheduler) StopScheduler() {
	close(s.stopChan)
	close(s.taskQueue)
	s.wg.Wait()
}
