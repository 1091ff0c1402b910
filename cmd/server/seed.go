package main

import (
	"context"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
)

type seedTask struct {
	title       string
	description string
	dueInDays   int
}

var sampleTasks = []seedTask{
	{"Project Alpha Review", "Initial assessment of Project Alpha.", 1},
	{"Project Alpha Follow-up Meeting", "Follow-up meeting to discuss Project Alpha progress.", 2},
	{"Project Alpha Finalization", "Finalization of Project Alpha deliverables.", 3},
	{"Project Beta Review", "Initial assessment of Project Beta.", 7},
	{"Project Beta Follow-up Meeting", "Follow-up meeting for Project Beta to review progress.", 8},
	{"Project Gamma Review", "Initial assessment of Project Gamma.", 14},
}

// seedTasks inserts the sample tasks, all completed, when the store is empty.
// It returns the number of tasks inserted.
func seedTasks(ctx context.Context, tasks store.TaskStore, today domain.Date) (int, error) {
	inserted := 0
	err := tasks.RunInTx(ctx, func(ctx context.Context, tx store.TaskStore) error {
		existing, err := tx.ListTitles(ctx)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return nil
		}

		for _, s := range sampleTasks {
			task, err := domain.NewTask(domain.TaskInput{
				Title:       s.title,
				Description: s.description,
				DueDate:     today.AddDays(s.dueInDays),
				Status:      domain.TaskStatusCompleted,
			}, today)
			if err != nil {
				return err
			}
			if err := tx.Create(ctx, task); err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}
