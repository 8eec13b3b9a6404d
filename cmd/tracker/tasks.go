package main

import (
	"context"
	"fmt"
	"strings"

	"masterylog/internal/models"
)

func runTask(a *app, ctx context.Context, args []string) error {
	sub, rest, err := subcommand(args, "add", "list", "toggle", "delete")
	if err != nil {
		return err
	}
	switch sub {
	case "add":
		return taskAdd(a, ctx, rest)
	case "list":
		return taskList(a, ctx)
	case "toggle":
		return taskToggle(a, ctx, rest)
	default:
		return taskDelete(a, ctx, rest)
	}
}

func taskAdd(a *app, ctx context.Context, args []string) error {
	fs := newFlagSet("task add")
	priority := fs.StringP("priority", "p", string(models.PriorityMedium), "high, medium or low")
	deadline := fs.StringP("deadline", "d", "", "Deadline date")
	_ = fs.Parse(args)

	t := models.Task{
		Text:     strings.Join(fs.Args(), " "),
		Priority: models.Priority(*priority),
	}
	due, err := optionalTime(*deadline, a.loc)
	if err != nil {
		return err
	}
	t.Deadline = due

	if err := a.tasks.Add(ctx, &t); err != nil {
		return err
	}
	fmt.Printf("Added task %d (%s)\n", t.ID, t.Priority)
	return nil
}

func taskList(a *app, ctx context.Context) error {
	tasks, err := a.tasks.List(ctx)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		fmt.Println("No tasks")
		return nil
	}

	w := newTable()
	fmt.Fprintln(w, "ID\tDONE\tPRIORITY\tDEADLINE\tTASK")
	for _, t := range tasks {
		done := "[ ]"
		if t.Completed {
			done = "[x]"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			t.ID, done, t.Priority, formatOptionalTime(t.Deadline, a.loc, dateLayout), t.Text)
	}
	return w.Flush()
}

func taskToggle(a *app, ctx context.Context, args []string) error {
	fs := newFlagSet("task toggle")
	_ = fs.Parse(args)
	id, err := idArg(fs)
	if err != nil {
		return err
	}
	completed, err := a.tasks.Toggle(ctx, id)
	if err != nil {
		return err
	}
	if completed {
		fmt.Printf("Task %d completed\n", id)
	} else {
		fmt.Printf("Task %d reopened\n", id)
	}
	return nil
}

func taskDelete(a *app, ctx context.Context, args []string) error {
	fs := newFlagSet("task delete")
	_ = fs.Parse(args)
	id, err := idArg(fs)
	if err != nil {
		return err
	}
	if err := a.tasks.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Printf("Deleted task %d\n", id)
	return nil
}
