package main

import (
	"context"
	"fmt"

	"masterylog/internal/models"
)

func runAttempt(a *app, ctx context.Context, args []string) error {
	sub, rest, err := subcommand(args, "add", "list", "last", "edit", "delete")
	if err != nil {
		return err
	}
	switch sub {
	case "add":
		return attemptAdd(a, ctx, rest)
	case "list":
		return attemptList(a, ctx, rest)
	case "last":
		return attemptLast(a, ctx)
	case "edit":
		return attemptEdit(a, ctx, rest)
	default:
		return attemptDelete(a, ctx, rest)
	}
}

func attemptAdd(a *app, ctx context.Context, args []string) error {
	fs := newFlagSet("attempt add")
	attempt := models.Attempt{}
	fs.StringVarP(&attempt.ProblemID, "problem", "p", "", "Problem id (required)")
	fs.StringVarP(&attempt.Subject, "subject", "s", "", "Subject")
	fs.StringVarP(&attempt.MaterialNameEN, "material", "m", "", "Material name (English)")
	fs.StringVar(&attempt.MaterialNameRU, "material-ru", "", "Material name (Russian)")
	fs.StringVar(&attempt.ProblemTitle, "title", "", "Problem title")
	fs.StringVar(&attempt.UsedResources, "resources", "", "Resources used")
	fs.BoolVar(&attempt.Successful, "successful", false, "Solved without help")
	fs.IntVar(&attempt.TimeSpentMinutes, "minutes", 0, "Minutes spent")
	fs.StringVar(&attempt.ErrorsDescription, "errors", "", "What went wrong")
	fs.StringVar(&attempt.ResolutionStrategy, "strategy", "", "How it was resolved")
	fs.StringVar(&attempt.Annotation, "annotation", "", "Annotation")
	fs.StringVar(&attempt.Commentary, "commentary", "", "Commentary")
	fs.StringVar(&attempt.StatusTag, "status", "", "Status tag (default \"In Progress\")")
	fs.StringVar(&attempt.RelatedMaterial, "related", "", "Related material")
	at := fs.String("at", "", "When the attempt happened (default now)")
	_ = fs.Parse(args)

	if *at != "" {
		t, err := parseTime(*at, a.loc)
		if err != nil {
			return err
		}
		attempt.AttemptedAt = t
	}

	saved, err := a.attempts.Record(ctx, &attempt)
	if err != nil {
		return err
	}
	fmt.Printf("Logged attempt #%d for %s (%s, attempt %d of batch) id=%d\n",
		saved.AttemptNumber, saved.ProblemID, saved.BatchID, saved.BatchAttemptIndex, saved.ID)
	return nil
}

func attemptList(a *app, ctx context.Context, args []string) error {
	fs := newFlagSet("attempt list")
	var filter models.AttemptFilter
	fs.StringVarP(&filter.Subject, "subject", "s", "", "Only this subject")
	fs.StringVarP(&filter.ProblemID, "problem", "p", "", "Only this problem")
	fs.IntVarP(&filter.Limit, "limit", "n", 20, "Maximum rows, 0 for all")
	since := fs.String("since", "", "Only attempts at or after this date")
	_ = fs.Parse(args)

	if *since != "" {
		t, err := parseTime(*since, a.loc)
		if err != nil {
			return err
		}
		filter.Since = t
	}

	attempts, err := a.attempts.List(ctx, filter)
	if err != nil {
		return err
	}
	if len(attempts) == 0 {
		fmt.Println("No attempts logged")
		return nil
	}

	w := newTable()
	fmt.Fprintln(w, "ID\tWHEN\tPROBLEM\tBATCH\t#\tOK\tMIN\tSUBJECT\tMATERIAL")
	for _, at := range attempts {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\t%d\t%s\t%s\n",
			at.ID, formatTime(at.AttemptedAt, a.loc), at.ProblemID, at.BatchID, at.AttemptNumber,
			yesNo(at.Successful), at.TimeSpentMinutes, orDash(at.Subject), orDash(at.MaterialNameEN))
	}
	return w.Flush()
}

func attemptLast(a *app, ctx context.Context) error {
	at, err := a.attempts.Last(ctx)
	if err != nil {
		return err
	}
	printAttempt(a, at)
	return nil
}

func attemptEdit(a *app, ctx context.Context, args []string) error {
	fs := newFlagSet("attempt edit")
	problem := fs.StringP("problem", "p", "", "Problem id")
	errorsDesc := fs.String("errors", "", "What went wrong")
	strategy := fs.String("strategy", "", "How it was resolved")
	commentary := fs.String("commentary", "", "Commentary")
	minutes := fs.Int("minutes", 0, "Minutes spent")
	successful := fs.Bool("successful", false, "Solved without help")
	_ = fs.Parse(args)

	id, err := idArg(fs)
	if err != nil {
		return err
	}

	var edit models.AttemptEdit
	if fs.Changed("problem") {
		edit.ProblemID = problem
	}
	if fs.Changed("errors") {
		edit.ErrorsDescription = errorsDesc
	}
	if fs.Changed("strategy") {
		edit.ResolutionStrategy = strategy
	}
	if fs.Changed("commentary") {
		edit.Commentary = commentary
	}
	if fs.Changed("minutes") {
		edit.TimeSpentMinutes = minutes
	}
	if fs.Changed("successful") {
		edit.Successful = successful
	}

	updated, err := a.attempts.Update(ctx, id, edit)
	if err != nil {
		return err
	}
	printAttempt(a, updated)
	return nil
}

func attemptDelete(a *app, ctx context.Context, args []string) error {
	fs := newFlagSet("attempt delete")
	_ = fs.Parse(args)
	id, err := idArg(fs)
	if err != nil {
		return err
	}
	if err := a.attempts.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Printf("Deleted attempt %d\n", id)
	return nil
}

func runSubjects(a *app, ctx context.Context, args []string) error {
	subjects, err := a.attempts.Subjects(ctx)
	if err != nil {
		return err
	}
	for _, s := range subjects {
		fmt.Println(s)
	}
	return nil
}

func printAttempt(a *app, at *models.Attempt) {
	w := newTable()
	fmt.Fprintf(w, "ID\t%d\n", at.ID)
	fmt.Fprintf(w, "When\t%s\n", formatTime(at.AttemptedAt, a.loc))
	fmt.Fprintf(w, "Problem\t%s %s\n", at.ProblemID, at.ProblemTitle)
	fmt.Fprintf(w, "Attempt\t#%d (%s, index %d)\n", at.AttemptNumber, at.BatchID, at.BatchAttemptIndex)
	fmt.Fprintf(w, "Successful\t%s\n", yesNo(at.Successful))
	fmt.Fprintf(w, "Minutes\t%d\n", at.TimeSpentMinutes)
	fmt.Fprintf(w, "Subject\t%s\n", orDash(at.Subject))
	fmt.Fprintf(w, "Material\t%s / %s\n", orDash(at.MaterialNameEN), orDash(at.MaterialNameRU))
	fmt.Fprintf(w, "Status\t%s\n", at.StatusTag)
	fmt.Fprintf(w, "Errors\t%s\n", orDash(at.ErrorsDescription))
	fmt.Fprintf(w, "Strategy\t%s\n", orDash(at.ResolutionStrategy))
	fmt.Fprintf(w, "Commentary\t%s\n", orDash(at.Commentary))
	_ = w.Flush()
}
