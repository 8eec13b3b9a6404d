package main

import (
	"context"
	"fmt"

	"masterylog/internal/mastery"
	"masterylog/internal/models"
)

func runMaterial(a *app, ctx context.Context, args []string) error {
	sub, rest, err := subcommand(args, "upsert", "list", "delete")
	if err != nil {
		return err
	}
	switch sub {
	case "upsert":
		return materialUpsert(a, ctx, rest)
	case "list":
		return materialList(a, ctx, rest)
	default:
		return materialDelete(a, ctx, rest)
	}
}

func materialUpsert(a *app, ctx context.Context, args []string) error {
	fs := newFlagSet("material upsert")
	var m models.Material
	fs.StringVar(&m.MaterialID, "id", "", "Material id (required)")
	fs.StringVarP(&m.MaterialNameEN, "name", "n", "", "Material name (required)")
	fs.StringVarP(&m.Subject, "subject", "s", "", "Subject")
	status := fs.String("status", string(models.StatusNotStarted), "Not Started, Learning, Practicing, Mastered or Paused")
	fs.IntVar(&m.TotalProblems, "total", 0, "Problems in the material")
	fs.IntVar(&m.ProblemsSolved, "solved", 0, "Problems solved")
	fs.Float64Var(&m.AvgAttemptsLastBatch, "avg-last-batch", 0, "Average attempts in the last batch")
	fs.StringVar(&m.Commentary, "commentary", "", "Commentary")
	fs.StringVar(&m.ResourcesList, "resources", "", "Resources")
	fs.BoolVar(&m.ForcedStop, "forced-stop", false, "Stopped before mastery")
	reviewed := fs.String("reviewed", "", "Last review time (default now)")
	_ = fs.Parse(args)

	m.Status = models.MaterialStatus(*status)
	t, err := optionalTime(*reviewed, a.loc)
	if err != nil {
		return err
	}
	m.LastReviewedAt = t

	if err := a.materials.Upsert(ctx, &m); err != nil {
		return err
	}
	fmt.Printf("Saved material %s (%s, %d/%d solved)\n", m.MaterialID, m.Status, m.ProblemsSolved, m.TotalProblems)
	return nil
}

func materialList(a *app, ctx context.Context, args []string) error {
	fs := newFlagSet("material list")
	subject := fs.StringP("subject", "s", "", "Only this subject")
	_ = fs.Parse(args)

	var materials []models.Material
	var err error
	if *subject != "" {
		materials, err = a.materials.BySubject(ctx, *subject)
	} else {
		materials, err = a.materials.List(ctx)
	}
	if err != nil {
		return err
	}
	if len(materials) == 0 {
		fmt.Println("No materials")
		return nil
	}

	w := newTable()
	fmt.Fprintln(w, "ID\tMATERIAL\tNAME\tSUBJECT\tSTATUS\tSOLVED\tAVG LAST BATCH\tREVIEWED\tFORCED STOP")
	for _, m := range materials {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d/%d\t%.2f\t%s\t%s\n",
			m.ID, m.MaterialID, m.MaterialNameEN, orDash(m.Subject), m.Status,
			m.ProblemsSolved, m.TotalProblems, m.AvgAttemptsLastBatch,
			formatOptionalTime(m.LastReviewedAt, a.loc, dateTimeLayout), yesNo(m.ForcedStop))
	}
	return w.Flush()
}

func materialDelete(a *app, ctx context.Context, args []string) error {
	fs := newFlagSet("material delete")
	_ = fs.Parse(args)
	id, err := idArg(fs)
	if err != nil {
		return err
	}
	if err := a.materials.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Printf("Deleted material %d\n", id)
	return nil
}

func runSubjectStats(a *app, ctx context.Context, args []string) error {
	stats, err := a.materials.SubjectStats(ctx)
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Println("No materials with a subject")
		return nil
	}

	w := newTable()
	fmt.Fprintln(w, "SUBJECT\tMATERIALS\tSOLVED\tPROGRESS\tAVG ATTEMPTS\tLAST ACTIVITY")
	for _, s := range stats {
		progress := 0.0
		if s.TotalProblems > 0 {
			progress = mastery.Round(float64(s.ProblemsSolved)/float64(s.TotalProblems)*100, 1)
		}
		fmt.Fprintf(w, "%s\t%d\t%d/%d\t%.1f%%\t%.2f\t%s\n",
			s.Subject, s.Materials, s.ProblemsSolved, s.TotalProblems, progress, s.AvgAttempts,
			formatOptionalTime(s.LastActivity, a.loc, dateTimeLayout))
	}
	return w.Flush()
}

func runDrill(a *app, ctx context.Context, args []string) error {
	sub, rest, err := subcommand(args, "add", "list", "delete")
	if err != nil {
		return err
	}
	switch sub {
	case "add":
		return drillAdd(a, ctx, rest)
	case "list":
		return drillList(a, ctx, rest)
	default:
		return drillDelete(a, ctx, rest)
	}
}

func drillAdd(a *app, ctx context.Context, args []string) error {
	fs := newFlagSet("drill add")
	var d models.DrillingLog
	fs.StringVar(&d.MaterialID, "material", "", "Material id (required)")
	fs.StringVarP(&d.Subject, "subject", "s", "", "Subject")
	fs.StringVar(&d.MaterialNameEN, "name", "", "Material name (English)")
	fs.StringVar(&d.MaterialNameRU, "name-ru", "", "Material name (Russian)")
	fs.IntVar(&d.AttemptNumber, "attempt", 1, "Attempt number")
	fs.StringVar(&d.Status, "status", "", "Status")
	fs.StringVar(&d.ErrorsRU, "errors", "", "Errors (Russian)")
	fs.StringVar(&d.ResolutionStrategyRU, "strategy", "", "Resolution strategy (Russian)")
	fs.StringVar(&d.CommentaryRU, "commentary", "", "Commentary (Russian)")
	fs.StringVar(&d.UsedKeywords, "keywords", "", "Keywords used")
	at := fs.String("at", "", "When the session happened (default now)")
	_ = fs.Parse(args)

	if *at != "" {
		t, err := parseTime(*at, a.loc)
		if err != nil {
			return err
		}
		d.DrilledAt = t
	}
	if err := a.drills.Record(ctx, &d); err != nil {
		return err
	}
	fmt.Printf("Logged drilling session %d for %s\n", d.ID, d.MaterialID)
	return nil
}

func drillList(a *app, ctx context.Context, args []string) error {
	fs := newFlagSet("drill list")
	material := fs.String("material", "", "Only this material id")
	_ = fs.Parse(args)

	var logs []models.DrillingLog
	var err error
	if *material != "" {
		logs, err = a.drills.ByMaterial(ctx, *material)
	} else {
		logs, err = a.drills.List(ctx)
	}
	if err != nil {
		return err
	}
	if len(logs) == 0 {
		fmt.Println("No drilling sessions")
		return nil
	}

	w := newTable()
	fmt.Fprintln(w, "ID\tWHEN\tMATERIAL\tNAME (RU)\t#\tSTATUS\tERRORS\tKEYWORDS")
	for _, d := range logs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			d.ID, formatTime(d.DrilledAt, a.loc), d.MaterialID, orDash(d.MaterialNameRU),
			d.AttemptNumber, orDash(d.Status), orDash(d.ErrorsRU), orDash(d.UsedKeywords))
	}
	return w.Flush()
}

func drillDelete(a *app, ctx context.Context, args []string) error {
	fs := newFlagSet("drill delete")
	_ = fs.Parse(args)
	id, err := idArg(fs)
	if err != nil {
		return err
	}
	if err := a.drills.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Printf("Deleted drilling session %d\n", id)
	return nil
}
