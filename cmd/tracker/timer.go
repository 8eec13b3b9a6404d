package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"masterylog/internal/models"
	"masterylog/internal/timer"
)

func runTimer(a *app, ctx context.Context, args []string) error {
	fs := newFlagSet("timer")
	phaseName := fs.String("phase", string(timer.PhaseDiscovery), "discovery (15m), drilling (25m) or integration (10m)")
	problem := fs.StringP("problem", "p", "", "Log the captured minutes as an attempt at this problem")
	subject := fs.StringP("subject", "s", "", "Subject of the logged attempt")
	material := fs.StringP("material", "m", "", "Material of the logged attempt")
	successful := fs.Bool("successful", false, "Mark the logged attempt successful")
	_ = fs.Parse(args)

	phase, err := timer.ParsePhase(*phaseName)
	if err != nil {
		return usageError(err.Error())
	}

	sw := timer.NewStopwatch(phase)
	fmt.Printf("%s phase, target %s. Press Enter to stop.\n", phase, phase.Target())
	sw.Start()

	stop := make(chan struct{})
	go func() {
		_, _ = bufio.NewReader(os.Stdin).ReadString('\n')
		close(stop)
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-ticker.C:
			fmt.Printf("\r%s   ", sw.Status())
		case <-stop:
			break loop
		case <-quit:
			break loop
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	minutes := sw.Stop()
	fmt.Printf("\r%s\nCaptured %d minute(s)\n", sw.Status(), minutes)

	if *problem == "" {
		return nil
	}
	saved, err := a.attempts.Record(ctx, &models.Attempt{
		ProblemID:        *problem,
		Subject:          *subject,
		MaterialNameEN:   *material,
		Successful:       *successful,
		TimeSpentMinutes: minutes,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Logged attempt #%d for %s (%s)\n", saved.AttemptNumber, saved.ProblemID, saved.BatchID)
	return nil
}
