package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"collection_compliance_engine/internal/app"
	"collection_compliance_engine/internal/domain/reminder"
	"collection_compliance_engine/internal/domain/report"
	"collection_compliance_engine/internal/domain/runlog"
	"collection_compliance_engine/internal/infra/config"
	idb "collection_compliance_engine/internal/infra/database"
	"collection_compliance_engine/internal/infra/logger"
	infraMessaging "collection_compliance_engine/internal/infra/messaging"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "status":
		runStatus(os.Args[2:])
	case "report":
		runReport(os.Args[2:])
	case "remind":
		runRemind(os.Args[2:])
	case "check":
		runCheck(os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runStatus(args []string) {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	weeksAgo := fs.Int("weeks-ago", 0, "How many weeks back (0 = current week)")
	fs.Parse(args)

	deps := openDeps(false)
	defer deps.close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	wk, err := deps.reports.WeeklyReport(ctx, *weeksAgo)
	if err != nil {
		exitWithError(err)
	}
	printWeekReport(wk)
}

func runReport(args []string) {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	weeks := fs.Int("weeks", 4, "Number of weeks to cover, most recent first")
	jsonOut := fs.String("json", "", "Optional JSON output path")
	fs.Parse(args)

	deps := openDeps(false)
	defer deps.close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	rep, err := deps.reports.MultiWeekReport(ctx, *weeks)
	if err != nil {
		exitWithError(err)
	}
	printMultiWeekReport(rep)

	if *jsonOut != "" {
		if err := writeJSON(rep, *jsonOut); err != nil {
			exitWithError(err)
		}
		fmt.Printf("\nJSON report saved to %s\n", *jsonOut)
	}
}

func runRemind(args []string) {
	fs := flag.NewFlagSet("remind", flag.ExitOnError)
	location := fs.String("location", "", "Location to remind (canonical name or close variant)")
	channelFlag := fs.String("channel", "", "Force a channel: sms or email (default picks per contact)")
	appURL := fs.String("app-url", "", "Submission link for the message body (default APP_BASE_URL)")
	fs.Parse(args)

	if *location == "" {
		exitWithError(errors.New("-location is required"))
	}
	channel, ok := reminder.ParseChannel(*channelFlag)
	if !ok {
		exitWithError(fmt.Errorf("unknown channel %q (want sms or email)", *channelFlag))
	}

	deps := openDeps(true)
	defer deps.close()

	// Paced sequential dispatch; allow time for a handful of sends.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	summary, err := deps.reminders.SendLocationReminder(ctx, *location, channel, *appURL)
	if err != nil {
		exitWithError(err)
	}
	printDispatchSummary(summary)
}

func runCheck(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	slotFlag := fs.String("slot", string(runlog.SlotManual), "Run slot to record (PRIMARY_REMINDER, FINAL_REMINDER, MANUAL)")
	force := fs.Bool("force", false, "Bypass the once-per-day guard for designated slots")
	fs.Parse(args)

	slot := runlog.Slot(strings.ToUpper(*slotFlag))
	switch slot {
	case runlog.SlotPrimaryReminder, runlog.SlotFinalReminder, runlog.SlotManual:
	default:
		exitWithError(fmt.Errorf("unknown slot %q", *slotFlag))
	}

	deps := openDeps(true)
	defer deps.close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	// Manual runs are never guarded.
	outcome, err := deps.reminders.RunComplianceCheck(ctx, slot, *force || slot == runlog.SlotManual)
	if err != nil {
		exitWithError(err)
	}
	printCheckOutcome(slot, outcome)
}

// cliDeps wires the engine the same way the daemon does. The dispatching
// commands additionally need transports and the run ledger.
type cliDeps struct {
	db        *sql.DB
	reports   *app.ReportService
	reminders app.ReminderService
}

func openDeps(withDispatch bool) *cliDeps {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(err)
	}
	logger.Init(cfg)

	tracked, err := config.LoadRoster(cfg.RosterPath)
	if err != nil {
		exitWithError(fmt.Errorf("could not load location roster from %s: %w", cfg.RosterPath, err))
	}

	db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		exitWithError(fmt.Errorf("could not connect to database: %w", err))
	}

	submissionStore := idb.NewPostgresSubmissionRepository(db)
	contactDirectory := idb.NewPostgresContactDirectory(db)
	deps := &cliDeps{
		db:      db,
		reports: app.NewReportService(tracked, submissionStore, contactDirectory, logger.Log),
	}

	if withDispatch {
		runLedger := idb.NewPostgresRunLedger(db)
		if err := runLedger.EnsureSchema(context.Background()); err != nil {
			db.Close()
			exitWithError(fmt.Errorf("could not prepare compliance run table: %w", err))
		}
		deps.reminders = app.NewReminderServiceImpl(
			deps.reports,
			contactDirectory,
			infraMessaging.BuildSMSSender(cfg, logger.Log),
			infraMessaging.BuildEmailSender(cfg, logger.Log),
			runLedger,
			cfg.AppBaseURL,
			logger.Log,
		)
	}
	return deps
}

func (d *cliDeps) close() {
	d.db.Close()
}

func printWeekReport(wk report.WeekReport) {
	submitted := 0
	for _, st := range wk.Statuses {
		if st.HasSubmitted {
			submitted++
		}
	}

	fmt.Println("Weekly Submission Status")
	fmt.Println(strings.Repeat("=", 40))
	fmt.Printf("Window: %s\n", wk.Window.Label())
	fmt.Printf("Locations: %d | Submitted: %d | Missing: %d\n", len(wk.Statuses), submitted, len(wk.Statuses)-submitted)

	fmt.Println()
	for _, st := range wk.Statuses {
		marker := "MISSING"
		if st.HasSubmitted {
			marker = "OK"
		}
		line := fmt.Sprintf("%s | %s", st.Location.Name, marker)
		if st.Quorum != nil {
			line += fmt.Sprintf(" | %s %s, %s %s",
				st.Quorum.RoleALabel, metLabel(st.Quorum.RoleAMet),
				st.Quorum.RoleBLabel, metLabel(st.Quorum.RoleBMet))
		}
		if len(st.Submitters) > 0 {
			line += " | " + strings.Join(st.Submitters, ", ")
		}
		if st.LastSubmission != nil {
			line += " | last " + st.LastSubmission.Format("2006-01-02 15:04")
		}
		fmt.Println(line)
	}
}

func printMultiWeekReport(rep report.MultiWeekReport) {
	fmt.Println("Collection Compliance Report")
	fmt.Println(strings.Repeat("=", 40))
	fmt.Printf("Weeks covered: %d | Locations: %d\n", rep.Summary.Overall.WeeksCovered, rep.Summary.Overall.Locations)
	fmt.Printf("Overall: %d/%d submitted (%d%% completion)\n",
		rep.Summary.Overall.TotalSubmitted, rep.Summary.Overall.TotalExpected, rep.Summary.Overall.CompletionRate)

	fmt.Println("\nMost reliable")
	fmt.Println(strings.Repeat("-", 40))
	if len(rep.Summary.MostReliable) == 0 {
		fmt.Println("No locations at or above the reliability bar.")
	}
	for _, entry := range rep.Summary.MostReliable {
		fmt.Printf("%s | %d%% | %d/%d submitted\n",
			entry.Location, entry.Percentage, entry.Submitted, entry.Submitted+entry.Missed)
	}

	fmt.Println("\nMost missing")
	fmt.Println(strings.Repeat("-", 40))
	if len(rep.Summary.MostMissing) == 0 {
		fmt.Println("No locations with missed weeks.")
	}
	for _, entry := range rep.Summary.MostMissing {
		fmt.Printf("%s | missed %d | %d/%d submitted\n",
			entry.Location, entry.Missed, entry.Submitted, entry.Submitted+entry.Missed)
	}

	fmt.Println("\nWeek by week")
	fmt.Println(strings.Repeat("-", 40))
	for _, wk := range rep.Weeks {
		submitted := 0
		var missing []string
		for _, st := range wk.Statuses {
			if st.HasSubmitted {
				submitted++
			} else {
				missing = append(missing, st.Location.Name)
			}
		}
		fmt.Printf("%s | submitted %d/%d\n", wk.Window.Label(), submitted, len(wk.Statuses))
		if len(missing) > 0 {
			fmt.Printf("  missing: %s\n", strings.Join(missing, ", "))
		}
	}
}

func printDispatchSummary(summary reminder.DispatchSummary) {
	fmt.Printf("Dispatch complete: %d sent, %d failed\n", summary.Sent, summary.Failed)
	for _, res := range summary.Results {
		channel := string(res.Channel)
		if channel == "" {
			channel = "-"
		}
		target := res.Target.Name
		if target == "" {
			target = "-"
		}
		if res.Success {
			fmt.Printf("sent | %s | %s | %s | id %s\n", res.Location, channel, target, res.ProviderMessageID)
		} else {
			fmt.Printf("failed | %s | %s | %s | %s\n", res.Location, channel, target, res.Error)
		}
	}
}

func printCheckOutcome(slot runlog.Slot, outcome app.CheckOutcome) {
	if outcome.Skipped {
		fmt.Printf("Compliance check for slot %s already ran today (run %s). Nothing dispatched.\n", slot, outcome.RunID)
		fmt.Printf("Recorded: %d locations, %d gaps, %d sent, %d failed\n",
			outcome.LocationsChecked, outcome.GapsFound, outcome.RemindersSent, outcome.RemindersFailed)
		return
	}
	fmt.Printf("Compliance check complete (run %s)\n", outcome.RunID)
	fmt.Printf("Locations checked: %d | Gaps: %d\n", outcome.LocationsChecked, outcome.GapsFound)
	if !outcome.Triggered {
		fmt.Println("All locations compliant. No reminders needed.")
		return
	}
	fmt.Printf("Reminders sent: %d | Failed: %d\n", outcome.RemindersSent, outcome.RemindersFailed)
}

func writeJSON(rep report.MultiWeekReport, path string) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func printUsage() {
	fmt.Println(`Collection Compliance Engine CLI

Usage:
  compliancectl <command> [flags]

Commands:
  status   Per-location submission status for one week
  report   Multi-week compliance report with reliability rankings
  remind   Send reminders for a single location
  check    Run the full compliance check and dispatch reminders

Run "compliancectl <command> -h" for command flags.`)
}

func metLabel(met bool) string {
	if met {
		return "ok"
	}
	return "missing"
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}
