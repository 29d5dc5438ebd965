package cmd

import (
	"context"
	"errors"
	"fmt"

	"list-reconciler/core/config"
	"list-reconciler/core/logger"
	"list-reconciler/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// integrityCheck selects which checks runIntegrityChecks performs.
type integrityCheck int

const (
	checkAll integrityCheck = iota
	checkStructure
	checkArchive
	checkServer
)

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on the list store",
	Long:  `Checks the storage bucket structure, the revision archive and the database schema.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return cmd.Help()
		}
		return runIntegrityChecks(cmd.Context(), checkAll)
	},
}

// structureCmd represents the integrity structure command
var structureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Check and fix the archive folder",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), checkStructure)
	},
}

// archiveCmd represents the integrity archive command
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Check and fix archived revision snapshots",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), checkArchive)
	},
}

// serverCmd represents the integrity server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Check integrity of the list database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), checkServer)
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(structureCmd, archiveCmd, serverCmd)

	structureCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create the missing archive folder")
	archiveCmd.Flags().BoolVar(&fixFlag, "fix", false, "Archive revisions without a snapshot")
}

func runIntegrityChecks(ctx context.Context, only integrityCheck) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logg.Sync()

	store := openStorage(cfg, logg)
	if store == nil {
		return fmt.Errorf("storage client required")
	}
	db := openDatabase(ctx, cfg, logg)

	svc := integrity.NewService(store, cfg.Storage.Bucket, cfg.Lists.ArchivePrefix, logg, db)

	if only == checkAll || only == checkStructure {
		if err := runStructureCheck(ctx, svc, logg, only == checkStructure && fixFlag); err != nil {
			return err
		}
	}
	if only == checkAll || only == checkArchive {
		if err := runArchiveCheck(ctx, svc, logg, only == checkArchive && fixFlag); err != nil {
			return err
		}
	}
	if only == checkAll || only == checkServer {
		runServerCheck(svc, logg)
	}
	return nil
}

func runStructureCheck(ctx context.Context, svc *integrity.Service, logg *zap.Logger, fix bool) error {
	logg.Info("Checking folder structure...")
	missing, err := svc.CheckStructure(ctx)
	if err != nil {
		return fmt.Errorf("structure check failed: %w", err)
	}

	if len(missing) == 0 {
		logg.Info("Structure is intact.")
		return nil
	}

	logg.Warn("Missing folders detected", zap.Strings("missing", missing))
	if !fix {
		logg.Info("Run with --fix to create missing folders.")
		return nil
	}

	logg.Info("Fixing missing folders...")
	if err := svc.FixStructure(ctx, missing); err != nil {
		return fmt.Errorf("failed to fix structure: %w", err)
	}
	logg.Info("Structure fixed successfully.")
	return nil
}

func runArchiveCheck(ctx context.Context, svc *integrity.Service, logg *zap.Logger, fix bool) error {
	logg.Info("Checking revision archive...")

	check := svc.CheckArchive
	if fix {
		check = svc.FixArchive
	}
	report, err := check(ctx)
	if err != nil {
		if errors.Is(err, integrity.ErrNoDatabase) {
			logg.Warn("Skipping archive check", zap.Error(err))
			return nil
		}
		return fmt.Errorf("archive check failed: %w", err)
	}

	if report.Matched {
		logg.Info("Archive is complete.", zap.Int("revisions", report.Checked))
		return nil
	}

	logg.Warn("Archive incomplete",
		zap.Int("revisions", report.Checked),
		zap.Strings("missing", report.Missing),
		zap.Strings("unarchived", report.Unarchived))
	if fix {
		logg.Info("Archive fixed successfully.")
	} else {
		logg.Info("Run with --fix to archive missing revisions.")
	}
	return nil
}

func runServerCheck(svc *integrity.Service, logg *zap.Logger) {
	logg.Info("Checking server schema integrity...")
	report, err := svc.CheckServer()
	if err != nil {
		logg.Error("Server schema check failed", zap.Error(err))
		return
	}

	if report.Matched {
		logg.Info("Server schema matches expected definition.", zap.String("dialect", report.Dialect))
		return
	}

	logg.Warn("Server schema mismatches found", zap.String("dialect", report.Dialect))
	for table, tblReport := range report.Tables {
		if tblReport.Status == "ok" {
			continue
		}
		if tblReport.Status == "missing" {
			logg.Warn("Missing Table", zap.String("table", table))
		}
		if len(tblReport.MissingColumns) > 0 {
			logg.Warn("Missing Columns", zap.String("table", table), zap.Strings("columns", tblReport.MissingColumns))
		}
		if len(tblReport.TypeMismatches) > 0 {
			logg.Warn("Type Mismatches", zap.String("table", table), zap.Strings("mismatches", tblReport.TypeMismatches))
		}
	}
	for _, e := range report.Errors {
		logg.Error("Inspection Error", zap.String("error", e))
	}
}
