package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"shiftplanner/internal/config"
	"shiftplanner/internal/domain"
	"shiftplanner/internal/i18n"
	"shiftplanner/internal/logger"
	"shiftplanner/internal/repository"
	"shiftplanner/internal/service"
	"shiftplanner/internal/store"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	week := flag.Int("week", -1, "select the current week index before other actions")
	lock := flag.Int("lock", -1, "lock the given week index")
	unlock := flag.Int("unlock", -1, "unlock the given week index")
	plan := flag.String("plan", "", "regenerate the plan for a date range: start,end (YYYY-MM-DD)")
	planVersions := flag.Bool("plan-versions", true, "create replan versions for overlapping unlocked weeks")
	exportXlsx := flag.String("export-xlsx", "", "write the current week's Excel workbook to this path")
	exportJSON := flag.String("export-json", "", "write a JSON backup of the whole state to this path")
	importJSON := flag.String("import-json", "", "replace the state from a JSON backup file")
	flag.Parse()

	cfg := config.Load()
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "shiftplanner")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()
	kv := newKV(cfg, log)
	planner := service.NewPlanner(repository.NewKVStateRepository(kv), log)

	if _, err := planner.Bootstrap(ctx); err != nil {
		log.Fatal("failed to bootstrap state", zap.Error(err))
	}

	if *importJSON != "" {
		raw, err := os.ReadFile(*importJSON)
		if err != nil {
			log.Fatal("failed to read backup file", zap.Error(err))
		}
		if err := planner.ImportBackup(ctx, raw); err != nil {
			log.Fatal("import rejected", zap.Error(err))
		}
		fmt.Println("backup imported")
	}

	if *week >= 0 {
		if err := planner.SetCurrentWeek(ctx, *week); err != nil {
			log.Fatal("failed to select week", zap.Error(err))
		}
	}
	if *lock >= 0 {
		if err := planner.SetLocked(ctx, *lock, true); err != nil {
			log.Fatal("failed to lock week", zap.Error(err))
		}
	}
	if *unlock >= 0 {
		if err := planner.SetLocked(ctx, *unlock, false); err != nil {
			log.Fatal("failed to unlock week", zap.Error(err))
		}
	}

	if *plan != "" {
		parts := strings.SplitN(*plan, ",", 2)
		if len(parts) != 2 {
			log.Fatal("plan range must be start,end")
		}
		res, err := planner.GeneratePlan(ctx, strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), *planVersions)
		if err != nil {
			log.Fatal("plan generation failed", zap.Error(err))
		}
		fmt.Printf("plan generated: %d weeks, %d regenerated, %d preserved (locked), %d replanned\n",
			res.Weeks, res.Regenerated, res.PreservedLocked, len(res.ReplanLabels))
	}

	st, err := planner.State(ctx)
	if err != nil {
		log.Fatal("failed to load state", zap.Error(err))
	}
	tr := newTranslator(ctx, cfg, log)

	if *exportXlsx != "" {
		data, name, err := service.ExportWorkbook(st, st.CurrentWeek, tr, time.Now())
		if err != nil {
			log.Fatal("excel export failed", zap.Error(err))
		}
		path := *exportXlsx
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			path = path + string(os.PathSeparator) + name
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			log.Fatal("failed to write workbook", zap.Error(err))
		}
		fmt.Printf("workbook written to %s\n", path)
	}

	if *exportJSON != "" {
		backup, err := service.ExportBackup(st, time.Now())
		if err != nil {
			log.Fatal("backup export failed", zap.Error(err))
		}
		path := *exportJSON
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			path = path + string(os.PathSeparator) + backup.Filename
		}
		if err := os.WriteFile(path, backup.Data, 0o644); err != nil {
			log.Fatal("failed to write backup", zap.Error(err))
		}
		fmt.Printf("backup %s written to %s\n", backup.BackupID, path)
	}

	printWeek(st, st.CurrentWeek)
}

// newKV picks the storage backend; failure to reach redis/postgres falls
// back to memory so plain `go run` always works.
func newKV(cfg *config.Config, log *zap.Logger) store.KV {
	switch cfg.Storage {
	case "postgres":
		db, err := store.NewPostgresDB(cfg.Database.DSN())
		if err != nil {
			log.Warn("postgres unavailable, falling back to memory store", zap.Error(err))
			return store.NewMemoryKV()
		}
		kv, err := store.NewPostgresKV(db)
		if err != nil {
			log.Warn("postgres blob table unavailable, falling back to memory store", zap.Error(err))
			return store.NewMemoryKV()
		}
		log.Info("using postgres store")
		return kv
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Warn("redis unavailable, falling back to memory store", zap.Error(err))
			return store.NewMemoryKV()
		}
		log.Info("using redis store")
		return store.NewRedisKV(client)
	default:
		return store.NewMemoryKV()
	}
}

func newTranslator(ctx context.Context, cfg *config.Config, log *zap.Logger) *i18n.Translator {
	if cfg.Locale.BaseURL == "" || cfg.Locale.Lang == "" || cfg.Locale.Lang == "en" {
		return i18n.NewTranslator(nil)
	}
	bundle, err := i18n.NewFetcher(cfg.Locale.BaseURL, log).Load(ctx, cfg.Locale.Lang)
	if err != nil {
		// Built-in English is the end of the fallback chain.
		return i18n.NewTranslator(nil)
	}
	return i18n.NewTranslator(bundle)
}

func printWeek(st *domain.AppState, week int) {
	if week < 0 || week >= len(st.WeekDates) {
		fmt.Println("no weeks planned")
		return
	}
	locked := ""
	if st.IsLocked(week) {
		locked = " [LOCKED]"
	}
	version := ""
	if key, v, ok := st.ActiveVersion(week); ok {
		version = fmt.Sprintf(" (%s: %s)", key, v.Name)
	}
	fmt.Printf("Week %d: %s - %s%s%s\n", week+1,
		st.WeekDates[week].Monday(), st.WeekDates[week].Sunday(), locked, version)

	for dayIndex, day := range domain.DaysOfWeek {
		fmt.Printf("  %-9s %s\n", day, st.WeekDates[week][dayIndex])
		for _, shift := range domain.ShiftTypes {
			var names []string
			for _, r := range service.ShiftRows(st, week, day, shift) {
				name := r.Name
				if r.Absent {
					name += " (ABSENT)"
				}
				if r.Borrowed {
					name += fmt.Sprintf(" (Team %s)", r.Team)
				}
				names = append(names, name)
			}
			if len(names) == 0 {
				names = []string{"-"}
			}
			fmt.Printf("    %-6s %s\n", shift, strings.Join(names, ", "))
		}
	}
}
