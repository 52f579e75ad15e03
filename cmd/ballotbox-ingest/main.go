package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"ballotbox/internal/adapters/workbook"
	"ballotbox/internal/modkit"
	"ballotbox/internal/modkit/module"
	"ballotbox/internal/platform/config"
	"ballotbox/internal/platform/logger"
	"ballotbox/internal/platform/store"

	"ballotbox/internal/services/ballots/domain"
	ballotsmod "ballotbox/internal/services/ballots/module"
)

func main() {
	var (
		file     = flag.String("file", "", "workbook to ingest (.xlsx or .xls)")
		rows     = flag.String("json", "", "json file holding {\"rows\": [...]} to ingest")
		reload   = flag.Bool("reload", false, "republish the persisted ballots and print the stats")
		reset    = flag.Bool("reset", false, "clear the persisted ballots")
		template = flag.String("template", "", "write the blank upload template to this path")
	)
	flag.Parse()

	opt := logger.FromEnv()
	opt.Service = "ballotbox-ingest"
	logger.Init(opt)
	l := logger.Get()

	if err := requireAction(*file, *rows, *reload, *reset, *template); err != nil {
		l.Fatal().Err(err).Msg("nothing to do")
	}

	root := config.New()
	coreCfg := root.Prefix("CORE_")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// warm start is left to -reload so a plain ingest never reads the old batch
	set := ballotsmod.FromConfig(coreCfg)
	set.Warm = false
	backend := set.Store

	st, err := store.Open(ctx, ballotsmod.StoreConfig(root, opt.Service, set), *l)
	if err != nil {
		l.Fatal().Err(err).Str("store", backend).Msg("store open failed")
	}
	defer func() {
		if err := st.Close(); err != nil {
			l.Error().Err(err).Msg("store close failed")
		}
	}()

	deps := modkit.Deps{Cfg: coreCfg, PG: st.PG, RDS: st.RDS, Log: *l}

	bm := ballotsmod.NewWith(deps, set)
	if err := bm.Start(ctx); err != nil {
		l.Fatal().Err(err).Msg("ballots start failed")
	}
	module.Register(bm.Name(), bm.Ports())
	svc := module.MustPortsOf[ballotsmod.Ports](bm).Service

	switch {
	case *template != "":
		buf, err := svc.Template(time.Now())
		if err != nil {
			l.Fatal().Err(err).Msg("template failed")
		}
		if err := os.WriteFile(*template, buf.Bytes(), 0o644); err != nil {
			l.Fatal().Err(err).Str("path", *template).Msg("write template")
		}
		l.Info().Str("path", *template).Msg("template written")

	case *reset:
		if err := svc.Reset(ctx); err != nil {
			l.Fatal().Err(err).Msg("reset failed")
		}
		l.Info().Str("store", backend).Msg("ballots cleared")

	case *reload:
		rep, err := svc.Reload(ctx)
		if err != nil {
			l.Fatal().Err(err).Msg("reload failed")
		}
		printJSON(rep)
		if stats, err := svc.Stats(); err == nil {
			printJSON(stats)
		}

	case *file != "":
		f, err := os.Open(*file)
		if err != nil {
			l.Fatal().Err(err).Str("path", *file).Msg("open workbook")
		}
		defer f.Close()
		rep, err := svc.IngestWorkbook(ctx, domain.Upload{
			Filename:    filepath.Base(*file),
			ContentType: workbook.TypeByExtension(*file),
			Body:        f,
		})
		if err != nil {
			l.Fatal().Err(err).Interface("report", rep).Msg("ingest failed")
		}
		printJSON(rep)

	case *rows != "":
		raw, err := os.ReadFile(*rows)
		if err != nil {
			l.Fatal().Err(err).Str("path", *rows).Msg("read rows")
		}
		var in domain.RowsInput
		if err := json.Unmarshal(raw, &in); err != nil {
			l.Fatal().Err(err).Str("path", *rows).Msg("decode rows")
		}
		rep, err := svc.IngestTable(ctx, in)
		if err != nil {
			l.Fatal().Err(err).Interface("report", rep).Msg("ingest failed")
		}
		printJSON(rep)
	}
}

// errNoAction is returned when no action flag was given
var errNoAction = errors.New("one of -file, -json, -reload, -reset or -template is required")

func requireAction(file, rows string, reload, reset bool, template string) error {
	if file == "" && rows == "" && !reload && !reset && template == "" {
		return errNoAction
	}
	return nil
}

func printJSON(v any) {
	if err := writeJSON(os.Stdout, v); err != nil {
		logger.Get().Fatal().Err(err).Msg("write json")
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
