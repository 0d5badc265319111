package main

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/lguimbarda/min-chain/chain"
	chaincsv "github.com/lguimbarda/min-chain/chain/csv"
	chainhttp "github.com/lguimbarda/min-chain/chain/http"
	chainio "github.com/lguimbarda/min-chain/chain/io"
	chainjson "github.com/lguimbarda/min-chain/chain/json"
	"github.com/lguimbarda/min-chain/chain/observe"
	"github.com/lguimbarda/min-chain/chain/script"
	"github.com/lguimbarda/min-chain/chain/shell"
	chainsql "github.com/lguimbarda/min-chain/chain/sql"
	chainyaml "github.com/lguimbarda/min-chain/chain/yaml"
)

func runEval(cmd *cobra.Command, cfg *config, logger zerolog.Logger, src string) error {
	prog, err := script.Parse(src)
	if err != nil {
		return err
	}

	opts := []chain.Option{chain.WithLogger(logger)}
	var counter observe.Counter
	if cfg.Stats {
		opts = append(opts, chain.WithHooks(counter.Hooks()))
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	in, err := loadInput(ctx, cmd.InOrStdin(), cfg)
	if err != nil {
		return err
	}
	n, _ := in.Count()
	logger.Debug().Int("rows", n).Str("script", prog.String()).Msg("input loaded")

	result, err := prog.Run(in.With(opts...))
	if cfg.Stats {
		st := newStyles(cmd.ErrOrStderr(), cfg.NoColor)
		fmt.Fprintln(cmd.ErrOrStderr(), st.dim.Render(fmt.Sprintf(
			"stages=%d errors=%d rows_in=%d rows_out=%d elapsed=%s",
			counter.Stages(), counter.Errors(), counter.RowsIn(), counter.RowsOut(), counter.Elapsed())))
	}
	if err != nil {
		return err
	}
	return printResult(cmd.OutOrStdout(), result, cfg)
}

// loadInput picks the source from cfg: a SQLite query, a shell command or
// a file (standard input when no file is named).
func loadInput(ctx context.Context, stdin io.Reader, cfg *config) (chain.Pipeline, error) {
	switch {
	case cfg.DB != "" || cfg.Query != "":
		if cfg.DB == "" || cfg.Query == "" {
			return chain.Pipeline{}, fmt.Errorf("--db and --query must be used together")
		}
		return queryInput(ctx, cfg)
	case cfg.Cmd != "":
		p := shell.Run(ctx, cfg.Cmd)
		return p, p.Err()
	}

	format := cfg.Format
	if format == "" {
		format = formatFromPath(cfg.Input)
	}
	var r io.Reader = stdin
	switch {
	case strings.HasPrefix(cfg.Input, "http://") || strings.HasPrefix(cfg.Input, "https://"):
		resp, err := chainhttp.Fetch(ctx, nil, cfg.Input)
		if err != nil {
			return chain.Pipeline{}, err
		}
		r = bytes.NewReader(resp.Body)
	case cfg.Input != "" && cfg.Input != "-":
		f, err := os.Open(cfg.Input)
		if err != nil {
			return chain.Pipeline{}, err
		}
		defer f.Close()
		r = f
	}

	var p chain.Pipeline
	switch format {
	case "lines":
		p = chainio.ReadLinesFrom(r)
	case "csv":
		comma, size := utf8.DecodeRuneInString(cfg.Comma)
		if size == 0 || size != len(cfg.Comma) {
			return chain.Pipeline{}, fmt.Errorf("--comma must be a single character, got %q", cfg.Comma)
		}
		p = chaincsv.ReadRecordsFrom(r, chaincsv.WithComma(comma), chaincsv.WithTrimLeadingSpace(true))
		if cfg.Header {
			p = chaincsv.Records(p)
		}
	case "json":
		p = chainjson.Decode(r)
	case "yaml":
		p = chainyaml.Decode(r)
	default:
		return chain.Pipeline{}, fmt.Errorf("unknown input format %q", format)
	}
	return p, p.Err()
}

func queryInput(ctx context.Context, cfg *config) (chain.Pipeline, error) {
	db, err := sql.Open("sqlite3", cfg.DB)
	if err != nil {
		return chain.Pipeline{}, err
	}
	defer db.Close()
	var p chain.Pipeline
	if cfg.Header {
		p = chainsql.QueryRecords(ctx, db, cfg.Query)
	} else {
		p = chainsql.Query(ctx, db, cfg.Query)
	}
	return p, p.Err()
}

func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv":
		return "csv"
	case ".json", ".jsonl", ".ndjson":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	}
	return "lines"
}
