package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/lguimbarda/min-chain/chain/script"
)

func newRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:   "chain",
		Short: "Run chain scripts over rows of data",
		Long: `chain loads rows from a file, standard input, a shell command or a SQLite
query and runs a chain script over them, for example:

  chain eval --input data.csv --format csv 'drop 1 | select_pos 2 | to_int | sum'`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default ./chain.yaml)")
	flags.String("env-file", "", "dotenv file to load (default ./.env when present)")
	flags.String("log-level", "", "log level (debug|info|warn|error) [default: warn]")
	flags.Bool("no-color", false, "disable colored output")
	mustBind(v, flags.Lookup("log-level"))
	mustBind(v, flags.Lookup("no-color"))

	root.AddCommand(newEvalCmd(v), newOpsCmd(v), newVersionCmd())
	return root
}

func mustBind(v *viper.Viper, flag *pflag.Flag) {
	if err := v.BindPFlag(flag.Name, flag); err != nil {
		panic(fmt.Sprintf("bind %s: %v", flag.Name, err))
	}
}

func newEvalCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval [script]",
		Short: "Evaluate a chain script",
		Long: `Evaluate a chain script. Stages are separated by '|'. Without a script the
loaded rows are printed unchanged. Run "chain ops" for the list of operations.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, v)
			if err != nil {
				return err
			}
			logger, err := newLogger(cmd, cfg)
			if err != nil {
				return err
			}
			return runEval(cmd, cfg, logger, strings.Join(args, " "))
		},
	}
	flags := cmd.Flags()
	flags.StringP("input", "i", "", "input file, - for standard input")
	flags.StringP("format", "f", "", "input format: lines, csv, json or yaml (default from the file extension)")
	flags.String("comma", ",", "csv field delimiter")
	flags.Bool("header", false, "csv: turn rows into records keyed by the first row")
	flags.String("db", "", "SQLite database file")
	flags.StringP("query", "q", "", "SQL query run against --db")
	flags.StringP("cmd", "c", "", "shell command whose output lines are the input")
	flags.Duration("timeout", 0, "timeout for --cmd and --query")
	flags.StringP("output", "o", "", "output format: repr, lines, json, yaml or csv (default repr)")
	flags.Bool("raw", false, "print one element per line, same as --output lines")
	flags.Bool("stats", false, "print stage statistics to standard error")
	for _, name := range []string{"input", "format", "comma", "header", "db", "query", "cmd", "timeout", "output", "raw", "stats"} {
		mustBind(v, flags.Lookup(name))
	}
	return cmd
}

func newOpsCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "ops",
		Short: "List script operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, v)
			if err != nil {
				return err
			}
			st := newStyles(cmd.OutOrStdout(), cfg.NoColor)
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, st.header.Render("operations"))
			terminal := false
			for _, op := range script.Ops() {
				if op.Terminal && !terminal {
					terminal = true
					fmt.Fprintln(w, st.header.Render("terminals"))
				}
				usage := strings.TrimSpace(op.Name + " " + op.Args)
				fmt.Fprintf(w, "  %s %s\n", st.name.Width(22).Render(usage), op.Doc)
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "chain v%s\n", version)
		},
	}
}

// noColor reports whether color is off without a loaded configuration.
func noColor(cmd *cobra.Command) bool {
	off, _ := cmd.PersistentFlags().GetBool("no-color")
	return off || os.Getenv(envPrefix+"_NO_COLOR") != "" || os.Getenv("NO_COLOR") != ""
}
