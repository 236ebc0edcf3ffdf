// Command reactor replays on/off reboot steps over a 3-D lattice and
// reports how many points are left on, both inside the initialization
// region and overall.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/chazu/reactor/pkg/command"
	"github.com/chazu/reactor/pkg/kernel/sdfx"
)

// defaultVerifySamples bounds --verify to about 32^3 lattice points.
const defaultVerifySamples = 32

// scriptExts marks input files that are evaluated as Lisp scripts.
var scriptExts = map[string]bool{".zy": true, ".lisp": true}

func newRootCmd() *cobra.Command {
	cfg := config{}

	rootCmd := &cobra.Command{
		Use:   "reactor [file]",
		Short: "Count lit cubes after a sequence of reboot steps",
		Long: "reactor reads reboot steps such as\n\n" +
			"  on x=10..12,y=10..12,z=10..12\n\n" +
			"from a file or stdin and prints the number of lit points inside the\n" +
			"initialization region and in total. Files ending in .zy or .lisp,\n" +
			"or any input with --script, are evaluated as Lisp scripts that emit\n" +
			"steps with (on ...) and (off ...).",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.InitLimit < 0 {
				return fmt.Errorf("invalid argument %d for \"--init-limit\" flag: must not be negative", cfg.InitLimit)
			}
			if cfg.STLInit && cfg.STL == "" {
				return fmt.Errorf("--stl-init requires --stl")
			}

			log, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
			if err != nil {
				return err
			}

			source, name, err := readSource(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			if scriptExts[filepath.Ext(name)] {
				cfg.Script = true
			}
			log.WithField("input", name).Debug("read source")

			app := NewApp(log, cfg.MeshCells)
			result := app.Run(cmd.Context(), source, cfg)
			if err := writeResult(cmd.OutOrStdout(), result, cfg.JSON); err != nil {
				return err
			}
			if len(result.Errors) > 0 {
				if !cfg.JSON {
					for _, e := range result.Errors {
						fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", formatError(e))
					}
				}
				return fmt.Errorf("%s: %d error(s)", name, len(result.Errors))
			}
			return nil
		},
	}

	flags := rootCmd.Flags()
	flags.BoolVar(&cfg.Script, "script", false, "evaluate the input as a Lisp script")
	flags.Int64Var(&cfg.InitLimit, "init-limit", command.DefaultInitLimit, "half-width of the initialization region")
	flags.StringVar(&cfg.STL, "stl", "", "write the final region as an STL file")
	flags.BoolVar(&cfg.STLInit, "stl-init", false, "clip the --stl output to the initialization region")
	flags.BoolVar(&cfg.Mesh, "mesh", false, "mesh each lit cuboid and report the parts")
	flags.IntVar(&cfg.MeshCells, "mesh-cells", sdfx.DefaultMeshCells, "marching cubes resolution for --mesh and --stl")
	flags.BoolVar(&cfg.Verify, "verify", false, "cross-check the region against a CSG replay of the commands")
	flags.IntVar(&cfg.Samples, "verify-samples", defaultVerifySamples, "lattice samples per axis for --verify")
	flags.BoolVar(&cfg.JSON, "json", false, "print the result as JSON")
	rootCmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", "warning", "logging level (debug, info, warning, error)")

	return rootCmd
}

// readSource returns the input text and a name for it. No argument or "-"
// reads stdin.
func readSource(stdin io.Reader, args []string) (string, string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(b), "<stdin>", nil
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", err
	}
	return string(b), args[0], nil
}

func writeResult(w io.Writer, r Result, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
	if len(r.Errors) > 0 {
		return nil
	}
	if _, err := io.WriteString(w, r.Summary()); err != nil {
		return err
	}
	for _, p := range r.Parts {
		if _, err := fmt.Fprintf(w, "%s %s %d triangles\n", p.Color, p.PartName, p.Triangles); err != nil {
			return err
		}
	}
	if r.Combined != nil {
		if _, err := fmt.Fprintf(w, "%s %d triangles\n", r.Combined.PartName, r.Combined.Triangles); err != nil {
			return err
		}
	}
	if r.Verified > 0 {
		if _, err := fmt.Fprintf(w, "verified: %d points\n", r.Verified); err != nil {
			return err
		}
	}
	return nil
}

func formatError(e ErrorData) string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "reactor: %v\n", err)
		os.Exit(1)
	}
}
