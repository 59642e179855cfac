package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/railing/pkg/errors"
	"github.com/matzehuels/railing/pkg/pipeline"
	"github.com/matzehuels/railing/pkg/placement"
)

// offsetsCommand creates the offsets command.
func (c *CLI) offsetsCommand() *cobra.Command {
	var (
		format  string
		noCache bool
		refresh bool
	)
	opts := pipeline.DefaultOptions(0)

	cmd := &cobra.Command{
		Use:   "offsets <length>",
		Short: "Compute baluster offsets for a span",
		Long: `Compute baluster offsets for a span.

The length, post width and gap are in centimeters. Each offset is the
distance from the start of the span to the leading edge of a baluster.

Two symmetric layouts are considered: one with the span's midpoint in the
middle of a gap, and one with a baluster centered on the midpoint. The first
is preferred unless it leaves less than half a gap before the first baluster.

Post width and gap default to the values in the config file. A span of zero
or less has no balusters; pass it after "--" so it is not read as a flag.`,
		Example: `  railing offsets 200
  railing offsets 312.5 --post-width 4 --gap 11 -f json
  railing offsets -f plain -- -40`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			length, err := strconv.ParseFloat(args[0], 64)
			if err != nil || math.IsNaN(length) || math.IsInf(length, 0) {
				return errors.New(errors.ErrCodeInvalidInput, "length must be a finite number, got %q", args[0])
			}
			if err := pipeline.ValidateFormat(format); err != nil {
				return err
			}

			opts.Length = length
			opts.Refresh = refresh
			c.applyConfigDefaults(cmd, &opts)
			return c.runOffsets(cmd.Context(), cmd.OutOrStdout(), opts, format, noCache)
		},
	}

	cmd.Flags().Float64Var(&opts.PostWidth, "post-width", opts.PostWidth, "baluster width in cm")
	cmd.Flags().Float64Var(&opts.TargetGap, "gap", opts.TargetGap, "target gap between balusters in cm")
	cmd.Flags().StringVarP(&format, "format", "f", pipeline.FormatTable, "output format: table, json, plain")
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{pipeline.FormatTable, pipeline.FormatJSON, pipeline.FormatPlain}, cobra.ShellCompDirectiveNoFileComp
	})
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if a cached result exists")

	return cmd
}

// applyConfigDefaults fills dimensions not given on the command line from
// the config file.
func (c *CLI) applyConfigDefaults(cmd *cobra.Command, opts *pipeline.Options) {
	cfg := c.settings()
	if !cmd.Flags().Changed("post-width") {
		opts.PostWidth = cfg.Placement.PostWidth
	}
	if !cmd.Flags().Changed("gap") {
		opts.TargetGap = cfg.Placement.TargetGap
	}
	if ttl, err := cfg.Cache.TTLDuration(); err == nil {
		opts.TTL = ttl
	}
}

// runOffsets computes the layout and writes it in the requested format.
func (c *CLI) runOffsets(ctx context.Context, w io.Writer, opts pipeline.Options, format string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	start := time.Now()
	res, err := runner.Place(ctx, opts)
	if err != nil {
		return err
	}

	switch format {
	case pipeline.FormatJSON:
		return writeLayoutJSON(w, res.Layout)
	case pipeline.FormatPlain:
		writeLayoutPlain(w, res.Layout)
		return nil
	default:
		writeLayoutTable(w, res.Layout, res.CacheHit, elapsed(start))
		return nil
	}
}

func writeLayoutJSON(w io.Writer, l placement.Layout) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(l)
}

// writeLayoutPlain prints one offset per line for scripting.
func writeLayoutPlain(w io.Writer, l placement.Layout) {
	for _, o := range l.Offsets {
		fmt.Fprintln(w, formatCM(o))
	}
}

func writeLayoutTable(w io.Writer, l placement.Layout, cached bool, took string) {
	if l.Empty() {
		printWarning(w, "No baluster layout fits a %s cm span", formatCM(l.Length))
		printDetail(w, "A span needs more than %s cm (gap + width) to hold a baluster", formatCM(l.Pitch()))
		return
	}

	t := newTable("#", "Offset", "Center", "Gap before")
	gaps := l.Gaps()
	for i, o := range l.Offsets {
		t.Row(
			strconv.Itoa(i+1),
			formatCM(o),
			formatCM(o+l.PostWidth/2),
			formatCM(gaps[i]),
		)
	}

	fmt.Fprintln(w, StyleTitle.Render(fmt.Sprintf("Balusters for a %s cm span", formatCM(l.Length))))
	fmt.Fprintln(w, t.Render())
	printKeyValue(w, "Layout", describeCandidate(l.Candidate))
	printKeyValue(w, "Balusters", StyleNumber.Render(strconv.Itoa(l.Posts())))
	printKeyValue(w, "Pitch", formatCM(l.Pitch())+" cm")
	printKeyValue(w, "Ends", fmt.Sprintf("%s cm / %s cm", formatCM(l.LeadingClearance()), formatCM(l.TrailingClearance())))
	printCacheStatus(w, cached, took)
}

func describeCandidate(c placement.Candidate) string {
	switch c {
	case placement.CandidateMoved:
		return "gap centered on span"
	case placement.CandidateCenter:
		return "baluster centered on span"
	default:
		return c.String()
	}
}
