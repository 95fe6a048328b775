package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/barmate/barmate/internal/engine"
	"github.com/barmate/barmate/internal/export"
	"github.com/barmate/barmate/internal/importer"
	"github.com/barmate/barmate/internal/model"
	"github.com/barmate/barmate/internal/project"
)

// optimizeOpts holds the command-line flags for the optimize command.
type optimizeOpts struct {
	input   string   // cut list file (csv or xlsx)
	cuts    []string // inline cut specs, "length:qty" or "label:length:qty"
	catalog string   // comma-separated stock lengths in metres
	pdfOut  string   // optional PDF output path
	offcuts bool     // record usable remnants in the offcut ledger
}

func newOptimizeCmd() *cobra.Command {
	var opts optimizeOpts

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Plan cut requirements against the stock catalog",
		Long: `Pack required cut lengths onto standard stock bars with minimal waste.

Requirements come from a cut list file (--input, CSV or Excel) or inline
--cut flags. Lengths are in metres.

Examples:
  barmate optimize --cut 5.8:3
  barmate optimize --cut A1:5.8:3 --cut B1:2.4:10
  barmate optimize --input cuts.csv --catalog 6,12 --pdf plan.pdf`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOptimize(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "cut list file (.csv, .xlsx)")
	cmd.Flags().StringArrayVarP(&opts.cuts, "cut", "c", nil, "inline cut spec, length:qty or label:length:qty (repeatable)")
	cmd.Flags().StringVar(&opts.catalog, "catalog", "", "comma-separated stock lengths in metres (default 6,7.5,9,12)")
	cmd.Flags().StringVar(&opts.pdfOut, "pdf", "", "write the cutting plan as a PDF")
	cmd.Flags().BoolVar(&opts.offcuts, "save-offcuts", false, "record usable remnants in the offcut ledger")

	return cmd
}

func runOptimize(cmd *cobra.Command, opts optimizeOpts) error {
	logger := loggerFromContext(cmd.Context())

	requirements, err := gatherRequirements(cmd, opts)
	if err != nil {
		return err
	}
	if len(requirements) == 0 {
		return fmt.Errorf("no cut requirements given: use --input or --cut")
	}

	catalog, err := parseCatalog(opts.catalog)
	if err != nil {
		return err
	}

	logger.Debugf("optimizing %d requirements against catalog %v", len(requirements), catalog)

	opt := engine.New(catalog)
	result, err := opt.Optimize(requirements)
	if err != nil {
		return err
	}

	printResult(cmd.OutOrStdout(), result)

	if opts.pdfOut != "" {
		if err := export.ExportPDF(opts.pdfOut, result); err != nil {
			return fmt.Errorf("pdf export failed: %w", err)
		}
		logger.Infof("wrote cutting plan to %s", opts.pdfOut)
	}

	if opts.offcuts {
		if err := recordOffcuts(result); err != nil {
			return fmt.Errorf("failed to update offcut ledger: %w", err)
		}
	}

	if len(result.Infeasible) > 0 {
		return fmt.Errorf("%d requirement(s) could not be planned", len(result.Infeasible))
	}
	return nil
}

// gatherRequirements merges file and inline requirements.
func gatherRequirements(cmd *cobra.Command, opts optimizeOpts) ([]model.CutRequirement, error) {
	logger := loggerFromContext(cmd.Context())
	var requirements []model.CutRequirement

	if opts.input != "" {
		imported := importer.ImportFile(opts.input)
		for _, w := range imported.Warnings {
			logger.Warn(w)
		}
		if len(imported.Errors) > 0 {
			return nil, fmt.Errorf("import failed: %s", strings.Join(imported.Errors, "; "))
		}
		requirements = append(requirements, imported.Requirements...)
	}

	for _, spec := range opts.cuts {
		req, err := parseCutSpec(spec)
		if err != nil {
			return nil, err
		}
		requirements = append(requirements, req)
	}
	return requirements, nil
}

// parseCutSpec parses "length:qty" or "label:length:qty".
func parseCutSpec(spec string) (model.CutRequirement, error) {
	parts := strings.Split(spec, ":")

	var label, lengthStr, qtyStr string
	switch len(parts) {
	case 2:
		lengthStr, qtyStr = parts[0], parts[1]
	case 3:
		label, lengthStr, qtyStr = parts[0], parts[1], parts[2]
	default:
		return model.CutRequirement{}, fmt.Errorf("invalid cut spec %q: want length:qty or label:length:qty", spec)
	}

	length, err := strconv.ParseFloat(strings.TrimSpace(lengthStr), 64)
	if err != nil {
		return model.CutRequirement{}, fmt.Errorf("invalid length in cut spec %q", spec)
	}
	qty, err := strconv.Atoi(strings.TrimSpace(qtyStr))
	if err != nil {
		return model.CutRequirement{}, fmt.Errorf("invalid quantity in cut spec %q", spec)
	}
	if label == "" {
		label = fmt.Sprintf("%.3gm", length)
	}
	return model.NewCutRequirement(label, length, qty), nil
}

// parseCatalog parses a comma-separated stock length list, falling back to
// the default catalog for an empty string.
func parseCatalog(spec string) (model.Catalog, error) {
	if strings.TrimSpace(spec) == "" {
		return model.DefaultCatalog(), nil
	}
	var catalog model.Catalog
	for _, field := range strings.Split(spec, ",") {
		s, err := model.ParseStockLength(field)
		if err != nil {
			return nil, fmt.Errorf("invalid catalog: %w", err)
		}
		catalog = append(catalog, s)
	}
	return catalog, nil
}

// recordOffcuts appends usable remnants from the result to the offcut ledger.
func recordOffcuts(result model.OptimizationResult) error {
	detected := model.DetectOffcuts(result)
	if len(detected) == 0 {
		return nil
	}
	path := project.DefaultOffcutsPath()
	existing, err := project.LoadOffcuts(path)
	if err != nil {
		return err
	}
	return project.SaveOffcuts(path, project.AppendOffcuts(existing, detected))
}

// printResult writes the cutting plan report.
func printResult(out io.Writer, result model.OptimizationResult) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "\nCUTTING PLAN")
	fmt.Fprintln(w, "────────────────────────────────────────────")
	for i, plan := range result.Plans {
		pieces := make([]string, len(plan.Pieces))
		for j, p := range plan.Pieces {
			pieces[j] = fmt.Sprintf("%.3f", p)
		}
		fmt.Fprintf(w, "  Bar %d\t%s\t%s\twaste %.3f m\n", i+1, plan.Stock, strings.Join(pieces, " + "), plan.Waste())
	}

	fmt.Fprintln(w, "\nSTOCK USAGE")
	fmt.Fprintln(w, "────────────────────────────────────────────")
	for _, u := range result.UsageByStock() {
		fmt.Fprintf(w, "  %s\t%d bars\t%.1f m ordered\t%.3f m waste\n", u.Stock, u.Bars, float64(u.Stock)*float64(u.Bars), u.Waste)
	}

	fmt.Fprintln(w, "\nSUMMARY")
	fmt.Fprintln(w, "────────────────────────────────────────────")
	fmt.Fprintf(w, "  Bars used:\t%d\n", result.BarsUsed())
	fmt.Fprintf(w, "  Pieces cut:\t%d\n", result.PieceCount())
	fmt.Fprintf(w, "  Total waste:\t%.3f m\n", result.TotalWaste())
	fmt.Fprintf(w, "  Utilization:\t%.1f%%\n", result.Utilization())

	if len(result.Infeasible) > 0 {
		fmt.Fprintln(w, "\nUNPLANNED REQUIREMENTS")
		fmt.Fprintln(w, "────────────────────────────────────────────")
		for _, inf := range result.Infeasible {
			fmt.Fprintf(w, "  %s\t%.3f m x %d\t%s\n", inf.Requirement.Label, inf.Requirement.Length, inf.Requirement.Quantity, inf.Reason)
		}
	}
	fmt.Fprintln(w)
	w.Flush()
}
