package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/barmate/barmate/internal/model"
)

func newCutLengthCmd() *cobra.Command {
	var (
		segments string
		diameter int
		bends    int
	)

	cmd := &cobra.Command{
		Use:   "cutlength",
		Short: "Cutting length of a bent bar from its segments",
		Long: `Compute the cutting length of a bent bar: the sum of its segment
lengths minus a bend deduction per 90 degree bend. All lengths in mm.

Examples:
  # L-bar: 400mm leg, 1000mm leg, one bend, 12mm bar
  barmate cutlength --segments 400,1000 --diameter 12 --bends 1

  # U-bar in 20mm
  barmate cutlength --segments 500,2000,500 --diameter 20 --bends 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			segs, err := parseSegments(segments)
			if err != nil {
				return err
			}

			cutMM := model.CutLengthMM(segs, diameter, bends)
			if cutMM <= 0 {
				return fmt.Errorf("bend deductions exceed segment lengths")
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "  Segments:\t%s mm\n", segments)
			fmt.Fprintf(w, "  Diameter:\t%d mm\n", diameter)
			fmt.Fprintf(w, "  90° bends:\t%d\n", bends)
			fmt.Fprintf(w, "  Cutting length:\t%.0f mm (%.3f m)\n", cutMM, cutMM/1000)
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&segments, "segments", "", "comma-separated segment lengths in mm [required]")
	cmd.Flags().IntVarP(&diameter, "diameter", "d", 12, "bar diameter (mm)")
	cmd.Flags().IntVar(&bends, "bends", 0, "number of 90 degree bends")
	cmd.MarkFlagRequired("segments")

	return cmd
}

func newStirrupCmd() *cobra.Command {
	var (
		shape    string
		side     float64
		length   float64
		width    float64
		circleD  float64
		diameter float64
	)

	cmd := &cobra.Command{
		Use:   "stirrup",
		Short: "Cutting length of a closed stirrup",
		Long: `Compute the cutting length of a closed stirrup from its shape and bar
diameter, including the standard 135 degree hooks. All lengths in mm.

Examples:
  barmate stirrup --shape square --side 300 --diameter 10
  barmate stirrup --shape rectangle --length 450 --width 250 --diameter 10
  barmate stirrup --shape circle --circle-diameter 400 --diameter 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var perimeter float64
			switch strings.ToLower(shape) {
			case "square":
				if side <= 0 {
					return fmt.Errorf("square stirrup needs --side")
				}
				perimeter = model.PerimeterSquare(side)
			case "rectangle":
				if length <= 0 || width <= 0 {
					return fmt.Errorf("rectangular stirrup needs --length and --width")
				}
				perimeter = model.PerimeterRectangle(length, width)
			case "circle":
				if circleD <= 0 {
					return fmt.Errorf("circular stirrup needs --circle-diameter")
				}
				perimeter = model.PerimeterCircle(circleD)
			default:
				return fmt.Errorf("unknown shape %q: want square, rectangle or circle", shape)
			}

			cutMM := model.StirrupCutLengthMM(perimeter, diameter)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "  Shape:\t%s\n", strings.ToLower(shape))
			fmt.Fprintf(w, "  Perimeter:\t%.0f mm\n", perimeter)
			fmt.Fprintf(w, "  Bar diameter:\t%.0f mm\n", diameter)
			fmt.Fprintf(w, "  Cutting length:\t%.0f mm (%.3f m)\n", cutMM, cutMM/1000)
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&shape, "shape", "square", "stirrup shape: square, rectangle, circle")
	cmd.Flags().Float64Var(&side, "side", 0, "side length for square stirrups (mm)")
	cmd.Flags().Float64Var(&length, "length", 0, "long side for rectangular stirrups (mm)")
	cmd.Flags().Float64Var(&width, "width", 0, "short side for rectangular stirrups (mm)")
	cmd.Flags().Float64Var(&circleD, "circle-diameter", 0, "diameter for circular stirrups (mm)")
	cmd.Flags().Float64VarP(&diameter, "diameter", "d", 10, "bar diameter (mm)")

	return cmd
}

func newTonnageCmd() *cobra.Command {
	var (
		bars     int
		tonnes   float64
		diameter int
		stockStr string
	)

	cmd := &cobra.Command{
		Use:   "tonnage",
		Short: "Convert between bar counts and tonnes",
		Long: `Convert a bar count to tonnes, or tonnes to bars, using the supplier
conversion tables for the given diameter and stock length.

Examples:
  barmate tonnage --bars 188 --diameter 12 --stock 6
  barmate tonnage --tonnes 2.5 --diameter 20 --stock 12`,
		RunE: func(cmd *cobra.Command, args []string) error {
			stock, err := model.ParseStockLength(stockStr)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			switch {
			case bars > 0:
				t, err := model.Tonnage(bars, diameter, stock)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "  %d bars of %dmm x %s:\t%.3f tonnes\n", bars, diameter, stock, t)
			case tonnes > 0:
				b, err := model.BarsFromTonnage(tonnes, diameter, stock)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "  %.3f tonnes of %dmm x %s:\t%.1f bars (order %d)\n", tonnes, diameter, stock, b, int(math.Ceil(b)))
			default:
				return fmt.Errorf("give either --bars or --tonnes")
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&bars, "bars", 0, "number of stock bars")
	cmd.Flags().Float64Var(&tonnes, "tonnes", 0, "weight in tonnes")
	cmd.Flags().IntVarP(&diameter, "diameter", "d", 12, "bar diameter (mm)")
	cmd.Flags().StringVar(&stockStr, "stock", "6", "stock length in metres")

	return cmd
}

func newWeightCmd() *cobra.Command {
	var (
		diameter float64
		length   float64
	)

	cmd := &cobra.Command{
		Use:   "weight",
		Short: "Steel weight of a bar run",
		Long: `Compute the weight of a run of bar using the standard d²/162.2 kg/m
approximation.

Example:
  barmate weight --diameter 16 --length 42.5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if length <= 0 {
				return fmt.Errorf("length must be positive")
			}
			kg := model.SteelWeightKg(diameter, length)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "  %.1f m of %.0fmm bar:\t%.2f kg\n", length, diameter, kg)
			fmt.Fprintf(w, "  Unit weight:\t%.3f kg/m\n", diameter*diameter/162.2)
			return w.Flush()
		},
	}

	cmd.Flags().Float64VarP(&diameter, "diameter", "d", 12, "bar diameter (mm)")
	cmd.Flags().Float64VarP(&length, "length", "l", 0, "total bar length (m) [required]")
	cmd.MarkFlagRequired("length")

	return cmd
}

// parseSegments parses a comma-separated list of segment lengths in mm.
func parseSegments(spec string) ([]float64, error) {
	fields := strings.Split(spec, ",")
	segs := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil || v <= 0 {
			return nil, fmt.Errorf("invalid segment length %q", f)
		}
		segs = append(segs, v)
	}
	if len(segs) == 0 {
		return nil, fmt.Errorf("no segment lengths given")
	}
	return segs, nil
}
