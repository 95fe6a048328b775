package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/barmate/barmate/internal/export"
	"github.com/barmate/barmate/internal/project"
)

func newExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <project.json>",
		Short: "Re-export a saved project file",
		Long: `Export a saved project to the format implied by the output extension:
.pdf for the bar bending schedule, .xlsx for the workbook, .dxf for bend
shape drawings.

Examples:
  barmate export job.json --output schedule.pdf
  barmate export job.json --output schedule.xlsx
  barmate export job.json --output shapes.dxf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			p, err := project.LoadProject(args[0])
			if err != nil {
				return err
			}

			switch strings.ToLower(filepath.Ext(output)) {
			case ".pdf":
				err = export.ExportSchedulePDF(output, p)
			case ".xlsx":
				err = export.ExportExcel(output, p)
			case ".dxf":
				err = export.ExportDXF(output, p.Schedule)
			default:
				return fmt.Errorf("unsupported output format %q: want .pdf, .xlsx or .dxf", output)
			}
			if err != nil {
				return err
			}

			logger.Infof("exported %s to %s", args[0], output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.pdf, .xlsx, .dxf) [required]")
	cmd.MarkFlagRequired("output")

	return cmd
}
