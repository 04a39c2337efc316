package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/Flyrell/clocker/internal/clock"
	"github.com/Flyrell/clocker/internal/clockstate"
	"github.com/Flyrell/clocker/internal/schedule"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/spf13/cobra"
)

var (
	pdfHeaderColor = props.Color{Red: 50, Green: 50, Blue: 50}
	pdfMutedColor  = props.Color{Red: 120, Green: 120, Blue: 120}
	pdfLineColor   = props.Color{Red: 200, Green: 200, Blue: 200}
)

var exportCmd = LeafCommand{
	Use:   "export",
	Short: "Export today's clocks as a PDF sheet",
	Args:  cobra.NoArgs,
	StrFlags: []StringFlag{
		{Name: "output", Shorthand: "o", Usage: "output file (default clocker-<date>.pdf)"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := getDataDir()
		if err != nil {
			return err
		}
		output, _ := cmd.Flags().GetString("output")
		return runExport(cmd, dir, output, clock.Real())
	},
}.Build()

// daySheet is what the PDF shows for one day.
type daySheet struct {
	Date     time.Time
	Record   clockstate.Record
	Worked   time.Duration
	Deadline time.Time
	Pending  bool
}

func runExport(cmd *cobra.Command, dir, output string, clk clock.Clock) error {
	s, err := openSession(cmd, dir, clk, clock.Unavailable{})
	if err != nil {
		return err
	}

	v := s.ctrl.View()
	if v.Record.Filled() == 0 {
		return fmt.Errorf("nothing recorded today")
	}

	now := clk.Now()
	if output == "" {
		output = fmt.Sprintf("clocker-%s.pdf", now.Format("2006-01-02"))
	}
	if filepath.Ext(output) == "" {
		output += ".pdf"
	}

	sheet := daySheet{
		Date:     now,
		Record:   v.Record,
		Worked:   v.Record.Worked(),
		Deadline: v.PendingTime,
		Pending:  v.IsPending,
	}
	if err := renderDayPDF(sheet, output); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", Primary(output))
	return nil
}

// renderDayPDF writes a one-page sheet with the day's four clocks.
func renderDayPDF(sheet daySheet, outputPath string) error {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)

	m.AddRow(14,
		text.NewCol(12, "Attendance", props.Text{
			Style: fontstyle.Bold,
			Size:  16,
			Color: &pdfHeaderColor,
		}),
	)
	m.AddRow(8,
		text.NewCol(12, sheet.Date.Format("Monday, January 2, 2006"), props.Text{
			Size:  12,
			Color: &pdfMutedColor,
		}),
	)
	m.AddRow(4, line.NewCol(12, props.Line{Color: &pdfLineColor}))
	m.AddRow(4)

	for _, o := range clockstate.Options {
		value := "-"
		if t, ok := sheet.Record.Time(o, sheet.Date); ok {
			value = schedule.Format12h(t)
		}
		m.AddRow(7,
			text.NewCol(9, o.Label(), props.Text{Size: 10}),
			text.NewCol(3, value, props.Text{
				Size:  10,
				Align: align.Right,
			}),
		)
	}

	if sheet.Pending {
		m.AddRow(4)
		m.AddRow(6,
			text.NewCol(12, "Auto clock-out scheduled for "+schedule.Format12h(sheet.Deadline), props.Text{
				Size:  9,
				Color: &pdfMutedColor,
			}),
		)
	}

	m.AddRow(4, line.NewCol(12, props.Line{Color: &pdfLineColor}))
	m.AddRow(10,
		text.NewCol(9, "Worked", props.Text{
			Style: fontstyle.Bold,
			Size:  12,
			Color: &pdfHeaderColor,
		}),
		text.NewCol(3, formatWorked(sheet.Worked), props.Text{
			Style: fontstyle.Bold,
			Size:  12,
			Align: align.Right,
			Color: &pdfHeaderColor,
		}),
	)

	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("generating PDF: %w", err)
	}

	return doc.Save(outputPath)
}
