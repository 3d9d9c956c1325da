package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hugogrimmett/hinge-generator-sub000/internal/engine"
	"github.com/hugogrimmett/hinge-generator-sub000/internal/export"
	"github.com/hugogrimmett/hinge-generator-sub000/internal/model"
	"github.com/hugogrimmett/hinge-generator-sub000/internal/project"
)

// newShowCmd prints the derived geometry and current layout.
func newShowCmd() *cobra.Command {
	var bf boxFlags

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the derived geometry, pivots and validity",
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, _, editor, err := bf.load()
			if err != nil {
				return err
			}
			geo := editor.Geometry()
			p := geo.Params()

			fmt.Printf("box %g x %g, lid depth %g at %g deg, open gap %g\n", p.W, p.H, p.D, p.Alpha, p.G)
			fmt.Printf("center of rotation: %s\n", geo.Center())
			fmt.Printf("box outline: %d vertices, lid outline: %d vertices\n",
				len(geo.BoxVertices()), len(geo.ClosedLidVertices()))

			center := geo.Center()
			for _, c := range []model.Chain{model.ChainA, model.ChainB} {
				cp := editor.Layout().Chain(c)
				fmt.Printf("chain %s: lid %s  open %s  box %s  rod %.3f\n",
					c, cp.Closed, cp.Open(center), cp.Box, cp.RodLength())
			}

			if editor.IsValidRangeReachable() {
				f, err := engine.NewFourBar(geo, editor.Layout())
				if err != nil {
					return err
				}
				r := f.ValidRange()
				fmt.Printf("valid: drive range %.1f to %.1f deg (clockwise)\n",
					r.Start*180/math.Pi, r.End*180/math.Pi)
			} else {
				fmt.Println("invalid: this hinge will not allow the lid to open and close")
			}

			fmt.Printf("share: %s\n", project.EncodeShare(proj))
			return nil
		},
	}
	bf.register(cmd)
	return cmd
}

// newCheckCmd validates a layout and sets the exit status accordingly.
func newCheckCmd() *cobra.Command {
	var bf boxFlags

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check whether the pivot layout produces a working hinge",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			_, _, editor, err := bf.load()
			if err != nil {
				return err
			}
			if !editor.IsValidRangeReachable() {
				return fmt.Errorf("linkage locks before the lid reaches the open position")
			}
			logger.Info("layout is valid", "rodA", editor.Layout().A.RodLength(), "rodB", editor.Layout().B.RodLength())
			return nil
		},
	}
	bf.register(cmd)
	return cmd
}

// newSolveCmd runs the synthesis optimizer and prints the share string of
// the solution.
func newSolveCmd() *cobra.Command {
	var bf boxFlags
	var seed int64
	var equalWeight float64
	var out string

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Search for a valid pivot layout automatically",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			proj, config, editor, err := bf.load()
			if err != nil {
				return err
			}
			opts := engine.SynthesisOptions{
				EqualLengthWeight: config.Solver.EqualLengthWeight,
				Seed:              config.Solver.Seed,
			}
			if cmd.Flags().Changed("seed") {
				opts.Seed = seed
			}
			if cmd.Flags().Changed("equal-weight") {
				opts.EqualLengthWeight = equalWeight
			}

			logger.Debug("starting synthesis", "seed", opts.Seed, "equalWeight", opts.EqualLengthWeight)
			result := engine.Synthesize(editor.Geometry(), opts)
			logger.Debug("synthesis finished", "iterations", result.Iterations, "objective", result.Objective)

			if !result.Valid {
				return fmt.Errorf("no valid layout found: %s", result.Failure)
			}

			proj.Layout = result.Layout
			logger.Info("found valid layout",
				"rodA", result.Layout.A.RodLength(),
				"rodB", result.Layout.B.RodLength(),
				"maxError", result.MaxVertexError)
			fmt.Printf("share: %s\n", project.EncodeShare(proj))

			if out != "" {
				if err := project.Save(out, proj); err != nil {
					return fmt.Errorf("save project: %w", err)
				}
				logger.Info("saved project", "path", out)
			}
			return nil
		},
	}
	bf.register(cmd)
	cmd.Flags().Int64Var(&seed, "seed", 42, "random seed for the optimizer")
	cmd.Flags().Float64Var(&equalWeight, "equal-weight", 0, "penalty weight for unequal rod lengths")
	cmd.Flags().StringVarP(&out, "output", "o", "", "save the solved project to this JSON file")
	return cmd
}

// newExportCmd renders the configuration to pdf, dxf, svg or xlsx.
func newExportCmd() *cobra.Command {
	var bf boxFlags
	var format string
	var out string
	var frames int

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a drilling template or drawing",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			proj, config, editor, err := bf.load()
			if err != nil {
				return err
			}
			snap := export.BuildSnapshot(editor)

			switch strings.ToLower(format) {
			case "pdf":
				shareURL := config.Export.ShareBaseURL + project.EncodeShare(proj)
				err = export.ExportPDF(out, snap, shareURL)
			case "dxf":
				err = export.ExportDXF(out, snap)
			case "svg":
				err = export.ExportSVG(out, snap, frames)
			case "xlsx":
				err = export.ExportXLSX(out, snap)
			default:
				return fmt.Errorf("unknown format %q (want pdf, dxf, svg or xlsx)", format)
			}
			if err != nil {
				return fmt.Errorf("export %s: %w", format, err)
			}
			logger.Info("exported", "format", format, "path", out)
			return nil
		},
	}
	bf.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "pdf", "output format: pdf, dxf, svg or xlsx")
	cmd.Flags().StringVarP(&out, "output", "o", "hinge.pdf", "output file path")
	cmd.Flags().IntVar(&frames, "frames", 9, "number of motion frames in the SVG export")
	return cmd
}
