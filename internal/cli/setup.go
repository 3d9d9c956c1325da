package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hugogrimmett/hinge-generator-sub000/internal/engine"
	"github.com/hugogrimmett/hinge-generator-sub000/internal/model"
	"github.com/hugogrimmett/hinge-generator-sub000/internal/project"
)

// boxFlags is the shared flag set describing a hinge configuration: either
// explicit box parameters or a share string, optionally a saved project
// file.
type boxFlags struct {
	height, width, depth, alpha, gap float64
	share                            string
	projectFile                      string
	equalLength                      bool
	configPath                       string
}

func (bf *boxFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&bf.height, "height", 0, "box height h")
	cmd.Flags().Float64Var(&bf.width, "width", 0, "box width w")
	cmd.Flags().Float64Var(&bf.depth, "depth", 0, "lid depth d")
	cmd.Flags().Float64Var(&bf.alpha, "angle", 0, "lid cut angle in degrees")
	cmd.Flags().Float64Var(&bf.gap, "gap", 0, "open-position gap g")
	cmd.Flags().StringVar(&bf.share, "share", "", "share string (URL query) describing the configuration")
	cmd.Flags().StringVar(&bf.projectFile, "project", "", "path to a saved project JSON file")
	cmd.Flags().BoolVar(&bf.equalLength, "equal-length", false, "keep both rod lengths equal")
	cmd.Flags().StringVar(&bf.configPath, "config", project.DefaultConfigPath(), "path to the TOML config file")
}

// load resolves the flags into a project: project file beats share string
// beats explicit parameters beats config defaults. A zero layout is seeded
// with the geometry defaults; a loaded layout is normalized against the
// geometry before it reaches the editor.
func (bf *boxFlags) load() (project.Project, project.AppConfig, *engine.Editor, error) {
	config, err := project.LoadAppConfig(bf.configPath)
	if err != nil {
		return project.Project{}, config, nil, fmt.Errorf("load config: %w", err)
	}

	var proj project.Project
	switch {
	case bf.projectFile != "":
		proj, err = project.Load(bf.projectFile)
		if err != nil {
			return proj, config, nil, err
		}
	case bf.share != "":
		proj, err = project.DecodeShare(bf.share)
		if err != nil {
			return proj, config, nil, err
		}
	default:
		params := config.Box
		if bf.height > 0 {
			params.H = bf.height
		}
		if bf.width > 0 {
			params.W = bf.width
		}
		if bf.depth > 0 {
			params.D = bf.depth
		}
		if bf.alpha > 0 {
			params.Alpha = bf.alpha
		}
		if bf.gap > 0 {
			params.G = bf.gap
		}
		proj = project.Project{Name: "cli", Params: params}
	}
	if bf.equalLength {
		proj.EqualLength = true
	}

	geo, err := model.NewGeometry(proj.Params)
	if err != nil {
		return proj, config, nil, err
	}
	if proj.HasLayout() {
		proj.Layout, err = geo.NormalizeLayout(proj.Layout)
		if err != nil {
			return proj, config, nil, fmt.Errorf("pivot layout: %w", err)
		}
	} else {
		proj.Layout = geo.DefaultLayout()
	}
	if proj.ID == "" {
		proj.ID = project.NewID()
	}

	editor := engine.NewEditor(geo, proj.Layout)
	if proj.EqualLength && !editor.SetEqualLength(true) {
		return proj, config, nil, fmt.Errorf("no equal-rod-length adjustment exists for this layout")
	}
	return proj, config, editor, nil
}
