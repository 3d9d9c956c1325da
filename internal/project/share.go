package project

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/hugogrimmett/hinge-generator-sub000/internal/geom"
	"github.com/hugogrimmett/hinge-generator-sub000/internal/model"
)

// Share-string keys. The format mirrors the query parameters the original
// web tool stores in its URL: box parameters plus the four editable pivot
// coordinates.
const (
	keyHeight = "h"
	keyWidth  = "w"
	keyDepth  = "d"
	keyAlpha  = "alpha"
	keyGap    = "g"
	keyEqual  = "eq"
)

// EncodeShare renders a project as a URL query string.
func EncodeShare(p Project) string {
	v := url.Values{}
	setF := func(key string, f float64) {
		v.Set(key, strconv.FormatFloat(f, 'g', -1, 64))
	}
	setF(keyHeight, p.Params.H)
	setF(keyWidth, p.Params.W)
	setF(keyDepth, p.Params.D)
	setF(keyAlpha, p.Params.Alpha)
	setF(keyGap, p.Params.G)
	setF("ax", p.Layout.A.Closed.X)
	setF("ay", p.Layout.A.Closed.Y)
	setF("abx", p.Layout.A.Box.X)
	setF("aby", p.Layout.A.Box.Y)
	setF("bx", p.Layout.B.Closed.X)
	setF("by", p.Layout.B.Closed.Y)
	setF("bbx", p.Layout.B.Box.X)
	setF("bby", p.Layout.B.Box.Y)
	if p.EqualLength {
		v.Set(keyEqual, "1")
	}
	return v.Encode()
}

// DecodeShare parses a share string back into a project. Parameter keys
// are mandatory. Pivot keys are optional as a group: when all are absent
// the layout is left zero for the caller to seed with defaults, but once
// one is present the remaining seven are required.
func DecodeShare(s string) (Project, error) {
	v, err := url.ParseQuery(s)
	if err != nil {
		return Project{}, fmt.Errorf("parse share string: %w", err)
	}

	getF := func(key string) (float64, error) {
		raw := v.Get(key)
		if raw == "" {
			return 0, fmt.Errorf("share string missing %q", key)
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, fmt.Errorf("share string %s=%q: %w", key, raw, err)
		}
		return f, nil
	}

	var p Project
	var firstErr error
	need := func(key string) float64 {
		f, err := getF(key)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		return f
	}
	p.Params = model.Params{
		H:     need(keyHeight),
		W:     need(keyWidth),
		D:     need(keyDepth),
		Alpha: need(keyAlpha),
		G:     need(keyGap),
	}
	if firstErr != nil {
		return Project{}, firstErr
	}
	if err := p.Params.Validate(); err != nil {
		return Project{}, err
	}

	if v.Get("ax") != "" {
		// Once any pivot key is present, all eight are mandatory; a
		// truncated layout must not decode to zeroed pivots.
		p.Layout = model.Layout{
			A: model.ChainPivots{
				Closed: geom.Pt(need("ax"), need("ay")),
				Box:    geom.Pt(need("abx"), need("aby")),
			},
			B: model.ChainPivots{
				Closed: geom.Pt(need("bx"), need("by")),
				Box:    geom.Pt(need("bbx"), need("bby")),
			},
		}
		if firstErr != nil {
			return Project{}, firstErr
		}
	}
	p.EqualLength = v.Get(keyEqual) == "1"
	return p, nil
}

// HasLayout reports whether the project carries explicit pivot positions
// (as opposed to a zero layout awaiting defaults).
func (p Project) HasLayout() bool {
	var zero model.Layout
	return p.Layout != zero
}
