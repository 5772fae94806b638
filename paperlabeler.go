// Package paperlabeler infers per-question bounding regions from the text
// layout of a typeset exam paper. Given a document's extracted text lines
// and drawing primitives, it recognizes question and subpart markers,
// gathers geometric evidence per page, and assembles normalized regions
// suitable for seeding a labeling UI.
//
// The whole pipeline is best-effort and never returns an error: whatever
// goes wrong degrades to fewer suggestions, or to one fallback box per
// page, with the cause reported as warnings.
//
// Basic usage:
//
//	questions, warnings := paperlabeler.SuggestFile("paper.pdf", pageCount)
//	for _, w := range warnings {
//		log.Println(w)
//	}
package paperlabeler

import (
	"github.com/laurens1995s/paper-labeler/layout"
	"github.com/laurens1995s/paper-labeler/marker"
	"github.com/laurens1995s/paper-labeler/model"
	"github.com/laurens1995s/paper-labeler/quality"
	"github.com/laurens1995s/paper-labeler/regions"
	"github.com/laurens1995s/paper-labeler/source"
)

// Engine runs the suggestion pipeline. It is safe for concurrent use; all
// stages are stateless between calls.
type Engine struct {
	config     Config
	quality    *quality.Assessor
	lines      *layout.LineExtractor
	geometry   *layout.GeometryExtractor
	detector   *marker.Detector
	normalizer *marker.Normalizer
	assembler  *regions.Assembler
	merger     *regions.Merger
}

// NewEngine creates an engine with default configuration.
func NewEngine() *Engine {
	return NewEngineWithConfig(DefaultConfig())
}

// NewEngineWithConfig creates an engine with the given configuration.
func NewEngineWithConfig(config Config) *Engine {
	return &Engine{
		config:     config,
		quality:    quality.NewAssessorWithConfig(config.Quality),
		lines:      layout.NewLineExtractorWithConfig(config.Lines),
		geometry:   layout.NewGeometryExtractorWithConfig(config.Geometry),
		detector:   marker.NewDetectorWithConfig(config.Marker),
		normalizer: marker.NewNormalizerWithConfig(config.Normalize),
		assembler:  regions.NewAssemblerWithConfig(config.Assembler),
		merger:     regions.NewMergerWithConfig(config.Merge),
	}
}

// SuggestFile opens the document at path and suggests question regions.
// pageCount is the page count known to the caller; suggestions cover pages
// 2 through pageCount. Fewer than two pages yields no suggestions, and any
// failure degrades to one fallback box per page plus a warning.
func SuggestFile(path string, pageCount int) ([]model.Question, []Warning) {
	return NewEngine().SuggestFile(path, pageCount)
}

// SuggestFile is the file-based entry point; see the package-level
// function. The document is closed before returning.
func (e *Engine) SuggestFile(path string, pageCount int) ([]model.Question, []Warning) {
	if pageCount < 2 {
		return nil, nil
	}
	doc, err := source.Open(path)
	if err != nil {
		warning := Warning{Code: WarnUnreadable, Message: "cannot open document: " + err.Error()}
		return e.fallback(pageCount), []Warning{warning}
	}
	defer doc.Close()
	return e.Suggest(doc, pageCount)
}

// Suggest runs the pipeline against an already opened document. The caller
// retains ownership of doc.
func (e *Engine) Suggest(doc source.Document, pageCount int) ([]model.Question, []Warning) {
	if pageCount < 2 {
		return nil, nil
	}

	var warnings []Warning
	status, message := e.quality.Assess(doc)
	switch status {
	case quality.StatusGarbled:
		warnings = append(warnings, Warning{Code: WarnGarbled, Message: message})
		return e.fallback(pageCount), warnings
	case quality.StatusNoText:
		// Advisory only; some papers with sparse text still carry
		// recognizable markers.
		warnings = append(warnings, Warning{Code: WarnNoText, Message: message})
	}

	lastPage := pageCount
	if n := doc.PageCount(); n < lastPage {
		lastPage = n
	}

	var markers []model.Marker
	geo := make(map[int]model.PageGeometry)
	controlSnippet := ""
	for page := 2; page <= lastPage; page++ {
		pc, err := doc.Page(page)
		if err != nil || pc.Width <= 0 || pc.Height <= 0 {
			continue
		}
		lines := e.lines.Extract(pc)
		geo[page] = e.geometry.Scan(pc, lines)
		markers = append(markers, e.detector.DetectPage(lines, page, pc.Width, pc.Height)...)
		if controlSnippet == "" {
			controlSnippet = layout.ControlCharSnippet(lines)
		}
	}
	if controlSnippet != "" {
		warnings = append(warnings, Warning{
			Code:    WarnControlChars,
			Message: "invisible control characters near question markers: " + controlSnippet,
		})
	}

	if len(markers) == 0 {
		warnings = append(warnings, Warning{
			Code:    WarnNoMarkers,
			Message: "no question markers recognized; suggesting one box per page",
		})
		return e.fallback(pageCount), warnings
	}

	markers = e.normalizer.Normalize(markers)
	questions := e.assembler.Assemble(markers, geo)
	questions = e.merger.Merge(questions)
	if len(questions) == 0 {
		warnings = append(warnings, Warning{
			Code:    WarnEmptyResult,
			Message: "question regions degenerated during assembly; suggesting one box per page",
		})
		return e.fallback(pageCount), warnings
	}
	return questions, warnings
}

// fallback suggests one unlabeled full-width box per page 2..pageCount, the
// guaranteed-nonempty floor of the pipeline.
func (e *Engine) fallback(pageCount int) []model.Question {
	out := make([]model.Question, 0, pageCount-1)
	for page := 2; page <= pageCount; page++ {
		out = append(out, model.Question{
			Boxes: []model.Box{{
				Page: page,
				X0:   e.config.Assembler.BoxX0,
				Y0:   e.config.FallbackTop,
				X1:   e.config.Assembler.BoxX1,
				Y1:   e.config.FallbackBottom,
			}},
		})
	}
	return out
}
