// Command suggest runs the question-region suggestion engine against an
// exam paper PDF and prints the result as JSON on stdout. Warnings go to
// stderr.
package main

import (
	"encoding/json"
	"flag"
	"os"

	"github.com/rs/zerolog"

	paperlabeler "github.com/laurens1995s/paper-labeler"
	"github.com/laurens1995s/paper-labeler/model"
	"github.com/laurens1995s/paper-labeler/source"
)

type boxJSON struct {
	Page int        `json:"page"`
	BBox [4]float64 `json:"bbox"`
}

type questionJSON struct {
	Label *string   `json:"label"`
	Boxes []boxJSON `json:"boxes"`
}

func main() {
	var (
		path      = flag.String("pdf", "", "path to the exam paper PDF (required)")
		pages     = flag.Int("pages", 0, "page count to cover (0 = read from the document)")
		minHeight = flag.Int("min-height", 70, "minimum box height in baseline pixels")
		yPadding  = flag.Int("y-padding", 12, "vertical box padding in baseline pixels")
		pretty    = flag.Bool("pretty", false, "indent the JSON output")
	)
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if *path == "" {
		flag.Usage()
		log.Fatal().Msg("-pdf is required")
	}

	pageCount := *pages
	if pageCount == 0 {
		doc, err := source.Open(*path)
		if err != nil {
			log.Fatal().Err(err).Str("pdf", *path).Msg("open document")
		}
		pageCount = doc.PageCount()
		doc.Close()
	}

	cfg := paperlabeler.DefaultConfig()
	cfg.Assembler.MinHeightPx = *minHeight
	cfg.Assembler.YPaddingPx = *yPadding
	engine := paperlabeler.NewEngineWithConfig(cfg)

	questions, warnings := engine.SuggestFile(*path, pageCount)
	for _, w := range warnings {
		log.Warn().Str("code", string(w.Code)).Msg(w.Message)
	}
	log.Info().Int("pages", pageCount).Int("questions", len(questions)).Msg("suggestions ready")

	enc := json.NewEncoder(os.Stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(toJSON(questions)); err != nil {
		log.Fatal().Err(err).Msg("encode output")
	}
}

func toJSON(questions []model.Question) []questionJSON {
	out := make([]questionJSON, 0, len(questions))
	for _, q := range questions {
		qj := questionJSON{Boxes: make([]boxJSON, 0, len(q.Boxes))}
		if q.Label != "" {
			label := q.Label
			qj.Label = &label
		}
		for _, b := range q.Boxes {
			qj.Boxes = append(qj.Boxes, boxJSON{
				Page: b.Page,
				BBox: [4]float64{b.X0, b.Y0, b.X1, b.Y1},
			})
		}
		out = append(out, qj)
	}
	return out
}
