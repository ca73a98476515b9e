// Package pdf writes highlight annotations into PDF documents.
package pdf

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/custodia-labs/survey-search/internal/core/domain"
	"github.com/custodia-labs/survey-search/internal/core/ports/driven"
)

// Ensure Annotator implements driven.Annotator
var _ driven.Annotator = (*Annotator)(nil)

// annotationPrintFlag makes highlights visible when printing.
const annotationPrintFlag = 4

// Annotator locates keywords with the text layer and adds one Highlight
// annotation per occurrence.
type Annotator struct {
	logger *slog.Logger
}

// NewAnnotator creates a PDF annotator
func NewAnnotator(logger *slog.Logger) *Annotator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Annotator{logger: logger}
}

// Annotate copies src to dst with highlights for the planned keywords.
// Pages outside the document and keywords shorter than
// domain.MinHighlightLength are skipped.
func (a *Annotator) Annotate(src []byte, dst io.Writer, plan domain.AnnotationPlan) (domain.AnnotationResult, error) {
	var result domain.AnnotationResult

	pages, err := readPages(src)
	if err != nil {
		return result, err
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(src), conf)
	if err != nil {
		return result, fmt.Errorf("load pdf: %w", err)
	}

	for _, pageNr := range planPages(plan, ctx.PageCount) {
		glyphs, ok := pages[pageNr]
		if !ok {
			a.logger.Warn("highlight page out of range", "page", pageNr, "page_count", ctx.PageCount)
			continue
		}
		text := buildText(glyphs)

		added := 0
		for _, kw := range plan.KeywordsFor(pageNr) {
			if len([]rune(kw)) < domain.MinHighlightLength {
				continue
			}
			for _, boxes := range text.find(kw) {
				if err := addHighlight(ctx, pageNr, boxes); err != nil {
					return result, fmt.Errorf("annotate page %d: %w", pageNr, err)
				}
				added++
			}
		}
		if added > 0 {
			result.Highlights += added
			result.PagesTouched++
			a.logger.Debug("page highlighted", "page", pageNr, "highlights", added)
		}
	}

	if err := api.WriteContext(ctx, dst); err != nil {
		return result, fmt.Errorf("write pdf: %w", err)
	}
	return result, nil
}

// planPages lists the pages a plan touches. Per-page plans may name pages
// beyond pageCount; those are reported by the caller.
func planPages(plan domain.AnnotationPlan, pageCount int) []int {
	if len(plan.PerPage) > 0 {
		return plan.PerPage.Pages()
	}
	if len(plan.AllPages) == 0 {
		return nil
	}
	pages := make([]int, pageCount)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

func addHighlight(ctx *model.Context, pageNr int, boxes []box) error {
	pageDict, pageRef, _, err := ctx.PageDict(pageNr, false)
	if err != nil {
		return err
	}
	if pageDict == nil || pageRef == nil {
		return fmt.Errorf("page %d not found", pageNr)
	}

	annot := types.Dict{
		"Type":       types.Name("Annot"),
		"Subtype":    types.Name("Highlight"),
		"Rect":       rectArray(boxes),
		"QuadPoints": quadPoints(boxes),
		"C":          types.NewNumberArray(domain.HighlightColor[0], domain.HighlightColor[1], domain.HighlightColor[2]),
		"CA":         types.Float(domain.HighlightOpacity),
		"F":          types.Integer(annotationPrintFlag),
		"P":          *pageRef,
	}
	ref, err := ctx.IndRefForNewObject(annot)
	if err != nil {
		return err
	}

	var annots types.Array
	if obj, found := pageDict.Find("Annots"); found {
		annots, err = ctx.DereferenceArray(obj)
		if err != nil {
			return err
		}
	}
	pageDict["Annots"] = append(annots, *ref)
	return nil
}

func rectArray(boxes []box) types.Array {
	r := boxes[0]
	for _, b := range boxes[1:] {
		r.X0 = math.Min(r.X0, b.X0)
		r.Y0 = math.Min(r.Y0, b.Y0)
		r.X1 = math.Max(r.X1, b.X1)
		r.Y1 = math.Max(r.Y1, b.Y1)
	}
	return types.NewNumberArray(r.X0, r.Y0, r.X1, r.Y1)
}

// quadPoints orders each box top-left, top-right, bottom-left, bottom-right.
func quadPoints(boxes []box) types.Array {
	vals := make([]float64, 0, 8*len(boxes))
	for _, b := range boxes {
		vals = append(vals, b.X0, b.Y1, b.X1, b.Y1, b.X0, b.Y0, b.X1, b.Y0)
	}
	return types.NewNumberArray(vals...)
}
