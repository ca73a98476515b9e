package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/survey-search/internal/core/domain"
)

// buildPDF writes a minimal PDF with one text line per page, set in a
// fixed-width Helvetica so glyph positions are predictable.
func buildPDF(t *testing.T, pages ...string) []byte {
	t.Helper()

	widths := strings.TrimSpace(strings.Repeat("500 ", 126-32+1))
	objects := []string{
		"", // catalog, filled below
		"", // page tree, filled below
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding " +
			"/FirstChar 32 /LastChar 126 /Widths [" + widths + "] >>",
	}

	var kids []string
	for _, text := range pages {
		content := fmt.Sprintf("BT /F1 12 Tf 72 700 Td (%s) Tj ET", text)
		pageNum := len(objects) + 1
		contentNum := pageNum + 1
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] "+
				"/Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", contentNum),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		)
		kids = append(kids, fmt.Sprintf("%d 0 R", pageNum))
	}
	objects[0] = "<< /Type /Catalog /Pages 2 0 R >>"
	objects[1] = fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages))

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

// annotCounts re-reads a written PDF and counts annotations per page.
func annotCounts(t *testing.T, out []byte) []int {
	t.Helper()
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(out), conf)
	require.NoError(t, err)

	counts := make([]int, ctx.PageCount)
	for i := range counts {
		pageDict, _, _, err := ctx.PageDict(i+1, false)
		require.NoError(t, err)
		if obj, ok := pageDict.Find("Annots"); ok {
			arr, err := ctx.DereferenceArray(obj)
			require.NoError(t, err)
			counts[i] = len(arr)
		}
	}
	return counts
}

func TestAnnotate_PerPage(t *testing.T) {
	src := buildPDF(t, "Maternal health services", "Child health and nutrition")

	var out bytes.Buffer
	res, err := NewAnnotator(nil).Annotate(src, &out, domain.AnnotationPlan{
		PerPage: domain.PageKeywords{2: {"health"}},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Highlights)
	assert.Equal(t, 1, res.PagesTouched)
	assert.Equal(t, []int{0, 1}, annotCounts(t, out.Bytes()))
}

func TestAnnotate_AllPages(t *testing.T) {
	src := buildPDF(t, "Maternal health services", "Child health and nutrition")

	var out bytes.Buffer
	res, err := NewAnnotator(nil).Annotate(src, &out, domain.AnnotationPlan{
		AllPages: []string{"HEALTH", "maternal", "x"},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, res.Highlights)
	assert.Equal(t, 2, res.PagesTouched)
	assert.Equal(t, []int{2, 1}, annotCounts(t, out.Bytes()))
}

func TestAnnotate_NoMatchesStillWritesCopy(t *testing.T) {
	src := buildPDF(t, "Maternal health services")

	var out bytes.Buffer
	res, err := NewAnnotator(nil).Annotate(src, &out, domain.AnnotationPlan{
		PerPage: domain.PageKeywords{1: {"vaccination"}, 7: {"health"}},
	})
	require.NoError(t, err)

	assert.Zero(t, res.Highlights)
	assert.True(t, bytes.HasPrefix(out.Bytes(), []byte("%PDF")))
	assert.Equal(t, []int{0}, annotCounts(t, out.Bytes()))
}

func TestAnnotate_InvalidDocument(t *testing.T) {
	var out bytes.Buffer
	_, err := NewAnnotator(nil).Annotate([]byte("not a pdf"), &out, domain.AnnotationPlan{AllPages: []string{"x"}})
	assert.Error(t, err)
}

func TestPlanPages(t *testing.T) {
	assert.Equal(t, []int{1, 3}, planPages(domain.AnnotationPlan{PerPage: domain.PageKeywords{3: {"a"}, 1: {"b"}}}, 2))
	assert.Equal(t, []int{1, 2, 3}, planPages(domain.AnnotationPlan{AllPages: []string{"a"}}, 3))
	assert.Nil(t, planPages(domain.AnnotationPlan{}, 3))
}
