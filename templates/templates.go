package templates

import (
	"embed"
	"fmt"
	"html"
	"html/template"
	"maps"
	"net/url"
	"strconv"
	"strings"

	"github.com/thehowl/godiff/pkg/diff"
)

var (
	funcMap = map[string]any{
		"hunk_header": func(hunk diff.Hunk) string {
			return fmt.Sprintf("@@ -%d,%d +%d,%d @@", hunk.LineOld, hunk.CountOld, hunk.LineNew, hunk.CountNew)
		},
		"split_rows": splitRows,
	}
	Templates = template.Must(
		template.New("").
			Funcs(funcMap).
			ParseFS(templateFS, "*.tmpl"),
	)
	//go:embed *
	templateFS embed.FS
)

// splitRow is one row of the side-by-side diff view: a line from the old
// file paired with its counterpart from the new file, padded with blanks
// when a change block has more lines on one side than the other.
type splitRow struct {
	RedNum, GreenNum int
	Red, Green       string
}

// splitRows pairs up a Hunk's Lines for side-by-side display, flushing
// pending delete/insert runs against each other (padding the shorter run
// with blank rows) whenever an equal line, or the end of the hunk, is hit.
func splitRows(h diff.Hunk) []splitRow {
	var rows []splitRow
	var dels, inss []diff.HunkLine

	flush := func() {
		n := len(dels)
		if len(inss) > n {
			n = len(inss)
		}
		for i := 0; i < n; i++ {
			var row splitRow
			if i < len(dels) {
				row.RedNum, row.Red = dels[i].NumberX, dels[i].Content()
			}
			if i < len(inss) {
				row.GreenNum, row.Green = inss[i].NumberY, inss[i].Content()
			}
			rows = append(rows, row)
		}
		dels, inss = nil, nil
	}

	for _, l := range h.Lines {
		switch l.Type() {
		case diff.TypeDelete:
			dels = append(dels, l)
		case diff.TypeInsert:
			inss = append(inss, l)
		default:
			flush()
			rows = append(rows, splitRow{
				RedNum: l.NumberX, Red: l.Content(),
				GreenNum: l.NumberY, Green: l.Content(),
			})
		}
	}
	flush()

	return rows
}

type FileTemplateData struct {
	ID      string
	Diff    diff.Unified
	Space   string
	Context int
	Split   bool
	Query   url.Values
}

func (f *FileTemplateData) WithQueryValue(key, value string) string {
	uvCopy := make(url.Values)
	maps.Copy(uvCopy, f.Query)
	if value == "" {
		uvCopy.Del(key)
	} else {
		uvCopy.Set(key, value)
	}
	if len(uvCopy) == 0 {
		return ""
	}
	return "?" + uvCopy.Encode()
}

func (f *FileTemplateData) ContextLinks() template.HTML {
	const (
		minVal = 0
		maxVal = 1000
	)
	smallest := f.Context - 3
	greatest := f.Context + 3
	if smallest < minVal {
		greatest += (minVal - smallest)
		smallest = minVal
	}
	if greatest > maxVal {
		smallest -= (greatest - maxVal)
		greatest = maxVal
	}
	var bld strings.Builder

	for i := smallest; i <= greatest; i++ {
		if bld.Len() != 0 {
			bld.WriteString(" | ")
		}
		if i == f.Context {
			bld.WriteString("<b>" + strconv.Itoa(f.Context) + "</b>")
			continue
		}
		intString := strconv.Itoa(i)
		if intString == "3" {
			intString = ""
		}
		uri := "/" + f.ID + f.WithQueryValue("c", intString)
		bld.WriteString(
			`<a href="` + html.EscapeString(uri) + `">` +
				strconv.Itoa(i) + `</a>`,
		)
	}
	return template.HTML(bld.String())
}
