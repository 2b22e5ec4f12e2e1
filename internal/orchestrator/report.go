package orchestrator

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/AmnadTaowsoam/cerebratechai-claude-skills/internal/statestore"
)

// DefaultReportPath is the fixed artifact location of the HTML report.
const DefaultReportPath = "generation_report.html"

type ReportResult struct {
	OutPath   string `json:"out_path"`
	Generated int    `json:"generated"`
	Failed    int    `json:"failed"`
}

const reportTemplate = `<!DOCTYPE html>
<html>
<head>
    <title>Skill Generation Report</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 40px; }
        .success { color: green; }
        .failed { color: red; }
        table { border-collapse: collapse; width: 100%; margin-top: 20px; }
        th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
        th { background-color: #4CAF50; color: white; }
    </style>
</head>
<body>
    <h1>Skill Generation Report</h1>
    <p>Generated: {{.Timestamp}}</p>

    <h2>Summary</h2>
    <p class="success">Successfully generated: {{len .Generated}}</p>
    <p class="failed">Failed: {{len .Failed}}</p>

    <h2>Generated Skills</h2>
    <table>
        <tr><th>#</th><th>Skill Path</th></tr>
        {{range $i, $path := .Generated}}<tr><td>{{ordinal $i}}</td><td>{{$path}}</td></tr>
        {{end}}
    </table>

    <h2>Failed Skills</h2>
    <table>
        <tr><th>#</th><th>Skill Path</th></tr>
        {{range $i, $path := .Failed}}<tr><td>{{ordinal $i}}</td><td>{{$path}}</td></tr>
        {{end}}
    </table>
</body>
</html>
`

var reportTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"ordinal": func(i int) int { return i + 1 },
}).Parse(reportTemplate))

// ExportReport renders the static two-table summary of the progress state.
// Pure read; the only side effect is the report artifact itself.
func ExportReport(store statestore.Store, outPath string) (ReportResult, error) {
	if outPath == "" {
		outPath = DefaultReportPath
	}
	state, err := store.Load()
	if err != nil {
		return ReportResult{}, err
	}

	var buf bytes.Buffer
	err = reportTmpl.Execute(&buf, struct {
		Timestamp string
		Generated []string
		Failed    []string
	}{
		Timestamp: time.Now().Format("2006-01-02 15:04:05"),
		Generated: state.Generated,
		Failed:    state.Failed,
	})
	if err != nil {
		return ReportResult{}, fmt.Errorf("render generation report: %w", err)
	}
	if err := statestore.WriteBytes(outPath, buf.Bytes()); err != nil {
		return ReportResult{}, err
	}
	return ReportResult{
		OutPath:   outPath,
		Generated: len(state.Generated),
		Failed:    len(state.Failed),
	}, nil
}
