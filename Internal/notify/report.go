package notify

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/mox0716/MarketScanner/Internal/utils/formatting"
	"github.com/mox0716/MarketScanner/Internal/utils/scanner"
	"github.com/mox0716/MarketScanner/Internal/utils/scoring"
)

const reportTemplate = `<html>
<body>
<h2>{{.Label}} daily scan &mdash; {{.Date}}</h2>
<p>{{.Status}}</p>
{{if .Candidates}}
<table border="1" cellpadding="4" cellspacing="0">
<tr>
<th>Ticker</th><th>Price</th><th>Stop</th><th>Target</th>
<th>ADX</th><th>Rel Vol</th><th>Win Rate 3d</th><th>Exp Return 3d</th><th>Signals</th>
</tr>
{{range .Candidates}}
<tr>
<td>{{.Symbol}}</td>
<td>{{printf "%.2f" .Price}}</td>
<td>{{printf "%.2f" .StopLoss}}</td>
<td>{{printf "%.2f" .TargetPrice}}</td>
<td>{{printf "%.1f" .ADX}}</td>
<td>{{printf "%.2f" .RelVolume}}</td>
<td>{{printf "%.1f%%" .WinRate}}</td>
<td>{{printf "%.2f%%" .ExpReturn}}</td>
<td>{{.Signals}}</td>
</tr>
{{end}}
</table>
{{else}}
<p>No qualified tickers found after full scan.</p>
{{end}}
{{if .SkipLines}}
<p><small>Skipped: {{range .SkipLines}}{{.}} {{end}}</small></p>
{{end}}
</body>
</html>`

var reportTmpl = template.Must(template.New("report").Parse(reportTemplate))

// RenderHTML builds the email body from a scan summary.
func RenderHTML(label string, summary scanner.Summary) (string, error) {
	data := struct {
		Label      string
		Date       string
		Status     string
		Candidates interface{}
		SkipLines  []string
	}{
		Label:      label,
		Date:       summary.FinishedAt.Format("2006-01-02"),
		Status:     summary.Status,
		Candidates: summary.Candidates,
		SkipLines:  skipLines(summary),
	}

	var sb strings.Builder
	if err := reportTmpl.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// RenderText is the plain-text fallback for clients that refuse HTML.
func RenderText(label string, summary scanner.Summary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s daily scan - %s\n", label, summary.FinishedAt.Format("2006-01-02"))
	sb.WriteString(formatting.Separator(72) + "\n")
	sb.WriteString(summary.Status + "\n\n")

	if len(summary.Candidates) == 0 {
		sb.WriteString("No qualified tickers found after full scan.\n")
	} else {
		fmt.Fprintf(&sb, "%-8s %10s %10s %10s %7s %8s %10s %10s %-9s\n",
			"TICKER", "PRICE", "STOP", "TARGET", "ADX", "RELVOL", "WINRATE", "EXPRET", "GRADE")
		for _, c := range summary.Candidates {
			fmt.Fprintf(&sb, "%-8s %10.2f %10.2f %10.2f %7.1f %8.2f %9.1f%% %9.2f%% %-9s\n",
				c.Symbol, c.Price, c.StopLoss, c.TargetPrice, c.ADX, c.RelVolume,
				c.WinRate, c.ExpReturn, scoring.Grade(c.WinRate))
		}
	}

	if lines := skipLines(summary); len(lines) > 0 {
		sb.WriteString("\nSkipped: " + strings.Join(lines, ", ") + "\n")
	}
	return sb.String()
}

// Subject builds the email subject line; the label is a cosmetic run
// identifier, typically the repository name.
func Subject(label string, summary scanner.Summary) string {
	return fmt.Sprintf("[%s] %d setups - %s", label, len(summary.Candidates),
		summary.FinishedAt.Format("Jan 2, 2006"))
}

func skipLines(summary scanner.Summary) []string {
	var lines []string
	for _, reason := range []scanner.SkipReason{
		scanner.SkipDataUnavailable,
		scanner.SkipInsufficientHistory,
		scanner.SkipNotEligible,
		scanner.SkipFilterNotMet,
		scanner.SkipBacktestRejected,
	} {
		if n := summary.Skipped[reason]; n > 0 {
			lines = append(lines, fmt.Sprintf("%s=%d", reason, n))
		}
	}
	return lines
}
