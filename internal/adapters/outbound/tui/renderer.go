package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/abdidvp/visualkraft/internal/domain"
)

// ── warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	info    = lipgloss.Color("#8B949E") // soft blue-gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	verdictColors = map[domain.Verdict]lipgloss.Color{
		domain.VerdictPass:    success,
		domain.VerdictWarning: warning,
		domain.VerdictFail:    danger,
	}

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	infoTagStyle  = lipgloss.NewStyle().Foreground(info)
	fileStyle     = lipgloss.NewStyle().Foreground(dim)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	catNameStyle  = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// finding is one line of the report's findings section.
type finding struct {
	severity string // error, warning, info
	subject  string
	message  string
}

func RenderResult(r *domain.ValidationResult) string {
	var b strings.Builder

	// ── Header ──
	title := headerStyle.Render("visualkraft")
	subtitle := dimStyle.Render(fmt.Sprintf("Visual Validation · %d pages · %d screenshots", len(r.Pages), len(r.Screenshots)))
	color := verdictColor(r.OverallVerdict)
	scoreStyled := lipgloss.NewStyle().Bold(true).Foreground(color).Render(fmt.Sprintf("%d / 100", r.OverallScore))
	verdictStyled := lipgloss.NewStyle().Bold(true).Foreground(color).Render(strings.ToUpper(string(r.OverallVerdict)))

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + scoreStyled + "  " + verdictStyled))
	b.WriteString("\n\n")

	// ── Categories ──
	for _, cat := range r.Categories {
		renderCategory(&b, cat)
	}
	renderChecks(&b, r)

	b.WriteString("\n")
	b.WriteString("  " + separatorLine)
	b.WriteString("\n\n")

	// ── Findings ──
	findings := collectFindings(r)
	if len(findings) > 0 {
		errorCount, warnCount, infoCount := countSeverities(findings)
		b.WriteString("  ")
		b.WriteString(titleStyle.Render("Findings"))
		b.WriteString("  ")
		if errorCount > 0 {
			b.WriteString(errorTagStyle.Render(fmt.Sprintf("%d errors", errorCount)))
			b.WriteString("  ")
		}
		if warnCount > 0 {
			b.WriteString(warnTagStyle.Render(fmt.Sprintf("%d warnings", warnCount)))
			b.WriteString("  ")
		}
		if infoCount > 0 {
			b.WriteString(infoTagStyle.Render(fmt.Sprintf("%d info", infoCount)))
		}
		b.WriteString("\n\n")

		for _, f := range findings {
			renderFinding(&b, f)
		}
	} else {
		b.WriteString("  " + passStyle.Render("No findings.") + "\n")
	}

	// ── Screenshots ──
	if len(r.Screenshots) > 0 {
		b.WriteString("\n  " + titleStyle.Render("Screenshots") + "\n")
		for _, s := range r.Screenshots {
			fmt.Fprintf(&b, "    %s %s\n", dimStyle.Render(padRight(s.Viewport.Name, 12)), fileStyle.Render(shortenPath(s.FilePath)))
		}
	}

	b.WriteString("\n")
	return b.String()
}

func renderCategory(b *strings.Builder, cat domain.CategoryScore) {
	color := scoreColor(cat.Score)
	scoreText := lipgloss.NewStyle().Bold(true).Foreground(color).Render(fmt.Sprintf("%d", cat.Score))
	bar := coloredBar(cat.Score, 20)
	weight := dimStyle.Render(fmt.Sprintf("%d%%", int(cat.Weight*100+0.5)))

	name := catNameStyle.Render(padRight(cat.Name, 20))
	fmt.Fprintf(b, "  %s %s  %s %s\n", name, bar, scoreText, weight)
}

// renderChecks lists the boolean checks behind the design and brand scores.
func renderChecks(b *strings.Builder, r *domain.ValidationResult) {
	checks := []struct {
		name string
		ok   bool
	}{
		{"design tokens", r.DesignCompliance.TokenUsageDetected},
		{"component markup", r.DesignCompliance.ComponentMarkupDetected},
		{"elevation markup", r.DesignCompliance.ElevationMarkupDetected},
		{"typography tokens", r.DesignCompliance.TypographyTokenDetected},
		{"brand token", r.BrandCompliance.BrandTokenDetected},
		{"glass effect", r.BrandCompliance.GlassEffectMarkupDetected},
		{"theme class", r.BrandCompliance.ThemeClassPresent},
	}
	b.WriteString("\n")
	for _, c := range checks {
		icon := failStyle.Render("●")
		if c.ok {
			icon = passStyle.Render("●")
		}
		fmt.Fprintf(b, "    %s %s\n", icon, padRight(c.name, 34))
	}
	fmt.Fprintf(b, "    %s %s %s\n", dimStyle.Render("○"), padRight("compliance level", 34),
		dimStyle.Render(string(r.Accessibility.ComplianceLevel)))
}

func collectFindings(r *domain.ValidationResult) []finding {
	var all []finding
	for _, v := range r.Accessibility.Violations {
		all = append(all, finding{
			severity: impactSeverity(v.Impact),
			subject:  v.ID,
			message:  fmt.Sprintf("%s (%d nodes)", v.Description, len(v.Nodes)),
		})
	}
	for _, f := range r.Failures {
		subject := f.URL
		if f.Viewport != "" {
			subject += " @ " + f.Viewport
		}
		all = append(all, finding{severity: "error", subject: subject, message: f.Error})
	}
	for _, t := range r.Themes {
		for _, theme := range t.FailedThemes {
			all = append(all, finding{severity: "warning", subject: t.URL, message: fmt.Sprintf("theme %q failed to apply", theme)})
		}
	}
	for _, s := range r.Screenshots {
		for _, w := range s.Warnings {
			all = append(all, finding{severity: "warning", subject: s.URL + " @ " + s.Viewport.Name, message: w})
		}
		for _, e := range s.Errors {
			all = append(all, finding{severity: "error", subject: s.URL + " @ " + s.Viewport.Name, message: "console: " + e})
		}
	}
	for _, probe := range []struct {
		name   string
		failed bool
		err    string
	}{
		{"accessibility", r.Accessibility.Failed, r.Accessibility.Error},
		{"performance", r.Performance.Failed, r.Performance.Error},
		{"design", r.DesignCompliance.Failed, r.DesignCompliance.Error},
		{"brand", r.BrandCompliance.Failed, r.BrandCompliance.Error},
	} {
		if probe.failed {
			all = append(all, finding{severity: "error", subject: probe.name + " probe", message: probe.err})
		}
	}
	if len(r.Performance.Estimated) > 0 {
		all = append(all, finding{
			severity: "info",
			subject:  "performance",
			message:  "estimated, not measured: " + strings.Join(r.Performance.Estimated, ", "),
		})
	}
	sortBySeverity(all)
	return all
}

func impactSeverity(impact string) string {
	switch impact {
	case "critical", "serious":
		return "error"
	case "moderate", "minor":
		return "warning"
	default:
		return "info"
	}
}

func renderFinding(b *strings.Builder, f finding) {
	tag := severityTag(f.severity)
	if f.subject != "" {
		fmt.Fprintf(b, "    %s %s\n", tag, fileStyle.Render(f.subject))
		fmt.Fprintf(b, "         %s\n", dimStyle.Render(f.message))
	} else {
		fmt.Fprintf(b, "    %s %s\n", tag, dimStyle.Render(f.message))
	}
}

func severityTag(severity string) string {
	switch severity {
	case "error":
		return errorTagStyle.Render("error")
	case "warning":
		return warnTagStyle.Render("warn ")
	default:
		return infoTagStyle.Render("info ")
	}
}

func countSeverities(findings []finding) (errors, warnings, infos int) {
	for _, f := range findings {
		switch f.severity {
		case "error":
			errors++
		case "warning":
			warnings++
		default:
			infos++
		}
	}
	return
}

func sortBySeverity(findings []finding) {
	order := map[string]int{"error": 0, "warning": 1, "info": 2}
	for i := 1; i < len(findings); i++ {
		for j := i; j > 0 && order[findings[j].severity] < order[findings[j-1].severity]; j-- {
			findings[j], findings[j-1] = findings[j-1], findings[j]
		}
	}
}

// RenderQuickCheck formats a quick check for terminal output.
func RenderQuickCheck(q *domain.QuickCheckResult) string {
	var b strings.Builder
	status := passStyle.Render("PASSED")
	if !q.Passed {
		status = failStyle.Render("FAILED")
	}
	scoreStyled := lipgloss.NewStyle().Bold(true).Foreground(scoreColor(q.Score)).Render(fmt.Sprintf("%d/100", q.Score))

	fmt.Fprintf(&b, "\n  %s  %s  %s  %s\n\n", titleStyle.Render("Quick check"), fileStyle.Render(q.URL), scoreStyled, status)
	for _, issue := range q.Issues {
		fmt.Fprintf(&b, "    %s %s\n", warnTagStyle.Render("issue"), dimStyle.Render(issue))
	}
	for _, s := range q.Screenshots {
		fmt.Fprintf(&b, "    %s %s\n", infoTagStyle.Render("shot "), fileStyle.Render(shortenPath(s)))
	}
	b.WriteString("\n")
	return b.String()
}

// RenderThemes formats a theme sweep for terminal output.
func RenderThemes(t domain.ThemeReport) string {
	var b strings.Builder
	status := passStyle.Render("compatible")
	if !t.Compatible {
		status = failStyle.Render(fmt.Sprintf("%d themes failed", len(t.FailedThemes)))
	}
	fmt.Fprintf(&b, "\n  %s  %s  %s\n\n", titleStyle.Render("Themes"), fileStyle.Render(t.URL), status)

	failed := make(map[string]bool, len(t.FailedThemes))
	for _, f := range t.FailedThemes {
		failed[f] = true
	}
	names := make([]string, 0, len(t.Screenshots)+len(t.FailedThemes))
	for name := range t.Screenshots {
		if !failed[name] {
			names = append(names, name)
		}
	}
	sortStrings(names)
	for _, name := range names {
		fmt.Fprintf(&b, "    %s %s %s\n", passStyle.Render("●"), padRight(name, 16), fileStyle.Render(shortenPath(t.Screenshots[name])))
	}
	for _, name := range t.FailedThemes {
		fmt.Fprintf(&b, "    %s %s\n", failStyle.Render("●"), padRight(name, 16))
	}
	b.WriteString("\n")
	return b.String()
}

func coloredBar(score, width int) string {
	filled := max(0, min(score*width/100, width))
	empty := width - filled

	color := scoreColor(score)
	filledStr := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	emptyStr := lipgloss.NewStyle().Foreground(faint).Render(strings.Repeat("░", empty))
	return filledStr + emptyStr
}

func scoreColor(score int) lipgloss.Color {
	switch {
	case score >= 85:
		return success
	case score >= 70:
		return warning
	default:
		return danger
	}
}

func verdictColor(v domain.Verdict) lipgloss.Color {
	if c, ok := verdictColors[v]; ok {
		return c
	}
	return fg
}

func shortenPath(path string) string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	if len(parts) > 3 {
		return strings.Join(parts[len(parts)-3:], "/")
	}
	return path
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j] < s[j-1]; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}
