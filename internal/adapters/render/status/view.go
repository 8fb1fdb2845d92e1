package status

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/smart-image-cli/internal/domain"
)

type RenderOptions struct {
	Now     time.Time
	Verbose bool
}

// Render formats the login state shown by "sig logout --check".
func Render(status domain.SessionStatus, opts RenderOptions) (string, error) {
	return run(func(s styles) string {
		return renderSession(status, opts, s)
	})
}

// RenderHistory formats the generation ledger, newest last.
func RenderHistory(records []domain.GenerationRecord, opts RenderOptions) (string, error) {
	return run(func(s styles) string {
		return renderHistory(records, opts, s)
	})
}

func renderSession(status domain.SessionStatus, opts RenderOptions, s styles) string {
	lines := []string{s.title.Render("Gemini session")}

	if status.LoggedIn() {
		lines = append(lines, s.ok.Render("logged in"))
	} else {
		lines = append(lines, s.warning.Render("not logged in"))
	}

	if status.Probed {
		if status.Ready {
			lines = append(lines, field(s, "session", s.ok.Render("valid")))
		} else {
			lines = append(lines, field(s, "session", s.warning.Render("expired")))
		}
	}

	if opts.Verbose {
		lines = append(lines,
			field(s, "data dir", s.detail.Render(emptyAs(status.DataDir, "unknown"))),
			field(s, "cookie file", yesNo(status.CookieFileExists)),
			field(s, "browser profile", yesNo(status.ProfileExists)),
			field(s, "session cookie", yesNo(status.MarkerPresent)),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderHistory(records []domain.GenerationRecord, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Generation history"),
		s.header.Render(fmt.Sprintf("generations: %d", len(records))),
	}

	if len(records) == 0 {
		lines = append(lines, s.empty.Render("Nothing generated yet."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, record := range records {
		lines = append(lines, s.section.Render(renderRecord(record, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderRecord(record domain.GenerationRecord, opts RenderOptions, s styles) string {
	parts := []string{
		lipgloss.JoinHorizontal(lipgloss.Top,
			s.id.Render(record.ID),
			" ",
			s.header.Render(formatWhen(record.CreatedAt, opts.Now)),
		),
		field(s, "model", s.detail.Render(emptyAs(record.Model, "unknown"))),
		field(s, "prompt", s.detail.Render(fmt.Sprintf("%d chars", record.PromptLength))),
		field(s, "images", s.detail.Render(fmt.Sprintf("%d found, %d saved", len(record.ImageURLs), len(record.SavedPaths)))),
	}

	if opts.Verbose {
		if text := strings.TrimSpace(record.Text); text != "" {
			parts = append(parts, field(s, "text", s.detail.Render(truncate(text, 80))))
		}
		for _, path := range record.SavedPaths {
			parts = append(parts, field(s, "saved", s.detail.Render(path)))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func field(s styles, key, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, s.key.Render(key+":"), " ", value)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func emptyAs(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func truncate(v string, limit int) string {
	runes := []rune(v)
	if len(runes) <= limit {
		return v
	}
	return string(runes[:limit-3]) + "..."
}

func formatWhen(at, now time.Time) string {
	if at.IsZero() {
		return "unknown time"
	}
	if now.IsZero() || at.After(now) {
		return at.Format(time.RFC3339)
	}

	elapsed := now.Sub(at)
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return plural(int(elapsed.Minutes()), "minute") + " ago"
	case elapsed < 24*time.Hour:
		return plural(int(elapsed.Hours()), "hour") + " ago"
	default:
		return at.Format("15:04 on 02 Jan 2006")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
