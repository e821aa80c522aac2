package game

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"
)

//go:embed templates/*
var templates embed.FS

var announcementTmpl = template.Must(template.ParseFS(templates, "templates/announcement.html"))

// Russian month names in genitive case (for dates like "15 января")
var russianMonths = []string{
	"января",
	"февраля",
	"марта",
	"апреля",
	"мая",
	"июня",
	"июля",
	"августа",
	"сентября",
	"октября",
	"ноября",
	"декабря",
}

// FormatDateRussian formats a date in Russian long form.
// Example: "15 января 2024"
func FormatDateRussian(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), russianMonths[t.Month()-1], t.Year())
}

// pluralRu picks the Russian plural form for n: one (1, 21), few (2-4, 22-24), many.
func pluralRu(n int, one, few, many string) string {
	n %= 100
	if n >= 11 && n <= 14 {
		return many
	}
	switch n % 10 {
	case 1:
		return one
	case 2, 3, 4:
		return few
	default:
		return many
	}
}

// HumanizeSince describes how long ago t was, e.g. "2 часа назад".
func HumanizeSince(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "только что"
	case d < time.Hour:
		m := int(d / time.Minute)
		return fmt.Sprintf("%d %s назад", m, pluralRu(m, "минуту", "минуты", "минут"))
	case d < 24*time.Hour:
		h := int(d / time.Hour)
		return fmt.Sprintf("%d %s назад", h, pluralRu(h, "час", "часа", "часов"))
	case d < 365*24*time.Hour:
		days := int(d / (24 * time.Hour))
		return fmt.Sprintf("%d %s назад", days, pluralRu(days, "день", "дня", "дней"))
	default:
		y := int(d / (365 * 24 * time.Hour))
		return fmt.Sprintf("%d %s назад", y, pluralRu(y, "год", "года", "лет"))
	}
}

// RenderAnnouncement renders the admin-channel post as Telegram HTML.
func RenderAnnouncement(a Announcement) (string, error) {
	var buf bytes.Buffer
	if err := announcementTmpl.Execute(&buf, a); err != nil {
		return "", fmt.Errorf("execute announcement template: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}
