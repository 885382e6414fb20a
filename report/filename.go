package report

import (
	"strings"
	"time"
)

var filenameReplacer = strings.NewReplacer("/", "-", "\\", "-", " ", "_", "\"", "", ":", "-")

// Filename joins the non-empty parts as {kind}-{identifier}-{period}.{ext}.
func Filename(ext string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		kept = append(kept, filenameReplacer.Replace(p))
	}
	return strings.Join(kept, "-") + "." + ext
}

// ExportFilename is data-{entity}-{YYYY-MM-DD}.xlsx.
func ExportFilename(entity string, at time.Time) string {
	return Filename("xlsx", "data", entity, at.Format(time.DateOnly))
}
