// Package report renders the aggregated statistics into the HTML page the
// server admin publishes.
package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"github.com/craftstats/mclogalyzer/internal/metrics"
	"github.com/craftstats/mclogalyzer/internal/stats"
)

//go:embed template.html
var defaultFS embed.FS

// Data is everything the template can reference.
type Data struct {
	Users                 []stats.UserView
	Server                stats.ServerView
	AchievementsAvailable int
	LastUpdate            string
}

// Render writes the report to w using the embedded default template.
func Render(w io.Writer, data Data) error {
	tmpl, err := template.ParseFS(defaultFS, "template.html")
	if err != nil {
		return fmt.Errorf("parse embedded template: %w", err)
	}
	return tmpl.Execute(w, data)
}

// RenderTemplate writes the report using a caller-supplied template file.
func RenderTemplate(w io.Writer, templatePath string, data Data) error {
	tmpl, err := template.New(filepath.Base(templatePath)).ParseFiles(templatePath)
	if err != nil {
		return fmt.Errorf("parse template %s: %w", templatePath, err)
	}
	return tmpl.Execute(w, data)
}

// WriteFile renders the report to outputPath. templatePath overrides the
// embedded template when non-empty.
func WriteFile(outputPath, templatePath string, data Data) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create report %s: %w", outputPath, err)
	}
	defer f.Close()

	if templatePath != "" {
		err = RenderTemplate(f, templatePath, data)
	} else {
		err = Render(f, data)
	}
	if err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write report %s: %w", outputPath, err)
	}

	metrics.ReportsBuilt.Inc()
	return nil
}
