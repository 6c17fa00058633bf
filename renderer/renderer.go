package renderer

import (
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

// RenderScoreCard renders a borrower's trust score to markdown.
func RenderScoreCard(c *ScoreCard) string {
	partials := map[string]string{
		"score_factors": "score_factors.md",
		"score_history": "score_history.md",
	}
	return renderTemplate("scoreCard", "score_card.md", partials, c)
}

// RenderSummary renders the whole-book overview to markdown.
func RenderSummary(s *Summary) string {
	return renderTemplate("summary", "summary.md", nil, s)
}

// RenderStatement renders a borrower's detailed statement to markdown.
func RenderStatement(s *Statement) string {
	partials := map[string]string{
		"statement_loan": "statement_loan.md",
	}
	return renderTemplate("statement", "statement.md", partials, s)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, "templates/"+file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
