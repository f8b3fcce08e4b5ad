package journey

import (
	"os"
	"path/filepath"
	"regexp"

	"github.com/getstarted/bookshelf-journey-tests/markup"
)

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// captureDiagnostics attaches the current page to the test output and, if configured, saves it to
// the artifact directory. Any problem here is only logged so the scenario's own failure stays the
// reported one.
func captureDiagnostics(t *T, b Browser) {
	url, err := b.CurrentURL()
	if err != nil {
		t.Debug("Could not read URL for diagnostics: %s", err)
	}
	html, err := b.PageSource()
	if err != nil {
		t.Debug("Could not read page markup for diagnostics: %s", err)
		return
	}
	if doc, err := markup.ParseString(html); err == nil {
		t.context.Attach("page outline", doc.Outline(url).String())
	}
	t.context.Attach("page markup", html)

	dir := t.env.config.ArtifactDir
	if dir == "" {
		return
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Debug("Could not create artifact directory: %s", err)
		return
	}
	base := filepath.Join(dir, artifactName(t))
	if err := os.WriteFile(base+".html", []byte(html), 0o644); err != nil {
		t.Debug("Could not save page markup: %s", err)
	}
	png, err := b.Screenshot()
	if err != nil {
		t.Debug("Could not capture screenshot: %s", err)
		return
	}
	if err := os.WriteFile(base+".png", png, 0o644); err != nil {
		t.Debug("Could not save screenshot: %s", err)
	}
}

func artifactName(t *T) string {
	return unsafeFileChars.ReplaceAllString(t.context.ID().String(), "_")
}
