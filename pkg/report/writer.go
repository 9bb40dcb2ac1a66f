package report

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/Sriram-PR/seo-audit/pkg/models"
	"github.com/Sriram-PR/seo-audit/pkg/utils"
)

const filePrefix = "SEOAnalysis__"

// Analysis is the findings section of the report
type Analysis struct {
	Overall []string `json:"overall"`
	Details []string `json:"details"`
}

// Report is the full audit output
type Report struct {
	Robots   *models.RobotsRules       `json:"robots"`
	Sitemaps *models.SitemapCollection `json:"sitemaps"`
	PageData *models.PageData          `json:"pageData"`
	Analysis Analysis                  `json:"analysis"`
}

// BaseName returns the report file name, without extension, for origin.
func BaseName(origin string) string {
	host := origin
	if u, err := url.Parse(origin); err == nil && u.Host != "" {
		host = u.Host
	}
	return filePrefix + utils.SanitizeFilename(host)
}

// WriteJSON writes r to <dir>/<BaseName>.json and returns the path.
func WriteJSON(dir, origin string, r *Report) (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding report: %w", err)
	}
	return writeFile(dir, BaseName(origin)+".json", data)
}

func writeFile(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("%w: creating output directory '%s': %w", utils.ErrFilesystem, dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("%w: writing '%s': %w", utils.ErrFilesystem, path, err)
	}
	return path, nil
}
