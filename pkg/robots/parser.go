package robots

import (
	"bufio"
	"strings"

	"github.com/Sriram-PR/seo-audit/pkg/models"
)

// Parse reads robots.txt content into rules.
//
// Field names are case-insensitive and split from their value at the first
// colon. Consecutive user-agent lines form a group and the rules after them
// apply to every agent of the group. Rules before any user-agent line are
// ignored, as are empty allow/disallow values.
func Parse(body string) *models.RobotsRules {
	rules := models.NewRobotsRules()

	var group []string
	inAgentRun := false

	scanner := bufio.NewScanner(strings.NewReader(body))
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		field, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		field = strings.ToLower(strings.TrimSpace(field))
		value = strings.TrimSpace(value)

		switch field {
		case "sitemap":
			if value != "" {
				rules.Sitemaps = append(rules.Sitemaps, value)
			}
		case "user-agent":
			if !inAgentRun {
				group = group[:0]
			}
			inAgentRun = true
			if value == "" {
				continue
			}
			rules.Agent(value)
			group = append(group, value)
		case "allow", "disallow":
			inAgentRun = false
			if value == "" {
				continue
			}
			for _, agent := range group {
				a := rules.Agent(agent)
				if field == "allow" {
					a.Allow = append(a.Allow, value)
					continue
				}
				a.Disallow = append(a.Disallow, value)
				if value == "/" {
					a.Blocked = true
				}
			}
		default:
			inAgentRun = false
		}
	}
	return rules
}
