package robots

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/temoto/robotstxt"

	"github.com/Sriram-PR/seo-audit/pkg/fetch"
	"github.com/Sriram-PR/seo-audit/pkg/models"
	"github.com/Sriram-PR/seo-audit/pkg/report"
	"github.com/Sriram-PR/seo-audit/pkg/utils"
)

// Result is what the resolver learned about a site's robots.txt
type Result struct {
	Rules *models.RobotsRules
	// Sitemaps to process: the declared ones, or the default location.
	Sitemaps []string
	// Data answers allow/deny questions; nil when no robots.txt was read.
	Data *robotstxt.RobotsData
}

// Resolver fetches and checks robots.txt
type Resolver struct {
	fetcher fetch.HTTPFetcher
	agg     *report.Aggregator
	log     *logrus.Entry
}

// NewResolver creates a Resolver
func NewResolver(fetcher fetch.HTTPFetcher, agg *report.Aggregator, log *logrus.Entry) *Resolver {
	return &Resolver{
		fetcher: fetcher,
		agg:     agg,
		log:     log.WithField("component", "robots"),
	}
}

// Resolve reads origin's robots.txt and records hygiene findings. It never
// fails: fetch problems become findings and an empty ruleset is used.
func (r *Resolver) Resolve(ctx context.Context, origin string) *Result {
	robotsURL := origin + "/robots.txt"
	res := &Result{Rules: models.NewRobotsRules()}
	robotsLog := r.log.WithField("url", robotsURL)

	resp, err := r.fetcher.Fetch(ctx, robotsURL)
	switch {
	case err != nil:
		robotsLog.WithField("error_type", utils.CategorizeError(err)).Warnf("Fetching robots.txt failed: %v", err)
		r.agg.Add(report.CatRobotsFetchFailed, "Error during processing robots.txt %s: %v", robotsURL, err)
	case !resp.OK():
		robotsLog.WithField("status_code", resp.StatusCode).Info("No robots.txt")
		r.agg.Add(report.CatNoRobots, "robots.txt %s returned status %d", robotsURL, resp.StatusCode)
	case strings.TrimSpace(string(resp.Body)) == "":
		robotsLog.Info("robots.txt is empty")
		r.agg.Add(report.CatRobotsEmpty, "robots.txt %s is empty", robotsURL)
	default:
		res.Rules = Parse(string(resp.Body))
		data, perr := robotstxt.FromStatusAndBytes(resp.StatusCode, resp.Body)
		if perr != nil {
			robotsLog.Warnf("robots.txt could not be parsed for agent checks: %v", perr)
		} else {
			res.Data = data
		}
		robotsLog.WithFields(logrus.Fields{
			"agents":   len(res.Rules.UserAgents),
			"sitemaps": len(res.Rules.Sitemaps),
		}).Info("Parsed robots.txt")
	}

	for _, name := range res.Rules.AgentNames() {
		if res.Rules.UserAgents[name].Blocked {
			r.agg.Add(report.CatAgentBlocked, "user-agent %s is blocked by robots.txt", name)
		}
	}
	for _, name := range res.Rules.AgentNames() {
		if res.Rules.UserAgents[name].Empty() {
			r.agg.Add(report.CatAgentNoRules, "Empty ruleset for user-agent %s in robots.txt", name)
		}
	}

	if len(res.Rules.Sitemaps) == 0 {
		fallback := origin + "/sitemap.xml"
		robotsLog.Infof("No sitemap in robots.txt, falling back to %s", fallback)
		r.agg.Add(report.CatNoSitemapInRobots, "No sitemap in robots.txt, falling back to default sitemap url %s", fallback)
		res.Sitemaps = []string{fallback}
	} else {
		res.Sitemaps = append([]string(nil), res.Rules.Sitemaps...)
	}
	return res
}
