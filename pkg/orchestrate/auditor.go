package orchestrate

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Sriram-PR/seo-audit/pkg/config"
	"github.com/Sriram-PR/seo-audit/pkg/crawler"
	"github.com/Sriram-PR/seo-audit/pkg/fetch"
	"github.com/Sriram-PR/seo-audit/pkg/models"
	"github.com/Sriram-PR/seo-audit/pkg/parse"
	"github.com/Sriram-PR/seo-audit/pkg/report"
	"github.com/Sriram-PR/seo-audit/pkg/robots"
	"github.com/Sriram-PR/seo-audit/pkg/sitemap"
	"github.com/Sriram-PR/seo-audit/pkg/storage"
)

// Outcome describes a finished audit run
type Outcome struct {
	RunID        string
	Origin       string
	Report       *report.Report
	ReportPath   string
	SummaryPaths []string
	Duration     time.Duration
}

// Auditor runs the audit phases for one site in order: robots.txt,
// sitemaps, a crawl of sitemap URLs, then a crawl of discovered URLs.
type Auditor struct {
	cfg     *config.AppConfig
	fetcher fetch.HTTPFetcher
	log     *logrus.Entry
}

// NewAuditor creates an Auditor with an HTTP fetcher built from cfg.
// cfg must already be validated.
func NewAuditor(cfg *config.AppConfig, log *logrus.Entry) *Auditor {
	client := fetch.NewClient(cfg.HTTPClientSettings, log)
	return &Auditor{
		cfg:     cfg,
		fetcher: fetch.NewFetcher(client, cfg, log),
		log:     log,
	}
}

// Run audits rawOrigin and writes the report. A malformed origin or a store
// failure aborts before any request is made. An interrupted crawl still
// writes the partial report and returns the context error alongside it.
func (a *Auditor) Run(ctx context.Context, rawOrigin string) (*Outcome, error) {
	start := time.Now()

	origin, err := parse.ParseOrigin(rawOrigin)
	if err != nil {
		return nil, err
	}
	originURL, _ := url.Parse(origin)

	runID := uuid.NewString()
	log := a.log.WithFields(logrus.Fields{"run_id": runID, "origin": origin})
	log.Info("Starting SEO audit")

	store, err := storage.NewBadgerStore(a.cfg.StateDir, originURL.Host, log)
	if err != nil {
		return nil, fmt.Errorf("opening seen URL store: %w", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			log.Warnf("Closing seen URL store: %v", cerr)
		}
	}()

	agg := report.NewAggregator(log)

	robotsResult := robots.NewResolver(a.fetcher, agg, log).Resolve(ctx, origin)

	collection := sitemap.NewAggregator(a.fetcher, agg, log).
		WithRobots(robotsResult.Data, a.cfg.UserAgent).
		Aggregate(ctx, robotsResult.Sitemaps, origin)

	pages := models.NewPageData()
	pageCrawler := crawler.NewCrawler(a.fetcher, a.cfg, collection, pages, agg, log)

	multilingual, crawlErr := a.crawl(ctx, store, collection, pageCrawler, agg, log)
	if crawlErr == nil {
		// robots and sitemap phases swallow fetch errors into findings
		crawlErr = ctx.Err()
	}

	if multilingual && agg.PendingCount() > 0 {
		agg.Promote()
	}

	total, err := store.SeenCount()
	if err != nil {
		log.Warnf("Reading seen URL count: %v", err)
	}
	pages.Total = total
	pages.IsMultiLang = multilingual

	rep := &report.Report{
		Robots:   robotsResult.Rules,
		Sitemaps: collection,
		PageData: pages,
		Analysis: agg.Analysis(),
	}

	out := &Outcome{RunID: runID, Origin: origin, Report: rep}
	out.ReportPath, err = report.WriteJSON(a.cfg.OutputDir, origin, rep)
	if err != nil {
		return out, err
	}
	out.SummaryPaths, err = report.WriteSummaries(a.cfg, origin, rep)
	if err != nil {
		return out, err
	}
	out.Duration = time.Since(start)

	log.WithFields(logrus.Fields{
		"pages":    pages.Total,
		"findings": len(rep.Analysis.Overall),
		"details":  len(rep.Analysis.Details),
		"report":   out.ReportPath,
		"duration": out.Duration.Round(time.Millisecond),
	}).Info("SEO audit finished")
	return out, crawlErr
}

// crawl runs both crawl passes and reports whether any page was multilingual.
func (a *Auditor) crawl(
	ctx context.Context,
	store storage.SeenStore,
	collection *models.SitemapCollection,
	pageCrawler *crawler.Crawler,
	agg *report.Aggregator,
	log *logrus.Entry,
) (bool, error) {
	listed := crawler.NewFrontier(store)
	for _, loc := range collection.Locations() {
		if _, err := listed.Push(loc); err != nil {
			return false, fmt.Errorf("queueing sitemap URL %s: %w", loc, err)
		}
	}
	discovered := crawler.NewFrontier(store)

	log.WithField("urls", listed.Len()).Info("Crawling pages from sitemap")
	first, err := pageCrawler.Crawl(ctx, listed, crawler.Options{DiscoverMissing: true, Discovered: discovered})
	if err != nil {
		return first != nil && first.Multilingual, err
	}
	multilingual := first.Multilingual

	if discovered.Len() == 0 {
		return multilingual, nil
	}
	for _, u := range discovered.Queued() {
		agg.Add(report.CatNotInSitemap, "URL %s is not listed in sitemap", u)
	}

	log.WithField("urls", discovered.Len()).Info("Crawling pages that are missing in sitemap")
	second, err := pageCrawler.Crawl(ctx, discovered, crawler.Options{})
	if second != nil && second.Multilingual {
		multilingual = true
	}
	return multilingual, err
}
