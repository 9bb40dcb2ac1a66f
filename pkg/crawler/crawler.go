package crawler

import (
	"bytes"
	"context"
	"fmt"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Sriram-PR/seo-audit/pkg/config"
	"github.com/Sriram-PR/seo-audit/pkg/fetch"
	"github.com/Sriram-PR/seo-audit/pkg/models"
	"github.com/Sriram-PR/seo-audit/pkg/process"
	"github.com/Sriram-PR/seo-audit/pkg/report"
	"github.com/Sriram-PR/seo-audit/pkg/utils"
)

// Options controls one crawl pass
type Options struct {
	// DiscoverMissing pushes in-scope links found on pages into Discovered.
	DiscoverMissing bool
	Discovered      *Frontier
}

// Result summarizes one crawl pass
type Result struct {
	Rounds       int
	Fetched      int
	Crashed      int
	Discovered   []string
	Multilingual bool // at least one page declared hreflang alternates
}

// Crawler fetches pages in bounded batches and validates each one.
// Title and description uniqueness is tracked across every pass run on the
// same Crawler.
type Crawler struct {
	fetcher   fetch.HTTPFetcher
	cfg       *config.AppConfig
	pages     *models.PageData
	agg       *report.Aggregator
	validator *Validator
	log       *logrus.Entry
}

// NewCrawler creates a Crawler. Fetched pages are recorded in pages and
// findings in agg.
func NewCrawler(
	fetcher fetch.HTTPFetcher,
	cfg *config.AppConfig,
	sitemaps *models.SitemapCollection,
	pages *models.PageData,
	agg *report.Aggregator,
	log *logrus.Entry,
) *Crawler {
	log = log.WithField("component", "crawler")
	return &Crawler{
		fetcher:   fetcher,
		cfg:       cfg,
		pages:     pages,
		agg:       agg,
		validator: NewValidator(sitemaps, agg, log),
		log:       log,
	}
}

type fetchResult struct {
	url  string
	resp *fetch.Response
	err  error
}

// Crawl drains frontier. Each round fetches up to BatchSize URLs in
// parallel and waits for all of them before processing the results one at
// a time, so the next round never starts while a fetch is in flight.
// A cancelled context stops the crawl between rounds.
func (c *Crawler) Crawl(ctx context.Context, frontier *Frontier, opts Options) (*Result, error) {
	batchSize := c.cfg.BatchSize
	if batchSize <= 0 {
		batchSize = config.DefaultBatchSize
	}
	if opts.DiscoverMissing && opts.Discovered == nil {
		return nil, fmt.Errorf("discovery enabled without a frontier for discovered URLs")
	}

	res := &Result{}
	for frontier.Len() > 0 {
		if err := ctx.Err(); err != nil {
			c.log.Warnf("Crawl interrupted with %d URLs left", frontier.Len())
			return res, err
		}

		batch := frontier.PopBatch(batchSize)
		results := make([]fetchResult, len(batch))

		var g errgroup.Group
		g.SetLimit(batchSize)
		for i, u := range batch {
			g.Go(func() error {
				resp, err := c.fetcher.Fetch(ctx, u)
				results[i] = fetchResult{url: u, resp: resp, err: err}
				return nil
			})
		}
		_ = g.Wait()
		res.Rounds++

		if err := ctx.Err(); err != nil {
			c.log.Warnf("Crawl interrupted during round %d", res.Rounds)
			return res, err
		}

		for _, r := range results {
			c.handle(r, opts, res)
		}
		c.log.WithFields(logrus.Fields{
			"round":     res.Rounds,
			"batch":     len(batch),
			"remaining": frontier.Len(),
		}).Debug("Round complete")
	}
	return res, nil
}

// handle records one fetch result. Runs on the control goroutine only.
func (c *Crawler) handle(r fetchResult, opts Options, res *Result) {
	pageLog := c.log.WithField("url", r.url)

	if r.err != nil {
		res.Crashed++
		c.pages.RecordCrash(r.url)
		pageLog.WithField("error_type", utils.CategorizeError(r.err)).Warnf("Fetch failed: %v", r.err)
		c.agg.Add(report.CatFetchFailed, "Page %s could not be fetched: %v", r.url, r.err)
		return
	}
	pageURL, err := url.Parse(r.url)
	if err != nil {
		res.Crashed++
		c.pages.RecordCrash(r.url)
		c.agg.Add(report.CatFetchFailed, "Page %s has an invalid URL: %v", r.url, err)
		return
	}
	res.Fetched++
	base := pageURL
	if final, err := url.Parse(r.resp.FinalURL); err == nil && final.Host != "" {
		base = final
	}

	pageLog = pageLog.WithField("status_code", r.resp.StatusCode)
	if len(bytes.TrimSpace(r.resp.Body)) == 0 && !r.resp.OK() {
		pageLog.Debug("Non-200 page without body, recording status only")
		c.pages.RecordPage(&models.CrawledPage{URL: r.url, Status: r.resp.StatusCode, Meta: []models.MetaValue{}})
		return
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(r.resp.Body))
	if err != nil {
		pageLog.Warnf("%v: HTML: %v", utils.ErrParsing, err)
		c.pages.RecordPage(&models.CrawledPage{URL: r.url, Status: r.resp.StatusCode, Meta: []models.MetaValue{}})
		return
	}

	page := process.ExtractSignals(doc, base, r.resp.StatusCode)
	page.URL = r.url
	c.pages.RecordPage(page)

	if opts.DiscoverMissing {
		scope := process.ScopePagePrefix
		if c.cfg.DiscoverSameOrigin {
			scope = process.ScopeSameOrigin
		}
		for _, link := range process.DiscoverLinks(doc, base, scope, pageLog) {
			added, err := opts.Discovered.Push(link)
			if err != nil {
				pageLog.WithField("link", link).Errorf("Recording discovered link failed: %v", err)
				continue
			}
			if added {
				pageLog.WithField("link", link).Debug("Discovered URL not listed in sitemap")
				res.Discovered = append(res.Discovered, link)
			}
		}
	}

	if c.validator.Check(page) {
		res.Multilingual = true
	}
}
