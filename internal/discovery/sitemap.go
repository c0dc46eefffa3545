package discovery

import (
	"context"
	"encoding/xml"
	"net/http"
	"strings"

	"github.com/hanselhansel/agentlens/internal/fetch"
)

// Sitemap fetch limits. A huge sitemap is not worth exhausting: the
// sample is capped far below these numbers anyway.
const (
	maxChildSitemaps = 10
	maxSitemapURLs   = 500
)

// urlset is the regular sitemap document: <urlset> of <url><loc>.
type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	URLs    []sitemapLoc `xml:"url"`
}

// sitemapindex is the index document: <sitemapindex> of <sitemap><loc>.
type sitemapindex struct {
	XMLName  xml.Name     `xml:"sitemapindex"`
	Sitemaps []sitemapLoc `xml:"sitemap"`
}

type sitemapLoc struct {
	Loc string `xml:"loc"`
}

// FetchSitemapURLs fetches and parses the site's sitemap(s), returning up
// to maxSitemapURLs page URLs. It tries /sitemap.xml first, then
// /sitemap_index.xml. When an index is found, child sitemaps are fetched,
// capped at maxChildSitemaps. A missing or unparseable sitemap returns an
// empty list, never an error: the caller falls back to spidering.
func FetchSitemapURLs(ctx context.Context, client *fetch.Client, origin string) []string {
	candidates := []string{origin + "/sitemap.xml", origin + "/sitemap_index.xml"}

	var pageURLs []string
	for _, sitemapURL := range candidates {
		resp, err := client.Get(ctx, sitemapURL)
		if err != nil || resp.StatusCode != http.StatusOK {
			continue
		}

		pages, children := parseSitemapXML(resp.Body)
		pageURLs = append(pageURLs, pages...)

		if len(children) > maxChildSitemaps {
			children = children[:maxChildSitemaps]
		}
		for _, childURL := range children {
			childResp, err := client.Get(ctx, childURL)
			if err != nil || childResp.StatusCode != http.StatusOK {
				continue
			}
			childPages, _ := parseSitemapXML(childResp.Body)
			pageURLs = append(pageURLs, childPages...)

			if len(pageURLs) >= maxSitemapURLs {
				break
			}
		}

		// Any URLs from this candidate means the next is not tried.
		if len(pageURLs) > 0 {
			break
		}
	}

	if len(pageURLs) > maxSitemapURLs {
		pageURLs = pageURLs[:maxSitemapURLs]
	}
	return pageURLs
}

// parseSitemapXML parses one sitemap document into page URLs and child
// sitemap URLs. A document can be either form; unparseable input yields
// nothing.
func parseSitemapXML(data []byte) (pages, children []string) {
	var us urlset
	if err := xml.Unmarshal(data, &us); err == nil {
		for _, u := range us.URLs {
			if loc := strings.TrimSpace(u.Loc); loc != "" {
				pages = append(pages, loc)
			}
		}
	}

	var si sitemapindex
	if err := xml.Unmarshal(data, &si); err == nil {
		for _, s := range si.Sitemaps {
			if loc := strings.TrimSpace(s.Loc); loc != "" {
				children = append(children, loc)
			}
		}
	}

	return pages, children
}
