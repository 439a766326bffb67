// Package content post-processes WordPress HTML before it is returned to the
// frontend: lazy images, safe external links, heading anchors, responsive
// tables.
package content

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// placeholderAlt is inserted for images the author left without alt text.
// Kept in the site language, the frontend renders it verbatim.
const placeholderAlt = "图片"

var whitespaceRun = regexp.MustCompile(`\s+`)

// Optimize rewrites an HTML fragment and returns the transformed markup.
// It is a pure function, safe for concurrent use, and applies independent
// per-element rules:
//
//   - <img>: loading="lazy" (always overwritten), placeholder alt when the
//     attribute is absent or empty, plus a responsive-image class
//   - <a>: hrefs that do not start with "/" or "#" are treated as external
//     and get target="_blank", rel="noopener noreferrer" and an
//     external-link class
//   - h1..h6: id derived from the heading text (lowercased, whitespace runs
//     collapsed to single hyphens). Existing ids are overwritten and ids of
//     headings with identical text collide; that is a known limitation.
//   - <table>: wrapped in <div class="table-responsive">, given a table class
//   - <pre>: given a code-block class
//
// Input that cannot be parsed is returned unchanged.
func Optimize(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}

	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		img.SetAttr("loading", "lazy")
		if alt, ok := img.Attr("alt"); !ok || alt == "" {
			img.SetAttr("alt", placeholderAlt)
		}
		img.AddClass("responsive-image")
	})

	doc.Find("a").Each(func(_ int, link *goquery.Selection) {
		href, ok := link.Attr("href")
		if !ok || href == "" || strings.HasPrefix(href, "/") || strings.HasPrefix(href, "#") {
			return
		}
		link.SetAttr("target", "_blank")
		link.SetAttr("rel", "noopener noreferrer")
		link.AddClass("external-link")
	})

	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, heading *goquery.Selection) {
		id := whitespaceRun.ReplaceAllString(strings.ToLower(heading.Text()), "-")
		heading.SetAttr("id", id)
	})

	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		table.WrapHtml(`<div class="table-responsive"></div>`)
		table.AddClass("table")
	})

	doc.Find("pre").Each(func(_ int, pre *goquery.Selection) {
		pre.AddClass("code-block")
	})

	// goquery parses fragments into a full document; hand back only the body.
	out, err := doc.Find("body").Html()
	if err != nil {
		return html
	}
	return out
}
