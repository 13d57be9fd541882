package web

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	dateRe = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	timeRe = regexp.MustCompile(`\d{1,2}:\d{2}`)
	locRe  = regexp.MustCompile(`(?i)(?:venue|location)[:\-]\s*([A-Za-z0-9 ,.\-]+)`)
)

// skipExtensions are link targets that are never HTML pages.
var skipExtensions = []string{".pdf", ".jpg", ".jpeg", ".png", ".gif"}

// extractDetails pulls date, times and location out of a page. The logic is
// heuristic: <time> elements first, then location/venue classes, then plain
// text patterns over the whole page.
func extractDetails(p *page) (date, startTime, endTime, location string) {
	if el := findFirst(p.doc, isElement("time")); el != nil {
		text := nodeText(el)
		date = dateRe.FindString(text)
		times := timeRe.FindAllString(text, 2)
		if len(times) > 0 {
			startTime = times[0]
		}
		if len(times) > 1 {
			endTime = times[1]
		}
	}
	if date == "" {
		date = dateRe.FindString(p.text)
	}

	if el := findFirst(p.doc, hasAnyClass("location", "venue")); el != nil {
		location = strings.TrimSpace(nodeText(el))
	} else if m := locRe.FindStringSubmatch(p.text); m != nil {
		location = strings.TrimSpace(m[1])
	}
	return date, startTime, endTime, location
}

func pageTitle(doc *html.Node) string {
	if el := findFirst(doc, isElement("title")); el != nil {
		return strings.TrimSpace(nodeText(el))
	}
	return ""
}

// pageLinks returns all followable links on the page: same host as base,
// http(s), not an obvious binary, fragment stripped.
func pageLinks(doc *html.Node, base *url.URL) []string {
	var out []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			if href := attr(n, "href"); href != "" {
				if link, ok := resolveLink(base, href); ok {
					out = append(out, link)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return out
}

func resolveLink(base *url.URL, href string) (string, bool) {
	u, err := base.Parse(href)
	if err != nil {
		return "", false
	}
	if u.Host != base.Host {
		return "", false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	lower := strings.ToLower(u.Path)
	for _, ext := range skipExtensions {
		if strings.HasSuffix(lower, ext) {
			return "", false
		}
	}
	u.Fragment = ""
	return u.String(), true
}

func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

func isElement(name string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == name
	}
}

func hasAnyClass(names ...string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		for _, cls := range strings.Fields(attr(n, "class")) {
			for _, name := range names {
				if cls == name {
					return true
				}
			}
		}
		return false
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// nodeText flattens the visible text of a subtree, space-separated, with
// script and style contents dropped.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				if b.Len() > 0 {
					b.WriteByte(' ')
				}
				b.WriteString(t)
			}
			return
		}
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
