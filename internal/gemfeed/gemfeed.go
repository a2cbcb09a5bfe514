// Package gemfeed parses gemtext feed pages ("gemfeeds"): a page whose first
// level-one heading is the feed title and whose dated link lines are the
// entries. This package does no I/O; the poller hands it page bodies.
package gemfeed

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// An entry link line: "=> <url> <yyyy-mm-dd> - <title>". The dash separator
// is optional.
var entryPattern = regexp.MustCompile(`^=>\s+(\S+)\s+(\d{4}-\d{2}-\d{2})\s+(-\s+)?(.+)$`)

// ErrMissingTitle is returned for pages without a level-one heading, which
// cannot be gemfeeds.
var ErrMissingTitle = errors.New("page is missing a title")

type (
	// Entry is one dated link on a feed page.
	Entry struct {
		Title       string
		URL         string
		PublishedAt time.Time
	}

	// Feed is the parsed form of a gemfeed page.
	Feed struct {
		Title    string
		Subtitle string
		Entries  []Entry
	}
)

// Parse reads a gemfeed out of a gemtext page body.
//
// The first "# " heading is the title; a "## " heading on the very next line
// is the subtitle. Link lines that don't carry a leading ISO date are regular
// gemtext links, not entries, and are skipped rather than treated as errors.
func Parse(body string) (Feed, error) {
	var (
		feed      Feed
		titleLine = -1
	)

	for i, line := range strings.Split(body, "\n") {
		line = strings.TrimRight(line, "\r")
		switch {
		case strings.HasPrefix(line, "# "):
			if feed.Title == "" {
				feed.Title = strings.TrimPrefix(line, "# ")
				titleLine = i
			}
		case strings.HasPrefix(line, "## "):
			if feed.Subtitle == "" && titleLine >= 0 && titleLine == i-1 {
				feed.Subtitle = strings.TrimPrefix(line, "## ")
			}
		case strings.HasPrefix(line, "=> "):
			entry, ok := parseEntry(line)
			if !ok {
				continue
			}
			feed.Entries = append(feed.Entries, entry)
		}
	}

	if feed.Title == "" {
		return Feed{}, ErrMissingTitle
	}

	return feed, nil
}

// ParsePage parses body as a gemfeed and resolves relative entry links
// against the page's own URL.
func ParsePage(pageURL string, body string) (Feed, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return Feed{}, fmt.Errorf("error parsing page url: %s", err)
	}

	feed, err := Parse(body)
	if err != nil {
		return Feed{}, err
	}

	for i, entry := range feed.Entries {
		ref, err := url.Parse(entry.URL)
		if err != nil {
			continue
		}
		feed.Entries[i].URL = base.ResolveReference(ref).String()
	}

	return feed, nil
}

func parseEntry(line string) (Entry, bool) {
	m := entryPattern.FindStringSubmatch(line)
	if m == nil {
		return Entry{}, false
	}

	publishedAt, err := time.Parse("2006-01-02", m[2])
	if err != nil {
		return Entry{}, false
	}

	return Entry{
		URL:         m[1],
		PublishedAt: publishedAt,
		Title:       m[4],
	}, true
}
