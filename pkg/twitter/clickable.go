package twitter

import (
	"html"
	"net/url"
	"sort"
	"strings"
)

// Link targets used by Clickable.
const (
	profileURL = "https://twitter.com/"
	searchURL  = "https://twitter.com/search?q="
)

// replacement swaps the code points [start, end) of a status text for markup.
type replacement struct {
	start, end int
	markup     string
}

// Clickable renders the text of s as HTML, turning hashtags, mentions, links
// and media references into anchors.
//
// The API delivers status text with <, > and & already escaped, so plain
// text is copied through unchanged. Entity indices count code points; ranges
// that overlap an earlier one or fall outside the text are skipped.
func Clickable(s *Status) string {
	if s == nil {
		return ""
	}
	text := []rune(s.Content())

	var reps []replacement
	add := func(idx Indices, markup string) {
		reps = append(reps, replacement{start: idx[0], end: idx[1], markup: markup})
	}

	if e := s.Entities; e != nil {
		for _, h := range e.Hashtags {
			add(h.Indices, anchor(searchURL+url.QueryEscape("#"+h.Text), "#"+h.Text))
		}
		for _, h := range e.Symbols {
			add(h.Indices, anchor(searchURL+url.QueryEscape("$"+h.Text), "$"+h.Text))
		}
		for _, m := range e.UserMentions {
			add(m.Indices, anchor(profileURL+m.ScreenName, "@"+m.ScreenName))
		}
		for _, u := range e.URLs {
			href, label := u.ExpandedURL, u.DisplayURL
			if href == "" {
				href = u.URL
			}
			if label == "" {
				label = u.URL
			}
			add(u.Indices, anchor(href, label))
		}
	}
	for _, m := range statusMedia(s) {
		add(m.Indices, anchor(m.MediaURLHTTPS, m.DisplayURL))
	}

	sort.SliceStable(reps, func(i, j int) bool { return reps[i].start < reps[j].start })

	var b strings.Builder
	pos := 0
	for _, r := range reps {
		if r.start < pos || r.end <= r.start || r.end > len(text) {
			continue
		}
		b.WriteString(string(text[pos:r.start]))
		b.WriteString(r.markup)
		pos = r.end
	}
	b.WriteString(string(text[pos:]))
	return b.String()
}

// statusMedia prefers extended entities, which list every attachment.
// All attachments share one link in the text, so overlapping ranges after
// the first are dropped by Clickable.
func statusMedia(s *Status) []Media {
	if s.ExtendedEntities != nil && s.ExtendedEntities.Media != nil {
		return s.ExtendedEntities.Media
	}
	if s.Entities != nil {
		return s.Entities.Media
	}
	return nil
}

func anchor(href, label string) string {
	return `<a href="` + html.EscapeString(href) + `">` + html.EscapeString(label) + `</a>`
}
