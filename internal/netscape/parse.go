package netscape

import (
	"html"
	"regexp"
	"strconv"
)

var (
	commentRe = regexp.MustCompile(`(?s)<!--.*?-->`)
	// Greedy on purpose: the outer region spans to the last </DL> so the
	// whole top-level list is covered even when nesting is unbalanced.
	outerDLRe = regexp.MustCompile(`(?is)<DL[^>]*>(.*)</DL>`)

	dtRe      = regexp.MustCompile(`(?i)<DT[^>]*>`)
	dlOpenRe  = regexp.MustCompile(`(?i)<DL[^>]*>`)
	dlCloseRe = regexp.MustCompile(`(?i)</DL>`)

	// Anchored: a <DT> marker is classified by what immediately follows it.
	h3Re = regexp.MustCompile(`(?is)^\s*<H3([^>]*)>(.*?)</H3>`)
	aRe  = regexp.MustCompile(`(?is)^\s*<A(\s[^>]*)>(.*?)</A>`)
	ddRe = regexp.MustCompile(`(?is)^\s*<DD[^>]*>`)

	pageAttrRe    = regexp.MustCompile(`(?i)PAGE\s*=\s*["']true["']`)
	tabBookAttrRe = regexp.MustCompile(`(?i)BOOKMARKS\s*=\s*["']true["']`)
	hrefAttrRe    = regexp.MustCompile(`(?i)HREF\s*=\s*["']([^"']+)["']`)
	addDateAttrRe = regexp.MustCompile(`(?i)ADD_DATE\s*=\s*["']?(\d+)["']?`)
)

// Parse reads a Netscape bookmark document into a tree of folders and
// bookmark leaves. It never fails: input without a recognizable outer
// <DL> region yields an empty tree.
func Parse(doc string) []Item {
	content := commentRe.ReplaceAllString(doc, "")
	m := outerDLRe.FindStringSubmatch(content)
	if m == nil {
		return nil
	}
	return parseDL(m[1])
}

// parseDL scans one <DL> body for <DT> markers and classifies each as a
// folder (followed by <H3>) or a bookmark leaf (followed by <A HREF>).
// A <DT> with neither shape is skipped and scanning continues.
func parseDL(content string) []Item {
	var items []Item
	pos := 0

	for pos < len(content) {
		dt := dtRe.FindStringIndex(content[pos:])
		if dt == nil {
			break
		}
		pos += dt[1]

		rest := content[pos:]
		if m := h3Re.FindStringSubmatchIndex(rest); m != nil {
			attrs := rest[m[2]:m[3]]
			folder := &Folder{
				Title:     html.UnescapeString(rest[m[4]:m[5]]),
				IsPage:    pageAttrRe.MatchString(attrs),
				IsTabBook: tabBookAttrRe.MatchString(attrs),
			}
			pos += m[1]
			pos = parseFolderBody(content, pos, folder)
			items = append(items, folder)
			continue
		}

		if m := aRe.FindStringSubmatchIndex(rest); m != nil {
			attrs := rest[m[2]:m[3]]
			title := html.UnescapeString(rest[m[4]:m[5]])
			pos += m[1]

			if href := hrefAttrRe.FindStringSubmatch(attrs); href != nil {
				leaf := &Bookmark{
					URL:   html.UnescapeString(href[1]),
					Title: title,
				}
				if ad := addDateAttrRe.FindStringSubmatch(attrs); ad != nil {
					leaf.AddDate, _ = strconv.ParseInt(ad[1], 10, 64)
				}
				items = append(items, leaf)
			}

			// A trailing <DD> holds a description; consume it up to the
			// next entry or list close. The text is discarded at this
			// level of the model.
			pos = consumeDD(content, pos)
			continue
		}
	}

	return items
}

// parseFolderBody locates the <DL> immediately following a folder's <H3>
// and recursively parses it as the folder's children. The matching </DL>
// is found by explicit depth counting; a greedy or first-match approach
// would truncate nested folders. Returns the resume position.
func parseFolderBody(content string, pos int, folder *Folder) int {
	rest := content[pos:]
	dl := dlOpenRe.FindStringIndex(rest)
	if dl == nil {
		return pos
	}
	// A <DT> before the next <DL> means this folder has no body and the
	// list belongs to a later sibling.
	if dt := dtRe.FindStringIndex(rest); dt != nil && dt[0] < dl[0] {
		return pos
	}

	bodyStart := pos + dl[1]
	bodyEnd := matchClosingDL(content, bodyStart)
	if bodyEnd < 0 {
		// Unbalanced list: parse nothing here, resume inside the body so
		// its entries still surface as siblings.
		return bodyStart
	}

	folder.Children = parseDL(content[bodyStart:bodyEnd])
	return bodyEnd + len("</DL>")
}

// matchClosingDL finds the index of the </DL> matching an already-opened
// <DL> whose body starts at from. Nested opens increment depth, closes
// decrement it; the match is the close that returns depth to zero.
// Returns -1 when the list never closes.
func matchClosingDL(content string, from int) int {
	depth := 1
	pos := from

	for pos < len(content) {
		sub := content[pos:]
		open := dlOpenRe.FindStringIndex(sub)
		cl := dlCloseRe.FindStringIndex(sub)
		if cl == nil {
			return -1
		}
		if open != nil && open[0] < cl[0] {
			depth++
			pos += open[1]
			continue
		}
		depth--
		if depth == 0 {
			return pos + cl[0]
		}
		pos += cl[1]
	}
	return -1
}

// consumeDD advances past a <DD> description following a bookmark, up to
// the next <DT>, </DL>, or end of input.
func consumeDD(content string, pos int) int {
	dd := ddRe.FindStringIndex(content[pos:])
	if dd == nil {
		return pos
	}
	pos += dd[1]

	after := content[pos:]
	stop := len(after)
	if dt := dtRe.FindStringIndex(after); dt != nil && dt[0] < stop {
		stop = dt[0]
	}
	if cl := dlCloseRe.FindStringIndex(after); cl != nil && cl[0] < stop {
		stop = cl[0]
	}
	return pos + stop
}
