package metadata

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"ebook-indexer/core/utils"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
)

const containerPath = "META-INF/container.xml"

// ErrNoRootfile is returned when container.xml names no package document.
var ErrNoRootfile = errors.New("container.xml has no rootfile")

type container struct {
	Rootfiles []struct {
		FullPath  string `xml:"full-path,attr"`
		MediaType string `xml:"media-type,attr"`
	} `xml:"rootfiles>rootfile"`
}

type opfPackage struct {
	Metadata opfMetadata `xml:"metadata"`
	Manifest []opfItem   `xml:"manifest>item"`
	Spine    struct {
		Toc string `xml:"toc,attr"`
	} `xml:"spine"`
}

type opfMetadata struct {
	Titles       []string  `xml:"title"`
	Creators     []string  `xml:"creator"`
	Descriptions []string  `xml:"description"`
	Publishers   []string  `xml:"publisher"`
	Dates        []string  `xml:"date"`
	Languages    []string  `xml:"language"`
	Identifiers  []string  `xml:"identifier"`
	Subjects     []string  `xml:"subject"`
	Rights       []string  `xml:"rights"`
	Metas        []opfMeta `xml:"meta"`
}

type opfMeta struct {
	Name     string `xml:"name,attr"`
	Content  string `xml:"content,attr"`
	Property string `xml:"property,attr"`
	Value    string `xml:",chardata"`
}

type opfItem struct {
	ID         string `xml:"id,attr"`
	Href       string `xml:"href,attr"`
	MediaType  string `xml:"media-type,attr"`
	Properties string `xml:"properties,attr"`
}

// ReadEpub opens the EPUB at p and reads its package document.
func ReadEpub(p string) (Metadata, error) {
	zr, err := zip.OpenReader(p)
	if err != nil {
		return Empty(), fmt.Errorf("failed to open epub %s: %w", p, err)
	}
	defer zr.Close()

	return readEpubArchive(&zr.Reader)
}

func readEpubArchive(zr *zip.Reader) (Metadata, error) {
	var c container
	if err := decodeMember(zr, containerPath, &c); err != nil {
		return Empty(), err
	}

	opfPath := ""
	for _, rf := range c.Rootfiles {
		if rf.FullPath != "" {
			opfPath = rf.FullPath
			break
		}
	}
	if opfPath == "" {
		return Empty(), ErrNoRootfile
	}

	var pkg opfPackage
	if err := decodeMember(zr, opfPath, &pkg); err != nil {
		return Empty(), err
	}

	md := fromPackage(pkg.Metadata)
	md.Chapters = readChapters(zr, path.Dir(opfPath), pkg)
	return md, nil
}

func fromPackage(m opfMetadata) Metadata {
	md := Empty()
	md.Title = utils.Optional(first(m.Titles))
	md.Author = utils.Optional(strings.Join(cleanAll(m.Creators), ", "))
	md.Description = utils.Optional(stripMarkup(first(m.Descriptions)))
	md.Publisher = utils.Optional(first(m.Publishers))
	md.PublishDate = utils.Optional(first(m.Dates))

	setExtra(md.Extras, "language", first(m.Languages))
	setExtra(md.Extras, "identifier", first(m.Identifiers))
	setExtra(md.Extras, "subject", strings.Join(cleanAll(m.Subjects), "; "))
	setExtra(md.Extras, "rights", first(m.Rights))
	for _, meta := range m.Metas {
		switch {
		case meta.Name != "":
			setExtra(md.Extras, meta.Name, meta.Content)
		case meta.Property != "":
			setExtra(md.Extras, meta.Property, meta.Value)
		}
	}
	return md
}

// readChapters prefers the EPUB 3 navigation document and falls back to the NCX.
func readChapters(zr *zip.Reader, base string, pkg opfPackage) []string {
	var nav, ncx string
	for _, item := range pkg.Manifest {
		switch {
		case hasProperty(item.Properties, "nav"):
			nav = item.Href
		case item.ID != "" && item.ID == pkg.Spine.Toc, item.MediaType == "application/x-dtbncx+xml" && ncx == "":
			ncx = item.Href
		}
	}

	if nav != "" {
		if doc, err := openDocument(zr, resolveHref(base, nav)); err == nil {
			if chapters := navTitles(doc); len(chapters) > 0 {
				return chapters
			}
		}
	}
	if ncx != "" {
		if doc, err := openDocument(zr, resolveHref(base, ncx)); err == nil {
			return ncxTitles(doc)
		}
	}
	return []string{}
}

func navTitles(doc *goquery.Document) []string {
	navs := doc.Find("nav")
	toc := navs.FilterFunction(func(_ int, s *goquery.Selection) bool {
		return hasProperty(s.AttrOr("epub:type", ""), "toc")
	})
	if toc.Length() == 0 {
		toc = navs.First()
	}
	return collectText(toc.Find("li > a, li > span"))
}

func ncxTitles(doc *goquery.Document) []string {
	return collectText(doc.Find("navpoint > navlabel > text"))
}

func collectText(sel *goquery.Selection) []string {
	titles := []string{}
	sel.Each(func(_ int, s *goquery.Selection) {
		if t := utils.Clean(s.Text()); t != "" {
			titles = append(titles, t)
		}
	})
	return titles
}

func openDocument(zr *zip.Reader, name string) (*goquery.Document, error) {
	rc, err := openMember(zr, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return goquery.NewDocumentFromReader(rc)
}

func decodeMember(zr *zip.Reader, name string, v any) error {
	rc, err := openMember(zr, name)
	if err != nil {
		return err
	}
	defer rc.Close()

	d := xml.NewDecoder(rc)
	d.Strict = false
	d.Entity = xml.HTMLEntity
	d.CharsetReader = charset.NewReaderLabel
	if err := d.Decode(v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

func openMember(zr *zip.Reader, name string) (io.ReadCloser, error) {
	name = strings.TrimPrefix(path.Clean(name), "/")
	for _, f := range zr.File {
		if f.Name == name {
			return f.Open()
		}
	}
	return nil, fmt.Errorf("archive member %s not found", name)
}

// resolveHref maps a manifest href, relative to the package document, to an
// archive member name.
func resolveHref(base, href string) string {
	if i := strings.IndexByte(href, '#'); i >= 0 {
		href = href[:i]
	}
	if unescaped, err := url.PathUnescape(href); err == nil {
		href = unescaped
	}
	return path.Join(base, href)
}

// stripMarkup flattens HTML descriptions to their text content.
func stripMarkup(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return doc.Text()
}

func hasProperty(list, want string) bool {
	for _, p := range strings.Fields(list) {
		if p == want {
			return true
		}
	}
	return false
}

func setExtra(extras map[string]string, key, value string) {
	if v := utils.Clean(value); v != "" {
		extras[key] = v
	}
}

func first(values []string) string {
	return utils.FirstNonEmpty(values...)
}

func cleanAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if c := utils.Clean(v); c != "" {
			out = append(out, c)
		}
	}
	return out
}
