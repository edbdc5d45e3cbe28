package metadata

import (
	"fmt"
	"strings"

	"ebook-indexer/core/utils"

	"github.com/ledongthuc/pdf"
)

// ReadPdf reads the document information dictionary and outline of a PDF.
func ReadPdf(p string) (Metadata, error) {
	f, r, err := pdf.Open(p)
	if err != nil {
		return Empty(), fmt.Errorf("failed to open pdf %s: %w", p, err)
	}
	defer f.Close()

	md := Empty()
	info := r.Trailer().Key("Info")
	if info.Kind() == pdf.Dict {
		fromInfo(&md, info)
	}
	md.Chapters = outlineTitles(r.Outline(), md.Chapters)
	return md, nil
}

func fromInfo(md *Metadata, info pdf.Value) {
	for _, key := range info.Keys() {
		value := infoString(info.Key(key))
		switch key {
		case "Title":
			md.Title = utils.Optional(value)
		case "Author":
			md.Author = utils.Optional(value)
		case "Subject":
			md.Description = utils.Optional(value)
		case "CreationDate":
			md.PublishDate = utils.Optional(pdfDate(value))
		case "ModDate":
			setExtra(md.Extras, "modified", pdfDate(value))
		default:
			setExtra(md.Extras, strings.ToLower(key), value)
		}
	}
}

func infoString(v pdf.Value) string {
	switch v.Kind() {
	case pdf.String:
		return v.Text()
	case pdf.Name:
		return v.Name()
	case pdf.Null, pdf.Dict, pdf.Array, pdf.Stream:
		return ""
	default:
		return v.String()
	}
}

// outlineTitles flattens the bookmark tree depth-first.
func outlineTitles(o pdf.Outline, acc []string) []string {
	for _, child := range o.Child {
		if t := utils.Clean(child.Title); t != "" {
			acc = append(acc, t)
		}
		acc = outlineTitles(child, acc)
	}
	return acc
}

// pdfDate converts "D:YYYYMMDDHHmmSS..." to the coarsest ISO date the value supports.
func pdfDate(s string) string {
	s = strings.TrimPrefix(strings.TrimSpace(s), "D:")
	digits := 0
	for digits < len(s) && digits < 8 && s[digits] >= '0' && s[digits] <= '9' {
		digits++
	}
	switch {
	case digits >= 8:
		return s[0:4] + "-" + s[4:6] + "-" + s[6:8]
	case digits >= 6:
		return s[0:4] + "-" + s[4:6]
	case digits >= 4:
		return s[0:4]
	default:
		return s
	}
}
