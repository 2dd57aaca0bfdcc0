package models

import (
	"fmt"
	"slices"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// User supplied strings are rendered as plain text
var textPolicy = bluemonday.StrictPolicy()

// ContentBlock is a single unit of post content. Blocks are stored in the
// order callers add them; Order is only used when displaying.
type ContentBlock interface {
	Order() int
	Render() string
}

type TextBlock struct {
	Position int
	Text     string
}

func (b TextBlock) Order() int { return b.Position }

func (b TextBlock) Render() string {
	return "<p>" + textPolicy.Sanitize(b.Text) + "</p>"
}

type MediaBlock struct {
	Position int
	Media    MediaFile
	Alt      string
}

func (b MediaBlock) Order() int { return b.Position }

func (b MediaBlock) Render() string {
	return renderMedia(b.Media, b.Alt)
}

// CarouselBlock shows several media files sharing one alt text
type CarouselBlock struct {
	Position int
	Media    []MediaFile
	Alt      string
}

func (b CarouselBlock) Order() int { return b.Position }

func (b CarouselBlock) Render() string {
	if len(b.Media) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("<Carousel>")
	for _, media := range b.Media {
		sb.WriteString(renderMedia(media, b.Alt))
	}
	sb.WriteString("</Carousel>")
	return sb.String()
}

func renderMedia(media MediaFile, alt string) string {
	tag := "Img"
	if media.Type == MediaVideo {
		tag = "Video"
	}
	return fmt.Sprintf("<%s src='%s' alt='%s' />",
		tag, textPolicy.Sanitize(media.Filename), textPolicy.Sanitize(alt))
}

// Content is the title and body of a post in one language
type Content struct {
	Title    string
	Body     []ContentBlock
	Language *Language
}

// Render renders the body blocks sorted by their order, leaving Body untouched
func (c Content) Render() string {
	blocks := slices.Clone(c.Body)
	slices.SortStableFunc(blocks, func(a, b ContentBlock) int {
		return a.Order() - b.Order()
	})

	rendered := make([]string, 0, len(blocks))
	for _, block := range blocks {
		if out := block.Render(); out != "" {
			rendered = append(rendered, out)
		}
	}
	return strings.Join(rendered, "\n")
}

// HasMedia reports whether any block shows a media file
func (c Content) HasMedia() bool {
	return slices.ContainsFunc(c.Body, func(block ContentBlock) bool {
		switch b := block.(type) {
		case MediaBlock:
			return true
		case CarouselBlock:
			return len(b.Media) > 0
		default:
			return false
		}
	})
}

// Text concatenates the text blocks, used for keyword matching and detection
func (c Content) Text() string {
	parts := []string{}
	for _, block := range c.Body {
		if text, ok := block.(TextBlock); ok {
			parts = append(parts, text.Text)
		}
	}
	return strings.Join(parts, " ")
}
