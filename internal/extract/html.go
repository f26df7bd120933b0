package extract

import (
	"bytes"
	"fmt"
	"net/url"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/go-shiori/go-readability"
)

// fromHTML runs readability over an HTML export and converts the main
// content to Markdown. The generator consumes Markdown as happily as plain
// text, and structure (headings, lists) survives for the model.
func fromHTML(payload []byte) (string, error) {
	article, err := readability.FromReader(bytes.NewReader(payload), &url.URL{Scheme: "file", Path: "/"})
	if err != nil {
		return "", err
	}

	converter := md.NewConverter("", true, nil)
	markdown, err := converter.ConvertString(article.Content)
	if err != nil {
		// Fall back to the flattened text content.
		markdown = article.TextContent
	}

	out := cleanText(markdown)
	if out == "" {
		return "", fmt.Errorf("no extractable text in HTML document")
	}
	if article.Title != "" {
		out = "# " + article.Title + "\n\n" + out
	}
	return out, nil
}
