package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/samvad-hq/samvad-comments/pkg/comments"
)

const maxSummaryLen = 512

// commandError carries a user-facing message while keeping the cause for errors.Is/As.
type commandError struct {
	msg string
	err error
}

func (e *commandError) Error() string { return e.msg }
func (e *commandError) Unwrap() error { return e.err }

// describeError turns client errors into one-line messages. Transport errors
// and anything unclassified are returned as they are.
func describeError(err error) error {
	var bad *comments.BadResponseError
	if errors.As(err, &bad) {
		return &commandError{
			msg: fmt.Sprintf("server returned %d: %s", bad.StatusCode, summarizeBody(bad.Body)),
			err: err,
		}
	}
	var invalid *comments.InvalidDataError
	if errors.As(err, &invalid) {
		return &commandError{msg: "invalid data: " + invalid.Error(), err: err}
	}
	return err
}

// summarizeBody reduces an error body to something printable. HTML error
// pages are reduced to their title, or their visible text when untitled.
func summarizeBody(body string) string {
	s := strings.TrimSpace(body)
	if s == "" {
		return "<empty>"
	}
	if looksLikeHTML(s) {
		if text := htmlSummary(s); text != "" {
			s = text
		}
	}
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > maxSummaryLen {
		return string(r[:maxSummaryLen]) + "..."
	}
	return s
}

func looksLikeHTML(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "<!doctype html") ||
		strings.Contains(lower, "<html") ||
		strings.Contains(lower, "<body")
}

func htmlSummary(s string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return ""
	}
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	body := doc.Find("body")
	body.Find("script, style").Remove()
	return strings.TrimSpace(body.Text())
}
