package candidates

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrEmptyCV is returned when no text could be extracted from a CV.
var ErrEmptyCV = errors.New("cv text is empty")

// ReadCV returns the text of a CV. PDF files are converted to plain text, other files are read as is.
func ReadCV(path string) (string, error) {
	var (
		text string
		err  error
	)

	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		text, err = readPDF(path)
	} else {
		var data []byte
		data, err = os.ReadFile(path)
		text = string(data)
	}
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(strings.ToValidUTF8(text, "�"))
	if text == "" {
		return "", fmt.Errorf("%s: %w", path, ErrEmptyCV)
	}

	return text, nil
}

func readPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf %q: %w", path, err)
	}
	defer f.Close()

	var builder strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("extract text from page %d: %w", i, err)
		}

		builder.WriteString(text)
		builder.WriteString("\n")
	}

	return builder.String(), nil
}
