package utils

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"procurement/models"
)

//go:embed templates/vendor_directory.html
var vendorDirectoryTemplate string

var directoryTmpl = template.Must(template.New("vendor_directory").Parse(vendorDirectoryTemplate))

type vendorDirectoryData struct {
	GeneratedAt string
	Count       int
	Vendors     []models.Vendor
}

const pageShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
@page { size: A4; margin: 20px; }
body { font-family: Arial, Helvetica, sans-serif; font-size: 12px; margin: 0; padding: 0; }
table { width: 100%%; border-collapse: collapse; }
th, td { border: 1px solid #999; padding: 4px 6px; text-align: left; }
tr { page-break-inside: avoid; }
.meta { color: #555; }
</style>
</head>
<body>%s</body></html>`

// VendorDirectoryHTML renders the printable vendor directory page.
func VendorDirectoryHTML(vendors []models.Vendor, generatedAt time.Time) (string, error) {
	var buf bytes.Buffer
	err := directoryTmpl.Execute(&buf, vendorDirectoryData{
		GeneratedAt: generatedAt.Format("02-Jan-2006 15:04"),
		Count:       len(vendors),
		Vendors:     vendors,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(pageShell, buf.String()), nil
}

// ChromePDF prints HTML to an A4 PDF with headless Chrome.
type ChromePDF struct {
	Timeout time.Duration
}

func (c ChromePDF) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	tmpHTML := filepath.Join(os.TempDir(), "vendor_directory_"+time.Now().Format("20060102150405.000000")+".html")
	if err := os.WriteFile(tmpHTML, []byte(html), 0644); err != nil {
		return nil, err
	}
	defer os.Remove(tmpHTML)

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	ctx, cancelChrome := chromedp.NewContext(ctx)
	defer cancelChrome()

	var pdfBuf []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("file://"+tmpHTML),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).  // A4 width
				WithPaperHeight(11.7). // A4 height
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("print vendor directory: %w", err)
	}
	return pdfBuf, nil
}
