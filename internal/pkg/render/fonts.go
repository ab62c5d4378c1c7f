package render

import (
	"embed"
	"strings"

	"github.com/go-pdf/fpdf"
)

//go:embed fonts/*.ttf
var fontFS embed.FS

const (
	fontBody = "DejaVuSans"
	fontCode = "DejaVuSansMono"
)

var embeddedFonts = []struct {
	family string
	style  string
	file   string
}{
	{fontBody, "", "fonts/DejaVuSansCondensed.ttf"},
	{fontBody, "B", "fonts/DejaVuSansCondensed-Bold.ttf"},
	{fontBody, "I", "fonts/DejaVuSansCondensed-Oblique.ttf"},
	{fontCode, "", "fonts/DejaVuSansMono.ttf"},
}

// registerFonts 注册内嵌的 UTF-8 字体
func registerFonts(pdf *fpdf.Fpdf) error {
	for _, f := range embeddedFonts {
		data, err := fontFS.ReadFile(f.file)
		if err != nil {
			return err
		}
		pdf.AddUTF8FontFromBytes(f.family, f.style, data)
	}
	return pdf.Error()
}

// fitText 将基本多文种平面以外的字符（如 emoji）替换为 U+FFFD
// fpdf 的 UTF-8 字体宽度表只覆盖 BMP
func fitText(s string) string {
	if !strings.ContainsFunc(s, outsideBMP) {
		return s
	}
	return strings.Map(func(r rune) rune {
		if outsideBMP(r) {
			return '\uFFFD'
		}
		return r
	}, s)
}

func outsideBMP(r rune) bool {
	return r > 0xFFFF
}
