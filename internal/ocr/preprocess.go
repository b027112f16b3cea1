package ocr

import (
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	_ "image/jpeg"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// buildVariants writes preprocessed copies of the source image next to
// a temp dir and returns their paths: the original, a hard-threshold
// binarized copy, a softer-contrast copy, and a 2x upscale of the
// binarized copy. Variants that fail to build are skipped with a
// warning; the original always survives.
func buildVariants(path string, logger *slog.Logger) (paths []string, cleanup func(), warnings []string) {
	cleanup = func() {}
	paths = []string{path}

	src, err := decodeImage(path)
	if err != nil {
		return paths, cleanup, []string{"preprocess: " + err.Error()}
	}

	tmpDir, err := os.MkdirTemp("", "db-ocr-*")
	if err != nil {
		return paths, cleanup, []string{"preprocess: " + err.Error()}
	}
	cleanup = func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			logger.Warn("failed to remove variant dir", "path", tmpDir, "error", err)
		}
	}

	hard := binarize(src, 145, 1.8)
	if p, err := writeVariant(tmpDir, "hard.png", hard); err == nil {
		paths = append(paths, p)
	} else {
		warnings = append(warnings, "preprocess hard: "+err.Error())
	}

	soft := softContrast(src, 1.35)
	if p, err := writeVariant(tmpDir, "soft.png", soft); err == nil {
		paths = append(paths, p)
	} else {
		warnings = append(warnings, "preprocess soft: "+err.Error())
	}

	if p, err := writeVariant(tmpDir, "up2x.png", upscale(hard, 2)); err == nil {
		paths = append(paths, p)
	} else {
		warnings = append(warnings, "preprocess upscale: "+err.Error())
	}

	return paths, cleanup, warnings
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}

func writeVariant(dir, name string, img image.Image) (string, error) {
	out := filepath.Join(dir, name)
	f, err := os.Create(out)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return "", err
	}
	return out, nil
}

// binarize converts to grayscale, boosts contrast around mid-gray, and
// hard-thresholds to pure black/white.
func binarize(src image.Image, threshold uint8, contrast float64) image.Image {
	b := src.Bounds()
	dst := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g := contrasted(src.At(x, y), contrast)
			v := uint8(0)
			if g > threshold {
				v = 255
			}
			dst.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return dst
}

// softContrast keeps the full gray range but stretches it around
// mid-gray, for photos where hard thresholding destroys thin glyphs.
func softContrast(src image.Image, contrast float64) image.Image {
	b := src.Bounds()
	dst := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.SetGray(x, y, color.Gray{Y: contrasted(src.At(x, y), contrast)})
		}
	}
	return dst
}

func contrasted(c color.Color, contrast float64) uint8 {
	r, g, b, _ := c.RGBA()
	// ITU-R BT.601 luma
	gray := 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)
	v := (gray-128)*contrast + 128
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return uint8(v)
}

func upscale(src image.Image, factor int) image.Image {
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
