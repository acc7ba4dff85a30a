package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	gopdf "github.com/VantageDataChat/GoPDF2"

	// Decoders for the formats extracted images can arrive in.
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"doccompare/internal/logger"
	"doccompare/internal/types"
)

// extractImages writes every embedded image to outDir and returns the
// resulting paths keyed by 1-based page number, in extraction order.
// FlateDecode payloads are raw pixels and are re-encoded as PNG; DCTDecode
// (JPEG) and JPXDecode (JPEG 2000) payloads are written as-is.
func extractImages(data []byte, outDir string) (result map[int][]string, err error) {
	// The extraction library can panic on malformed image streams; turn
	// that into an ordinary error for the pair.
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("image extraction panic: %v", r)
		}
	}()

	imgMap, err := gopdf.ExtractImagesFromAllPages(data)
	if err != nil {
		return nil, err
	}

	result = make(map[int][]string)
	if len(imgMap) == 0 {
		return result, nil
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, err
	}

	var pageIndices []int
	for idx := range imgMap {
		pageIndices = append(pageIndices, idx)
	}
	sort.Ints(pageIndices)

	for _, pageIdx := range pageIndices {
		var paths []string
		for i, img := range imgMap[pageIdx] {
			payload := img.Data
			ext := extensionForFilter(img.Filter)
			if img.Filter == "FlateDecode" || img.Filter == "" {
				payload = rawPixelsToPNG(img.Data, img.Width, img.Height, img.ColorSpace)
				if payload == nil {
					logger.L().WithField("page", pageIdx+1).
						Warn("skipping image with unsupported raw pixel layout")
					continue
				}
			}
			name := fmt.Sprintf("page_%d_img_%d.%s", pageIdx+1, i+1, ext)
			path := filepath.Join(outDir, name)
			if err := os.WriteFile(path, payload, 0644); err != nil {
				return nil, err
			}
			paths = append(paths, path)
		}
		if len(paths) > 0 {
			result[pageIdx+1] = paths
		}
	}
	return result, nil
}

// extensionForFilter maps a PDF image stream filter to a file extension.
func extensionForFilter(filter string) string {
	switch filter {
	case "DCTDecode":
		return "jpg"
	case "JPXDecode":
		return "jp2"
	default:
		return "png"
	}
}

// rawPixelsToPNG converts raw decompressed pixel data from a PDF image
// stream to PNG bytes. DeviceRGB (3 bytes/pixel) and DeviceGray
// (1 byte/pixel) are supported; anything else returns nil.
func rawPixelsToPNG(data []byte, width, height int, colorSpace string) []byte {
	if width <= 0 || height <= 0 {
		return nil
	}

	isGray := strings.Contains(colorSpace, "Gray")
	bytesPerPixel := 3
	if isGray {
		bytesPerPixel = 1
	}
	if len(data) < width*height*bytesPerPixel {
		return nil
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			offset := (y*width + x) * bytesPerPixel
			var c color.RGBA
			if isGray {
				g := data[offset]
				c = color.RGBA{R: g, G: g, B: g, A: 255}
			} else {
				c = color.RGBA{R: data[offset], G: data[offset+1], B: data[offset+2], A: 255}
			}
			img.SetRGBA(x, y, c)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}

// CompareImages compares the extracted images of two documents page by
// page. Images are paired by position within each page's list; surplus
// images on either side are unique to that side. Paired images go through
// a pixel-equality check and are flagged as mismatched iff the difference
// image has a non-empty bounding box. A pair that cannot be decoded is
// logged and excluded from both the unique and mismatched sets.
func CompareImages(a, b *Document) (uniqueA, uniqueB map[int][]string, mismatched []types.ImageMismatch) {
	uniqueA = make(map[int][]string)
	uniqueB = make(map[int][]string)

	for _, page := range unionPages(a.Images, b.Images) {
		imagesA := a.Images[page]
		imagesB := b.Images[page]

		paired := len(imagesA)
		if len(imagesB) < paired {
			paired = len(imagesB)
		}
		if len(imagesA) > paired {
			uniqueA[page] = imagesA[paired:]
		}
		if len(imagesB) > paired {
			uniqueB[page] = imagesB[paired:]
		}

		for i := 0; i < paired; i++ {
			imgA, errA := decodeImageFile(imagesA[i])
			imgB, errB := decodeImageFile(imagesB[i])
			if errA != nil || errB != nil {
				logger.L().WithField("page", page).
					Warnf("image comparison skipped for %s vs %s: %v",
						imagesA[i], imagesB[i], firstError(errA, errB))
				continue
			}
			if bbox, differ := diffBoundingBox(imgA, imgB); differ {
				logger.L().WithField("page", page).WithField("bbox", bbox.String()).
					Debug("pixel mismatch detected")
				mismatched = append(mismatched, types.ImageMismatch{
					Page:   page,
					ImageA: imagesA[i],
					ImageB: imagesB[i],
				})
			}
		}
	}
	return uniqueA, uniqueB, mismatched
}

func decodeImageFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, types.NewAppError(types.ErrDecode,
			fmt.Sprintf("unable to open image %s", path), err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, types.NewAppError(types.ErrDecode,
			fmt.Sprintf("unable to decode image %s", path), err)
	}
	return img, nil
}

// diffBoundingBox computes the bounding box of all pixels that differ
// between two images, comparing position by position from each image's
// origin. Differing dimensions count as a whole-image difference. The
// second return value reports whether the box is non-empty.
func diffBoundingBox(a, b image.Image) (image.Rectangle, bool) {
	boundsA := a.Bounds()
	boundsB := b.Bounds()
	if boundsA.Dx() != boundsB.Dx() || boundsA.Dy() != boundsB.Dy() {
		return image.Rect(0, 0, max(boundsA.Dx(), boundsB.Dx()), max(boundsA.Dy(), boundsB.Dy())), true
	}

	minX, minY := boundsA.Dx(), boundsA.Dy()
	maxX, maxY := -1, -1
	for y := 0; y < boundsA.Dy(); y++ {
		for x := 0; x < boundsA.Dx(); x++ {
			ra, ga, ba, aa := a.At(boundsA.Min.X+x, boundsA.Min.Y+y).RGBA()
			rb, gb, bb, ab := b.At(boundsB.Min.X+x, boundsB.Min.Y+y).RGBA()
			if ra != rb || ga != gb || ba != bb || aa != ab {
				if x < minX {
					minX = x
				}
				if y < minY {
					minY = y
				}
				if x > maxX {
					maxX = x
				}
				if y > maxY {
					maxY = y
				}
			}
		}
	}
	if maxX < 0 {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}

func unionPages(a, b map[int][]string) []int {
	seen := make(map[int]struct{}, len(a)+len(b))
	for page := range a {
		seen[page] = struct{}{}
	}
	for page := range b {
		seen[page] = struct{}{}
	}
	pages := make([]int, 0, len(seen))
	for page := range seen {
		pages = append(pages, page)
	}
	sort.Ints(pages)
	return pages
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
