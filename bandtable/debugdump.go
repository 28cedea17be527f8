package bandtable

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/draw"
)

// DumpBandPNG writes band's packed content as a grayscale PNG to w, for
// eyeballing a band's coverage without a buffer viewer. width is the
// band's row stride in bytes; scale, if greater than 1, enlarges the
// image with scaler (draw.NearestNeighbor if nil) so narrow bands are
// still legible. A blank band dumps as a single black pixel.
func DumpBandPNG(w io.Writer, band Band, width int32, scale int, scaler draw.Scaler) error {
	if band.Blank || len(band.Data) == 0 || width <= 0 {
		return png.Encode(w, image.NewGray(image.Rect(0, 0, 1, 1)))
	}

	rows := int32(len(band.Data)) / width
	src := image.NewGray(image.Rect(0, 0, int(width), int(rows)))
	for y := int32(0); y < rows; y++ {
		for x := int32(0); x < width; x++ {
			src.SetGray(int(x), int(y), color.Gray{Y: band.Data[y*width+x]})
		}
	}

	if scale <= 1 {
		return png.Encode(w, src)
	}

	if scaler == nil {
		scaler = draw.NearestNeighbor
	}
	dst := image.NewGray(image.Rect(0, 0, int(width)*scale, int(rows)*scale))
	scaler.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return png.Encode(w, dst)
}
