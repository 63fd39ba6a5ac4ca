package rasterimg

import "math"

// cubicKernel is the Keys cubic convolution kernel (a = -0.5), the standard
// approximation of OpenCV's INTER_CUBIC. Separable, weighted-accumulation
// structure: cubic rather than Lanczos because this pipeline only ever
// upscales label crops before OCR, never downsamples, and Lanczos's ringing
// is a bigger liability there than cubic's slight blur.
const cubicA = -0.5

func cubicKernel(x float64) float64 {
	x = math.Abs(x)
	if x <= 1 {
		return (cubicA+2)*x*x*x - (cubicA+3)*x*x + 1
	}
	if x < 2 {
		return cubicA*x*x*x - 5*cubicA*x*x + 8*cubicA*x - 4*cubicA
	}
	return 0
}

// UpscaleCubic resizes src to dstW x dstH using bicubic interpolation.
// dstW/dstH are normally integer multiples of src's dimensions (this
// pipeline never downsamples a label crop), but any positive target works.
func UpscaleCubic(src *GrayImage, dstW, dstH int) *GrayImage {
	if src == nil || src.W == 0 || src.H == 0 || dstW <= 0 || dstH <= 0 {
		return NewGray(dstW, dstH)
	}
	dst := NewGray(dstW, dstH)
	xScale := float64(src.W) / float64(dstW)
	yScale := float64(src.H) / float64(dstH)

	for y := 0; y < dstH; y++ {
		sy := (float64(y)+0.5)*yScale - 0.5
		y0 := int(math.Floor(sy)) - 1
		var wy [4]float64
		for k := 0; k < 4; k++ {
			wy[k] = cubicKernel(sy - float64(y0+k))
		}
		for x := 0; x < dstW; x++ {
			sx := (float64(x)+0.5)*xScale - 0.5
			x0 := int(math.Floor(sx)) - 1
			var wx [4]float64
			for k := 0; k < 4; k++ {
				wx[k] = cubicKernel(sx - float64(x0+k))
			}
			sum, wsum := 0.0, 0.0
			for j := 0; j < 4; j++ {
				for i := 0; i < 4; i++ {
					w := wx[i] * wy[j]
					v := float64(src.At(x0+i, y0+j))
					sum += v * w
					wsum += w
				}
			}
			val := sum
			if wsum != 0 {
				val = sum / wsum
			}
			dst.Set(x, y, uint8(clampFloat(val, 0, 255)))
		}
	}
	return dst
}

// UpscaleFactor upscales src by an integer factor s (s >= 1) in both axes.
func UpscaleFactor(src *GrayImage, s int) *GrayImage {
	if s < 1 {
		s = 1
	}
	return UpscaleCubic(src, src.W*s, src.H*s)
}
