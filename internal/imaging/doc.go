// Package imaging loads source images and prepares them for vectorization.
//
// It sits between files on disk and the pure pipeline in package vectorize:
// decoding, caching, cropping, bounding the display size, optional smoothing,
// and conversion to the pipeline's RGBA pixel buffer. It also renders binary
// masks as PNG previews so a threshold can be judged before tracing.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner. For
// regions, (x1,y1) is inclusive and (x2,y2) is exclusive.
//
// # Supported Formats
//
// PNG, JPEG and GIF through the standard library; BMP, TIFF and WebP through
// golang.org/x/image. Formats are detected from file contents.
//
// # Preparation Order
//
// Prepare applies, in order: region crop, downscale to MaxDimension (never
// upscale), Gaussian blur. The result is always a non-premultiplied RGBA
// buffer whose origin is (0,0).
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. All other functions are stateless
// and never modify their input images.
package imaging
