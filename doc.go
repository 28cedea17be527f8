// Package raster implements the render-time color and rasterization core of
// a software print RIP: blit-color state tracking, Gouraud-shaded triangle
// scan conversion, and LUT-driven image expansion, plus the band-table and
// pattern-shape caches that glue them together.
//
// # Overview
//
// raster is CPU-only. It does not parse a page description language,
// perform physical I/O, or manage color profiles; it consumes an
// already-built color chain and a display list and turns them into packed
// pixels in band memory.
//
// # Architecture
//
//   - bitvector, packedpixel: bit-level primitives shared by every pipeline.
//   - blitcolor: the four-view color pipeline (unpacked/quantised/packed/expanded).
//   - gouraud: rational-DDA triangle shading.
//   - imexpand: scanline image decoding from tiled image stores.
//   - patternshape: rasterize-once-reuse-many pattern form cache.
//   - bandtable: per-colorant band assignment and the worker pool that
//     drives band-parallel rendering.
//   - render: ties the above into a page-level render loop.
//
// # Logging
//
// raster produces no log output unless [SetLogger] is called.
package raster
