package imexpand

import (
	"github.com/pkg/errors"

	"github.com/ripcore/raster/cache"
)

// WidenLUT folds n = expibpp/ebpp adjacent ebpp-wide input samples into one
// expibpp-wide lookup, for each component's narrow table. The widened
// entry for composite index i is the concatenation of the n per-sample
// narrow lookups packed into i, most-significant sample first, so that
// reading one expibpp-wide index produces the same bytes n individual
// ebpp-wide lookups would have produced back to back.
func WidenLUT(narrow [][]byte, ebpp, expibpp, entryBytes int) [][]byte {
	n := expibpp / ebpp
	colors := 1 << uint(ebpp)
	widenedColors := 1 << uint(expibpp)

	out := make([][]byte, len(narrow))
	for j, table := range narrow {
		widened := make([]byte, widenedColors*entryBytes*n)
		for i := 0; i < widenedColors; i++ {
			for k := 0; k < n; k++ {
				shift := uint(ebpp * (n - 1 - k))
				sample := (i >> shift) & (colors - 1)
				src := sample * entryBytes
				dst := (i*n + k) * entryBytes
				copy(widened[dst:dst+entryBytes], table[src:src+entryBytes])
			}
		}
		out[j] = widened
	}
	return out
}

// CanWiden reports whether a LUT for the given input depth and component
// count is small enough to widen: the combined address space must fit in a
// single byte-addressable table (<=256 entries) and the output must pack
// into a native word.
func CanWiden(inputBits, components, outBits int) bool {
	entries := 1 << (inputBits * components)
	if entries > 256 {
		return false
	}
	return outBits == 8 || outBits == 16 || outBits == 32
}

// LUTCache shares widened LUTs across images built from the same color
// chain, decode array, component count, input depth, and widening choice.
// It is page-scoped: callers construct one per page and discard it at page
// teardown.
type LUTCache struct {
	entries *cache.ShardedCache[Fingerprint, *LUT]
}

// NewLUTCache creates an empty, page-scoped LUT sharing cache.
func NewLUTCache() *LUTCache {
	return &LUTCache{
		entries: cache.NewSharded[Fingerprint, *LUT](cache.DefaultCapacity, fingerprintHash),
	}
}

// Build returns a shared LUT for fp, constructing it from narrow (one
// table per output component, indexed [0..2^ebpp)*entryBytes) and widening
// it to expibpp-wide entries when fp.Widened is set.
func (c *LUTCache) Build(fp Fingerprint, narrow [][]byte, ebpp, expibpp, entryBytes int) *LUT {
	return c.Share(fp, func() *LUT {
		tables := narrow
		outBytes := entryBytes
		if fp.Widened && expibpp > ebpp {
			tables = WidenLUT(narrow, ebpp, expibpp, entryBytes)
			outBytes = entryBytes * (expibpp / ebpp)
		}
		// A LUTCache backs a single output plane's lookup; Build is called
		// once per plane, so only the first table is kept.
		return &LUT{Bytes: tables[0], OutBytes: outBytes, Widened: fp.Widened, Fingerprint: fp}
	})
}

// NewExpander assembles an Expander wired to store and a LUT-per-plane
// mapping built by a LUTCache. This is the LUT-store construction entry
// point: a plane/colorant count mismatch or an unsupported output depth is
// a config-time mistake, not a per-scanline decode failure, so it is
// reported with wrapped error context rather than the boolean contract
// decodeSamples uses.
func NewExpander(store ImageStore, ibpp, obpp, expibpp int, luts []*LUT, colorants []Colorant) (*Expander, error) {
	if len(luts) != len(colorants) {
		return nil, errors.Wrapf(errInvalidExpander, "imexpand: %d LUTs but %d colorants", len(luts), len(colorants))
	}
	if obpp != 8 && obpp != 16 {
		return nil, errors.Wrapf(errInvalidExpander, "imexpand: unsupported output depth %d", obpp)
	}
	return &Expander{IBPP: ibpp, OBPP: obpp, ExpIBPP: expibpp, LUTs: luts, Colorants: colorants, Store: store}, nil
}

func fingerprintHash(f Fingerprint) uint64 {
	h := f.ChainFingerprint
	h = h*1099511628211 ^ f.DecodeHash
	h = h*1099511628211 ^ uint64(f.Components)
	h = h*1099511628211 ^ uint64(f.InputBits)
	if f.Widened {
		h ^= 1
	}
	return h
}

// Share returns a previously cached LUT for fingerprint, or registers build
// as the entry if none exists yet. The returned LUT is disclaimed: callers
// must not mutate its contents, since other expanders may be sharing it.
func (c *LUTCache) Share(fp Fingerprint, build func() *LUT) *LUT {
	return c.entries.GetOrCreate(fp, build)
}
