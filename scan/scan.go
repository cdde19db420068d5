// Package scan finds NEON VLDn loads in raw code images.
//
// A scan decodes every aligned word of an image and keeps the ones that
// are element or structure loads. Words that are not (which is most of a
// real binary) are counted, never fatal. Decoding is spread over a bounded
// set of goroutines; the decoder itself stays single-threaded and
// stateless.
package scan

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"

	"github.com/sarchlab/vldasm/insts"
	"github.com/sarchlab/vldasm/loader"
)

// Hit is one decoded load found in an image.
type Hit struct {
	Addr uint32
	Inst *insts.Instruction
}

// String renders the hit as an objdump-style line.
func (h Hit) String() string {
	return fmt.Sprintf("%8x:\t%08x\t%s", h.Addr, h.Inst.Word, h.Inst)
}

// Result summarizes a scan.
type Result struct {
	Hits      []Hit
	Words     int // Aligned words examined
	Undefined int // Words that are not valid loads
	Reserved  int // Loads rejected by a strict decoder
	Trailing  int // Bytes after the last whole word
}

// Add folds another result into r, appending its hits.
func (r *Result) Add(other *Result) {
	r.Hits = append(r.Hits, other.Hits...)
	r.Words += other.Words
	r.Undefined += other.Undefined
	r.Reserved += other.Reserved
	r.Trailing += other.Trailing
}

// Scanner scans code images for NEON loads.
type Scanner struct {
	config  *Config
	decoder *insts.Decoder
	log     logr.Logger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithConfig sets the scan configuration.
func WithConfig(config *Config) Option {
	return func(s *Scanner) {
		s.config = config.Clone()
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log logr.Logger) Option {
	return func(s *Scanner) {
		s.log = log
	}
}

// NewScanner creates a Scanner. It fails if the configuration is invalid.
func NewScanner(opts ...Option) (*Scanner, error) {
	s := &Scanner{
		config: DefaultConfig(),
		log:    logr.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scan config: %w", err)
	}

	var decoderOpts []insts.DecoderOption
	if s.config.Strict {
		decoderOpts = append(decoderOpts, insts.WithStrict())
	}
	s.decoder = insts.NewDecoder(decoderOpts...)

	return s, nil
}

// Config returns a copy of the scanner configuration.
func (s *Scanner) Config() *Config {
	return s.config.Clone()
}

// Scan decodes every aligned word of image, which is loaded at base.
func (s *Scanner) Scan(ctx context.Context, base uint32, image []byte) (*Result, error) {
	words := len(image) / 4
	chunk := s.config.ChunkWords
	chunks := (words + chunk - 1) / chunk
	partial := make([]*Result, chunks)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	for i := range partial {
		start := i * chunk
		end := min(start+chunk, words)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			partial[i] = s.scanChunk(base+uint32(start*4), image[start*4:end*4])
			s.log.V(2).Info("chunk decoded", "chunk", i, "words", end-start,
				"hits", len(partial[i].Hits))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scan at 0x%x: %w", base, err)
	}

	result := &Result{Trailing: len(image) % 4}
	for _, p := range partial {
		result.Add(p)
	}
	s.truncate(result)

	s.log.V(1).Info("image scanned", "base", fmt.Sprintf("0x%x", base),
		"words", result.Words, "hits", len(result.Hits),
		"undefined", result.Undefined, "reserved", result.Reserved)

	return result, nil
}

// ScanProgram scans every executable segment of prog.
func (s *Scanner) ScanProgram(ctx context.Context, prog *loader.Program) (*Result, error) {
	total := &Result{}
	for _, seg := range prog.CodeSegments() {
		r, err := s.Scan(ctx, seg.VirtAddr, seg.Data)
		if err != nil {
			return nil, err
		}
		total.Add(r)
	}
	s.truncate(total)

	s.log.Info("program scanned", "segments", len(prog.CodeSegments()),
		"words", total.Words, "hits", len(total.Hits))

	return total, nil
}

func (s *Scanner) scanChunk(base uint32, data []byte) *Result {
	r := &Result{}
	for off := 0; off+4 <= len(data); off += 4 {
		r.Words++

		word := binary.LittleEndian.Uint32(data[off:])
		inst, err := s.decoder.Decode(word)
		switch {
		case err == nil:
			r.Hits = append(r.Hits, Hit{Addr: base + uint32(off), Inst: inst})
		case errors.Is(err, insts.ErrReservedField):
			r.Reserved++
			s.log.V(1).Info("reserved encoding", "addr", fmt.Sprintf("0x%x", base+uint32(off)),
				"err", err.Error())
		default:
			r.Undefined++
		}
	}
	return r
}

func (s *Scanner) truncate(r *Result) {
	if s.config.MaxHits > 0 && len(r.Hits) > s.config.MaxHits {
		r.Hits = r.Hits[:s.config.MaxHits]
	}
}
