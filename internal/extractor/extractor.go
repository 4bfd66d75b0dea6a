// Package extractor runs the per-archive, per-entry decode-and-render
// pipeline across a worker pool, grounded on the teacher's Processor
// (same Queue/Start/Stop/Wait lifecycle, same mutex-guarded Stats,
// generalized from "download result" inputs to "archive path"
// inputs).
package extractor

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/deploymenttheory/pakdecode/internal/hashdict"
	"github.com/deploymenttheory/pakdecode/internal/localization"
	"github.com/deploymenttheory/pakdecode/internal/logger"
	"github.com/deploymenttheory/pakdecode/internal/manifest"
	"github.com/deploymenttheory/pakdecode/internal/pak"
	"github.com/deploymenttheory/pakdecode/internal/pak/azcs"
	"github.com/deploymenttheory/pakdecode/internal/pak/oodle"
)

// Stats holds extractor statistics.
type Stats struct {
	ArchivesOpened  int
	EntriesWritten  int
	Errors          int
	StartTime       time.Time
	EndTime         time.Time
}

// Extractor consumes archive paths and writes every entry's
// transcoded output under an output tree, recording datasheet
// side-bands into a Manifest.
type Extractor struct {
	workers   int
	outputDir string
	formats   pak.Formats

	loc    *localization.Map
	hashes *hashdict.Dictionary
	azcs   azcs.Decoder
	oodle  oodle.Decoder

	manifest *manifest.Manifest

	inQueue chan string

	wg         sync.WaitGroup
	stats      Stats
	statsMutex sync.RWMutex

	stop chan struct{}
}

// New creates an Extractor. loc, hashes, azcsDecoder and oodleDecoder
// may be the respective package's no-op defaults.
func New(workers int, outputDir string, formats pak.Formats, loc *localization.Map, hashes *hashdict.Dictionary, azcsDecoder azcs.Decoder, oodleDecoder oodle.Decoder, rec *manifest.Manifest) *Extractor {
	return &Extractor{
		workers:   workers,
		outputDir: outputDir,
		formats:   formats,
		loc:       loc,
		hashes:    hashes,
		azcs:      azcsDecoder,
		oodle:     oodleDecoder,
		manifest:  rec,
		inQueue:   make(chan string, 100),
		stop:      make(chan struct{}),
	}
}

// Queue returns the channel archive paths are sent on.
func (e *Extractor) Queue() chan<- string {
	return e.inQueue
}

// Start launches the worker pool.
func (e *Extractor) Start() {
	e.statsMutex.Lock()
	e.stats.StartTime = time.Now()
	e.statsMutex.Unlock()

	for i := 0; i < e.workers; i++ {
		e.wg.Add(1)
		go e.worker(i)
	}
}

func (e *Extractor) worker(id int) {
	defer e.wg.Done()

	for {
		select {
		case <-e.stop:
			return
		case path, ok := <-e.inQueue:
			if !ok {
				return
			}
			if err := e.extractArchive(path); err != nil {
				logger.Errorf("worker %d: %s: %v", id, path, err)
				e.incrementErrors()
			}
		}
	}
}

func (e *Extractor) extractArchive(path string) error {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("%w: opening %s: %v", pak.ErrIO, path, err)
	}
	defer zr.Close()
	e.incrementArchivesOpened()

	relRoot := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		select {
		case <-e.stop:
			return nil
		default:
		}
		if err := e.extractEntry(relRoot, f); err != nil {
			logger.Errorf("%s: %s: %v", path, f.Name, err)
			e.incrementErrors()
			continue
		}
		e.incrementEntriesWritten()
	}
	return nil
}

func (e *Extractor) extractEntry(relRoot string, f *zip.File) error {
	entry, err := newZipEntry(f)
	if err != nil {
		return err
	}

	dec, err := pak.NewDecompressor(entry, e.loc, e.hashes, e.azcs, e.oodle)
	if err != nil {
		return err
	}

	outPath := filepath.Join(e.outputDir, relRoot, f.Name)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("%w: %v", pak.ErrIO, err)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("%w: %v", pak.ErrIO, err)
	}
	defer out.Close()

	side, err := dec.ToWriter(out, e.formats)
	if err != nil {
		return err
	}
	if side != nil && side.Datasheet != nil && e.manifest != nil {
		e.manifest.Record(outPath, side.Datasheet)
	}
	return nil
}

// Done signals that no more archive paths will arrive.
func (e *Extractor) Done() {
	close(e.inQueue)
}

// Stop signals the extractor to halt as soon as in-flight entries
// finish.
func (e *Extractor) Stop() {
	close(e.stop)
}

// Wait blocks until every worker has returned.
func (e *Extractor) Wait() {
	e.wg.Wait()
	e.statsMutex.Lock()
	e.stats.EndTime = time.Now()
	e.statsMutex.Unlock()
}

// Duration reports how long the extractor ran between Start and the
// last Wait.
func (e *Extractor) Duration() time.Duration {
	e.statsMutex.RLock()
	defer e.statsMutex.RUnlock()
	if e.stats.EndTime.IsZero() {
		return time.Since(e.stats.StartTime)
	}
	return e.stats.EndTime.Sub(e.stats.StartTime)
}

// Stats returns a snapshot of the extractor's statistics.
func (e *Extractor) Stats() Stats {
	e.statsMutex.RLock()
	defer e.statsMutex.RUnlock()
	return e.stats
}

func (e *Extractor) incrementEntriesWritten() {
	e.statsMutex.Lock()
	e.stats.EntriesWritten++
	e.statsMutex.Unlock()
}

func (e *Extractor) incrementErrors() {
	e.statsMutex.Lock()
	e.stats.Errors++
	e.statsMutex.Unlock()
}

func (e *Extractor) incrementArchivesOpened() {
	e.statsMutex.Lock()
	e.stats.ArchivesOpened++
	e.statsMutex.Unlock()
}
