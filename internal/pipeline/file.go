package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/MimeLyc/tagged-doc-translator/internal/document"
	"github.com/MimeLyc/tagged-doc-translator/internal/glossary"
	"github.com/MimeLyc/tagged-doc-translator/internal/segment"
	"github.com/MimeLyc/tagged-doc-translator/internal/translate"
	"github.com/MimeLyc/tagged-doc-translator/pkg/file"
	"github.com/MimeLyc/tagged-doc-translator/pkg/log"
)

// Options are the per-run orchestration settings.
type Options struct {
	// Direction fixes the translation direction; "auto" or empty
	// detects it per document from the line payloads.
	Direction string
	// BatchSize is the number of pending lines per service request.
	BatchSize int
	// TermRelevanceCount and SoundRelevanceCount are the glossary
	// subset floors per batch.
	TermRelevanceCount  int
	SoundRelevanceCount int
	// GlossaryDir holds the per-document term stores and the shared
	// sound dictionary.
	GlossaryDir string
	// ExportDir, when set, receives a plain-text rendering of every
	// processed document. Export failures are logged, never fatal.
	ExportDir string
}

func (o Options) withDefaults() Options {
	if o.BatchSize <= 0 {
		o.BatchSize = 20
	}
	if o.TermRelevanceCount <= 0 {
		o.TermRelevanceCount = 5
	}
	if o.SoundRelevanceCount <= 0 {
		o.SoundRelevanceCount = 3
	}
	return o
}

// FileResult is the outcome of one document.
type FileResult struct {
	Path         string
	Direction    segment.Direction
	Status       Status
	Translatable int
	Success      int
	Failed       int
	Err          error
}

// Runner processes single documents. It is safe for concurrent use;
// all glossary stores it creates share one mutex so cross-document
// merges into the same store file are serialized.
type Runner struct {
	translator translate.Translator
	sink       ArtifactSink
	tracker    *Tracker
	opts       Options

	glossaryMu *sync.Mutex
	soundStore *glossary.SoundStore
}

func NewRunner(translator translate.Translator, sink ArtifactSink, tracker *Tracker, opts Options) *Runner {
	if sink == nil {
		sink = NopSink{}
	}
	if tracker == nil {
		tracker = NewTracker()
	}
	opts = opts.withDefaults()

	mu := &sync.Mutex{}
	soundPath := filepath.Join(opts.GlossaryDir, glossary.SoundFileName)
	return &Runner{
		translator: translator,
		sink:       sink,
		tracker:    tracker,
		opts:       opts,
		glossaryMu: mu,
		soundStore: glossary.NewSoundStore(soundPath, mu),
	}
}

func (r *Runner) Tracker() *Tracker {
	return r.tracker
}

// ProcessFile translates every pending line of one document, batch by
// batch. The document file is rewritten after each batch, so an
// interrupted run resumes from the last persisted batch. A batch that
// fails (transport exhaustion, refusal) fails only its own lines; the
// run continues with the next batch.
func (r *Runner) ProcessFile(ctx context.Context, path string) FileResult {
	r.tracker.Register(path)
	r.setStatus(path, StatusProcessing)

	doc, err := document.Load(path)
	if err != nil {
		r.setStatus(path, StatusFailed)
		return FileResult{Path: path, Status: StatusFailed, Err: err}
	}

	dir, err := r.resolveDirection(doc)
	if err != nil {
		r.setStatus(path, StatusFailed)
		return FileResult{Path: path, Status: StatusFailed, Err: err}
	}

	pending := doc.Pending(dir)
	r.tracker.Update(path, func(fp *FileProgress) {
		fp.TotalLines = len(doc.Lines)
		fp.Translatable = len(pending)
		fp.Pending = len(pending)
	})

	if len(pending) == 0 {
		log.Info("nothing to translate in %s, skipping", filepath.Base(path))
		r.exportPlainText(doc)
		r.setStatus(path, StatusSkipped)
		return FileResult{Path: path, Direction: dir, Status: StatusSkipped}
	}

	termStore := r.termStore(path, dir)

	result := FileResult{
		Path:         path,
		Direction:    dir,
		Translatable: len(pending),
	}

	for start := 0; start < len(pending); start += r.opts.BatchSize {
		if err := ctx.Err(); err != nil {
			result.Status = StatusFailed
			result.Err = err
			r.setStatus(path, StatusFailed)
			return result
		}

		end := start + r.opts.BatchSize
		if end > len(pending) {
			end = len(pending)
		}
		batch := pending[start:end]

		success, failed := r.processBatch(ctx, doc, dir, termStore, batch)
		result.Success += success
		result.Failed += failed

		if err := doc.Save(); err != nil {
			log.Error("failed to persist %s after batch: %v", filepath.Base(path), err)
			result.Status = StatusFailed
			result.Err = err
			r.setStatus(path, StatusFailed)
			return result
		}

		glossarySize := len(termStore.Load())
		r.tracker.Update(path, func(fp *FileProgress) {
			fp.Success += success
			fp.Failed += failed
			fp.Pending -= success + failed
			fp.GlossarySize = glossarySize
		})
	}

	r.exportPlainText(doc)

	// A document with failed lines still completes: the failures stay
	// in the source language and are picked up by the next run.
	result.Status = StatusCompleted
	r.setStatus(path, StatusCompleted)

	log.Info("finished %s: %d translated, %d failed of %d",
		filepath.Base(path), result.Success, result.Failed, result.Translatable)
	return result
}

// processBatch runs one request/response cycle and reinserts whatever
// translated lines survive validation. Returns per-line success and
// failure counts; a dead batch counts all its lines as failed.
func (r *Runner) processBatch(ctx context.Context, doc *document.Document, dir segment.Direction, termStore *glossary.Store, batch []document.Pending) (success, failed int) {
	firstIdentity := batch[0].Identity

	rawLines := make([]string, len(batch))
	plainLines := make([]string, len(batch))
	for i, p := range batch {
		rawLines[i] = p.Raw
		plainLines[i] = segment.ExtractText(p.Raw)
	}
	batchText := glossary.BatchText{
		Raw:   strings.Join(rawLines, "\n"),
		Plain: strings.Join(plainLines, "\n"),
	}

	// Glossaries are re-read per batch so discoveries merged by sibling
	// workers since the last batch flow into this request.
	terms := glossary.SelectRelevant(batchText, termStore.Load(), r.opts.TermRelevanceCount, func(e glossary.Entry) bool {
		return e.Valid(dir)
	})
	var sounds []glossary.Entry
	if dir.SoundEnabled() {
		sounds = glossary.SelectRelevant(batchText, r.soundStore.Load(), r.opts.SoundRelevanceCount, glossary.ValidSound)
	}

	prompt, err := translate.BuildPrompt(dir, rawLines, terms, sounds)
	if err != nil {
		log.Error("failed to build request for %s: %v", filepath.Base(doc.Path), err)
		return 0, len(batch)
	}
	if err := r.sink.SaveRequest(doc.Path, firstIdentity, prompt); err != nil {
		log.Warn("failed to save request artifact: %v", err)
	}

	response, err := r.translator.Translate(ctx, dir, prompt)
	if err != nil {
		log.Error("batch at line %d of %s failed: %v", firstIdentity, filepath.Base(doc.Path), err)
		r.saveDiagnostic(doc.Path, firstIdentity, fmt.Sprintf("request failed: %v\n\n%s", err, prompt))
		return 0, len(batch)
	}

	if translate.IsRefusal(response) {
		log.Warn("service refused batch at line %d of %s", firstIdentity, filepath.Base(doc.Path))
		r.saveDiagnostic(doc.Path, firstIdentity, "refusal:\n"+response)
		return 0, len(batch)
	}

	if err := r.sink.SaveResponse(doc.Path, firstIdentity, response); err != nil {
		log.Warn("failed to save response artifact: %v", err)
	}

	parsed := translate.Parse(dir, response)

	if len(parsed.Terms) > 0 {
		if _, err := termStore.MergeAndSave(parsed.Terms); err != nil {
			log.Error("failed to merge term discoveries: %v", err)
		}
	}
	if dir.SoundEnabled() && len(parsed.Sounds) > 0 {
		if _, err := r.soundStore.MergeAndSave(parsed.Sounds); err != nil {
			log.Error("failed to merge sound discoveries: %v", err)
		}
	}

	for _, p := range batch {
		markup, ok := parsed.Lines[p.Identity]
		if p.Identity == segment.NoIdentity || !ok {
			failed++
			continue
		}
		payload := segment.ExtractText(markup)
		if payload == "" || dir.Residue(payload) {
			failed++
			continue
		}
		doc.Replace(p.Index, markup)
		success++
	}

	if failed > 0 {
		log.Warn("batch at line %d of %s: %d of %d lines not translated",
			firstIdentity, filepath.Base(doc.Path), failed, len(batch))
	}
	return success, failed
}

func (r *Runner) resolveDirection(doc *document.Document) (segment.Direction, error) {
	switch r.opts.Direction {
	case "", "auto":
		dir := segment.DetectDirection(doc.Texts())
		log.Debug("detected direction %s for %s", dir, filepath.Base(doc.Path))
		return dir, nil
	default:
		return segment.ParseDirection(r.opts.Direction)
	}
}

// termStore returns the per-document term dictionary, named after the
// document's stem so reruns reuse the accumulated terms.
func (r *Runner) termStore(path string, dir segment.Direction) *glossary.Store {
	if err := os.MkdirAll(r.opts.GlossaryDir, 0755); err != nil {
		log.Warn("failed to create glossary directory: %v", err)
	}
	storePath := filepath.Join(r.opts.GlossaryDir, file.Stem(path)+"_dictionary.json")
	return glossary.NewStore(storePath, dir, r.glossaryMu)
}

func (r *Runner) exportPlainText(doc *document.Document) {
	if r.opts.ExportDir == "" {
		return
	}
	if err := doc.ExportPlainText(r.opts.ExportDir); err != nil {
		log.Warn("failed to export plain text for %s: %v", filepath.Base(doc.Path), err)
	}
}

func (r *Runner) saveDiagnostic(path string, firstIdentity int, content string) {
	if err := r.sink.SaveDiagnostic(path, firstIdentity, content); err != nil {
		log.Warn("failed to save diagnostic artifact: %v", err)
	}
}

func (r *Runner) setStatus(path string, status Status) {
	r.tracker.Update(path, func(fp *FileProgress) {
		fp.Status = status
	})
}
