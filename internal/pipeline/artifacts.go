package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/MimeLyc/tagged-doc-translator/pkg/file"
)

// ArtifactSink receives the raw request and response payload of every
// batch plus diagnostics for failed ones. Sinks are write-only side
// channels; a sink error is logged by the caller and never fails the
// batch itself.
type ArtifactSink interface {
	SaveRequest(docPath string, firstIdentity int, content string) error
	SaveResponse(docPath string, firstIdentity int, content string) error
	SaveDiagnostic(docPath string, firstIdentity int, content string) error
}

// DirSink writes artifacts into three flat directories, one file per
// batch, named <stem>_V01_<first-identity>.txt so a batch's request,
// response and diagnostic can be matched up by name.
type DirSink struct {
	RequestDir  string
	ResponseDir string
	ErrorDir    string
}

func NewDirSink(requestDir, responseDir, errorDir string) *DirSink {
	return &DirSink{
		RequestDir:  requestDir,
		ResponseDir: responseDir,
		ErrorDir:    errorDir,
	}
}

func (s *DirSink) SaveRequest(docPath string, firstIdentity int, content string) error {
	return s.write(s.RequestDir, docPath, firstIdentity, content)
}

func (s *DirSink) SaveResponse(docPath string, firstIdentity int, content string) error {
	return s.write(s.ResponseDir, docPath, firstIdentity, content)
}

func (s *DirSink) SaveDiagnostic(docPath string, firstIdentity int, content string) error {
	return s.write(s.ErrorDir, docPath, firstIdentity, content)
}

func (s *DirSink) write(dir, docPath string, firstIdentity int, content string) error {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create artifact directory: %w", err)
	}
	if firstIdentity < 0 {
		firstIdentity = 0
	}
	name := fmt.Sprintf("%s_V01_%08d.txt", file.Stem(docPath), firstIdentity)
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write artifact: %w", err)
	}
	return nil
}

// NopSink discards all artifacts.
type NopSink struct{}

func (NopSink) SaveRequest(string, int, string) error    { return nil }
func (NopSink) SaveResponse(string, int, string) error   { return nil }
func (NopSink) SaveDiagnostic(string, int, string) error { return nil }

// ClearDirs removes every regular file directly inside each directory,
// leaving the directories themselves and any subdirectories in place.
// Missing directories are ignored.
func ClearDirs(dirs ...string) error {
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("failed to read artifact directory: %w", err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
				return fmt.Errorf("failed to clear artifact: %w", err)
			}
		}
	}
	return nil
}
