package rapor

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Built-in template ids.
const (
	TemplateReportCard      = "student-report-card"
	TemplateClassList       = "class-list"
	TemplateAttendance      = "attendance"
	TemplateTeacherSchedule = "teacher-schedule"
)

//go:embed templates/*.xml
var builtinFS embed.FS

// Renderer is a registry of parsed templates.
type Renderer struct {
	mu        sync.RWMutex
	templates map[string]*Template
	logger    *zap.Logger
}

func NewRenderer(logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{templates: map[string]*Template{}, logger: logger}
}

// NewDefaultRenderer returns a renderer with the built-in templates registered.
func NewDefaultRenderer(logger *zap.Logger) (*Renderer, error) {
	r := NewRenderer(logger)
	if err := r.LoadBuiltin(); err != nil {
		return nil, err
	}
	return r, nil
}

// Register adds t, replacing any template with the same id.
func (r *Renderer) Register(t *Template) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[t.id] = t
}

func (r *Renderer) Lookup(id string) (*Template, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.templates[id]
	return t, ok
}

// LoadBuiltin parses the embedded templates.
func (r *Renderer) LoadBuiltin() error {
	entries, err := builtinFS.ReadDir("templates")
	if err != nil {
		return errors.Wrap(err, "read built-in templates")
	}
	for _, e := range entries {
		body, err := builtinFS.ReadFile("templates/" + e.Name())
		if err != nil {
			return errors.Wrapf(err, "read %s", e.Name())
		}
		t, err := ParseXML(strings.TrimSuffix(e.Name(), ".xml"), body)
		if err != nil {
			return err
		}
		r.Register(t)
	}
	return nil
}

// LoadDir registers every {id}.docx file in dir, overriding built-ins with the
// same id. It returns the number of templates loaded.
func (r *Renderer) LoadDir(dir string) (int, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.docx"))
	if err != nil {
		return 0, err
	}
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return 0, errors.Wrapf(err, "read %s", p)
		}
		t, err := ParseDocx(strings.TrimSuffix(filepath.Base(p), ".docx"), data)
		if err != nil {
			return 0, err
		}
		r.Register(t)
		r.logger.Info("template override loaded", zap.String("template", t.id), zap.String("path", p))
	}
	return len(paths), nil
}

// Render normalizes data with ContextMap and executes the template registered under id.
func (r *Renderer) Render(id string, data interface{}) ([]byte, error) {
	start := time.Now()
	t, ok := r.Lookup(id)
	if !ok {
		return nil, errors.Wrap(ErrTemplateNotFound, id)
	}
	ctx, err := ContextMap(data)
	if err != nil {
		return nil, errors.Wrapf(err, "template %s", id)
	}
	out, err := t.Execute(ctx)
	if err != nil {
		r.logger.Error("render failed", zap.String("template", id), zap.Error(err))
		return nil, err
	}
	r.logger.Debug("document rendered",
		zap.String("template", id),
		zap.Int("bytes", len(out)),
		zap.Duration("took", time.Since(start)))
	return out, nil
}
