package formats

import (
	"errors"
	"strings"
	"testing"

	"github.com/versecast/versecast/core/scripture"
)

type stubHandler struct {
	name string
	ext  string
	err  error
}

func (h *stubHandler) Name() string { return h.name }

func (h *stubHandler) Detect(path string) bool {
	return strings.HasSuffix(path, h.ext)
}

func (h *stubHandler) Load(path string) (*scripture.Dataset, error) {
	if h.err != nil {
		return nil, h.err
	}
	return &scripture.Dataset{Version: h.name}, nil
}

func TestRegistryOrder(t *testing.T) {
	Register(&stubHandler{name: "first", ext: ".a"})
	Register(&stubHandler{name: "second", ext: ".a"})
	Register(&stubHandler{name: "third", ext: ".b"})

	if h := Detect("file.a"); h == nil || h.Name() != "first" {
		t.Errorf("Detect(.a) should pick the first registered handler, got %v", h)
	}
	if h := Detect("file.b"); h == nil || h.Name() != "third" {
		t.Errorf("Detect(.b) = %v", h)
	}
	if h := Detect("file.c"); h != nil {
		t.Errorf("Detect(.c) = %v, want nil", h)
	}
}

func TestLoad(t *testing.T) {
	Register(&stubHandler{name: "ok", ext: ".ok"})
	loadErr := errors.New("corrupt")
	Register(&stubHandler{name: "bad", ext: ".bad", err: loadErr})

	ds, err := Load("file.ok")
	if err != nil || ds.Version != "ok" {
		t.Errorf("Load(.ok) = %v, %v", ds, err)
	}

	if _, err := Load("file.bad"); !errors.Is(err, loadErr) {
		t.Errorf("Load(.bad) error = %v, want wrapped handler error", err)
	}

	if _, err := Load("file.unknown"); err == nil {
		t.Error("Load with no handler should fail")
	}
}
