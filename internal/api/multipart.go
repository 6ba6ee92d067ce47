package api

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

// multipartBody accumulates a form; the first error sticks.
type multipartBody struct {
	buf bytes.Buffer
	w   *multipart.Writer
	err error
}

func newMultipart() *multipartBody {
	m := &multipartBody{}
	m.w = multipart.NewWriter(&m.buf)
	return m
}

func (m *multipartBody) field(name, value string) {
	if m.err != nil {
		return
	}
	m.err = m.w.WriteField(name, value)
}

func (m *multipartBody) file(field, path string) {
	if m.err != nil {
		return
	}
	f, err := os.Open(path)
	if err != nil {
		m.err = fmt.Errorf("failed to open %s: %w", path, err)
		return
	}
	defer f.Close()

	part, err := m.w.CreateFormFile(field, filepath.Base(path))
	if err != nil {
		m.err = err
		return
	}
	if _, err := io.Copy(part, f); err != nil {
		m.err = fmt.Errorf("failed to read %s: %w", path, err)
	}
}

func (m *multipartBody) finish() (io.Reader, string, error) {
	if m.err != nil {
		return nil, "", m.err
	}
	if err := m.w.Close(); err != nil {
		return nil, "", err
	}
	return &m.buf, m.w.FormDataContentType(), nil
}
