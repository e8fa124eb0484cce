package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"github.com/kluctl/cordovactl/pkg/utils"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	yaml3 "gopkg.in/yaml.v3"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type Decoder interface {
	Decode(v interface{}) error
}

type decoderWrapper struct {
	d *yaml3.Decoder
}

func (w *decoderWrapper) Decode(v interface{}) error {
	err := w.d.Decode(v)
	if err != nil {
		return err
	}

	err = ValidateStructs(v)
	if err != nil {
		return err
	}

	return nil
}

func newDecoder(r io.Reader) Decoder {
	d := yaml3.NewDecoder(r)
	d.KnownFields(true)
	return &decoderWrapper{d: d}
}

func newUnicodeReader(r io.Reader) io.Reader {
	utf16bom := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	return transform.NewReader(r, utf16bom)
}

func ReadYamlFile(p string, o interface{}) error {
	r, err := os.Open(p)
	if err != nil {
		return fmt.Errorf("opening %v failed: %w", p, err)
	}
	defer r.Close()

	err = ReadYamlStream(r, o)
	if err != nil {
		return fmt.Errorf("unmarshalling %v failed: %w", p, err)
	}
	return nil
}

func ReadYamlString(s string, o interface{}) error {
	return ReadYamlStream(strings.NewReader(s), o)
}

func ReadYamlBytes(b []byte, o interface{}) error {
	return ReadYamlStream(bytes.NewReader(b), o)
}

func ReadYamlStream(r io.Reader, o interface{}) error {
	r = newUnicodeReader(r)

	d := newDecoder(r)

	err := d.Decode(o)
	if err != nil && errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func WriteYamlString(o interface{}) (string, error) {
	b, err := WriteYamlBytes(o)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func WriteYamlBytes(o interface{}) ([]byte, error) {
	w := bytes.NewBuffer(nil)
	err := WriteYamlStream(w, o)
	if err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func WriteYamlFile(p string, o interface{}) error {
	w, err := os.Create(p)
	if err != nil {
		return err
	}
	defer w.Close()

	return WriteYamlStream(w, o)
}

func WriteYamlStream(w io.Writer, o interface{}) error {
	enc := yaml3.NewEncoder(w)
	defer enc.Close()

	enc.SetIndent(2)

	return enc.Encode(o)
}

// FixPathExt returns the .yaml variant of a .yml path (or vice versa) if only that one exists.
func FixPathExt(p string) string {
	if utils.Exists(p) {
		return p
	}
	var p2 string
	if strings.HasSuffix(p, ".yml") {
		p2 = p[:len(p)-4] + ".yaml"
	} else if strings.HasSuffix(p, ".yaml") {
		p2 = p[:len(p)-5] + ".yml"
	} else {
		return p
	}

	if utils.Exists(p2) {
		return p2
	}
	return p
}

func FixNameExt(dir string, name string) string {
	p := filepath.Join(dir, name)
	p = FixPathExt(p)
	return filepath.Base(p)
}
