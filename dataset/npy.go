package dataset

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

var npyMagic = []byte("\x93NUMPY")

// ErrBadNPY indicates a file that is not a readable NPY array.
type ErrBadNPY struct {
	Reason string
}

func (e *ErrBadNPY) Error() string {
	return fmt.Sprintf("bad npy file: %s", e.Reason)
}

// ErrUnsupportedDescr indicates an NPY dtype other than little-endian
// float32.
type ErrUnsupportedDescr struct {
	Descr string
}

func (e *ErrUnsupportedDescr) Error() string {
	return fmt.Sprintf("unsupported npy dtype %q (want '<f4')", e.Descr)
}

// WriteNPY writes data as an NPY version 1.0 array of the given shape
// (little-endian float32, C order).
func WriteNPY(w io.Writer, data []float32, shape []int) error {
	elems := 1
	for _, d := range shape {
		elems *= d
	}
	if elems != len(data) {
		return &ErrBadNPY{Reason: fmt.Sprintf("shape %v does not hold %d elements", shape, len(data))}
	}

	dims := make([]string, len(shape))
	for i, d := range shape {
		dims[i] = strconv.Itoa(d)
	}
	tuple := strings.Join(dims, ", ")
	if len(shape) == 1 {
		tuple += ","
	}
	header := fmt.Sprintf("{'descr': '<f4', 'fortran_order': False, 'shape': (%s), }", tuple)

	// Pad with spaces so the data section starts 64-byte aligned; the
	// header always ends with a newline.
	unpadded := len(npyMagic) + 2 + 2 + len(header) + 1
	pad := (64 - unpadded%64) % 64
	header += strings.Repeat(" ", pad) + "\n"

	if _, err := w.Write(npyMagic); err != nil {
		return err
	}
	if _, err := w.Write([]byte{1, 0}); err != nil {
		return err
	}
	var hlen [2]byte
	binary.LittleEndian.PutUint16(hlen[:], uint16(len(header)))
	if _, err := w.Write(hlen[:]); err != nil {
		return err
	}
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}

	buf := make([]byte, 4*len(data))
	for i, v := range data {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(v))
	}
	_, err := w.Write(buf)
	return err
}

// ReadNPY reads an NPY version 1.x array of little-endian float32 values and
// returns the flat data and its shape.
func ReadNPY(r io.Reader) ([]float32, []int, error) {
	head := make([]byte, 8)
	if _, err := io.ReadFull(r, head); err != nil {
		return nil, nil, &ErrBadNPY{Reason: "truncated magic: " + err.Error()}
	}
	if string(head[:6]) != string(npyMagic) {
		return nil, nil, &ErrBadNPY{Reason: "missing magic"}
	}
	if head[6] != 1 {
		return nil, nil, &ErrBadNPY{Reason: fmt.Sprintf("unsupported version %d.%d", head[6], head[7])}
	}

	var hlen [2]byte
	if _, err := io.ReadFull(r, hlen[:]); err != nil {
		return nil, nil, &ErrBadNPY{Reason: "truncated header length: " + err.Error()}
	}
	header := make([]byte, binary.LittleEndian.Uint16(hlen[:]))
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, nil, &ErrBadNPY{Reason: "truncated header: " + err.Error()}
	}

	descr, fortran, shape, err := parseHeader(string(header))
	if err != nil {
		return nil, nil, err
	}
	if descr != "<f4" {
		return nil, nil, &ErrUnsupportedDescr{Descr: descr}
	}
	if fortran {
		return nil, nil, &ErrBadNPY{Reason: "fortran_order arrays are not supported"}
	}

	elems := 1
	for _, d := range shape {
		if d < 0 {
			return nil, nil, &ErrBadNPY{Reason: fmt.Sprintf("negative dimension in shape %v", shape)}
		}
		elems *= d
	}

	buf := make([]byte, 4*elems)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, nil, &ErrBadNPY{Reason: "truncated data: " + err.Error()}
	}
	data := make([]float32, elems)
	for i := range data {
		data[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[4*i:]))
	}
	return data, shape, nil
}

// parseHeader pulls descr, fortran_order and shape out of the NPY header
// dict. The writer side of the format is a python literal, but the three
// fixed keys make simple string scanning sufficient.
func parseHeader(h string) (descr string, fortran bool, shape []int, err error) {
	descr, err = stringValue(h, "descr")
	if err != nil {
		return "", false, nil, err
	}

	switch {
	case strings.Contains(h, "'fortran_order': False"):
		fortran = false
	case strings.Contains(h, "'fortran_order': True"):
		fortran = true
	default:
		return "", false, nil, &ErrBadNPY{Reason: "missing fortran_order"}
	}

	open := strings.Index(h, "(")
	close_ := strings.Index(h, ")")
	if open < 0 || close_ < open {
		return "", false, nil, &ErrBadNPY{Reason: "missing shape tuple"}
	}
	for _, part := range strings.Split(h[open+1:close_], ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, perr := strconv.Atoi(part)
		if perr != nil {
			return "", false, nil, &ErrBadNPY{Reason: "bad shape dimension " + strconv.Quote(part)}
		}
		shape = append(shape, d)
	}
	return descr, fortran, shape, nil
}

func stringValue(h, key string) (string, error) {
	marker := "'" + key + "': '"
	start := strings.Index(h, marker)
	if start < 0 {
		return "", &ErrBadNPY{Reason: "missing " + key}
	}
	start += len(marker)
	end := strings.Index(h[start:], "'")
	if end < 0 {
		return "", &ErrBadNPY{Reason: "unterminated " + key}
	}
	return h[start : start+end], nil
}
