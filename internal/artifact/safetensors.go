// Package artifact persists the finished embedding matrix and vocabulary
// index. Both writers are atomic: content goes to a .tmp sibling that is
// renamed into place only after a successful flush, so a failed run never
// leaves a partial artifact.
package artifact

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gonum.org/v1/gonum/mat"
)

// TensorName is the key the embedding matrix is stored under.
const TensorName = "embedding.weight"

const writeBufSize = 64 * 1024 // 64KB

// tensorMeta is one entry of a safetensors header.
type tensorMeta struct {
	Dtype       string `json:"dtype"`
	Shape       []int  `json:"shape"`
	DataOffsets [2]int `json:"data_offsets"`
}

// WriteMatrix writes the matrix to path as a safetensors file holding a
// single F16 tensor named TensorName: 8-byte LE header length, JSON header,
// then row-major little-endian half-precision values. The downcast from
// float64 loses precision by design; consumers must tolerate it.
func WriteMatrix(path string, m *mat.Dense) error {
	rows, cols := m.Dims()
	dataLen := rows * cols * 2

	header, err := json.Marshal(map[string]tensorMeta{
		TensorName: {Dtype: "F16", Shape: []int{rows, cols}, DataOffsets: [2]int{0, dataLen}},
	})
	if err != nil {
		return fmt.Errorf("artifact: marshal header: %w", err)
	}
	// Pad the header to an 8-byte boundary with spaces, per the format.
	for len(header)%8 != 0 {
		header = append(header, ' ')
	}

	return writeAtomic(path, func(w io.Writer) error {
		var lenBuf [8]byte
		binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(header)))
		if _, err := w.Write(lenBuf[:]); err != nil {
			return err
		}
		if _, err := w.Write(header); err != nil {
			return err
		}

		rowBuf := make([]byte, cols*2)
		for i := 0; i < rows; i++ {
			row := m.RawRowView(i)
			for j, v := range row {
				binary.LittleEndian.PutUint16(rowBuf[j*2:], toFloat16(float32(v)))
			}
			if _, err := w.Write(rowBuf); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeAtomic streams write's output through a buffered writer into
// path+".tmp", then renames it over path.
func writeAtomic(path string, write func(w io.Writer) error) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("artifact: create %s: %w", tmp, err)
	}

	w := bufio.NewWriterSize(f, writeBufSize)
	if err := write(w); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("artifact: write %s: %w", tmp, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("artifact: flush %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("artifact: close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("artifact: rename %s: %w", tmp, err)
	}
	return nil
}
