package render

import "io"

// RenderAll reads the full contents of a Renderer and returns the slice read.
// It does not return error on io.EOF, like the io.ReadAll implementation.
func RenderAll(r Renderer) ([]Triangle3, error) {
	var err error
	var nt int
	result := make([]Triangle3, 0, 1<<12)
	buf := make([]Triangle3, 1024)
	for {
		nt, err = r.ReadTriangles(buf)
		result = append(result, buf[:nt]...)
		if err != nil {
			break
		}
	}
	if err == io.EOF {
		return result, nil
	}
	return result, err
}

// SliceRenderer is a Renderer over an in-memory triangle slice.
type SliceRenderer struct {
	buf []Triangle3
}

// NewSliceRenderer returns a Renderer that reads back the given triangles.
// The slice is not copied.
func NewSliceRenderer(t []Triangle3) *SliceRenderer {
	return &SliceRenderer{buf: t}
}

// ReadTriangles implements the Renderer interface.
func (b *SliceRenderer) ReadTriangles(t []Triangle3) (int, error) {
	if len(b.buf) == 0 {
		return 0, io.EOF
	}
	n := copy(t, b.buf)
	b.buf = b.buf[n:]
	return n, nil
}

// Len returns the number of triangles left to read.
func (b *SliceRenderer) Len() int { return len(b.buf) }
