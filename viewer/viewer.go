// Package viewer shows a figure in an OpenGL window. Dragging with the
// left mouse button orbits the camera, R restores the initial view and
// Escape or Q close the window.
package viewer

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"runtime"
	"strings"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/glgl/v4.6-core/glgl"
	"github.com/soypat/trisurf/figure"
)

func init() {
	runtime.LockOSThread() // For GL.
}

const quadShader = `
#shader vertex
#version 330 core
layout(location = 0) in vec2 pos;
layout(location = 1) in vec2 uv;
out vec2 texCoord;
void main() {
	texCoord = uv;
	gl_Position = vec4(pos, 0.0, 1.0);
}

#shader fragment
#version 330 core
in vec2 texCoord;
out vec4 color;
uniform sampler2D figure;
void main() {
	color = texture(figure, texCoord);
}
`

// Show opens a window titled title displaying f and blocks until the
// window is closed. It must be called from the main goroutine.
func Show(f *figure.Figure, title string) error {
	if f == nil {
		return errors.New("viewer: nil figure")
	}
	cfg := f.Config()
	window, terminate, s, err := open(title, cfg.Width, cfg.Height)
	if err != nil {
		return err
	}
	defer terminate()
	defer s.delete()

	ctl := &controls{fig: f}
	redraw := true
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, act glfw.Action, mods glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		if act == glfw.Press {
			ctl.press(w.GetCursorPos())
		} else if act == glfw.Release {
			ctl.release()
		}
	})
	window.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		if ctl.move(x, y) == actionRedraw {
			redraw = true
		}
	})
	window.SetKeyCallback(func(w *glfw.Window, k glfw.Key, scancode int, act glfw.Action, mods glfw.ModifierKey) {
		if act != glfw.Press {
			return
		}
		switch ctl.key(glfwKey(k)) {
		case actionRedraw:
			redraw = true
		case actionClose:
			w.SetShouldClose(true)
		}
	})

	for !window.ShouldClose() {
		if redraw {
			// Motion events are coalesced into a single render.
			img, err := f.Image()
			if err != nil {
				return err
			}
			if err := s.upload(img); err != nil {
				return err
			}
			redraw = false
		}
		fbw, fbh := window.GetFramebufferSize()
		if err := s.draw(fbw, fbh); err != nil {
			return err
		}
		window.SwapBuffers()
		glfw.WaitEvents()
	}
	return nil
}

// open creates a window with a current GL 3.3 context and the textured
// quad used to display figures. terminate must be called once done.
func open(title string, width, height int) (window *glfw.Window, terminate func(), s *screen, err error) {
	window, terminate, err = glgl.InitWithCurrentWindow33(glgl.WindowConfig{
		Title:   title,
		Version: [2]int{3, 3},
		Width:   width,
		Height:  height,
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("viewer: opening window: %w", err)
	}
	src, err := glgl.ParseCombined(strings.NewReader(quadShader))
	if err != nil {
		terminate()
		return nil, nil, nil, err
	}
	prog, err := glgl.CompileProgram(src)
	if err != nil {
		terminate()
		return nil, nil, nil, fmt.Errorf("viewer: compiling shader: %w", err)
	}
	s, err = newScreen(prog)
	if err != nil {
		terminate()
		return nil, nil, nil, fmt.Errorf("viewer: creating quad: %w", err)
	}
	return window, terminate, s, nil
}

func glfwKey(k glfw.Key) key {
	switch k {
	case glfw.KeyR:
		return keyReset
	case glfw.KeyEscape, glfw.KeyQ:
		return keyClose
	}
	return keyOther
}

// screen holds the GL objects of a textured quad.
type screen struct {
	prog glgl.Program
	vao  glgl.VertexArray
	vbo  glgl.VertexBuffer
	tex  uint32
	size ms2.Vec
}

func newScreen(prog glgl.Program) (*screen, error) {
	s := screen{prog: prog}
	prog.Bind()
	s.vao = glgl.NewVAO()
	quad := letterbox(ms2.Vec{X: 1, Y: 1}, ms2.Vec{X: 1, Y: 1})
	var err error
	s.vbo, err = glgl.NewVertexBuffer(glgl.DynamicDraw, quad[:])
	if err != nil {
		return nil, err
	}
	// Position and texture coordinates are interleaved.
	for i, name := range []string{"pos\x00", "uv\x00"} {
		err = s.vao.AddAttribute(s.vbo, glgl.AttribLayout{
			Program: prog,
			Type:    glgl.Float32,
			Name:    name,
			Packing: 2,
			Stride:  4 * 4,
			Offset:  i * 2 * 4,
		})
		if err != nil {
			return nil, err
		}
	}

	gl.GenTextures(1, &s.tex)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, s.tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	return &s, glgl.Err()
}

func (s *screen) upload(img image.Image) error {
	b := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != 4*b.Dx() {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}
	gl.BindTexture(gl.TEXTURE_2D, s.tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(b.Dx()), int32(b.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))
	s.size = ms2.Vec{X: float32(b.Dx()), Y: float32(b.Dy())}
	return glgl.Err()
}

func (s *screen) draw(fbw, fbh int) error {
	quad := letterbox(ms2.Vec{X: float32(fbw), Y: float32(fbh)}, s.size)
	gl.Viewport(0, 0, int32(fbw), int32(fbh))
	gl.ClearColor(1, 1, 1, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	s.prog.Bind()
	s.vao.Bind()
	s.vbo.Bind()
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(quad)*4, gl.Ptr(&quad[0]))
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, s.tex)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	return glgl.Err()
}

func (s *screen) delete() {
	gl.DeleteTextures(1, &s.tex)
	s.vbo.Delete()
	s.vao.Unbind()
	s.prog.Delete()
}
