// Package inspect provides a Dear ImGui overlay that browses and edits the
// entities of a running controller, live. It is the windowed counterpart
// of poking at the controller from a console: every edit goes through the
// entity's own mutators, so the dirty-tracking contract keeps holding.
package inspect

import (
	"fmt"
	"reflect"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/liveloop/live"
)

// Inspector implements ebitenwindow.Overlay. Its Update and Draw run on the
// ebiten main goroutine while the controller loop runs on its own; entity
// reads and writes are as unguarded as any other foreground edit, which is
// the package's whole point.
type Inspector struct {
	backend    *ebitenbackend.EbitenBackend
	controller *live.Controller
	cache      *accessorCache
}

// New creates the inspector and initializes the ImGui context for the
// window about to be opened. Call it once, before ebiten starts running.
func New(title string, width, height int, c *live.Controller) *Inspector {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	return &Inspector{
		backend:    backend,
		controller: c,
		cache:      newAccessorCache(),
	}
}

// Update builds the overlay UI for this frame.
func (in *Inspector) Update() {
	in.backend.BeginFrame()
	in.render()
	in.backend.EndFrame()
}

// Draw paints the overlay on top of the presented frame.
func (in *Inspector) Draw(screen *ebiten.Image) {
	in.backend.Draw(screen)
}

// Layout forwards the window size to the ImGui backend.
func (in *Inspector) Layout(outsideWidth, outsideHeight int) {
	in.backend.Layout(outsideWidth, outsideHeight)
}

// WantCaptureMouse reports whether ImGui is consuming mouse input.
func (in *Inspector) WantCaptureMouse() bool {
	return imgui.CurrentIO().WantCaptureMouse()
}

// WantCaptureKeyboard reports whether ImGui is consuming keyboard input.
func (in *Inspector) WantCaptureKeyboard() bool {
	return imgui.CurrentIO().WantCaptureKeyboard()
}

func (in *Inspector) render() {
	if !imgui.BeginV("Entities", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if in.controller.Running {
		imgui.Text(fmt.Sprintf("running, %d entities", len(in.controller.Entities)))
	} else if err := in.controller.Err; err != nil {
		imgui.Text(fmt.Sprintf("faulted: %v", err))
	} else {
		imgui.Text("stopped")
	}
	imgui.Separator()

	for idx, e := range in.controller.Entities {
		label := fmt.Sprintf("%d: %T", idx, e)
		if imgui.TreeNodeStr(label) {
			in.renderEntity(idx, e)
			imgui.TreePop()
		}
	}

	imgui.End()
}

func (in *Inspector) renderEntity(idx int, e live.Entity) {
	recv := reflect.ValueOf(e)
	for _, a := range in.cache.accessors(recv.Type()) {
		in.renderAttr(idx, recv, a)
	}
}

func (in *Inspector) renderAttr(idx int, recv reflect.Value, a accessor) {
	val := a.Value(recv)
	if !a.Editable() {
		imgui.Text(fmt.Sprintf("%s: %v", a.Name, val.Interface()))
		return
	}

	id := fmt.Sprintf("##%d_%s", idx, a.Name)
	imgui.Text(a.Name + ":")
	imgui.SameLine()
	imgui.SetNextItemWidth(150)

	switch a.Kind {
	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		if imgui.InputFloat(id, &v) {
			a.Assign(recv, reflect.ValueOf(float64(v)).Convert(val.Type()))
		}
	case reflect.Int, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		if imgui.InputInt(id, &v) {
			a.Assign(recv, reflect.ValueOf(int64(v)).Convert(val.Type()))
		}
	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(id, &v) {
			a.Assign(recv, reflect.ValueOf(v))
		}
	}
}
