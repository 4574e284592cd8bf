// Command orbit opens a window full of orbiting circles and hands you two
// live-editing surfaces while the loop runs: a stdin console on the
// foreground goroutine, and (with -inspect) an ImGui overlay. Everything
// the console and overlay touch is the same unsynchronized state the loop
// is iterating, which is the point.
package main

import (
	"flag"
	"image"
	"image/color"
	"log"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/liveloop/live"
	"github.com/plus3/liveloop/live/ebitenwindow"
	"github.com/plus3/liveloop/live/inspect"
)

var palette = []color.RGBA{
	{255, 179, 186, 255},
	{179, 229, 252, 255},
	{186, 255, 201, 255},
	{255, 223, 186, 255},
	{217, 186, 255, 255},
}

func main() {
	width := flag.Int("width", 512, "Window width in pixels.")
	height := flag.Int("height", 512, "Window height in pixels.")
	fps := flag.Int("fps", 30, "Target frames per second.")
	count := flag.Int("orbiters", 3, "Number of orbiters to start with.")
	withInspect := flag.Bool("inspect", false, "Show the ImGui entity inspector overlay.")
	flag.Parse()

	sess := &session{center: image.Pt(*width/2, *height/2)}
	for i := 0; i < *count; i++ {
		sess.spawn()
	}

	window := ebitenwindow.Open("liveloop orbit", *width, *height)

	ctrl, err := live.New(window, live.Config{
		Entities: sess.entities(),
		Size:     image.Pt(*width, *height),
		FPS:      *fps,
		Handlers: map[live.EventType]live.Handler{
			live.EventKeyDown: func(ev live.Event) {
				if ev.Code == int(ebiten.KeySpace) {
					sess.add(sess.spawn())
				}
			},
		},
	})
	if err != nil {
		log.Fatalf("Failed to start controller: %v", err)
	}
	sess.ctrl = ctrl

	if *withInspect {
		window.SetOverlay(inspect.New("liveloop orbit", *width, *height, ctrl))
	}

	log.Println("Console ready; type 'help' for commands, space adds an orbiter.")
	go sess.console()

	if err := window.Run(); err != nil {
		log.Fatalf("Window error: %v", err)
	}
	ctrl.Kill()
	ctrl.Wait()
	if ctrl.Err != nil {
		log.Printf("Loop ended on a fault: %v", ctrl.Err)
	}
	log.Println("Session over.")
}

// spawn creates a fresh orbiter with randomized parameters.
func (s *session) spawn() *live.Orbiter {
	o := live.NewOrbiter(
		s.center,
		rand.Float64()*6.28,
		40+rand.Float64()*float64(s.center.X-60),
		0.02+rand.Float64()*0.08,
		4+rand.IntN(10),
		palette[len(s.orbiters)%len(palette)],
	)
	s.orbiters = append(s.orbiters, o)
	return o
}
