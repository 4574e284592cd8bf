package main

import (
	"bufio"
	"image"
	"image/color"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/plus3/liveloop/live"
)

// session is the foreground side of the demo: the typed handle on the
// orbiters that the console and key handler mutate while the loop runs.
type session struct {
	ctrl     *live.Controller
	center   image.Point
	orbiters []*live.Orbiter
}

// entities returns the initial collection for the controller config.
func (s *session) entities() []live.Entity {
	ents := make([]live.Entity, len(s.orbiters))
	for i, o := range s.orbiters {
		ents[i] = o
	}
	return ents
}

// add publishes an already-spawned orbiter into the running collection.
func (s *session) add(o *live.Orbiter) {
	s.ctrl.Entities = append(s.ctrl.Entities, o)
}

// console reads edit commands from stdin on the foreground goroutine and
// applies them directly to the running entities.
func (s *session) console() {
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		args := strings.Fields(sc.Text())
		if len(args) == 0 {
			continue
		}
		s.exec(args)
	}
}

func (s *session) exec(args []string) {
	switch args[0] {
	case "help":
		log.Println("commands: list | add | dist N V | rot N V | radius N V | angle N V | color N R G B | center N X Y | moon N M | bg [R G B] | kill")

	case "list":
		for i, o := range s.orbiters {
			log.Printf("%d: angle=%.2f dist=%.0f rot=%.3f radius=%d bounds=%v", i, o.Angle(), o.Dist(), o.Velocity(), o.Radius(), o.Bounds())
		}

	case "add":
		s.add(s.spawn())

	case "dist":
		if o, v, ok := s.orbiterFloat(args); ok {
			o.SetDist(v)
		}
	case "rot":
		if o, v, ok := s.orbiterFloat(args); ok {
			o.SetVelocity(v)
		}
	case "angle":
		if o, v, ok := s.orbiterFloat(args); ok {
			o.SetAngle(v)
		}
	case "radius":
		if o, v, ok := s.orbiterFloat(args); ok {
			o.SetRadius(int(v))
		}

	case "color":
		if o, rgb, ok := s.orbiterRGB(args); ok {
			o.SetColor(rgb)
		}

	case "center":
		if len(args) != 4 {
			log.Println("usage: center N X Y")
			return
		}
		o := s.orbiter(args[1])
		if o == nil {
			return
		}
		x, errX := strconv.Atoi(args[2])
		y, errY := strconv.Atoi(args[3])
		if errX != nil || errY != nil {
			log.Println("usage: center N X Y")
			return
		}
		o.SetCenter(image.Pt(x, y))

	case "moon":
		// Replace M's step so it orbits N instead of a fixed point,
		// keeping its own motion on top. The swap happens while the
		// loop is stepping; that is the feature.
		if len(args) != 3 {
			log.Println("usage: moon N M")
			return
		}
		target, m := s.orbiter(args[1]), s.orbiter(args[2])
		if target == nil || m == nil || target == m {
			return
		}
		step := m.UpdateFunc
		m.UpdateFunc = func() {
			b := target.Bounds()
			m.SetCenter(image.Pt(b.Min.X+target.Radius(), b.Min.Y+target.Radius()))
			step()
		}

	case "bg":
		switch len(args) {
		case 1:
			s.ctrl.Background = nil // accumulate from here on
		case 4:
			r, _ := strconv.Atoi(args[1])
			g, _ := strconv.Atoi(args[2])
			b, _ := strconv.Atoi(args[3])
			s.ctrl.Background = color.RGBA{uint8(r), uint8(g), uint8(b), 255}
		default:
			log.Println("usage: bg [R G B]")
		}

	case "kill":
		s.ctrl.Kill()

	default:
		log.Printf("unknown command %q; try 'help'", args[0])
	}
}

// orbiter resolves an index argument, logging when it is out of range.
func (s *session) orbiter(arg string) *live.Orbiter {
	i, err := strconv.Atoi(arg)
	if err != nil || i < 0 || i >= len(s.orbiters) {
		log.Printf("no orbiter %q", arg)
		return nil
	}
	return s.orbiters[i]
}

func (s *session) orbiterFloat(args []string) (*live.Orbiter, float64, bool) {
	if len(args) != 3 {
		log.Printf("usage: %s N V", args[0])
		return nil, 0, false
	}
	o := s.orbiter(args[1])
	if o == nil {
		return nil, 0, false
	}
	v, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		log.Printf("bad value %q", args[2])
		return nil, 0, false
	}
	return o, v, true
}

func (s *session) orbiterRGB(args []string) (*live.Orbiter, color.RGBA, bool) {
	if len(args) != 5 {
		log.Println("usage: color N R G B")
		return nil, color.RGBA{}, false
	}
	o := s.orbiter(args[1])
	if o == nil {
		return nil, color.RGBA{}, false
	}
	r, _ := strconv.Atoi(args[2])
	g, _ := strconv.Atoi(args[3])
	b, _ := strconv.Atoi(args[4])
	return o, color.RGBA{uint8(r), uint8(g), uint8(b), 255}, true
}
